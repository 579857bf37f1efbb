package controllers

import (
	"net/http"

	"github.com/rithysok/restock-backend/api/responses"
	"github.com/rithysok/restock-backend/api/validators"
	"github.com/rithysok/restock-backend/internal/cart"
	"github.com/rithysok/restock-backend/internal/state"
	"github.com/rithysok/restock-backend/pkg/db/models"
	"github.com/rithysok/restock-backend/pkg/logger"
)

type orderAddItemRequest struct {
	ItemID   string  `json:"itemId" validate:"required,uuid"`
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	StoreTag *string `json:"storeTag,omitempty"`
}

type orderUpdateItemRequest struct {
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	StoreTag *string `json:"storeTag,omitempty"`
}

type orderMetadataRequest struct {
	PaymentMethod *string `json:"paymentMethod,omitempty"`
	StoreTag      *string `json:"storeTag,omitempty"`
}

type currentOrderResponse struct {
	Items    []models.OrderItem `json:"items"`
	Metadata cart.Metadata      `json:"metadata"`
}

func OrderGet(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, meta := store.CurrentOrder()
		responses.WriteSuccess(w, currentOrderResponse{Items: items, Metadata: meta})
	}
}

func OrderAddItem(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req orderAddItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := validators.ParseUUIDField(req.ItemID, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tag, err := validators.ParseStoreTagField(req.StoreTag)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		line, err := store.AddToOrder(r.Context(), itemID, req.Quantity, tag)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, line)
	}
}

func OrderUpdateItem(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req orderUpdateItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tag, err := validators.ParseStoreTagField(req.StoreTag)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := store.UpdateOrderItem(r.Context(), itemID, req.Quantity, tag); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, meta := store.CurrentOrder()
		responses.WriteSuccess(w, currentOrderResponse{Items: items, Metadata: meta})
	}
}

// OrderRemoveItem removes one cart line; the store tag half of the composite
// key travels as a query parameter since DELETE carries no body.
func OrderRemoveItem(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var raw *string
		if value := r.URL.Query().Get("storeTag"); value != "" {
			raw = &value
		}
		tag, err := validators.ParseStoreTagField(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := store.RemoveFromOrder(r.Context(), itemID, tag); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, meta := store.CurrentOrder()
		responses.WriteSuccess(w, currentOrderResponse{Items: items, Metadata: meta})
	}
}

func OrderUpdateMetadata(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req orderMetadataRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := validators.ParsePaymentMethodField(req.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tag, err := validators.ParseStoreTagField(req.StoreTag)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		meta, err := store.UpdateOrderMetadata(r.Context(), state.MetadataPatch{
			PaymentMethod: method,
			StoreTag:      tag,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, meta)
	}
}

func OrderClear(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.ClearOrder(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

func OrderComplete(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := store.CompleteOrder(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if order == nil {
			// empty cart: nothing happened, by contract
			responses.WriteSuccess(w, map[string]string{"status": "empty"})
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
