package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rithysok/restock-backend/api/responses"
	"github.com/rithysok/restock-backend/api/validators"
	"github.com/rithysok/restock-backend/internal/state"
	"github.com/rithysok/restock-backend/pkg/db/models"
	"github.com/rithysok/restock-backend/pkg/enums"
	pkgerrors "github.com/rithysok/restock-backend/pkg/errors"
	"github.com/rithysok/restock-backend/pkg/logger"
)

type pendingOrderLineRequest struct {
	ItemID    string  `json:"itemId" validate:"required,uuid"`
	Name      string  `json:"name" validate:"required,min=1"`
	KhmerName *string `json:"khmerName,omitempty"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
	IsNew     *bool   `json:"isNew,omitempty"`
}

type pendingOrderCreateRequest struct {
	Supplier      string                    `json:"supplier" validate:"required,min=1"`
	Items         []pendingOrderLineRequest `json:"items" validate:"omitempty,dive"`
	StoreTag      *string                   `json:"storeTag,omitempty"`
	PaymentMethod *string                   `json:"paymentMethod,omitempty"`
	ContactPerson *string                   `json:"contactPerson,omitempty"`
	Notes         *string                   `json:"notes,omitempty"`
	InvoiceRef    *string                   `json:"invoiceRef,omitempty"`
	Amount        *string                   `json:"amount,omitempty"`
}

type pendingOrderUpdateRequest struct {
	Supplier      *string                    `json:"supplier,omitempty" validate:"omitempty,min=1"`
	Items         *[]pendingOrderLineRequest `json:"items,omitempty" validate:"omitempty,dive"`
	Status        *string                    `json:"status,omitempty"`
	StoreTag      *string                    `json:"storeTag,omitempty"`
	PaymentMethod *string                    `json:"paymentMethod,omitempty"`
	ContactPerson *string                    `json:"contactPerson,omitempty"`
	Notes         *string                    `json:"notes,omitempty"`
	InvoiceRef    *string                    `json:"invoiceRef,omitempty"`
	Amount        *string                    `json:"amount,omitempty"`
	Received      *bool                      `json:"received,omitempty"`
	Paid          *bool                      `json:"paid,omitempty"`
	CompletedAt   *time.Time                 `json:"completedAt,omitempty"`
}

func toOrderLines(requests []pendingOrderLineRequest) ([]models.PendingOrderItem, error) {
	lines := make([]models.PendingOrderItem, 0, len(requests))
	for _, req := range requests {
		itemID, err := uuid.Parse(req.ItemID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id")
		}
		lines = append(lines, models.PendingOrderItem{
			ItemID:    itemID,
			Name:      req.Name,
			KhmerName: req.KhmerName,
			Quantity:  req.Quantity,
			IsNew:     req.IsNew,
		})
	}
	return lines, nil
}

func PendingOrdersList(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, store.PendingOrders())
	}
}

func PendingOrdersCreate(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pendingOrderCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines, err := toOrderLines(req.Items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tag, err := validators.ParseStoreTagField(req.StoreTag)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		method, err := validators.ParsePaymentMethodField(req.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		amount, err := parsePriceField(req.Amount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := store.AddPendingOrder(r.Context(), state.PendingOrderDraft{
			Supplier:      req.Supplier,
			Items:         lines,
			StoreTag:      tag,
			PaymentMethod: method,
			ContactPerson: req.ContactPerson,
			Notes:         req.Notes,
			InvoiceRef:    req.InvoiceRef,
			Amount:        amount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func PendingOrdersUpdate(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req pendingOrderUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		patch := state.PendingOrderPatch{
			Supplier:      req.Supplier,
			ContactPerson: req.ContactPerson,
			Notes:         req.Notes,
			InvoiceRef:    req.InvoiceRef,
			Received:      req.Received,
			Paid:          req.Paid,
			CompletedAt:   req.CompletedAt,
		}
		if req.Items != nil {
			lines, err := toOrderLines(*req.Items)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			patch.Items = &lines
		}
		if req.Status != nil {
			// statuses are open-ended; unknown values pass through
			status := enums.OrderStatus(*req.Status)
			patch.Status = &status
		}
		tag, err := validators.ParseStoreTagField(req.StoreTag)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		patch.StoreTag = tag
		method, err := validators.ParsePaymentMethodField(req.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		patch.PaymentMethod = method
		amount, err := parsePriceField(req.Amount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		patch.Amount = amount

		order, err := store.UpdatePendingOrder(r.Context(), id, patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func PendingOrdersDelete(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := store.DeletePendingOrder(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func CompletedOrdersList(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, store.CompletedOrders())
	}
}
