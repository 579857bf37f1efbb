package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rithysok/restock-backend/api/responses"
	"github.com/rithysok/restock-backend/api/validators"
	"github.com/rithysok/restock-backend/internal/state"
	pkgerrors "github.com/rithysok/restock-backend/pkg/errors"
	"github.com/rithysok/restock-backend/pkg/logger"
)

type itemCreateRequest struct {
	ID        *string `json:"id,omitempty" validate:"omitempty,uuid"`
	Name      string  `json:"name" validate:"required,min=1"`
	KhmerName *string `json:"khmerName,omitempty"`
	Supplier  string  `json:"supplier" validate:"required,min=1"`
	Unit      *string `json:"unit,omitempty"`
	Price     *string `json:"price,omitempty"`
}

type itemUpdateRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1"`
	KhmerName *string `json:"khmerName,omitempty"`
	Supplier  *string `json:"supplier,omitempty" validate:"omitempty,min=1"`
	Unit      *string `json:"unit,omitempty"`
	Price     *string `json:"price,omitempty"`
}

func parsePriceField(raw *string) (*decimal.Decimal, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	price, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}
	return &price, nil
}

func ItemsList(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, store.Items())
	}
}

func ItemsCreate(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req itemCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft := state.ItemDraft{
			Name:      req.Name,
			KhmerName: req.KhmerName,
			Supplier:  req.Supplier,
			Unit:      req.Unit,
		}
		if req.ID != nil {
			id, err := uuid.Parse(*req.ID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id"))
				return
			}
			draft.ID = &id
		}
		price, err := parsePriceField(req.Price)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		draft.Price = price

		item, err := store.AddItem(r.Context(), draft)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func ItemsUpdate(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req itemUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		patch := state.ItemPatch{
			Name:      req.Name,
			KhmerName: req.KhmerName,
			Supplier:  req.Supplier,
			Unit:      req.Unit,
		}
		price, err := parsePriceField(req.Price)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		patch.Price = price

		item, err := store.UpdateItem(r.Context(), id, patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func ItemsDelete(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := store.DeleteItem(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
