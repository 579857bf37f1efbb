package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rithysok/restock-backend/api/responses"
	"github.com/rithysok/restock-backend/api/validators"
	"github.com/rithysok/restock-backend/internal/state"
	pkgerrors "github.com/rithysok/restock-backend/pkg/errors"
	"github.com/rithysok/restock-backend/pkg/logger"
)

type supplierCreateRequest struct {
	ID                   *string `json:"id,omitempty" validate:"omitempty,uuid"`
	Name                 string  `json:"name" validate:"required,min=1"`
	Contact              *string `json:"contact,omitempty"`
	Telegram             *string `json:"telegram,omitempty"`
	DefaultPaymentMethod *string `json:"defaultPaymentMethod,omitempty"`
}

type supplierUpdateRequest struct {
	Name                 *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Contact              *string `json:"contact,omitempty"`
	Telegram             *string `json:"telegram,omitempty"`
	DefaultPaymentMethod *string `json:"defaultPaymentMethod,omitempty"`
}

func SuppliersList(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, store.Suppliers())
	}
}

func SuppliersCreate(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req supplierCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft := state.SupplierDraft{
			Name:     req.Name,
			Contact:  req.Contact,
			Telegram: req.Telegram,
		}
		if req.ID != nil {
			id, err := uuid.Parse(*req.ID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id"))
				return
			}
			draft.ID = &id
		}
		method, err := validators.ParsePaymentMethodField(req.DefaultPaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		draft.DefaultPaymentMethod = method

		supplier, err := store.AddSupplier(r.Context(), draft)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, supplier)
	}
}

func SuppliersUpdate(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "supplierId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req supplierUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		patch := state.SupplierPatch{
			Name:     req.Name,
			Contact:  req.Contact,
			Telegram: req.Telegram,
		}
		method, err := validators.ParsePaymentMethodField(req.DefaultPaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		patch.DefaultPaymentMethod = method

		supplier, err := store.UpdateSupplier(r.Context(), id, patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, supplier)
	}
}

func SuppliersDelete(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "supplierId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := store.DeleteSupplier(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
