package validators

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rithysok/restock-backend/pkg/enums"
	pkgerrors "github.com/rithysok/restock-backend/pkg/errors"
)

// ParseUUIDParam reads a chi route parameter as a UUID.
func ParseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id").WithDetails(map[string]any{"param": name})
	}
	return id, nil
}

// ParseUUIDField reads a request-body string as a UUID.
func ParseUUIDField(raw, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id").WithDetails(map[string]any{"field": name})
	}
	return id, nil
}

// ParseStoreTagField converts an optional request-body tag into the enum.
// An empty string means "not scoped to any outlet".
func ParseStoreTagField(raw *string) (*enums.StoreTag, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	tag, err := enums.ParseStoreTag(strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid store tag")
	}
	return &tag, nil
}

// ParsePaymentMethodField converts an optional request-body payment method.
func ParsePaymentMethodField(raw *string) (*enums.PaymentMethod, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	method, err := enums.ParsePaymentMethod(strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method")
	}
	return &method, nil
}
