package controllers

import (
	"context"
	"net/http"

	"github.com/rithysok/restock-backend/api/responses"
	"github.com/rithysok/restock-backend/pkg/db/models"
	pkgerrors "github.com/rithysok/restock-backend/pkg/errors"
	"github.com/rithysok/restock-backend/pkg/logger"
)

// StoreLister reads the outlet registry.
type StoreLister interface {
	FetchAll(ctx context.Context) ([]models.Store, error)
}

func StoresList(repo StoreLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store registry unavailable"))
			return
		}
		records, err := repo.FetchAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing stores"))
			return
		}
		responses.WriteSuccess(w, records)
	}
}
