package controllers

import (
	"net/http"

	"github.com/rithysok/restock-backend/api/responses"
	"github.com/rithysok/restock-backend/api/validators"
	"github.com/rithysok/restock-backend/internal/state"
	"github.com/rithysok/restock-backend/pkg/logger"
)

func SnapshotExport(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, store.ExportData())
	}
}

// SnapshotImport restores the collections present in the payload; absent
// collections keep their current contents.
func SnapshotImport(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var snap state.Snapshot
		if err := validators.DecodeJSONBody(r, &snap); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := store.ImportData(r.Context(), snap); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "imported"})
	}
}

// SyncFlush pushes every collection to the remote store synchronously.
func SyncFlush(store *state.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Flush(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "flushed"})
	}
}
