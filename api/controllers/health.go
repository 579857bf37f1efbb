package controllers

import (
	"context"
	"net/http"

	"github.com/rithysok/restock-backend/api/responses"
	"github.com/rithysok/restock-backend/internal/state"
	"github.com/rithysok/restock-backend/pkg/config"
	pkgerrors "github.com/rithysok/restock-backend/pkg/errors"
	"github.com/rithysok/restock-backend/pkg/logger"
)

const envHeader = "X-Restock-Env"

// Pinger is any dependency that can report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only once the state store finished loading and
// the remote database answers a ping. Redis is optional and best-effort.
func HealthReady(cfg *config.Config, logg *logger.Logger, store *state.Store, db Pinger, cache Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		if store == nil || store.Phase() != state.PhaseReady {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeStateConflict, "state store not ready"))
			return
		}
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
		}

		status := map[string]string{"status": "ready"}
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				status["redis"] = "degraded"
			} else {
				status["redis"] = "ok"
			}
		}
		responses.WriteSuccess(w, status)
	}
}
