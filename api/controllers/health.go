package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/procureflow-backend/api/responses"
	"github.com/angelmondragon/procureflow-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/procureflow-backend/pkg/errors"
	"github.com/angelmondragon/procureflow-backend/pkg/logger"
)

const envHeader = "X-ProcureFlow-Env"

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the draft backend. A nil pinger counts as ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, drafts Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		if drafts != nil {
			if err := drafts.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "draft backend unavailable").
					WithDetails(map[string]any{"dependency": cfg.Drafts.Backend}))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{
			"status":        "ready",
			"draft_backend": cfg.Drafts.Backend,
		})
	}
}
