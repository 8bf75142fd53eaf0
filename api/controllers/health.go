package controllers

import (
	"context"
	"net/http"

	"github.com/transportly/transportly-backend/api/responses"
	"github.com/transportly/transportly-backend/pkg/config"
	pkgerrors "github.com/transportly/transportly-backend/pkg/errors"
	"github.com/transportly/transportly-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Transportly-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every hard dependency; one failure fails the probe.
func HealthReady(cfg *config.Config, logg *logger.Logger, db, redis, blobStore pinger) http.HandlerFunc {
	deps := map[string]pinger{
		"database":   db,
		"redis":      redis,
		"blob_store": blobStore,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Transportly-Env", cfg.App.Env)

		checks := make(map[string]string, len(deps))
		healthy := true
		for name, dep := range deps {
			if dep == nil {
				checks[name] = "not configured"
				healthy = false
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				logg.Error(logg.WithField(r.Context(), "dependency", name), "readiness probe failed", err)
				checks[name] = "unavailable"
				healthy = false
				continue
			}
			checks[name] = "ok"
		}

		if !healthy {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependencies unavailable").
				WithDetails(map[string]any{"checks": checks})
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
