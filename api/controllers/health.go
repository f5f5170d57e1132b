package controllers

import (
	"context"
	"net/http"

	"github.com/nmorales/distromart-storefront/api/responses"
	"github.com/nmorales/distromart-storefront/pkg/config"
	"github.com/nmorales/distromart-storefront/pkg/logger"
)

// Pinger is the health-check surface shared by the storefront's dependencies.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-DistroMart-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports per-dependency readiness. The storefront stays "ready"
// with a degraded dependency list rather than flapping the whole service.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-DistroMart-Env", cfg.App.Env)

		checks := map[string]string{}
		for name, dep := range deps {
			if dep == nil {
				checks[name] = "not configured"
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				checks[name] = "unavailable"
				if logg != nil {
					logg.Error(logg.WithField(r.Context(), "dependency", name), "readiness check failed", err)
				}
				continue
			}
			checks[name] = "ok"
		}

		responses.WriteSuccess(w, map[string]any{
			"status": "ready",
			"checks": checks,
		})
	}
}
