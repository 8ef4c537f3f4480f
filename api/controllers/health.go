package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/mercaline/mercaline-backend/api/responses"
	"github.com/mercaline/mercaline-backend/pkg/config"
	"github.com/mercaline/mercaline-backend/pkg/db"
	"github.com/mercaline/mercaline-backend/pkg/logger"
	"github.com/mercaline/mercaline-backend/pkg/redis"
)

const readinessTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Mercaline-Env", cfg.App.Env)
		responses.WriteSuccess(w, "live", map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when both backing stores answer a ping.
func HealthReady(cfg *config.Config, database db.Pinger, cache redis.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Mercaline-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{"db": "ok", "redis": "ok"}
		healthy := true

		if database == nil {
			checks["db"] = "not configured"
			healthy = false
		} else if err := database.Ping(ctx); err != nil {
			logg.Error(ctx, "health.db_unreachable", err)
			checks["db"] = "unreachable"
			healthy = false
		}

		if cache == nil {
			checks["redis"] = "not configured"
			healthy = false
		} else if err := cache.Ping(ctx); err != nil {
			logg.Error(ctx, "health.redis_unreachable", err)
			checks["redis"] = "unreachable"
			healthy = false
		}

		if !healthy {
			responses.WriteErrorStatus(w, http.StatusServiceUnavailable, "not ready", checks)
			return
		}
		responses.WriteSuccess(w, "ready", checks)
	}
}
