package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"attest/internal/admin"
	certhandler "attest/internal/certification/handler"
	"attest/internal/platform/middleware"
	platformredis "attest/internal/platform/redis"
	"attest/internal/token"
	"attest/pkg/platform/httputil"
)

// newRouter mounts the open read surface alongside the authenticated
// lifecycle and administrative endpoints.
func newRouter(
	certHandler *certhandler.Handler,
	adminHandler *admin.Handler,
	tokens *token.Service,
	rdb *platformredis.Client,
	verifyRateLimit int,
	log *slog.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if rdb != nil {
			if err := rdb.Health(req.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	// Verification and requirement reads serve downstream employers and
	// regulators without credentials, so the verify endpoint carries a
	// per-IP budget.
	r.Group(func(r chi.Router) {
		if verifyRateLimit > 0 {
			r.Use(middleware.RateLimit(middleware.NewSlidingWindowLimiter(verifyRateLimit, time.Minute)))
		}
		r.Get("/verify/{certificationID}", certHandler.HandleVerify)
		r.Get("/requirements/{certificationType}", adminHandler.HandleGetRequirements)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(token.NewServiceAdapter(tokens), log))
		certHandler.Register(r)
		adminHandler.Register(r)
	})
	return r
}
