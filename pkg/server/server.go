// Package server exposes the schedule optimizer over HTTP: optimization
// and update endpoints on request payloads, store-backed optimization for
// persisted businesses, and health and metrics endpoints.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lone4alker/easyshift/pkg/core/engine"
	"github.com/lone4alker/easyshift/pkg/db"
	"github.com/lone4alker/easyshift/pkg/metrics"
)

// Handler serves the optimizer's HTTP API.
type Handler struct {
	engine   *engine.Engine
	database db.Database
	logger   *zap.Logger

	Mux *chi.Mux
}

// NewHandler builds the handler and registers all routes. The database is
// optional; without one the store-backed business endpoints respond 503.
func NewHandler(eng *engine.Engine, database db.Database, logger *zap.Logger) *Handler {
	h := &Handler{
		engine:   eng,
		database: database,
		logger:   logger,
		Mux:      chi.NewRouter(),
	}
	h.registerRoutes()
	return h
}

func (h *Handler) registerRoutes() {
	h.Mux.Use(middleware.Recoverer)
	h.Mux.Use(h.requestLogger)

	h.Mux.Get("/health", h.Health)
	h.Mux.Get("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}).ServeHTTP)

	h.Mux.Post("/schedule", h.Schedule)
	h.Mux.Post("/update", h.Update)

	h.Mux.Route("/businesses/{businessID}", func(r chi.Router) {
		r.Post("/optimize", h.OptimizeBusiness)
		r.Get("/runs", h.ListRuns)
	})
}

// requestLogger logs one line per request with latency and status.
func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)))
	})
}

// ListenAndServe runs the HTTP server until it fails or the listener
// closes.
func (h *Handler) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	h.logger.Info("http server listening", zap.String("addr", addr))
	return srv.ListenAndServe()
}
