// Package http exposes a finished run's account table for inspection.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iho/paybatch/internal/adapter/http/handler"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ReportHandler *handler.ReportHandler
	Gatherer      prometheus.Gatherer // optional
}

// NewRouter creates the report HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", cfg.ReportHandler.Health)

	r.Route("/accounts", func(r chi.Router) {
		r.Get("/", cfg.ReportHandler.List)
		r.Get("/{client}", cfg.ReportHandler.Get)
	})

	r.Get("/stats", cfg.ReportHandler.Stats)

	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
