// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/affinity/internal/config"
	"github.com/tomtom215/affinity/internal/middleware"
)

// MiddlewareConfigFromServer maps the server section of the application
// config onto ChiMiddlewareConfig.
func MiddlewareConfigFromServer(s *config.ServerConfig) *ChiMiddlewareConfig {
	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = append([]string(nil), s.CORSOrigins...)
	cfg.RateLimitRequests = s.RateLimitReqs
	cfg.RateLimitWindow = s.RateLimitWindow
	cfg.RateLimitDisabled = s.RateLimitDisabled || s.RateLimitReqs == 0
	return cfg
}

// NewRouter builds the chi router serving the Affinity API.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRouter(h *Handler, mwConfig *ChiMiddlewareConfig, logger zerolog.Logger) http.Handler {
	mw := NewChiMiddleware(mwConfig)
	r := chi.NewRouter()

	// Global middleware, applied to every route in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS()) // must be global to answer OPTIONS preflight
	r.Use(chimiddleware.Compress(5, "application/json"))

	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/stats", h.Stats)

		r.Get("/agents", h.Agents)
		r.Route("/agents/{agent}", func(r chi.Router) {
			r.Get("/", h.AgentRatings)
			r.Get("/matches", h.Matches)
			r.Get("/recommendations", h.Recommendations)
		})

		r.Get("/items", h.Items)
		r.Get("/items/{item}/similar", h.SimilarItems)

		r.Get("/index", h.IndexStatus)
		r.Post("/index/rebuild", h.RebuildIndex)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
