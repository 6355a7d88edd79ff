// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/affinity/internal/recommend"
)

// DefaultRequestTimeout bounds engine calls made by a single request.
const DefaultRequestTimeout = 10 * time.Second

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	// RequireIndex makes the readiness probe fail until the item similarity
	// index is built.
	RequireIndex bool

	// RequestTimeout bounds each engine call. Default: 10s.
	RequestTimeout time.Duration
}

// Handler serves the Affinity HTTP API over an Engine.
type Handler struct {
	engine    *recommend.Engine
	opts      HandlerOptions
	startTime time.Time
}

// NewHandler creates a Handler for engine.
func NewHandler(engine *recommend.Engine, opts HandlerOptions) *Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	return &Handler{
		engine:    engine,
		opts:      opts,
		startTime: time.Now(),
	}
}

func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.opts.RequestTimeout)
}

// Stats handles GET /api/v1/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]interface{}{
		"dataset": h.engine.Stats(),
		"index":   h.engine.IndexStatus(),
		"engine":  h.engine.GetMetrics(),
		"config":  h.engine.Config(),
	})
}

// Agents handles GET /api/v1/agents.
func (h *Handler) Agents(w http.ResponseWriter, r *http.Request) {
	agents := h.engine.Agents()
	respondSuccess(w, r, map[string]interface{}{
		"agents": agents,
		"count":  len(agents),
	})
}

// Items handles GET /api/v1/items.
func (h *Handler) Items(w http.ResponseWriter, r *http.Request) {
	items := h.engine.Items()
	respondSuccess(w, r, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// AgentRatings handles GET /api/v1/agents/{agent}.
func (h *Handler) AgentRatings(w http.ResponseWriter, r *http.Request) {
	agent := pathParam(r, "agent")

	ratings, err := h.engine.Ratings(agent)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondSuccess(w, r, map[string]interface{}{
		"agent":   agent,
		"ratings": ratings,
		"count":   len(ratings),
	})
}

// NotFound writes the envelope for unrouted paths.
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
}

// MethodNotAllowed writes the envelope for routed paths with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
}
