// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package api

import (
	"net/http"
	"time"
)

// HealthLive handles liveness probes. It always returns 200.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probes. With RequireIndex set it returns
// 503 until the item similarity index has been built.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	index := h.engine.IndexStatus()
	ready := !h.opts.RequireIndex || index.Built

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, r, statusCode, &APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"ready_to_serve": ready,
			"index_built":    index.Built,
			"index_building": index.Building,
			"uptime":         time.Since(h.startTime).Seconds(),
		},
	})
}
