// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/affinity/internal/logging"
	"github.com/tomtom215/affinity/internal/recommend"
	"github.com/tomtom215/affinity/internal/validation"
)

// Matches handles GET /api/v1/agents/{agent}/matches?n=&metric=
// Returns the agents most similar to {agent}.
func (h *Handler) Matches(w http.ResponseWriter, r *http.Request) {
	n, err := queryInt(r, "n")
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	req := MatchesRequest{
		Agent:  pathParam(r, "agent"),
		N:      n,
		Metric: r.URL.Query().Get("metric"),
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondEngineError(w, r, verr)
		return
	}

	metric := h.engine.Config().UserBased.Metric
	if req.Metric != "" {
		if metric, err = recommend.ParseMetric(req.Metric); err != nil {
			respondEngineError(w, r, err)
			return
		}
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	start := time.Now()
	matches, err := h.engine.TopMatches(ctx, req.Agent, req.N, metric)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, &APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"agent":   req.Agent,
			"metric":  metric.String(),
			"matches": matches,
		},
		Metadata: Metadata{QueryTimeMS: time.Since(start).Milliseconds()},
	})
}

// Recommendations handles
// GET /api/v1/agents/{agent}/recommendations?mode=&metric=&k=
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	k, err := queryInt(r, "k")
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	query := r.URL.Query()
	req := RecommendationsRequest{
		Agent:  pathParam(r, "agent"),
		Mode:   query.Get("mode"),
		Metric: query.Get("metric"),
		K:      k,
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondEngineError(w, r, verr)
		return
	}

	engineReq, err := req.toEngine(logging.RequestIDFromContext(r.Context()))
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	resp, err := h.engine.Recommend(ctx, engineReq)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, &APIResponse{
		Status: "success",
		Data:   resp,
		Metadata: Metadata{
			QueryTimeMS: resp.Metadata.LatencyMS,
			Cached:      resp.Metadata.CacheHit,
		},
	})
}

// SimilarItems handles GET /api/v1/items/{item}/similar?n=
// Neighbours come from the item similarity index.
func (h *Handler) SimilarItems(w http.ResponseWriter, r *http.Request) {
	n, err := queryInt(r, "n")
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	req := SimilarItemsRequest{Item: pathParam(r, "item"), N: n}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondEngineError(w, r, verr)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	start := time.Now()
	similar, err := h.engine.SimilarItems(ctx, req.Item, req.N)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, &APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"item":    req.Item,
			"metric":  h.engine.Config().ItemBased.Metric.String(),
			"similar": similar,
		},
		Metadata: Metadata{QueryTimeMS: time.Since(start).Milliseconds()},
	})
}

// IndexStatus handles GET /api/v1/index.
func (h *Handler) IndexStatus(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, h.engine.IndexStatus())
}

// RebuildIndex handles POST /api/v1/index/rebuild. The build runs in the
// request, bounded by RequestTimeout so the response is written before the
// server's write deadline. A build that runs out of time answers 504 and
// the previous index stays in place.
func (h *Handler) RebuildIndex(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := h.engine.BuildIndex(ctx); err != nil {
		respondEngineError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Int("version", h.engine.IndexStatus().Version).
		Msg("item similarity index rebuilt via API")

	respondJSON(w, r, http.StatusOK, &APIResponse{
		Status:   "success",
		Data:     h.engine.IndexStatus(),
		Metadata: Metadata{QueryTimeMS: time.Since(start).Milliseconds()},
	})
}
