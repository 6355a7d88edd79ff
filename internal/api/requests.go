// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/affinity/internal/recommend"
)

// MatchesRequest holds the parameters of GET /agents/{agent}/matches.
type MatchesRequest struct {
	Agent  string `validate:"required"`
	N      int    `validate:"gte=0"`
	Metric string `validate:"omitempty,metric"`
}

// RecommendationsRequest holds the parameters of
// GET /agents/{agent}/recommendations.
type RecommendationsRequest struct {
	Agent  string `validate:"required"`
	Mode   string `validate:"omitempty,mode"`
	Metric string `validate:"omitempty,metric"`
	K      int    `validate:"gte=0"`
}

// SimilarItemsRequest holds the parameters of GET /items/{item}/similar.
type SimilarItemsRequest struct {
	Item string `validate:"required"`
	N    int    `validate:"gte=0"`
}

// toEngine converts a validated request into an engine request.
func (req *RecommendationsRequest) toEngine(requestID string) (recommend.Request, error) {
	mode, err := recommend.ParseMode(req.Mode)
	if err != nil {
		return recommend.Request{}, err
	}

	out := recommend.Request{
		Subject:   req.Agent,
		Mode:      mode,
		K:         req.K,
		RequestID: requestID,
	}
	if req.Metric != "" {
		metric, err := recommend.ParseMetric(req.Metric)
		if err != nil {
			return recommend.Request{}, err
		}
		out.Metric = &metric
	}
	return out, nil
}

// pathParam returns the decoded chi URL parameter. chi routes on RawPath
// when the request carries escaped slashes, so those values still need
// unescaping.
func pathParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value
	}
	if decoded, err := url.PathUnescape(value); err == nil {
		return decoded
	}
	return value
}

// queryInt parses an optional integer query parameter; absent means 0.
func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", recommend.ErrInvalidRequest, name, raw)
	}
	return v, nil
}
