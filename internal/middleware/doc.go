// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

// Package middleware provides the HTTP middleware Affinity layers under its
// chi router, ahead of chi's own RealIP and Recoverer:
//
//   - RequestID: X-Request-ID propagation into the logging context
//   - AccessLog: one zerolog line per request
//   - PrometheusMetrics: api_requests_total, api_request_duration_seconds
//     and api_active_requests, labelled by chi route pattern
//
// All three use the func(http.Handler) http.Handler shape accepted by
// chi.Router.Use.
package middleware
