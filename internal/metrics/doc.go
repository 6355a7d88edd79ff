// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

/*
Package metrics provides Prometheus metrics collection and export for observability.

# Overview

The package provides metrics for:
  - Similarity ranking queries by metric
  - Recommendation latency, outcomes and cache efficiency
  - Item similarity index builds
  - HTTP request latency and throughput

All collectors are registered with the default registry through promauto and
exposed at /metrics by the API server:

	curl http://localhost:8080/metrics

# Usage

	start := time.Now()
	resp, err := engine.Recommend(ctx, req)
	metrics.RecordRecommendation("user", time.Since(start), err)
*/
package metrics
