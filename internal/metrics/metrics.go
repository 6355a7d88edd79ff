// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Similarity Metrics
	SimilarityComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "affinity_similarity_queries_total",
			Help: "Total number of similarity ranking queries by metric",
		},
		[]string{"metric"},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "affinity_recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"mode", "status"}, // status: "success", "error"
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "affinity_recommend_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"mode"},
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "affinity_recommend_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "affinity_recommend_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)

	// Item Index Metrics
	IndexBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "affinity_index_build_duration_seconds",
			Help:    "Duration of item similarity index builds in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	IndexBuildErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "affinity_index_build_errors_total",
			Help: "Total number of failed item similarity index builds",
		},
	)

	IndexItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "affinity_index_items",
			Help: "Number of items in the current similarity index",
		},
	)

	IndexVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "affinity_index_version",
			Help: "Version of the current similarity index",
		},
	)

	// Dataset Metrics
	DatasetAgents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "affinity_dataset_agents",
			Help: "Number of agents in the loaded preference matrix",
		},
	)

	DatasetItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "affinity_dataset_items",
			Help: "Number of items in the loaded preference matrix",
		},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordSimilarityQuery records a ranking query for a metric
func RecordSimilarityQuery(metric string) {
	SimilarityComputations.WithLabelValues(metric).Inc()
}

// RecordRecommendation records a recommendation request metric
func RecordRecommendation(mode string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	RecommendRequests.WithLabelValues(mode, status).Inc()
	RecommendDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordCacheLookup records a recommendation cache lookup
func RecordCacheLookup(hit bool) {
	if hit {
		RecommendCacheHits.Inc()
	} else {
		RecommendCacheMisses.Inc()
	}
}

// RecordIndexBuild records an item index build
func RecordIndexBuild(duration time.Duration, items, version int, err error) {
	IndexBuildDuration.Observe(duration.Seconds())
	if err != nil {
		IndexBuildErrors.Inc()
		return
	}
	IndexItems.Set(float64(items))
	IndexVersion.Set(float64(version))
}

// SetDatasetSize records the shape of the loaded matrix
func SetDatasetSize(agents, items int) {
	DatasetAgents.Set(float64(agents))
	DatasetItems.Set(float64(items))
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
