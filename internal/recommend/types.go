// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package recommend

import (
	"fmt"
	"strings"
	"time"
)

// Mode specifies how recommendations are produced.
type Mode int

const (
	// ModeUserBased weights the ratings of similar agents.
	ModeUserBased Mode = iota

	// ModeItemBased weights the subject's own ratings through the item
	// similarity index.
	ModeItemBased
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeUserBased:
		return "user"
	case ModeItemBased:
		return "item"
	default:
		return "unknown"
	}
}

// ParseMode converts "user" or "item" to a Mode. The empty string is user.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "user", "user_based", "user-based":
		return ModeUserBased, nil
	case "item", "item_based", "item-based":
		return ModeItemBased, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidRequest, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Request contains parameters for a recommendation request.
type Request struct {
	// Subject is the agent to recommend for.
	Subject string `json:"subject"`

	// Mode selects user-based or item-based aggregation.
	Mode Mode `json:"mode"`

	// Metric overrides the configured user-based metric.
	// Ignored in item-based mode, where the index metric applies.
	Metric *Metric `json:"metric,omitempty"`

	// K is the number of recommendations to return.
	// Zero returns every prediction, capped at Limits.MaxK.
	K int `json:"k,omitempty"`

	// RequestID is used for tracing. Generated if empty.
	RequestID string `json:"request_id,omitempty"`
}

// Response contains recommendation results.
type Response struct {
	// Items are the predictions, best first.
	Items []Match `json:"items"`

	// Metadata describes how the response was produced.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains information about the recommendation process.
type ResponseMetadata struct {
	// RequestID is the tracing identifier.
	RequestID string `json:"request_id"`

	// Subject is the agent the response is for.
	Subject string `json:"subject"`

	// Mode is the aggregation mode used.
	Mode string `json:"mode"`

	// Metric is the similarity metric used.
	Metric string `json:"metric"`

	// LatencyMS is the processing time in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// CacheHit indicates whether the response came from cache.
	CacheHit bool `json:"cache_hit"`

	// IndexVersion is the item index version used, 0 for user-based.
	IndexVersion int `json:"index_version"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}

// IndexStatus describes the item similarity index.
type IndexStatus struct {
	// Built reports whether an index is available.
	Built bool `json:"built"`

	// Building reports whether a build is running.
	Building bool `json:"building"`

	// Version increments on every successful build.
	Version int `json:"version"`

	// Items is the number of indexed items.
	Items int `json:"items"`

	// Neighbors is the per-item neighbour count.
	Neighbors int `json:"neighbors"`

	// Metric is the metric the index was built with.
	Metric string `json:"metric"`

	// BuiltAt is when the last build finished.
	BuiltAt time.Time `json:"built_at"`

	// BuildDuration is how long the last build took.
	BuildDuration time.Duration `json:"build_duration"`
}

// Metrics contains engine counters.
type Metrics struct {
	// Requests is the number of Recommend calls.
	Requests int64 `json:"requests"`

	// CacheHits is the number of responses served from cache.
	CacheHits int64 `json:"cache_hits"`

	// CacheMisses is the number of cache lookups that missed.
	CacheMisses int64 `json:"cache_misses"`

	// Errors is the number of failed Recommend calls.
	Errors int64 `json:"errors"`

	// IndexBuilds is the number of successful index builds.
	IndexBuilds int64 `json:"index_builds"`
}
