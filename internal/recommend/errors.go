// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package recommend

import "errors"

var (
	// ErrUnknownKey is returned when an agent or item is not present in the
	// matrix or in the item similarity index.
	ErrUnknownKey = errors.New("unknown key")

	// ErrNonFiniteRating is returned when a matrix holds NaN or Inf.
	ErrNonFiniteRating = errors.New("non-finite rating")

	// ErrUnknownMetric is returned when a metric name cannot be parsed.
	ErrUnknownMetric = errors.New("unknown similarity metric")

	// ErrInvalidRequest is returned for malformed recommendation requests.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrIndexNotBuilt is returned by item-based requests before the item
	// similarity index exists and on-demand builds are disabled.
	ErrIndexNotBuilt = errors.New("item similarity index not built")

	// ErrBuildInProgress is returned when an index build is already running.
	ErrBuildInProgress = errors.New("index build already in progress")
)
