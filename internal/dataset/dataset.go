// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package dataset

import (
	"errors"
	"fmt"

	"github.com/tomtom215/affinity/internal/recommend"
)

// Supported data sources.
const (
	SourceCritics   = "critics"
	SourceMovieLens = "movielens"
	SourceJSON      = "json"
)

// ErrUnknownSource is returned for a data source name Load does not know.
var ErrUnknownSource = errors.New("unknown data source")

// Load returns the matrix for source. path is ignored for the critics set.
func Load(source, path string) (recommend.Matrix, error) {
	switch source {
	case SourceCritics, "":
		return Critics(), nil
	case SourceMovieLens:
		if path == "" {
			return nil, errors.New("movielens source requires a directory path")
		}
		return LoadMovieLens(path)
	case SourceJSON:
		if path == "" {
			return nil, errors.New("json source requires a file path")
		}
		return LoadJSON(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
}

// FillUnrated stores an explicit 0.0 for every item an agent has not rated,
// producing a dense matrix. It mutates m. User-based recommendations treat
// these placeholders as unrated; item-based recommendations treat any stored
// key as already seen.
func FillUnrated(m recommend.Matrix) {
	items := m.Items()
	for _, row := range m {
		for _, item := range items {
			if _, ok := row[item]; !ok {
				row[item] = 0
			}
		}
	}
}
