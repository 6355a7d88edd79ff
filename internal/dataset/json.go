// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package dataset

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/affinity/internal/recommend"
)

// LoadJSON reads a matrix from a JSON file shaped as
// {"agent": {"item": rating, ...}, ...}.
func LoadJSON(path string) (recommend.Matrix, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	m, err := DecodeJSON(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return m, nil
}

// DecodeJSON reads a matrix from r and validates it.
func DecodeJSON(r io.Reader) (recommend.Matrix, error) {
	var m recommend.Matrix
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, err
	}
	if m == nil {
		m = recommend.Matrix{}
	}
	for agent, row := range m {
		if row == nil {
			m[agent] = recommend.Ratings{}
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
