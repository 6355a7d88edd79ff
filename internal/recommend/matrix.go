// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package recommend

import (
	"fmt"
	"math"
	"sort"
)

// Ratings maps an identifier (item or agent) to a rating.
// A missing key or a stored 0.0 both mean "unrated" depending on the caller.
type Ratings map[string]float64

// Rated reports whether id carries a non-zero rating.
func (r Ratings) Rated(id string) bool {
	v, ok := r[id]
	return ok && v != 0
}

// Keys returns the rated identifiers in ascending order.
func (r Ratings) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Matrix is a sparse preference matrix: outer key -> inner key -> rating.
// In the agent-centric orientation the outer key is an agent and the inner
// key an item; Transform flips the orientation.
//
// The core never mutates a Matrix it is handed.
type Matrix map[string]Ratings

// Row returns the ratings stored under id.
func (m Matrix) Row(id string) (Ratings, error) {
	row, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, id)
	}
	return row, nil
}

// Has reports whether id is an outer key of the matrix.
func (m Matrix) Has(id string) bool {
	_, ok := m[id]
	return ok
}

// Keys returns the outer keys in ascending order.
func (m Matrix) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Items returns the union of inner keys in ascending order.
func (m Matrix) Items() []string {
	seen := make(map[string]struct{})
	for _, row := range m {
		for item := range row {
			seen[item] = struct{}{}
		}
	}
	items := make([]string, 0, len(seen))
	for item := range seen {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// Transform returns the transpose of m: result[inner][outer] = rating.
// Applying it twice yields a matrix equal to m (agents without any ratings
// are not representable in the transpose and are dropped).
func (m Matrix) Transform() Matrix {
	out := make(Matrix)
	for outer, row := range m {
		for inner, rating := range row {
			if out[inner] == nil {
				out[inner] = make(Ratings)
			}
			out[inner][outer] = rating
		}
	}
	return out
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for k, row := range m {
		cp := make(Ratings, len(row))
		for item, v := range row {
			cp[item] = v
		}
		out[k] = cp
	}
	return out
}

// Validate checks that every rating is finite.
func (m Matrix) Validate() error {
	for _, outer := range m.Keys() {
		row := m[outer]
		for _, inner := range row.Keys() {
			v := row[inner]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: %q/%q = %v", ErrNonFiniteRating, outer, inner, v)
			}
		}
	}
	return nil
}

// MatrixStats summarizes the shape of a matrix.
type MatrixStats struct {
	// Agents is the number of outer keys.
	Agents int `json:"agents"`

	// Items is the number of distinct inner keys.
	Items int `json:"items"`

	// Ratings is the number of stored entries, zero placeholders included.
	Ratings int `json:"ratings"`

	// Density is Ratings / (Agents * Items), 0 for an empty matrix.
	Density float64 `json:"density"`
}

// Stats computes summary statistics for m.
func (m Matrix) Stats() MatrixStats {
	stats := MatrixStats{
		Agents: len(m),
		Items:  len(m.Items()),
	}
	for _, row := range m {
		stats.Ratings += len(row)
	}
	if cells := stats.Agents * stats.Items; cells > 0 {
		stats.Density = float64(stats.Ratings) / float64(cells)
	}
	return stats
}
