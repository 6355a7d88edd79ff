// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package recommend

import (
	"fmt"
	"sort"
)

// DefaultTopN is the number of matches returned when n <= 0.
const DefaultTopN = 5

// Match is a scored identifier: a neighbour in a match list, or a predicted
// rating in a recommendation list.
type Match struct {
	// ID is the agent or item identifier.
	ID string `json:"id"`

	// Score is a similarity score or a predicted rating.
	Score float64 `json:"score"`
}

// sortMatches orders by score descending, then by ID descending.
func sortMatches(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ID > matches[j].ID
	})
}

// TopMatches ranks every other outer key of m by similarity to subject and
// returns the best n. A non-positive n selects DefaultTopN.
func TopMatches(m Matrix, subject string, n int, metric Metric) ([]Match, error) {
	if !validMetric(metric) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMetric, int(metric))
	}
	row, err := m.Row(subject)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = DefaultTopN
	}

	scores := make([]Match, 0, len(m))
	for other, otherRow := range m {
		if other == subject {
			continue
		}
		scores = append(scores, Match{ID: other, Score: metric.Score(row, otherRow)})
	}

	sortMatches(scores)
	if len(scores) > n {
		scores = scores[:n]
	}
	return scores, nil
}
