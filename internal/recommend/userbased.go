// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package recommend

// Recommendations predicts ratings for the items subject has not rated,
// as a similarity-weighted average over every other agent.
//
// Agents whose similarity to subject is <= 0 contribute nothing. An item
// counts as unrated when it is absent from the subject's row or stored as 0.
//
//	score(i) = sum(sim(s, o) * r(o, i)) / sum(sim(s, o))
func Recommendations(m Matrix, subject string, metric Metric) ([]Match, error) {
	row, err := m.Row(subject)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64)
	simSums := make(map[string]float64)

	for _, other := range m.Keys() {
		if other == subject {
			continue
		}
		otherRow := m[other]

		sim := metric.Score(row, otherRow)
		if sim <= 0 {
			continue
		}

		for _, item := range otherRow.Keys() {
			if row.Rated(item) {
				continue
			}
			totals[item] += otherRow[item] * sim
			simSums[item] += sim
		}
	}

	rankings := make([]Match, 0, len(totals))
	for item, total := range totals {
		rankings = append(rankings, Match{ID: item, Score: total / simSums[item]})
	}

	sortMatches(rankings)
	return rankings, nil
}
