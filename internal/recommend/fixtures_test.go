// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package recommend

import (
	"math"
	"testing"
)

const epsilon = 1e-9

// critics returns the seven-critic, six-film reference matrix.
func critics() Matrix {
	return Matrix{
		"Lisa Rose": {
			"Lady in the Water": 2.5, "Snakes on a Plane": 3.5, "Just My Luck": 3.0,
			"Superman Returns": 3.5, "You, Me and Dupree": 2.5, "The Night Listener": 3.0,
		},
		"Gene Seymour": {
			"Lady in the Water": 3.0, "Snakes on a Plane": 3.5, "Just My Luck": 1.5,
			"Superman Returns": 5.0, "The Night Listener": 3.0, "You, Me and Dupree": 3.5,
		},
		"Michael Phillips": {
			"Lady in the Water": 2.5, "Snakes on a Plane": 3.0, "Superman Returns": 3.5,
			"The Night Listener": 4.0,
		},
		"Claudia Puig": {
			"Snakes on a Plane": 3.5, "Just My Luck": 3.0, "The Night Listener": 4.5,
			"Superman Returns": 4.0, "You, Me and Dupree": 2.5,
		},
		"Mick LaSalle": {
			"Lady in the Water": 3.0, "Snakes on a Plane": 4.0, "Just My Luck": 2.0,
			"Superman Returns": 3.0, "The Night Listener": 3.0, "You, Me and Dupree": 2.0,
		},
		"Jack Matthews": {
			"Lady in the Water": 3.0, "Snakes on a Plane": 4.0, "The Night Listener": 3.0,
			"Superman Returns": 5.0, "You, Me and Dupree": 3.5,
		},
		"Toby": {
			"Snakes on a Plane": 4.5, "You, Me and Dupree": 1.0, "Superman Returns": 4.0,
		},
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}

// assertMatches compares IDs exactly and scores within epsilon.
func assertMatches(t *testing.T, got, want []Match) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d (got %v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Errorf("[%d].ID = %q, want %q", i, got[i].ID, want[i].ID)
		}
		if !approxEqual(got[i].Score, want[i].Score) {
			t.Errorf("[%d].Score = %v, want %v", i, got[i].Score, want[i].Score)
		}
	}
}

// assertNonIncreasing checks that scores never increase.
func assertNonIncreasing(t *testing.T, matches []Match) {
	t.Helper()

	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Errorf("score[%d] = %v > score[%d] = %v", i, matches[i].Score, i-1, matches[i-1].Score)
		}
	}
}
