// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package recommend

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func buildCriticsIndex(t *testing.T, opts SimilarItemsOptions) ItemSimilarityIndex {
	t.Helper()

	idx, err := SimilarItems(context.Background(), critics(), opts)
	if err != nil {
		t.Fatalf("SimilarItems() error = %v", err)
	}
	return idx
}

func TestSimilarItems(t *testing.T) {
	t.Parallel()

	idx := buildCriticsIndex(t, SimilarItemsOptions{})

	t.Run("covers every item", func(t *testing.T) {
		if len(idx) != 6 {
			t.Errorf("len(index) = %d, want 6", len(idx))
		}
		for item, matches := range idx {
			if len(matches) != 5 {
				t.Errorf("len(index[%q]) = %d, want 5", item, len(matches))
			}
			assertNonIncreasing(t, matches)
		}
	})

	t.Run("superman returns neighbours", func(t *testing.T) {
		assertMatches(t, idx["Superman Returns"], []Match{
			{ID: "Snakes on a Plane", Score: 0.16666666666666666},
			{ID: "The Night Listener", Score: 0.10256410256410256},
			{ID: "Lady in the Water", Score: 0.09090909090909091},
			{ID: "Just My Luck", Score: 0.06451612903225806},
			{ID: "You, Me and Dupree", Score: 0.05333333333333334},
		})
	})

	t.Run("neighbour limit", func(t *testing.T) {
		small := buildCriticsIndex(t, SimilarItemsOptions{Neighbors: 2})
		for item, matches := range small {
			if len(matches) != 2 {
				t.Errorf("len(index[%q]) = %d, want 2", item, len(matches))
			}
		}
	})
}

func TestSimilarItems_WorkersDoNotChangeResult(t *testing.T) {
	t.Parallel()

	serial := buildCriticsIndex(t, SimilarItemsOptions{Workers: 1})
	for _, workers := range []int{2, 3, 4, 16} {
		parallel := buildCriticsIndex(t, SimilarItemsOptions{Workers: workers})
		if !reflect.DeepEqual(serial, parallel) {
			t.Errorf("index with %d workers differs from serial build", workers)
		}
	}
}

func TestSimilarItems_Progress(t *testing.T) {
	t.Parallel()

	type call struct{ done, total int }
	var calls []call

	buildCriticsIndex(t, SimilarItemsOptions{
		ProgressEvery: 2,
		Progress: func(done, total int) {
			calls = append(calls, call{done, total})
		},
	})

	want := []call{{2, 6}, {4, 6}, {6, 6}}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("progress calls = %v, want %v", calls, want)
	}
}

func TestSimilarItems_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	idx, err := SimilarItems(ctx, critics(), SimilarItemsOptions{Workers: 2})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("SimilarItems() error = %v, want context.Canceled", err)
	}
	if idx != nil {
		t.Errorf("SimilarItems() index = %v, want nil on cancellation", idx)
	}
}

func TestSimilarItems_RankingErrorAbortsBuild(t *testing.T) {
	t.Parallel()

	for _, workers := range []int{1, 3} {
		var finished bool
		idx, err := SimilarItems(context.Background(), critics(), SimilarItemsOptions{
			Metric:        Metric(9),
			Workers:       workers,
			ProgressEvery: 1,
			Progress:      func(done, total int) { finished = finished || done == total },
		})
		if !errors.Is(err, ErrUnknownMetric) {
			t.Errorf("workers=%d: SimilarItems() error = %v, want ErrUnknownMetric", workers, err)
		}
		if idx != nil {
			t.Errorf("workers=%d: SimilarItems() index = %v, want nil", workers, idx)
		}
		if finished {
			t.Errorf("workers=%d: completion reported for a failed build", workers)
		}
	}
}

func TestSimilarItems_Empty(t *testing.T) {
	t.Parallel()

	idx, err := SimilarItems(context.Background(), Matrix{}, SimilarItemsOptions{})
	if err != nil {
		t.Fatalf("SimilarItems() error = %v", err)
	}
	if len(idx) != 0 {
		t.Errorf("len(index) = %d, want 0", len(idx))
	}
}

func TestRecommendedItems(t *testing.T) {
	t.Parallel()

	m := critics()

	tests := []struct {
		name    string
		subject string
		opts    SimilarItemsOptions
		want    []Match
	}{
		{
			name:    "toby full index",
			subject: "Toby",
			want: []Match{
				{ID: "The Night Listener", Score: 3.182634730538922},
				{ID: "Just My Luck", Score: 2.5983318700614575},
				{ID: "Lady in the Water", Score: 2.4730878186968837},
			},
		},
		{
			name:    "toby two neighbours",
			subject: "Toby",
			opts:    SimilarItemsOptions{Neighbors: 2},
			want: []Match{
				{ID: "The Night Listener", Score: 4.319672131147541},
				{ID: "Lady in the Water", Score: 2.25},
				{ID: "Just My Luck", Score: 1.0},
			},
		},
		{
			name:    "michael phillips",
			subject: "Michael Phillips",
			want: []Match{
				{ID: "Just My Luck", Score: 3.137388345384942},
				{ID: "You, Me and Dupree", Score: 2.9614175977653634},
			},
		},
		{
			name:    "lisa rose rated everything",
			subject: "Lisa Rose",
			want:    []Match{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := buildCriticsIndex(t, tt.opts)
			got, err := RecommendedItems(m, idx, tt.subject)
			if err != nil {
				t.Fatalf("RecommendedItems() error = %v", err)
			}
			assertMatches(t, got, tt.want)
		})
	}
}

func TestRecommendedItems_SkipsZeroWeight(t *testing.T) {
	t.Parallel()

	m := Matrix{"s": {"a": 4, "b": 2}}
	idx := ItemSimilarityIndex{
		"a": {{ID: "c", Score: 0.5}, {ID: "d", Score: 0.25}},
		"b": {{ID: "c", Score: -0.5}, {ID: "d", Score: 0.25}},
	}

	got, err := RecommendedItems(m, idx, "s")
	if err != nil {
		t.Fatalf("RecommendedItems() error = %v", err)
	}
	// c: weights 0.5 + -0.5 = 0, omitted. d: (0.25*4 + 0.25*2) / 0.5 = 3.
	assertMatches(t, got, []Match{{ID: "d", Score: 3}})
}

func TestRecommendedItems_SkipsPresentKeys(t *testing.T) {
	t.Parallel()

	// A zero placeholder still counts as rated here.
	m := Matrix{"s": {"a": 4, "c": 0}}
	idx := ItemSimilarityIndex{
		"a": {{ID: "c", Score: 0.9}, {ID: "d", Score: 0.1}},
		"c": {{ID: "a", Score: 0.9}, {ID: "d", Score: 0.5}},
	}

	got, err := RecommendedItems(m, idx, "s")
	if err != nil {
		t.Fatalf("RecommendedItems() error = %v", err)
	}
	// d: (0.1*4 + 0.5*0) / 0.6
	assertMatches(t, got, []Match{{ID: "d", Score: 0.4 / 0.6}})
}

func TestRecommendedItems_Errors(t *testing.T) {
	t.Parallel()

	m := critics()
	idx := buildCriticsIndex(t, SimilarItemsOptions{})

	if _, err := RecommendedItems(m, idx, "Nobody"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("RecommendedItems(Nobody) error = %v, want ErrUnknownKey", err)
	}

	delete(idx, "Superman Returns")
	if _, err := RecommendedItems(m, idx, "Toby"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("RecommendedItems(missing index entry) error = %v, want ErrUnknownKey", err)
	}
}
