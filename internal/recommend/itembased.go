// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package recommend

import (
	"context"
	"fmt"
	"sync"
)

const (
	// DefaultSimilarItems is the per-item neighbour count of the index.
	DefaultSimilarItems = 10

	// DefaultProgressEvery is the progress callback interval in items.
	DefaultProgressEvery = 100
)

// ItemSimilarityIndex maps each item to its most similar items, best first.
// It is built once by SimilarItems and reused across RecommendedItems calls.
type ItemSimilarityIndex map[string][]Match

// Neighbors returns the match list for item.
func (idx ItemSimilarityIndex) Neighbors(item string) ([]Match, error) {
	matches, ok := idx[item]
	if !ok {
		return nil, fmt.Errorf("%w: item %q not in similarity index", ErrUnknownKey, item)
	}
	return matches, nil
}

// SimilarItemsOptions controls an index build.
type SimilarItemsOptions struct {
	// Neighbors is the number of similar items kept per item.
	// Default: 10.
	Neighbors int

	// Metric scores item pairs. The zero value is MetricDistance.
	Metric Metric

	// Workers is the number of goroutines scoring items.
	// The result does not depend on it. Default: 1.
	Workers int

	// ProgressEvery is how many items pass between Progress calls.
	// Default: 100.
	ProgressEvery int

	// Progress, if set, receives (done, total) periodically and once at the end.
	Progress func(done, total int)
}

func (o *SimilarItemsOptions) applyDefaults() {
	if o.Neighbors <= 0 {
		o.Neighbors = DefaultSimilarItems
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.ProgressEvery <= 0 {
		o.ProgressEvery = DefaultProgressEvery
	}
}

// SimilarItems transposes the agent-centric matrix m and ranks, for every
// item, the other items by similarity.
//
// The build checks ctx between items and returns ctx.Err() on cancellation.
//
//nolint:gocritic // hugeParam: opts passed by value so defaults never leak to the caller
func SimilarItems(ctx context.Context, m Matrix, opts SimilarItemsOptions) (ItemSimilarityIndex, error) {
	opts.applyDefaults()

	itemPrefs := m.Transform()
	items := itemPrefs.Keys()
	total := len(items)
	index := make(ItemSimilarityIndex, total)

	if total == 0 {
		if opts.Progress != nil {
			opts.Progress(0, 0)
		}
		return index, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		done     int
		firstErr error
	)

	workers := opts.Workers
	if workers > total {
		workers = total
	}
	chunkSize := (total + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > total {
			end = total
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(chunk []string) {
			defer wg.Done()

			for _, item := range chunk {
				if contextCancelled(ctx) {
					return
				}

				matches, err := TopMatches(itemPrefs, item, opts.Neighbors, opts.Metric)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("rank neighbours of %q: %w", item, err)
					}
					mu.Unlock()
					cancel()
					return
				}

				mu.Lock()
				index[item] = matches
				done++
				if opts.Progress != nil && done%opts.ProgressEvery == 0 && done != total {
					opts.Progress(done, total)
				}
				mu.Unlock()
			}
		}(items[start:end])
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.Progress != nil {
		opts.Progress(total, total)
	}
	return index, nil
}

// RecommendedItems predicts ratings for items subject has not rated by
// weighting each rated item's neighbours by the subject's rating.
//
//	score(c) = sum(sim(i, c) * r(s, i)) / sum(sim(i, c))
//
// Candidates already present in the subject's row are skipped, whatever the
// stored value. There is no sign filter on similarity; a candidate whose
// weights sum to exactly zero is omitted.
func RecommendedItems(m Matrix, index ItemSimilarityIndex, subject string) ([]Match, error) {
	userRatings, err := m.Row(subject)
	if err != nil {
		return nil, err
	}

	scores := make(map[string]float64)
	totalSim := make(map[string]float64)

	for _, item := range userRatings.Keys() {
		rating := userRatings[item]

		neighbors, err := index.Neighbors(item)
		if err != nil {
			return nil, err
		}

		for _, n := range neighbors {
			if _, rated := userRatings[n.ID]; rated {
				continue
			}
			scores[n.ID] += n.Score * rating
			totalSim[n.ID] += n.Score
		}
	}

	rankings := make([]Match, 0, len(scores))
	for item, score := range scores {
		weight := totalSim[item]
		if weight == 0 {
			continue
		}
		rankings = append(rankings, Match{ID: item, Score: score / weight})
	}

	sortMatches(rankings)
	return rankings, nil
}

// contextCancelled reports whether ctx is done without blocking.
func contextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
