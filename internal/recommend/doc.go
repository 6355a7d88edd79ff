// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

// Package recommend implements memory-based collaborative filtering over
// sparse rating matrices.
//
// # Architecture
//
// The package is layered from pure functions up to a stateful engine:
//
//   - Matrix: agent -> item -> rating, with Transform for the item view
//   - Similarity metrics: Distance, Pearson, Cosine, Jaccard
//   - TopMatches: ranks every other row against a subject
//   - Recommendations: user-based weighted average over similar agents
//   - SimilarItems / RecommendedItems: item-based prediction through a
//     precomputed ItemSimilarityIndex
//   - Engine: owns a private matrix copy, the index and a response cache
//
// # Determinism
//
// Every map iteration that feeds a floating point sum or an ordering runs
// over sorted keys. Ranked lists are ordered by score descending and then by
// identifier descending, so equal scores always come out in the same order.
//
// # Usage
//
//	engine, err := recommend.NewEngine(matrix, recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    Subject: "Toby",
//	    Mode:    recommend.ModeUserBased,
//	})
//
// # Thread Safety
//
// The pure functions never mutate their inputs. The engine is safe for
// concurrent use: index builds are serialized and swap the index in under a
// write lock, while queries take a shared lock.
//
// # References
//
//   - Segaran, T. "Programming Collective Intelligence", O'Reilly, 2007, ch. 2
//   - Sarwar et al. "Item-Based Collaborative Filtering Recommendation
//     Algorithms", WWW 2001
package recommend
