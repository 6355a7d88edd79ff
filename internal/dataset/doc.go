// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

// Package dataset loads preference matrices for the recommendation engine.
//
// Three sources are supported:
//
//   - critics: the built-in seven-critic film ratings
//   - movielens: a MovieLens 100k directory (u.item, u.data)
//   - json: a JSON object of objects, agent -> item -> rating
//
// Loaders only read. They never write matrices back anywhere.
package dataset
