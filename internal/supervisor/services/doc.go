// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

// Package services adapts Affinity components to suture.Service.
//
//   - HTTPServerService: binds the API address and drains connections on cancel
//   - IndexWarmService: one item similarity index build, then
//     suture.ErrDoNotRestart
package services
