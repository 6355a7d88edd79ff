// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

/*
Affinity is a similarity-based recommendation engine over sparse rating
matrices.

Usage:

	affinity [--config file] [--log-level level] [--data-source src] <command>

Commands:

	matches <agent>     agents most similar to an agent
	recommend <agent>   predicted ratings for unrated items (--mode user|item)
	similar <item>      items most similar to an item
	stats               dataset shape
	serve               HTTP API under a supervisor tree

Configuration is read from defaults, then a YAML file, then the environment
(see internal/config). Command-line flags override all three. Results go to
stdout; logs go to stderr.
*/
package main
