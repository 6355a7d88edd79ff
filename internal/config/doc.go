// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

/*
Package config loads Affinity configuration with Koanf v2.

Sources are layered, later ones winning:

 1. Built-in defaults (structs provider)
 2. A YAML file: the --config flag, else CONFIG_PATH, else the first of
    affinity.yaml, affinity.yml, /etc/affinity/config.yaml
 3. Environment variables from a fixed mapping table

# Environment Variables

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: include file:line (default: false)

Data:
  - DATA_SOURCE: critics, movielens or json (default: critics)
  - DATA_PATH: MovieLens directory or JSON file
  - DATA_FILL_UNRATED: store 0.0 for unrated pairs (default: false)

Recommendation engine:
  - RECOMMEND_USER_METRIC: default metric for matches and user mode (default: pearson)
  - RECOMMEND_ITEM_METRIC: metric for the item index (default: distance)
  - RECOMMEND_TOP_N, RECOMMEND_MAX_TOP_N: match counts (default: 5, 100)
  - RECOMMEND_SIMILAR_ITEMS: neighbours per item (default: 10)
  - RECOMMEND_WORKERS: index build goroutines (default: 1)
  - RECOMMEND_PROGRESS_EVERY: build progress interval (default: 100)
  - RECOMMEND_BUILD_ON_DEMAND: build on first item-based request (default: true)
  - RECOMMEND_WARM_INDEX: build when the server starts (default: false)
  - RECOMMEND_MAX_K: recommendation cap (default: 100)
  - RECOMMEND_CACHE_ENABLED, RECOMMEND_CACHE_TTL, RECOMMEND_CACHE_MAX_ENTRIES

HTTP server:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8080)
  - HTTP_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT (default: 30s, 10s)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW (default: 100 per 1m)
  - DISABLE_RATE_LIMIT (default: false)
  - CORS_ORIGINS: comma-separated (default: *)

# Validation

Load finishes with Validate, which applies the validate struct tags through
internal/validation and then checks durations the tags do not cover.
*/
package config
