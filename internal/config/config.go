// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/affinity/internal/logging"
	"github.com/tomtom215/affinity/internal/recommend"
)

// Config holds all application configuration.
//
// Loading order (later layers override earlier ones):
//  1. Defaults built into defaultConfig
//  2. An optional YAML file
//  3. Environment variables
//
// Config is immutable after Load and safe for concurrent reads.
type Config struct {
	Logging   LoggingConfig   `koanf:"logging"`
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level.
	// Default: info
	Level string `koanf:"level" validate:"oneof=trace debug info warn error fatal disabled"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller adds file:line to each entry.
	// Default: false
	Caller bool `koanf:"caller"`
}

// DataConfig selects the preference matrix to load.
type DataConfig struct {
	// Source is critics, movielens or json.
	// Default: critics
	Source string `koanf:"source" validate:"oneof=critics movielens json"`

	// Path is the MovieLens directory or the JSON file. Unused for critics.
	Path string `koanf:"path" validate:"required_unless=Source critics"`

	// FillUnrated stores 0.0 for every unrated (agent, item) pair after loading.
	// Default: false
	FillUnrated bool `koanf:"fill_unrated"`
}

// RecommendConfig holds engine settings. EngineConfig maps it onto
// recommend.Config.
type RecommendConfig struct {
	// UserMetric is the default metric for matches and user-based requests.
	// Default: pearson
	UserMetric string `koanf:"user_metric" validate:"metric"`

	// ItemMetric scores item pairs in the similarity index.
	// Default: distance
	ItemMetric string `koanf:"item_metric" validate:"metric"`

	// TopN is the match count used when a caller does not give one.
	// Default: 5
	TopN int `koanf:"top_n" validate:"min=1"`

	// MaxTopN caps the match count a caller may request.
	// Default: 100
	MaxTopN int `koanf:"max_top_n" validate:"gtefield=TopN"`

	// SimilarItems is the neighbour count stored per item in the index.
	// Default: 10
	SimilarItems int `koanf:"similar_items" validate:"min=1,max=10000"`

	// Workers is the number of goroutines building the index.
	// Default: 1
	Workers int `koanf:"workers" validate:"min=1,max=1024"`

	// ProgressEvery logs build progress every N items.
	// Default: 100
	ProgressEvery int `koanf:"progress_every" validate:"min=1"`

	// BuildOnDemand builds the index on the first item-based request.
	// Default: true
	BuildOnDemand bool `koanf:"build_on_demand"`

	// WarmIndex builds the index at server start. Readiness waits for it.
	// Default: false
	WarmIndex bool `koanf:"warm_index"`

	// MaxK caps the number of recommendations returned.
	// Default: 100
	MaxK int `koanf:"max_k" validate:"min=1"`

	// CacheEnabled turns on the response cache.
	// Default: true
	CacheEnabled bool `koanf:"cache_enabled"`

	// CacheTTL is the lifetime of a cached response.
	// Default: 5m
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// CacheMaxEntries bounds the response cache.
	// Default: 1000
	CacheMaxEntries int `koanf:"cache_max_entries" validate:"min=1"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the bind address.
	// Default: 0.0.0.0
	Host string `koanf:"host" validate:"required"`

	// Port is the listen port.
	// Default: 8080
	Port int `koanf:"port" validate:"min=1,max=65535"`

	// Timeout bounds reads, writes and each request.
	// Default: 30s
	Timeout time.Duration `koanf:"timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RateLimitReqs is the per-IP request budget per RateLimitWindow.
	// Default: 100
	RateLimitReqs int `koanf:"rate_limit_reqs" validate:"min=0"`

	// RateLimitWindow is the rate limiting window.
	// Default: 1m
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// RateLimitDisabled turns rate limiting off.
	// Default: false
	RateLimitDisabled bool `koanf:"rate_limit_disabled"`

	// CORSOrigins lists the allowed origins. "*" allows any.
	// Default: ["*"]
	CORSOrigins []string `koanf:"cors_origins"`
}

// Addr returns host:port for net.Listen.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// ToLogging returns the logging.Config for this section.
func (l LoggingConfig) ToLogging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	cfg.Format = l.Format
	cfg.Caller = l.Caller
	return cfg
}

// EngineConfig maps the section onto recommend.Config.
func (r RecommendConfig) EngineConfig() (*recommend.Config, error) {
	userMetric, err := recommend.ParseMetric(r.UserMetric)
	if err != nil {
		return nil, fmt.Errorf("recommend.user_metric: %w", err)
	}
	itemMetric, err := recommend.ParseMetric(r.ItemMetric)
	if err != nil {
		return nil, fmt.Errorf("recommend.item_metric: %w", err)
	}

	cfg := recommend.DefaultConfig()
	cfg.UserBased.Metric = userMetric
	cfg.ItemBased.Metric = itemMetric
	cfg.ItemBased.Neighbors = r.SimilarItems
	cfg.ItemBased.Workers = r.Workers
	cfg.ItemBased.ProgressEvery = r.ProgressEvery
	cfg.ItemBased.BuildOnDemand = r.BuildOnDemand
	cfg.Limits.DefaultTopN = r.TopN
	cfg.Limits.MaxTopN = r.MaxTopN
	cfg.Limits.MaxK = r.MaxK
	cfg.Cache.Enabled = r.CacheEnabled
	cfg.Cache.TTL = r.CacheTTL
	cfg.Cache.MaxEntries = r.CacheMaxEntries

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
