// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package recommend

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// UserBased contains parameters for user-based recommendations.
	UserBased UserBasedConfig `json:"user_based"`

	// ItemBased contains parameters for the item similarity index.
	ItemBased ItemBasedConfig `json:"item_based"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains response caching parameters.
	Cache CacheConfig `json:"cache"`
}

// UserBasedConfig contains parameters for user-based recommendations.
type UserBasedConfig struct {
	// Metric is used when a request does not name one.
	// Default: pearson.
	Metric Metric `json:"metric"`
}

// ItemBasedConfig contains parameters for the item similarity index.
type ItemBasedConfig struct {
	// Metric scores item pairs when building the index.
	// Default: distance.
	Metric Metric `json:"metric"`

	// Neighbors is the number of similar items stored per item.
	// Default: 10.
	Neighbors int `json:"neighbors"`

	// Workers is the number of goroutines used for the build.
	// Default: 1.
	Workers int `json:"workers"`

	// ProgressEvery controls how often build progress is logged, in items.
	// Default: 100.
	ProgressEvery int `json:"progress_every"`

	// BuildOnDemand builds the index on the first item-based request.
	// When false such requests fail with ErrIndexNotBuilt.
	// Default: true.
	BuildOnDemand bool `json:"build_on_demand"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultTopN is the match count used when a caller passes n <= 0.
	// Default: 5.
	DefaultTopN int `json:"default_top_n"`

	// MaxTopN caps the n accepted by match queries.
	// Default: 100.
	MaxTopN int `json:"max_top_n"`

	// MaxK caps the number of recommendations returned.
	// Default: 100.
	MaxK int `json:"max_k"`
}

// CacheConfig contains response caching parameters.
type CacheConfig struct {
	// Enabled controls whether caching is active.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 5m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of cached responses.
	// Default: 1000.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns a Config with the reference defaults.
func DefaultConfig() *Config {
	return &Config{
		UserBased: UserBasedConfig{
			Metric: MetricPearson,
		},
		ItemBased: ItemBasedConfig{
			Metric:        MetricDistance,
			Neighbors:     DefaultSimilarItems,
			Workers:       1,
			ProgressEvery: DefaultProgressEvery,
			BuildOnDemand: true,
		},
		Limits: LimitsConfig{
			DefaultTopN: DefaultTopN,
			MaxTopN:     100,
			MaxK:        100,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 1000,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if !validMetric(c.UserBased.Metric) {
		return fmt.Errorf("user_based.metric is not a known metric, got %d", int(c.UserBased.Metric))
	}
	if !validMetric(c.ItemBased.Metric) {
		return fmt.Errorf("item_based.metric is not a known metric, got %d", int(c.ItemBased.Metric))
	}
	if c.ItemBased.Neighbors < 1 {
		return fmt.Errorf("item_based.neighbors must be positive, got %d", c.ItemBased.Neighbors)
	}
	if c.ItemBased.Workers < 1 {
		return fmt.Errorf("item_based.workers must be positive, got %d", c.ItemBased.Workers)
	}
	if c.ItemBased.ProgressEvery < 1 {
		return fmt.Errorf("item_based.progress_every must be positive, got %d", c.ItemBased.ProgressEvery)
	}
	if c.Limits.DefaultTopN < 1 {
		return fmt.Errorf("limits.default_top_n must be positive, got %d", c.Limits.DefaultTopN)
	}
	if c.Limits.MaxTopN < c.Limits.DefaultTopN {
		return fmt.Errorf("limits.max_top_n must be >= default_top_n (%d), got %d", c.Limits.DefaultTopN, c.Limits.MaxTopN)
	}
	if c.Limits.MaxK < 1 {
		return fmt.Errorf("limits.max_k must be positive, got %d", c.Limits.MaxK)
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}
	return nil
}

func validMetric(m Metric) bool {
	return m >= MetricDistance && m <= MetricJaccard
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// Direct field copy - all nested structs contain only value types
	return &Config{
		UserBased: c.UserBased,
		ItemBased: c.ItemBased,
		Limits:    c.Limits,
		Cache:     c.Cache,
	}
}

// MarshalJSON implements custom JSON marshaling for duration fields.
func (c *Config) MarshalJSON() ([]byte, error) {
	type Alias Config
	type cacheJSON struct {
		Enabled    bool   `json:"enabled"`
		TTL        string `json:"ttl"`
		MaxEntries int    `json:"max_entries"`
	}
	return json.Marshal(&struct {
		*Alias
		Cache cacheJSON `json:"cache"`
	}{
		Alias: (*Alias)(c),
		Cache: cacheJSON{
			Enabled:    c.Cache.Enabled,
			TTL:        c.Cache.TTL.String(),
			MaxEntries: c.Cache.MaxEntries,
		},
	})
}
