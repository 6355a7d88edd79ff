// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"

	"github.com/tomtom215/affinity/internal/metrics"
)

// Engine serves similarity queries and recommendations over an immutable
// preference matrix. It owns the item similarity index and a response cache.
// It is safe for concurrent use.
type Engine struct {
	// Configuration
	config *Config
	logger zerolog.Logger

	// Data, read-only after construction
	agents Matrix
	items  Matrix

	// Item similarity index state
	buildMu       sync.Mutex
	indexMu       sync.RWMutex
	index         ItemSimilarityIndex
	indexVersion  int
	indexBuiltAt  time.Time
	indexDuration time.Duration
	building      atomic.Bool

	// Metrics
	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	errorCount   atomic.Int64
	buildCount   atomic.Int64

	// Cache (nil when disabled)
	cache *expirable.LRU[string, *Response]
}

// NewEngine creates a new recommendation engine over a private copy of m.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(m Matrix, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid matrix: %w", err)
	}

	agents := m.Clone()
	e := &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
		agents: agents,
		items:  agents.Transform(),
	}

	if e.config.Cache.Enabled {
		e.cache = expirable.NewLRU[string, *Response](e.config.Cache.MaxEntries, nil, e.config.Cache.TTL)
	}

	stats := agents.Stats()
	metrics.SetDatasetSize(stats.Agents, stats.Items)
	e.logger.Info().
		Int("agents", stats.Agents).
		Int("items", stats.Items).
		Int("ratings", stats.Ratings).
		Float64("density", stats.Density).
		Msg("recommendation engine initialized")

	return e, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Agents returns the agent identifiers in ascending order.
func (e *Engine) Agents() []string {
	return e.agents.Keys()
}

// Items returns the item identifiers in ascending order.
func (e *Engine) Items() []string {
	return e.items.Keys()
}

// Stats returns summary statistics for the matrix.
func (e *Engine) Stats() MatrixStats {
	return e.agents.Stats()
}

// Ratings returns a copy of the subject's ratings.
func (e *Engine) Ratings(subject string) (Ratings, error) {
	row, err := e.agents.Row(subject)
	if err != nil {
		return nil, err
	}
	out := make(Ratings, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out, nil
}

// clampTopN applies the default and maximum match counts.
func (e *Engine) clampTopN(n int) int {
	if n <= 0 {
		n = e.config.Limits.DefaultTopN
	}
	if n > e.config.Limits.MaxTopN {
		n = e.config.Limits.MaxTopN
	}
	return n
}

// TopMatches returns the agents most similar to subject.
func (e *Engine) TopMatches(ctx context.Context, subject string, n int, metric Metric) ([]Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	metrics.RecordSimilarityQuery(metric.String())
	return TopMatches(e.agents, subject, e.clampTopN(n), metric)
}

// SimilarItems returns the items most similar to item using the configured
// item metric. A built index with enough neighbours answers directly.
func (e *Engine) SimilarItems(ctx context.Context, item string, n int) ([]Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n = e.clampTopN(n)

	e.indexMu.RLock()
	idx := e.index
	e.indexMu.RUnlock()

	if idx != nil && n <= e.config.ItemBased.Neighbors {
		if matches, ok := idx[item]; ok {
			if len(matches) > n {
				matches = matches[:n]
			}
			out := make([]Match, len(matches))
			copy(out, matches)
			return out, nil
		}
	}

	metrics.RecordSimilarityQuery(e.config.ItemBased.Metric.String())
	return TopMatches(e.items, item, n, e.config.ItemBased.Metric)
}

// Recommend generates recommendations for an agent.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req, metric, err := e.prepareRequest(req)
	if err != nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation(req.Mode.String(), time.Since(start), err)
		return nil, err
	}

	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("subject", req.Subject).
		Str("mode", req.Mode.String()).
		Logger()
	logger.Debug().Msg("processing recommendation request")

	resp, err := e.recommend(ctx, req, metric, start, logger)
	metrics.RecordRecommendation(req.Mode.String(), time.Since(start), err)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	logger.Debug().
		Int("returned", len(resp.Items)).
		Bool("cache_hit", resp.Metadata.CacheHit).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) recommend(ctx context.Context, req Request, metric Metric, start time.Time, logger zerolog.Logger) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !e.agents.Has(req.Subject) {
		return nil, fmt.Errorf("%w: agent %q", ErrUnknownKey, req.Subject)
	}

	var (
		idx     ItemSimilarityIndex
		version int
	)
	if req.Mode == ModeItemBased {
		var err error
		idx, version, err = e.ensureIndex(ctx)
		if err != nil {
			return nil, err
		}
	}

	key := cacheKey(req, metric, version)
	if resp := e.tryGetCachedResponse(key, req, start); resp != nil {
		logger.Debug().Msg("cache hit")
		return resp, nil
	}

	var (
		items []Match
		err   error
	)
	switch req.Mode {
	case ModeItemBased:
		items, err = RecommendedItems(e.agents, idx, req.Subject)
	default:
		items, err = Recommendations(e.agents, req.Subject, metric)
	}
	if err != nil {
		return nil, fmt.Errorf("score candidates: %w", err)
	}

	if len(items) > req.K {
		items = items[:req.K]
	}

	resp := &Response{
		Items: items,
		Metadata: ResponseMetadata{
			RequestID:    req.RequestID,
			Subject:      req.Subject,
			Mode:         req.Mode.String(),
			Metric:       metric.String(),
			LatencyMS:    time.Since(start).Milliseconds(),
			IndexVersion: version,
			Timestamp:    time.Now(),
		},
	}
	e.cacheResponse(key, resp)

	return resp, nil
}

// prepareRequest applies defaults, generates a request ID and resolves the metric.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) (Request, Metric, error) {
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	if req.Subject == "" {
		return req, 0, fmt.Errorf("%w: subject is required", ErrInvalidRequest)
	}
	if req.Mode != ModeUserBased && req.Mode != ModeItemBased {
		return req, 0, fmt.Errorf("%w: unknown mode %d", ErrInvalidRequest, int(req.Mode))
	}
	if req.K < 0 {
		return req, 0, fmt.Errorf("%w: k must be non-negative, got %d", ErrInvalidRequest, req.K)
	}
	if req.K == 0 || req.K > e.config.Limits.MaxK {
		req.K = e.config.Limits.MaxK
	}

	metric := e.config.UserBased.Metric
	if req.Mode == ModeItemBased {
		metric = e.config.ItemBased.Metric
	} else if req.Metric != nil {
		metric = *req.Metric
		if !validMetric(metric) {
			return req, 0, fmt.Errorf("%w: %d", ErrUnknownMetric, int(metric))
		}
	}

	return req, metric, nil
}

// cacheKey identifies a response. The index version keeps item-based
// entries from outliving the index they were computed with.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func cacheKey(req Request, metric Metric, version int) string {
	return fmt.Sprintf("%s|%s|%s|%d|%d", req.Subject, req.Mode, metric, req.K, version)
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) tryGetCachedResponse(key string, req Request, start time.Time) *Response {
	if e.cache == nil {
		return nil
	}

	cached, ok := e.cache.Get(key)
	metrics.RecordCacheLookup(ok)
	if !ok {
		e.cacheMisses.Add(1)
		return nil
	}
	e.cacheHits.Add(1)

	items := make([]Match, len(cached.Items))
	copy(items, cached.Items)

	meta := cached.Metadata
	meta.RequestID = req.RequestID
	meta.CacheHit = true
	meta.LatencyMS = time.Since(start).Milliseconds()

	return &Response{Items: items, Metadata: meta}
}

func (e *Engine) cacheResponse(key string, resp *Response) {
	if e.cache == nil {
		return
	}
	items := make([]Match, len(resp.Items))
	copy(items, resp.Items)
	e.cache.Add(key, &Response{Items: items, Metadata: resp.Metadata})
}

// ensureIndex returns the current index, building it first when allowed.
func (e *Engine) ensureIndex(ctx context.Context) (ItemSimilarityIndex, int, error) {
	e.indexMu.RLock()
	idx, version := e.index, e.indexVersion
	e.indexMu.RUnlock()
	if idx != nil {
		return idx, version, nil
	}

	if !e.config.ItemBased.BuildOnDemand {
		return nil, 0, ErrIndexNotBuilt
	}

	e.buildMu.Lock()
	defer e.buildMu.Unlock()

	// Another caller may have finished a build while we waited.
	e.indexMu.RLock()
	idx, version = e.index, e.indexVersion
	e.indexMu.RUnlock()
	if idx != nil {
		return idx, version, nil
	}

	if err := e.build(ctx); err != nil {
		return nil, 0, err
	}

	e.indexMu.RLock()
	defer e.indexMu.RUnlock()
	return e.index, e.indexVersion, nil
}

// BuildIndex (re)builds the item similarity index. Only one build runs at a
// time; a concurrent call returns ErrBuildInProgress.
func (e *Engine) BuildIndex(ctx context.Context) error {
	if !e.buildMu.TryLock() {
		return ErrBuildInProgress
	}
	defer e.buildMu.Unlock()

	return e.build(ctx)
}

// build runs an index build. The caller must hold buildMu.
func (e *Engine) build(ctx context.Context) error {
	e.building.Store(true)
	defer e.building.Store(false)

	cfg := e.config.ItemBased
	start := time.Now()
	e.logger.Info().
		Str("metric", cfg.Metric.String()).
		Int("neighbors", cfg.Neighbors).
		Int("workers", cfg.Workers).
		Int("items", len(e.items)).
		Msg("building item similarity index")

	idx, err := SimilarItems(ctx, e.agents, SimilarItemsOptions{
		Neighbors:     cfg.Neighbors,
		Metric:        cfg.Metric,
		Workers:       cfg.Workers,
		ProgressEvery: cfg.ProgressEvery,
		Progress: func(done, total int) {
			e.logger.Debug().Int("done", done).Int("total", total).Msg("index build progress")
		},
	})
	duration := time.Since(start)
	if err != nil {
		metrics.RecordIndexBuild(duration, 0, 0, err)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			e.logger.Warn().Err(err).Msg("index build cancelled")
		} else {
			e.logger.Error().Err(err).Msg("index build failed")
		}
		return fmt.Errorf("build item index: %w", err)
	}

	e.indexMu.Lock()
	e.index = idx
	e.indexVersion++
	e.indexBuiltAt = time.Now()
	e.indexDuration = duration
	version := e.indexVersion
	e.indexMu.Unlock()

	e.buildCount.Add(1)
	if e.cache != nil {
		e.cache.Purge()
	}
	metrics.RecordIndexBuild(duration, len(idx), version, nil)

	e.logger.Info().
		Int("items", len(idx)).
		Int("version", version).
		Dur("duration", duration).
		Msg("item similarity index built")

	return nil
}

// IndexStatus returns the state of the item similarity index.
func (e *Engine) IndexStatus() IndexStatus {
	e.indexMu.RLock()
	defer e.indexMu.RUnlock()

	return IndexStatus{
		Built:         e.index != nil,
		Building:      e.building.Load(),
		Version:       e.indexVersion,
		Items:         len(e.index),
		Neighbors:     e.config.ItemBased.Neighbors,
		Metric:        e.config.ItemBased.Metric.String(),
		BuiltAt:       e.indexBuiltAt,
		BuildDuration: e.indexDuration,
	}
}

// GetMetrics returns the engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		Requests:    e.requestCount.Load(),
		CacheHits:   e.cacheHits.Load(),
		CacheMisses: e.cacheMisses.Load(),
		Errors:      e.errorCount.Load(),
		IndexBuilds: e.buildCount.Load(),
	}
}

// ClearCache drops every cached response.
func (e *Engine) ClearCache() {
	if e.cache != nil {
		e.cache.Purge()
	}
}
