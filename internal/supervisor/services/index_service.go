// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/affinity/internal/recommend"
)

// IndexBuilder builds the item similarity index. *recommend.Engine
// satisfies it.
type IndexBuilder interface {
	BuildIndex(ctx context.Context) error
}

// IndexWarmService builds the item similarity index once at startup so the
// first item-based request does not pay for it. A failed build is returned
// to the supervisor and retried with backoff.
type IndexWarmService struct {
	builder IndexBuilder
	timeout time.Duration
	logger  zerolog.Logger
	name    string
}

// NewIndexWarmService creates the warm-up service. A non-positive timeout
// leaves the build bounded only by the supervisor context.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewIndexWarmService(builder IndexBuilder, timeout time.Duration, logger zerolog.Logger) *IndexWarmService {
	return &IndexWarmService{
		builder: builder,
		timeout: timeout,
		logger:  logger.With().Str("service", "index-warm").Logger(),
		name:    "index-warm",
	}
}

// Serve implements suture.Service.
func (s *IndexWarmService) Serve(ctx context.Context) error {
	buildCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		buildCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	s.logger.Info().Msg("warming item similarity index")

	err := s.builder.BuildIndex(buildCtx)
	switch {
	case err == nil:
		s.logger.Info().Dur("duration", time.Since(start)).Msg("item similarity index warm")
		return suture.ErrDoNotRestart

	case errors.Is(err, recommend.ErrBuildInProgress):
		// The concurrent build publishes the index.
		s.logger.Info().Msg("index build already running, skipping warm-up")
		return suture.ErrDoNotRestart

	case ctx.Err() != nil:
		return ctx.Err()

	default:
		s.logger.Warn().Err(err).Msg("index warm-up failed")
		return fmt.Errorf("index warm-up: %w", err)
	}
}

// String returns the service name for logging.
func (s *IndexWarmService) String() string {
	return s.name
}
