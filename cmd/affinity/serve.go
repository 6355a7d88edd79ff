// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/affinity/internal/api"
	"github.com/tomtom215/affinity/internal/config"
	"github.com/tomtom215/affinity/internal/logging"
	"github.com/tomtom215/affinity/internal/supervisor"
	"github.com/tomtom215/affinity/internal/supervisor/services"
)

// writeGrace leaves room to write a response after an engine call has used
// its whole request timeout.
const writeGrace = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API under a supervisor tree until SIGINT or SIGTERM.

With recommend.warm_index set, the item similarity index is built at startup
and /api/v1/health/ready reports 503 until it is available. The log level is
reloaded when the config file changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	logger := logging.WithComponent("server")

	engine, err := a.newEngine()
	if err != nil {
		return err
	}

	srvCfg := a.cfg.Server
	handler := api.NewHandler(engine, api.HandlerOptions{
		RequireIndex:   a.cfg.Recommend.WarmIndex,
		RequestTimeout: srvCfg.Timeout,
	})
	router := api.NewRouter(handler, api.MiddlewareConfigFromServer(&srvCfg), logging.Logger())

	if a.cfg.HasWildcardCORS() {
		logger.Warn().Msg("CORS allows any origin; set server.cors_origins for production")
	}

	server := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       srvCfg.Timeout,
		WriteTimeout:      srvCfg.Timeout + writeGrace,
		IdleTimeout:       2 * srvCfg.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(
		logging.NewSlogLogger(logging.WithComponent("supervisor")),
		supervisor.TreeConfig{ShutdownTimeout: srvCfg.ShutdownTimeout},
	)
	if err != nil {
		return err
	}

	if a.cfg.Recommend.WarmIndex {
		tree.AddComputeService(services.NewIndexWarmService(engine, 0, logging.Logger()))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, srvCfg.Addr(), srvCfg.ShutdownTimeout, logging.Logger()))

	a.watchConfig(logger)

	logger.Info().
		Str("addr", srvCfg.Addr()).
		Str("source", a.cfg.Data.Source).
		Bool("warm_index", a.cfg.Recommend.WarmIndex).
		Msg("starting affinity")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		logger.Warn().Int("count", len(report)).Msg("services did not stop within the shutdown timeout")
	}
	logger.Info().Msg("shutdown complete")
	return nil
}

// watchConfig reloads the log level when the config file changes. A level
// given with --log-level is never overridden.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func (a *app) watchConfig(logger zerolog.Logger) {
	path := config.ResolveConfigPath(a.configPath)
	if path == "" || a.logLevel != "" {
		return
	}

	err := config.WatchConfigFile(path, func() {
		cfg, err := config.Load(path)
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("config reload failed, keeping current settings")
			return
		}
		if err := logging.SetLevelString(cfg.Logging.Level); err != nil {
			logger.Warn().Err(err).Msg("invalid log level in reloaded config")
			return
		}
		logger.Info().Str("level", cfg.Logging.Level).Msg("log level reloaded")
	})
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("config watch unavailable")
	}
}
