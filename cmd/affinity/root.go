// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/affinity/internal/config"
	"github.com/tomtom215/affinity/internal/dataset"
	"github.com/tomtom215/affinity/internal/logging"
	"github.com/tomtom215/affinity/internal/recommend"
)

// app carries state shared by every subcommand once the root's
// PersistentPreRunE has run.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	dataSource string
	dataPath   string
	jsonOutput bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "affinity",
		Short: "Affinity - similarity-based recommendations",
		Long: `Affinity ranks agents and items by similarity over a sparse rating matrix
and recommends unrated items, either from similar agents (user-based) or from
a precomputed item similarity index (item-based).

Examples:
  affinity matches Toby -n 3
  affinity recommend Toby --mode item
  affinity similar "Superman Returns"
  affinity serve --config affinity.yaml`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to YAML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error, disabled)")
	flags.StringVar(&a.logFormat, "log-format", "", "Log format (json, console)")
	flags.StringVar(&a.dataSource, "data-source", "", "Data source (critics, movielens, json)")
	flags.StringVar(&a.dataPath, "data-path", "", "MovieLens directory or JSON file")
	flags.BoolVar(&a.jsonOutput, "json", false, "Output results as JSON")

	root.AddCommand(
		newMatchesCmd(a),
		newRecommendCmd(a),
		newSimilarCmd(a),
		newStatsCmd(a),
		newServeCmd(a),
	)
	return root
}

// setup loads configuration, applies flag overrides and initializes logging.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = a.logFormat
	}
	if flags.Changed("data-source") {
		cfg.Data.Source = a.dataSource
	}
	if flags.Changed("data-path") {
		cfg.Data.Path = a.dataPath
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	logging.Init(cfg.Logging.ToLogging())
	a.cfg = cfg
	return nil
}

// newEngine loads the configured dataset and builds an engine over it.
func (a *app) newEngine() (*recommend.Engine, error) {
	logger := logging.WithComponent("cli")

	m, err := dataset.Load(a.cfg.Data.Source, a.cfg.Data.Path)
	if err != nil {
		return nil, fmt.Errorf("load %s dataset: %w", a.cfg.Data.Source, err)
	}
	if a.cfg.Data.FillUnrated {
		dataset.FillUnrated(m)
	}

	engineCfg, err := a.cfg.Recommend.EngineConfig()
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("source", a.cfg.Data.Source).
		Str("path", a.cfg.Data.Path).
		Msg("dataset loaded")

	return recommend.NewEngine(m, engineCfg, logging.Logger())
}
