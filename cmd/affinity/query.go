// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/affinity/internal/recommend"
)

func newMatchesCmd(a *app) *cobra.Command {
	var (
		n      int
		metric string
	)

	cmd := &cobra.Command{
		Use:   "matches <agent>",
		Short: "List the agents most similar to an agent",
		Long: `List the agents most similar to an agent.

Examples:
  affinity matches Toby -n 3
  affinity matches Lisa Rose --metric distance`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.newEngine()
			if err != nil {
				return err
			}

			m := engine.Config().UserBased.Metric
			if metric != "" {
				if m, err = recommend.ParseMetric(metric); err != nil {
					return err
				}
			}

			agent := strings.Join(args, " ")
			matches, err := engine.TopMatches(cmd.Context(), agent, n, m)
			if err != nil {
				return err
			}
			return a.printMatches(cmd, "agent", agent, m.String(), matches)
		},
	}

	cmd.Flags().IntVarP(&n, "number", "n", recommend.DefaultTopN, "Number of matches")
	cmd.Flags().StringVar(&metric, "metric", "", "Similarity metric (default from config)")
	return cmd
}

func newRecommendCmd(a *app) *cobra.Command {
	var (
		mode   string
		metric string
		k      int
	)

	cmd := &cobra.Command{
		Use:   "recommend <agent>",
		Short: "Recommend items an agent has not rated",
		Long: `Recommend items an agent has not rated, with predicted ratings.

User-based mode weights the ratings of similar agents. Item-based mode weights
the agent's own ratings through the item similarity index, which is built on
first use.

Examples:
  affinity recommend Toby
  affinity recommend Toby --mode item -k 2
  affinity recommend Toby --metric distance --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := recommend.Request{Subject: strings.Join(args, " "), K: k}

			var err error
			if req.Mode, err = recommend.ParseMode(mode); err != nil {
				return err
			}
			if metric != "" {
				m, err := recommend.ParseMetric(metric)
				if err != nil {
					return err
				}
				req.Metric = &m
			}

			engine, err := a.newEngine()
			if err != nil {
				return err
			}

			resp, err := engine.Recommend(cmd.Context(), req)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			return a.printMatches(cmd, "agent", req.Subject, resp.Metadata.Mode+"/"+resp.Metadata.Metric, resp.Items)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "user", "Aggregation mode (user, item)")
	cmd.Flags().StringVar(&metric, "metric", "", "Similarity metric for user mode (default from config)")
	cmd.Flags().IntVarP(&k, "k", "k", 0, "Maximum recommendations (0 = all, capped by recommend.max_k)")
	return cmd
}

func newSimilarCmd(a *app) *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "similar <item>",
		Short: "List the items most similar to an item",
		Long: `List the items most similar to an item, using the configured item metric.

Examples:
  affinity similar Superman Returns
  affinity similar "Lady in the Water" -n 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.newEngine()
			if err != nil {
				return err
			}

			item := strings.Join(args, " ")
			similar, err := engine.SimilarItems(cmd.Context(), item, n)
			if err != nil {
				return err
			}
			return a.printMatches(cmd, "item", item, engine.Config().ItemBased.Metric.String(), similar)
		},
	}

	cmd.Flags().IntVarP(&n, "number", "n", recommend.DefaultSimilarItems, "Number of similar items")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dataset statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := a.newEngine()
			if err != nil {
				return err
			}
			return a.printStats(cmd, engine.Stats())
		},
	}
}
