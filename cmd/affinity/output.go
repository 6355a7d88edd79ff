// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/affinity/internal/recommend"
)

// matchesOutput is the --json shape of matches and similar.
type matchesOutput struct {
	Subject string            `json:"subject"`
	Kind    string            `json:"kind"`
	Metric  string            `json:"metric"`
	Results []recommend.Match `json:"results"`
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printMatches(cmd *cobra.Command, kind, subject, metric string, matches []recommend.Match) error {
	out := cmd.OutOrStdout()
	if a.jsonOutput {
		if matches == nil {
			matches = []recommend.Match{}
		}
		return writeJSON(out, matchesOutput{
			Subject: subject,
			Kind:    kind,
			Metric:  metric,
			Results: matches,
		})
	}

	fmt.Fprintf(out, "%s %q (%s)\n", kind, subject, metric)
	if len(matches) == 0 {
		fmt.Fprintln(out, "  no results")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for i, m := range matches {
		fmt.Fprintf(tw, "  %d.\t%s\t%.4f\n", i+1, m.ID, m.Score)
	}
	return tw.Flush()
}

func (a *app) printStats(cmd *cobra.Command, stats recommend.MatrixStats) error {
	out := cmd.OutOrStdout()
	if a.jsonOutput {
		return writeJSON(out, stats)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "source\t%s\n", a.cfg.Data.Source)
	fmt.Fprintf(tw, "agents\t%d\n", stats.Agents)
	fmt.Fprintf(tw, "items\t%d\n", stats.Items)
	fmt.Fprintf(tw, "ratings\t%d\n", stats.Ratings)
	fmt.Fprintf(tw, "density\t%.4f\n", stats.Density)
	return tw.Flush()
}
