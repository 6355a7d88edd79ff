// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package dataset

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/tomtom215/affinity/internal/recommend"
)

// MovieLens 100k file names.
const (
	MovieLensItemFile   = "u.item"
	MovieLensRatingFile = "u.data"
)

// LoadMovieLens reads a MovieLens 100k directory into a user -> title -> rating
// matrix.
func LoadMovieLens(dir string) (recommend.Matrix, error) {
	return LoadMovieLensFS(os.DirFS(dir))
}

// LoadMovieLensFS reads u.item and u.data from fsys.
//
// u.item is pipe-delimited with the movie id and title in the first two
// fields. u.data is tab-delimited: user, movie id, rating, timestamp.
// When two movies share a title, the later rating wins.
func LoadMovieLensFS(fsys fs.FS) (recommend.Matrix, error) {
	titles, err := readMovieTitles(fsys)
	if err != nil {
		return nil, err
	}

	f, err := fsys.Open(MovieLensRatingFile)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", MovieLensRatingFile, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	prefs, err := parseRatings(f, titles)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", MovieLensRatingFile, err)
	}
	return prefs, nil
}

func readMovieTitles(fsys fs.FS) (map[string]string, error) {
	f, err := fsys.Open(MovieLensItemFile)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", MovieLensItemFile, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	titles, err := parseTitles(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", MovieLensItemFile, err)
	}
	return titles, nil
}

// parseTitles maps movie id to title.
func parseTitles(r io.Reader) (map[string]string, error) {
	titles := make(map[string]string)
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) < 2 || fields[0] == "" {
			return nil, fmt.Errorf("line %d: want id|title|..., got %q", lineNo, line)
		}
		titles[fields[0]] = fields[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return titles, nil
}

// parseRatings builds the user-centric matrix from rating lines.
func parseRatings(r io.Reader, titles map[string]string) (recommend.Matrix, error) {
	prefs := make(recommend.Matrix)
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 4 {
			return nil, fmt.Errorf("line %d: want 4 tab-separated fields, got %d", lineNo, len(fields))
		}
		user, movieID := fields[0], fields[1]

		title, ok := titles[movieID]
		if !ok {
			return nil, fmt.Errorf("line %d: unknown movie id %q", lineNo, movieID)
		}

		rating, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: rating: %w", lineNo, err)
		}
		if math.IsNaN(rating) || math.IsInf(rating, 0) {
			return nil, fmt.Errorf("line %d: %w: %v", lineNo, recommend.ErrNonFiniteRating, rating)
		}

		if prefs[user] == nil {
			prefs[user] = make(recommend.Ratings)
		}
		prefs[user][title] = rating
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return prefs, nil
}
