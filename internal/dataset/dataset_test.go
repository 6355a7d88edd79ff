// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package dataset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/tomtom215/affinity/internal/recommend"
)

func TestCritics(t *testing.T) {
	t.Parallel()

	m := Critics()

	if len(m) != 7 {
		t.Errorf("len(Critics()) = %d, want 7", len(m))
	}
	if got := m["Toby"]["Snakes on a Plane"]; got != 4.5 {
		t.Errorf("Toby/Snakes on a Plane = %v, want 4.5", got)
	}

	m["Toby"]["Snakes on a Plane"] = 1
	if Critics()["Toby"]["Snakes on a Plane"] != 4.5 {
		t.Error("Critics() returned shared storage")
	}
}

func TestCritics_ReferenceRecommendations(t *testing.T) {
	t.Parallel()

	got, err := recommend.Recommendations(Critics(), "Toby", recommend.MetricPearson)
	if err != nil {
		t.Fatalf("Recommendations() error = %v", err)
	}

	want := []recommend.Match{
		{ID: "The Night Listener", Score: 3.3477895267131013},
		{ID: "Lady in the Water", Score: 2.8325499182641614},
		{ID: "Just My Luck", Score: 2.5309807037655645},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID || math.Abs(got[i].Score-want[i].Score) > 1e-9 {
			t.Errorf("[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCritics_Transform(t *testing.T) {
	t.Parallel()

	want := recommend.Ratings{
		"Lisa Rose":        2.5,
		"Jack Matthews":    3.0,
		"Michael Phillips": 2.5,
		"Gene Seymour":     3.0,
		"Mick LaSalle":     3.0,
	}
	if got := Critics().Transform()["Lady in the Water"]; !reflect.DeepEqual(got, want) {
		t.Errorf("Transform()[Lady in the Water] = %v, want %v", got, want)
	}
}

const testItems = "1|Toy Story (1995)|01-Jan-1995||http://example.invalid/1|0|0|1\n" +
	"2|GoldenEye (1995)|01-Jan-1995||http://example.invalid/2|0|1|0\n" +
	"3|Four Rooms (1995)|01-Jan-1995||http://example.invalid/3|0|0|0\n"

const testRatings = "196\t1\t3\t881250949\n" +
	"196\t2\t5\t881250950\n" +
	"186\t1\t4\t891717742\n" +
	"\n" +
	"22\t3\t1\t878887116\r\n"

func TestLoadMovieLensFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		MovieLensItemFile:   {Data: []byte(testItems)},
		MovieLensRatingFile: {Data: []byte(testRatings)},
	}

	got, err := LoadMovieLensFS(fsys)
	if err != nil {
		t.Fatalf("LoadMovieLensFS() error = %v", err)
	}

	want := recommend.Matrix{
		"196": {"Toy Story (1995)": 3, "GoldenEye (1995)": 5},
		"186": {"Toy Story (1995)": 4},
		"22":  {"Four Rooms (1995)": 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadMovieLensFS() = %v, want %v", got, want)
	}
}

func TestLoadMovieLensFS_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		items   *fstest.MapFile
		ratings *fstest.MapFile
		wantMsg string
	}{
		{
			name:    "missing item file",
			ratings: &fstest.MapFile{Data: []byte(testRatings)},
			wantMsg: "open u.item",
		},
		{
			name:    "missing rating file",
			items:   &fstest.MapFile{Data: []byte(testItems)},
			wantMsg: "open u.data",
		},
		{
			name:    "malformed item line",
			items:   &fstest.MapFile{Data: []byte("no-separator\n")},
			ratings: &fstest.MapFile{Data: []byte(testRatings)},
			wantMsg: "parse u.item: line 1",
		},
		{
			name:    "wrong field count",
			items:   &fstest.MapFile{Data: []byte(testItems)},
			ratings: &fstest.MapFile{Data: []byte("196\t1\t3\n")},
			wantMsg: "want 4 tab-separated fields",
		},
		{
			name:    "unknown movie",
			items:   &fstest.MapFile{Data: []byte(testItems)},
			ratings: &fstest.MapFile{Data: []byte("196\t99\t3\t0\n")},
			wantMsg: "unknown movie id",
		},
		{
			name:    "bad rating",
			items:   &fstest.MapFile{Data: []byte(testItems)},
			ratings: &fstest.MapFile{Data: []byte("196\t1\tfive\t0\n")},
			wantMsg: "rating",
		},
		{
			name:    "non-finite rating",
			items:   &fstest.MapFile{Data: []byte(testItems)},
			ratings: &fstest.MapFile{Data: []byte("196\t1\tNaN\t0\n")},
			wantMsg: "non-finite",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{}
			if tt.items != nil {
				fsys[MovieLensItemFile] = tt.items
			}
			if tt.ratings != nil {
				fsys[MovieLensRatingFile] = tt.ratings
			}

			_, err := LoadMovieLensFS(fsys)
			if err == nil {
				t.Fatalf("LoadMovieLensFS() = nil error, want error containing %q", tt.wantMsg)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("LoadMovieLensFS() error = %v, want containing %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadMovieLens_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, MovieLensItemFile), []byte(testItems), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, MovieLensRatingFile), []byte(testRatings), 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := Load(SourceMovieLens, dir)
	if err != nil {
		t.Fatalf("Load(movielens) error = %v", err)
	}
	if len(m) != 3 {
		t.Errorf("len = %d, want 3", len(m))
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    recommend.Matrix
		wantErr bool
	}{
		{
			name:  "two agents",
			input: `{"ann": {"x": 1.5, "y": 2}, "bob": {"x": 4}}`,
			want:  recommend.Matrix{"ann": {"x": 1.5, "y": 2}, "bob": {"x": 4}},
		},
		{
			name:  "null row becomes empty",
			input: `{"ann": null}`,
			want:  recommend.Matrix{"ann": {}},
		},
		{
			name:  "null document",
			input: `null`,
			want:  recommend.Matrix{},
		},
		{name: "not an object", input: `[1, 2]`, wantErr: true},
		{name: "string rating", input: `{"ann": {"x": "high"}}`, wantErr: true},
		{name: "truncated", input: `{"ann": {"x": 1`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeJSON(strings.NewReader(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Errorf("DecodeJSON() = %v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeJSON() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeJSON() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte(`{"ann": {"x": 3}}`), 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := Load(SourceJSON, path)
	if err != nil {
		t.Fatalf("Load(json) error = %v", err)
	}
	if m["ann"]["x"] != 3 {
		t.Errorf("ann/x = %v, want 3", m["ann"]["x"])
	}

	if _, err := LoadJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadJSON(missing) = nil error, want error")
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		source  string
		path    string
		wantErr error
		anyErr  bool
	}{
		{name: "critics", source: SourceCritics},
		{name: "empty source defaults to critics", source: ""},
		{name: "movielens without path", source: SourceMovieLens, anyErr: true},
		{name: "json without path", source: SourceJSON, anyErr: true},
		{name: "unknown", source: "postgres", wantErr: ErrUnknownSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Load(tt.source, tt.path)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
				}
			case tt.anyErr:
				if err == nil {
					t.Error("Load() = nil error, want error")
				}
			default:
				if err != nil {
					t.Fatalf("Load() error = %v", err)
				}
				if len(m) != 7 {
					t.Errorf("len = %d, want 7", len(m))
				}
			}
		})
	}
}

func TestFillUnrated(t *testing.T) {
	t.Parallel()

	m := recommend.Matrix{
		"ann": {"x": 1},
		"bob": {"y": 2},
	}
	FillUnrated(m)

	want := recommend.Matrix{
		"ann": {"x": 1, "y": 0},
		"bob": {"x": 0, "y": 2},
	}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("FillUnrated() = %v, want %v", m, want)
	}
}

func TestFillUnrated_RecommendationsUnchanged(t *testing.T) {
	t.Parallel()

	sparse := Critics()
	dense := Critics()
	FillUnrated(dense)

	// Placeholders change the similarities but must still count as unrated.
	got, err := recommend.Recommendations(dense, "Toby", recommend.MetricPearson)
	if err != nil {
		t.Fatalf("Recommendations() error = %v", err)
	}
	base, err := recommend.Recommendations(sparse, "Toby", recommend.MetricPearson)
	if err != nil {
		t.Fatalf("Recommendations() error = %v", err)
	}

	gotIDs := make(map[string]bool)
	for _, rec := range got {
		gotIDs[rec.ID] = true
	}
	for _, rec := range base {
		if !gotIDs[rec.ID] {
			t.Errorf("dense matrix lost recommendation for %q", rec.ID)
		}
	}
	for _, rec := range got {
		if sparse["Toby"].Rated(rec.ID) {
			t.Errorf("dense matrix recommended rated item %q", rec.ID)
		}
	}
}
