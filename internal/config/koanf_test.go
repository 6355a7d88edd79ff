// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "affinity.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want info/json", cfg.Logging)
	}
	if cfg.Data.Source != "critics" {
		t.Errorf("Data.Source = %q, want critics", cfg.Data.Source)
	}
	if cfg.Recommend.UserMetric != "pearson" {
		t.Errorf("Recommend.UserMetric = %q, want pearson", cfg.Recommend.UserMetric)
	}
	if cfg.Recommend.ItemMetric != "distance" {
		t.Errorf("Recommend.ItemMetric = %q, want distance", cfg.Recommend.ItemMetric)
	}
	if cfg.Recommend.TopN != 5 {
		t.Errorf("Recommend.TopN = %d, want 5", cfg.Recommend.TopN)
	}
	if cfg.Recommend.SimilarItems != 10 {
		t.Errorf("Recommend.SimilarItems = %d, want 10", cfg.Recommend.SimilarItems)
	}
	if cfg.Recommend.CacheTTL != 5*time.Minute {
		t.Errorf("Recommend.CacheTTL = %v, want 5m", cfg.Recommend.CacheTTL)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if !reflect.DeepEqual(cfg.Server.CORSOrigins, []string{"*"}) {
		t.Errorf("Server.CORSOrigins = %v, want [*]", cfg.Server.CORSOrigins)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() = %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, defaultConfig()) {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")

	path := writeConfigFile(t, `
logging:
  level: debug
  format: console
recommend:
  user_metric: distance
  similar_items: 3
  workers: 4
  cache_ttl: 90s
server:
  port: 9090
  cors_origins:
    - https://a.example
    - https://b.example
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Recommend.UserMetric != "distance" {
		t.Errorf("UserMetric = %q, want distance", cfg.Recommend.UserMetric)
	}
	if cfg.Recommend.SimilarItems != 3 || cfg.Recommend.Workers != 4 {
		t.Errorf("SimilarItems/Workers = %d/%d, want 3/4", cfg.Recommend.SimilarItems, cfg.Recommend.Workers)
	}
	if cfg.Recommend.CacheTTL != 90*time.Second {
		t.Errorf("CacheTTL = %v, want 90s", cfg.Recommend.CacheTTL)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Server.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Server.CORSOrigins, want)
	}

	// Untouched keys keep their defaults.
	if cfg.Recommend.ItemMetric != "distance" || cfg.Server.Host != "0.0.0.0" {
		t.Errorf("defaults lost: item_metric=%q host=%q", cfg.Recommend.ItemMetric, cfg.Server.Host)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: 9090\n")

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "7000")
	t.Setenv("RECOMMEND_ITEM_METRIC", "pearson")
	t.Setenv("RECOMMEND_CACHE_ENABLED", "false")
	t.Setenv("RECOMMEND_CACHE_TTL", "2m")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("LOG_CALLER", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Recommend.ItemMetric != "pearson" {
		t.Errorf("ItemMetric = %q, want pearson", cfg.Recommend.ItemMetric)
	}
	if cfg.Recommend.CacheEnabled {
		t.Error("CacheEnabled = true, want false")
	}
	if cfg.Recommend.CacheTTL != 2*time.Minute {
		t.Errorf("CacheTTL = %v, want 2m", cfg.Recommend.CacheTTL)
	}
	if !cfg.Logging.Caller {
		t.Error("Logging.Caller = false, want true")
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Server.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Server.CORSOrigins, want)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     map[string]string
		wantMsg string
	}{
		{
			name:    "unknown metric in file",
			file:    "recommend:\n  user_metric: manhattan\n",
			wantMsg: "UserMetric must be one of",
		},
		{
			name:    "port out of range from env",
			env:     map[string]string{"HTTP_PORT": "70000"},
			wantMsg: "Port must be at most 65535",
		},
		{
			name:    "movielens without path",
			env:     map[string]string{"DATA_SOURCE": "movielens"},
			wantMsg: "Path",
		},
		{
			name:    "zero cache ttl",
			env:     map[string]string{"RECOMMEND_CACHE_TTL": "0s"},
			wantMsg: "recommend.cache_ttl must be positive",
		},
		{
			name:    "max top n below top n",
			env:     map[string]string{"RECOMMEND_TOP_N": "10", "RECOMMEND_MAX_TOP_N": "3"},
			wantMsg: "MaxTopN",
		},
		{
			name:    "malformed yaml",
			file:    "server: [port\n",
			wantMsg: "failed to load config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigPathEnvVar, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := ""
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			}

			_, err := Load(path)
			if err == nil {
				t.Fatalf("Load() = nil error, want error containing %q", tt.wantMsg)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load(absent) = nil error, want error")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"LOG_LEVEL", "logging.level"},
		{"DATA_PATH", "data.path"},
		{"RECOMMEND_SIMILAR_ITEMS", "recommend.similar_items"},
		{"DISABLE_RATE_LIMIT", "server.rate_limit_disabled"},
		{"HOME", ""},
		{"PATH", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.key); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestProcessSliceFields(t *testing.T) {
	t.Parallel()

	k := koanf.New(".")
	if err := k.Set("server.cors_origins", " a , b ,, c "); err != nil {
		t.Fatal(err)
	}

	if err := processSliceFields(k); err != nil {
		t.Fatalf("processSliceFields() error = %v", err)
	}

	want := []string{"a", "b", "c"}
	if got := k.Strings("server.cors_origins"); !reflect.DeepEqual(got, want) {
		t.Errorf("cors_origins = %v, want %v", got, want)
	}
}

func TestResolveConfigPath(t *testing.T) {
	path := writeConfigFile(t, "logging:\n  level: warn\n")
	t.Setenv(ConfigPathEnvVar, path)

	if got := ResolveConfigPath("explicit.yaml"); got != "explicit.yaml" {
		t.Errorf("ResolveConfigPath(explicit) = %q", got)
	}
	if got := ResolveConfigPath(""); got != path {
		t.Errorf("ResolveConfigPath(\"\") = %q, want %q", got, path)
	}

	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	if got := ResolveConfigPath(""); got != "" {
		t.Errorf("ResolveConfigPath with missing CONFIG_PATH = %q, want empty", got)
	}
}
