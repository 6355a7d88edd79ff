// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/affinity/internal/config"
	"github.com/tomtom215/affinity/internal/recommend"
)

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"Toby", "Toby"},
		{"Lisa Rose", "Lisa Rose"},
		{"a\nb", `a\x0ab`},
		{"tab\there", `tab\x09here`},
		{"del\x7f", `del\x7f`},
		{"Amélie", "Amélie"},
	}

	for _, tt := range tests {
		if got := sanitizeLogValue(tt.in); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unknown key", fmt.Errorf("agent %q: %w", "x", recommend.ErrUnknownKey), http.StatusNotFound, ErrCodeNotFound},
		{"unknown metric", recommend.ErrUnknownMetric, http.StatusBadRequest, ErrCodeBadRequest},
		{"invalid request", recommend.ErrInvalidRequest, http.StatusBadRequest, ErrCodeBadRequest},
		{"index not built", recommend.ErrIndexNotBuilt, http.StatusServiceUnavailable, ErrCodeIndexNotBuilt},
		{"build in progress", recommend.ErrBuildInProgress, http.StatusConflict, ErrCodeConflict},
		{"deadline", fmt.Errorf("build: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, ErrCodeTimeout},
		{"cancelled", context.Canceled, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"other", errors.New("boom"), http.StatusInternalServerError, ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			status, code, _ := classifyError(tt.err)
			if status != tt.wantStatus || code != tt.wantCode {
				t.Errorf("classifyError() = %d %s, want %d %s", status, code, tt.wantStatus, tt.wantCode)
			}
		})
	}
}

func TestClassifyError_HidesInternalMessage(t *testing.T) {
	t.Parallel()

	_, _, msg := classifyError(errors.New("open /var/lib/secret: permission denied"))
	if msg != "Internal server error" {
		t.Errorf("message = %q, leaked internal error", msg)
	}
}

func TestRespondJSON_Headers(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)

	first := httptest.NewRecorder()
	respondJSON(first, r, http.StatusCreated, &APIResponse{
		Status:   "success",
		Data:     map[string]int{"n": 1},
		Metadata: Metadata{Timestamp: time.Unix(0, 0).UTC()},
	})
	if first.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", first.Code)
	}
	if ct := first.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	second := httptest.NewRecorder()
	respondJSON(second, r, http.StatusCreated, &APIResponse{
		Status:   "success",
		Data:     map[string]int{"n": 1},
		Metadata: Metadata{Timestamp: time.Unix(0, 0).UTC()},
	})
	etag := first.Header().Get("ETag")
	if etag == "" || etag != second.Header().Get("ETag") {
		t.Errorf("ETag = %q / %q, want equal and non-empty", etag, second.Header().Get("ETag"))
	}
}

func TestMiddlewareConfigFromServer(t *testing.T) {
	t.Parallel()

	server := config.Default().Server
	server.CORSOrigins = []string{"https://a.example"}
	server.RateLimitReqs = 20
	server.RateLimitWindow = 30 * time.Second

	got := MiddlewareConfigFromServer(&server)
	if !reflect.DeepEqual(got.CORSAllowedOrigins, []string{"https://a.example"}) {
		t.Errorf("origins = %v", got.CORSAllowedOrigins)
	}
	if got.RateLimitRequests != 20 || got.RateLimitWindow != 30*time.Second || got.RateLimitDisabled {
		t.Errorf("rate limit = %d/%v disabled=%v", got.RateLimitRequests, got.RateLimitWindow, got.RateLimitDisabled)
	}

	server.RateLimitReqs = 0
	if !MiddlewareConfigFromServer(&server).RateLimitDisabled {
		t.Error("zero requests should disable rate limiting")
	}
}
