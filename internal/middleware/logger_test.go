// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/affinity/internal/logging"
)

func TestAccessLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "success at debug", status: http.StatusOK, wantLevel: `"level":"debug"`},
		{name: "client error at debug", status: http.StatusNotFound, wantLevel: `"level":"debug"`},
		{name: "server error at warn", status: http.StatusServiceUnavailable, wantLevel: `"level":"warn"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

			var handlerSawLogger bool
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logging.Ctx(r.Context()).Info().Msg("inside handler")
				handlerSawLogger = true
				w.WriteHeader(tt.status)
			})
			handler := RequestID(AccessLog(logger)(inner))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/agents", nil)
			req.Header.Set(RequestIDHeader, "req-77")
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if !handlerSawLogger {
				t.Fatal("handler not called")
			}

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			if len(lines) != 2 {
				t.Fatalf("got %d log lines, want 2: %s", len(lines), buf.String())
			}
			if !strings.Contains(lines[0], `"message":"inside handler"`) || !strings.Contains(lines[0], `"request_id":"req-77"`) {
				t.Errorf("handler line = %s", lines[0])
			}
			access := lines[1]
			for _, want := range []string{tt.wantLevel, `"request_id":"req-77"`, `"path":"/api/v1/agents"`, `"message":"request completed"`} {
				if !strings.Contains(access, want) {
					t.Errorf("access line missing %s: %s", want, access)
				}
			}
		})
	}
}
