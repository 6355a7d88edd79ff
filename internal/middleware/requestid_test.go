// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/affinity/internal/logging"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "generates when absent", incoming: "", keep: false},
		{name: "keeps upstream id", incoming: "edge-1234", keep: true},
		{name: "replaces id with spaces", incoming: "bad id", keep: false},
		{name: "replaces oversized id", incoming: strings.Repeat("a", maxRequestIDLen+1), keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var ctxID, corrID string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxID = GetRequestID(r)
				corrID = logging.CorrelationIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			headerID := rec.Header().Get(RequestIDHeader)
			if headerID != ctxID {
				t.Errorf("header ID %q != context ID %q", headerID, ctxID)
			}
			if corrID == "" {
				t.Error("correlation ID not set")
			}

			if tt.keep {
				if headerID != tt.incoming {
					t.Errorf("header ID = %q, want %q", headerID, tt.incoming)
				}
				return
			}
			if _, err := uuid.Parse(headerID); err != nil {
				t.Errorf("header ID %q is not a UUID: %v", headerID, err)
			}
		})
	}
}
