// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/affinity/internal/recommend"
	"github.com/tomtom215/affinity/internal/validation"
)

// respondEngineError maps an engine or validation error onto a status code
// and error envelope.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.RequestValidationError
	if errors.As(err, &verr) {
		respondAPIError(w, r, http.StatusBadRequest, fromValidation(verr), err)
		return
	}

	status, code, message := classifyError(err)
	respondError(w, r, status, code, message, err)
}

// classifyError returns the HTTP status, error code and client message for err.
func classifyError(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, recommend.ErrUnknownKey):
		return http.StatusNotFound, ErrCodeNotFound, err.Error()
	case errors.Is(err, recommend.ErrUnknownMetric),
		errors.Is(err, recommend.ErrInvalidRequest):
		return http.StatusBadRequest, ErrCodeBadRequest, err.Error()
	case errors.Is(err, recommend.ErrIndexNotBuilt):
		return http.StatusServiceUnavailable, ErrCodeIndexNotBuilt, "Item similarity index is not built"
	case errors.Is(err, recommend.ErrBuildInProgress):
		return http.StatusConflict, ErrCodeConflict, "Item similarity index build already in progress"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrCodeTimeout, "Request timed out"
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Request cancelled"
	default:
		return http.StatusInternalServerError, ErrCodeInternalError, "Internal server error"
	}
}

func fromValidation(verr *validation.RequestValidationError) *APIError {
	v := verr.ToAPIError()
	return &APIError{Code: v.Code, Message: v.Message, Details: v.Details}
}
