// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

// Package validation wraps go-playground/validator v10 with a shared
// instance, the domain tags "metric" and "mode", and translation of field
// errors into the API's VALIDATION_ERROR body.
//
//	type recommendQuery struct {
//	    K      int    `validate:"min=0,max=1000"`
//	    Metric string `validate:"omitempty,metric"`
//	}
//
// Every *RequestValidationError unwraps to recommend.ErrInvalidRequest.
package validation
