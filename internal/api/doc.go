// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

/*
Package api exposes the recommendation engine over HTTP using the chi router.

# Endpoints

	GET  /api/v1/health/live
	GET  /api/v1/health/ready
	GET  /api/v1/stats
	GET  /api/v1/agents
	GET  /api/v1/agents/{agent}
	GET  /api/v1/agents/{agent}/matches?n=&metric=
	GET  /api/v1/agents/{agent}/recommendations?mode=user|item&metric=&k=
	GET  /api/v1/items
	GET  /api/v1/items/{item}/similar?n=
	GET  /api/v1/index
	POST /api/v1/index/rebuild
	GET  /metrics

Path parameters are URL-escaped agent and item identifiers, for example
/api/v1/agents/Lisa%20Rose/matches.

# Response Format

Every endpoint writes the same envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "request_id": "...", "query_time_ms": 1},
	  "error": {"code": "NOT_FOUND", "message": "..."}
	}

# Error Mapping

	recommend.ErrUnknownKey          404 NOT_FOUND
	validation failures              400 VALIDATION_ERROR
	recommend.ErrInvalidRequest      400 BAD_REQUEST
	recommend.ErrUnknownMetric       400 BAD_REQUEST
	recommend.ErrBuildInProgress     409 CONFLICT
	recommend.ErrIndexNotBuilt       503 INDEX_NOT_BUILT
	context.DeadlineExceeded         504 TIMEOUT
	anything else                    500 INTERNAL_ERROR

# Middleware

RequestID, RealIP, AccessLog, Recoverer, CORS and Compress apply to every
route. The /api/v1 data routes add IP rate limiting (go-chi/httprate),
security headers and Prometheus instrumentation.
*/
package api
