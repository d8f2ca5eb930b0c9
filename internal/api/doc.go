// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package api exposes the recommendation engine over HTTP using the Chi router.

The service keeps no per-user state. A client carries its own session (the
ids it has shown, the ids the user liked, and the taste vector returned by
the previous call) and sends it with every request.

# Endpoints

	POST /api/v1/recommend              next pick for a session
	POST /api/v1/feedback               fold a like/dislike into a taste vector
	POST /api/v1/search                 free-text search with optional filters
	GET  /api/v1/movies/{id}            one catalog entry
	GET  /api/v1/movies/{id}/similar    nearest neighbours by embedding (?k=)
	GET  /api/v1/genres                 genre pick-list
	GET  /api/v1/languages              language pick-list
	GET  /api/v1/health, /live, /ready  health checks
	GET  /metrics                       Prometheus metrics

# Response Format

Every JSON response uses the models.APIResponse envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "query_time_ms": 3, "request_id": "..."}
	}

Errors set status to "error" and carry an error object with a machine
readable code:

	VALIDATION_ERROR     request failed struct validation (400)
	INVALID_INPUT        unknown feedback sign, wrong vector dimension (400)
	BAD_REQUEST          unparseable body or path (400)
	NOT_FOUND            unknown movie id (404)
	RATE_LIMIT_EXCEEDED  per-IP limit hit (429)
	TIMEOUT              engine call exceeded the request timeout (503)
	INTERNAL_ERROR       anything else (500)

Posters are best effort. A movie whose poster lookup failed or timed out
is returned with "poster_path": null; the request itself still succeeds.

# Middleware

Global: trusted-proxy RealIP, request id, panic recovery, CORS
(go-chi/cors), request logging. API routes add per-IP rate limiting
(go-chi/httprate), security headers and Prometheus instrumentation.
*/
package api
