// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package enrichment decorates catalog items with poster artwork from The
// Movie Database (TMDB).
//
// Lookups are keyed by movie id and resolved in three tiers:
//
//  1. an in-process LRU with TTL (internal/cache)
//  2. an optional persistent Store, BadgerDB on local disk or Redis
//  3. the TMDB search API, rate limited and behind a circuit breaker
//
// Each provider call is bounded by the configured timeout and never
// retried. Any failure yields a nil poster and increments the
// enrichment_degraded_total metric; recommendation and search responses
// are never failed by enrichment. "No poster exists" answers are cached
// like positive answers.
package enrichment
