// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package models defines the JSON shapes returned by the HTTP API.
//
// Every endpoint answers with an APIResponse envelope. Payload types
// (MovieResponse, RecommendResponse, SearchResponse and friends) are kept
// separate from the engine's own types so the wire format can carry
// presentation fields such as poster_path without leaking them into the
// scoring code.
package models
