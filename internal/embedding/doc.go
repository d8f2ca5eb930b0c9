// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package embedding turns free-text search queries into vectors in the
// catalog's embedding space by calling an external embedding service
// (Hugging Face text-embeddings-inference or any server exposing the same
// POST /embed contract).
//
// Each call is bounded by the configured timeout and runs behind a circuit
// breaker. The returned vector is always renormalised to unit length.
// Callers treat any error as "semantic search unavailable" and fall back to
// lexical matching.
package embedding
