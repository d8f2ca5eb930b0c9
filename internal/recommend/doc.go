// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package recommend implements the hybrid preference-scoring and
// candidate-selection engine.
//
// # Architecture
//
// The engine is assembled from small components, leaves first:
//
//   - Catalog: immutable snapshot of movies and their unit-norm embeddings
//   - Ledger: immutable snapshot of historical ratings, used for co-rating
//   - Synthesizer: derives a taste vector from liked items or a prior vector
//   - Scorer: content similarity + collaborative frequency - dislike penalty
//   - Selector: walks the ranking applying constraint filters and a diversity cap
//   - Updater: stateless like/dislike update of a taste vector
//   - Blender: lexical + semantic search reusing the Selector
//
// # Design Principles
//
//   - Stateless: all user state (seen ids, liked ids, taste vector) travels
//     in the request and the response
//   - Deterministic: ties are broken by catalog order; onboarding sampling
//     uses a seeded source
//   - Total: numeric edge cases (empty sets, zero norms, equal scores) resolve
//     to defined fallbacks instead of errors
//
// # Usage
//
//	catalog, err := recommend.NewCatalog(items, embeddings)
//	ledger := recommend.NewLedger(events, 4.0)
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), catalog, ledger, logger)
//
//	res, err := engine.Recommend(ctx, recommend.RecommendRequest{
//	    Context: recommend.UserContext{Seen: seen, Liked: liked},
//	})
//
// # Thread Safety
//
// Catalog and Ledger are read-only after construction, so any number of
// requests may score and select concurrently without locking. The only
// shared mutable state in the Engine is the onboarding random source, which
// is guarded by a mutex, and a set of atomic counters.
package recommend
