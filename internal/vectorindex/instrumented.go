// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package vectorindex

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Instrumented records latency and errors of an index under a backend label.
type Instrumented struct {
	backend string
	next    recommend.Index
}

// Instrument wraps idx with vector search metrics.
func Instrument(backend string, idx recommend.Index) *Instrumented {
	return &Instrumented{backend: backend, next: idx}
}

// Nearest implements recommend.Index.
func (i *Instrumented) Nearest(ctx context.Context, query recommend.Vector, k int) ([]recommend.Neighbor, error) {
	start := time.Now()
	hits, err := i.next.Nearest(ctx, query, k)
	metrics.RecordVectorSearch(i.backend, time.Since(start), err)
	return hits, err
}

// Fallback serves queries from primary and, when it fails, from secondary.
// Caller cancellation is returned as-is rather than retried.
type Fallback struct {
	primary   recommend.Index
	secondary recommend.Index
	logger    zerolog.Logger
}

// NewFallback creates a Fallback index.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewFallback(primary, secondary recommend.Index, logger zerolog.Logger) *Fallback {
	return &Fallback{primary: primary, secondary: secondary, logger: logger}
}

// Nearest implements recommend.Index.
func (f *Fallback) Nearest(ctx context.Context, query recommend.Vector, k int) ([]recommend.Neighbor, error) {
	hits, err := f.primary.Nearest(ctx, query, k)
	if err == nil {
		return hits, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	f.logger.Warn().Err(err).Msg("primary vector index failed, using fallback")
	return f.secondary.Nearest(ctx, query, k)
}

var (
	_ recommend.Index = (*Instrumented)(nil)
	_ recommend.Index = (*Fallback)(nil)
)
