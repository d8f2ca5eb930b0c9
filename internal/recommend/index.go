// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"fmt"
)

// Embedder turns free text into a unit-norm vector in the catalog's
// embedding space.
type Embedder interface {
	Embed(ctx context.Context, text string) (Vector, error)
}

// Neighbor is one nearest-neighbour hit.
type Neighbor struct {
	ID         int     `json:"movie_id"`
	Similarity float64 `json:"similarity"`
}

// Index returns the k catalog items closest to a query vector by cosine
// similarity. Implementations are an acceleration only: they must agree
// with BruteForceIndex up to approximation error.
type Index interface {
	Nearest(ctx context.Context, query Vector, k int) ([]Neighbor, error)
}

// BruteForceIndex scans the whole catalog.
type BruteForceIndex struct {
	catalog *Catalog
}

// NewBruteForceIndex creates an exact index over catalog.
func NewBruteForceIndex(catalog *Catalog) *BruteForceIndex {
	return &BruteForceIndex{catalog: catalog}
}

// Nearest implements Index. Ties keep catalog order.
func (b *BruteForceIndex) Nearest(ctx context.Context, query Vector, k int) ([]Neighbor, error) {
	if len(query) != b.catalog.Dim() {
		return nil, fmt.Errorf("%w: query has dimension %d, want %d", ErrInvalidInput, len(query), b.catalog.Dim())
	}
	if k <= 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sims := make([]float64, b.catalog.Len())
	for r := range sims {
		sims[r] = Dot(query, b.catalog.Embedding(r))
	}
	rows := Rank(sims)
	if k > len(rows) {
		k = len(rows)
	}

	out := make([]Neighbor, k)
	for i, r := range rows[:k] {
		out[i] = Neighbor{ID: b.catalog.At(r).ID, Similarity: sims[r]}
	}
	return out, nil
}

var _ Index = (*BruteForceIndex)(nil)
