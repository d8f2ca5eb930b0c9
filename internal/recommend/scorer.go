// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// ExcludedScore is the score forced onto seen and liked items.
var ExcludedScore = math.Inf(-1)

// Scorer computes the blended relevance of every catalog item.
type Scorer struct {
	catalog *Catalog
	ledger  *Ledger
	cfg     ScoringConfig
}

// NewScorer creates a scorer. ledger may be nil, in which case the
// collaborative term is zero for every item.
func NewScorer(catalog *Catalog, ledger *Ledger, cfg ScoringConfig) *Scorer {
	return &Scorer{catalog: catalog, ledger: ledger, cfg: cfg}
}

// Score returns one score per catalog row:
//
//	hybrid = wc * minmax(content) + wf * minmax(collab) - wp * mean(sim to dislikes)
//
// Seen and liked rows are set to ExcludedScore.
func (s *Scorer) Score(ctx context.Context, taste Vector, uc *UserContext) ([]float64, error) {
	if len(taste) != s.catalog.Dim() {
		return nil, fmt.Errorf("%w: taste vector has dimension %d, want %d", ErrInvalidInput, len(taste), s.catalog.Dim())
	}

	n := s.catalog.Len()
	dislikeMean := s.meanEmbedding(uc.implicitDislikes())

	content := make([]float64, n)
	penalty := make([]float64, n)
	if err := s.forEachChunk(ctx, func(lo, hi int) {
		for r := lo; r < hi; r++ {
			row := s.catalog.Embedding(r)
			content[r] = Dot(taste, row)
			if dislikeMean != nil {
				penalty[r] = Dot(dislikeMean, row)
			}
		}
	}); err != nil {
		return nil, err
	}

	collab := make([]float64, n)
	for id, share := range s.ledger.CoRatingFrequency(uc.distinctLiked(), s.cfg.MinSupport) {
		if r, ok := s.catalog.Row(id); ok {
			collab[r] = share
		}
	}

	minMaxNormalize(content, s.cfg.Epsilon)
	minMaxNormalize(collab, s.cfg.Epsilon)

	scores := make([]float64, n)
	for r := range scores {
		scores[r] = s.cfg.ContentWeight*content[r] + s.cfg.CollabWeight*collab[r] - s.cfg.PenaltyWeight*penalty[r]
	}

	for id := range uc.exclusions() {
		if r, ok := s.catalog.Row(id); ok {
			scores[r] = ExcludedScore
		}
	}
	return scores, nil
}

// meanEmbedding averages the embeddings of ids found in the catalog. The
// dot product with the mean equals the mean of the dot products, so one
// pass over the catalog covers every dislike. Returns nil when none exist.
func (s *Scorer) meanEmbedding(ids []int) Vector {
	if len(ids) == 0 {
		return nil
	}
	sum := make(Vector, s.catalog.Dim())
	found := 0
	for _, id := range ids {
		r, ok := s.catalog.Row(id)
		if !ok {
			continue
		}
		for j, x := range s.catalog.Embedding(r) {
			sum[j] += x
		}
		found++
	}
	if found == 0 {
		return nil
	}
	for j := range sum {
		sum[j] /= float64(found)
	}
	return sum
}

// forEachChunk splits the catalog rows into chunks and runs fn on them
// concurrently. Chunks write disjoint index ranges.
func (s *Scorer) forEachChunk(ctx context.Context, fn func(lo, hi int)) error {
	n := s.catalog.Len()
	chunk := s.cfg.ChunkSize
	if chunk <= 0 || n <= chunk {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(0, n)
		return nil
	}

	limit := s.cfg.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(lo, hi)
			return nil
		})
	}
	return g.Wait()
}

// Rank returns row indices ordered by descending score. Equal scores keep
// catalog order.
func Rank(scores []float64) []int {
	rows := make([]int, len(scores))
	for i := range rows {
		rows[i] = i
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return scores[rows[a]] > scores[rows[b]]
	})
	return rows
}
