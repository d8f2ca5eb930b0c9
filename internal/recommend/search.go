// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Blender merges lexical substring matches with semantic nearest-neighbour
// matches and filters the union through the Selector.
type Blender struct {
	catalog  *Catalog
	selector *Selector
	embedder Embedder
	index    Index
	cfg      SearchConfig
	cap      int
	logger   zerolog.Logger
}

// NewBlender creates a blender. embedder may be nil, which disables the
// semantic half of the search. index defaults to brute force.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBlender(catalog *Catalog, selector *Selector, embedder Embedder, index Index, cfg SearchConfig, diversityCap int, logger zerolog.Logger) *Blender {
	if index == nil {
		index = NewBruteForceIndex(catalog)
	}
	return &Blender{
		catalog:  catalog,
		selector: selector,
		embedder: embedder,
		index:    index,
		cfg:      cfg,
		cap:      diversityCap,
		logger:   logger,
	}
}

// Search returns at most limit items: lexical matches first in catalog
// order, then semantic matches by similarity, deduplicated by id and
// filtered by the constraints. degraded is true when the semantic half
// failed and only lexical matches were considered.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (b *Blender) Search(ctx context.Context, req SearchRequest) (items []Item, degraded bool, err error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, false, fmt.Errorf("%w: empty search query", ErrInvalidInput)
	}
	limit := req.Limit
	if limit <= 0 || limit > b.cfg.MaxResults {
		limit = b.cfg.MaxResults
	}

	rows := b.lexical(strings.ToLower(query))

	semantic, err := b.semantic(ctx, query)
	if err != nil {
		degraded = true
		b.logger.Warn().Err(err).Str("query", query).Msg("semantic search unavailable, using lexical matches only")
	}

	seen := make(map[int]struct{}, len(rows)+len(semantic))
	for _, r := range rows {
		seen[r] = struct{}{}
	}
	for _, r := range semantic {
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		rows = append(rows, r)
	}

	uc := &UserContext{Constraints: req.Constraints}
	return b.selector.SelectN(rows, uc, limit, b.cap), degraded, nil
}

// lexical returns rows whose title, overview or genres contain q.
func (b *Blender) lexical(q string) []int {
	var rows []int
	for r := 0; r < b.catalog.Len(); r++ {
		if strings.Contains(b.catalog.At(r).searchText, q) {
			rows = append(rows, r)
		}
	}
	return rows
}

// semantic embeds the query and returns the rows of its nearest neighbours.
func (b *Blender) semantic(ctx context.Context, query string) ([]int, error) {
	if b.embedder == nil || b.cfg.SemanticK == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
	defer cancel()

	vec, err := b.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vec) != b.catalog.Dim() {
		return nil, fmt.Errorf("%w: embedding has dimension %d, want %d", ErrInvalidInput, len(vec), b.catalog.Dim())
	}

	hits, err := b.index.Nearest(ctx, vec, b.cfg.SemanticK)
	if err != nil {
		return nil, fmt.Errorf("nearest neighbours: %w", err)
	}

	rows := make([]int, 0, len(hits))
	for _, h := range hits {
		if r, ok := b.catalog.Row(h.ID); ok {
			rows = append(rows, r)
		}
	}
	return rows, nil
}
