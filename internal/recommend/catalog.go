// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Catalog is an immutable, ordered snapshot of items and their embeddings.
// Embeddings are stored row-major in one contiguous slice so bulk similarity
// computation walks memory linearly.
type Catalog struct {
	items    []Item
	index    map[int]int
	matrix   []float64
	dim      int
	baseline Vector

	popularOnce sync.Once
	popular     []int

	facetsOnce sync.Once
	genres     []string
	languages  []string
}

// NewCatalog builds a catalog from items and their embeddings, which must be
// aligned by position. Items with an empty overview are dropped together
// with their embedding. Every remaining embedding is renormalised to unit
// length.
func NewCatalog(items []Item, embeddings [][]float64) (*Catalog, error) {
	if len(items) != len(embeddings) {
		return nil, fmt.Errorf("%w: %d items but %d embeddings", ErrInvalidInput, len(items), len(embeddings))
	}

	dim := 0
	for _, e := range embeddings {
		if len(e) > 0 {
			dim = len(e)
			break
		}
	}

	c := &Catalog{
		items: make([]Item, 0, len(items)),
		index: make(map[int]int, len(items)),
		dim:   dim,
	}

	for i := range items {
		it := items[i]
		if strings.TrimSpace(it.Overview) == "" {
			continue
		}
		if len(embeddings[i]) != dim {
			return nil, fmt.Errorf("%w: item %d has dimension %d, want %d", ErrInvalidInput, it.ID, len(embeddings[i]), dim)
		}
		if _, dup := c.index[it.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate item id %d", ErrInvalidInput, it.ID)
		}
		row, ok := Normalize(embeddings[i])
		if !ok {
			return nil, fmt.Errorf("%w: item %d has a zero-norm embedding", ErrInvalidInput, it.ID)
		}

		it.Genres = append([]string(nil), it.Genres...)
		it.prepare()
		c.index[it.ID] = len(c.items)
		c.items = append(c.items, it)
		c.matrix = append(c.matrix, row...)
	}

	if len(c.items) == 0 {
		return nil, fmt.Errorf("%w: catalog has no items with an overview", ErrInvalidInput)
	}

	c.baseline = c.computeBaseline()
	return c, nil
}

// computeBaseline returns the normalised mean of all rows. If the rows
// cancel out, the first row is used instead.
func (c *Catalog) computeBaseline() Vector {
	mean := make([]float64, c.dim)
	for r := 0; r < len(c.items); r++ {
		row := c.Embedding(r)
		for j, x := range row {
			mean[j] += x
		}
	}
	n := float64(len(c.items))
	for j := range mean {
		mean[j] /= n
	}
	if v, ok := Normalize(mean); ok {
		return v
	}
	return c.Embedding(0).Clone()
}

// Len returns the number of items.
func (c *Catalog) Len() int { return len(c.items) }

// Dim returns the embedding dimension.
func (c *Catalog) Dim() int { return c.dim }

// Baseline returns a copy of the baseline vector: the normalised mean of all
// catalog embeddings.
func (c *Catalog) Baseline() Vector { return c.baseline.Clone() }

// Get returns the item with the given id.
func (c *Catalog) Get(id int) (Item, bool) {
	row, ok := c.index[id]
	if !ok {
		return Item{}, false
	}
	return c.items[row], true
}

// Row returns the catalog position of id.
func (c *Catalog) Row(id int) (int, bool) {
	row, ok := c.index[id]
	return row, ok
}

// At returns the item at a catalog position.
func (c *Catalog) At(row int) *Item { return &c.items[row] }

// Embedding returns a read-only view of the embedding at row.
// Callers must not modify the returned slice.
func (c *Catalog) Embedding(row int) Vector {
	start := row * c.dim
	return c.matrix[start : start+c.dim : start+c.dim]
}

// Items returns a copy of all items in catalog order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// TopByPopularity returns up to n rows ordered by popularity, highest first.
// Ties keep catalog order.
func (c *Catalog) TopByPopularity(n int) []int {
	c.popularOnce.Do(func() {
		rows := make([]int, len(c.items))
		for i := range rows {
			rows[i] = i
		}
		sort.SliceStable(rows, func(a, b int) bool {
			return c.items[rows[a]].Popularity > c.items[rows[b]].Popularity
		})
		c.popular = rows
	})
	if n <= 0 || n > len(c.popular) {
		n = len(c.popular)
	}
	out := make([]int, n)
	copy(out, c.popular[:n])
	return out
}

// Genres returns the distinct genres in the catalog, sorted.
func (c *Catalog) Genres() []string {
	c.buildFacets()
	return append([]string(nil), c.genres...)
}

// Languages returns the distinct language codes in the catalog, sorted.
func (c *Catalog) Languages() []string {
	c.buildFacets()
	return append([]string(nil), c.languages...)
}

func (c *Catalog) buildFacets() {
	c.facetsOnce.Do(func() {
		genres := make(map[string]struct{})
		languages := make(map[string]struct{})
		for i := range c.items {
			for _, g := range c.items[i].Genres {
				if g != "" {
					genres[g] = struct{}{}
				}
			}
			if l := c.items[i].Language; l != "" {
				languages[l] = struct{}{}
			}
		}
		c.genres = sortedKeys(genres)
		c.languages = sortedKeys(languages)
	})
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
