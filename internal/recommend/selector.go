// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import "strings"

// itemFilter is one constraint check. Filters run in a fixed order and a
// failing filter skips the candidate.
type itemFilter func(it *Item) bool

// Selector walks ranked candidates and returns the ones that pass the
// exclusion rules, the user's constraints and the diversity cap.
type Selector struct {
	catalog *Catalog
}

// NewSelector creates a selector over catalog.
func NewSelector(catalog *Catalog) *Selector {
	return &Selector{catalog: catalog}
}

// Select returns the first acceptable item in ranked (catalog rows, best
// first). The boolean is false when the ranking is exhausted.
func (s *Selector) Select(ranked []int, uc *UserContext, diversityCap int) (Item, bool) {
	items := s.SelectN(ranked, uc, 1, diversityCap)
	if len(items) == 0 {
		return Item{}, false
	}
	return items[0], true
}

// SelectN returns up to n acceptable items in ranked order. A primary genre
// is returned at most diversityCap times; diversityCap <= 0 disables the cap.
func (s *Selector) SelectN(ranked []int, uc *UserContext, n, diversityCap int) []Item {
	if n <= 0 {
		return nil
	}
	filters := buildFilters(uc)
	perGenre := make(map[string]int)
	out := make([]Item, 0, n)

walk:
	for _, row := range ranked {
		it := s.catalog.At(row)
		for _, f := range filters {
			if !f(it) {
				continue walk
			}
		}
		if diversityCap > 0 {
			g := strings.ToLower(it.PrimaryGenre())
			if perGenre[g] >= diversityCap {
				continue
			}
			perGenre[g]++
		}
		out = append(out, *it)
		if len(out) == n {
			break
		}
	}
	return out
}

// Accepts reports whether it passes the exclusion rules and constraints of
// uc. The diversity cap is not considered.
func (s *Selector) Accepts(it *Item, uc *UserContext) bool {
	for _, f := range buildFilters(uc) {
		if !f(it) {
			return false
		}
	}
	return true
}

// buildFilters returns the filter chain for uc in evaluation order:
// exclusion, genre, language, maturity, year range.
func buildFilters(uc *UserContext) []itemFilter {
	filters := make([]itemFilter, 0, 5)

	if excluded := uc.exclusions(); len(excluded) > 0 {
		filters = append(filters, func(it *Item) bool {
			_, skip := excluded[it.ID]
			return !skip
		})
	}

	c := uc.Constraints
	if genre := strings.ToLower(strings.TrimSpace(c.Genre)); genre != "" {
		filters = append(filters, func(it *Item) bool {
			return strings.Contains(it.genreText, genre)
		})
	}

	if lang := strings.TrimSpace(c.Language); lang != "" {
		filters = append(filters, func(it *Item) bool {
			return strings.EqualFold(it.Language, lang)
		})
	}

	if c.Adult != nil {
		want := *c.Adult
		filters = append(filters, func(it *Item) bool {
			return it.Adult == nil || *it.Adult == want
		})
	}

	if c.YearStart != nil || c.YearEnd != nil {
		start, end := c.YearStart, c.YearEnd
		filters = append(filters, func(it *Item) bool {
			y, ok := it.ReleaseYear()
			if !ok {
				return false
			}
			if start != nil && y < *start {
				return false
			}
			if end != nil && y > *end {
				return false
			}
			return true
		})
	}

	return filters
}
