// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import "fmt"

// Synthesizer derives a user's taste vector from the request state.
type Synthesizer struct {
	catalog *Catalog
}

// NewSynthesizer creates a synthesizer over catalog.
func NewSynthesizer(catalog *Catalog) *Synthesizer {
	return &Synthesizer{catalog: catalog}
}

// Synthesize returns a unit-norm taste vector.
//
// A non-empty prior wins and is renormalised. Otherwise the mean of the
// liked items' embeddings is used; ids missing from the catalog are skipped.
// With no usable signal, or when the signal cancels out to zero, the
// catalog baseline is returned.
func (s *Synthesizer) Synthesize(liked []int, prior Vector) (Vector, error) {
	if len(prior) > 0 {
		if len(prior) != s.catalog.Dim() {
			return nil, fmt.Errorf("%w: taste vector has dimension %d, want %d", ErrInvalidInput, len(prior), s.catalog.Dim())
		}
		if v, ok := Normalize(prior); ok {
			return v, nil
		}
		return s.catalog.Baseline(), nil
	}

	sum := make([]float64, s.catalog.Dim())
	found := 0
	for _, id := range liked {
		row, ok := s.catalog.Row(id)
		if !ok {
			continue
		}
		for j, x := range s.catalog.Embedding(row) {
			sum[j] += x
		}
		found++
	}
	if found == 0 {
		return s.catalog.Baseline(), nil
	}

	// The mean and the sum share a direction, so normalising the sum is enough.
	if v, ok := Normalize(sum); ok {
		return v, nil
	}
	return s.catalog.Baseline(), nil
}
