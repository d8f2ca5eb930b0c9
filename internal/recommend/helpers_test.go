// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"math"
	"testing"
)

const unitTolerance = 1e-6

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

// testItem is a compact fixture row.
type testItem struct {
	id         int
	title      string
	genres     []string
	lang       string
	date       string
	popularity float64
	emb        []float64
}

// newTestCatalog builds a catalog from fixture rows.
func newTestCatalog(t *testing.T, rows []testItem) *Catalog {
	t.Helper()
	items := make([]Item, len(rows))
	embs := make([][]float64, len(rows))
	for i, r := range rows {
		items[i] = Item{
			ID:          r.id,
			Title:       r.title,
			Overview:    "overview of " + r.title,
			Genres:      r.genres,
			Language:    r.lang,
			ReleaseDate: r.date,
			Popularity:  r.popularity,
		}
		embs[i] = r.emb
	}
	c, err := NewCatalog(items, embs)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	return c
}

// abcCatalog is the three-movie catalog used across tests: A and C are
// action movies close to each other, B is a drama pointing elsewhere.
func abcCatalog(t *testing.T) *Catalog {
	t.Helper()
	return newTestCatalog(t, []testItem{
		{id: 1, title: "Alpha Strike", genres: []string{"Action"}, lang: "en", date: "2001-06-01", popularity: 30, emb: []float64{1, 0, 0}},
		{id: 2, title: "Bitter Harvest", genres: []string{"Drama"}, lang: "fr", date: "1999-02-11", popularity: 20, emb: []float64{0, 1, 0}},
		{id: 3, title: "Crossfire", genres: []string{"Action", "Thriller"}, lang: "en", date: "2010-09-09", popularity: 10, emb: []float64{0.9, 0.1, 0}},
	})
}

// genreCatalog returns n items spread over the given genres round-robin
// with embeddings that all lean toward the first axis.
func genreCatalog(t *testing.T, n int, genres []string) *Catalog {
	t.Helper()
	rows := make([]testItem, n)
	for i := range rows {
		angle := float64(i) * 0.01
		rows[i] = testItem{
			id:         100 + i,
			title:      "Movie " + genres[i%len(genres)],
			genres:     []string{genres[i%len(genres)]},
			lang:       "en",
			date:       "2000-01-01",
			popularity: float64(n - i),
			emb:        []float64{math.Cos(angle), math.Sin(angle), 0.1},
		}
	}
	return newTestCatalog(t, rows)
}

func assertUnit(t *testing.T, v Vector) {
	t.Helper()
	if n := Norm(v); math.Abs(n-1) > unitTolerance {
		t.Errorf("Norm() = %v, want 1 within %v", n, unitTolerance)
	}
}

func assertVectorNear(t *testing.T, got, want Vector) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > unitTolerance {
			t.Errorf("vector = %v, want %v", got, want)
			return
		}
	}
}

// stubEmbedder returns a fixed vector or error.
type stubEmbedder struct {
	vec   Vector
	err   error
	calls int
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) (Vector, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.vec, nil
}
