// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"testing"
)

func TestSelector_GenreFilterOverridesRanking(t *testing.T) {
	c := abcCatalog(t)
	sel := NewSelector(c)

	// Ranking strongly favours the action movies.
	ranked := []int{2, 0, 1}
	uc := &UserContext{
		LikedIDs:    []int{1},
		Constraints: Constraints{Genre: "drama"},
	}

	got, ok := sel.Select(ranked, uc, 0)
	if !ok {
		t.Fatal("Select() found nothing, want B")
	}
	if got.ID != 2 {
		t.Errorf("Select() = %d, want 2", got.ID)
	}
}

func TestSelector_Constraints(t *testing.T) {
	c := abcCatalog(t)
	sel := NewSelector(c)
	ranked := []int{0, 1, 2}

	tests := []struct {
		name string
		uc   UserContext
		want []int
	}{
		{"no constraints", UserContext{}, []int{1, 2, 3}},
		{"excludes seen and liked", UserContext{SeenIDs: []int{1}, LikedIDs: []int{3}}, []int{2}},
		{"genre substring", UserContext{Constraints: Constraints{Genre: "thrill"}}, []int{3}},
		{"genre case-insensitive", UserContext{Constraints: Constraints{Genre: "ACTION"}}, []int{1, 3}},
		{"language", UserContext{Constraints: Constraints{Language: "FR"}}, []int{2}},
		{"year start", UserContext{Constraints: Constraints{YearStart: intPtr(2001)}}, []int{1, 3}},
		{"year end", UserContext{Constraints: Constraints{YearEnd: intPtr(2000)}}, []int{2}},
		{"year range", UserContext{Constraints: Constraints{YearStart: intPtr(2000), YearEnd: intPtr(2005)}}, []int{1}},
		{"no match", UserContext{Constraints: Constraints{Genre: "western"}}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := sel.SelectN(ranked, &tt.uc, 10, 0)
			if len(items) != len(tt.want) {
				t.Fatalf("SelectN() returned %d items, want %d", len(items), len(tt.want))
			}
			for i, it := range items {
				if it.ID != tt.want[i] {
					t.Errorf("SelectN()[%d] = %d, want %d", i, it.ID, tt.want[i])
				}
			}
		})
	}
}

func TestSelector_Maturity(t *testing.T) {
	items := []Item{
		{ID: 1, Overview: "x", Adult: boolPtr(true)},
		{ID: 2, Overview: "y", Adult: boolPtr(false)},
		{ID: 3, Overview: "z"},
	}
	c, err := NewCatalog(items, [][]float64{{1, 0}, {1, 0}, {1, 0}})
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	sel := NewSelector(c)

	got := sel.SelectN([]int{0, 1, 2}, &UserContext{Constraints: Constraints{Adult: boolPtr(false)}}, 10, 0)
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Errorf("SelectN(adult=false) = %v, want items 2 and 3", got)
	}
}

func TestSelector_UndatedItemsFailOnlyWithYearBounds(t *testing.T) {
	c := newTestCatalog(t, []testItem{
		{id: 1, title: "undated", emb: []float64{1, 0}},
	})
	sel := NewSelector(c)

	if !sel.Accepts(c.At(0), &UserContext{}) {
		t.Error("Accepts() = false without year bounds, want true")
	}
	if sel.Accepts(c.At(0), &UserContext{Constraints: Constraints{YearEnd: intPtr(2020)}}) {
		t.Error("Accepts() = true for undated item with year bound, want false")
	}
}

func TestSelector_DiversityCap(t *testing.T) {
	c := genreCatalog(t, 40, []string{"Action", "Action", "Action", "Drama"})
	sel := NewSelector(c)
	ranked := make([]int, c.Len())
	for i := range ranked {
		ranked[i] = i
	}

	tests := []struct {
		name   string
		n      int
		cap    int
		action int
		drama  int
	}{
		{"cap of 5", 20, 5, 5, 5},
		{"cap of 2", 20, 2, 2, 2},
		{"no cap", 8, 0, 6, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := make(map[string]int)
			for _, it := range sel.SelectN(ranked, &UserContext{}, tt.n, tt.cap) {
				counts[it.PrimaryGenre()]++
			}
			if counts["Action"] != tt.action || counts["Drama"] != tt.drama {
				t.Errorf("genre counts = %v, want Action=%d Drama=%d", counts, tt.action, tt.drama)
			}
		})
	}
}

func TestSelector_ConstraintMonotonic(t *testing.T) {
	c := abcCatalog(t)
	sel := NewSelector(c)
	ranked := []int{0, 1, 2}

	loose := &UserContext{Constraints: Constraints{YearStart: intPtr(1990), YearEnd: intPtr(2020)}}
	tight := &UserContext{Constraints: Constraints{YearStart: intPtr(2000), YearEnd: intPtr(2020)}}
	tighter := &UserContext{Constraints: Constraints{YearStart: intPtr(2000), YearEnd: intPtr(2020), Genre: "thriller"}}

	a := len(sel.SelectN(ranked, loose, 10, 0))
	b := len(sel.SelectN(ranked, tight, 10, 0))
	d := len(sel.SelectN(ranked, tighter, 10, 0))
	if b > a || d > b {
		t.Errorf("result sizes = %d, %d, %d, want non-increasing", a, b, d)
	}
}

func TestSelector_SelectNZero(t *testing.T) {
	sel := NewSelector(abcCatalog(t))
	if got := sel.SelectN([]int{0, 1, 2}, &UserContext{}, 0, 0); got != nil {
		t.Errorf("SelectN(n=0) = %v, want nil", got)
	}
	if _, ok := sel.Select(nil, &UserContext{}, 0); ok {
		t.Error("Select(empty ranking) ok = true, want false")
	}
}
