// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"math"
	"testing"
)

func TestLedger_CoRatingFrequency(t *testing.T) {
	events := []RatingEvent{
		{UserID: 1, ItemID: 10, Rating: 5},
		{UserID: 1, ItemID: 20, Rating: 4},
		{UserID: 1, ItemID: 30, Rating: 2}, // below threshold
		{UserID: 2, ItemID: 10, Rating: 4.5},
		{UserID: 2, ItemID: 20, Rating: 4},
		{UserID: 2, ItemID: 40, Rating: 4},
		{UserID: 3, ItemID: 50, Rating: 5}, // never co-rated with 10
	}
	l := NewLedger(events, 4.0)

	if l.Len() != len(events) {
		t.Errorf("Len() = %d, want %d", l.Len(), len(events))
	}
	if l.Users() != 3 {
		t.Errorf("Users() = %d, want 3", l.Users())
	}

	got := l.CoRatingFrequency([]int{10}, 0)

	// Raters {1, 2} have 5 positive ratings between them.
	want := map[int]float64{10: 2.0 / 5, 20: 2.0 / 5, 40: 1.0 / 5}
	if len(got) != len(want) {
		t.Fatalf("CoRatingFrequency() = %v, want %v", got, want)
	}
	for id, w := range want {
		if math.Abs(got[id]-w) > 1e-12 {
			t.Errorf("share[%d] = %v, want %v", id, got[id], w)
		}
	}
	if _, ok := got[30]; ok {
		t.Error("negative rating contributed a share")
	}
	if _, ok := got[50]; ok {
		t.Error("unrelated user contributed a share")
	}
}

func TestLedger_MinSupportIsStrict(t *testing.T) {
	l := NewLedger([]RatingEvent{
		{UserID: 1, ItemID: 1, Rating: 5},
		{UserID: 1, ItemID: 2, Rating: 5},
		{UserID: 1, ItemID: 3, Rating: 5},
		{UserID: 1, ItemID: 4, Rating: 5},
	}, 4)

	got := l.CoRatingFrequency([]int{1}, 0.25)
	if len(got) != 0 {
		t.Errorf("CoRatingFrequency(minSupport=0.25) = %v, want empty (shares equal to support are dropped)", got)
	}
}

func TestLedger_Empty(t *testing.T) {
	var nilLedger *Ledger
	if got := nilLedger.CoRatingFrequency([]int{1}, 0); len(got) != 0 {
		t.Errorf("nil ledger CoRatingFrequency() = %v, want empty", got)
	}
	if nilLedger.Len() != 0 || nilLedger.Users() != 0 {
		t.Error("nil ledger should report zero size")
	}

	l := NewLedger(nil, 4)
	if got := l.CoRatingFrequency(nil, 0); len(got) != 0 {
		t.Errorf("CoRatingFrequency(nil) = %v, want empty", got)
	}
	if got := l.CoRatingFrequency([]int{999}, 0); len(got) != 0 {
		t.Errorf("CoRatingFrequency(unknown) = %v, want empty", got)
	}
}
