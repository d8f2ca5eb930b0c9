// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

// Ledger is an immutable index of historical positive ratings. Only ratings
// at or above the positive threshold are kept, since co-rating frequency is
// the only question the engine asks of the history.
type Ledger struct {
	byUser map[int][]int
	byItem map[int][]int
	events int
}

// NewLedger indexes events with rating >= positiveThreshold.
func NewLedger(events []RatingEvent, positiveThreshold float64) *Ledger {
	l := &Ledger{
		byUser: make(map[int][]int),
		byItem: make(map[int][]int),
		events: len(events),
	}
	for _, ev := range events {
		if ev.Rating < positiveThreshold {
			continue
		}
		l.byUser[ev.UserID] = append(l.byUser[ev.UserID], ev.ItemID)
		l.byItem[ev.ItemID] = append(l.byItem[ev.ItemID], ev.UserID)
	}
	return l
}

// Len returns the number of rating events the ledger was built from.
func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	return l.events
}

// Users returns the number of users with at least one positive rating.
func (l *Ledger) Users() int {
	if l == nil {
		return 0
	}
	return len(l.byUser)
}

// CoRatingFrequency answers "people who liked what you liked also liked".
// It collects every user who positively rated any of likedIDs, then returns,
// for each item, the share of those users' positive ratings that went to
// it. Shares at or below minSupport are dropped.
func (l *Ledger) CoRatingFrequency(likedIDs []int, minSupport float64) map[int]float64 {
	out := make(map[int]float64)
	if l == nil || len(likedIDs) == 0 {
		return out
	}

	raters := make(map[int]struct{})
	for _, id := range likedIDs {
		for _, u := range l.byItem[id] {
			raters[u] = struct{}{}
		}
	}
	if len(raters) == 0 {
		return out
	}

	counts := make(map[int]int)
	total := 0
	for u := range raters {
		for _, item := range l.byUser[u] {
			counts[item]++
			total++
		}
	}

	for item, n := range counts {
		share := float64(n) / float64(total)
		if share > minSupport {
			out[item] = share
		}
	}
	return out
}
