// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"strconv"
	"strings"
)

// Item represents a movie in the catalog.
type Item struct {
	// ID is the stable catalog identifier (MovieLens movieId).
	ID int `json:"movie_id"`

	// Title is the display title.
	Title string `json:"title"`

	// Overview is the free-text synopsis the embedding was computed from.
	Overview string `json:"overview"`

	// Genres in source order. The first entry is the primary genre.
	Genres []string `json:"genres"`

	// Language is the ISO 639-1 original language code.
	Language string `json:"original_language,omitempty"`

	// ReleaseDate as found in the dataset (usually YYYY-MM-DD). May be empty.
	ReleaseDate string `json:"release_date,omitempty"`

	// Adult is the maturity flag. Nil when the dataset does not define it.
	Adult *bool `json:"adult,omitempty"`

	// Popularity is the number of ratings or votes the item received.
	Popularity float64 `json:"popularity"`

	// genreText and searchText are lowercased copies used by the filters.
	genreText  string
	searchText string
}

// PrimaryGenre returns the first listed genre, or "" when the item has none.
func (it *Item) PrimaryGenre() string {
	if len(it.Genres) == 0 {
		return ""
	}
	return it.Genres[0]
}

// GenreText returns the genres joined the way they are displayed.
func (it *Item) GenreText() string {
	return strings.Join(it.Genres, ", ")
}

// ReleaseYear extracts the year from ReleaseDate. It accepts a leading
// four-digit year (1999-05-01, 1999) or a trailing one (05/01/1999).
func (it *Item) ReleaseYear() (int, bool) {
	d := strings.TrimSpace(it.ReleaseDate)
	if len(d) < 4 {
		return 0, false
	}
	if y, ok := parseYear(d[:4]); ok {
		return y, true
	}
	return parseYear(d[len(d)-4:])
}

func parseYear(s string) (int, bool) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	y, err := strconv.Atoi(s)
	if err != nil || y < 1000 {
		return 0, false
	}
	return y, true
}

// prepare fills the lowercased filter fields.
func (it *Item) prepare() {
	it.genreText = strings.ToLower(it.GenreText())
	it.searchText = strings.ToLower(it.Title + "\n" + it.Overview + "\n" + it.GenreText())
}

// RatingEvent is one historical user rating.
type RatingEvent struct {
	UserID int     `json:"user_id"`
	ItemID int     `json:"movie_id"`
	Rating float64 `json:"rating"`
}

// Constraints are the user-declared filters. Zero values mean "no filter".
type Constraints struct {
	// Genre must be a case-insensitive substring of the item's genre text.
	Genre string `json:"genre,omitempty"`

	// Language must equal the item's language code.
	Language string `json:"language,omitempty"`

	// YearStart and YearEnd bound the release year, inclusive.
	YearStart *int `json:"year_start,omitempty"`
	YearEnd   *int `json:"year_end,omitempty"`

	// Adult must equal the item's flag when both are defined.
	Adult *bool `json:"adult,omitempty"`
}

// UserContext is the per-request user state supplied by the client.
type UserContext struct {
	// SeenIDs are items already shown to the user.
	SeenIDs []int `json:"seen_ids"`

	// LikedIDs are items the user liked.
	LikedIDs []int `json:"liked_ids"`

	// Prior is the taste vector returned by a previous call, if any.
	Prior Vector `json:"user_vector,omitempty"`

	// Constraints filter the candidates.
	Constraints Constraints `json:"constraints"`
}

// exclusions returns seen ∪ liked as a set.
func (uc *UserContext) exclusions() map[int]struct{} {
	set := make(map[int]struct{}, len(uc.SeenIDs)+len(uc.LikedIDs))
	for _, id := range uc.SeenIDs {
		set[id] = struct{}{}
	}
	for _, id := range uc.LikedIDs {
		set[id] = struct{}{}
	}
	return set
}

// implicitDislikes returns ids that were seen but not liked, in seen order.
func (uc *UserContext) implicitDislikes() []int {
	liked := make(map[int]struct{}, len(uc.LikedIDs))
	for _, id := range uc.LikedIDs {
		liked[id] = struct{}{}
	}
	out := make([]int, 0, len(uc.SeenIDs))
	seen := make(map[int]struct{}, len(uc.SeenIDs))
	for _, id := range uc.SeenIDs {
		if _, ok := liked[id]; ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// distinctLiked returns the liked ids with duplicates removed.
func (uc *UserContext) distinctLiked() []int {
	set := make(map[int]struct{}, len(uc.LikedIDs))
	out := make([]int, 0, len(uc.LikedIDs))
	for _, id := range uc.LikedIDs {
		if _, ok := set[id]; ok {
			continue
		}
		set[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Outcome is the terminal state of a recommend call.
type Outcome int

const (
	// OutcomeItem means the hybrid ranking produced a result.
	OutcomeItem Outcome = iota

	// OutcomeOnboarding means too few likes were supplied and the result was
	// sampled from the popularity pool.
	OutcomeOnboarding

	// OutcomeExhausted means no candidate satisfied the constraints.
	// It is a legitimate state, not an error.
	OutcomeExhausted
)

// String returns the wire name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeItem:
		return "item"
	case OutcomeOnboarding:
		return "onboarding"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// RecommendRequest is the input of Engine.Recommend.
type RecommendRequest struct {
	// Context is the client-held user state.
	Context UserContext

	// Count is the number of items to return. Zero means one.
	Count int

	// RequestID correlates logs. Generated when empty.
	RequestID string
}

// RecommendResult is the output of Engine.Recommend.
type RecommendResult struct {
	// Outcome tells the client how Items was produced.
	Outcome Outcome `json:"outcome"`

	// Items holds the selected movies, best first. Empty when exhausted.
	Items []Item `json:"items"`

	// TasteVector is the vector the client should send back next time.
	TasteVector Vector `json:"user_vector"`

	// Metadata contains diagnostics about the call.
	Metadata ResultMetadata `json:"metadata"`
}

// Item returns the first selected item.
func (r *RecommendResult) Item() (Item, bool) {
	if len(r.Items) == 0 {
		return Item{}, false
	}
	return r.Items[0], true
}

// ResultMetadata contains diagnostics about a recommend call.
type ResultMetadata struct {
	RequestID  string `json:"request_id"`
	Candidates int    `json:"candidates"`
	LatencyMS  int64  `json:"latency_ms"`
}

// FeedbackRequest is the input of Engine.Feedback.
type FeedbackRequest struct {
	// Prior is the current taste vector. Nil starts from the baseline.
	Prior Vector

	// ItemID is the movie the feedback is about.
	ItemID int

	// Sign is "like" or "dislike".
	Sign string
}

// FeedbackResult is the output of Engine.Feedback.
type FeedbackResult struct {
	TasteVector Vector `json:"user_vector"`
}

// SearchRequest is the input of Engine.Search.
type SearchRequest struct {
	Query       string
	Constraints Constraints

	// Limit caps the result length. Zero uses the configured maximum.
	Limit int
}

// SearchResult is the answer to a SearchRequest. Degraded is set when the
// semantic half was unavailable and only lexical matches were used.
type SearchResult struct {
	Items    []Item `json:"items"`
	Degraded bool   `json:"degraded"`
}

// Stats are cumulative engine counters.
type Stats struct {
	Requests          int64 `json:"requests"`
	Onboarding        int64 `json:"onboarding"`
	Exhausted         int64 `json:"exhausted"`
	ScorerEvaluations int64 `json:"scorer_evaluations"`
	Feedback          int64 `json:"feedback"`
	Searches          int64 `json:"searches"`
	DegradedSearches  int64 `json:"degraded_searches"`
}
