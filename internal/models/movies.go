// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package models

import (
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// MovieResponse is a catalog item as shown to clients.
type MovieResponse struct {
	ID          int      `json:"movie_id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	Genres      []string `json:"genres"`
	Genre       string   `json:"genre"`
	Language    string   `json:"original_language,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty"`
	Adult       *bool    `json:"adult,omitempty"`
	Popularity  float64  `json:"popularity"`

	// PosterPath is the full poster URL, or null when unknown or when the
	// lookup failed.
	PosterPath *string `json:"poster_path"`
}

// NewMovieResponse converts an item. poster may be nil.
func NewMovieResponse(it *recommend.Item, poster *string) MovieResponse {
	genres := it.Genres
	if genres == nil {
		genres = []string{}
	}
	return MovieResponse{
		ID:          it.ID,
		Title:       it.Title,
		Overview:    it.Overview,
		Genres:      genres,
		Genre:       it.PrimaryGenre(),
		Language:    it.Language,
		ReleaseDate: it.ReleaseDate,
		Adult:       it.Adult,
		Popularity:  it.Popularity,
		PosterPath:  poster,
	}
}

// RecommendResponse is the payload of POST /api/v1/recommend.
//
// Outcome is "item" for a scored pick, "onboarding" for a popular title
// shown while the user has too few likes, or "exhausted" when nothing is
// left to show. Movie is the first pick; Movies carries the whole batch when
// more than one was requested. UserVector is the taste vector the client
// should send back on its next request.
type RecommendResponse struct {
	Outcome    string           `json:"outcome"`
	Movie      *MovieResponse   `json:"movie,omitempty"`
	Movies     []MovieResponse  `json:"movies,omitempty"`
	UserVector recommend.Vector `json:"user_vector"`
	Candidates int              `json:"candidates"`
}

// FeedbackResponse is the payload of POST /api/v1/feedback.
type FeedbackResponse struct {
	UserVector recommend.Vector `json:"user_vector"`
}

// SearchResponse is the payload of POST /api/v1/search.
type SearchResponse struct {
	Movies []MovieResponse `json:"movies"`
}

// SimilarMovie is one neighbour in a similar-items listing.
type SimilarMovie struct {
	MovieResponse
	Similarity float64 `json:"similarity"`
}

// SimilarResponse is the payload of GET /api/v1/movies/{id}/similar.
type SimilarResponse struct {
	MovieID int            `json:"movie_id"`
	Movies  []SimilarMovie `json:"movies"`
}

// FacetResponse lists the values available for a filter.
type FacetResponse struct {
	Values []string `json:"values"`
	Count  int      `json:"count"`
}
