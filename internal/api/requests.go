// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// ConstraintFields are the optional filters shared by recommend and search.
type ConstraintFields struct {
	Genre     string `json:"genre,omitempty" validate:"omitempty,max=64"`
	Language  string `json:"language,omitempty" validate:"omitempty,langcode"`
	YearStart *int   `json:"year_start,omitempty" validate:"omitempty,min=1870,max=2200"`
	YearEnd   *int   `json:"year_end,omitempty" validate:"omitempty,min=1870,max=2200"`
	Adult     *bool  `json:"adult,omitempty"`
}

func (c *ConstraintFields) toConstraints() recommend.Constraints {
	return recommend.Constraints{
		Genre:     c.Genre,
		Language:  c.Language,
		YearStart: c.YearStart,
		YearEnd:   c.YearEnd,
		Adult:     c.Adult,
	}
}

// RecommendRequest is the body of POST /api/v1/recommend.
type RecommendRequest struct {
	UserVector []float64 `json:"user_vector,omitempty" validate:"omitempty,max=4096"`
	SeenIDs    []int     `json:"seen_ids" validate:"max=10000"`
	LikedIDs   []int     `json:"liked_ids" validate:"max=10000"`
	Count      int       `json:"count,omitempty" validate:"omitempty,min=1,max=50"`
	ConstraintFields
}

// FeedbackRequest is the body of POST /api/v1/feedback. Feedback is "like"
// or "dislike"; other values are rejected by the engine as INVALID_INPUT.
type FeedbackRequest struct {
	UserVector []float64 `json:"user_vector,omitempty" validate:"omitempty,max=4096"`
	MovieID    *int      `json:"movie_id" validate:"required"`
	Feedback   string    `json:"feedback" validate:"required,max=16"`
}

// SearchRequest is the body of POST /api/v1/search.
type SearchRequest struct {
	Query string `json:"query" validate:"max=500"`
	ConstraintFields
}
