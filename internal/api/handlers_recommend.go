// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Recommend handles POST /api/v1/recommend.
//
// The client sends everything the engine needs: the ids it has shown, the
// ids the user liked, the taste vector from the previous response and any
// filters. The response carries the next pick and the updated taste vector.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req RecommendRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	res, err := h.engine.Recommend(ctx, recommend.RecommendRequest{
		Context: recommend.UserContext{
			SeenIDs:     req.SeenIDs,
			LikedIDs:    req.LikedIDs,
			Prior:       req.UserVector,
			Constraints: req.toConstraints(),
		},
		Count:     req.Count,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	metrics.RecordRecommendation(res.Outcome.String(), time.Since(start))

	resp := models.RecommendResponse{
		Outcome:    res.Outcome.String(),
		UserVector: res.TasteVector,
		Candidates: res.Metadata.Candidates,
	}
	movies := h.toMovies(ctx, res.Items)
	if len(movies) > 0 {
		resp.Movie = &movies[0]
	}
	if len(movies) > 1 {
		resp.Movies = movies
	}

	respondSuccess(w, r, resp, start)
}

// Feedback handles POST /api/v1/feedback.
func (h *Handler) Feedback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req FeedbackRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.engine.Feedback(r.Context(), recommend.FeedbackRequest{
		Prior:  req.UserVector,
		ItemID: *req.MovieID,
		Sign:   req.Feedback,
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	metrics.RecordFeedback(strings.ToLower(strings.TrimSpace(req.Feedback)))

	respondSuccess(w, r, models.FeedbackResponse{UserVector: res.TasteVector}, start)
}

// Search handles POST /api/v1/search.
//
// Results blend title/overview/genre matches with semantic neighbours of
// the query. When the embedding service is down the lexical matches are
// still returned.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req SearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	res, err := h.engine.Search(ctx, recommend.SearchRequest{
		Query:       req.Query,
		Constraints: req.toConstraints(),
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	metrics.RecordSearch(res.Degraded)

	respondSuccess(w, r, models.SearchResponse{Movies: h.toMovies(ctx, res.Items)}, start)
}
