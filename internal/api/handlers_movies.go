// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

const (
	defaultSimilarK = 10
	maxSimilarK     = 50
)

func movieIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, fmt.Errorf("movie id must be an integer")
	}
	return id, nil
}

// Movie handles GET /api/v1/movies/{id}.
func (h *Handler) Movie(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := movieIDParam(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}

	item, ok := h.engine.Catalog().Get(id)
	if !ok {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, fmt.Sprintf("movie %d not found", id), nil)
		return
	}

	movies := h.toMovies(r.Context(), []recommend.Item{item})
	respondSuccess(w, r, movies[0], start)
}

// Similar handles GET /api/v1/movies/{id}/similar?k=10.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := movieIDParam(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	k, err := getIntParam(r, "k", defaultSimilarK)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	if k < 1 || k > maxSimilarK {
		respondError(w, r, http.StatusBadRequest, ErrCodeInvalidInput, fmt.Sprintf("k must be between 1 and %d", maxSimilarK), nil)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	hits, err := h.engine.Similar(ctx, id, k)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	catalog := h.engine.Catalog()
	items := make([]recommend.Item, 0, len(hits))
	sims := make([]float64, 0, len(hits))
	for _, hit := range hits {
		if it, ok := catalog.Get(hit.ID); ok {
			items = append(items, it)
			sims = append(sims, hit.Similarity)
		}
	}

	movies := h.toMovies(ctx, items)
	out := models.SimilarResponse{MovieID: id, Movies: make([]models.SimilarMovie, len(movies))}
	for i := range movies {
		out.Movies[i] = models.SimilarMovie{MovieResponse: movies[i], Similarity: sims[i]}
	}
	respondSuccess(w, r, out, start)
}

// Genres handles GET /api/v1/genres.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	values := h.engine.Catalog().Genres()
	respondSuccess(w, r, models.FacetResponse{Values: values, Count: len(values)}, time.Now())
}

// Languages handles GET /api/v1/languages.
func (h *Handler) Languages(w http.ResponseWriter, r *http.Request) {
	values := h.engine.Catalog().Languages()
	respondSuccess(w, r, models.FacetResponse{Values: values, Count: len(values)}, time.Now())
}
