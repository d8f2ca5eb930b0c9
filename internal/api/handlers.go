// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"time"

	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Version is reported by the health endpoint. Overridden at build time.
var Version = "dev"

// PosterEnricher resolves poster URLs for items. Implementations never
// fail: a nil entry means no poster.
type PosterEnricher interface {
	Posters(ctx context.Context, items []recommend.Item) []*string
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_recommend.go: recommend, feedback, search
//   - handlers_movies.go: movie lookup, similar items, filter pick-lists
//   - handlers_health.go: liveness, readiness, health
type Handler struct {
	engine      *recommend.Engine
	enricher    PosterEnricher
	vectorIndex string
	timeout     time.Duration
	startTime   time.Time
}

// HandlerOptions carries the optional collaborators of a Handler.
type HandlerOptions struct {
	// Enricher attaches posters. Nil leaves every poster null.
	Enricher PosterEnricher

	// VectorIndex names the nearest-neighbour backend for health output.
	VectorIndex string

	// Timeout bounds each engine call. Zero means no bound beyond the
	// server's own write timeout.
	Timeout time.Duration
}

// NewHandler creates a new API handler.
//
// Example:
//
//	handler := api.NewHandler(engine, api.HandlerOptions{Enricher: enricher})
//	router := api.NewRouter(handler, api.NewChiMiddleware(nil))
//	http.ListenAndServe(":8000", router.SetupChi())
func NewHandler(engine *recommend.Engine, opts HandlerOptions) *Handler {
	if opts.VectorIndex == "" {
		opts.VectorIndex = "brute"
	}
	return &Handler{
		engine:      engine,
		enricher:    opts.Enricher,
		vectorIndex: opts.VectorIndex,
		timeout:     opts.Timeout,
		startTime:   time.Now(),
	}
}

// withTimeout applies the per-request engine timeout.
func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.timeout)
}

// toMovies converts items and resolves their posters concurrently.
func (h *Handler) toMovies(ctx context.Context, items []recommend.Item) []models.MovieResponse {
	var posters []*string
	if h.enricher != nil {
		posters = h.enricher.Posters(ctx, items)
	}

	out := make([]models.MovieResponse, len(items))
	for i := range items {
		var poster *string
		if i < len(posters) {
			poster = posters[i]
		}
		out[i] = models.NewMovieResponse(&items[i], poster)
	}
	return out
}
