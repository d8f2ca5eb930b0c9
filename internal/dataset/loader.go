// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package dataset

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Dataset is the raw material for the catalog and the ledger. Items and
// Embeddings are aligned by position.
type Dataset struct {
	Items      []recommend.Item
	Embeddings [][]float64
	Ratings    []recommend.RatingEvent
}

// Loader reads the configured dataset files.
type Loader struct {
	cfg    config.DatasetConfig
	logger zerolog.Logger
}

// NewLoader creates a loader.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLoader(cfg config.DatasetConfig, logger zerolog.Logger) *Loader {
	return &Loader{
		cfg:    cfg,
		logger: logger.With().Str("component", "dataset").Logger(),
	}
}

// Load reads movies, ratings and the embedding matrix concurrently and
// aligns them.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	if l.cfg.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.cfg.LoadTimeout)
		defer cancel()
	}

	reader, err := NewReader(l.cfg.DuckDBThreads)
	if err != nil {
		return nil, err
	}
	defer reader.Close() //nolint:errcheck // in-memory database

	var (
		movies  []MovieRow
		ratings []recommend.RatingEvent
		matrix  [][]float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		var err error
		movies, err = reader.ReadMovies(gctx, l.cfg.MoviesPath)
		if err == nil {
			metrics.RecordDatasetLoad("movies", time.Since(start), len(movies))
		}
		return err
	})
	g.Go(func() error {
		start := time.Now()
		var err error
		ratings, err = reader.ReadRatings(gctx, l.cfg.RatingsPath)
		if err == nil {
			metrics.RecordDatasetLoad("ratings", time.Since(start), len(ratings))
		}
		return err
	})
	g.Go(func() error {
		start := time.Now()
		var err error
		matrix, err = ReadNpy(l.cfg.EmbeddingsPath)
		if err == nil {
			metrics.RecordDatasetLoad("embeddings", time.Since(start), len(matrix))
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	items, embeddings, err := Align(movies, matrix)
	if err != nil {
		return nil, err
	}
	filled := FillPopularity(items, ratings)

	l.logger.Info().
		Int("movies", len(items)).
		Int("ratings", len(ratings)).
		Int("matrix_rows", len(matrix)).
		Int("popularity_from_ratings", filled).
		Msg("dataset loaded")

	return &Dataset{Items: items, Embeddings: embeddings, Ratings: ratings}, nil
}

// Align pairs movie rows with matrix rows.
//
// The matrix is normally aligned with every row of the movies file. When it
// instead has exactly one row per movie with a non-empty overview, it is
// taken to have been computed after dropping the rows without one, and is
// aligned with those rows only. Rows without an overview are dropped, as are
// later duplicates of a movie id. Surplus matrix rows are ignored.
func Align(movies []MovieRow, matrix [][]float64) ([]recommend.Item, [][]float64, error) {
	withOverview := 0
	fileRows := 0
	for _, m := range movies {
		if strings.TrimSpace(m.Item.Overview) != "" {
			withOverview++
		}
		if m.Row+1 > fileRows {
			fileRows = m.Row + 1
		}
	}

	compact := len(matrix) == withOverview && len(matrix) < fileRows

	items := make([]recommend.Item, 0, len(movies))
	embeddings := make([][]float64, 0, len(movies))
	seen := make(map[int]struct{}, len(movies))
	next := 0
	for _, m := range movies {
		// Rows without a synopsis never reach the catalog, so they must not
		// claim the id ahead of a later duplicate that has one.
		if strings.TrimSpace(m.Item.Overview) == "" {
			continue
		}
		row := m.Row
		if compact {
			row = next
			next++
		}
		if row >= len(matrix) {
			return nil, nil, fmt.Errorf("%w: movie %d is on row %d but the embedding matrix has %d rows",
				recommend.ErrInvalidInput, m.Item.ID, row, len(matrix))
		}
		if _, dup := seen[m.Item.ID]; dup {
			continue
		}
		seen[m.Item.ID] = struct{}{}
		items = append(items, m.Item)
		embeddings = append(embeddings, matrix[row])
	}
	return items, embeddings, nil
}

// FillPopularity sets the popularity of items that have none to their
// number of ratings. It returns how many items were filled.
func FillPopularity(items []recommend.Item, ratings []recommend.RatingEvent) int {
	counts := make(map[int]int, len(items))
	for _, r := range ratings {
		counts[r.ItemID]++
	}
	filled := 0
	for i := range items {
		if items[i].Popularity == 0 && counts[items[i].ID] > 0 {
			items[i].Popularity = float64(counts[items[i].ID])
			filled++
		}
	}
	return filled
}
