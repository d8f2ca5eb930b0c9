// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/enrichment"
	"github.com/tomtom215/reelmatch/internal/supervisor"
	"github.com/tomtom215/reelmatch/internal/supervisor/services"
)

// initEnrichment builds the poster enricher. It returns nil when enrichment
// is disabled or has no API key; responses then carry null posters.
// A poster store that cannot be opened is logged and skipped.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initEnrichment(ctx context.Context, cfg config.EnrichmentConfig, tree *supervisor.SupervisorTree, logger zerolog.Logger) *enrichment.Enricher {
	if !cfg.Enabled {
		logger.Info().Msg("Poster enrichment disabled (ENRICHMENT_ENABLED=false)")
		return nil
	}
	if cfg.APIKey == "" {
		logger.Warn().Msg("Poster enrichment enabled without TMDB_API_KEY, posters will be null")
		return nil
	}

	store, err := enrichment.OpenStore(ctx, cfg)
	if err != nil {
		logger.Warn().Err(err).Str("store", cfg.Store).Msg("Poster store unavailable, using in-memory cache only")
		store = nil
	}
	if bs, ok := store.(*enrichment.BadgerStore); ok {
		tree.AddDataService(services.NewStoreGCService(bs, 0, logger))
	}

	logger.Info().
		Str("store", cfg.Store).
		Int("cache_size", cfg.CacheSize).
		Float64("rate_limit", cfg.RateLimit).
		Msg("Poster enrichment enabled")
	return enrichment.NewEnricher(cfg, enrichment.NewTMDBClient(cfg), store, logger)
}
