// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/dataset"
	"github.com/tomtom215/reelmatch/internal/embedding"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/vectorindex"
)

// EngineComponents holds the engine and whatever it must release on exit.
type EngineComponents struct {
	Engine *recommend.Engine

	// IndexBackend names the nearest-neighbour backend ("brute" or "milvus").
	IndexBackend string

	closers []io.Closer
}

// Close releases external connections held by the engine's collaborators.
func (c *EngineComponents) Close() error {
	var firstErr error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// initEngine loads the dataset and builds the engine with its optional
// embedder and nearest-neighbour index.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initEngine(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*EngineComponents, error) {
	ds, err := dataset.NewLoader(cfg.Dataset, logger).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	catalog, err := recommend.NewCatalog(ds.Items, ds.Embeddings)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	ledger := recommend.NewLedger(ds.Ratings, cfg.Recommend.PositiveRating)

	logger.Info().
		Int("movies", catalog.Len()).
		Int("dimension", catalog.Dim()).
		Int("ratings", ledger.Len()).
		Int("users", ledger.Users()).
		Msg("Catalog and interaction ledger loaded")

	components := &EngineComponents{}
	var opts []recommend.Option

	if cfg.Embedding.Enabled {
		embCfg := cfg.Embedding
		if embCfg.Dimension == 0 {
			embCfg.Dimension = catalog.Dim()
		}
		opts = append(opts, recommend.WithEmbedder(embedding.NewClient(embCfg, logger)))
		logger.Info().Str("url", embCfg.URL).Str("model", embCfg.Model).Msg("Semantic search enabled")
	} else {
		logger.Info().Msg("Semantic search disabled (EMBEDDING_ENABLED=false), search is lexical only")
	}

	index, err := buildIndex(ctx, cfg.VectorIndex, catalog, components, logger)
	if err != nil {
		return nil, err
	}
	opts = append(opts, recommend.WithIndex(index))

	engine, err := recommend.NewEngine(buildEngineConfig(cfg), catalog, ledger, logger, opts...)
	if err != nil {
		_ = components.Close()
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}
	components.Engine = engine
	return components, nil
}

// buildIndex returns the brute-force index, or Milvus backed by brute force
// when vector_index.backend is "milvus".
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func buildIndex(ctx context.Context, cfg config.VectorIndexConfig, catalog *recommend.Catalog,
	components *EngineComponents, logger zerolog.Logger) (recommend.Index, error) {
	brute := vectorindex.Instrument("brute", recommend.NewBruteForceIndex(catalog))
	if cfg.Backend != "milvus" {
		components.IndexBackend = "brute"
		return brute, nil
	}

	milvus, err := vectorindex.NewMilvusIndex(ctx, cfg)
	if err != nil {
		return nil, err
	}
	components.closers = append(components.closers, milvus)
	components.IndexBackend = "milvus"
	logger.Info().
		Str("address", cfg.MilvusAddress).
		Str("collection", cfg.MilvusCollection).
		Msg("Milvus nearest-neighbour index connected")

	return vectorindex.NewFallback(vectorindex.Instrument("milvus", milvus), brute, logger), nil
}

// buildEngineConfig maps application config onto the engine's config.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	rc := cfg.Recommend
	return &recommend.Config{
		Scoring: recommend.ScoringConfig{
			ContentWeight:  rc.ContentWeight,
			CollabWeight:   rc.CollabWeight,
			PositiveRating: rc.PositiveRating,
			MinSupport:     rc.MinSupport,
			PenaltyWeight:  rc.PenaltyWeight,
			Epsilon:        rc.Epsilon,
			Parallelism:    rc.Parallelism,
			ChunkSize:      rc.ChunkSize,
		},
		Onboarding: recommend.OnboardingConfig{
			MinLikes: rc.MinLikes,
			PoolSize: rc.PoolSize,
		},
		Feedback: recommend.FeedbackConfig{
			Alpha: rc.Alpha,
		},
		Selection: recommend.SelectionConfig{
			RecommendDiversityCap: rc.RecommendDiversityCap,
			SearchDiversityCap:    rc.SearchDiversityCap,
			MaxBatch:              rc.MaxBatch,
		},
		Search: recommend.SearchConfig{
			SemanticK:  rc.SemanticK,
			MaxResults: rc.MaxResults,
			Timeout:    rc.SearchTimeout,
		},
		Seed: rc.Seed,
	}
}
