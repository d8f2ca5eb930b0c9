// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package enrichment

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// maxConcurrentLookups bounds provider calls per batch.
const maxConcurrentLookups = 8

// PosterSource resolves a title to a poster URL. "" means no poster exists.
type PosterSource interface {
	PosterURL(ctx context.Context, title string) (string, error)
}

// Enricher attaches poster URLs to items. Lookups go through an in-process
// LRU, then the optional persistent Store, then the provider. A nil
// *Enricher is valid and never returns a poster.
//
// Thread Safety: Safe for concurrent use.
type Enricher struct {
	source   PosterSource
	l1       *cache.LRU[string]
	store    Store
	storeTTL time.Duration
	timeout  time.Duration
	group    singleflight.Group
	logger   zerolog.Logger
}

// NewEnricher creates an enricher. store may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEnricher(cfg config.EnrichmentConfig, source PosterSource, store Store, logger zerolog.Logger) *Enricher {
	return &Enricher{
		source:   source,
		l1:       cache.NewLRU[string](cfg.CacheSize, cfg.CacheTTL),
		store:    store,
		storeTTL: cfg.StoreTTL,
		timeout:  cfg.Timeout,
		logger:   logger.With().Str("component", "enrichment").Logger(),
	}
}

// Poster returns the poster URL for item, or nil when none is known or the
// lookup failed. It never returns an error: enrichment failure only ever
// blanks the poster.
func (e *Enricher) Poster(ctx context.Context, item *recommend.Item) *string {
	if e == nil || item == nil {
		return nil
	}
	key := strconv.Itoa(item.ID)

	if v, ok := e.l1.Get(key); ok {
		metrics.RecordEnrichmentLookup("memory", "hit")
		return posterOrNil(v)
	}
	metrics.RecordEnrichmentLookup("memory", "miss")

	// The lookup is shared by every caller waiting on key, so it runs
	// detached from this caller's cancellation.
	ch := e.group.DoChan(key, func() (any, error) {
		return e.resolve(context.WithoutCancel(ctx), key, item.Title)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			metrics.RecordEnrichmentDegraded()
			e.logger.Debug().Err(res.Err).Int("movie_id", item.ID).Msg("poster lookup failed")
			return nil
		}
		return posterOrNil(res.Val.(string))
	case <-ctx.Done():
		metrics.RecordEnrichmentDegraded()
		return nil
	}
}

// resolve runs one lookup through the store and the provider, bounded by
// the enrichment timeout.
func (e *Enricher) resolve(ctx context.Context, key, title string) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	if e.store != nil {
		v, found, err := e.store.Get(ctx, key)
		switch {
		case err != nil:
			metrics.RecordEnrichmentLookup("store", "error")
			e.logger.Warn().Err(err).Msg("poster store read failed")
		case found:
			metrics.RecordEnrichmentLookup("store", "hit")
			e.l1.Add(key, v)
			return v, nil
		default:
			metrics.RecordEnrichmentLookup("store", "miss")
		}
	}

	v, err := e.source.PosterURL(ctx, title)
	if err != nil {
		metrics.RecordEnrichmentLookup("remote", "error")
		return "", err
	}
	result := "hit"
	if v == "" {
		result = "miss"
	}
	metrics.RecordEnrichmentLookup("remote", result)

	e.l1.Add(key, v)
	if e.store != nil {
		if err := e.store.Set(ctx, key, v, e.storeTTL); err != nil {
			e.logger.Warn().Err(err).Msg("poster store write failed")
		}
	}
	return v, nil
}

// Posters resolves posters for items concurrently. The result is aligned
// with items.
func (e *Enricher) Posters(ctx context.Context, items []recommend.Item) []*string {
	out := make([]*string, len(items))
	if e == nil || len(items) == 0 {
		return out
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i := range items {
		g.Go(func() error {
			out[i] = e.Poster(gctx, &items[i])
			return nil
		})
	}
	_ = g.Wait() // lookups never fail the group
	return out
}

// Close releases the persistent store.
func (e *Enricher) Close() error {
	if e == nil || e.store == nil {
		return nil
	}
	return e.store.Close()
}

func posterOrNil(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
