// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Engine answers recommend, feedback, search and similar-item requests
// against an immutable catalog and rating ledger. It holds no per-user
// state and is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	catalog     *Catalog
	ledger      *Ledger
	synthesizer *Synthesizer
	scorer      *Scorer
	selector    *Selector
	blender     *Blender
	index       Index
	embedder    Embedder

	// Random source for onboarding (protected by rngMu for concurrent access)
	rng   *rand.Rand
	rngMu sync.Mutex

	// Counters
	requests          atomic.Int64
	onboarding        atomic.Int64
	exhausted         atomic.Int64
	scorerEvaluations atomic.Int64
	feedback          atomic.Int64
	searches          atomic.Int64
	degradedSearches  atomic.Int64
}

// Option configures optional Engine collaborators.
type Option func(*Engine)

// WithEmbedder enables the semantic half of Search.
func WithEmbedder(e Embedder) Option {
	return func(eng *Engine) { eng.embedder = e }
}

// WithIndex replaces the brute-force nearest-neighbour index.
func WithIndex(idx Index) Option {
	return func(eng *Engine) {
		if idx != nil {
			eng.index = idx
		}
	}
}

// NewEngine creates a new recommendation engine. ledger may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, catalog *Catalog, ledger *Ledger, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if catalog == nil || catalog.Len() == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrInvalidInput)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = 42
	}

	e := &Engine{
		config:      cfg,
		logger:      logger.With().Str("component", "recommend").Logger(),
		catalog:     catalog,
		ledger:      ledger,
		synthesizer: NewSynthesizer(catalog),
		scorer:      NewScorer(catalog, ledger, cfg.Scoring),
		selector:    NewSelector(catalog),
		index:       NewBruteForceIndex(catalog),
		rng:         rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for onboarding shuffles
	}
	for _, opt := range opts {
		opt(e)
	}
	e.blender = NewBlender(catalog, e.selector, e.embedder, e.index, cfg.Search, cfg.Selection.SearchDiversityCap, e.logger)

	return e, nil
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() *Catalog { return e.catalog }

// Config returns the engine configuration.
func (e *Engine) Config() *Config { return e.config }

// Ledger returns the interaction ledger, which may be nil.
func (e *Engine) Ledger() *Ledger { return e.ledger }

// SemanticSearch reports whether Search has an embedder to blend with.
func (e *Engine) SemanticSearch() bool { return e.embedder != nil }

// Recommend returns the next item (or batch of items) for a user.
//
// With fewer than MinLikes liked items the result is sampled from the most
// popular items without scoring. Otherwise the taste vector is synthesised,
// every catalog item is scored, and the best items passing the exclusion
// rules, constraints and diversity cap are returned. When nothing passes,
// the outcome is OutcomeExhausted.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req RecommendRequest) (*RecommendResult, error) {
	start := time.Now()
	e.requests.Add(1)

	req = e.prepareRequest(req)
	uc := &req.Context
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Int("liked", len(uc.LikedIDs)).
		Int("seen", len(uc.SeenIDs)).
		Logger()

	var (
		outcome    = OutcomeItem
		items      []Item
		candidates int
	)

	// Onboarding echoes the prior (or baseline); likes do not move it yet.
	onboarding := len(uc.distinctLiked()) < e.config.Onboarding.MinLikes
	liked := uc.LikedIDs
	if onboarding {
		liked = nil
	}
	taste, err := e.synthesizer.Synthesize(liked, uc.Prior)
	if err != nil {
		return nil, fmt.Errorf("synthesize taste: %w", err)
	}

	if onboarding {
		outcome = OutcomeOnboarding
		e.onboarding.Add(1)
		pool := e.shuffledPool()
		candidates = len(pool)
		items = e.selector.SelectN(pool, uc, req.Count, 0)
	} else {
		scores, err := e.scorer.Score(ctx, taste, uc)
		if err != nil {
			return nil, fmt.Errorf("score catalog: %w", err)
		}
		e.scorerEvaluations.Add(1)
		ranked := Rank(scores)
		candidates = len(ranked)
		items = e.selector.SelectN(ranked, uc, req.Count, e.config.Selection.RecommendDiversityCap)
	}

	if len(items) == 0 {
		outcome = OutcomeExhausted
		e.exhausted.Add(1)
		items = []Item{}
	}

	res := &RecommendResult{
		Outcome:     outcome,
		Items:       items,
		TasteVector: taste,
		Metadata: ResultMetadata{
			RequestID:  req.RequestID,
			Candidates: candidates,
			LatencyMS:  time.Since(start).Milliseconds(),
		},
	}

	logger.Debug().
		Str("outcome", outcome.String()).
		Int("returned", len(items)).
		Int64("latency_ms", res.Metadata.LatencyMS).
		Msg("recommendation complete")

	return res, nil
}

// prepareRequest applies defaults and generates a request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req RecommendRequest) RecommendRequest {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	if req.Count <= 0 {
		req.Count = 1
	}
	if req.Count > e.config.Selection.MaxBatch {
		req.Count = e.config.Selection.MaxBatch
	}
	return req
}

// shuffledPool returns the popularity pool rows in random order.
// This method is safe for concurrent use.
func (e *Engine) shuffledPool() []int {
	top := e.catalog.TopByPopularity(e.config.Onboarding.PoolSize)
	pool := make([]int, len(top))
	copy(pool, top)

	e.rngMu.Lock()
	e.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	e.rngMu.Unlock()
	return pool
}

// Feedback folds one like or dislike into a taste vector. A nil prior
// starts from the catalog baseline.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Feedback(_ context.Context, req FeedbackRequest) (*FeedbackResult, error) {
	sign, err := ParseSign(req.Sign)
	if err != nil {
		return nil, err
	}

	row, ok := e.catalog.Row(req.ItemID)
	if !ok {
		return nil, fmt.Errorf("%w: movie %d", ErrNotFound, req.ItemID)
	}

	// Unit-norm prior, so the zero-norm fallback in Update stays on the sphere.
	prior, err := e.synthesizer.Synthesize(nil, req.Prior)
	if err != nil {
		return nil, err
	}

	next, err := Update(prior, e.catalog.Embedding(row), sign, e.config.Feedback.Alpha)
	if err != nil {
		return nil, fmt.Errorf("update taste: %w", err)
	}
	e.feedback.Add(1)

	e.logger.Debug().
		Int("movie_id", req.ItemID).
		Str("sign", sign.String()).
		Msg("feedback applied")

	return &FeedbackResult{TasteVector: next}, nil
}

// Search returns catalog items matching a free-text query. When the
// semantic backend fails the lexical matches are still returned.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	e.searches.Add(1)
	items, degraded, err := e.blender.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	if degraded {
		e.degradedSearches.Add(1)
	}
	return &SearchResult{Items: items, Degraded: degraded}, nil
}

// Similar returns the k items closest to itemID, excluding the item itself.
func (e *Engine) Similar(ctx context.Context, itemID, k int) ([]Neighbor, error) {
	row, ok := e.catalog.Row(itemID)
	if !ok {
		return nil, fmt.Errorf("%w: movie %d", ErrNotFound, itemID)
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", ErrInvalidInput, k)
	}

	hits, err := e.index.Nearest(ctx, e.catalog.Embedding(row), k+1)
	if err != nil {
		return nil, fmt.Errorf("nearest neighbours: %w", err)
	}

	out := make([]Neighbor, 0, k)
	for _, h := range hits {
		if h.ID == itemID {
			continue
		}
		out = append(out, h)
		if len(out) == k {
			break
		}
	}
	return out, nil
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:          e.requests.Load(),
		Onboarding:        e.onboarding.Load(),
		Exhausted:         e.exhausted.Load(),
		ScorerEvaluations: e.scorerEvaluations.Load(),
		Feedback:          e.feedback.Load(),
		Searches:          e.searches.Load(),
		DegradedSearches:  e.degradedSearches.Load(),
	}
}
