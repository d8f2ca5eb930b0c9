// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Scoring contains the hybrid scorer parameters.
	Scoring ScoringConfig `json:"scoring"`

	// Onboarding contains cold-start parameters.
	Onboarding OnboardingConfig `json:"onboarding"`

	// Feedback contains taste vector update parameters.
	Feedback FeedbackConfig `json:"feedback"`

	// Selection contains candidate selection parameters.
	Selection SelectionConfig `json:"selection"`

	// Search contains query blending parameters.
	Search SearchConfig `json:"search"`

	// Seed is the random seed for onboarding sampling.
	// If zero, a fixed default seed is used.
	Seed int64 `json:"seed"`
}

// ScoringConfig contains the hybrid scorer parameters.
type ScoringConfig struct {
	// ContentWeight is the weight of the normalised content term.
	// Default: 0.8.
	ContentWeight float64 `json:"content_weight"`

	// CollabWeight is the weight of the normalised collaborative term.
	// Default: 0.2.
	CollabWeight float64 `json:"collab_weight"`

	// PositiveRating is the rating at or above which a historical rating
	// counts as positive. Default: 4.0.
	PositiveRating float64 `json:"positive_rating"`

	// MinSupport drops co-rating shares at or below this value.
	// Default: 0.01.
	MinSupport float64 `json:"min_support"`

	// PenaltyWeight scales the mean similarity to implicit dislikes.
	// Default: 0.2.
	PenaltyWeight float64 `json:"penalty_weight"`

	// Epsilon guards min-max normalisation against equal scores.
	// Default: 1e-8.
	Epsilon float64 `json:"epsilon"`

	// Parallelism bounds the goroutines used to compute the content term.
	// Zero uses GOMAXPROCS. Default: 0.
	Parallelism int `json:"parallelism"`

	// ChunkSize is the number of rows scored per goroutine.
	// Default: 2048.
	ChunkSize int `json:"chunk_size"`
}

// OnboardingConfig contains cold-start parameters.
type OnboardingConfig struct {
	// MinLikes is the number of liked items below which the engine samples
	// from the popularity pool instead of scoring. Default: 5.
	MinLikes int `json:"min_likes"`

	// PoolSize is the number of most popular items sampled from.
	// Default: 100.
	PoolSize int `json:"pool_size"`
}

// FeedbackConfig contains taste vector update parameters.
type FeedbackConfig struct {
	// Alpha is the learning rate in (0, 1). Default: 0.3.
	Alpha float64 `json:"alpha"`
}

// SelectionConfig contains candidate selection parameters.
type SelectionConfig struct {
	// RecommendDiversityCap limits how many items sharing a primary genre
	// one recommend call may return. Zero disables the cap. Default: 5.
	RecommendDiversityCap int `json:"recommend_diversity_cap"`

	// SearchDiversityCap is the same limit for search. Default: 0.
	SearchDiversityCap int `json:"search_diversity_cap"`

	// MaxBatch is the largest Count a recommend call may request.
	// Default: 20.
	MaxBatch int `json:"max_batch"`
}

// SearchConfig contains query blending parameters.
type SearchConfig struct {
	// SemanticK is the number of nearest neighbours requested for the
	// semantic half of a search. Default: 10.
	SemanticK int `json:"semantic_k"`

	// MaxResults caps the result length. Default: 5.
	MaxResults int `json:"max_results"`

	// Timeout bounds the embed and nearest-neighbour calls. Default: 3s.
	Timeout time.Duration `json:"timeout"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			ContentWeight:  0.8,
			CollabWeight:   0.2,
			PositiveRating: 4.0,
			MinSupport:     0.01,
			PenaltyWeight:  0.2,
			Epsilon:        1e-8,
			Parallelism:    0,
			ChunkSize:      2048,
		},
		Onboarding: OnboardingConfig{
			MinLikes: 5,
			PoolSize: 100,
		},
		Feedback: FeedbackConfig{
			Alpha: 0.3,
		},
		Selection: SelectionConfig{
			RecommendDiversityCap: 5,
			SearchDiversityCap:    0,
			MaxBatch:              20,
		},
		Search: SearchConfig{
			SemanticK:  10,
			MaxResults: 5,
			Timeout:    3 * time.Second,
		},
		Seed: 42,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Scoring.ContentWeight < 0 {
		return fmt.Errorf("scoring.content_weight must be non-negative, got %f", c.Scoring.ContentWeight)
	}
	if c.Scoring.CollabWeight < 0 {
		return fmt.Errorf("scoring.collab_weight must be non-negative, got %f", c.Scoring.CollabWeight)
	}
	if c.Scoring.ContentWeight+c.Scoring.CollabWeight == 0 {
		return fmt.Errorf("scoring weights must not both be zero")
	}
	if c.Scoring.MinSupport < 0 || c.Scoring.MinSupport >= 1 {
		return fmt.Errorf("scoring.min_support must be in [0, 1), got %f", c.Scoring.MinSupport)
	}
	if c.Scoring.PenaltyWeight < 0 || c.Scoring.PenaltyWeight > 1 {
		return fmt.Errorf("scoring.penalty_weight must be in [0, 1], got %f", c.Scoring.PenaltyWeight)
	}
	if c.Scoring.Epsilon <= 0 {
		return fmt.Errorf("scoring.epsilon must be positive, got %g", c.Scoring.Epsilon)
	}
	if c.Scoring.Parallelism < 0 {
		return fmt.Errorf("scoring.parallelism must be non-negative, got %d", c.Scoring.Parallelism)
	}
	if c.Scoring.ChunkSize < 1 {
		return fmt.Errorf("scoring.chunk_size must be positive, got %d", c.Scoring.ChunkSize)
	}

	if c.Onboarding.MinLikes < 0 {
		return fmt.Errorf("onboarding.min_likes must be non-negative, got %d", c.Onboarding.MinLikes)
	}
	if c.Onboarding.PoolSize < 1 {
		return fmt.Errorf("onboarding.pool_size must be positive, got %d", c.Onboarding.PoolSize)
	}

	if c.Feedback.Alpha <= 0 || c.Feedback.Alpha >= 1 {
		return fmt.Errorf("feedback.alpha must be in (0, 1), got %f", c.Feedback.Alpha)
	}

	if c.Selection.RecommendDiversityCap < 0 {
		return fmt.Errorf("selection.recommend_diversity_cap must be non-negative, got %d", c.Selection.RecommendDiversityCap)
	}
	if c.Selection.SearchDiversityCap < 0 {
		return fmt.Errorf("selection.search_diversity_cap must be non-negative, got %d", c.Selection.SearchDiversityCap)
	}
	if c.Selection.MaxBatch < 1 {
		return fmt.Errorf("selection.max_batch must be positive, got %d", c.Selection.MaxBatch)
	}

	if c.Search.SemanticK < 0 {
		return fmt.Errorf("search.semantic_k must be non-negative, got %d", c.Search.SemanticK)
	}
	if c.Search.MaxResults < 1 {
		return fmt.Errorf("search.max_results must be positive, got %d", c.Search.MaxResults)
	}
	if c.Search.Timeout <= 0 {
		return fmt.Errorf("search.timeout must be positive, got %v", c.Search.Timeout)
	}

	return nil
}
