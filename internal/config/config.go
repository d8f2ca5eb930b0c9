// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting via environment variables
//
// Configuration Categories:
//
//  1. Data:
//     - Dataset: movies/ratings CSV and the embedding matrix
//
//  2. Engine:
//     - Recommend: hybrid scorer, onboarding, feedback and search tuning
//
//  3. Collaborators:
//     - Embedding: text embedding service used by search
//     - VectorIndex: brute force or Milvus nearest-neighbour backend
//     - Enrichment: TMDB poster lookup and its cache tiers
//
//  4. Transport & Observability:
//     - Server, Security (CORS, rate limits), Logging
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Security    SecurityConfig    `koanf:"security"`
	Logging     LoggingConfig     `koanf:"logging"`
	Dataset     DatasetConfig     `koanf:"dataset"`
	Recommend   RecommendConfig   `koanf:"recommend"`
	Embedding   EmbeddingConfig   `koanf:"embedding"`
	VectorIndex VectorIndexConfig `koanf:"vector_index"`
	Enrichment  EnrichmentConfig  `koanf:"enrichment"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production" (default: "development")
}

// SecurityConfig holds CORS and rate limiting settings. The service has no
// user accounts; all user state travels in the request.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	TrustedProxies    []string      `koanf:"trusted_proxies"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// DatasetConfig locates the files the catalog and ledger are built from.
type DatasetConfig struct {
	// MoviesPath is a CSV with at least movieId, title and overview columns.
	// genres, release_date, original_language, adult and popularity are
	// optional.
	MoviesPath string `koanf:"movies_path"`

	// RatingsPath is a CSV with userId, movieId and rating columns.
	RatingsPath string `koanf:"ratings_path"`

	// EmbeddingsPath is a .npy matrix aligned row by row with MoviesPath.
	EmbeddingsPath string `koanf:"embeddings_path"`

	// DuckDBThreads bounds the threads DuckDB uses while reading the CSVs.
	// Zero uses the number of CPUs.
	DuckDBThreads int `koanf:"duckdb_threads"`

	// LoadTimeout bounds the whole startup load.
	LoadTimeout time.Duration `koanf:"load_timeout"`
}

// RecommendConfig holds the recommendation engine tuning. Values are copied
// into recommend.Config at startup.
type RecommendConfig struct {
	ContentWeight  float64 `koanf:"content_weight"`
	CollabWeight   float64 `koanf:"collab_weight"`
	PositiveRating float64 `koanf:"positive_rating"`
	MinSupport     float64 `koanf:"min_support"`
	PenaltyWeight  float64 `koanf:"penalty_weight"`
	Epsilon        float64 `koanf:"epsilon"`
	Parallelism    int     `koanf:"parallelism"`
	ChunkSize      int     `koanf:"chunk_size"`

	MinLikes int `koanf:"min_likes"`
	PoolSize int `koanf:"pool_size"`

	Alpha float64 `koanf:"alpha"`

	RecommendDiversityCap int `koanf:"recommend_diversity_cap"`
	SearchDiversityCap    int `koanf:"search_diversity_cap"`
	MaxBatch              int `koanf:"max_batch"`

	SemanticK     int           `koanf:"semantic_k"`
	MaxResults    int           `koanf:"max_results"`
	SearchTimeout time.Duration `koanf:"search_timeout"`

	// Seed for onboarding sampling. Zero uses a fixed default.
	Seed int64 `koanf:"seed"`
}

// EmbeddingConfig configures the text embedding service used by search.
// When disabled, search runs lexical matching only.
type EmbeddingConfig struct {
	Enabled bool   `koanf:"enabled"`
	URL     string `koanf:"url"`
	Model   string `koanf:"model"`

	// Timeout bounds a single embed call.
	Timeout time.Duration `koanf:"timeout"`

	// Dimension is the expected vector length. Zero accepts whatever the
	// catalog uses.
	Dimension int `koanf:"dimension"`
}

// VectorIndexConfig selects the nearest-neighbour backend.
type VectorIndexConfig struct {
	// Backend is "brute" (exact scan, default) or "milvus".
	Backend string `koanf:"backend"`

	MilvusAddress     string        `koanf:"milvus_address"`
	MilvusCollection  string        `koanf:"milvus_collection"`
	MilvusVectorField string        `koanf:"milvus_vector_field"`
	MilvusIDField     string        `koanf:"milvus_id_field"`
	MilvusNProbe      int           `koanf:"milvus_nprobe"`
	Timeout           time.Duration `koanf:"timeout"`
}

// EnrichmentConfig configures TMDB poster lookup.
type EnrichmentConfig struct {
	Enabled      bool   `koanf:"enabled"`
	APIKey       string `koanf:"api_key"`
	BaseURL      string `koanf:"base_url"`
	ImageBaseURL string `koanf:"image_base_url"`

	// Timeout bounds one lookup. A lookup that exceeds it yields no poster.
	Timeout time.Duration `koanf:"timeout"`

	// RateLimit is the sustained TMDB request rate per second.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`

	// CacheSize and CacheTTL size the in-process L1 cache.
	CacheSize int           `koanf:"cache_size"`
	CacheTTL  time.Duration `koanf:"cache_ttl"`

	// Store selects the persistent L2 cache: "none", "badger" or "redis".
	Store      string        `koanf:"store"`
	StoreTTL   time.Duration `koanf:"store_ttl"`
	BadgerPath string        `koanf:"badger_path"`
	RedisAddr  string        `koanf:"redis_addr"`
	RedisDB    int           `koanf:"redis_db"`
}

// Load reads configuration from all sources. See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Addr returns the listen address.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
