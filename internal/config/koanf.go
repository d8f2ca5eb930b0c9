// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelmatch/config.yaml",
	"/etc/reelmatch/config.yml",
}

// ConfigPathEnvVar is the environment variable that points at a config file.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config populated with built-in defaults.
// The recommend section mirrors recommend.DefaultConfig.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8000,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			RateLimitReqs:     120,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			TrustedProxies:    []string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Dataset: DatasetConfig{
			MoviesPath:     "data/movies.csv",
			RatingsPath:    "data/ratings.csv",
			EmbeddingsPath: "data/movie_embeddings.npy",
			DuckDBThreads:  0,
			LoadTimeout:    5 * time.Minute,
		},
		Recommend: RecommendConfig{
			ContentWeight:         0.8,
			CollabWeight:          0.2,
			PositiveRating:        4.0,
			MinSupport:            0.01,
			PenaltyWeight:         0.2,
			Epsilon:               1e-8,
			Parallelism:           0,
			ChunkSize:             2048,
			MinLikes:              5,
			PoolSize:              100,
			Alpha:                 0.3,
			RecommendDiversityCap: 5,
			SearchDiversityCap:    0,
			MaxBatch:              20,
			SemanticK:             10,
			MaxResults:            5,
			SearchTimeout:         3 * time.Second,
			Seed:                  42,
		},
		Embedding: EmbeddingConfig{
			Enabled:   false,
			URL:       "http://127.0.0.1:8080",
			Model:     "sentence-transformers/all-MiniLM-L6-v2",
			Timeout:   2 * time.Second,
			Dimension: 0,
		},
		VectorIndex: VectorIndexConfig{
			Backend:           "brute",
			MilvusAddress:     "127.0.0.1:19530",
			MilvusCollection:  "movies",
			MilvusVectorField: "embedding",
			MilvusIDField:     "movie_id",
			MilvusNProbe:      16,
			Timeout:           2 * time.Second,
		},
		Enrichment: EnrichmentConfig{
			Enabled:      true,
			APIKey:       "",
			BaseURL:      "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p/w500",
			Timeout:      3 * time.Second,
			RateLimit:    40,
			RateBurst:    10,
			CacheSize:    10000,
			CacheTTL:     24 * time.Hour,
			Store:        "none",
			StoreTTL:     7 * 24 * time.Hour,
			BadgerPath:   "data/posters",
			RedisAddr:    "127.0.0.1:6379",
			RedisDB:      0,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// Precedence is ENV > File > Defaults.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// TMDB_API_KEY -> enrichment.api_key, HTTP_PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file found, or "" if none.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when set from env.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"security.trusted_proxies",
}

// processSliceFields converts comma-separated string values to slices.
// Env vars arrive as strings; YAML lists are left untouched.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
	"trusted_proxies":     "security.trusted_proxies",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Dataset
	"movies_path":          "dataset.movies_path",
	"ratings_path":         "dataset.ratings_path",
	"embeddings_path":      "dataset.embeddings_path",
	"duckdb_threads":       "dataset.duckdb_threads",
	"dataset_load_timeout": "dataset.load_timeout",

	// Recommendation engine
	"recommend_content_weight":       "recommend.content_weight",
	"recommend_collab_weight":        "recommend.collab_weight",
	"recommend_positive_rating":      "recommend.positive_rating",
	"recommend_min_support":          "recommend.min_support",
	"recommend_penalty_weight":       "recommend.penalty_weight",
	"recommend_epsilon":              "recommend.epsilon",
	"recommend_parallelism":          "recommend.parallelism",
	"recommend_chunk_size":           "recommend.chunk_size",
	"recommend_min_likes":            "recommend.min_likes",
	"recommend_pool_size":            "recommend.pool_size",
	"recommend_alpha":                "recommend.alpha",
	"recommend_diversity_cap":        "recommend.recommend_diversity_cap",
	"recommend_search_diversity_cap": "recommend.search_diversity_cap",
	"recommend_max_batch":            "recommend.max_batch",
	"recommend_semantic_k":           "recommend.semantic_k",
	"recommend_max_results":          "recommend.max_results",
	"recommend_search_timeout":       "recommend.search_timeout",
	"recommend_seed":                 "recommend.seed",

	// Embedding service
	"embedding_enabled":   "embedding.enabled",
	"embedding_url":       "embedding.url",
	"embedding_model":     "embedding.model",
	"embedding_timeout":   "embedding.timeout",
	"embedding_dimension": "embedding.dimension",

	// Vector index
	"vector_index_backend": "vector_index.backend",
	"milvus_address":       "vector_index.milvus_address",
	"milvus_collection":    "vector_index.milvus_collection",
	"milvus_vector_field":  "vector_index.milvus_vector_field",
	"milvus_id_field":      "vector_index.milvus_id_field",
	"milvus_nprobe":        "vector_index.milvus_nprobe",
	"vector_index_timeout": "vector_index.timeout",

	// Poster enrichment
	"enrichment_enabled":  "enrichment.enabled",
	"tmdb_api_key":        "enrichment.api_key",
	"tmdb_base_url":       "enrichment.base_url",
	"tmdb_image_base_url": "enrichment.image_base_url",
	"enrichment_timeout":  "enrichment.timeout",
	"tmdb_rate_limit":     "enrichment.rate_limit",
	"tmdb_rate_burst":     "enrichment.rate_burst",
	"poster_cache_size":   "enrichment.cache_size",
	"poster_cache_ttl":    "enrichment.cache_ttl",
	"poster_store":        "enrichment.store",
	"poster_store_ttl":    "enrichment.store_ttl",
	"poster_badger_path":  "enrichment.badger_path",
	"redis_addr":          "enrichment.redis_addr",
	"redis_db":            "enrichment.redis_db",
}

// envTransformFunc transforms environment variable names to koanf paths.
// Unmapped variables return "" and are skipped, so unrelated environment
// does not leak into the configuration.
//
// Examples:
//   - TMDB_API_KEY -> enrichment.api_key
//   - HTTP_PORT -> server.port
//   - RECOMMEND_ALPHA -> recommend.alpha
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
