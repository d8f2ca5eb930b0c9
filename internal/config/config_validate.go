// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"net/netip"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateDataset(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateEmbedding(); err != nil {
		return err
	}

	if err := c.validateVectorIndex(); err != nil {
		return err
	}

	return c.validateEnrichment()
}

// validEnvironments defines the allowed deployment environments
var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// validateSecurity validates CORS and rate limiting configuration
func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	for _, p := range c.Security.TrustedProxies {
		if !validProxyEntry(p) {
			return fmt.Errorf("TRUSTED_PROXIES entry %q is not an IP address or CIDR prefix", p)
		}
	}
	return c.validateRateLimits()
}

func validProxyEntry(s string) bool {
	s = strings.TrimSpace(s)
	if _, err := netip.ParsePrefix(s); err == nil {
		return true
	}
	_, err := netip.ParseAddr(s)
	return err == nil
}

// HasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true if a wildcard origin is used in production.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.IsProduction() && c.HasWildcardCORS()
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func (c *Config) validateDataset() error {
	if c.Dataset.MoviesPath == "" {
		return fmt.Errorf("MOVIES_PATH is required")
	}
	if c.Dataset.RatingsPath == "" {
		return fmt.Errorf("RATINGS_PATH is required")
	}
	if c.Dataset.EmbeddingsPath == "" {
		return fmt.Errorf("EMBEDDINGS_PATH is required")
	}
	if c.Dataset.DuckDBThreads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative")
	}
	if c.Dataset.LoadTimeout <= 0 {
		return fmt.Errorf("DATASET_LOAD_TIMEOUT must be positive")
	}
	return nil
}

// validateRecommend checks the bounds that would make the engine reject its
// configuration, so a bad value fails at load time with the env var name.
func (c *Config) validateRecommend() error {
	r := &c.Recommend
	if r.ContentWeight < 0 || r.CollabWeight < 0 || r.ContentWeight+r.CollabWeight == 0 {
		return fmt.Errorf("RECOMMEND_CONTENT_WEIGHT and RECOMMEND_COLLAB_WEIGHT must be non-negative and not both zero")
	}
	if r.Alpha <= 0 || r.Alpha >= 1 {
		return fmt.Errorf("RECOMMEND_ALPHA must be in (0, 1), got %v", r.Alpha)
	}
	if r.PenaltyWeight < 0 || r.PenaltyWeight > 1 {
		return fmt.Errorf("RECOMMEND_PENALTY_WEIGHT must be in [0, 1], got %v", r.PenaltyWeight)
	}
	if r.MinLikes < 0 {
		return fmt.Errorf("RECOMMEND_MIN_LIKES must be non-negative")
	}
	if r.PoolSize < 1 {
		return fmt.Errorf("RECOMMEND_POOL_SIZE must be positive")
	}
	if r.MaxBatch < 1 {
		return fmt.Errorf("RECOMMEND_MAX_BATCH must be positive")
	}
	if r.MaxResults < 1 {
		return fmt.Errorf("RECOMMEND_MAX_RESULTS must be positive")
	}
	return nil
}

func (c *Config) validateEmbedding() error {
	if !c.Embedding.Enabled {
		return nil
	}
	if err := validateHTTPURL(c.Embedding.URL, "EMBEDDING_URL"); err != nil {
		return err
	}
	if c.Embedding.Timeout <= 0 {
		return fmt.Errorf("EMBEDDING_TIMEOUT must be positive")
	}
	if c.Embedding.Dimension < 0 {
		return fmt.Errorf("EMBEDDING_DIMENSION must be non-negative")
	}
	return nil
}

func (c *Config) validateVectorIndex() error {
	switch c.VectorIndex.Backend {
	case "brute":
		return nil
	case "milvus":
		if c.VectorIndex.MilvusAddress == "" {
			return fmt.Errorf("MILVUS_ADDRESS is required when VECTOR_INDEX_BACKEND=milvus")
		}
		if c.VectorIndex.MilvusCollection == "" {
			return fmt.Errorf("MILVUS_COLLECTION is required when VECTOR_INDEX_BACKEND=milvus")
		}
		if c.VectorIndex.MilvusNProbe < 1 {
			return fmt.Errorf("MILVUS_NPROBE must be positive")
		}
		if c.VectorIndex.Timeout <= 0 {
			return fmt.Errorf("VECTOR_INDEX_TIMEOUT must be positive")
		}
		return nil
	default:
		return fmt.Errorf("VECTOR_INDEX_BACKEND must be one of: brute, milvus")
	}
}

// validPosterStores defines the allowed persistent poster caches
var validPosterStores = map[string]bool{
	"none":   true,
	"badger": true,
	"redis":  true,
}

// validateEnrichment validates poster lookup configuration. A missing API key
// is not an error: the service runs without posters.
func (c *Config) validateEnrichment() error {
	if !c.Enrichment.Enabled {
		return nil
	}
	if err := validateHTTPURL(c.Enrichment.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(c.Enrichment.ImageBaseURL, "TMDB_IMAGE_BASE_URL"); err != nil {
		return err
	}
	if c.Enrichment.Timeout <= 0 {
		return fmt.Errorf("ENRICHMENT_TIMEOUT must be positive")
	}
	if c.Enrichment.RateLimit <= 0 || c.Enrichment.RateBurst < 1 {
		return fmt.Errorf("TMDB_RATE_LIMIT and TMDB_RATE_BURST must be positive")
	}
	if c.Enrichment.CacheSize < 1 || c.Enrichment.CacheTTL <= 0 {
		return fmt.Errorf("POSTER_CACHE_SIZE and POSTER_CACHE_TTL must be positive")
	}
	if !validPosterStores[c.Enrichment.Store] {
		return fmt.Errorf("POSTER_STORE must be one of: none, badger, redis")
	}
	if c.Enrichment.Store == "badger" && c.Enrichment.BadgerPath == "" {
		return fmt.Errorf("POSTER_BADGER_PATH is required when POSTER_STORE=badger")
	}
	if c.Enrichment.Store == "redis" && c.Enrichment.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required when POSTER_STORE=redis")
	}
	return nil
}
