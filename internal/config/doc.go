// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package config provides centralized configuration management for Reelmatch.

Configuration is loaded with Koanf v2 in three layers, later layers winning:

 1. Defaults from defaultConfig()
 2. An optional YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml,
    /etc/reelmatch/config.yaml, /etc/reelmatch/config.yml
 3. Environment variables, through an explicit mapping table

Only mapped environment variables are read. Unrelated variables never reach
the configuration.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default 8000), HTTP_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
  - ENVIRONMENT: development, staging or production

Security:
  - CORS_ORIGINS: comma-separated (default *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - TRUSTED_PROXIES: comma-separated

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Dataset:
  - MOVIES_PATH, RATINGS_PATH, EMBEDDINGS_PATH, DUCKDB_THREADS,
    DATASET_LOAD_TIMEOUT

Recommendation engine:
  - RECOMMEND_CONTENT_WEIGHT (0.8), RECOMMEND_COLLAB_WEIGHT (0.2)
  - RECOMMEND_PENALTY_WEIGHT (0.2), RECOMMEND_ALPHA (0.3)
  - RECOMMEND_MIN_LIKES (5), RECOMMEND_POOL_SIZE (100)
  - RECOMMEND_DIVERSITY_CAP (5), RECOMMEND_SEARCH_DIVERSITY_CAP (0)
  - RECOMMEND_MAX_BATCH, RECOMMEND_SEMANTIC_K, RECOMMEND_MAX_RESULTS,
    RECOMMEND_SEARCH_TIMEOUT, RECOMMEND_SEED

Embedding service:
  - EMBEDDING_ENABLED, EMBEDDING_URL, EMBEDDING_MODEL, EMBEDDING_TIMEOUT,
    EMBEDDING_DIMENSION

Vector index:
  - VECTOR_INDEX_BACKEND: brute or milvus
  - MILVUS_ADDRESS, MILVUS_COLLECTION, MILVUS_VECTOR_FIELD, MILVUS_ID_FIELD,
    MILVUS_NPROBE, VECTOR_INDEX_TIMEOUT

Poster enrichment:
  - ENRICHMENT_ENABLED, TMDB_API_KEY, TMDB_BASE_URL, TMDB_IMAGE_BASE_URL
  - ENRICHMENT_TIMEOUT, TMDB_RATE_LIMIT, TMDB_RATE_BURST
  - POSTER_CACHE_SIZE, POSTER_CACHE_TTL
  - POSTER_STORE: none, badger or redis
  - POSTER_STORE_TTL, POSTER_BADGER_PATH, REDIS_ADDR, REDIS_DB

# Example

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	addr := cfg.Server.Addr()
*/
package config
