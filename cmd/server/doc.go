// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package main is the entry point for the Reelmatch server.

Reelmatch recommends movies from a fixed catalog by blending content
similarity (precomputed item embeddings) with collaborative co-rating
frequency, learns a per-session taste vector from like/dislike feedback, and
answers free-text searches with a mix of semantic and lexical matches. The
service is stateless: the client sends its taste vector and seen/liked ids
with every request.

# Startup

 1. Configuration: koanf v2 (defaults, optional YAML, environment)
 2. Logging: zerolog with JSON or console output
 3. Dataset: movies and ratings CSV through in-memory DuckDB, embedding matrix
    from a .npy file, loaded concurrently
 4. Engine: catalog, interaction ledger, optional embedding client and
    Milvus index (brute force otherwise)
 5. Enrichment: TMDB poster lookups with an in-memory LRU and an optional
    Badger or Redis store
 6. Supervisor tree: suture v4 running the HTTP server and store GC

# Configuration

	HTTP_PORT=8000
	LOG_LEVEL=info                        # trace, debug, info, warn, error
	LOG_FORMAT=json                       # json or console

	MOVIES_PATH=data/movies.csv
	RATINGS_PATH=data/ratings.csv
	EMBEDDINGS_PATH=data/movie_embeddings.npy

	EMBEDDING_ENABLED=true                # semantic search
	EMBEDDING_URL=http://tei:8080

	VECTOR_INDEX_BACKEND=milvus           # brute (default) or milvus
	MILVUS_ADDRESS=milvus:19530

	TMDB_API_KEY=xxx                      # posters; null without a key
	POSTER_STORE=redis                    # none, badger or redis
	REDIS_ADDR=redis:6379

A YAML file at $CONFIG_PATH (or ./config.yaml) may set any of these under
their koanf paths; environment variables win.

# Signals

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server stops
accepting connections and drains in-flight requests within
HTTP_SHUTDOWN_TIMEOUT.
*/
package main
