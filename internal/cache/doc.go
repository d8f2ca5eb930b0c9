// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package cache provides a thread-safe in-memory LRU cache with TTL support.

It is the first tier in front of the poster lookup: hits avoid both the
persistent store and the metadata API.

# Usage Example

	posters := cache.NewLRU[string](50000, 24*time.Hour)
	posters.Add("movie:862", "https://image.tmdb.org/t/p/w500/x.jpg")

	if url, ok := posters.Get("movie:862"); ok {
	    // use url
	}

Negative results can be cached with a shorter lifetime:

	posters.AddWithTTL("movie:999", "", 10*time.Minute)

# Expiration

Entries expire lazily on Get. CleanupExpired sweeps the whole list and is
intended for a periodic background job.

# Thread Safety

All methods are safe for concurrent use.
*/
package cache
