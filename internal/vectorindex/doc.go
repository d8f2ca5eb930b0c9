// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package vectorindex provides nearest-neighbour backends for the
// recommendation engine beyond the built-in brute-force scan.
//
// MilvusIndex queries a Milvus collection over gRPC. Fallback chains it to
// the exact in-process index so that a Milvus outage degrades latency, not
// results. Instrumented adds per-backend Prometheus metrics to any index.
package vectorindex
