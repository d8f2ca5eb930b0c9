// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package models

import "github.com/tomtom215/reelmatch/internal/recommend"

// HealthStatus is the payload of GET /api/v1/health.
//
// Status is "healthy" when the catalog is loaded, "degraded" when an
// optional dependency (embedding service, poster provider) is disabled.
type HealthStatus struct {
	Status         string          `json:"status"`
	Version        string          `json:"version"`
	Uptime         float64         `json:"uptime_seconds"`
	CatalogSize    int             `json:"catalog_size"`
	EmbeddingDim   int             `json:"embedding_dim"`
	LedgerSize     int             `json:"ledger_size"`
	LedgerUsers    int             `json:"ledger_users"`
	SemanticSearch bool            `json:"semantic_search"`
	Enrichment     bool            `json:"enrichment"`
	VectorIndex    string          `json:"vector_index"`
	Engine         recommend.Stats `json:"engine"`
}
