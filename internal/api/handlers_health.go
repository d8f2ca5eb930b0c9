// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/models"
)

// HealthLive handles GET /api/v1/health/live. It answers as long as the
// process can serve HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]string{"status": "alive"}, time.Now())
}

// HealthReady handles GET /api/v1/health/ready. The service is ready once
// the catalog is loaded, which NewHandler already requires.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil || h.engine.Catalog().Len() == 0 {
		respondError(w, r, http.StatusServiceUnavailable, "NOT_READY", "Catalog not loaded", nil)
		return
	}
	respondSuccess(w, r, map[string]string{"status": "ready"}, time.Now())
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	catalog := h.engine.Catalog()
	ledger := h.engine.Ledger()

	health := models.HealthStatus{
		Status:         "healthy",
		Version:        Version,
		Uptime:         time.Since(h.startTime).Seconds(),
		CatalogSize:    catalog.Len(),
		EmbeddingDim:   catalog.Dim(),
		LedgerSize:     ledger.Len(),
		LedgerUsers:    ledger.Users(),
		SemanticSearch: h.engine.SemanticSearch(),
		Enrichment:     h.enricher != nil,
		VectorIndex:    h.vectorIndex,
		Engine:         h.engine.Stats(),
	}
	if !health.SemanticSearch {
		health.Status = "degraded"
	}

	respondSuccess(w, r, health, time.Now())
}
