// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_outcomes_total",
			Help: "Recommend calls by outcome (item, onboarding, exhausted)",
		},
		[]string{"outcome"},
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Time to score and select recommendations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"outcome"},
	)

	FeedbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_total",
			Help: "Applied feedback signals by sign",
		},
		[]string{"sign"},
	)

	SearchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_total",
			Help: "Search calls by mode (blended, lexical_only)",
		},
		[]string{"mode"},
	)

	// Embedding and Vector Index Metrics
	EmbeddingRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "embedding_requests_total",
			Help: "Query embedding requests by result",
		},
		[]string{"result"},
	)

	EmbeddingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "embedding_request_duration_seconds",
			Help:    "Query embedding request latency",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 3},
		},
	)

	VectorSearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vector_search_duration_seconds",
			Help:    "Nearest-neighbour query latency by backend",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"backend"},
	)

	VectorSearchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vector_search_errors_total",
			Help: "Failed nearest-neighbour queries by backend",
		},
		[]string{"backend"},
	)

	// Enrichment Metrics
	EnrichmentLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_lookups_total",
			Help: "Poster lookups by tier (memory, store, remote) and result (hit, miss, error)",
		},
		[]string{"tier", "result"},
	)

	EnrichmentDegraded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "enrichment_degraded_total",
			Help: "Responses returned with a null poster because the lookup failed",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Dataset Metrics
	DatasetLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dataset_load_duration_seconds",
			Help:    "Startup load time by source (movies, ratings, embeddings)",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"source"},
	)

	DatasetRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dataset_rows",
			Help: "Rows loaded by source",
		},
		[]string{"source"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts one rejected request.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordRecommendation records the outcome and latency of a recommend call.
func RecordRecommendation(outcome string, duration time.Duration) {
	RecommendOutcomes.WithLabelValues(outcome).Inc()
	RecommendDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordFeedback counts one applied feedback signal.
func RecordFeedback(sign string) {
	FeedbackTotal.WithLabelValues(sign).Inc()
}

// RecordSearch counts one search. degraded marks a lexical-only answer.
func RecordSearch(degraded bool) {
	mode := "blended"
	if degraded {
		mode = "lexical_only"
	}
	SearchTotal.WithLabelValues(mode).Inc()
}

// RecordEmbedding records one embedding request.
func RecordEmbedding(duration time.Duration, err error) {
	EmbeddingDuration.Observe(duration.Seconds())
	if err != nil {
		EmbeddingRequests.WithLabelValues("error").Inc()
		return
	}
	EmbeddingRequests.WithLabelValues("success").Inc()
}

// RecordVectorSearch records one nearest-neighbour query.
func RecordVectorSearch(backend string, duration time.Duration, err error) {
	VectorSearchDuration.WithLabelValues(backend).Observe(duration.Seconds())
	if err != nil {
		VectorSearchErrors.WithLabelValues(backend).Inc()
	}
}

// RecordEnrichmentLookup counts one poster lookup at a cache tier.
func RecordEnrichmentLookup(tier, result string) {
	EnrichmentLookups.WithLabelValues(tier, result).Inc()
}

// RecordEnrichmentDegraded counts one response with a null poster.
func RecordEnrichmentDegraded() {
	EnrichmentDegraded.Inc()
}

// SetCircuitBreakerState publishes the current breaker state.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordCircuitBreakerTransition counts one breaker state change.
func RecordCircuitBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}

// RecordDatasetLoad records the load time and row count of one source.
func RecordDatasetLoad(source string, duration time.Duration, rows int) {
	DatasetLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
	DatasetRows.WithLabelValues(source).Set(float64(rows))
}
