// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package metrics defines the Prometheus collectors exported at /metrics.

All collectors are registered on the default registry through promauto at
package init. Callers use the Record* helpers rather than touching the
vectors directly so label sets stay consistent.

# Metric Families

API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Recommendation:
  - recommend_outcomes_total{outcome}
  - recommend_duration_seconds{outcome}
  - feedback_total{sign}
  - search_total{mode}

Semantic search backends:
  - embedding_requests_total{result}
  - embedding_request_duration_seconds
  - vector_search_duration_seconds{backend}
  - vector_search_errors_total{backend}

Poster enrichment:
  - enrichment_lookups_total{tier, result}
  - enrichment_degraded_total
  - circuit_breaker_state{name}
  - circuit_breaker_transitions_total{name, from, to}

Startup:
  - dataset_load_duration_seconds{source}
  - dataset_rows{source}

# Example Queries

Share of searches answered without the embedding backend:

	sum(rate(search_total{mode="lexical_only"}[5m])) / sum(rate(search_total[5m]))

Onboarding share of recommend traffic:

	sum(rate(recommend_outcomes_total{outcome="onboarding"}[5m]))
	  / sum(rate(recommend_outcomes_total[5m]))
*/
package metrics
