// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package enrichment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/reelmatch/internal/breaker"
	"github.com/tomtom215/reelmatch/internal/config"
)

// ErrDegradedEnrichment marks a lookup that could not be answered: the
// provider timed out, failed, or is being shed by the circuit breaker.
// Callers render such items without a poster.
var ErrDegradedEnrichment = errors.New("enrichment degraded")

const maxErrorBody = 512

// TMDBClient looks up poster paths with the TMDB search API.
//
// Thread Safety: Safe for concurrent use.
type TMDBClient struct {
	baseURL      string
	imageBaseURL string
	apiKey       string
	http         *http.Client
	limiter      *rate.Limiter
	cb           *gobreaker.CircuitBreaker[string]
}

type searchResponse struct {
	Results []struct {
		ID         int     `json:"id"`
		Title      string  `json:"title"`
		PosterPath *string `json:"poster_path"`
	} `json:"results"`
}

// NewTMDBClient creates a client from cfg.
func NewTMDBClient(cfg config.EnrichmentConfig) *TMDBClient {
	return &TMDBClient{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
		apiKey:       cfg.APIKey,
		http:         &http.Client{},
		limiter:      rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		cb:           breaker.New[string]("tmdb", breaker.Settings{}, countsAsSuccess),
	}
}

func countsAsSuccess(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}

// PosterURL returns the full poster URL of the first search hit for title,
// or "" when TMDB knows no poster for it. Any failure is reported wrapped
// in ErrDegradedEnrichment.
func (c *TMDBClient) PosterURL(ctx context.Context, title string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: rate limiter: %v", ErrDegradedEnrichment, err)
	}

	path, err := c.cb.Execute(func() (string, error) {
		return c.search(ctx, title)
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDegradedEnrichment, err)
	}
	if path == "" {
		return "", nil
	}
	return c.imageBaseURL + "/" + strings.TrimLeft(path, "/"), nil
}

func (c *TMDBClient) search(ctx context.Context, title string) (string, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("query", title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search/movie?"+q.Encode(), http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("tmdb search failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Results) == 0 || out.Results[0].PosterPath == nil {
		return "", nil
	}
	return *out.Results[0].PosterPath, nil
}
