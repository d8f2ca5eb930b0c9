// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package embedding

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/reelmatch/internal/breaker"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// ErrBadResponse is returned when the service answers with something that
// is not one usable vector.
var ErrBadResponse = errors.New("embedding service returned an unusable response")

// maxErrorBody bounds how much of an error response is kept for the message.
const maxErrorBody = 512

// Client calls a text-embeddings-inference compatible /embed endpoint.
//
// Thread Safety: Safe for concurrent use.
type Client struct {
	endpoint string
	model    string
	dim      int
	timeout  time.Duration
	http     *http.Client
	cb       *gobreaker.CircuitBreaker[recommend.Vector]
	logger   zerolog.Logger
}

type embedRequest struct {
	Inputs    string `json:"inputs"`
	Normalize bool   `json:"normalize"`
	Truncate  bool   `json:"truncate"`
}

// NewClient creates a client for cfg.URL.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg config.EmbeddingConfig, logger zerolog.Logger) *Client {
	c := &Client{
		endpoint: strings.TrimRight(cfg.URL, "/") + "/embed",
		model:    cfg.Model,
		dim:      cfg.Dimension,
		timeout:  cfg.Timeout,
		http:     &http.Client{},
		logger:   logger.With().Str("component", "embedding").Logger(),
	}
	c.cb = breaker.New[recommend.Vector]("embedding", breaker.Settings{}, countsAsSuccess)
	return c
}

// countsAsSuccess keeps caller cancellation and bad input from tripping
// the breaker.
func countsAsSuccess(err error) bool {
	return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, recommend.ErrInvalidInput)
}

// Embed returns the unit-norm embedding of text.
func (c *Client) Embed(ctx context.Context, text string) (recommend.Vector, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty text", recommend.ErrInvalidInput)
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	v, err := c.cb.Execute(func() (recommend.Vector, error) {
		return c.embed(ctx, text)
	})
	metrics.RecordEmbedding(time.Since(start), err)
	if err != nil {
		if breaker.IsRejection(err) {
			c.logger.Debug().Err(err).Msg("embedding call rejected by circuit breaker")
		}
		return nil, fmt.Errorf("embed: %w", err)
	}
	return v, nil
}

func (c *Client) embed(ctx context.Context, text string) (recommend.Vector, error) {
	body, err := json.Marshal(embedRequest{Inputs: text, Normalize: true, Truncate: true})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("embed request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out [][]float64
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if len(out) != 1 || len(out[0]) == 0 {
		return nil, fmt.Errorf("%w: got %d vectors", ErrBadResponse, len(out))
	}
	if c.dim > 0 && len(out[0]) != c.dim {
		return nil, fmt.Errorf("%w: dimension %d, want %d", ErrBadResponse, len(out[0]), c.dim)
	}

	v, ok := recommend.Normalize(out[0])
	if !ok {
		return nil, fmt.Errorf("%w: zero vector", ErrBadResponse)
	}
	return v, nil
}

// Model returns the configured model name, for logs and health output.
func (c *Client) Model() string { return c.model }

var _ recommend.Embedder = (*Client)(nil)
