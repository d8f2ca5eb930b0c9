// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package enrichment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/reelmatch/internal/config"
)

func newTestTMDB(t *testing.T, handler http.HandlerFunc) *TMDBClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewTMDBClient(config.EnrichmentConfig{
		Enabled:      true,
		APIKey:       "secret",
		BaseURL:      srv.URL + "/3/",
		ImageBaseURL: "https://image.example/t/p/w500",
		Timeout:      time.Second,
		RateLimit:    1000,
		RateBurst:    100,
	})
}

func TestTMDBClient_PosterURL(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"first result", `{"results":[{"id":1,"poster_path":"/a.jpg"},{"id":2,"poster_path":"/b.jpg"}]}`, "https://image.example/t/p/w500/a.jpg"},
		{"no results", `{"results":[]}`, ""},
		{"null poster", `{"results":[{"id":1,"poster_path":null}]}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/3/search/movie" {
					t.Errorf("path = %q, want /3/search/movie", r.URL.Path)
				}
				if got := r.URL.Query().Get("api_key"); got != "secret" {
					t.Errorf("api_key = %q", got)
				}
				if got := r.URL.Query().Get("query"); got != "Heat & Dust" {
					t.Errorf("query = %q, want %q", got, "Heat & Dust")
				}
				_, _ = w.Write([]byte(tt.body))
			})

			got, err := c.PosterURL(context.Background(), "Heat & Dust")
			if err != nil {
				t.Fatalf("PosterURL() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("PosterURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTMDBClient_PosterURL_Degraded(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"unauthorized", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"status_code":7}`, http.StatusUnauthorized)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"results":`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestTMDB(t, tt.handler)
			_, err := c.PosterURL(context.Background(), "x")
			if !errors.Is(err, ErrDegradedEnrichment) {
				t.Errorf("PosterURL() error = %v, want ErrDegradedEnrichment", err)
			}
		})
	}
}

func TestTMDBClient_PosterURL_Deadline(t *testing.T) {
	c := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.PosterURL(ctx, "slow")
	if !errors.Is(err, ErrDegradedEnrichment) {
		t.Errorf("PosterURL() error = %v, want ErrDegradedEnrichment", err)
	}
}
