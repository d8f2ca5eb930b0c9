// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv empties the environment for the test and restores it afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	saved := os.Environ()
	os.Clearenv()
	t.Cleanup(func() {
		os.Clearenv()
		for _, kv := range saved {
			if k, v, ok := strings.Cut(kv, "="); ok {
				_ = os.Setenv(k, v)
			}
		}
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Recommend.ContentWeight != 0.8 || cfg.Recommend.CollabWeight != 0.2 {
		t.Errorf("Recommend weights = %v/%v, want 0.8/0.2", cfg.Recommend.ContentWeight, cfg.Recommend.CollabWeight)
	}
	if cfg.Recommend.MinLikes != 5 {
		t.Errorf("Recommend.MinLikes = %d, want 5", cfg.Recommend.MinLikes)
	}
	if cfg.Recommend.PoolSize != 100 {
		t.Errorf("Recommend.PoolSize = %d, want 100", cfg.Recommend.PoolSize)
	}
	if cfg.Recommend.Alpha != 0.3 {
		t.Errorf("Recommend.Alpha = %v, want 0.3", cfg.Recommend.Alpha)
	}
	if cfg.VectorIndex.Backend != "brute" {
		t.Errorf("VectorIndex.Backend = %q, want brute", cfg.VectorIndex.Backend)
	}
	if cfg.Enrichment.Store != "none" {
		t.Errorf("Enrichment.Store = %q, want none", cfg.Enrichment.Store)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() error = %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"HTTP_PORT", "server.port"},
		{"LOG_LEVEL", "logging.level"},
		{"TMDB_API_KEY", "enrichment.api_key"},
		{"RECOMMEND_ALPHA", "recommend.alpha"},
		{"RECOMMEND_DIVERSITY_CAP", "recommend.recommend_diversity_cap"},
		{"MILVUS_ADDRESS", "vector_index.milvus_address"},
		{"POSTER_STORE", "enrichment.store"},
		{"cors_origins", "security.cors_origins"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	t.Run("no config file", func(t *testing.T) {
		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty", got)
		}
	})

	t.Run("CONFIG_PATH takes precedence", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("{}"), 0o600); err != nil {
			t.Fatal(err)
		}
		custom := filepath.Join(tmpDir, "custom.yaml")
		if err := os.WriteFile(custom, []byte("{}"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Setenv(ConfigPathEnvVar, custom)

		if got := findConfigFile(); got != custom {
			t.Errorf("findConfigFile() = %q, want %q", got, custom)
		}
	})

	t.Run("missing CONFIG_PATH falls back to defaults", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
		if got := findConfigFile(); got != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", got)
		}
	})
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RECOMMEND_ALPHA", "0.5")
	t.Setenv("RECOMMEND_SEARCH_TIMEOUT", "750ms")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("TMDB_API_KEY", "k")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Recommend.Alpha != 0.5 {
		t.Errorf("Recommend.Alpha = %v, want 0.5", cfg.Recommend.Alpha)
	}
	if cfg.Recommend.SearchTimeout != 750*time.Millisecond {
		t.Errorf("Recommend.SearchTimeout = %v, want 750ms", cfg.Recommend.SearchTimeout)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[0] != want[0] || cfg.Security.CORSOrigins[1] != want[1] {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	if cfg.Enrichment.APIKey != "k" {
		t.Errorf("Enrichment.APIKey = %q, want k", cfg.Enrichment.APIKey)
	}
	// Untouched values keep their defaults.
	if cfg.Recommend.MinLikes != 5 {
		t.Errorf("Recommend.MinLikes = %d, want 5", cfg.Recommend.MinLikes)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	configPath := filepath.Join(tmpDir, "reelmatch.yaml")
	content := `
server:
  port: 8888
  host: 127.0.0.1
dataset:
  movies_path: /srv/movies.csv
recommend:
  pool_size: 50
vector_index:
  backend: milvus
  milvus_address: milvus:19530
enrichment:
  store: badger
  badger_path: /var/lib/reelmatch/posters
`
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 8888 {
		t.Errorf("Server.Port = %d, want 8888", cfg.Server.Port)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Dataset.MoviesPath != "/srv/movies.csv" {
		t.Errorf("Dataset.MoviesPath = %q, want /srv/movies.csv", cfg.Dataset.MoviesPath)
	}
	if cfg.Recommend.PoolSize != 50 {
		t.Errorf("Recommend.PoolSize = %d, want 50", cfg.Recommend.PoolSize)
	}
	if cfg.VectorIndex.Backend != "milvus" || cfg.VectorIndex.MilvusAddress != "milvus:19530" {
		t.Errorf("VectorIndex = %+v, want milvus at milvus:19530", cfg.VectorIndex)
	}
	if cfg.Enrichment.Store != "badger" {
		t.Errorf("Enrichment.Store = %q, want badger", cfg.Enrichment.Store)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("server:\n  port: 8888\nlogging:\n  level: warn\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("HTTP_PORT", "7000")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000 (env wins)", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn (file wins over default)", cfg.Logging.Level)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad port", map[string]string{"HTTP_PORT": "70000"}, "HTTP_PORT"},
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"alpha out of range", map[string]string{"RECOMMEND_ALPHA": "1.5"}, "RECOMMEND_ALPHA"},
		{"zero weights", map[string]string{"RECOMMEND_CONTENT_WEIGHT": "0", "RECOMMEND_COLLAB_WEIGHT": "0"}, "RECOMMEND_CONTENT_WEIGHT"},
		{"unknown backend", map[string]string{"VECTOR_INDEX_BACKEND": "faiss"}, "VECTOR_INDEX_BACKEND"},
		{"unknown store", map[string]string{"POSTER_STORE": "memcached"}, "POSTER_STORE"},
		{"embedding bad url", map[string]string{"EMBEDDING_ENABLED": "true", "EMBEDDING_URL": "ftp://x"}, "EMBEDDING_URL"},
		{"rate limit too small", map[string]string{"RATE_LIMIT_REQUESTS": "0"}, "RATE_LIMIT_REQUESTS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatal("LoadWithKoanf() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestValidateEnrichment_StoreRequirements(t *testing.T) {
	cfg := defaultConfig()
	cfg.Enrichment.Store = "redis"
	cfg.Enrichment.RedisAddr = ""
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "REDIS_ADDR") {
		t.Errorf("Validate() error = %v, want REDIS_ADDR error", err)
	}

	cfg = defaultConfig()
	cfg.Enrichment.Store = "badger"
	cfg.Enrichment.BadgerPath = ""
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "POSTER_BADGER_PATH") {
		t.Errorf("Validate() error = %v, want POSTER_BADGER_PATH error", err)
	}

	cfg = defaultConfig()
	cfg.Enrichment.Enabled = false
	cfg.Enrichment.Store = "bogus"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil when enrichment is disabled", err)
	}
}

func TestValidateRateLimits_Disabled(t *testing.T) {
	cfg := defaultConfig()
	cfg.Security.RateLimitDisabled = true
	cfg.Security.RateLimitReqs = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil when rate limiting is disabled", err)
	}
}

func TestShouldWarnAboutCORS(t *testing.T) {
	cfg := defaultConfig()
	if cfg.ShouldWarnAboutCORS() {
		t.Error("ShouldWarnAboutCORS() = true in development, want false")
	}
	cfg.Server.Environment = "production"
	if !cfg.ShouldWarnAboutCORS() {
		t.Error("ShouldWarnAboutCORS() = false for wildcard in production, want true")
	}
	cfg.Security.CORSOrigins = []string{"https://app.example"}
	if cfg.ShouldWarnAboutCORS() {
		t.Error("ShouldWarnAboutCORS() = true for explicit origins, want false")
	}
}

func TestValidateHTTPURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://api.themoviedb.org/3", false},
		{"http://127.0.0.1:8080", false},
		{"ftp://host", true},
		{"http://", true},
		{"https://host/path?x=1", true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := validateHTTPURL(tt.url, "URL")
			if (err != nil) != tt.wantErr {
				t.Errorf("validateHTTPURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8000}
	if got := s.Addr(); got != "127.0.0.1:8000" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8000", got)
	}
}
