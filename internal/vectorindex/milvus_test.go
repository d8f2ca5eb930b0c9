// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package vectorindex

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

type fakeSearcher struct {
	results []client.SearchResult
	err     error

	gotCollection string
	gotField      string
	gotMetric     entity.MetricType
	gotTopK       int
	gotDim        int
	closed        bool
}

func (f *fakeSearcher) Search(_ context.Context, collName string, _ []string, _ string,
	_ []string, vectors []entity.Vector, vectorField string,
	metricType entity.MetricType, topK int, _ entity.SearchParam,
	_ ...client.SearchQueryOptionFunc) ([]client.SearchResult, error) {
	f.gotCollection = collName
	f.gotField = vectorField
	f.gotMetric = metricType
	f.gotTopK = topK
	if len(vectors) == 1 {
		f.gotDim = vectors[0].Dim()
	}
	return f.results, f.err
}

func (f *fakeSearcher) Close() error {
	f.closed = true
	return nil
}

func testIndexConfig() config.VectorIndexConfig {
	return config.VectorIndexConfig{
		Backend:           "milvus",
		MilvusCollection:  "movies",
		MilvusVectorField: "embedding",
		MilvusIDField:     "movie_id",
		MilvusNProbe:      16,
		Timeout:           time.Second,
	}
}

func TestMilvusIndex_Nearest(t *testing.T) {
	fake := &fakeSearcher{results: []client.SearchResult{{
		ResultCount: 2,
		IDs:         entity.NewColumnInt64("movie_id", []int64{42, 7}),
		Scores:      []float32{0.9, 0.5},
	}}}
	idx := newMilvusIndex(fake, testIndexConfig())

	hits, err := idx.Nearest(context.Background(), recommend.Vector{0.6, 0.8, 0}, 2)
	if err != nil {
		t.Fatalf("Nearest() error = %v", err)
	}
	if len(hits) != 2 || hits[0].ID != 42 || hits[1].ID != 7 {
		t.Fatalf("Nearest() = %+v, want ids [42 7]", hits)
	}
	if d := hits[0].Similarity - 0.9; d > 1e-6 || d < -1e-6 {
		t.Errorf("hits[0].Similarity = %v, want 0.9", hits[0].Similarity)
	}
	if fake.gotCollection != "movies" || fake.gotField != "embedding" {
		t.Errorf("searched %s.%s, want movies.embedding", fake.gotCollection, fake.gotField)
	}
	if fake.gotMetric != entity.COSINE {
		t.Errorf("metric = %v, want COSINE", fake.gotMetric)
	}
	if fake.gotTopK != 2 || fake.gotDim != 3 {
		t.Errorf("topK = %d dim = %d, want 2 and 3", fake.gotTopK, fake.gotDim)
	}

	if err := idx.Close(); err != nil || !fake.closed {
		t.Errorf("Close() error = %v closed = %v", err, fake.closed)
	}
}

func TestMilvusIndex_Nearest_Errors(t *testing.T) {
	errDown := errors.New("unavailable")
	tests := []struct {
		name    string
		fake    *fakeSearcher
		wantErr error
	}{
		{"search error", &fakeSearcher{err: errDown}, errDown},
		{"result error", &fakeSearcher{results: []client.SearchResult{{Err: errDown}}}, errDown},
		{"string ids", &fakeSearcher{results: []client.SearchResult{{
			IDs:    entity.NewColumnVarChar("movie_id", []string{"a"}),
			Scores: []float32{1},
		}}}, ErrUnexpectedIDs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := newMilvusIndex(tt.fake, testIndexConfig())
			_, err := idx.Nearest(context.Background(), recommend.Vector{1, 0}, 3)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Nearest() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMilvusIndex_Nearest_ZeroK(t *testing.T) {
	fake := &fakeSearcher{}
	idx := newMilvusIndex(fake, testIndexConfig())
	hits, err := idx.Nearest(context.Background(), recommend.Vector{1, 0}, 0)
	if err != nil || hits != nil {
		t.Errorf("Nearest(k=0) = %v, %v, want nil, nil", hits, err)
	}
	if fake.gotTopK != 0 {
		t.Error("Search was called for k=0")
	}
}

type stubIndex struct {
	hits  []recommend.Neighbor
	err   error
	calls int
}

func (s *stubIndex) Nearest(context.Context, recommend.Vector, int) ([]recommend.Neighbor, error) {
	s.calls++
	return s.hits, s.err
}

func TestFallback(t *testing.T) {
	primary := &stubIndex{err: errors.New("down")}
	secondary := &stubIndex{hits: []recommend.Neighbor{{ID: 1, Similarity: 1}}}
	idx := NewFallback(primary, secondary, zerolog.Nop())

	hits, err := idx.Nearest(context.Background(), recommend.Vector{1}, 1)
	if err != nil {
		t.Fatalf("Nearest() error = %v", err)
	}
	if len(hits) != 1 || hits[0].ID != 1 {
		t.Errorf("Nearest() = %+v, want fallback hits", hits)
	}

	primary.err = nil
	primary.hits = []recommend.Neighbor{{ID: 2}}
	hits, _ = idx.Nearest(context.Background(), recommend.Vector{1}, 1)
	if hits[0].ID != 2 || secondary.calls != 1 {
		t.Errorf("healthy primary: hits = %+v secondary calls = %d", hits, secondary.calls)
	}
}

func TestFallback_Canceled(t *testing.T) {
	primary := &stubIndex{err: context.Canceled}
	secondary := &stubIndex{}
	idx := NewFallback(primary, secondary, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := idx.Nearest(ctx, recommend.Vector{1}, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("Nearest() error = %v, want canceled", err)
	}
	if secondary.calls != 0 {
		t.Errorf("secondary calls = %d, want 0", secondary.calls)
	}
}

func TestInstrument_PassesThrough(t *testing.T) {
	inner := &stubIndex{hits: []recommend.Neighbor{{ID: 9}}}
	hits, err := Instrument("brute", inner).Nearest(context.Background(), recommend.Vector{1}, 1)
	if err != nil || len(hits) != 1 || hits[0].ID != 9 {
		t.Errorf("Nearest() = %+v, %v", hits, err)
	}
}
