// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package vectorindex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// ErrUnexpectedIDs is returned when the collection's primary key is not Int64.
var ErrUnexpectedIDs = errors.New("milvus returned non-int64 ids")

// searcher is the part of client.Client the index uses.
type searcher interface {
	Search(ctx context.Context, collName string, partitions []string, expr string,
		outputFields []string, vectors []entity.Vector, vectorField string,
		metricType entity.MetricType, topK int, sp entity.SearchParam,
		opts ...client.SearchQueryOptionFunc) ([]client.SearchResult, error)
	Close() error
}

// MilvusIndex answers nearest-neighbour queries from a Milvus collection
// whose primary key is the movie id and whose vector field holds the same
// embeddings as the catalog. Scores use the COSINE metric, which for unit
// vectors equals the catalog's dot-product similarity.
type MilvusIndex struct {
	client      searcher
	collection  string
	vectorField string
	nprobe      int
	timeout     time.Duration
}

// NewMilvusIndex connects to cfg.MilvusAddress.
func NewMilvusIndex(ctx context.Context, cfg config.VectorIndexConfig) (*MilvusIndex, error) {
	c, err := client.NewGrpcClient(ctx, cfg.MilvusAddress)
	if err != nil {
		return nil, fmt.Errorf("connect to milvus at %s: %w", cfg.MilvusAddress, err)
	}
	return newMilvusIndex(c, cfg), nil
}

func newMilvusIndex(c searcher, cfg config.VectorIndexConfig) *MilvusIndex {
	return &MilvusIndex{
		client:      c,
		collection:  cfg.MilvusCollection,
		vectorField: cfg.MilvusVectorField,
		nprobe:      cfg.MilvusNProbe,
		timeout:     cfg.Timeout,
	}
}

// Nearest implements recommend.Index.
func (m *MilvusIndex) Nearest(ctx context.Context, query recommend.Vector, k int) ([]recommend.Neighbor, error) {
	if k <= 0 {
		return nil, nil
	}
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	sp, err := entity.NewIndexIvfFlatSearchParam(m.nprobe)
	if err != nil {
		return nil, fmt.Errorf("failed to create search params: %w", err)
	}

	results, err := m.client.Search(
		ctx,
		m.collection,
		[]string{}, // all partitions
		"",         // no filter
		[]string{}, // ids and scores only
		[]entity.Vector{entity.FloatVector(query.Float32())},
		m.vectorField,
		entity.COSINE,
		k,
		sp,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search milvus: %w", err)
	}

	out := make([]recommend.Neighbor, 0, k)
	for _, result := range results {
		if result.Err != nil {
			return nil, fmt.Errorf("milvus result: %w", result.Err)
		}
		ids, ok := result.IDs.(*entity.ColumnInt64)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrUnexpectedIDs, result.IDs)
		}
		data := ids.Data()
		for i := range data {
			if i >= len(result.Scores) {
				break
			}
			out = append(out, recommend.Neighbor{ID: int(data[i]), Similarity: float64(result.Scores[i])})
		}
	}
	return out, nil
}

// Close releases the gRPC connection.
func (m *MilvusIndex) Close() error {
	return m.client.Close()
}

var _ recommend.Index = (*MilvusIndex)(nil)
