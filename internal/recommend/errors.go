// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import "errors"

var (
	// ErrNotFound is returned when an operation about exactly one item
	// references an id that is not in the catalog.
	ErrNotFound = errors.New("item not found")

	// ErrInvalidInput is returned for malformed requests: unknown feedback
	// signs, vectors of the wrong dimension, empty search queries.
	ErrInvalidInput = errors.New("invalid input")
)
