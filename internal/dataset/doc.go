// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package dataset loads the movie catalog, the rating history and the
// precomputed embedding matrix at startup.
//
// CSV files are read with DuckDB's read_csv_auto through an in-memory
// connection. The embedding matrix is a NumPy .npy file. The three sources
// are read concurrently and then aligned row by row; see Align for the
// alignment rules.
package dataset
