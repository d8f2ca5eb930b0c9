// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package services adapts components to suture.Service.
//
// HTTPServerService binds the listener and runs an *http.Server until its
// context is canceled, then drains connections within the shutdown timeout.
// StoreGCService runs the poster store's value log garbage collection on an
// interval.
package services
