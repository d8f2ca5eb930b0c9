// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package logging provides the process-wide zerolog logger.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Int("movies", n).Msg("catalog loaded")
//	logging.Ctx(ctx).Warn().Err(err).Msg("poster lookup failed")
//
// Components take a child logger once and keep it:
//
//	logger := logging.WithComponent("enrichment")
//
// # Request IDs
//
// The HTTP middleware stores the request id in the request context with
// ContextWithRequestID. Ctx adds it to every event logged through that
// context.
//
// # slog
//
// Suture reports supervisor events through log/slog. NewSlogLogger returns
// an slog.Logger that writes through zerolog so all output shares one
// format.
package logging
