// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata after first use. Error field names are taken from json tags.
//
// Custom tags:
//   - langcode: two-letter ISO 639-1 language code, case-insensitive
//
// Example:
//
//	type SearchRequest struct {
//	    Query string `json:"query" validate:"required,max=200"`
//	    Limit int    `json:"limit" validate:"min=0,max=5"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
