// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"strings"
)

// Sign is the polarity of one feedback signal.
type Sign int

const (
	// Like moves the taste vector toward the item.
	Like Sign = iota + 1

	// Dislike moves the taste vector away from the item.
	Dislike
)

// String returns the wire name of the sign.
func (s Sign) String() string {
	switch s {
	case Like:
		return "like"
	case Dislike:
		return "dislike"
	default:
		return "invalid"
	}
}

// ParseSign parses "like" or "dislike". Any other value is ErrInvalidInput.
func ParseSign(s string) (Sign, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "like":
		return Like, nil
	case "dislike":
		return Dislike, nil
	default:
		return 0, fmt.Errorf("%w: unknown feedback sign %q", ErrInvalidInput, s)
	}
}

// Update applies one feedback signal to a taste vector:
//
//	like:    normalize((1-alpha)*taste + alpha*item)
//	dislike: normalize((1+alpha)*taste - alpha*item)
//
// If the result has zero norm the original taste vector is returned.
func Update(taste, item Vector, sign Sign, alpha float64) (Vector, error) {
	if len(taste) != len(item) {
		return nil, fmt.Errorf("%w: taste vector has dimension %d, item has %d", ErrInvalidInput, len(taste), len(item))
	}

	var next []float64
	switch sign {
	case Like:
		next = combine(1-alpha, taste, alpha, item)
	case Dislike:
		next = combine(1+alpha, taste, -alpha, item)
	default:
		return nil, fmt.Errorf("%w: unknown feedback sign %d", ErrInvalidInput, int(sign))
	}

	if v, ok := Normalize(next); ok {
		return v, nil
	}
	return taste.Clone(), nil
}
