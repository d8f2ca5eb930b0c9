// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import "math"

// Vector is a dense embedding-space point. Taste vectors and catalog rows
// are both Vectors; every Vector handed out by this package has unit norm.
type Vector []float64

// zeroNormThreshold is the norm below which a vector is treated as zero.
const zeroNormThreshold = 1e-12

// Dot returns the inner product of a and b. Both must have the same length.
func Dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Norm returns the L2 norm of v.
func Norm(v []float64) float64 {
	return math.Sqrt(Dot(v, v))
}

// Normalize returns a unit-length copy of v. The second return value is
// false when v has (numerically) zero norm, in which case the returned
// vector is nil.
func Normalize(v []float64) (Vector, bool) {
	n := Norm(v)
	if n < zeroNormThreshold || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, false
	}
	out := make(Vector, len(v))
	for i, x := range v {
		out[i] = x / n
	}
	return out, true
}

// Clone returns a copy of v.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Float32 converts v for wire formats and vector stores that use float32.
func (v Vector) Float32() []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}

// combine returns a*x + b*y.
func combine(a float64, x []float64, b float64, y []float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		out[i] = a*x[i] + b*y[i]
	}
	return out
}

// minMaxNormalize rescales scores in place to [0, 1]. epsilon is added to
// the denominator so all-equal input maps to zeros rather than NaN.
func minMaxNormalize(scores []float64, epsilon float64) {
	if len(scores) == 0 {
		return
	}
	lo, hi := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	span := hi - lo + epsilon
	if span <= 0 {
		for i := range scores {
			scores[i] = 0
		}
		return
	}
	for i, s := range scores {
		scores[i] = (s - lo) / span
	}
}
