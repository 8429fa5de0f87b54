// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scale provides value bounds, display mappings, and tick
// mark generation for chart axes.
package scale

import (
	"fmt"
	"math"
)

// Bounds is a closed interval [Min, Max]. It is an immutable value
// type; operations return a new Bounds rather than mutating in place.
type Bounds struct {
	Min, Max float64
}

// NewBounds returns the interval [min, max]. It returns an error if
// min > max or either edge is NaN; callers must resolve degenerate
// data (for example with Widen) before building an axis from the
// result.
func NewBounds(min, max float64) (Bounds, error) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return Bounds{}, fmt.Errorf("bounds [%v, %v] contain NaN", min, max)
	}
	if min > max {
		return Bounds{}, fmt.Errorf("bounds [%v, %v] are inverted", min, max)
	}
	return Bounds{min, max}, nil
}

// Width returns Max - Min.
func (b Bounds) Width() float64 {
	return b.Max - b.Min
}

// IsDegenerate reports whether b covers a single value.
func (b Bounds) IsDegenerate() bool {
	return b.Min == b.Max
}

// Contains reports whether x lies in b.
func (b Bounds) Contains(x float64) bool {
	return b.Min <= x && x <= b.Max
}

// Union returns the smallest interval covering both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{math.Min(b.Min, o.Min), math.Max(b.Max, o.Max)}
}

// Widen returns b expanded symmetrically around its center if it is
// degenerate, and b unchanged otherwise. A single nonzero value v
// widens to ±5% of |v|; zero widens to [-1, 1].
func (b Bounds) Widen() Bounds {
	if !b.IsDegenerate() {
		return b
	}
	v := b.Min
	if v == 0 {
		return Bounds{-1, 1}
	}
	pad := math.Abs(v) * 0.05
	return Bounds{v - pad, v + pad}
}
