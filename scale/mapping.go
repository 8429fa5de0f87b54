// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import "math"

// A Mapping is a stateless bijection between a native value and its
// display-scale representation. Forward and Inverse must be exact
// inverses of each other over the mapping's domain.
type Mapping interface {
	Forward(v float64) float64
	Inverse(v float64) float64

	// Domain reports whether v is a legal input to Forward.
	Domain(v float64) bool
}

// Linear is the identity mapping.
type Linear struct{}

func (Linear) Forward(v float64) float64 { return v }
func (Linear) Inverse(v float64) float64 { return v }
func (Linear) Domain(v float64) bool     { return true }

// Log maps a positive value to its logarithm in the given base.
type Log struct {
	Base float64
}

// NewLog returns the natural logarithm mapping.
func NewLog() Log { return Log{math.E} }

// NewLog10 returns the base-10 logarithm mapping.
func NewLog10() Log { return Log{10} }

func (l Log) Forward(v float64) float64 {
	switch l.Base {
	case math.E:
		return math.Log(v)
	case 10:
		return math.Log10(v)
	case 2:
		return math.Log2(v)
	}
	return math.Log(v) / math.Log(l.Base)
}

func (l Log) Inverse(v float64) float64 {
	if l.Base == math.E {
		return math.Exp(v)
	}
	return math.Pow(l.Base, v)
}

func (l Log) Domain(v float64) bool { return v > 0 }
