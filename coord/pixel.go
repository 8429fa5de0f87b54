// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coord

import (
	"fmt"

	"github.com/lsst-sitcom/rubin-chart/scale"
)

// A PixelTransform is the 1D affine map from one linear axis onto a
// pixel extent. For a non-inverted axis it is strictly increasing;
// for an inverted axis, strictly decreasing.
type PixelTransform struct {
	min      float64
	scale    float64
	extent   float64
	inverted bool
}

// NewPixelTransform builds the transform from the axis's display
// bounds onto [0, extent]. A zero-width bounds or non-positive extent
// is a construction error, not a runtime case.
func NewPixelTransform(b scale.Bounds, extent float64, inverted bool) (PixelTransform, error) {
	if b.Width() == 0 {
		return PixelTransform{}, fmt.Errorf("zero-width axis range %v", b)
	}
	if extent <= 0 {
		return PixelTransform{}, fmt.Errorf("non-positive pixel extent %v", extent)
	}
	return PixelTransform{
		min:      b.Min,
		scale:    extent / b.Width(),
		extent:   extent,
		inverted: inverted,
	}, nil
}

// ToPixel maps a linear coordinate to a pixel offset.
func (t PixelTransform) ToPixel(v float64) float64 {
	p := (v - t.min) * t.scale
	if t.inverted {
		p = t.extent - p
	}
	return p
}

// FromPixel is the exact inverse of ToPixel.
func (t PixelTransform) FromPixel(p float64) float64 {
	if t.inverted {
		p = t.extent - p
	}
	return p/t.scale + t.min
}

// Extent returns the pixel extent the transform maps onto.
func (t PixelTransform) Extent() float64 { return t.extent }
