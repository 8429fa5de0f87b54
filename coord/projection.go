// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coord converts data values through the chart coordinate
// pipeline: native value, normalized value, linear (projected)
// coordinate, pixel coordinate. Each stage has an exact inverse.
package coord

import "math"

// A Point is a 2D coordinate in linear or pixel space.
type Point struct {
	X, Y float64
}

// A Projection maps a pair of normalized per-axis values to a 2D
// linear coordinate and back.
type Projection interface {
	// Arity returns the number of input coordinates (2 for both
	// supported projections).
	Arity() int

	// Map projects normalized coordinates to a linear point.
	Map(coords [2]float64) Point

	// Inverse recovers the normalized coordinates of p. It is an
	// exact inverse of Map except at the projection's degenerate
	// points (the pole of a polar projection).
	Inverse(p Point) [2]float64
}

// Cartesian is the identity projection: the two normalized
// coordinates are independent x and y.
type Cartesian struct{}

func (Cartesian) Arity() int { return 2 }

func (Cartesian) Map(coords [2]float64) Point {
	return Point{coords[0], coords[1]}
}

func (Cartesian) Inverse(p Point) [2]float64 {
	return [2]float64{p.X, p.Y}
}

// Polar projects a radius (coordinate 0) and an angle in degrees
// (coordinate 1). Angle zero points up and increases clockwise, the
// convention used by astronomical position-angle plots; the sign and
// rotation choice must match reference plots exactly.
type Polar struct{}

func (Polar) Arity() int { return 2 }

func (Polar) Map(coords [2]float64) Point {
	r, theta := coords[0], coords[1]
	rad := theta * math.Pi / 180
	return Point{r * math.Sin(rad), -r * math.Cos(rad)}
}

func (Polar) Inverse(p Point) [2]float64 {
	r := math.Hypot(p.X, p.Y)
	theta := math.Atan2(p.X, -p.Y) * 180 / math.Pi
	if theta < 0 {
		theta += 360
	}
	return [2]float64{r, theta}
}
