// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package axis maps native data values onto display scales and owns
// the tick set and bounds for one chart dimension.
package axis

import (
	"time"
)

// Kind identifies the native value type of an axis. The variant set
// is closed; each Kind has its own ToDisplay/FromDisplay conversion.
type Kind int

const (
	Numeric Kind = iota
	Categorical
	Temporal
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	case Temporal:
		return "temporal"
	}
	return "unknown"
}

// A Value is a single native data value on an axis: a Number, a
// Category, or a Moment.
type Value interface {
	isValue()
}

// Number is a numeric data value.
type Number float64

// Category is a discrete string-valued data value. It converts to a
// display position through the axis's ordered unique-value table.
type Category string

// Moment is a temporal data value. It converts to a display position
// through its modified Julian date.
type Moment time.Time

func (Number) isValue()   {}
func (Category) isValue() {}
func (Moment) isValue()   {}

// mjdEpoch is 1858-11-17T00:00:00 UTC, day zero of the modified
// Julian date system.
var mjdEpoch = time.Date(1858, time.November, 17, 0, 0, 0, 0, time.UTC)

const nsPerDay = 24 * 60 * 60 * 1e9

// TimeToMJD returns t as a fractional modified Julian date.
func TimeToMJD(t time.Time) float64 {
	return float64(t.Sub(mjdEpoch)) / nsPerDay
}

// MJDToTime returns the instant at the given modified Julian date,
// rounded to the nearest millisecond. Millisecond rounding is the
// quantum recovered by FromDisplay on temporal axes; finer precision
// does not survive the float64 day-number representation over the
// date ranges charts care about.
func MJDToTime(mjd float64) time.Time {
	d := time.Duration(mjd * nsPerDay)
	return mjdEpoch.Add(d).Round(time.Millisecond)
}
