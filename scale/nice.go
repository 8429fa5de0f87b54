// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import "math"

// A NiceNumber is a tick step size of the form Factor * 10^Power with
// Factor restricted to {1, 2, 5, 10}. Steps of this form produce
// human-readable axis labels.
type NiceNumber struct {
	Power  int
	Factor float64
}

// Nice returns the nice number closest to x. If round is true, x is
// rounded to the nearest nice factor; otherwise the result is the
// smallest nice number >= x.
func Nice(x float64, round bool) NiceNumber {
	power := int(math.Floor(math.Log10(x)))
	frac := x / math.Pow(10, float64(power))

	var factor float64
	if round {
		switch {
		case frac < 1.5:
			factor = 1
		case frac < 3:
			factor = 2
		case frac < 7:
			factor = 5
		default:
			factor = 10
		}
	} else {
		switch {
		case frac <= 1:
			factor = 1
		case frac <= 2:
			factor = 2
		case frac <= 5:
			factor = 5
		default:
			factor = 10
		}
	}
	return NiceNumber{power, factor}
}

// Value returns the step size Factor * 10^Power.
func (n NiceNumber) Value() float64 {
	return n.Factor * math.Pow(10, float64(n.Power))
}

// Larger returns the next nice number above n, carrying into Power at
// the top of the factor sequence.
func (n NiceNumber) Larger() NiceNumber {
	switch n.Factor {
	case 1:
		return NiceNumber{n.Power, 2}
	case 2:
		return NiceNumber{n.Power, 5}
	case 5:
		return NiceNumber{n.Power, 10}
	}
	// 10 * 10^p == 1 * 10^(p+1), so the next step up is 2 * 10^(p+1).
	return NiceNumber{n.Power + 1, 2}
}

// Smaller returns the next nice number below n, carrying into Power
// at the bottom of the factor sequence.
func (n NiceNumber) Smaller() NiceNumber {
	switch n.Factor {
	case 10:
		return NiceNumber{n.Power, 5}
	case 5:
		return NiceNumber{n.Power, 2}
	case 2:
		return NiceNumber{n.Power, 1}
	}
	return NiceNumber{n.Power - 1, 5}
}

// IsInteger reports whether the step size is a whole number.
func (n NiceNumber) IsInteger() bool {
	return n.Power >= 0
}
