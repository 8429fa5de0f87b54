// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"math"
	"strconv"
)

// TickOptions specifies constraints for tick generation.
type TickOptions struct {
	// MinTicks and MaxTicks bound the number of major ticks. If
	// both are 0, the defaults (4 and 9) are used.
	MinTicks, MaxTicks int

	// Enclose requests ticks whose span contains the input bounds
	// rather than ticks restricted to fall inside them. This is
	// the mode used at initial axis construction.
	Enclose bool
}

// searchBudget bounds the factor walk when the initial step guess
// misses the requested tick-count band. Running out of budget keeps
// the original guess; tick aesthetics are never worth failing a
// render.
const searchBudget = 5

func (o TickOptions) band() (min, max int) {
	min, max = o.MinTicks, o.MaxTicks
	if min == 0 && max == 0 {
		min, max = 4, 9
	}
	return
}

// Ticks is a generated tick set. Bounds records the tick-aligned
// span, which may exceed the requested bounds in enclosing mode.
type Ticks struct {
	Major  []float64
	Minor  []float64
	Labels []string
	Bounds Bounds

	// Degraded is set when the nice-number search gave up without
	// landing in the requested tick-count band and fell back to
	// its initial step.
	Degraded bool
}

// LinearTicks generates major and minor ticks covering b with a
// nice-number step. It never fails: degenerate bounds are widened
// first and an unsatisfiable tick-count band falls back to the
// initial step guess with Degraded set.
func LinearTicks(b Bounds, o TickOptions) Ticks {
	b = b.Widen()
	minTicks, maxTicks := o.band()

	avg := float64(minTicks+maxTicks) / 2
	intervals := avg - 1
	if intervals < 1 {
		// A band like [1, 1] has no interior interval; size the
		// initial step to the whole width.
		intervals = 1
	}
	initial := Nice(b.Width()/intervals, true)

	// snap aligns the tick span to step multiples: outward in
	// enclosing mode, inward otherwise. The epsilon keeps an
	// endpoint that is an exact step multiple from drifting across
	// the integer boundary under float division.
	const snapEps = 1e-9
	snap := func(step NiceNumber) (lo, hi int) {
		sv := step.Value()
		if o.Enclose {
			lo = int(math.Floor(b.Min/sv + snapEps))
			hi = int(math.Ceil(b.Max/sv - snapEps))
		} else {
			lo = int(math.Ceil(b.Min/sv - snapEps))
			hi = int(math.Floor(b.Max/sv + snapEps))
		}
		return
	}

	// count is the exact number of ticks snap yields, not an
	// estimate over the raw width: the inward snap can trim almost
	// a full step at each end, and the band is a contract on what
	// the caller receives.
	count := func(step NiceNumber) int {
		lo, hi := snap(step)
		return hi - lo + 1
	}

	step := initial
	degraded := false
	if n := count(step); n < minTicks || n > maxTicks {
		degraded = true
		for i := 0; i < searchBudget; i++ {
			if n > maxTicks {
				step = step.Larger()
			} else {
				step = step.Smaller()
			}
			n = count(step)
			if minTicks <= n && n <= maxTicks {
				degraded = false
				break
			}
		}
		if degraded {
			step = initial
		}
	}

	sv := step.Value()
	lo, hi := snap(step)
	if hi < lo {
		// Inward snapping over a narrow range can leave no
		// ticks at all. Fall back to the bounds edges.
		return Ticks{
			Major:    []float64{b.Min, b.Max},
			Labels:   []string{formatTick(b.Min, step), formatTick(b.Max, step)},
			Bounds:   b,
			Degraded: true,
		}
	}

	major := make([]float64, 0, hi-lo+1)
	labels := make([]string, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		v := float64(i) * sv
		major = append(major, v)
		labels = append(labels, formatTick(v, step))
	}

	// Minor ticks halve each major interval.
	minor := make([]float64, 0, hi-lo)
	for i := lo; i < hi; i++ {
		minor = append(minor, (float64(i)+0.5)*sv)
	}

	return Ticks{
		Major:    major,
		Minor:    minor,
		Labels:   labels,
		Bounds:   Bounds{major[0], major[len(major)-1]},
		Degraded: degraded,
	}
}

// LogTicks generates ticks for bounds already mapped through a Log
// mapping, so b is in exponent space. Major ticks fall on integer
// powers of base; for base 10, minor ticks fall at log10(2)..log10(9)
// offsets between consecutive majors.
func LogTicks(b Bounds, base float64, o TickOptions) Ticks {
	b = b.Widen()

	var lo, hi int
	if o.Enclose {
		lo = int(math.Floor(b.Min))
		hi = int(math.Ceil(b.Max))
	} else {
		lo = int(math.Ceil(b.Min))
		hi = int(math.Floor(b.Max))
	}
	if hi < lo {
		// No integer power falls inside a sub-decade range;
		// mark the edges instead.
		return Ticks{
			Major:    []float64{b.Min, b.Max},
			Labels:   []string{formatPower(b.Min, base), formatPower(b.Max, base)},
			Bounds:   b,
			Degraded: true,
		}
	}

	major := make([]float64, 0, hi-lo+1)
	labels := make([]string, 0, hi-lo+1)
	for e := lo; e <= hi; e++ {
		major = append(major, float64(e))
		labels = append(labels, formatPower(float64(e), base))
	}

	var minor []float64
	if base == 10 {
		for e := lo; e < hi; e++ {
			for k := 2; k <= 9; k++ {
				minor = append(minor, float64(e)+math.Log10(float64(k)))
			}
		}
	}

	return Ticks{
		Major:  major,
		Minor:  minor,
		Labels: labels,
		Bounds: Bounds{major[0], major[len(major)-1]},
	}
}

// formatTick renders a tick value with precision derived from the
// step's power: integer steps get integer labels, fractional steps
// get |Power| decimals.
func formatTick(v float64, step NiceNumber) string {
	if step.IsInteger() {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', -step.Power, 64)
}

// formatPower renders the value base^e labeling a log-scale tick.
func formatPower(e, base float64) string {
	v := math.Pow(base, e)
	if v >= 1e-4 && v < 1e6 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'e', 0, 64)
}
