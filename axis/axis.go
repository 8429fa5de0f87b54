// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package axis

import (
	"fmt"
	"math"
	"time"

	"github.com/lsst-sitcom/rubin-chart/scale"
)

// Config describes an axis to be constructed.
type Config struct {
	// Label names the axis for display.
	Label string

	// Kind selects the native value type. The zero value is
	// Numeric.
	Kind Kind

	// Mapping is the display mapping. If nil, scale.Linear is
	// used. Only Numeric axes may use a log mapping.
	Mapping scale.Mapping

	// Inverted marks the axis as displayed low/high swapped. The
	// flag is consumed by the pixel transforms downstream; it does
	// not change the axis's own bounds or ticks.
	Inverted bool

	// FixedBounds, if non-nil, pins the display range (in native
	// value space). A pinned axis ignores UpdateBounds.
	FixedBounds *scale.Bounds

	// MinTicks and MaxTicks bound the major tick count. Zero
	// values take the scale package defaults.
	MinTicks, MaxTicks int

	// Categories is the ordered unique-value table for a
	// Categorical axis. Required when Kind is Categorical.
	Categories []string
}

// An Update carries a consistent (bounds, ticks) pair to axis
// subscribers. Both fields are in display (mapped) space.
type Update struct {
	Bounds scale.Bounds
	Ticks  scale.Ticks
}

// An Axis owns a value range, a display mapping, and the current tick
// set for one chart dimension. Bounds and ticks are in display
// (mapped) space: identical to native values for linear mappings,
// exponents for log mappings, table indices for categorical axes, and
// modified Julian dates for temporal axes.
//
// An Axis is mutated only by UpdateBounds and is single-writer; hosts
// sharing one logical axis across several frames subscribe to it
// rather than aliasing its fields.
type Axis struct {
	label    string
	kind     Kind
	mapping  scale.Mapping
	inverted bool
	fixed    bool

	minTicks, maxTicks int

	dataBounds scale.Bounds
	bounds     scale.Bounds
	ticks      scale.Ticks

	cats     []string
	catIndex map[string]int

	subs []func(Update)
}

// New constructs an axis from one or more data bounds samples, given
// in native value space (category table indices for Categorical,
// modified Julian dates for Temporal). The samples are folded into
// one data bounds; ticks are generated to enclose the mapped data
// bounds and the display bounds grow to contain them.
func New(cfg Config, samples ...scale.Bounds) (*Axis, error) {
	a := &Axis{
		label:    cfg.Label,
		kind:     cfg.Kind,
		mapping:  cfg.Mapping,
		inverted: cfg.Inverted,
		minTicks: cfg.MinTicks,
		maxTicks: cfg.MaxTicks,
	}
	if a.mapping == nil {
		a.mapping = scale.Linear{}
	}
	if _, isLog := a.mapping.(scale.Log); isLog && a.kind != Numeric {
		return nil, fmt.Errorf("log mapping is not supported for %s axes", a.kind)
	}

	switch a.kind {
	case Categorical:
		if len(cfg.Categories) == 0 {
			return nil, fmt.Errorf("categorical axis %q needs a category table", cfg.Label)
		}
		a.cats = cfg.Categories
		a.catIndex = make(map[string]int, len(a.cats))
		for i, c := range a.cats {
			if _, dup := a.catIndex[c]; dup {
				return nil, fmt.Errorf("duplicate category %q", c)
			}
			a.catIndex[c] = i
		}
		if len(samples) == 0 {
			samples = []scale.Bounds{{Min: 0, Max: float64(len(a.cats) - 1)}}
		}
	default:
		if len(samples) == 0 && cfg.FixedBounds == nil {
			return nil, fmt.Errorf("axis %q has no bounds samples", cfg.Label)
		}
	}

	var data scale.Bounds
	if len(samples) == 0 {
		data = *cfg.FixedBounds
	} else {
		data = samples[0]
		for _, s := range samples[1:] {
			data = data.Union(s)
		}
	}
	mapped, err := a.mapBounds(data)
	if err != nil {
		return nil, err
	}
	a.dataBounds = mapped

	if cfg.FixedBounds != nil {
		fixed, err := a.mapBounds(*cfg.FixedBounds)
		if err != nil {
			return nil, err
		}
		a.fixed = true
		a.bounds = fixed
		a.ticks = a.genTicks(fixed, false)
	} else {
		ticks := a.genTicks(mapped, true)
		a.bounds = mapped.Union(ticks.Bounds)
		a.ticks = ticks
	}
	if err := a.checkTickGranularity(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Axis) Label() string             { return a.label }
func (a *Axis) Kind() Kind                { return a.kind }
func (a *Axis) Mapping() scale.Mapping    { return a.mapping }
func (a *Axis) Inverted() bool            { return a.inverted }
func (a *Axis) Fixed() bool               { return a.fixed }
func (a *Axis) Bounds() scale.Bounds      { return a.bounds }
func (a *Axis) DataBounds() scale.Bounds  { return a.dataBounds }
func (a *Axis) Ticks() scale.Ticks        { return a.ticks }
func (a *Axis) Categories() []string      { return a.cats }

// Subscribe registers f to be called after each completed bounds
// update. The Update is delivered only once the axis is fully
// consistent, so f observes matching bounds and ticks.
func (a *Axis) Subscribe(f func(Update)) {
	a.subs = append(a.subs, f)
}

// UpdateBounds recomputes the ticks from candidate (native value
// space) and replaces the display bounds with the union of candidate,
// the new tick bounds, and the data bounds. It is a no-op on a pinned
// axis. On error the axis is unchanged.
func (a *Axis) UpdateBounds(candidate scale.Bounds) error {
	if a.fixed {
		return nil
	}
	mapped, err := a.mapBounds(candidate)
	if err != nil {
		return err
	}
	ticks := a.genTicks(mapped, true)
	bounds := mapped.Union(ticks.Bounds).Union(a.dataBounds)

	old := *a
	a.bounds, a.ticks = bounds, ticks
	if err := a.checkTickGranularity(); err != nil {
		*a = old
		return err
	}
	for _, f := range a.subs {
		f(Update{Bounds: a.bounds, Ticks: a.ticks})
	}
	return nil
}

// ToDisplay converts a native value to its display-space position.
func (a *Axis) ToDisplay(v Value) (float64, error) {
	switch v := v.(type) {
	case Number:
		if a.kind != Numeric {
			return 0, fmt.Errorf("numeric value on %s axis %q", a.kind, a.label)
		}
		x := float64(v)
		if !a.mapping.Domain(x) {
			return 0, fmt.Errorf("value %v outside mapping domain of axis %q", x, a.label)
		}
		return a.mapping.Forward(x), nil
	case Category:
		if a.kind != Categorical {
			return 0, fmt.Errorf("categorical value on %s axis %q", a.kind, a.label)
		}
		i, ok := a.catIndex[string(v)]
		if !ok {
			return 0, fmt.Errorf("unknown category %q on axis %q", string(v), a.label)
		}
		return float64(i), nil
	case Moment:
		if a.kind != Temporal {
			return 0, fmt.Errorf("temporal value on %s axis %q", a.kind, a.label)
		}
		return TimeToMJD(time.Time(v)), nil
	}
	return 0, fmt.Errorf("unhandled value type %T", v)
}

// FromDisplay converts a display-space position back to a native
// value. Forward-only normalization loses type detail recovered here
// by rounding: categorical positions snap to the nearest table entry
// and temporal positions to the nearest millisecond.
func (a *Axis) FromDisplay(x float64) Value {
	switch a.kind {
	case Categorical:
		i := int(math.Round(x))
		if i < 0 {
			i = 0
		} else if i >= len(a.cats) {
			i = len(a.cats) - 1
		}
		return Category(a.cats[i])
	case Temporal:
		return Moment(MJDToTime(x))
	}
	return Number(a.mapping.Inverse(x))
}

// mapBounds maps native bounds into display space, validating the
// mapping's domain.
func (a *Axis) mapBounds(b scale.Bounds) (scale.Bounds, error) {
	if b.Min > b.Max {
		return scale.Bounds{}, fmt.Errorf("axis %q: inverted bounds [%v, %v]", a.label, b.Min, b.Max)
	}
	if !a.mapping.Domain(b.Min) || !a.mapping.Domain(b.Max) {
		return scale.Bounds{}, fmt.Errorf("axis %q: bounds [%v, %v] outside mapping domain", a.label, b.Min, b.Max)
	}
	return scale.Bounds{Min: a.mapping.Forward(b.Min), Max: a.mapping.Forward(b.Max)}, nil
}

func (a *Axis) genTicks(mapped scale.Bounds, enclose bool) scale.Ticks {
	o := scale.TickOptions{MinTicks: a.minTicks, MaxTicks: a.maxTicks, Enclose: enclose}
	if log, ok := a.mapping.(scale.Log); ok {
		return scale.LogTicks(mapped, log.Base, o)
	}
	return scale.LinearTicks(mapped, o)
}

// checkTickGranularity rejects temporal tick steps below one
// millisecond; finer granularity is not supported.
func (a *Axis) checkTickGranularity() error {
	if a.kind != Temporal || len(a.ticks.Major) < 2 {
		return nil
	}
	stepDays := a.ticks.Major[1] - a.ticks.Major[0]
	if stepDays*nsPerDay < float64(time.Millisecond) {
		return fmt.Errorf("axis %q: tick granularity below one millisecond is not supported", a.label)
	}
	return nil
}
