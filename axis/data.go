// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package axis

import (
	"fmt"
	"time"

	gslice "github.com/aclements/go-gg/generic/slice"
	"github.com/gonum/floats"

	"github.com/lsst-sitcom/rubin-chart/scale"
)

// DataBounds folds the extent of one numeric column into a Bounds.
// If subset is non-nil it restricts the fold to those indices, which
// is how drill-down selections narrow an axis to the visible IDs.
func DataBounds(xs []float64, subset []int) (scale.Bounds, error) {
	if subset != nil {
		sel := make([]float64, 0, len(subset))
		for _, id := range subset {
			if id < 0 || id >= len(xs) {
				return scale.Bounds{}, fmt.Errorf("subset id %d out of range [0, %d)", id, len(xs))
			}
			sel = append(sel, xs[id])
		}
		xs = sel
	}
	if len(xs) == 0 {
		return scale.Bounds{}, fmt.Errorf("no values to bound")
	}
	return scale.NewBounds(floats.Min(xs), floats.Max(xs))
}

// TimeBounds is DataBounds over instants, folded in modified Julian
// date space.
func TimeBounds(ts []time.Time, subset []int) (scale.Bounds, error) {
	mjd := make([]float64, len(ts))
	for i, t := range ts {
		mjd[i] = TimeToMJD(t)
	}
	return DataBounds(mjd, subset)
}

// Categories folds one or more string columns into the ordered
// unique-value table for a categorical axis.
func Categories(series ...[]string) []string {
	args := make([]gslice.T, len(series))
	for i, s := range series {
		args[i] = s
	}
	var out []string
	gslice.Convert(&out, gslice.NubAppend(args...))
	gslice.Sort(out)
	return out
}
