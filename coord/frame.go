// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coord

import (
	"fmt"

	"github.com/lsst-sitcom/rubin-chart/axis"
	"github.com/lsst-sitcom/rubin-chart/quadtree"
	"github.com/lsst-sitcom/rubin-chart/scale"
)

// Role assigns an axis its place in a projection.
type Role int

const (
	X Role = iota
	Y
	Radius
	Angle

	// Z and Color are recognized but not yet supported; using one
	// is an explicit construction error rather than a silent
	// no-op.
	Z
	Color
)

func (r Role) String() string {
	switch r {
	case X:
		return "x"
	case Y:
		return "y"
	case Radius:
		return "radius"
	case Angle:
		return "angle"
	case Z:
		return "z"
	case Color:
		return "color"
	}
	return "unknown"
}

// An AxisSpec names one axis of a frame and assigns it a role.
type AxisSpec struct {
	ID   string
	Role Role
	Axis *axis.Axis
}

// A Frame is a named, ordered collection of axes plus the projection
// that combines them. It converts between data values and pixel
// coordinates; Project and Unproject are mutual inverses for any
// point Project produces. The axis key set is fixed at construction;
// individual axes may be swapped by ID, and the frame observes each
// axis's bounds updates so its pixel transforms track UpdateBounds.
type Frame struct {
	proj   Projection
	region Point

	ids   []string
	axes  map[string]*axis.Axis
	roles map[string]Role

	// slot[i] is the axis ID feeding projection coordinate i.
	slot [2]string

	px, py PixelTransform
}

// NewFrame builds a frame over the given axes. The axis count must
// match the projection's arity, and the roles must resolve: x and y
// for Cartesian, radius and angle for Polar. region is the target
// pixel region size.
func NewFrame(proj Projection, region Point, specs ...AxisSpec) (*Frame, error) {
	if len(specs) != proj.Arity() {
		return nil, fmt.Errorf("projection needs %d axes, got %d", proj.Arity(), len(specs))
	}
	if region.X <= 0 || region.Y <= 0 {
		return nil, fmt.Errorf("invalid pixel region %vx%v", region.X, region.Y)
	}

	f := &Frame{
		proj:   proj,
		region: region,
		axes:   make(map[string]*axis.Axis, len(specs)),
		roles:  make(map[string]Role, len(specs)),
	}

	var want [2]Role
	switch proj.(type) {
	case Cartesian:
		want = [2]Role{X, Y}
	case Polar:
		want = [2]Role{Radius, Angle}
	default:
		return nil, fmt.Errorf("unhandled projection %T", proj)
	}

	for _, s := range specs {
		if s.Axis == nil {
			return nil, fmt.Errorf("axis %q is nil", s.ID)
		}
		if s.Role == Z || s.Role == Color {
			return nil, fmt.Errorf("axis role %s is not supported", s.Role)
		}
		if _, dup := f.axes[s.ID]; dup {
			return nil, fmt.Errorf("duplicate axis id %q", s.ID)
		}
		f.ids = append(f.ids, s.ID)
		f.axes[s.ID] = s.Axis
		f.roles[s.ID] = s.Role
	}

	for i, role := range want {
		id, ok := f.findRole(role)
		if !ok {
			return nil, fmt.Errorf("no axis assigned the %s role", role)
		}
		f.slot[i] = id
	}

	if err := f.rebuildTransforms(); err != nil {
		return nil, err
	}
	for _, id := range f.ids {
		f.observe(f.axes[id])
	}
	return f, nil
}

// observe rebuilds the pixel transforms whenever the axis commits a
// bounds update, keeping Project/Unproject consistent with the axis's
// published ticks. Bounds that survive UpdateBounds are always
// mappable, so the rebuild cannot fail; if it ever did, the previous
// transforms are kept.
func (f *Frame) observe(a *axis.Axis) {
	a.Subscribe(func(axis.Update) {
		f.rebuildTransforms()
	})
}

func (f *Frame) findRole(r Role) (string, bool) {
	for _, id := range f.ids {
		if f.roles[id] == r {
			return id, true
		}
	}
	return "", false
}

// IDs returns the axis identifiers in insertion order.
func (f *Frame) IDs() []string { return f.ids }

// Axis returns the axis registered under id, or nil.
func (f *Frame) Axis(id string) *axis.Axis { return f.axes[id] }

// Region returns the pixel region size.
func (f *Frame) Region() Point { return f.region }

// Projection returns the projection the frame was built over.
func (f *Frame) Projection() Projection { return f.proj }

// SetAxis swaps the axis registered under id, keeping the key set
// fixed. The pixel transforms are rebuilt from the new bounds.
func (f *Frame) SetAxis(id string, ax *axis.Axis) error {
	old, ok := f.axes[id]
	if !ok {
		return fmt.Errorf("frame has no axis %q", id)
	}
	if ax == nil {
		return fmt.Errorf("axis %q is nil", id)
	}
	f.axes[id] = ax
	if err := f.rebuildTransforms(); err != nil {
		f.axes[id] = old
		return err
	}
	// The replaced axis keeps its subscription, but rebuilds read
	// the live axis set, so a notification from it is harmless.
	f.observe(ax)
	return nil
}

// SetRegion resizes the target pixel region.
func (f *Frame) SetRegion(region Point) error {
	if region.X <= 0 || region.Y <= 0 {
		return fmt.Errorf("invalid pixel region %vx%v", region.X, region.Y)
	}
	old := f.region
	f.region = region
	if err := f.rebuildTransforms(); err != nil {
		f.region = old
		return err
	}
	return nil
}

// linearBounds derives the bounds of the two linear coordinates from
// the axes' display bounds. Under a polar projection the disk spans
// ±(radial width) on both linear axes, since the radius is measured
// from the pole after offsetting by the radial minimum.
func (f *Frame) linearBounds() (bx, by scale.Bounds) {
	if _, polar := f.proj.(Polar); polar {
		w := f.axes[f.slot[0]].Bounds().Width()
		span := scale.Bounds{Min: -w, Max: w}
		return span, span
	}
	return f.axes[f.slot[0]].Bounds(), f.axes[f.slot[1]].Bounds()
}

func (f *Frame) rebuildTransforms() error {
	bx, by := f.linearBounds()
	// Cartesian axes carry their inversion flag into the pixel
	// transform; polar inversion is consumed before projection.
	invX, invY := false, false
	if _, polar := f.proj.(Polar); !polar {
		invX = f.axes[f.slot[0]].Inverted()
		invY = f.axes[f.slot[1]].Inverted()
	}
	px, err := NewPixelTransform(bx, f.region.X, invX)
	if err != nil {
		return err
	}
	py, err := NewPixelTransform(by, f.region.Y, invY)
	if err != nil {
		return err
	}
	f.px, f.py = px, py
	return nil
}

// normalize converts data values to adjusted normalized coordinates
// ready for projection.
func (f *Frame) normalize(vals []axis.Value) ([2]float64, error) {
	var norm [2]float64
	if len(vals) != len(f.slot) {
		return norm, fmt.Errorf("got %d values for %d axes", len(vals), len(f.slot))
	}
	for i, id := range f.slot {
		d, err := f.axes[id].ToDisplay(vals[i])
		if err != nil {
			return norm, err
		}
		norm[i] = d
	}
	if _, polar := f.proj.(Polar); polar {
		norm = f.polarAdjust(norm)
	}
	return norm, nil
}

// polarAdjust offsets the radius to measure from the pole and applies
// the polar axes' inversion flags: an inverted radius is measured
// from the outer edge inward, an inverted angle runs
// counterclockwise.
func (f *Frame) polarAdjust(norm [2]float64) [2]float64 {
	rb := f.axes[f.slot[0]].Bounds()
	if f.axes[f.slot[0]].Inverted() {
		norm[0] = rb.Max - norm[0]
	} else {
		norm[0] = norm[0] - rb.Min
	}
	if f.axes[f.slot[1]].Inverted() {
		norm[1] = 360 - norm[1]
	}
	return norm
}

func (f *Frame) polarUnadjust(norm [2]float64) [2]float64 {
	rb := f.axes[f.slot[0]].Bounds()
	if f.axes[f.slot[0]].Inverted() {
		norm[0] = rb.Max - norm[0]
	} else {
		norm[0] = norm[0] + rb.Min
	}
	if f.axes[f.slot[1]].Inverted() {
		norm[1] = 360 - norm[1]
	}
	return norm
}

// ToLinear projects data values to the linear coordinate space, the
// space the spatial index is built over.
func (f *Frame) ToLinear(vals []axis.Value) (Point, error) {
	norm, err := f.normalize(vals)
	if err != nil {
		return Point{}, err
	}
	return f.proj.Map(norm), nil
}

// Project converts data values to a pixel coordinate.
func (f *Frame) Project(vals []axis.Value) (Point, error) {
	lin, err := f.ToLinear(vals)
	if err != nil {
		return Point{}, err
	}
	return Point{f.px.ToPixel(lin.X), f.py.ToPixel(lin.Y)}, nil
}

// LinearFromPixel translates a pixel coordinate back to linear space.
// Interactive hit-testing uses this to query the spatial index with
// pointer positions.
func (f *Frame) LinearFromPixel(p Point) Point {
	return Point{f.px.FromPixel(p.X), f.py.FromPixel(p.Y)}
}

// Unproject converts a pixel coordinate back to data values. It is
// the exact inverse of Project up to the value types' representable
// quanta (millisecond instants, discrete categories).
func (f *Frame) Unproject(p Point) ([]axis.Value, error) {
	lin := f.LinearFromPixel(p)
	norm := f.proj.Inverse(lin)
	if _, polar := f.proj.(Polar); polar {
		norm = f.polarUnadjust(norm)
	}
	vals := make([]axis.Value, len(f.slot))
	for i, id := range f.slot {
		vals[i] = f.axes[id].FromDisplay(norm[i])
	}
	return vals, nil
}

// LinearRect returns the linear-space rectangle covering the frame,
// the root rectangle for a spatial index over its points.
func (f *Frame) LinearRect() quadtree.Rect {
	bx, by := f.linearBounds()
	return quadtree.Rect{
		Min: quadtree.Point{X: bx.Min, Y: by.Min},
		Max: quadtree.Point{X: bx.Max, Y: by.Max},
	}
}

// Rebuild resets idx to the frame's linear rectangle and inserts
// every point, id by position. The index is rebuilt wholesale on any
// data or bounds change; the caller serializes rebuilds against
// queries.
func (f *Frame) Rebuild(idx *quadtree.Tree, pts [][]axis.Value) error {
	idx.Reset(f.LinearRect())
	for id, vals := range pts {
		lin, err := f.ToLinear(vals)
		if err != nil {
			return err
		}
		if err := idx.Insert(id, quadtree.Point{X: lin.X, Y: lin.Y}); err != nil {
			return err
		}
	}
	return nil
}
