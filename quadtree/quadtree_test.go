// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quadtree

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

var unitRect = Rect{Point{0, 0}, Point{1, 1}}

func randomTree(t *testing.T, n int, opts Options) (*Tree, []Point) {
	t.Helper()
	tree, err := New(unitRect, opts)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(42))
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{rng.Float64(), rng.Float64()}
		if err := tree.Insert(i, pts[i]); err != nil {
			t.Fatal(err)
		}
	}
	return tree, pts
}

func TestQueryRectAll(t *testing.T) {
	const n = 10000
	tree, _ := randomTree(t, n, Options{Capacity: 4, MaxDepth: 8})
	if tree.Len() != n {
		t.Fatalf("Len = %d, want %d", tree.Len(), n)
	}

	ids := tree.QueryRect(unitRect)
	if len(ids) != n {
		t.Fatalf("full-rect query returned %d ids, want %d", len(ids), n)
	}
	sort.Ints(ids)
	for i, id := range ids {
		if id != i {
			t.Fatalf("id %d missing or duplicated (found %d at position %d)", i, id, i)
		}
	}
}

func TestQueryRectPartial(t *testing.T) {
	tree, pts := randomTree(t, 2000, Options{Capacity: 4, MaxDepth: 8})
	r := Rect{Point{0.25, 0.25}, Point{0.6, 0.8}}

	got := tree.QueryRect(r)
	want := 0
	for _, p := range pts {
		if r.Contains(p) {
			want++
		}
	}
	if len(got) != want {
		t.Errorf("QueryRect returned %d ids, brute force says %d", len(got), want)
	}
	seen := make(map[int]bool)
	for _, id := range got {
		if seen[id] {
			t.Fatalf("id %d reported twice", id)
		}
		seen[id] = true
		if !r.Contains(pts[id]) {
			t.Errorf("id %d at %+v is outside %+v", id, pts[id], r)
		}
	}
}

func TestQueryPointNearest(t *testing.T) {
	const n = 10000
	tree, pts := randomTree(t, n, Options{Capacity: 4, MaxDepth: 8})
	rng := rand.New(rand.NewSource(7))

	nearest := func(q Point) (int, float64) {
		best, bestD2 := -1, math.Inf(1)
		for i, p := range pts {
			dx, dy := p.X-q.X, p.Y-q.Y
			if d2 := dx*dx + dy*dy; d2 < bestD2 {
				best, bestD2 = i, d2
			}
		}
		return best, bestD2
	}

	dists := make([]float64, 0, 1000)
	for i := 0; i < 1000; i++ {
		q := Point{rng.Float64(), rng.Float64()}
		id, ok := tree.QueryPoint(q, 0.5)
		if !ok {
			t.Fatalf("no neighbor within 0.5 of %+v", q)
		}
		wantID, wantD2 := nearest(q)
		dx, dy := pts[id].X-q.X, pts[id].Y-q.Y
		gotD2 := dx*dx + dy*dy
		if id != wantID && gotD2 != wantD2 {
			t.Fatalf("query %+v: got id %d (d2=%v), brute force id %d (d2=%v)",
				q, id, gotD2, wantID, wantD2)
		}
		dists = append(dists, math.Sqrt(gotD2))
	}

	// For 10k uniform points the mean nearest-neighbor distance is
	// about 0.5/sqrt(n); far larger means the descent is wrong.
	if mean := (stats.Sample{Xs: dists}).Mean(); mean > 0.05 {
		t.Errorf("mean nearest distance %v is implausibly large", mean)
	}
}

func TestQueryPointRadius(t *testing.T) {
	tree, err := New(unitRect, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := tree.Insert(0, Point{0.5, 0.5}); err != nil {
		t.Fatal(err)
	}

	if _, ok := tree.QueryPoint(Point{0.9, 0.5}, 0.1); ok {
		t.Error("found a neighbor outside the search radius")
	}
	if id, ok := tree.QueryPoint(Point{0.9, 0.5}, 0.5); !ok || id != 0 {
		t.Errorf("QueryPoint = %d, %v; want 0, true", id, ok)
	}
	if _, ok := tree.QueryPoint(Point{0.1, 0.1}, 0); ok {
		t.Error("zero radius matched a distant point")
	}
}

func TestQueryGrid(t *testing.T) {
	// Points on a regular grid: every grid query lands exactly on
	// an indexed point.
	tree, err := New(unitRect, Options{Capacity: 4, MaxDepth: 6})
	if err != nil {
		t.Fatal(err)
	}
	xs := vec.Linspace(0, 1, 21)
	ys := vec.Linspace(0, 1, 21)
	id := 0
	idAt := make(map[[2]int]int)
	for i, x := range xs {
		for j, y := range ys {
			if err := tree.Insert(id, Point{x, y}); err != nil {
				t.Fatal(err)
			}
			idAt[[2]int{i, j}] = id
			id++
		}
	}
	for i, x := range xs {
		for j, y := range ys {
			got, ok := tree.QueryPoint(Point{x, y}, 1e-9)
			if !ok || got != idAt[[2]int{i, j}] {
				t.Fatalf("grid point (%v, %v): got %d, %v; want %d", x, y, got, ok, idAt[[2]int{i, j}])
			}
		}
	}
}

func TestInsertOutside(t *testing.T) {
	tree, err := New(unitRect, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := tree.Insert(0, Point{2, 0.5}); err == nil {
		t.Error("insert outside root rectangle: want error")
	}
	if err := tree.Insert(0, Point{1, 1}); err != nil {
		t.Errorf("insert on the max corner: %v", err)
	}
}

func TestDepthCapAcceptsUnbounded(t *testing.T) {
	// Coincident points can never be separated by subdivision; the
	// depth cap must absorb them.
	tree, err := New(unitRect, Options{Capacity: 2, MaxDepth: 3})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		if err := tree.Insert(i, Point{0.3, 0.3}); err != nil {
			t.Fatal(err)
		}
	}
	if got := tree.QueryRect(unitRect); len(got) != 100 {
		t.Errorf("recovered %d of 100 coincident points", len(got))
	}
	maxDepth := int32(0)
	for i := range tree.nodes {
		if d := tree.nodes[i].depth; d > maxDepth {
			maxDepth = d
		}
	}
	if maxDepth > 3 {
		t.Errorf("subdivision reached depth %d past the cap", maxDepth)
	}
}

func TestResetReusesArena(t *testing.T) {
	tree, _ := randomTree(t, 5000, Options{Capacity: 4, MaxDepth: 8})
	nodeCap, entryCap := cap(tree.nodes), cap(tree.entries)

	tree.Reset(Rect{Point{-1, -1}, Point{1, 1}})
	if tree.Len() != 0 {
		t.Fatalf("Len = %d after Reset", tree.Len())
	}
	if cap(tree.nodes) != nodeCap || cap(tree.entries) != entryCap {
		t.Errorf("Reset dropped the arenas: node cap %d -> %d, entry cap %d -> %d",
			nodeCap, cap(tree.nodes), entryCap, cap(tree.entries))
	}
	if b := tree.Bounds(); b.Min.X != -1 || b.Max.X != 1 {
		t.Errorf("Bounds after Reset = %+v", b)
	}
	if err := tree.Insert(0, Point{-0.5, 0.5}); err != nil {
		t.Error(err)
	}
	if got := tree.QueryRect(tree.Bounds()); len(got) != 1 || got[0] != 0 {
		t.Errorf("QueryRect after Reset = %v", got)
	}
}

func TestNewInvalidRoot(t *testing.T) {
	if _, err := New(Rect{Point{1, 0}, Point{0, 1}}, Options{}); err == nil {
		t.Error("inverted root rectangle: want error")
	}
	if _, err := New(Rect{Point{math.NaN(), 0}, Point{1, 1}}, Options{}); err == nil {
		t.Error("NaN root rectangle: want error")
	}
}
