// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package quadtree provides a point quadtree over linear chart
// coordinates, answering nearest-point and rectangular-range queries
// for interactive selection.
//
// Nodes live in an arena indexed by integer handles rather than as a
// linked tree, so a wholesale rebuild is a single arena reset with no
// allocation churn.
package quadtree

import (
	"fmt"
	"math"
)

// A Point is a location in the index's coordinate space.
type Point struct {
	X, Y float64
}

// A Rect is an axis-aligned rectangle, closed on all edges.
type Rect struct {
	Min, Max Point
}

// Contains reports whether p lies in r.
func (r Rect) Contains(p Point) bool {
	return r.Min.X <= p.X && p.X <= r.Max.X &&
		r.Min.Y <= p.Y && p.Y <= r.Max.Y
}

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// dist2 returns the squared distance from p to the nearest point of
// r, or 0 if p is inside r.
func (r Rect) dist2(p Point) float64 {
	dx, dy := 0.0, 0.0
	if p.X < r.Min.X {
		dx = r.Min.X - p.X
	} else if p.X > r.Max.X {
		dx = p.X - r.Max.X
	}
	if p.Y < r.Min.Y {
		dy = r.Min.Y - p.Y
	} else if p.Y > r.Max.Y {
		dy = p.Y - r.Max.Y
	}
	return dx*dx + dy*dy
}

// quadrant returns which child rect of r contains p, and that rect.
// Quadrants are numbered west-to-east, south-to-north.
func (r Rect) quadrant(p Point) (int, Rect) {
	cx := (r.Min.X + r.Max.X) / 2
	cy := (r.Min.Y + r.Max.Y) / 2
	q := 0
	child := Rect{r.Min, Point{cx, cy}}
	if p.X >= cx {
		q |= 1
		child.Min.X, child.Max.X = cx, r.Max.X
	}
	if p.Y >= cy {
		q |= 2
		child.Min.Y, child.Max.Y = cy, r.Max.Y
	}
	return q, child
}

// child returns the rect of quadrant q.
func (r Rect) child(q int) Rect {
	cx := (r.Min.X + r.Max.X) / 2
	cy := (r.Min.Y + r.Max.Y) / 2
	c := Rect{r.Min, Point{cx, cy}}
	if q&1 != 0 {
		c.Min.X, c.Max.X = cx, r.Max.X
	}
	if q&2 != 0 {
		c.Min.Y, c.Max.Y = cy, r.Max.Y
	}
	return c
}

// Options configures a Tree.
type Options struct {
	// Capacity is the number of entries a node holds before
	// subdividing. Zero means the default of 16.
	Capacity int

	// MaxDepth caps subdivision; a node at MaxDepth accepts
	// unbounded entries. The cap bounds recursion, not
	// correctness. Zero means the default of 8.
	MaxDepth int
}

func (o Options) withDefaults() Options {
	if o.Capacity <= 0 {
		o.Capacity = 16
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = 8
	}
	return o
}

const noNode = -1

type entry struct {
	id   int
	pt   Point
	next int32 // next entry handle in the node's list, or noNode
}

type node struct {
	rect  Rect
	depth int32

	// kids[0] is noNode while the node is a leaf; subdivided
	// nodes hold all four children and no entries.
	kids [4]int32

	first int32 // head of the entry list, or noNode
	count int32
}

func (n *node) leaf() bool { return n.kids[0] == noNode }

// A Tree is a point quadtree. It is built once per dataset and
// rebuilt wholesale (via Reset) when the data or axis bounds change;
// rebuilds must be serialized against queries by the caller.
type Tree struct {
	opts    Options
	nodes   []node
	entries []entry
	len     int
}

// New returns an empty tree covering root.
func New(root Rect, opts Options) (*Tree, error) {
	if root.Min.X > root.Max.X || root.Min.Y > root.Max.Y ||
		math.IsNaN(root.Min.X) || math.IsNaN(root.Min.Y) ||
		math.IsNaN(root.Max.X) || math.IsNaN(root.Max.Y) {
		return nil, fmt.Errorf("invalid root rectangle %+v", root)
	}
	t := &Tree{opts: opts.withDefaults()}
	t.Reset(root)
	return t, nil
}

// Reset empties the tree and re-roots it at root, retaining the node
// and entry arenas for reuse.
func (t *Tree) Reset(root Rect) {
	t.nodes = t.nodes[:0]
	t.entries = t.entries[:0]
	t.len = 0
	t.newNode(root, 0)
}

// Len returns the number of entries.
func (t *Tree) Len() int { return t.len }

// Bounds returns the root rectangle.
func (t *Tree) Bounds() Rect { return t.nodes[0].rect }

func (t *Tree) newNode(r Rect, depth int32) int32 {
	t.nodes = append(t.nodes, node{
		rect:  r,
		depth: depth,
		kids:  [4]int32{noNode, noNode, noNode, noNode},
		first: noNode,
	})
	return int32(len(t.nodes) - 1)
}

// Insert adds a point under id. Inserting a point outside the root
// rectangle is a caller error.
func (t *Tree) Insert(id int, p Point) error {
	if !t.nodes[0].rect.Contains(p) {
		return fmt.Errorf("point %+v outside index bounds %+v", p, t.nodes[0].rect)
	}

	ni := int32(0)
	for {
		n := &t.nodes[ni]
		if n.leaf() {
			if int(n.count) < t.opts.Capacity || int(n.depth) >= t.opts.MaxDepth {
				t.addEntry(ni, id, p)
				return nil
			}
			t.subdivide(ni)
			n = &t.nodes[ni] // subdividing may grow the arena
		}
		q, _ := n.rect.quadrant(p)
		ni = n.kids[q]
	}
}

func (t *Tree) addEntry(ni int32, id int, p Point) {
	t.entries = append(t.entries, entry{id: id, pt: p, next: t.nodes[ni].first})
	t.nodes[ni].first = int32(len(t.entries) - 1)
	t.nodes[ni].count++
	t.len++
}

// subdivide splits a leaf into four equal quadrants and migrates its
// entries down. Entries stay in the arena; only the list links move.
func (t *Tree) subdivide(ni int32) {
	var kids [4]int32
	for q := 0; q < 4; q++ {
		kids[q] = t.newNode(t.nodes[ni].rect.child(q), t.nodes[ni].depth+1)
	}
	n := &t.nodes[ni]
	n.kids = kids

	ei := n.first
	n.first = noNode
	n.count = 0
	for ei != noNode {
		e := &t.entries[ei]
		next := e.next
		q, _ := n.rect.quadrant(e.pt)
		ki := kids[q]
		e.next = t.nodes[ki].first
		t.nodes[ki].first = ei
		t.nodes[ki].count++
		ei = next
	}
}

// QueryPoint returns the id of the indexed point nearest p, searching
// within maxDist. The second result is false if nothing lies within
// the radius. Queries never fail.
func (t *Tree) QueryPoint(p Point, maxDist float64) (int, bool) {
	best := -1
	bestD2 := maxDist * maxDist
	found := false

	var walk func(ni int32)
	walk = func(ni int32) {
		n := &t.nodes[ni]
		if d := n.rect.dist2(p); d > bestD2 {
			return
		}
		for ei := n.first; ei != noNode; ei = t.entries[ei].next {
			e := &t.entries[ei]
			dx, dy := e.pt.X-p.X, e.pt.Y-p.Y
			if d2 := dx*dx + dy*dy; d2 <= bestD2 && (!found || d2 < bestD2 || best > e.id) {
				best, bestD2, found = e.id, d2, true
			}
		}
		if !n.leaf() {
			// Descend nearest-first so pruning kicks in
			// early.
			q, _ := n.rect.quadrant(p)
			walk(n.kids[q])
			for i := 0; i < 4; i++ {
				if int32(i) != int32(q) {
					walk(n.kids[i])
				}
			}
		}
	}
	walk(0)
	return best, found
}

// QueryRect returns the ids of all points inside r, each reported
// once. Used for drag-box multi-selection.
func (t *Tree) QueryRect(r Rect) []int {
	var ids []int
	var walk func(ni int32)
	walk = func(ni int32) {
		n := &t.nodes[ni]
		if !n.rect.Intersects(r) {
			return
		}
		for ei := n.first; ei != noNode; ei = t.entries[ei].next {
			if e := &t.entries[ei]; r.Contains(e.pt) {
				ids = append(ids, e.id)
			}
		}
		if !n.leaf() {
			for _, ki := range n.kids {
				walk(ki)
			}
		}
	}
	walk(0)
	return ids
}
