// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package axis

import (
	"math"
	"testing"
	"time"

	"github.com/lsst-sitcom/rubin-chart/scale"
)

func TestNewFoldsSamples(t *testing.T) {
	a, err := New(Config{Label: "flux"},
		scale.Bounds{Min: 3, Max: 7},
		scale.Bounds{Min: 1, Max: 4},
		scale.Bounds{Min: 5, Max: 9},
	)
	if err != nil {
		t.Fatal(err)
	}
	if db := a.DataBounds(); db.Min != 1 || db.Max != 9 {
		t.Errorf("data bounds = %v, want [1, 9]", db)
	}
	// Display bounds grow to contain the enclosing ticks, never
	// the reverse.
	b := a.Bounds()
	if b.Min > 1 || b.Max < 9 {
		t.Errorf("display bounds %v do not contain data bounds [1, 9]", b)
	}
	tk := a.Ticks()
	if tk.Major[0] < b.Min || tk.Major[len(tk.Major)-1] > b.Max {
		t.Errorf("ticks %v escape display bounds %v", tk.Major, b)
	}
}

func TestNewDegenerate(t *testing.T) {
	a, err := New(Config{Label: "x"}, scale.Bounds{Min: 5, Max: 5})
	if err != nil {
		t.Fatal(err)
	}
	b := a.Bounds()
	if !(b.Min < 5 && b.Max > 5) {
		t.Errorf("degenerate sample produced bounds %v, want a range straddling 5", b)
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(Config{Label: "x"}); err == nil {
		t.Error("no samples: want error")
	}
	if _, err := New(Config{Label: "x", Mapping: scale.NewLog10()}, scale.Bounds{Min: -1, Max: 10}); err == nil {
		t.Error("log axis over non-positive bounds: want error")
	}
	if _, err := New(Config{Label: "x", Kind: Categorical}); err == nil {
		t.Error("categorical axis without table: want error")
	}
	if _, err := New(Config{Label: "x", Kind: Temporal, Mapping: scale.NewLog()}, scale.Bounds{Min: 1, Max: 2}); err == nil {
		t.Error("log mapping on temporal axis: want error")
	}
	if _, err := New(Config{Label: "x", Kind: Categorical, Categories: []string{"a", "a"}}); err == nil {
		t.Error("duplicate category: want error")
	}
}

func TestFixedBoundsPin(t *testing.T) {
	fixed := scale.Bounds{Min: 0, Max: 10}
	a, err := New(Config{Label: "x", FixedBounds: &fixed}, scale.Bounds{Min: 2, Max: 4})
	if err != nil {
		t.Fatal(err)
	}
	if !a.Fixed() {
		t.Fatal("axis not pinned")
	}
	if b := a.Bounds(); b != fixed {
		t.Errorf("pinned bounds = %v, want %v", b, fixed)
	}
	// Pinned ticks stay inside the fixed range.
	tk := a.Ticks()
	if tk.Major[0] < 0 || tk.Major[len(tk.Major)-1] > 10 {
		t.Errorf("pinned ticks %v escape [0, 10]", tk.Major)
	}

	before := a.Bounds()
	if err := a.UpdateBounds(scale.Bounds{Min: -100, Max: 100}); err != nil {
		t.Fatal(err)
	}
	if a.Bounds() != before {
		t.Errorf("UpdateBounds changed a pinned axis: %v -> %v", before, a.Bounds())
	}
}

func TestUpdateBounds(t *testing.T) {
	a, err := New(Config{Label: "x"}, scale.Bounds{Min: 0, Max: 10})
	if err != nil {
		t.Fatal(err)
	}

	var got []Update
	a.Subscribe(func(u Update) { got = append(got, u) })

	if err := a.UpdateBounds(scale.Bounds{Min: 0, Max: 55}); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d updates, want 1", len(got))
	}
	// The delivered pair matches the axis's committed state.
	if got[0].Bounds != a.Bounds() {
		t.Errorf("update bounds %v != axis bounds %v", got[0].Bounds, a.Bounds())
	}
	if len(got[0].Ticks.Major) != len(a.Ticks().Major) {
		t.Errorf("update ticks differ from axis ticks")
	}
	if b := a.Bounds(); b.Max < 55 {
		t.Errorf("bounds %v did not grow to candidate", b)
	}

	// Shrinking below the data bounds is clamped.
	if err := a.UpdateBounds(scale.Bounds{Min: 4, Max: 6}); err != nil {
		t.Fatal(err)
	}
	if b := a.Bounds(); b.Min > 0 || b.Max < 10 {
		t.Errorf("bounds %v shrank below data bounds [0, 10]", b)
	}
}

func TestNumericDisplayRoundTrip(t *testing.T) {
	check := func(cfg Config, samples scale.Bounds, vals ...float64) {
		t.Helper()
		a, err := New(cfg, samples)
		if err != nil {
			t.Fatal(err)
		}
		for _, v := range vals {
			d, err := a.ToDisplay(Number(v))
			if err != nil {
				t.Fatalf("ToDisplay(%v): %v", v, err)
			}
			back := a.FromDisplay(d)
			n, ok := back.(Number)
			if !ok {
				t.Fatalf("FromDisplay returned %T", back)
			}
			if math.Abs(float64(n)-v) > 1e-9*math.Max(1, math.Abs(v)) {
				t.Errorf("round trip %v -> %v -> %v", v, d, float64(n))
			}
		}
	}

	check(Config{Label: "lin"}, scale.Bounds{Min: 0, Max: 100}, 0, 12.5, 99.99)
	check(Config{Label: "log", Mapping: scale.NewLog10()}, scale.Bounds{Min: 1, Max: 1e6}, 1, 42, 1e5)
	check(Config{Label: "ln", Mapping: scale.NewLog()}, scale.Bounds{Min: 0.5, Max: 20}, 0.5, 2.718, 19)
}

func TestLogDomainRejected(t *testing.T) {
	a, err := New(Config{Label: "log", Mapping: scale.NewLog10()}, scale.Bounds{Min: 1, Max: 100})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.ToDisplay(Number(0)); err == nil {
		t.Error("ToDisplay(0) on a log axis: want error")
	}
	if _, err := a.ToDisplay(Number(-5)); err == nil {
		t.Error("ToDisplay(-5) on a log axis: want error")
	}
}

func TestCategoricalRoundTrip(t *testing.T) {
	cats := Categories([]string{"g", "r", "i"}, []string{"r", "z"})
	want := []string{"g", "i", "r", "z"}
	if len(cats) != len(want) {
		t.Fatalf("Categories = %v, want %v", cats, want)
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Fatalf("Categories = %v, want %v", cats, want)
		}
	}

	a, err := New(Config{Label: "band", Kind: Categorical, Categories: cats})
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range cats {
		d, err := a.ToDisplay(Category(c))
		if err != nil {
			t.Fatal(err)
		}
		if got := a.FromDisplay(d); got != Category(c) {
			t.Errorf("round trip %q -> %v -> %v", c, d, got)
		}
	}
	// Display positions between entries snap to the nearest one.
	if got := a.FromDisplay(0.4); got != Category(cats[0]) {
		t.Errorf("FromDisplay(0.4) = %v, want %q", got, cats[0])
	}
	if got := a.FromDisplay(-3); got != Category(cats[0]) {
		t.Errorf("FromDisplay(-3) = %v, want first entry", got)
	}
	if got := a.FromDisplay(99); got != Category(cats[len(cats)-1]) {
		t.Errorf("FromDisplay(99) = %v, want last entry", got)
	}
	if _, err := a.ToDisplay(Category("nope")); err == nil {
		t.Error("unknown category: want error")
	}
}

func TestTemporalRoundTrip(t *testing.T) {
	ts := []time.Time{
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 12, 30, 45, 123e6, time.UTC),
		time.Date(2024, 3, 9, 23, 59, 59, 999e6, time.UTC),
	}
	b, err := TimeBounds(ts, nil)
	if err != nil {
		t.Fatal(err)
	}
	a, err := New(Config{Label: "obs time", Kind: Temporal}, b)
	if err != nil {
		t.Fatal(err)
	}
	for _, tm := range ts {
		d, err := a.ToDisplay(Moment(tm))
		if err != nil {
			t.Fatal(err)
		}
		got := time.Time(a.FromDisplay(d).(Moment))
		// The representable quantum is one millisecond.
		if got.Sub(tm) > time.Millisecond || tm.Sub(got) > time.Millisecond {
			t.Errorf("round trip %v -> %v (off by %v)", tm, got, got.Sub(tm))
		}
	}
}

func TestMJDReference(t *testing.T) {
	// The MJD epoch is 1858-11-17T00:00 UTC; 2000-01-01T00:00 UTC
	// is MJD 51544.
	if got := TimeToMJD(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)); got != 51544 {
		t.Errorf("TimeToMJD(2000-01-01) = %v, want 51544", got)
	}
	if got := MJDToTime(51544.5); !got.Equal(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("MJDToTime(51544.5) = %v", got)
	}
}

func TestSubMillisecondTicksRejected(t *testing.T) {
	// A temporal span of ~10 microseconds forces tick steps far
	// below a millisecond.
	t0 := TimeToMJD(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	span := 10e-6 / 86400 // ten microseconds in days
	_, err := New(Config{Label: "t", Kind: Temporal}, scale.Bounds{Min: t0, Max: t0 + span})
	if err == nil {
		t.Error("sub-millisecond tick granularity: want explicit unsupported error")
	}
}

func TestDataBounds(t *testing.T) {
	xs := []float64{5, 1, 9, 3}
	b, err := DataBounds(xs, nil)
	if err != nil {
		t.Fatal(err)
	}
	if b.Min != 1 || b.Max != 9 {
		t.Errorf("DataBounds = %v, want [1, 9]", b)
	}

	// Drill-down subset restricts the fold.
	b, err = DataBounds(xs, []int{0, 3})
	if err != nil {
		t.Fatal(err)
	}
	if b.Min != 3 || b.Max != 5 {
		t.Errorf("subset DataBounds = %v, want [3, 5]", b)
	}

	if _, err := DataBounds(xs, []int{7}); err == nil {
		t.Error("out of range subset id: want error")
	}
	if _, err := DataBounds(nil, nil); err == nil {
		t.Error("empty column: want error")
	}
}
