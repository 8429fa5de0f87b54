// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Chartsvg renders a synthetic scatter chart to SVG.
//
// It exists to exercise the coordinate pipeline end to end: axes are
// configured from the command line, points are projected through a
// Cartesian or polar frame, and the nearest point to a pixel position
// can be highlighted via the spatial index.
//
// Axis options are given as shell-quoted key=value pairs, e.g.
//
//	chartsvg -x 'label="right ascension" min=0 max=360' \
//	         -y 'label=magnitude min=14 max=24 invert' -o chart.svg
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/stats"
	svg "github.com/ajstarks/svgo"
	"github.com/kballard/go-shellquote"

	"github.com/lsst-sitcom/rubin-chart/axis"
	"github.com/lsst-sitcom/rubin-chart/coord"
	"github.com/lsst-sitcom/rubin-chart/quadtree"
	"github.com/lsst-sitcom/rubin-chart/scale"
)

var (
	flagOut    = flag.String("o", "", "write SVG to `file` (default stdout)")
	flagSize   = flag.String("size", "800x600", "chart size in pixels as `WxH`")
	flagPolar  = flag.Bool("polar", false, "use a polar frame (-x configures radius, -y angle)")
	flagX      = flag.String("x", "", "x axis `options` (key=value pairs, shell quoting)")
	flagY      = flag.String("y", "", "y axis `options` (key=value pairs, shell quoting)")
	flagPoints = flag.Int("points", 500, "generate `N` synthetic points (0 reads x,y CSV from stdin)")
	flagSeed   = flag.Int64("seed", 1, "random `seed` for synthetic points")
	flagNear   = flag.String("near", "", "highlight the point nearest pixel `x,y`")
)

const (
	gridStyle  = "stroke:rgb(220,220,220);stroke-width:1px"
	frameStyle = "fill:none;stroke:black;stroke-width:1px"
	labelStyle = "font-family:sans-serif;font-size:10pt;fill:black;text-anchor:middle"
	dotStyle   = "fill:rgb(50,100,180);fill-opacity:0.7"
	hitStyle   = "fill:none;stroke:red;stroke-width:2px"
)

func main() {
	log.SetPrefix("chartsvg: ")
	log.SetFlags(0)
	flag.Parse()
	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(2)
	}

	width, height, err := parseSize(*flagSize)
	if err != nil {
		log.Fatal(err)
	}

	xOpts, err := parseAxisOpts(*flagX)
	if err != nil {
		log.Fatalf("-x: %v", err)
	}
	yOpts, err := parseAxisOpts(*flagY)
	if err != nil {
		log.Fatalf("-y: %v", err)
	}

	var pts [][]axis.Value
	if *flagPoints == 0 {
		pts, err = readPoints(os.Stdin)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		pts = genPoints(*flagPoints, *flagSeed, *flagPolar)
	}
	frame, err := buildFrame(xOpts, yOpts, pts, width, height, *flagPolar)
	if err != nil {
		log.Fatal(err)
	}

	w := os.Stdout
	if *flagOut != "" {
		f, err := os.Create(*flagOut)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		w = f
	}
	if err := render(w, frame, pts, *flagNear); err != nil {
		log.Fatal(err)
	}
}

func parseSize(s string) (w, h float64, err error) {
	i := strings.IndexByte(s, 'x')
	if i < 0 {
		return 0, 0, fmt.Errorf("bad size %q, want WxH", s)
	}
	w, err1 := strconv.ParseFloat(s[:i], 64)
	h, err2 := strconv.ParseFloat(s[i+1:], 64)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("bad size %q, want WxH", s)
	}
	return w, h, nil
}

// axisOpts is an axis configuration parsed from a flag.
type axisOpts struct {
	label              string
	min, max           *float64
	logBase            string
	inverted           bool
	minTicks, maxTicks int
}

func parseAxisOpts(s string) (axisOpts, error) {
	var o axisOpts
	words, err := shellquote.Split(s)
	if err != nil {
		return o, err
	}
	for _, w := range words {
		key, val := w, ""
		if i := strings.IndexByte(w, '='); i >= 0 {
			key, val = w[:i], w[i+1:]
		}
		switch key {
		case "label":
			o.label = val
		case "min", "max":
			v, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return o, fmt.Errorf("bad %s=%q", key, val)
			}
			if key == "min" {
				o.min = &v
			} else {
				o.max = &v
			}
		case "log":
			if val == "" {
				val = "10"
			}
			o.logBase = val
		case "inverted":
			o.inverted = true
		case "ticks":
			i := strings.IndexByte(val, ':')
			if i < 0 {
				return o, fmt.Errorf("bad ticks=%q, want lo:hi", val)
			}
			lo, err1 := strconv.Atoi(val[:i])
			hi, err2 := strconv.Atoi(val[i+1:])
			if err1 != nil || err2 != nil || lo < 2 || hi < lo {
				return o, fmt.Errorf("bad ticks=%q, want lo:hi", val)
			}
			o.minTicks, o.maxTicks = lo, hi
		default:
			return o, fmt.Errorf("unknown axis option %q", key)
		}
	}
	return o, nil
}

func (o axisOpts) mapping() (scale.Mapping, error) {
	switch o.logBase {
	case "":
		return nil, nil
	case "10":
		return scale.NewLog10(), nil
	case "e":
		return scale.NewLog(), nil
	}
	base, err := strconv.ParseFloat(o.logBase, 64)
	if err != nil || base <= 1 {
		return nil, fmt.Errorf("bad log base %q", o.logBase)
	}
	return scale.Log{Base: base}, nil
}

// genPoints produces a clustered synthetic point cloud. In polar mode
// the coordinates are radius and angle in degrees.
func genPoints(n int, seed int64, polar bool) [][]axis.Value {
	rng := rand.New(rand.NewSource(seed))
	pts := make([][]axis.Value, 0, n)
	for i := 0; i < n; i++ {
		var x, y float64
		if polar {
			x = math.Abs(rng.NormFloat64()) * 2
			y = rng.Float64() * 360
		} else {
			// Two gaussian clusters.
			x, y = rng.NormFloat64(), rng.NormFloat64()
			if i%3 == 0 {
				x, y = x+4, y+2
			}
		}
		pts = append(pts, []axis.Value{axis.Number(x), axis.Number(y)})
	}
	return pts
}

// readPoints reads one x,y pair per line.
func readPoints(r io.Reader) ([][]axis.Value, error) {
	var pts [][]axis.Value
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		i := strings.IndexByte(line, ',')
		if i < 0 {
			return nil, fmt.Errorf("bad input line %q, want x,y", line)
		}
		x, err1 := strconv.ParseFloat(strings.TrimSpace(line[:i]), 64)
		y, err2 := strconv.ParseFloat(strings.TrimSpace(line[i+1:]), 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("bad input line %q, want x,y", line)
		}
		pts = append(pts, []axis.Value{axis.Number(x), axis.Number(y)})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("no points on stdin")
	}
	return pts, nil
}

func buildFrame(xo, yo axisOpts, pts [][]axis.Value, width, height float64, polar bool) (*coord.Frame, error) {
	mkAxis := func(o axisOpts, dim int, fallback string) (*axis.Axis, error) {
		cfg := axis.Config{Label: o.label, Inverted: o.inverted,
			MinTicks: o.minTicks, MaxTicks: o.maxTicks}
		if cfg.Label == "" {
			cfg.Label = fallback
		}
		m, err := o.mapping()
		if err != nil {
			return nil, err
		}
		cfg.Mapping = m

		var sample stats.Sample
		for _, p := range pts {
			sample.Xs = append(sample.Xs, float64(p[dim].(axis.Number)))
		}
		lo, hi := sample.Bounds()
		if o.min != nil {
			lo = *o.min
		}
		if o.max != nil {
			hi = *o.max
		}
		if o.min != nil && o.max != nil {
			b, err := scale.NewBounds(lo, hi)
			if err != nil {
				return nil, err
			}
			cfg.FixedBounds = &b
			return axis.New(cfg)
		}
		b, err := scale.NewBounds(lo, hi)
		if err != nil {
			return nil, err
		}
		return axis.New(cfg, b)
	}

	region := coord.Point{X: width, Y: height}
	if polar {
		ar, err := mkAxis(xo, 0, "radius")
		if err != nil {
			return nil, err
		}
		at, err := mkAxis(yo, 1, "angle")
		if err != nil {
			return nil, err
		}
		return coord.NewFrame(coord.Polar{}, region,
			coord.AxisSpec{ID: "r", Role: coord.Radius, Axis: ar},
			coord.AxisSpec{ID: "theta", Role: coord.Angle, Axis: at})
	}
	ax, err := mkAxis(xo, 0, "x")
	if err != nil {
		return nil, err
	}
	ay, err := mkAxis(yo, 1, "y")
	if err != nil {
		return nil, err
	}
	return coord.NewFrame(coord.Cartesian{}, region,
		coord.AxisSpec{ID: "x", Role: coord.X, Axis: ax},
		coord.AxisSpec{ID: "y", Role: coord.Y, Axis: ay})
}

func render(w *os.File, f *coord.Frame, pts [][]axis.Value, near string) error {
	region := f.Region()
	width, height := int(region.X), int(region.Y)

	c := svg.New(w)
	c.Start(width, height)
	c.Rect(0, 0, width, height, "fill:white")

	if _, polar := f.Projection().(coord.Polar); polar {
		drawPolarGrid(c, f)
	} else {
		drawGrid(c, f)
	}

	c.Gstyle(dotStyle)
	for _, p := range pts {
		px, err := f.Project(p)
		if err != nil {
			return err
		}
		c.Circle(round(px.X), round(px.Y), 2)
	}
	c.Gend()

	if near != "" {
		if err := drawNearest(c, f, pts, near); err != nil {
			return err
		}
	}

	c.Rect(0, 0, width, height, frameStyle)
	c.End()
	return nil
}

// drawGrid draws gridlines and labels at the major ticks of both
// Cartesian axes. Tick positions come from projecting each tick value
// through the frame, so inverted and log axes lay out correctly.
func drawGrid(c *svg.SVG, f *coord.Frame) {
	region := f.Region()
	width, height := int(region.X), int(region.Y)
	xAxis, yAxis := f.Axis("x"), f.Axis("y")

	xTicks := xAxis.Ticks()
	for i, m := range xTicks.Major {
		px, err := f.Project([]axis.Value{xAxis.FromDisplay(m), yAxis.FromDisplay(yAxis.Bounds().Min)})
		if err != nil {
			continue
		}
		x := round(px.X)
		c.Line(x, 0, x, height, gridStyle)
		c.Text(x, height-4, xTicks.Labels[i], labelStyle)
	}

	yTicks := yAxis.Ticks()
	for i, m := range yTicks.Major {
		px, err := f.Project([]axis.Value{xAxis.FromDisplay(xAxis.Bounds().Min), yAxis.FromDisplay(m)})
		if err != nil {
			continue
		}
		y := round(px.Y)
		c.Line(0, y, width, y, gridStyle)
		c.Text(28, y-2, yTicks.Labels[i], labelStyle)
	}

	c.Text(width/2, height-16, xAxis.Label(), labelStyle)
	c.TranslateRotate(14, height/2, -90)
	c.Text(0, 0, yAxis.Label(), labelStyle)
	c.Gend()
}

// drawPolarGrid draws radial circles at the radius ticks and spokes
// at the angle ticks.
func drawPolarGrid(c *svg.SVG, f *coord.Frame) {
	region := f.Region()
	cx, cy := round(region.X/2), round(region.Y/2)
	rAxis, tAxis := f.Axis("r"), f.Axis("theta")

	rTicks := rAxis.Ticks()
	for i, m := range rTicks.Major {
		px, err := f.Project([]axis.Value{rAxis.FromDisplay(m), tAxis.FromDisplay(0)})
		if err != nil {
			continue
		}
		// The tick projects straight up from the center, so the
		// pixel radius is the vertical offset.
		r := cy - round(px.Y)
		if r <= 0 {
			continue
		}
		c.Circle(cx, cy, r, "fill:none;"+gridStyle)
		c.Text(cx+4, cy-r-2, rTicks.Labels[i], labelStyle)
	}

	rb := rAxis.Bounds()
	tTicks := tAxis.Ticks()
	for i, m := range tTicks.Major {
		px, err := f.Project([]axis.Value{rAxis.FromDisplay(rb.Max), tAxis.FromDisplay(m)})
		if err != nil {
			continue
		}
		c.Line(cx, cy, round(px.X), round(px.Y), gridStyle)
		c.Text(round(px.X), round(px.Y), tTicks.Labels[i], labelStyle)
	}
}

// drawNearest hit-tests the pixel position given on the command line
// against a freshly built spatial index and rings the winner.
func drawNearest(c *svg.SVG, f *coord.Frame, pts [][]axis.Value, near string) error {
	i := strings.IndexByte(near, ',')
	if i < 0 {
		return fmt.Errorf("bad -near %q, want x,y", near)
	}
	nx, err1 := strconv.ParseFloat(near[:i], 64)
	ny, err2 := strconv.ParseFloat(near[i+1:], 64)
	if err1 != nil || err2 != nil {
		return fmt.Errorf("bad -near %q, want x,y", near)
	}

	idx, err := quadtree.New(f.LinearRect(), quadtree.Options{})
	if err != nil {
		return err
	}
	if err := f.Rebuild(idx, pts); err != nil {
		return err
	}

	lin := f.LinearFromPixel(coord.Point{X: nx, Y: ny})
	id, ok := idx.QueryPoint(quadtree.Point{X: lin.X, Y: lin.Y}, math.Inf(1))
	if !ok {
		return nil
	}
	px, err := f.Project(pts[id])
	if err != nil {
		return err
	}
	c.Circle(round(px.X), round(px.Y), 6, hitStyle)
	return nil
}

func round(v float64) int {
	return int(math.Round(v))
}
