// Copyright 2026 The hwwave Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hwwave

import (
	"math"
	"strconv"
)

// Shape tags the elements of a Drawing.
//
type Shape int

// Element shapes.
//
const (
	Wave    Shape = iota // polyline of a clock or bit signal
	Hold                 // hexagon around a valid bus value
	Unknown              // filled and crossed box, unknown bus value
	Midline              // flat line, don't-care bus value
	Label                // free text centered on a cell
	Mark                 // annotation under a cell
)

var shapeNames = [...]string{"wave", "hold", "unknown", "midline", "label", "mark"}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return "shape?"
	}
	return shapeNames[s]
}

// Bus value sentinels.
//
var (
	UnknownValues  = []string{"???", "xxxx"}
	DontCareValues = []string{"---", "-"}
)

// Classify returns the shape of a bus cell holding value v. Only the literal
// value matters: equal values in consecutive cells are drawn as separate
// cells.
//
func Classify(v string) Shape {
	for _, u := range UnknownValues {
		if v == u {
			return Unknown
		}
	}
	for _, dc := range DontCareValues {
		if v == dc {
			return Midline
		}
	}
	return Hold
}

// Point is a point in diagram space: X is a cycle offset and Y grows upwards.
//
type Point struct {
	X, Y float64
}

// An Element is a single primitive of a Drawing.
//
// Points depends on Shape:
//
//	Wave:    polyline vertices
//	Hold:    the 6 vertices of the hexagon (closed polygon)
//	Unknown: the 4 corners of the box, counter-clockwise from bottom-left;
//	         the cross joins Points[0]-Points[2] and Points[1]-Points[3]
//	Midline: the 2 line ends
//	Label, Mark: empty, Text is drawn centered on At
//
type Element struct {
	Shape  Shape
	Signal int // index of the signal in the diagram
	Cycle  int // cell index, -1 for whole row elements
	Points []Point
	Text   string
	At     Point
}

// A RowLabel is the name of a signal and the vertical middle of its row.
//
type RowLabel struct {
	Name  string
	Kind  Kind
	Color string
	Y     float64
}

// Drawing is the backend independent output of a Renderer.
//
type Drawing struct {
	Title    string
	Cycles   int
	Height   float64 // signal amplitude used to build the drawing
	Rows     []RowLabel
	Elements []Element
	Labels   []string // cycle labels
	Times    []string // cycle start times, empty if the diagram has no period
}

// Bounds returns the bounding box of all element points and text anchors.
//
func (dr *Drawing) Bounds() (lo, hi Point) {
	lo = Point{0, math.Inf(1)}
	hi = Point{float64(dr.Cycles), math.Inf(-1)}
	grow := func(p Point) {
		lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
		hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
	}
	for i := range dr.Elements {
		e := &dr.Elements[i]
		for _, p := range e.Points {
			grow(p)
		}
		if e.Shape == Label || e.Shape == Mark {
			grow(e.At)
		}
	}
	for _, r := range dr.Rows {
		grow(Point{0, r.Y})
	}
	if math.IsInf(lo.Y, 1) {
		lo.Y, hi.Y = 0, 0
	}
	return lo, hi
}

// Renderer computes the geometry of diagrams.
//
type Renderer struct {
	Height float64 // signal amplitude, in row units
	Slant  float64 // horizontal width of bus transition edges, in cycles
}

// DefaultRenderer is the Renderer used by Render.
//
var DefaultRenderer = Renderer{Height: 0.8, Slant: 0.15}

// Render renders d with DefaultRenderer.
//
func Render(d *Diagram) *Drawing {
	return DefaultRenderer.Render(d)
}

// Render returns the drawing of d. The result only depends on d and r.
//
func (r Renderer) Render(d *Diagram) *Drawing {
	dr := &Drawing{
		Title:  d.title,
		Cycles: d.cycles,
		Height: r.Height,
	}
	for i := 0; i < d.cycles; i++ {
		dr.Labels = append(dr.Labels, d.CycleLabel(i))
		if d.period > 0 {
			dr.Times = append(dr.Times, formatTime(float64(i)*d.period))
		}
	}

	for i := range d.signals {
		s := &d.signals[i]
		y := d.Row(i)
		dr.Rows = append(dr.Rows, RowLabel{Name: s.Name, Kind: s.Kind, Color: s.Color, Y: y + r.Height/2})
		switch s.Kind {
		case Clock:
			dr.Elements = append(dr.Elements, r.clock(i, y, d.cycles))
		case Bit:
			dr.Elements = append(dr.Elements, r.bit(i, y, s.Bits))
		case Bus:
			for c, v := range s.Data {
				dr.Elements = append(dr.Elements, r.cell(i, c, y, v))
			}
		case Text:
			for c, v := range s.Data {
				if v == "" {
					continue
				}
				dr.Elements = append(dr.Elements, Element{
					Shape: Label, Signal: i, Cycle: c, Text: v,
					At: Point{float64(c) + 0.5, y + r.Height/2},
				})
			}
		}
	}

	for _, n := range d.notes {
		i := d.Index(n.Signal)
		dr.Elements = append(dr.Elements, Element{
			Shape: Mark, Signal: i, Cycle: n.Cycle, Text: n.Text,
			At: Point{float64(n.Cycle) + 0.5, d.Row(i) - r.Height*0.375},
		})
	}
	return dr
}

// clock draws a wave that is high during the first half of each cycle.
//
func (r Renderer) clock(sig int, y float64, cycles int) Element {
	lo, hi := y, y+r.Height
	pts := make([]Point, 0, 4*cycles+1)
	for i := 0; i < cycles; i++ {
		x := float64(i)
		pts = append(pts,
			Point{x, lo}, Point{x, hi},
			Point{x + 0.5, hi}, Point{x + 0.5, lo})
	}
	pts = append(pts, Point{float64(cycles), lo})
	return Element{Shape: Wave, Signal: sig, Cycle: -1, Points: pts}
}

// bit draws a step line with a vertical edge at every cycle boundary where the
// value changes.
//
func (r Renderer) bit(sig int, y float64, bits []bool) Element {
	level := func(b bool) float64 {
		if b {
			return y + r.Height
		}
		return y
	}
	pts := []Point{{0, level(bits[0])}}
	for i := 1; i < len(bits); i++ {
		if bits[i] != bits[i-1] {
			x := float64(i)
			pts = append(pts, Point{x, level(bits[i-1])}, Point{x, level(bits[i])})
		}
	}
	pts = append(pts, Point{float64(len(bits)), level(bits[len(bits)-1])})
	return Element{Shape: Wave, Signal: sig, Cycle: -1, Points: pts}
}

func (r Renderer) cell(sig, c int, y float64, v string) Element {
	x := float64(c)
	top, mid := y+r.Height, y+r.Height/2
	e := Element{Shape: Classify(v), Signal: sig, Cycle: c}
	switch e.Shape {
	case Hold:
		s := r.Slant
		e.Points = []Point{
			{x, mid}, {x + s, top}, {x + 1 - s, top},
			{x + 1, mid}, {x + 1 - s, y}, {x + s, y},
		}
		e.Text = v
		e.At = Point{x + 0.5, mid}
	case Unknown:
		e.Points = []Point{{x, y}, {x + 1, y}, {x + 1, top}, {x, top}}
	case Midline:
		e.Points = []Point{{x, mid}, {x + 1, mid}}
	}
	return e
}

func formatTime(ns float64) string {
	return strconv.FormatFloat(ns, 'g', -1, 64) + "ns"
}
