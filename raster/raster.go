// Copyright 2026 The hwwave Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package raster draws timing diagrams to images.
//
// Lengths in Options are in points (1/72 inch) and scaled to pixels by the
// DPI setting.
//
package raster

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/db47h/hwwave"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
)

// Palette holds the colors of the drawing.
//
type Palette struct {
	Background color.Color
	Grid       color.Color
	Wave       color.Color // waves and bus outlines
	Bus        color.Color // fill of valid bus cells
	Unknown    color.Color // fill of unknown bus cells
	Text       color.Color // bus values, signal names and title
	Label      color.Color // text rows
	Mark       color.Color // notes
	Header     color.Color // cycle labels and times
}

// DefaultPalette is black on white.
//
var DefaultPalette = Palette{
	Background: color.White,
	Grid:       color.RGBA{0x99, 0x99, 0x99, 0xff},
	Wave:       color.Black,
	Bus:        color.White,
	Unknown:    color.RGBA{0xee, 0xee, 0xee, 0xff},
	Text:       color.Black,
	Label:      color.RGBA{0x55, 0x55, 0x55, 0xff},
	Mark:       color.RGBA{0xd0, 0x00, 0x00, 0xff},
	Header:     color.RGBA{0x1f, 0x4e, 0x9c, 0xff},
}

// Options for Draw.
//
type Options struct {
	DPI        float64 // resolution, defaults to 150
	CycleWidth float64 // width of a cycle in points, defaults to 72
	RowHeight  float64 // height of a row unit in points, defaults to 36
	Margin     float64 // in points, defaults to 18
	Palette    Palette // zero colors are taken from DefaultPalette
}

// DefaultOptions are the options used when fields of Options are left zero.
//
var DefaultOptions = Options{
	DPI:        150,
	CycleWidth: 72,
	RowHeight:  36,
	Margin:     18,
	Palette:    DefaultPalette,
}

func (o Options) withDefaults() Options {
	def := func(v *float64, d float64) {
		if *v <= 0 {
			*v = d
		}
	}
	def(&o.DPI, DefaultOptions.DPI)
	def(&o.CycleWidth, DefaultOptions.CycleWidth)
	def(&o.RowHeight, DefaultOptions.RowHeight)
	def(&o.Margin, DefaultOptions.Margin)

	p, d := &o.Palette, &DefaultOptions.Palette
	pick(&p.Background, d.Background)
	pick(&p.Grid, d.Grid)
	pick(&p.Wave, d.Wave)
	pick(&p.Bus, d.Bus)
	pick(&p.Unknown, d.Unknown)
	pick(&p.Text, d.Text)
	pick(&p.Label, d.Label)
	pick(&p.Mark, d.Mark)
	pick(&p.Header, d.Header)
	return o
}

func pick(c *color.Color, d color.Color) {
	if *c == nil {
		*c = d
	}
}

// Line widths in points.
//
const (
	waveWidth  = 1.5
	busWidth   = 1
	crossWidth = 0.5
	gridWidth  = 0.5
	dashOn     = 4
	dashOff    = 3
)

// layout maps diagram space to pixels.
//
type layout struct {
	s      float64 // pixels per point
	left   float64
	top    float64
	cw, rh float64
	lo, hi hwwave.Point
	w, h   int
}

func (l *layout) px(p hwwave.Point) pt {
	return pt{
		x: l.left + (p.X-l.lo.X)*l.cw,
		y: l.top + (l.hi.Y-p.Y)*l.rh,
	}
}

func (l *layout) pxs(pts []hwwave.Point) []pt {
	out := make([]pt, len(pts))
	for i, p := range pts {
		out[i] = l.px(p)
	}
	return out
}

// Draw draws dr on a new image.
//
func Draw(dr *hwwave.Drawing, opts Options) *image.RGBA {
	o := opts.withDefaults()
	fc := newFaces(o.DPI)
	defer fc.Close()

	l := &layout{s: o.DPI / 72}
	l.cw, l.rh = o.CycleWidth*l.s, o.RowHeight*l.s
	margin := o.Margin * l.s
	gap := l.cw / 8
	lineH := float64(fc.text.Metrics().Height.Ceil())

	nameW := 0
	for _, r := range dr.Rows {
		nameW = max(nameW, font.MeasureString(fc.name, r.Name).Ceil())
	}
	titleH := 0.0
	if dr.Title != "" {
		titleH = float64(fc.title.Metrics().Height.Ceil()) * 1.5
	}
	headH := lineH * 1.5
	if len(dr.Times) > 0 {
		headH += lineH
	}

	l.lo, l.hi = dr.Bounds()
	l.left = margin + float64(nameW) + gap
	l.top = margin + titleH + headH
	l.w = int(math.Ceil(l.left + (l.hi.X-l.lo.X)*l.cw + margin))
	l.h = int(math.Ceil(l.top + (l.hi.Y-l.lo.Y)*l.rh + lineH/2 + margin))

	c := newCanvas(l.w, l.h)
	pal := &o.Palette
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(pal.Background), image.Point{}, draw.Src)

	// header and grid
	if dr.Title != "" {
		c.text(fc.title, pal.Text, dr.Title, float64(l.w)/2, margin+titleH/3, alignCenter)
	}
	gridTop, gridBottom := l.top-lineH/4, float64(l.h)-margin
	for i := 0; i <= dr.Cycles; i++ {
		x := l.px(hwwave.Point{X: float64(i)}).x
		c.dashed(pal.Grid, gridWidth*l.s, pt{x, gridTop}, pt{x, gridBottom}, dashOn*l.s, dashOff*l.s)
	}
	labelY := margin + titleH + lineH/2
	for i, s := range dr.Labels {
		x := l.px(hwwave.Point{X: float64(i) + 0.5}).x
		c.text(fc.name, pal.Header, s, x, labelY, alignCenter)
		if i < len(dr.Times) {
			c.text(fc.text, pal.Header, dr.Times[i], x, labelY+lineH, alignCenter)
		}
	}

	for _, r := range dr.Rows {
		p := l.px(hwwave.Point{Y: r.Y})
		c.text(fc.name, pal.Text, r.Name, l.left-gap, p.y, alignRight)
	}

	for i := range dr.Elements {
		drawElement(c, l, fc, pal, dr, &dr.Elements[i])
	}
	return c.img
}

func rowColor(dr *hwwave.Drawing, sig int, def color.Color) color.Color {
	if sig < 0 || sig >= len(dr.Rows) || dr.Rows[sig].Color == "" {
		return def
	}
	c, err := hwwave.ParseColor(dr.Rows[sig].Color)
	if err != nil {
		return def
	}
	return c
}

func drawElement(c *canvas, l *layout, fc *faces, pal *Palette, dr *hwwave.Drawing, e *hwwave.Element) {
	switch e.Shape {
	case hwwave.Wave:
		c.stroke(rowColor(dr, e.Signal, pal.Wave), waveWidth*l.s, l.pxs(e.Points), false)
	case hwwave.Hold:
		pts := l.pxs(e.Points)
		c.fill(rowColor(dr, e.Signal, pal.Bus), pts)
		c.stroke(pal.Wave, busWidth*l.s, pts, true)
		at := l.px(e.At)
		c.text(fc.text, pal.Text, e.Text, at.x, at.y, alignCenter)
	case hwwave.Unknown:
		pts := l.pxs(e.Points)
		c.fill(pal.Unknown, pts)
		c.stroke(pal.Wave, busWidth*l.s, pts, true)
		c.stroke(pal.Wave, crossWidth*l.s, []pt{pts[0], pts[2]}, false)
		c.stroke(pal.Wave, crossWidth*l.s, []pt{pts[1], pts[3]}, false)
	case hwwave.Midline:
		c.stroke(pal.Wave, busWidth*l.s, l.pxs(e.Points), false)
	case hwwave.Label:
		at := l.px(e.At)
		c.text(fc.text, pal.Label, e.Text, at.x, at.y, alignCenter)
	case hwwave.Mark:
		at := l.px(e.At)
		c.text(fc.name, pal.Mark, e.Text, at.x, at.y, alignCenter)
	}
}

// Encode draws dr and writes it to w in PNG format.
//
func Encode(w io.Writer, dr *hwwave.Drawing, opts Options) error {
	if err := png.Encode(w, Draw(dr, opts)); err != nil {
		return errors.Wrap(err, "encode png")
	}
	return nil
}

// Save draws dr to the named PNG file.
//
func Save(name string, dr *hwwave.Drawing, opts Options) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "save png")
	}
	defer func() {
		if e := f.Close(); err == nil && e != nil {
			err = errors.Wrap(e, "save png")
		}
	}()
	return Encode(f, dr, opts)
}
