// Copyright 2026 The hwwave Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package svg writes timing diagrams as SVG documents.
//
package svg

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/db47h/hwwave"
	"github.com/pkg/errors"
)

// Options for Write. Lengths are in SVG user units.
//
type Options struct {
	CycleWidth float64 // defaults to 72
	RowHeight  float64 // defaults to 36
	Margin     float64 // defaults to 18
}

// DefaultOptions are the options used when fields of Options are left zero.
//
var DefaultOptions = Options{
	CycleWidth: 72,
	RowHeight:  36,
	Margin:     18,
}

func (o Options) withDefaults() Options {
	if o.CycleWidth <= 0 {
		o.CycleWidth = DefaultOptions.CycleWidth
	}
	if o.RowHeight <= 0 {
		o.RowHeight = DefaultOptions.RowHeight
	}
	if o.Margin <= 0 {
		o.Margin = DefaultOptions.Margin
	}
	return o
}

const (
	textSize  = 9
	nameSize  = 11
	titleSize = 16
	lineH     = textSize * 1.4

	busFill     = "#fff"
	unknownFill = "#eee"
	gridColor   = "#999"
	labelColor  = "#555"
	markColor   = "#d00000"
	headerColor = "#1f4e9c"
)

// textWidth estimates the width of s in a sans-serif font of the given size.
//
func textWidth(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * 0.6
}

func esc(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

type writer struct {
	*bufio.Writer
	left, top float64
	cw, rh    float64
	lo, hi    hwwave.Point
}

func (w *writer) x(x float64) float64 { return w.left + (x-w.lo.X)*w.cw }
func (w *writer) y(y float64) float64 { return w.top + (w.hi.Y-y)*w.rh }

func (w *writer) points(pts []hwwave.Point) string {
	var b strings.Builder
	for i, p := range pts {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.2f,%.2f", w.x(p.X), w.y(p.Y))
	}
	return b.String()
}

func (w *writer) text(x, y float64, size float64, anchor, fill, weight, s string) {
	if s == "" {
		return
	}
	fmt.Fprintf(w, `  <text x="%.2f" y="%.2f" font-size="%g" text-anchor="%s" dominant-baseline="central" fill="%s"`,
		x, y, size, anchor, fill)
	if weight != "" {
		fmt.Fprintf(w, ` font-weight="%s"`, weight)
	}
	fmt.Fprintf(w, ">%s</text>\n", esc(s))
}

// Write writes dr to out as an SVG document.
//
func Write(out io.Writer, dr *hwwave.Drawing, opts Options) error {
	o := opts.withDefaults()
	w := &writer{Writer: bufio.NewWriter(out), cw: o.CycleWidth, rh: o.RowHeight}

	nameW := 0.0
	for _, r := range dr.Rows {
		nameW = max(nameW, textWidth(r.Name, nameSize))
	}
	titleH := 0.0
	if dr.Title != "" {
		titleH = titleSize * 2
	}
	headH := lineH * 1.5
	if len(dr.Times) > 0 {
		headH += lineH
	}
	gap := o.CycleWidth / 8
	w.lo, w.hi = dr.Bounds()
	w.left = o.Margin + nameW + gap
	w.top = o.Margin + titleH + headH
	width := w.left + (w.hi.X-w.lo.X)*w.cw + o.Margin
	height := w.top + (w.hi.Y-w.lo.Y)*w.rh + lineH/2 + o.Margin

	fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.2f %.2f" font-family="sans-serif">
  <rect width="100%%" height="100%%" fill="#fff"/>
`, width, height, width, height)

	if dr.Title != "" {
		w.text(width/2, o.Margin+titleH/3, titleSize, "middle", "#000", "bold", dr.Title)
	}
	fmt.Fprintf(w, `  <g stroke="%s" stroke-width=".5" stroke-dasharray="4 3">`+"\n", gridColor)
	for i := 0; i <= dr.Cycles; i++ {
		x := w.x(float64(i))
		fmt.Fprintf(w, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", x, w.top-lineH/4, x, height-o.Margin)
	}
	fmt.Fprintln(w, "  </g>")
	labelY := o.Margin + titleH + lineH/2
	for i, s := range dr.Labels {
		x := w.x(float64(i) + 0.5)
		w.text(x, labelY, nameSize, "middle", headerColor, "bold", s)
		if i < len(dr.Times) {
			w.text(x, labelY+lineH, textSize, "middle", headerColor, "", dr.Times[i])
		}
	}
	for _, r := range dr.Rows {
		w.text(w.left-gap, w.y(r.Y), nameSize, "end", "#000", "bold", r.Name)
	}

	for i := range dr.Elements {
		w.element(dr, &dr.Elements[i])
	}
	fmt.Fprintln(w, "</svg>")
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "write svg")
	}
	return nil
}

func rowColor(dr *hwwave.Drawing, sig int, def string) string {
	if sig < 0 || sig >= len(dr.Rows) || dr.Rows[sig].Color == "" {
		return def
	}
	return dr.Rows[sig].Color
}

func (w *writer) element(dr *hwwave.Drawing, e *hwwave.Element) {
	switch e.Shape {
	case hwwave.Wave:
		fmt.Fprintf(w, `  <polyline points="%s" fill="none" stroke="%s" stroke-width="1.5"/>`+"\n",
			w.points(e.Points), rowColor(dr, e.Signal, "#000"))
	case hwwave.Hold:
		fmt.Fprintf(w, `  <polygon points="%s" fill="%s" stroke="#000"/>`+"\n",
			w.points(e.Points), rowColor(dr, e.Signal, busFill))
		w.text(w.x(e.At.X), w.y(e.At.Y), textSize, "middle", "#000", "", e.Text)
	case hwwave.Unknown:
		p := e.Points
		fmt.Fprintf(w, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="#000"/>`+"\n",
			w.x(p[0].X), w.y(p[2].Y), w.x(p[2].X)-w.x(p[0].X), w.y(p[0].Y)-w.y(p[2].Y), unknownFill)
		fmt.Fprintf(w, `  <path d="M%s L%s M%s L%s" stroke="#000" stroke-width=".5"/>`+"\n",
			w.points(p[0:1]), w.points(p[2:3]), w.points(p[1:2]), w.points(p[3:4]))
	case hwwave.Midline:
		fmt.Fprintf(w, `  <polyline points="%s" fill="none" stroke="#000"/>`+"\n", w.points(e.Points))
	case hwwave.Label:
		w.text(w.x(e.At.X), w.y(e.At.Y), textSize, "middle", labelColor, "", e.Text)
	case hwwave.Mark:
		w.text(w.x(e.At.X), w.y(e.At.Y), nameSize, "middle", markColor, "bold", e.Text)
	}
}

// Save writes dr to the named SVG file.
//
func Save(name string, dr *hwwave.Drawing, opts Options) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "save svg")
	}
	defer func() {
		if e := f.Close(); err == nil && e != nil {
			err = errors.Wrap(e, "save svg")
		}
	}()
	return Write(f, dr, opts)
}
