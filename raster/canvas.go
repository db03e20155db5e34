// Copyright 2026 The hwwave Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	regular = mustParse(goregular.TTF)
	bold    = mustParse(gobold.TTF)
)

func mustParse(ttf []byte) *opentype.Font {
	f, err := opentype.Parse(ttf)
	if err != nil {
		panic(err)
	}
	return f
}

// Font sizes in points.
//
const (
	textSize  = 9
	nameSize  = 11
	titleSize = 16
)

type faces struct {
	text, name, title font.Face
}

func newFace(f *opentype.Font, size, dpi float64) font.Face {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		panic(err)
	}
	return face
}

func newFaces(dpi float64) *faces {
	return &faces{
		text:  newFace(regular, textSize, dpi),
		name:  newFace(bold, nameSize, dpi),
		title: newFace(bold, titleSize, dpi),
	}
}

func (fc *faces) Close() {
	fc.text.Close()
	fc.name.Close()
	fc.title.Close()
}

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

// pt is a point in pixels, y pointing down.
//
type pt struct{ x, y float64 }

// canvas wraps an image and a graphic context drawing on it.
//
type canvas struct {
	img *image.RGBA
	gc  *drawing.RasterGraphicContext
}

func newCanvas(w, h int) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	gc, err := drawing.NewRasterGraphicContext(img)
	if err != nil {
		// only fails for non RGBA images
		panic(err)
	}
	gc.SetLineJoin(drawing.MiterJoin)
	return &canvas{img: img, gc: gc}
}

func (c *canvas) path(pts []pt, closed bool) {
	c.gc.BeginPath()
	c.gc.MoveTo(pts[0].x, pts[0].y)
	for _, p := range pts[1:] {
		c.gc.LineTo(p.x, p.y)
	}
	if closed {
		c.gc.Close()
	}
}

// fill fills the closed polygon pts.
//
func (c *canvas) fill(col color.Color, pts []pt) {
	if len(pts) < 3 {
		return
	}
	c.path(pts, true)
	c.gc.SetFillColor(col)
	c.gc.Fill()
}

// stroke draws the polyline pts.
//
func (c *canvas) stroke(col color.Color, width float64, pts []pt, closed bool) {
	if len(pts) < 2 {
		return
	}
	c.path(pts, closed)
	c.gc.SetStrokeColor(col)
	c.gc.SetLineWidth(width)
	c.gc.SetLineDash(nil, 0)
	c.gc.Stroke()
}

// dashed draws a dashed line from p to q.
//
func (c *canvas) dashed(col color.Color, width float64, p, q pt, on, off float64) {
	c.path([]pt{p, q}, false)
	c.gc.SetStrokeColor(col)
	c.gc.SetLineWidth(width)
	c.gc.SetLineDash([]float64{on, off}, 0)
	c.gc.Stroke()
	c.gc.SetLineDash(nil, 0)
}

// text draws s vertically centered on y.
//
func (c *canvas) text(face font.Face, col color.Color, s string, x, y float64, a align) {
	if s == "" {
		return
	}
	m := face.Metrics()
	dot := fixed.Point26_6{
		X: fixed.Int26_6(math.Round(x * 64)),
		Y: fixed.Int26_6(math.Round(y*64)) + (m.Ascent-m.Descent)/2,
	}
	switch a {
	case alignCenter:
		dot.X -= font.MeasureString(face, s) / 2
	case alignRight:
		dot.X -= font.MeasureString(face, s)
	}
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  dot,
	}
	d.DrawString(s)
}
