// Package raster paints posters into an anti-aliased RGBA image.
//
// [Canvas] maps the unit square (y up) onto a pixel grid (y down) and fills
// polygons with source-over alpha compositing and no stroke. Captions use
// the Go Regular face from the fonts package, falling back to the 7x13
// bitmap face scaled to the requested height.
package raster

import (
	"bytes"
	"image"
	"math"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/posterforge/pkg/fonts"
	"github.com/matzehuels/posterforge/pkg/shape"
)

// Option configures a Canvas.
type Option func(*Canvas)

// WithScale multiplies the pixel dimensions (2.0 renders at 2x).
func WithScale(s float64) Option {
	return func(c *Canvas) {
		if s > 0 {
			c.scale = s
		}
	}
}

// Canvas is a poster.Canvas backed by a gg context.
type Canvas struct {
	ctx   *gg.Context
	scale float64
	w, h  float64
}

// New returns a canvas for a width x height poster.
func New(width, height int, opts ...Option) *Canvas {
	c := &Canvas{scale: 1}
	for _, opt := range opts {
		opt(c)
	}
	pw := max(1, int(math.Round(float64(width)*c.scale)))
	ph := max(1, int(math.Round(float64(height)*c.scale)))
	c.ctx = gg.NewContext(pw, ph)
	c.w, c.h = float64(pw), float64(ph)
	return c
}

func (c *Canvas) px(p shape.Point) (float64, float64) {
	return p.X * c.w, (1 - p.Y) * c.h
}

// FillBackground floods the whole canvas with col.
func (c *Canvas) FillBackground(col colorful.Color) {
	col = col.Clamped()
	c.ctx.SetRGB(col.R, col.G, col.B)
	c.ctx.Clear()
}

// FillPolygon fills the closed outline pts with col at the given opacity.
func (c *Canvas) FillPolygon(pts []shape.Point, col colorful.Color, alpha float64) {
	if len(pts) < 3 {
		return
	}
	col = col.Clamped()
	c.ctx.NewSubPath()
	c.ctx.MoveTo(c.px(pts[0]))
	for _, p := range pts[1:] {
		c.ctx.LineTo(c.px(p))
	}
	c.ctx.ClosePath()
	c.ctx.SetRGBA(col.R, col.G, col.B, alpha)
	c.ctx.Fill()
}

// DrawText draws text with its baseline starting at at. Size is a fraction
// of the canvas height.
func (c *Canvas) DrawText(text string, at shape.Point, size float64, col colorful.Color) {
	x, y := c.px(at)
	col = col.Clamped()

	c.ctx.Push()
	defer c.ctx.Pop()
	c.ctx.SetRGB(col.R, col.G, col.B)

	if face, err := fonts.Face(size * c.h); err == nil {
		c.ctx.SetFontFace(face)
		c.ctx.DrawString(text, x, y)
		return
	}

	face := basicfont.Face7x13
	s := size * c.h / float64(face.Height)
	c.ctx.SetFontFace(face)
	c.ctx.ScaleAbout(s, s, x, y)
	c.ctx.DrawString(text, x, y)
}

// Image returns the rendered image.
func (c *Canvas) Image() image.Image {
	return c.ctx.Image()
}

// EncodePNG returns the canvas as PNG bytes.
func (c *Canvas) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.ctx.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
