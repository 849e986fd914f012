// Package vector paints posters as SVG documents.
package vector

import (
	"bytes"
	"fmt"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/posterforge/pkg/fonts"
	"github.com/matzehuels/posterforge/pkg/shape"
)

// Canvas is a poster.Canvas that writes SVG elements. Call Bytes once
// painting is done.
type Canvas struct {
	buf   bytes.Buffer
	doc   *svg.SVG
	w, h  int
	ended bool
}

// New starts an SVG document for a width x height poster.
func New(width, height int) *Canvas {
	c := &Canvas{w: width, h: height}
	c.doc = svg.New(&c.buf)
	c.doc.Start(width, height)
	return c
}

func (c *Canvas) px(p shape.Point) (float64, float64) {
	return p.X * float64(c.w), (1 - p.Y) * float64(c.h)
}

// FillBackground covers the document with a full-size rectangle.
func (c *Canvas) FillBackground(col colorful.Color) {
	c.doc.Rect(0, 0, c.w, c.h, "fill:"+col.Clamped().Hex())
}

// FillPolygon emits a closed path with no stroke.
func (c *Canvas) FillPolygon(pts []shape.Point, col colorful.Color, alpha float64) {
	if len(pts) < 3 {
		return
	}
	var d strings.Builder
	for i, p := range pts {
		x, y := c.px(p)
		if i == 0 {
			fmt.Fprintf(&d, "M%.2f %.2f", x, y)
		} else {
			fmt.Fprintf(&d, "L%.2f %.2f", x, y)
		}
	}
	d.WriteString("Z")
	c.doc.Path(d.String(), fmt.Sprintf("fill:%s;fill-opacity:%.3f;stroke:none", col.Clamped().Hex(), alpha))
}

// DrawText emits a bold text element in the caption font. Size is a fraction of the
// canvas height.
func (c *Canvas) DrawText(text string, at shape.Point, size float64, col colorful.Color) {
	x, y := c.px(at)
	fontPx := max(1, int(size*float64(c.h)+0.5))
	c.doc.Text(int(x+0.5), int(y+0.5), text,
		fmt.Sprintf("fill:%s;font-family:%s;font-weight:bold;font-size:%dpx", col.Clamped().Hex(), fonts.FallbackFontFamily, fontPx))
}

// Bytes closes the document and returns it.
func (c *Canvas) Bytes() []byte {
	if !c.ended {
		c.doc.End()
		c.ended = true
	}
	return c.buf.Bytes()
}
