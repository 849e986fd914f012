package poster

import (
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/posterforge/pkg/errors"
	"github.com/matzehuels/posterforge/pkg/palette"
	"github.com/matzehuels/posterforge/pkg/shape"
)

// Canvas is the drawing capability a backend must provide.
// Coordinates are in the unit square with y pointing up.
type Canvas interface {
	FillBackground(c colorful.Color)
	FillPolygon(pts []shape.Point, c colorful.Color, alpha float64)
}

// Captioner is implemented by canvases that can draw text. Size is a
// fraction of the canvas height.
type Captioner interface {
	DrawText(text string, at shape.Point, size float64, c colorful.Color)
}

// ColorPick selects how each layer takes its colour from the palette.
type ColorPick string

const (
	// PickRandom chooses a palette entry uniformly, one draw per layer.
	PickRandom ColorPick = "random"
	// PickRoundRobin gives layer i palette entry i mod len, with no draw.
	PickRoundRobin ColorPick = "round-robin"
)

// LayerSpec is an unresolved layer. A non-nil Palette replaces the poster
// palette for this layer's colour pick.
type LayerSpec struct {
	Shape   shape.Spec
	Alpha   float64
	Palette palette.Palette
}

// Layer is a resolved, paintable layer.
type Layer struct {
	Kind   shape.Kind
	Points []shape.Point
	Color  colorful.Color
	Alpha  float64
}

// Poster is a fully resolved composition.
type Poster struct {
	Background colorful.Color
	Width      int
	Height     int
	Layers     []Layer
	Palette    palette.Palette
	Caption    *Caption
}

// ComposeOptions carries the poster-wide settings for Compose.
type ComposeOptions struct {
	Pick       ColorPick
	Background colorful.Color
	Width      int
	Height     int
	Caption    *Caption
}

// Compose resolves layers in order against pal. For each layer it picks a
// colour and then generates the outline. The first failing layer aborts
// composition with a RENDER_ERROR naming the layer index and wrapping the
// cause; no poster is returned.
func Compose(layers []LayerSpec, pal palette.Palette, opts ComposeOptions, rng *rand.Rand) (*Poster, error) {
	if len(layers) > 0 && len(pal) == 0 {
		return nil, errors.Configuration("palette", "palette is empty")
	}

	p := &Poster{
		Background: opts.Background,
		Width:      opts.Width,
		Height:     opts.Height,
		Layers:     make([]Layer, 0, len(layers)),
		Palette:    pal,
		Caption:    opts.Caption,
	}
	for i, ls := range layers {
		if !(ls.Alpha > 0 && ls.Alpha <= 1) {
			return nil, errors.Render(errors.InvalidParameter("alpha", ls.Alpha, "must be in (0, 1]"), "layer %d", i)
		}
		src := pal
		if len(ls.Palette) > 0 {
			src = ls.Palette
		}
		c := pickColor(src, i, opts.Pick, rng)
		pts, err := shape.Generate(ls.Shape, rng)
		if err != nil {
			return nil, errors.Render(err, "layer %d", i)
		}
		p.Layers = append(p.Layers, Layer{Kind: ls.Shape.Kind, Points: pts, Color: c, Alpha: ls.Alpha})
	}
	return p, nil
}

func pickColor(pal palette.Palette, i int, pick ColorPick, rng *rand.Rand) colorful.Color {
	if pick == PickRoundRobin {
		return pal.At(i)
	}
	return pal[rng.IntN(len(pal))]
}

// Paint draws the poster: background once, then each layer in order, then
// the caption if both the poster and the canvas support one.
func (p *Poster) Paint(c Canvas) {
	c.FillBackground(p.Background)
	for _, l := range p.Layers {
		c.FillPolygon(l.Points, l.Color, l.Alpha)
	}
	if cp, ok := c.(Captioner); ok && p.Caption != nil {
		p.Caption.draw(cp)
	}
}
