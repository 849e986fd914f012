package palette

import (
	"image"
	"image/color"
	"image/draw"
)

// DefaultTile is the swatch tile edge in pixels.
const DefaultTile = 64

// Swatch renders the palette as a horizontal strip of square tiles, one per
// colour, in palette order. A non-positive tile size selects DefaultTile.
// An empty palette yields a zero-sized image.
func Swatch(p Palette, tile int) *image.RGBA {
	if tile <= 0 {
		tile = DefaultTile
	}
	if len(p) == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	img := image.NewRGBA(image.Rect(0, 0, tile*len(p), tile))
	for i, c := range p {
		r, g, b := c.Clamped().RGB255()
		rect := image.Rect(i*tile, 0, (i+1)*tile, tile)
		draw.Draw(img, rect, &image.Uniform{C: color.RGBA{R: r, G: g, B: b, A: 255}}, image.Point{}, draw.Src)
	}
	return img
}
