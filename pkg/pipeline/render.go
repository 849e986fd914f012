package pipeline

import (
	"bytes"
	"fmt"
	"image/png"

	pio "github.com/matzehuels/posterforge/pkg/io"
	"github.com/matzehuels/posterforge/pkg/palette"
	"github.com/matzehuels/posterforge/pkg/poster"
	"github.com/matzehuels/posterforge/pkg/render/raster"
	"github.com/matzehuels/posterforge/pkg/render/vector"
)

// RenderPoster paints a resolved poster in each requested format.
func RenderPoster(p *poster.Poster, formats []string, scale float64) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))

	for _, format := range formats {
		data, err := renderFormat(p, format, scale)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(p *poster.Poster, format string, scale float64) ([]byte, error) {
	switch format {
	case FormatPNG:
		c := raster.New(p.Width, p.Height, raster.WithScale(scale))
		p.Paint(c)
		return c.EncodePNG()
	case FormatSVG:
		c := vector.New(p.Width, p.Height)
		p.Paint(c)
		return c.Bytes(), nil
	case FormatJSON:
		var buf bytes.Buffer
		if err := pio.WriteJSON(p.Manifest(), &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatPalette:
		return SwatchPNG(p.Palette)
	default:
		return nil, ValidateFormat(format)
	}
}

// SwatchPNG encodes a palette as a row of colour tiles.
func SwatchPNG(p palette.Palette) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, palette.Swatch(p, palette.DefaultTile)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
