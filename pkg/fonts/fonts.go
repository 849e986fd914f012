// Package fonts provides the caption typeface for the poster backends.
//
// The raster backend draws captions with the Go Regular TrueType font,
// which ships with golang.org/x/image and needs no files at runtime. The
// vector backend names the same family in CSS with portable fallbacks.
package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family name of the caption font.
const FontFamily = "Go"

// FallbackFontFamily lists substitutes for viewers without the Go fonts.
const FallbackFontFamily = "'" + FontFamily + "', 'Helvetica Neue', Arial, sans-serif"

// Parsed once on first access.
var (
	regular     *truetype.Font
	regularErr  error
	regularOnce sync.Once
)

// Regular returns the parsed caption font.
func Regular() (*truetype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = truetype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// Face returns a face whose em height is px pixels.
func Face(px float64) (font.Face, error) {
	f, err := Regular()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}
