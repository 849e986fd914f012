// Package render groups the drawing backends for posters.
//
// # Overview
//
// A poster is resolved once by the poster package and can then be painted
// onto any number of canvases. Two backends are provided:
//
//   - [raster]: anti-aliased RGBA image via gg, encoded as PNG
//   - [vector]: SVG document via svgo
//
// Both implement poster.Canvas and poster.Captioner, map the unit square
// (y up) to device coordinates (y down) and fill layers without stroke.
//
//	p, err := poster.Build(cfg)
//	c := raster.New(p.Width, p.Height, raster.WithScale(2))
//	p.Paint(c)
//	png, err := c.EncodePNG()
//
// [raster]: github.com/matzehuels/posterforge/pkg/render/raster
// [vector]: github.com/matzehuels/posterforge/pkg/render/vector
package render
