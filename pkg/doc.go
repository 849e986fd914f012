// Package pkg provides the core libraries for posterforge.
//
// # Overview
//
// posterforge layers randomized translucent shapes over a coloured
// background, taking colours from a generated palette. A poster is fully
// determined by its configuration and seed, so the same inputs always give
// the same pixels. The pkg directory is organized into three areas:
//
//  1. Core: [palette], [shape] and [poster] (pure, no I/O)
//  2. Output: [render/raster], [render/vector], [io]
//  3. Infrastructure: [pipeline], [cache], [gallery], [server], [observability]
//
// # Architecture
//
// The data flow through posterforge:
//
//	Config (TOML / YAML / JSON / flags)
//	         ↓
//	    [poster] package (draw palette, plan layers, compose)
//	         ↓
//	    [render] backends (paint onto a canvas)
//	         ↓
//	    PNG / SVG / JSON manifest / palette swatch
//
// # Quick Start
//
//	cfg := poster.DefaultConfig()
//	cfg.PaletteMode = palette.Vivid
//	cfg.Seed = 42
//
//	p, _ := poster.Build(cfg)
//	c := raster.New(p.Width, p.Height)
//	p.Paint(c)
//	png, _ := c.EncodePNG()
//
// # Main Packages
//
// ## Core
//
// [palette] - Palette generation in seven modes (pastel, vivid, mono,
// random, creative, cinematic, custom) and swatch images.
//
// [shape] - Closed outlines in the unit square: blobs, ellipses, circles,
// polygons and stars, plus rotation and bounds helpers.
//
// [poster] - The configuration, layer planning and composition. [poster.Build]
// consumes a single random stream in a fixed order.
//
// ## Output
//
// [render/raster] - Anti-aliased PNG output via gg.
//
// [render/vector] - SVG output via svgo.
//
// [io] - Config decoding, CSV colour tables, palette extraction from images
// and the JSON manifest writer.
//
// ## Infrastructure
//
// [pipeline] - Validation, hashing, caching and batch rendering shared by
// the CLI and the HTTP server.
//
// [cache] - Content-keyed artifact cache with file, Redis and null backends.
//
// [gallery] - Saved posters in memory, on disk or in MongoDB.
//
// [server] - HTTP API built on chi.
//
// [observability] - Hooks for render, cache and HTTP events.
//
// [errors] - Coded errors carrying the offending parameter.
//
// # Testing
//
//	go test ./pkg/...        # All tests
//	go test -run Example     # Examples only
//
// [palette]: https://pkg.go.dev/github.com/matzehuels/posterforge/pkg/palette
// [shape]: https://pkg.go.dev/github.com/matzehuels/posterforge/pkg/shape
// [poster]: https://pkg.go.dev/github.com/matzehuels/posterforge/pkg/poster
// [poster.Build]: https://pkg.go.dev/github.com/matzehuels/posterforge/pkg/poster#Build
// [render/raster]: https://pkg.go.dev/github.com/matzehuels/posterforge/pkg/render/raster
// [render/vector]: https://pkg.go.dev/github.com/matzehuels/posterforge/pkg/render/vector
// [io]: https://pkg.go.dev/github.com/matzehuels/posterforge/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/posterforge/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/posterforge/pkg/cache
// [gallery]: https://pkg.go.dev/github.com/matzehuels/posterforge/pkg/gallery
// [server]: https://pkg.go.dev/github.com/matzehuels/posterforge/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/posterforge/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/posterforge/pkg/errors
package pkg
