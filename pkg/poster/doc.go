// Package poster composes palettes and shapes into layered posters.
//
// A poster is a background colour plus an ordered list of filled layers.
// Each layer is a closed outline from [shape.Generate] filled with one
// palette colour at a given opacity. Layers are painted in insertion order
// with alpha-over compositing and no stroke, so later layers overpaint
// earlier ones where they overlap.
//
// # Pipeline
//
// [Render] runs the whole synthesis for a [Config]:
//
//  1. seed one random source from Config.Seed
//  2. generate the palette
//  3. plan every layer (centre, radius, opacity, rotation, kind)
//  4. compose: per layer pick a colour, then generate the outline
//  5. paint onto a [Canvas]
//
// The random source is consumed in exactly that order, so the same Config
// always yields the same poster. Composition resolves every layer before
// anything is painted: a failing layer aborts the render and the canvas is
// never touched.
//
// # Drawing backends
//
// The package does not rasterize. Anything implementing [Canvas] can
// receive a poster; see the raster and vector packages under pkg/render.
// Canvases that also implement [Captioner] receive the optional title
// overlay.
//
// # Concurrency
//
// There is no package-level mutable state. Renders that own distinct
// random sources may run in parallel.
package poster
