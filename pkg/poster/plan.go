package poster

import (
	"math/rand/v2"

	"github.com/matzehuels/posterforge/pkg/errors"
	"github.com/matzehuels/posterforge/pkg/palette"
	"github.com/matzehuels/posterforge/pkg/shape"
)

// Plan draws the unresolved layers for cfg. Per layer, in order, it draws
// the centre x and y, the radius from RadiusRange, the opacity from
// AlphaRange, the rotation when RotationDegrees is unset, and the kind
// when more than one kind is allowed. Explicit overrides replace drawn
// values after the draws, so pinning a field never shifts the stream.
//
// The config must have been validated.
func Plan(cfg Config, rng *rand.Rand) []LayerSpec {
	n := cfg.NumLayers()
	specs := make([]LayerSpec, n)
	for i := range n {
		cx, cy := rng.Float64(), rng.Float64()
		radius := uniform(rng, cfg.RadiusRange)
		alpha := uniform(rng, cfg.AlphaRange)

		var rotation float64
		if cfg.RotationDegrees != nil {
			rotation = *cfg.RotationDegrees
		} else {
			rotation = rng.Float64() * 360
		}

		kind := cfg.ShapeKinds[0]
		if len(cfg.ShapeKinds) > 1 {
			kind = cfg.ShapeKinds[rng.IntN(len(cfg.ShapeKinds))]
		}

		spec := LayerSpec{
			Shape: shape.Spec{
				Kind:            kind,
				Center:          shape.Point{X: cx, Y: cy},
				BaseRadius:      radius,
				PointCount:      cfg.PointCount,
				Wobble:          cfg.Wobble,
				Irregularity:    cfg.Irregularity,
				RotationDegrees: rotation,
				Symmetric:       cfg.Symmetric,
			},
			Alpha: alpha,
		}
		if i < len(cfg.Layers) {
			cfg.Layers[i].apply(&spec)
		}
		specs[i] = spec
	}
	return specs
}

func (o LayerOverride) apply(spec *LayerSpec) {
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&spec.Shape.Center.X, o.X)
	set(&spec.Shape.Center.Y, o.Y)
	set(&spec.Shape.BaseRadius, o.Size)
	set(&spec.Shape.Wobble, o.Wobble)
	set(&spec.Shape.Irregularity, o.Irregularity)
	set(&spec.Shape.RotationDegrees, o.Rotation)
	set(&spec.Alpha, o.Alpha)
	if o.Kind != "" {
		spec.Shape.Kind = o.Kind
	}
}

// layerPalettes generates the palettes of layers whose override names a
// palette mode. Each comes from its own stream seeded by the poster seed
// and layer index, so the shared stream is untouched.
func layerPalettes(cfg Config, specs []LayerSpec) error {
	for i, o := range cfg.Layers {
		if o.PaletteMode == "" || i >= len(specs) {
			continue
		}
		// Custom posters skip the palette_size and base_hue checks.
		spec := palette.Spec{Mode: o.PaletteMode, Count: cfg.PaletteSize, BaseHue: cfg.BaseHue}
		if spec.Count < 1 || spec.Count > MaxPaletteSize {
			spec.Count = DefaultPaletteSize
		}
		if !(spec.BaseHue >= 0 && spec.BaseHue < 1) {
			spec.BaseHue = DefaultBaseHue
		}
		pal, err := palette.Generate(spec, NewRand(layerSeed(cfg.Seed, i)))
		if err != nil {
			return errors.Render(err, "layer %d", i)
		}
		specs[i].Palette = pal
	}
	return nil
}

func layerSeed(seed uint64, i int) uint64 {
	return seed ^ (uint64(i+1) * 0x9e3779b97f4a7c15)
}

func uniform(rng *rand.Rand, r [2]float64) float64 {
	return r[0] + rng.Float64()*(r[1]-r[0])
}
