package poster

import (
	"math/rand/v2"

	"github.com/matzehuels/posterforge/pkg/palette"
)

// NewRand returns the random source a render with the given seed uses.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Build resolves cfg into a poster without painting it. Defaults are
// applied to a copy of cfg before validation.
func Build(cfg Config) (*Poster, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := NewRand(cfg.Seed)
	pal, err := palette.Generate(cfg.PaletteSpec(), rng)
	if err != nil {
		return nil, err
	}
	specs := Plan(cfg, rng)
	if err := layerPalettes(cfg, specs); err != nil {
		return nil, err
	}
	return Compose(specs, pal, cfg.ComposeOptions(), rng)
}

// Render builds the poster for cfg and paints it onto c. On error c is
// left untouched.
func Render(cfg Config, c Canvas) (*Poster, error) {
	p, err := Build(cfg)
	if err != nil {
		return nil, err
	}
	p.Paint(c)
	return p, nil
}
