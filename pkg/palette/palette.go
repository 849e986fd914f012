// Package palette generates the colour palettes posters draw from.
//
// A palette is an ordered list of colours with RGB channels in [0,1]. Except
// for [Custom], every mode synthesizes colours by drawing hue, saturation
// and value from a restricted HSV box and converting to RGB, so the same
// [Spec] and the same random source always produce the same palette.
//
// # Random consumption
//
// For each colour, in palette order, the generator draws hue (unless the
// mode fixes it), then saturation, then value. [Creative] draws its base
// hue once before the first colour. [Custom] consumes nothing.
//
// # Usage
//
//	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
//	p, err := palette.Generate(palette.Spec{Mode: palette.Mono, Count: 4, BaseHue: 0.6}, rng)
package palette

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/posterforge/pkg/errors"
)

// Mode selects how palette colours are produced.
type Mode string

const (
	Pastel    Mode = "pastel"
	Vivid     Mode = "vivid"
	Mono      Mode = "mono"
	Random    Mode = "random"
	Custom    Mode = "custom"
	Creative  Mode = "creative"
	Cinematic Mode = "cinematic"
)

// DefaultCount is the palette size used when a caller leaves Count unset.
const DefaultCount = 6

// MaxCount bounds the number of colours a generated palette may hold.
const MaxCount = 256

// Triple is an externally supplied colour with channels in [0,255].
type Triple struct {
	R float64 `json:"r" toml:"r" yaml:"r"`
	G float64 `json:"g" toml:"g" yaml:"g"`
	B float64 `json:"b" toml:"b" yaml:"b"`
}

// Spec describes the palette to generate.
type Spec struct {
	Mode    Mode     // Generation mode
	Count   int      // Number of colours (ignored by Custom)
	BaseHue float64  // Hue in [0,1), used only by Mono
	Custom  []Triple // Colour table, used only by Custom
}

// Palette is an ordered sequence of colours with channels in [0,1].
type Palette []colorful.Color

// Len returns the number of colours.
func (p Palette) Len() int { return len(p) }

// At returns colour i, wrapping around the palette length.
func (p Palette) At(i int) colorful.Color {
	return p[i%len(p)]
}

// Hex returns the colours as "#rrggbb" strings.
func (p Palette) Hex() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Clamped().Hex()
	}
	return out
}

// FromHex parses "#rrggbb" strings back into a palette.
func FromHex(hexes []string) (Palette, error) {
	p := make(Palette, 0, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, errors.InvalidParameter("palette", hexes[i], "not a #rrggbb colour")
		}
		p = append(p, c)
	}
	return p, nil
}

// Modes returns all supported modes in display order.
func Modes() []Mode {
	return []Mode{Pastel, Vivid, Mono, Random, Creative, Cinematic, Custom}
}

// ParseMode converts a user-supplied string into a Mode.
// The legacy name "csv" is accepted as an alias for Custom.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m == "csv" {
		return Custom, nil
	}
	if !slices.Contains(Modes(), m) {
		return "", errors.InvalidParameter("palette_mode", s, "unknown palette mode")
	}
	return m, nil
}

// Generate produces the palette described by spec using rng.
// It is a pure function of spec and the state of rng.
func Generate(spec Spec, rng *rand.Rand) (Palette, error) {
	if spec.Mode == Custom {
		return fromTable(spec.Custom)
	}

	gen, ok := generators[spec.Mode]
	if !ok {
		return nil, errors.InvalidParameter("mode", string(spec.Mode), "unknown palette mode")
	}
	if err := errors.RequireAtLeast("count", spec.Count, 1); err != nil {
		return nil, err
	}
	if err := errors.RequireAtMost("count", spec.Count, MaxCount); err != nil {
		return nil, err
	}
	if spec.Mode == Mono {
		if err := errors.RequireHalfOpen("base_hue", spec.BaseHue, 0, 1); err != nil {
			return nil, err
		}
	}

	p := make(Palette, 0, spec.Count)
	next := gen(spec, rng)
	for i := range spec.Count {
		p = append(p, next(i).Clamped())
	}
	return p, nil
}

// fromTable validates an external colour table and rescales it to [0,1].
func fromTable(table []Triple) (Palette, error) {
	if len(table) == 0 {
		return nil, errors.Configuration("custom", "custom palette requested without a colour table")
	}
	p := make(Palette, 0, len(table))
	for i, t := range table {
		for _, ch := range []struct {
			name string
			v    float64
		}{{"r", t.R}, {"g", t.G}, {"b", t.B}} {
			if err := errors.RequireRange("", ch.v, 0, 255); err != nil {
				return nil, errors.InvalidParameter(customParam(i, ch.name), ch.v, "channel must be in [0, 255]")
			}
		}
		p = append(p, colorful.Color{R: t.R / 255, G: t.G / 255, B: t.B / 255})
	}
	return p, nil
}

func customParam(i int, channel string) string {
	return fmt.Sprintf("custom[%d].%s", i, channel)
}
