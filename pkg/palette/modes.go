package palette

import (
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// generator prepares a per-colour function for one palette. Any draws shared
// by the whole palette happen when the generator is called, before colour 0.
type generator func(spec Spec, rng *rand.Rand) func(i int) colorful.Color

// hsvBox is a restricted HSV sampling region. Hue bounds are in [0,1).
type hsvBox struct {
	h, s, v [2]float64
}

var (
	pastelBox = hsvBox{h: [2]float64{0, 1}, s: [2]float64{0.15, 0.35}, v: [2]float64{0.9, 1.0}}
	vividBox  = hsvBox{h: [2]float64{0, 1}, s: [2]float64{0.8, 1.0}, v: [2]float64{0.8, 1.0}}
	randomBox = hsvBox{h: [2]float64{0, 1}, s: [2]float64{0.3, 1.0}, v: [2]float64{0.5, 1.0}}

	monoSV     = hsvBox{s: [2]float64{0.2, 0.6}, v: [2]float64{0.5, 1.0}}
	creativeSV = hsvBox{s: [2]float64{0.5, 0.9}, v: [2]float64{0.7, 1.0}}
	warmBox    = hsvBox{h: [2]float64{0.05, 0.12}, s: [2]float64{0.7, 0.9}, v: [2]float64{0.7, 1.0}}
	tealBox    = hsvBox{h: [2]float64{0.5, 0.65}, s: [2]float64{0.4, 0.7}, v: [2]float64{0.5, 0.9}}
)

var generators = map[Mode]generator{
	Pastel:    boxed(pastelBox),
	Vivid:     boxed(vividBox),
	Random:    boxed(randomBox),
	Mono:      mono,
	Creative:  creative,
	Cinematic: cinematic,
}

func boxed(box hsvBox) generator {
	return func(_ Spec, rng *rand.Rand) func(int) colorful.Color {
		return func(int) colorful.Color {
			h := uniform(rng, box.h)
			return hsv(h, uniform(rng, box.s), uniform(rng, box.v))
		}
	}
}

func mono(spec Spec, rng *rand.Rand) func(int) colorful.Color {
	return func(int) colorful.Color {
		return hsv(spec.BaseHue, uniform(rng, monoSV.s), uniform(rng, monoSV.v))
	}
}

// creative alternates between a drifting base hue and its complement.
func creative(_ Spec, rng *rand.Rand) func(int) colorful.Color {
	base := rng.Float64()
	return func(i int) colorful.Color {
		var h float64
		if i%2 == 0 {
			h = base + float64(i)*0.1
		} else {
			h = base + 0.5 + float64(i)*0.05
		}
		h -= math.Floor(h)
		return hsv(h, uniform(rng, creativeSV.s), uniform(rng, creativeSV.v))
	}
}

// cinematic alternates warm orange and teal tones.
func cinematic(_ Spec, rng *rand.Rand) func(int) colorful.Color {
	return func(i int) colorful.Color {
		box := warmBox
		if i%2 == 1 {
			box = tealBox
		}
		h := uniform(rng, box.h)
		return hsv(h, uniform(rng, box.s), uniform(rng, box.v))
	}
}

func uniform(rng *rand.Rand, r [2]float64) float64 {
	return r[0] + rng.Float64()*(r[1]-r[0])
}

// hsv converts a unit hue plus saturation and value into RGB.
func hsv(h, s, v float64) colorful.Color {
	return colorful.Hsv(h*360, s, v)
}
