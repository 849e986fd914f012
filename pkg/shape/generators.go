package shape

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"
)

type generator func(spec Spec, rng *rand.Rand) []Point

var generators = map[Kind]generator{
	Blob:    blob,
	Ellipse: ellipse,
	Circle:  circle,
	Polygon: polygon,
	Star:    star,
}

// Sampling bounds for the randomized kinds.
const (
	minLobes    = 2
	maxLobes    = 6
	minStretch  = 0.7
	maxStretch  = 1.3
	petalGain   = 1.2
	starInner   = 0.5
	minSides    = 3
	maxSides    = 12
	minStarTips = 5
	maxStarTips = 8
)

// blob draws, in order: one wobble noise per vertex, the lobing frequency,
// the phase, then the x and y stretch. Symmetric outlines still draw the
// noise.
func blob(spec Spec, rng *rand.Rand) []Point {
	n := spec.PointCount
	noise := make([]float64, n)
	for i := range noise {
		noise[i] = rng.Float64()
	}
	f := float64(rng.IntN(maxLobes-minLobes+1) + minLobes)
	phi := rng.Float64() * 2 * math.Pi
	sx := minStretch + rng.Float64()*(maxStretch-minStretch)
	sy := minStretch + rng.Float64()*(maxStretch-minStretch)

	pts := make([]Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		lobe := math.Sin(a*f + phi)

		var r float64
		if spec.Symmetric {
			r = math.Abs(lobe) * spec.BaseRadius * petalGain
		} else {
			r = spec.BaseRadius * (1 + spec.Wobble*(noise[i]-0.5)) * (1 + spec.Irregularity*lobe)
		}
		pts[i] = r2.Add(spec.Center, r2.Vec{X: sx * r * math.Cos(a), Y: sy * r * math.Sin(a)})
	}
	return pts
}

func ellipse(spec Spec, rng *rand.Rand) []Point {
	spec.Wobble, spec.Irregularity, spec.Symmetric = 0, 0, false
	return blob(spec, rng)
}

func circle(spec Spec, _ *rand.Rand) []Point {
	return ring(spec.Center, spec.BaseRadius, spec.PointCount)
}

func polygon(spec Spec, rng *rand.Rand) []Point {
	sides := rng.IntN(maxSides-minSides+1) + minSides
	return ring(spec.Center, spec.BaseRadius, sides)
}

// star alternates outer and inner radius every half step.
func star(spec Spec, rng *rand.Rand) []Point {
	tips := rng.IntN(maxStarTips-minStarTips+1) + minStarTips
	pts := make([]Point, 2*tips)
	for i := range pts {
		r := spec.BaseRadius
		if i%2 == 1 {
			r *= starInner
		}
		a := float64(i) * math.Pi / float64(tips)
		pts[i] = r2.Add(spec.Center, r2.Vec{X: r * math.Cos(a), Y: r * math.Sin(a)})
	}
	return pts
}

// ring places n points evenly on a circle.
func ring(center Point, radius float64, n int) []Point {
	pts := make([]Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = r2.Add(center, r2.Vec{X: radius * math.Cos(a), Y: radius * math.Sin(a)})
	}
	return pts
}
