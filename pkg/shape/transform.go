package shape

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Rotate returns a copy of pts rotated counter-clockwise by degrees about
// center. A zero angle returns an unchanged copy.
func Rotate(pts []Point, center Point, degrees float64) []Point {
	out := make([]Point, len(pts))
	if degrees == 0 {
		copy(out, pts)
		return out
	}
	alpha := degrees * math.Pi / 180
	for i, p := range pts {
		out[i] = r2.Rotate(p, alpha, center)
	}
	return out
}

// Radius returns the distance of p from center.
func Radius(p, center Point) float64 {
	return r2.Norm(r2.Sub(p, center))
}

// Bounds returns the axis-aligned bounding box of pts.
func Bounds(pts []Point) r2.Box {
	if len(pts) == 0 {
		return r2.Box{}
	}
	b := r2.Box{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}
