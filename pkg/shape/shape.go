// Package shape generates the closed outlines that poster layers fill.
//
// Every shape is a sequence of vertices in unit-square coordinates with the
// y axis pointing up. The outline is implicitly closed: the last vertex
// connects back to the first. Generation is a pure function of the [Spec]
// and the random source, so equal seeds give equal vertex sequences.
//
// # Kinds
//
//   - [Blob]: a circle whose radius is perturbed per angle by wobble noise
//     and a sinusoidal lobing term, then stretched on each axis
//   - [Ellipse]: a blob with no wobble or lobing, only the axis stretch
//   - [Circle]: evenly spaced points on the base radius
//   - [Polygon]: a regular polygon with 3 to 12 sides
//   - [Star]: 5 to 8 points alternating outer and half-size inner radius
//
// Polygon and star vertex counts are drawn per shape and do not depend on
// PointCount.
package shape

import (
	"math"
	"math/rand/v2"
	"slices"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/posterforge/pkg/errors"
)

// Kind selects the outline family.
type Kind string

const (
	Blob    Kind = "blob"
	Ellipse Kind = "ellipse"
	Polygon Kind = "polygon"
	Star    Kind = "star"
	Circle  Kind = "circle"
)

// Point is a vertex in unit-square coordinates, y up.
type Point = r2.Vec

// Bounds on PointCount for sampled outlines.
const (
	MinPointCount = 3
	MaxPointCount = 4096
)

// Spec describes one shape.
type Spec struct {
	Kind            Kind
	Center          Point
	BaseRadius      float64
	PointCount      int     // Samples for blob, ellipse and circle
	Wobble          float64 // Per-vertex radial noise amplitude
	Irregularity    float64 // Sinusoidal lobing amplitude
	RotationDegrees float64 // Applied about Center when non-zero
	Symmetric       bool    // Petal outline instead of additive lobing
}

// Kinds returns all supported kinds in display order.
func Kinds() []Kind {
	return []Kind{Blob, Ellipse, Circle, Polygon, Star}
}

// ParseKind converts a user-supplied string into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Kinds(), k) {
		return "", errors.InvalidParameter("kind", s, "unknown shape kind")
	}
	return k, nil
}

// sampled reports whether the kind's vertex count comes from PointCount.
func (k Kind) sampled() bool {
	return k == Blob || k == Ellipse || k == Circle
}

// Generate produces the vertices of the shape described by spec.
func Generate(spec Spec, rng *rand.Rand) ([]Point, error) {
	gen, ok := generators[spec.Kind]
	if !ok {
		return nil, errors.InvalidParameter("kind", string(spec.Kind), "unknown shape kind")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	pts := gen(spec, rng)
	if spec.RotationDegrees != 0 {
		pts = Rotate(pts, spec.Center, spec.RotationDegrees)
	}
	return pts, nil
}

// Validate checks the numeric parameters of spec.
func (s Spec) Validate() error {
	if s.Kind.sampled() {
		if err := errors.RequireAtLeast("point_count", s.PointCount, MinPointCount); err != nil {
			return err
		}
		if err := errors.RequireAtMost("point_count", s.PointCount, MaxPointCount); err != nil {
			return err
		}
	}
	if err := errors.RequirePositive("base_radius", s.BaseRadius); err != nil {
		return err
	}
	if err := errors.RequireNonNegative("wobble", s.Wobble); err != nil {
		return err
	}
	if err := errors.RequireNonNegative("irregularity", s.Irregularity); err != nil {
		return err
	}
	if err := errors.RequireFinite("rotation_degrees", s.RotationDegrees); err != nil {
		return err
	}
	if !inUnit(s.Center.X) || !inUnit(s.Center.Y) {
		return errors.InvalidParameter("center", [2]float64{s.Center.X, s.Center.Y}, "must lie in [0, 1]²")
	}
	return nil
}

func inUnit(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
