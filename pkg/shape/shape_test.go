package shape

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/posterforge/pkg/errors"
)

const tol = 1e-9

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

func baseSpec(k Kind) Spec {
	return Spec{
		Kind:         k,
		Center:       r2.Vec{X: 0.5, Y: 0.5},
		BaseRadius:   0.3,
		PointCount:   220,
		Wobble:       1.1,
		Irregularity: 0.6,
	}
}

func TestGenerateDeterministic(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(string(k), func(t *testing.T) {
			spec := baseSpec(k)
			spec.RotationDegrees = 33
			a, err := Generate(spec, newRand(42))
			if err != nil {
				t.Fatal(err)
			}
			b, _ := Generate(spec, newRand(42))
			if len(a) != len(b) {
				t.Fatalf("len %d != %d", len(a), len(b))
			}
			for i := range a {
				if a[i] != b[i] {
					t.Fatalf("vertex %d differs: %v vs %v", i, a[i], b[i])
				}
			}
		})
	}
}

func TestBlobPointCount(t *testing.T) {
	for _, k := range []Kind{Blob, Ellipse, Circle} {
		pts, err := Generate(baseSpec(k), newRand(1))
		if err != nil {
			t.Fatal(err)
		}
		if len(pts) != 220 {
			t.Errorf("%s: %d vertices, want 220", k, len(pts))
		}
	}
}

func TestStar(t *testing.T) {
	for seed := range uint64(40) {
		spec := baseSpec(Star)
		pts, err := Generate(spec, newRand(seed))
		if err != nil {
			t.Fatal(err)
		}
		n := len(pts)
		if n%2 != 0 || n < 10 || n > 16 {
			t.Fatalf("seed %d: %d vertices, want 2n with n in [5,8]", seed, n)
		}
		for i, p := range pts {
			want := spec.BaseRadius
			if i%2 == 1 {
				want *= 0.5
			}
			if got := Radius(p, spec.Center); math.Abs(got-want) > tol {
				t.Errorf("seed %d vertex %d: radius %v, want %v", seed, i, got, want)
			}
		}
	}
}

func TestPolygonRegular(t *testing.T) {
	seen := map[int]bool{}
	for seed := range uint64(200) {
		spec := baseSpec(Polygon)
		spec.PointCount = 0
		pts, err := Generate(spec, newRand(seed))
		if err != nil {
			t.Fatal(err)
		}
		if len(pts) < 3 || len(pts) > 12 {
			t.Fatalf("seed %d: %d sides", seed, len(pts))
		}
		seen[len(pts)] = true
		for i, p := range pts {
			if got := Radius(p, spec.Center); math.Abs(got-spec.BaseRadius) > tol {
				t.Errorf("vertex %d: radius %v, want %v", i, got, spec.BaseRadius)
			}
		}
	}
	if !seen[3] || !seen[12] {
		t.Errorf("side counts seen %v, want both bounds", seen)
	}
}

func TestCircleConsumesNothing(t *testing.T) {
	rng := newRand(9)
	want := newRand(9).Uint64()
	if _, err := Generate(baseSpec(Circle), rng); err != nil {
		t.Fatal(err)
	}
	if rng.Uint64() != want {
		t.Error("circle should not draw from the random source")
	}
}

func TestSymmetricKeepsStreamLayout(t *testing.T) {
	a, b := newRand(11), newRand(11)
	plain := baseSpec(Blob)
	petal := plain
	petal.Symmetric = true

	if _, err := Generate(plain, a); err != nil {
		t.Fatal(err)
	}
	pts, err := Generate(petal, b)
	if err != nil {
		t.Fatal(err)
	}
	if a.Uint64() != b.Uint64() {
		t.Error("symmetric flag changed the number of draws")
	}
	for i, p := range pts {
		if r := Radius(p, petal.Center); r > petal.BaseRadius*1.2*1.3+tol {
			t.Fatalf("vertex %d: radius %v exceeds petal bound", i, r)
		}
	}
}

func TestEllipseIgnoresWobble(t *testing.T) {
	spec := baseSpec(Ellipse)
	a, _ := Generate(spec, newRand(5))
	spec.Wobble, spec.Irregularity = 0, 0
	b, _ := Generate(spec, newRand(5))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("vertex %d differs", i)
		}
	}
}

func TestRotateIdentities(t *testing.T) {
	pts, err := Generate(baseSpec(Blob), newRand(3))
	if err != nil {
		t.Fatal(err)
	}
	center := r2.Vec{X: 0.5, Y: 0.5}

	zero := Rotate(pts, center, 0)
	full := Rotate(pts, center, 360)
	for i := range pts {
		if zero[i] != pts[i] {
			t.Fatalf("0°: vertex %d moved", i)
		}
		if r2.Norm(r2.Sub(full[i], zero[i])) > tol {
			t.Fatalf("360°: vertex %d = %v, want %v", i, full[i], zero[i])
		}
	}

	quarter := Rotate([]Point{{X: 1, Y: 0.5}}, center, 90)
	if r2.Norm(r2.Sub(quarter[0], r2.Vec{X: 0.5, Y: 1})) > tol {
		t.Errorf("90° = %v, want (0.5, 1)", quarter[0])
	}
}

func TestGenerateAppliesRotation(t *testing.T) {
	spec := baseSpec(Star)
	plain, _ := Generate(spec, newRand(2))
	spec.RotationDegrees = 45
	rotated, _ := Generate(spec, newRand(2))
	want := Rotate(plain, spec.Center, 45)
	for i := range want {
		if r2.Norm(r2.Sub(rotated[i], want[i])) > tol {
			t.Fatalf("vertex %d = %v, want %v", i, rotated[i], want[i])
		}
	}
}

func TestGenerateValidation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Spec)
		param string
	}{
		{"point count 2", func(s *Spec) { s.PointCount = 2 }, "point_count"},
		{"point count huge", func(s *Spec) { s.PointCount = 1 << 50 }, "point_count"},
		{"zero radius", func(s *Spec) { s.BaseRadius = 0 }, "base_radius"},
		{"negative wobble", func(s *Spec) { s.Wobble = -0.1 }, "wobble"},
		{"negative irregularity", func(s *Spec) { s.Irregularity = -1 }, "irregularity"},
		{"center outside", func(s *Spec) { s.Center.X = 1.2 }, "center"},
		{"nan rotation", func(s *Spec) { s.RotationDegrees = math.NaN() }, "rotation_degrees"},
		{"unknown kind", func(s *Spec) { s.Kind = "heart" }, "kind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := baseSpec(Blob)
			tt.edit(&spec)
			pts, err := Generate(spec, newRand(1))
			if err == nil {
				t.Fatal("expected error")
			}
			if pts != nil {
				t.Error("no vertices expected on failure")
			}
			if !errors.Is(err, errors.ErrCodeInvalidParameter) {
				t.Errorf("code = %v", errors.GetCode(err))
			}
			if got := errors.Param(err); got != tt.param {
				t.Errorf("param = %q, want %q", got, tt.param)
			}
		})
	}
}

func TestPolygonIgnoresPointCount(t *testing.T) {
	spec := baseSpec(Star)
	spec.PointCount = 1
	if _, err := Generate(spec, newRand(1)); err != nil {
		t.Errorf("star should not validate point_count: %v", err)
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind(" Star"); err != nil || k != Star {
		t.Errorf("ParseKind(Star) = %q, %v", k, err)
	}
	if _, err := ParseKind("heart"); err == nil {
		t.Error("expected error")
	}
}

func TestBounds(t *testing.T) {
	b := Bounds([]Point{{X: 0.2, Y: 0.9}, {X: 0.7, Y: 0.1}, {X: 0.4, Y: 0.5}})
	if b.Min != (r2.Vec{X: 0.2, Y: 0.1}) || b.Max != (r2.Vec{X: 0.7, Y: 0.9}) {
		t.Errorf("Bounds = %v", b)
	}
}
