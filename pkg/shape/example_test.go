package shape_test

import (
	"fmt"
	"math/rand/v2"

	"github.com/matzehuels/posterforge/pkg/shape"
)

func ExampleGenerate() {
	spec := shape.Spec{
		Kind:       shape.Circle,
		Center:     shape.Point{X: 0.5, Y: 0.5},
		BaseRadius: 0.3,
		PointCount: 4,
	}
	pts, err := shape.Generate(spec, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		panic(err)
	}
	for _, p := range pts {
		fmt.Printf("(%.2f, %.2f)\n", p.X, p.Y)
	}
	// Output:
	// (0.80, 0.50)
	// (0.50, 0.80)
	// (0.20, 0.50)
	// (0.50, 0.20)
}

func ExampleRotate() {
	pts := []shape.Point{{X: 0.8, Y: 0.5}}
	out := shape.Rotate(pts, shape.Point{X: 0.5, Y: 0.5}, 180)
	fmt.Printf("(%.2f, %.2f)\n", out[0].X, out[0].Y)
	// Output: (0.20, 0.50)
}
