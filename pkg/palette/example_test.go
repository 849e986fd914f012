package palette_test

import (
	"fmt"
	"math/rand/v2"

	"github.com/matzehuels/posterforge/pkg/palette"
)

func ExampleGenerate() {
	rng := rand.New(rand.NewPCG(1234, 1234^0xdeadbeef))
	p, err := palette.Generate(palette.Spec{Mode: palette.Mono, Count: 4, BaseHue: 0.6}, rng)
	if err != nil {
		panic(err)
	}

	fmt.Println("Colours:", p.Len())
	for _, c := range p {
		h, _, _ := c.Hsv()
		fmt.Printf("  hue %.2f\n", h/360)
	}
	// Output:
	// Colours: 4
	//   hue 0.60
	//   hue 0.60
	//   hue 0.60
	//   hue 0.60
}

func ExampleGenerate_custom() {
	p, err := palette.Generate(palette.Spec{
		Mode:   palette.Custom,
		Custom: []palette.Triple{{R: 255, G: 204, B: 170}, {R: 24, G: 16, B: 36}},
	}, nil)
	if err != nil {
		panic(err)
	}
	fmt.Println(p.Hex())
	// Output: [#ffccaa #181024]
}
