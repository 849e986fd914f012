package vector

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/posterforge/pkg/poster"
	"github.com/matzehuels/posterforge/pkg/shape"
)

func TestCanvas(t *testing.T) {
	c := New(600, 800)
	bg, _ := colorful.Hex("#181024")
	c.FillBackground(bg)
	red, _ := colorful.Hex("#ff0000")
	c.FillPolygon([]shape.Point{{X: 0, Y: 0}, {X: 0.5, Y: 1}, {X: 1, Y: 0}}, red, 0.25)
	c.DrawText("A & B", shape.Point{X: 0.08, Y: 0.96}, 0.035, red)

	out := string(c.Bytes())
	for _, want := range []string{
		`width="600"`,
		`fill:#181024`,
		`M0.00 800.00L300.00 0.00L600.00 800.00Z`,
		`fill:#ff0000;fill-opacity:0.250;stroke:none`,
		`A &amp; B`,
		`font-size:28px`,
		`font-family:'Go'`,
		`</svg>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBytesIdempotent(t *testing.T) {
	c := New(10, 10)
	a := c.Bytes()
	b := c.Bytes()
	if !bytes.Equal(a, b) || strings.Count(string(b), "</svg>") != 1 {
		t.Error("Bytes should close the document exactly once")
	}
}

func TestRenderPoster(t *testing.T) {
	cfg := poster.DefaultConfig()
	cfg.LayerCount = 5

	c := New(cfg.CanvasSize[0], cfg.CanvasSize[1])
	if _, err := poster.Render(cfg, c); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(c.Bytes()), "<path"); n != 5 {
		t.Errorf("paths = %d, want 5", n)
	}
}
