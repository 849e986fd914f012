package poster

import "github.com/matzehuels/posterforge/pkg/shape"

// Manifest is the JSON description of a resolved poster: the realized
// palette and per-layer metadata, without vertex data.
type Manifest struct {
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Background string          `json:"background"`
	Palette    []string        `json:"palette"`
	Layers     []LayerManifest `json:"layers"`
}

// LayerManifest summarizes one layer.
type LayerManifest struct {
	Kind     shape.Kind `json:"kind"`
	Color    string     `json:"color"`
	Alpha    float64    `json:"alpha"`
	Vertices int        `json:"vertices"`
	Bounds   [4]float64 `json:"bounds"` // min x, min y, max x, max y
}

// Manifest returns the poster's JSON description.
func (p *Poster) Manifest() Manifest {
	m := Manifest{
		Width:      p.Width,
		Height:     p.Height,
		Background: p.Background.Clamped().Hex(),
		Palette:    p.Palette.Hex(),
		Layers:     make([]LayerManifest, len(p.Layers)),
	}
	for i, l := range p.Layers {
		b := shape.Bounds(l.Points)
		m.Layers[i] = LayerManifest{
			Kind:     l.Kind,
			Color:    l.Color.Clamped().Hex(),
			Alpha:    l.Alpha,
			Vertices: len(l.Points),
			Bounds:   [4]float64{b.Min.X, b.Min.Y, b.Max.X, b.Max.Y},
		}
	}
	return m
}
