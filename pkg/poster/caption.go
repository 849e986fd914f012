package poster

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/posterforge/pkg/shape"
)

// Caption is the optional title overlay.
type Caption struct {
	Title    string `json:"title" toml:"title" yaml:"title"`
	Subtitle string `json:"subtitle,omitempty" toml:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Color    string `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty"` // "#rrggbb"
}

// Caption placement and sizes, as fractions of the canvas.
const (
	DefaultCaptionColor = "#ffccaa"
	TitleSize           = 0.035
	SubtitleSize        = 0.02
)

var (
	titleAt    = shape.Point{X: 0.08, Y: 0.96}
	subtitleAt = shape.Point{X: 0.1, Y: 0.91}
)

func (c *Caption) color() colorful.Color {
	hex := c.Color
	if hex == "" {
		hex = DefaultCaptionColor
	}
	col, err := colorful.Hex(hex)
	if err != nil {
		col, _ = colorful.Hex(DefaultCaptionColor)
	}
	return col
}

func (c *Caption) draw(cp Captioner) {
	col := c.color()
	if c.Title != "" {
		cp.DrawText(c.Title, titleAt, TitleSize, col)
	}
	if c.Subtitle != "" {
		cp.DrawText(c.Subtitle, subtitleAt, SubtitleSize, col)
	}
}
