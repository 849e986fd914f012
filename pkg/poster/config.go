package poster

import (
	"fmt"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/posterforge/pkg/errors"
	"github.com/matzehuels/posterforge/pkg/palette"
	"github.com/matzehuels/posterforge/pkg/shape"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	DefaultLayerCount   = 8
	DefaultPaletteMode  = palette.Pastel
	DefaultPaletteSize  = palette.DefaultCount
	DefaultBaseHue      = 0.6
	DefaultSeed         = uint64(1234)
	DefaultPointCount   = 220
	DefaultWobble       = 1.1
	DefaultIrregularity = 0.6
	DefaultBackground   = "#181024"
	DefaultWidth        = 600
	DefaultHeight       = 800
	DefaultColorPick    = PickRandom

	// MaxCanvasEdge bounds each canvas dimension in pixels.
	MaxCanvasEdge = 8192

	MaxLayerCount  = 500
	MaxPaletteSize = palette.MaxCount
	MaxPointCount  = shape.MaxPointCount
)

var (
	DefaultRadiusRange = [2]float64{0.15, 0.45}
	DefaultAlphaRange  = [2]float64{0.3, 0.6}
)

// =============================================================================
// Config - Poster Configuration
// =============================================================================

// Config holds every style parameter of a poster. It is loaded from TOML,
// YAML or JSON files, decoded from API requests and filled from CLI flags.
type Config struct {
	LayerCount   int          `json:"layer_count" toml:"layer_count" yaml:"layer_count"`
	PaletteMode  palette.Mode `json:"palette_mode" toml:"palette_mode" yaml:"palette_mode"`
	PaletteSize  int          `json:"palette_size" toml:"palette_size" yaml:"palette_size"`
	BaseHue      float64      `json:"base_hue" toml:"base_hue" yaml:"base_hue"`
	Seed         uint64       `json:"seed" toml:"seed" yaml:"seed"`
	PointCount   int          `json:"point_count" toml:"point_count" yaml:"point_count"`
	Wobble       float64      `json:"wobble" toml:"wobble" yaml:"wobble"`
	Irregularity float64      `json:"irregularity" toml:"irregularity" yaml:"irregularity"`
	RadiusRange  [2]float64   `json:"radius_range" toml:"radius_range" yaml:"radius_range"`
	AlphaRange   [2]float64   `json:"alpha_range" toml:"alpha_range" yaml:"alpha_range"`
	Symmetric    bool         `json:"symmetric" toml:"symmetric" yaml:"symmetric"`
	ShapeKinds   []shape.Kind `json:"shape_kinds" toml:"shape_kinds" yaml:"shape_kinds"`
	Background   string       `json:"background" toml:"background" yaml:"background"`
	CanvasSize   [2]int       `json:"canvas_size" toml:"canvas_size" yaml:"canvas_size"`
	ColorPick    ColorPick    `json:"color_pick" toml:"color_pick" yaml:"color_pick"`

	// RotationDegrees applies to every shape when set; when nil each shape
	// draws its own rotation from [0, 360).
	RotationDegrees *float64 `json:"rotation_degrees,omitempty" toml:"rotation_degrees,omitempty" yaml:"rotation_degrees,omitempty"`

	CustomPalette []palette.Triple `json:"custom_palette,omitempty" toml:"custom_palette,omitempty" yaml:"custom_palette,omitempty"`
	Caption       *Caption         `json:"caption,omitempty" toml:"caption,omitempty" yaml:"caption,omitempty"`
	Layers        []LayerOverride  `json:"layers,omitempty" toml:"layers,omitempty" yaml:"layers,omitempty"`
}

// LayerOverride pins individual values of one planned layer. Unset fields
// keep the planned value.
type LayerOverride struct {
	X            *float64   `json:"x,omitempty" toml:"x,omitempty" yaml:"x,omitempty"`
	Y            *float64   `json:"y,omitempty" toml:"y,omitempty" yaml:"y,omitempty"`
	Size         *float64   `json:"size,omitempty" toml:"size,omitempty" yaml:"size,omitempty"`
	Wobble       *float64   `json:"wobble,omitempty" toml:"wobble,omitempty" yaml:"wobble,omitempty"`
	Irregularity *float64   `json:"irregularity,omitempty" toml:"irregularity,omitempty" yaml:"irregularity,omitempty"`
	Alpha        *float64   `json:"alpha,omitempty" toml:"alpha,omitempty" yaml:"alpha,omitempty"`
	Rotation     *float64   `json:"rotation,omitempty" toml:"rotation,omitempty" yaml:"rotation,omitempty"`
	Kind         shape.Kind `json:"kind,omitempty" toml:"kind,omitempty" yaml:"kind,omitempty"`

	// PaletteMode gives the layer its own palette of PaletteSize colours,
	// drawn from a per-layer stream. Custom is not allowed here.
	PaletteMode palette.Mode `json:"palette_mode,omitempty" toml:"palette_mode,omitempty" yaml:"palette_mode,omitempty"`
}

// DefaultConfig returns a Config with every field at its default. Decoders
// start from it so that absent keys keep their defaults while explicit
// zeros (layer_count = 0, wobble = 0) survive.
func DefaultConfig() Config {
	return Config{
		LayerCount:   DefaultLayerCount,
		PaletteMode:  DefaultPaletteMode,
		PaletteSize:  DefaultPaletteSize,
		BaseHue:      DefaultBaseHue,
		Seed:         DefaultSeed,
		PointCount:   DefaultPointCount,
		Wobble:       DefaultWobble,
		Irregularity: DefaultIrregularity,
		RadiusRange:  DefaultRadiusRange,
		AlphaRange:   DefaultAlphaRange,
		ShapeKinds:   []shape.Kind{shape.Blob},
		Background:   DefaultBackground,
		CanvasSize:   [2]int{DefaultWidth, DefaultHeight},
		ColorPick:    DefaultColorPick,
	}
}

// Normalize canonicalizes the palette mode name and fills the string and
// list fields an absent value leaves empty. Numeric fields are left as
// they are, so explicit zeros reach Validate. Decoders call Normalize
// rather than SetDefaults because they start from DefaultConfig.
func (c *Config) Normalize() {
	if c.PaletteMode == "" {
		c.PaletteMode = DefaultPaletteMode
	}
	if m, err := palette.ParseMode(string(c.PaletteMode)); err == nil {
		c.PaletteMode = m
	}
	if c.ShapeKinds == nil {
		c.ShapeKinds = []shape.Kind{shape.Blob}
	}
	if c.Background == "" {
		c.Background = DefaultBackground
	}
	if c.ColorPick == "" {
		c.ColorPick = DefaultColorPick
	}
	for i := range c.Layers {
		if m, err := palette.ParseMode(string(c.Layers[i].PaletteMode)); err == nil {
			c.Layers[i].PaletteMode = m
		}
	}
}

// SetDefaults normalizes c and fills numeric fields whose zero value is
// never valid. It serves configs built as Go literals, where unset and
// zero are indistinguishable. It is idempotent.
func (c *Config) SetDefaults() {
	c.Normalize()
	if c.PaletteSize == 0 {
		c.PaletteSize = DefaultPaletteSize
	}
	if c.PointCount == 0 {
		c.PointCount = DefaultPointCount
	}
	if c.RadiusRange == [2]float64{} {
		c.RadiusRange = DefaultRadiusRange
	}
	if c.AlphaRange == [2]float64{} {
		c.AlphaRange = DefaultAlphaRange
	}
	if c.CanvasSize == [2]int{} {
		c.CanvasSize = [2]int{DefaultWidth, DefaultHeight}
	}
}

// Validate checks every field and reports the first offending parameter.
func (c *Config) Validate() error {
	if err := errors.RequireAtLeast("layer_count", c.LayerCount, 0); err != nil {
		return err
	}
	if err := errors.RequireAtMost("layer_count", c.LayerCount, MaxLayerCount); err != nil {
		return err
	}
	if err := errors.RequireAtMost("layers", len(c.Layers), MaxLayerCount); err != nil {
		return err
	}
	if _, err := palette.ParseMode(string(c.PaletteMode)); err != nil {
		return err
	}
	if c.PaletteMode == palette.Custom {
		if len(c.CustomPalette) == 0 {
			return errors.Configuration("custom_palette", "palette_mode %q requires a colour table", c.PaletteMode)
		}
	} else {
		if err := errors.RequireAtLeast("palette_size", c.PaletteSize, 1); err != nil {
			return err
		}
		if err := errors.RequireAtMost("palette_size", c.PaletteSize, MaxPaletteSize); err != nil {
			return err
		}
	}
	if c.PaletteMode == palette.Mono {
		if err := errors.RequireHalfOpen("base_hue", c.BaseHue, 0, 1); err != nil {
			return err
		}
	}
	if err := errors.RequireAtLeast("point_count", c.PointCount, shape.MinPointCount); err != nil {
		return err
	}
	if err := errors.RequireAtMost("point_count", c.PointCount, MaxPointCount); err != nil {
		return err
	}
	if err := errors.RequireNonNegative("wobble", c.Wobble); err != nil {
		return err
	}
	if err := errors.RequireNonNegative("irregularity", c.Irregularity); err != nil {
		return err
	}
	if err := errors.RequireInterval("radius_range", c.RadiusRange[0], c.RadiusRange[1], 0, 1); err != nil {
		return err
	}
	if err := errors.RequirePositive("radius_range.min", c.RadiusRange[0]); err != nil {
		return err
	}
	if err := errors.RequireInterval("alpha_range", c.AlphaRange[0], c.AlphaRange[1], 0, 1); err != nil {
		return err
	}
	if err := errors.RequirePositive("alpha_range.min", c.AlphaRange[0]); err != nil {
		return err
	}
	if c.RotationDegrees != nil {
		if err := errors.RequireFinite("rotation_degrees", *c.RotationDegrees); err != nil {
			return err
		}
	}
	if len(c.ShapeKinds) == 0 {
		return errors.Configuration("shape_kinds", "at least one shape kind is required")
	}
	for i, k := range c.ShapeKinds {
		if !slices.Contains(shape.Kinds(), k) {
			return errors.InvalidParameter(fmt.Sprintf("shape_kinds[%d]", i), string(k), "unknown shape kind")
		}
	}
	if _, err := colorful.Hex(c.Background); err != nil {
		return errors.InvalidParameter("background", c.Background, "not a #rrggbb colour")
	}
	for i, edge := range c.CanvasSize {
		if edge < 1 || edge > MaxCanvasEdge {
			return errors.InvalidParameter("canvas_size", c.CanvasSize, "dimension %d must be in [1, %d]", i, MaxCanvasEdge)
		}
	}
	if c.ColorPick != PickRandom && c.ColorPick != PickRoundRobin {
		return errors.InvalidParameter("color_pick", string(c.ColorPick), "must be %q or %q", PickRandom, PickRoundRobin)
	}
	if c.Caption != nil && c.Caption.Color != "" {
		if _, err := colorful.Hex(c.Caption.Color); err != nil {
			return errors.InvalidParameter("caption.color", c.Caption.Color, "not a #rrggbb colour")
		}
	}
	for i, o := range c.Layers {
		if err := o.validate(i); err != nil {
			return err
		}
	}
	return nil
}

func (o LayerOverride) validate(i int) error {
	param := func(name string) string { return fmt.Sprintf("layers[%d].%s", i, name) }
	if o.Kind != "" && !slices.Contains(shape.Kinds(), o.Kind) {
		return errors.InvalidParameter(param("kind"), string(o.Kind), "unknown shape kind")
	}
	if o.PaletteMode != "" {
		m, err := palette.ParseMode(string(o.PaletteMode))
		if err != nil || m == palette.Custom {
			return errors.InvalidParameter(param("palette_mode"), string(o.PaletteMode), "must be a generated palette mode")
		}
	}
	for _, f := range []struct {
		name string
		v    *float64
	}{{"x", o.X}, {"y", o.Y}} {
		if f.v != nil {
			if err := errors.RequireRange(param(f.name), *f.v, 0, 1); err != nil {
				return err
			}
		}
	}
	if o.Size != nil {
		if err := errors.RequirePositive(param("size"), *o.Size); err != nil {
			return err
		}
	}
	if o.Alpha != nil {
		if err := errors.RequireRange(param("alpha"), *o.Alpha, 0, 1); err != nil {
			return err
		}
		if *o.Alpha == 0 {
			return errors.InvalidParameter(param("alpha"), *o.Alpha, "must be in (0, 1]")
		}
	}
	return nil
}

// NumLayers returns the number of layers the config produces. Explicit
// layer overrides extend LayerCount.
func (c *Config) NumLayers() int {
	return max(c.LayerCount, len(c.Layers))
}

// PaletteSpec returns the palette request described by the config.
func (c *Config) PaletteSpec() palette.Spec {
	return palette.Spec{
		Mode:    c.PaletteMode,
		Count:   c.PaletteSize,
		BaseHue: c.BaseHue,
		Custom:  c.CustomPalette,
	}
}

// ComposeOptions returns the poster-wide compose settings. The config must
// have been validated.
func (c *Config) ComposeOptions() ComposeOptions {
	bg, _ := colorful.Hex(c.Background)
	return ComposeOptions{
		Pick:       c.ColorPick,
		Background: bg,
		Width:      c.CanvasSize[0],
		Height:     c.CanvasSize[1],
		Caption:    c.Caption,
	}
}
