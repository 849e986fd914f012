package poster

import (
	"math"
	"testing"

	"github.com/matzehuels/posterforge/pkg/errors"
	"github.com/matzehuels/posterforge/pkg/palette"
	"github.com/matzehuels/posterforge/pkg/shape"
)

func ptr[T any](v T) *T { return &v }

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestSetDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("zero config after SetDefaults invalid: %v", err)
	}
	if cfg.LayerCount != 0 {
		t.Errorf("LayerCount = %d, explicit zero must survive", cfg.LayerCount)
	}
	if cfg.CanvasSize != [2]int{DefaultWidth, DefaultHeight} {
		t.Errorf("CanvasSize = %v", cfg.CanvasSize)
	}

	cfg.PaletteMode = "csv"
	cfg.SetDefaults()
	if cfg.PaletteMode != palette.Custom {
		t.Errorf("PaletteMode = %q, want custom", cfg.PaletteMode)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		code  errors.Code
		param string
	}{
		{"negative layers", func(c *Config) { c.LayerCount = -1 }, errors.ErrCodeInvalidParameter, "layer_count"},
		{"unknown mode", func(c *Config) { c.PaletteMode = "neon" }, errors.ErrCodeInvalidParameter, "palette_mode"},
		{"custom without table", func(c *Config) { c.PaletteMode = palette.Custom }, errors.ErrCodeConfiguration, "custom_palette"},
		{"palette size", func(c *Config) { c.PaletteSize = -1 }, errors.ErrCodeInvalidParameter, "palette_size"},
		{"palette size huge", func(c *Config) { c.PaletteSize = 1 << 60 }, errors.ErrCodeInvalidParameter, "palette_size"},
		{"layer count huge", func(c *Config) { c.LayerCount = MaxLayerCount + 1 }, errors.ErrCodeInvalidParameter, "layer_count"},
		{"override count", func(c *Config) { c.Layers = make([]LayerOverride, MaxLayerCount+1) }, errors.ErrCodeInvalidParameter, "layers"},
		{"point count huge", func(c *Config) { c.PointCount = MaxPointCount + 1 }, errors.ErrCodeInvalidParameter, "point_count"},
		{"mono hue", func(c *Config) { c.PaletteMode = palette.Mono; c.BaseHue = 1.5 }, errors.ErrCodeInvalidParameter, "base_hue"},
		{"point count", func(c *Config) { c.PointCount = 2 }, errors.ErrCodeInvalidParameter, "point_count"},
		{"wobble", func(c *Config) { c.Wobble = -1 }, errors.ErrCodeInvalidParameter, "wobble"},
		{"irregularity", func(c *Config) { c.Irregularity = math.Inf(1) }, errors.ErrCodeInvalidParameter, "irregularity"},
		{"radius inverted", func(c *Config) { c.RadiusRange = [2]float64{0.4, 0.1} }, errors.ErrCodeInvalidParameter, "radius_range"},
		{"radius zero min", func(c *Config) { c.RadiusRange = [2]float64{0, 0.1} }, errors.ErrCodeInvalidParameter, "radius_range.min"},
		{"alpha max", func(c *Config) { c.AlphaRange = [2]float64{0.2, 1.2} }, errors.ErrCodeInvalidParameter, "alpha_range.max"},
		{"rotation nan", func(c *Config) { c.RotationDegrees = ptr(math.NaN()) }, errors.ErrCodeInvalidParameter, "rotation_degrees"},
		{"no kinds", func(c *Config) { c.ShapeKinds = []shape.Kind{} }, errors.ErrCodeConfiguration, "shape_kinds"},
		{"bad kind", func(c *Config) { c.ShapeKinds = []shape.Kind{shape.Star, "heart"} }, errors.ErrCodeInvalidParameter, "shape_kinds[1]"},
		{"background", func(c *Config) { c.Background = "purple" }, errors.ErrCodeInvalidParameter, "background"},
		{"canvas", func(c *Config) { c.CanvasSize = [2]int{600, 0} }, errors.ErrCodeInvalidParameter, "canvas_size"},
		{"color pick", func(c *Config) { c.ColorPick = "nearest" }, errors.ErrCodeInvalidParameter, "color_pick"},
		{"caption colour", func(c *Config) { c.Caption = &Caption{Title: "x", Color: "red"} }, errors.ErrCodeInvalidParameter, "caption.color"},
		{"override kind", func(c *Config) { c.Layers = []LayerOverride{{}, {Kind: "heart"}} }, errors.ErrCodeInvalidParameter, "layers[1].kind"},
		{"override x", func(c *Config) { c.Layers = []LayerOverride{{X: ptr(1.5)}} }, errors.ErrCodeInvalidParameter, "layers[0].x"},
		{"override alpha", func(c *Config) { c.Layers = []LayerOverride{{Alpha: ptr(0.0)}} }, errors.ErrCodeInvalidParameter, "layers[0].alpha"},
		{"override custom mode", func(c *Config) { c.Layers = []LayerOverride{{PaletteMode: palette.Custom}} }, errors.ErrCodeInvalidParameter, "layers[0].palette_mode"},
		{"override unknown mode", func(c *Config) { c.Layers = []LayerOverride{{}, {PaletteMode: "neon"}} }, errors.ErrCodeInvalidParameter, "layers[1].palette_mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), tt.code)
			}
			if got := errors.Param(err); got != tt.param {
				t.Errorf("param = %q, want %q", got, tt.param)
			}
		})
	}
}

func TestBuildRejectsOversized(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		param string
	}{
		{"palette size", func(c *Config) { c.PaletteSize = 1 << 60 }, "palette_size"},
		{"layer count", func(c *Config) { c.LayerCount = 2_000_000_000 }, "layer_count"},
		{"point count", func(c *Config) { c.PointCount = 1 << 40 }, "point_count"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(&cfg)
			_, err := Build(cfg)
			if !errors.Is(err, errors.ErrCodeInvalidParameter) {
				t.Fatalf("Build error = %v, want INVALID_PARAMETER", err)
			}
			if got := errors.Param(err); got != tt.param {
				t.Errorf("param = %q, want %q", got, tt.param)
			}
		})
	}
}

func TestNormalizeKeepsExplicitZeros(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PointCount = 0
	cfg.PaletteMode = "csv"
	cfg.Normalize()
	if cfg.PointCount != 0 {
		t.Errorf("PointCount = %d, Normalize must not fill numbers", cfg.PointCount)
	}
	if cfg.PaletteMode != palette.Custom {
		t.Errorf("PaletteMode = %q, want custom", cfg.PaletteMode)
	}
	if got := errors.Param(cfg.Validate()); got != "point_count" {
		t.Errorf("param = %q, want point_count", got)
	}
}

func TestPlan(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LayerCount = 50
	specs := Plan(cfg, NewRand(9))
	if len(specs) != 50 {
		t.Fatalf("len = %d", len(specs))
	}
	for i, s := range specs {
		r := s.Shape.BaseRadius
		if r < cfg.RadiusRange[0] || r > cfg.RadiusRange[1] {
			t.Errorf("layer %d radius %v out of range", i, r)
		}
		if s.Alpha < cfg.AlphaRange[0] || s.Alpha > cfg.AlphaRange[1] {
			t.Errorf("layer %d alpha %v out of range", i, s.Alpha)
		}
		if s.Shape.RotationDegrees < 0 || s.Shape.RotationDegrees >= 360 {
			t.Errorf("layer %d rotation %v out of range", i, s.Shape.RotationDegrees)
		}
		if s.Shape.Kind != shape.Blob {
			t.Errorf("layer %d kind %q", i, s.Shape.Kind)
		}
	}
}

func TestPlanFixedRotation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RotationDegrees = ptr(0.0)
	for i, s := range Plan(cfg, NewRand(1)) {
		if s.Shape.RotationDegrees != 0 {
			t.Errorf("layer %d rotation = %v, want 0", i, s.Shape.RotationDegrees)
		}
	}
}

func TestPlanOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LayerCount = 2
	cfg.Layers = []LayerOverride{
		{},
		{X: ptr(0.1), Size: ptr(0.05), Kind: shape.Star},
		{Alpha: ptr(0.9)},
	}

	plain := DefaultConfig()
	plain.LayerCount = 3
	base := Plan(plain, NewRand(4))
	got := Plan(cfg, NewRand(4))

	if len(got) != 3 {
		t.Fatalf("overrides should extend layer_count: len = %d", len(got))
	}
	if got[0].Shape != base[0].Shape || got[0].Alpha != base[0].Alpha {
		t.Error("empty override changed layer 0")
	}
	if got[1].Shape.Center.X != 0.1 || got[1].Shape.BaseRadius != 0.05 || got[1].Shape.Kind != shape.Star {
		t.Errorf("layer 1 overrides not applied: %+v", got[1])
	}
	if got[1].Shape.Center.Y != base[1].Shape.Center.Y {
		t.Error("unpinned field should keep the drawn value")
	}
	if got[2].Alpha != 0.9 || got[2].Shape.Center != base[2].Shape.Center {
		t.Errorf("layer 2 = %+v", got[2])
	}
}
