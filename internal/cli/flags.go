package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/posterforge/pkg/errors"
	pio "github.com/matzehuels/posterforge/pkg/io"
	"github.com/matzehuels/posterforge/pkg/palette"
	"github.com/matzehuels/posterforge/pkg/poster"
	"github.com/matzehuels/posterforge/pkg/shape"
)

// posterFlags collects the style flags shared by render, batch and palette.
// Only flags the user set override the loaded configuration.
type posterFlags struct {
	config string

	layers       int
	paletteMode  string
	paletteSize  int
	baseHue      float64
	seed         uint64
	points       int
	wobble       float64
	irregularity float64
	radius       []float64
	alpha        []float64
	symmetric    bool
	shapes       []string
	background   string
	size         string
	pick         string
	rotation     float64
	title        string
	subtitle     string

	paletteCSV   string
	paletteImage string
	extract      string
}

func (f *posterFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "poster config file (.toml, .yaml, .json)")

	fs.IntVarP(&f.layers, "layers", "n", poster.DefaultLayerCount, "number of shape layers")
	fs.StringVarP(&f.paletteMode, "palette", "p", string(poster.DefaultPaletteMode), "palette mode: "+modeList())
	fs.IntVar(&f.paletteSize, "palette-size", poster.DefaultPaletteSize, "number of palette colours")
	fs.Float64Var(&f.baseHue, "hue", poster.DefaultBaseHue, "base hue in [0,1) for mono palettes")
	fs.Uint64VarP(&f.seed, "seed", "s", poster.DefaultSeed, "random seed")
	fs.IntVar(&f.points, "points", poster.DefaultPointCount, "vertices per shape outline")
	fs.Float64Var(&f.wobble, "wobble", poster.DefaultWobble, "per-vertex radial noise amplitude")
	fs.Float64Var(&f.irregularity, "irregularity", poster.DefaultIrregularity, "blob lobing amplitude")
	fs.Float64SliceVar(&f.radius, "radius", []float64{poster.DefaultRadiusRange[0], poster.DefaultRadiusRange[1]}, "shape radius range min,max")
	fs.Float64SliceVar(&f.alpha, "alpha", []float64{poster.DefaultAlphaRange[0], poster.DefaultAlphaRange[1]}, "layer opacity range min,max")
	fs.BoolVar(&f.symmetric, "symmetric", false, "petal outline (|sin| lobing) instead of additive lobing")
	fs.StringSliceVar(&f.shapes, "shapes", []string{string(shape.Blob)}, "shape kinds: "+kindList())
	fs.StringVar(&f.background, "background", poster.DefaultBackground, "background colour #rrggbb")
	fs.StringVar(&f.size, "size", fmt.Sprintf("%dx%d", poster.DefaultWidth, poster.DefaultHeight), "canvas size WIDTHxHEIGHT")
	fs.StringVar(&f.pick, "pick", string(poster.DefaultColorPick), "colour pick: random or round-robin")
	fs.Float64Var(&f.rotation, "rotation", 0, "fixed rotation in degrees (default random per shape)")
	fs.StringVar(&f.title, "title", "", "caption title")
	fs.StringVar(&f.subtitle, "subtitle", "", "caption subtitle")

	fs.StringVar(&f.paletteCSV, "palette-csv", "", "CSV colour table (r,g,b columns) for the custom palette")
	fs.StringVar(&f.paletteImage, "palette-image", "", "image to extract the custom palette from")
	fs.StringVar(&f.extract, "extract", string(pio.ExtractDominant), "extraction method for --palette-image: dominant or kmeans")
	cmd.MarkFlagsMutuallyExclusive("palette-csv", "palette-image")
}

// load builds the poster configuration: defaults, then the config file,
// then explicitly set flags, then an external palette source.
func (f *posterFlags) load(cmd *cobra.Command) (poster.Config, error) {
	cfg := poster.DefaultConfig()
	if f.config != "" {
		var err error
		if cfg, err = pio.LoadConfig(f.config); err != nil {
			return cfg, err
		}
	}
	if err := f.apply(cmd, &cfg); err != nil {
		return cfg, err
	}
	if err := f.loadPalette(&cfg); err != nil {
		return cfg, err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (f *posterFlags) apply(cmd *cobra.Command, cfg *poster.Config) error {
	changed := cmd.Flags().Changed

	if changed("layers") {
		cfg.LayerCount = f.layers
	}
	if changed("palette") {
		m, err := palette.ParseMode(f.paletteMode)
		if err != nil {
			return err
		}
		cfg.PaletteMode = m
	}
	if changed("palette-size") {
		cfg.PaletteSize = f.paletteSize
	}
	if changed("hue") {
		cfg.BaseHue = f.baseHue
	}
	if changed("seed") {
		cfg.Seed = f.seed
	}
	if changed("points") {
		cfg.PointCount = f.points
	}
	if changed("wobble") {
		cfg.Wobble = f.wobble
	}
	if changed("irregularity") {
		cfg.Irregularity = f.irregularity
	}
	if changed("radius") {
		r, err := pair("radius_range", f.radius)
		if err != nil {
			return err
		}
		cfg.RadiusRange = r
	}
	if changed("alpha") {
		r, err := pair("alpha_range", f.alpha)
		if err != nil {
			return err
		}
		cfg.AlphaRange = r
	}
	if changed("symmetric") {
		cfg.Symmetric = f.symmetric
	}
	if changed("shapes") {
		kinds := make([]shape.Kind, 0, len(f.shapes))
		for _, s := range f.shapes {
			k, err := shape.ParseKind(s)
			if err != nil {
				return err
			}
			kinds = append(kinds, k)
		}
		cfg.ShapeKinds = kinds
	}
	if changed("background") {
		cfg.Background = f.background
	}
	if changed("size") {
		size, err := parseSize(f.size)
		if err != nil {
			return err
		}
		cfg.CanvasSize = size
	}
	if changed("pick") {
		cfg.ColorPick = poster.ColorPick(strings.ToLower(f.pick))
	}
	if changed("rotation") {
		r := f.rotation
		cfg.RotationDegrees = &r
	}
	if changed("title") || changed("subtitle") {
		if cfg.Caption == nil {
			cfg.Caption = &poster.Caption{}
		}
		if changed("title") {
			cfg.Caption.Title = f.title
		}
		if changed("subtitle") {
			cfg.Caption.Subtitle = f.subtitle
		}
	}
	return nil
}

// loadPalette switches to the custom mode when a colour table source is given.
func (f *posterFlags) loadPalette(cfg *poster.Config) error {
	var (
		table []palette.Triple
		err   error
	)
	switch {
	case f.paletteCSV != "":
		table, err = pio.LoadPaletteCSV(f.paletteCSV)
	case f.paletteImage != "":
		var method pio.ExtractMethod
		if method, err = pio.ParseExtractMethod(f.extract); err != nil {
			return err
		}
		table, err = pio.LoadPaletteImage(f.paletteImage, cfg.PaletteSize, method)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	cfg.PaletteMode = palette.Custom
	cfg.CustomPalette = table
	return nil
}

func pair(param string, v []float64) ([2]float64, error) {
	if len(v) != 2 {
		return [2]float64{}, errors.InvalidParameter(param, v, "expects exactly two values")
	}
	return [2]float64{v[0], v[1]}, nil
}

// parseSize parses "WIDTHxHEIGHT".
func parseSize(s string) ([2]int, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return [2]int{}, errors.InvalidParameter("canvas_size", s, "expected WIDTHxHEIGHT")
	}
	width, err1 := strconv.Atoi(strings.TrimSpace(w))
	height, err2 := strconv.Atoi(strings.TrimSpace(h))
	if err1 != nil || err2 != nil {
		return [2]int{}, errors.InvalidParameter("canvas_size", s, "expected WIDTHxHEIGHT")
	}
	return [2]int{width, height}, nil
}

func modeList() string {
	modes := palette.Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func kindList() string {
	kinds := shape.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
