package cli

import (
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	pio "github.com/matzehuels/posterforge/pkg/io"
	"github.com/matzehuels/posterforge/pkg/palette"
	"github.com/matzehuels/posterforge/pkg/pipeline"
	"github.com/matzehuels/posterforge/pkg/poster"
)

type paletteOpts struct {
	count        int
	baseHue      float64
	seed         uint64
	output       string
	jsonOut      bool
	browse       bool
	paletteCSV   string
	paletteImage string
	extract      string
}

// paletteCommand creates the palette command.
func (c *CLI) paletteCommand() *cobra.Command {
	var opts paletteOpts

	cmd := &cobra.Command{
		Use:   "palette [mode]",
		Short: "Generate and preview a colour palette",
		Long: `Generate a palette and show it as terminal swatches.

Modes: ` + modeList() + `. The custom mode reads its colours from
--palette-csv or --palette-image. Use --browse to explore modes and seeds
interactively.`,
		Example: `  posterforge palette vivid -n 8
  posterforge palette mono --hue 0.3 -o mono.png
  posterforge palette --palette-image photo.jpg --extract kmeans
  posterforge palette --browse`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := poster.DefaultPaletteMode
			if len(args) == 1 {
				m, err := palette.ParseMode(args[0])
				if err != nil {
					return err
				}
				mode = m
			}
			return c.runPalette(cmd, mode, &opts)
		},
	}

	fs := cmd.Flags()
	fs.IntVarP(&opts.count, "count", "n", palette.DefaultCount, "number of colours")
	fs.Float64Var(&opts.baseHue, "hue", poster.DefaultBaseHue, "base hue in [0,1) for mono")
	fs.Uint64VarP(&opts.seed, "seed", "s", poster.DefaultSeed, "random seed")
	fs.StringVarP(&opts.output, "output", "o", "", "write a swatch PNG")
	fs.BoolVar(&opts.jsonOut, "json", false, "print the colours as JSON")
	fs.BoolVarP(&opts.browse, "browse", "b", false, "browse palettes interactively")
	fs.StringVar(&opts.paletteCSV, "palette-csv", "", "CSV colour table for the custom mode")
	fs.StringVar(&opts.paletteImage, "palette-image", "", "image to extract colours from")
	fs.StringVar(&opts.extract, "extract", string(pio.ExtractDominant), "extraction method: dominant or kmeans")
	cmd.MarkFlagsMutuallyExclusive("palette-csv", "palette-image")

	return cmd
}

func (c *CLI) runPalette(cmd *cobra.Command, mode palette.Mode, opts *paletteOpts) error {
	var pal palette.Palette
	if opts.browse {
		chosen, err := browsePalettes(mode, opts)
		if err != nil || chosen == nil {
			return err
		}
		pal = chosen
	} else {
		spec, err := paletteSpec(mode, opts)
		if err != nil {
			return err
		}
		if pal, err = palette.Generate(spec, poster.NewRand(opts.seed)); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if opts.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(pal.Hex()); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, swatchRow(pal.Hex()))
	}

	if opts.output != "" {
		data, err := pipeline.SwatchPNG(pal)
		if err != nil {
			return err
		}
		if err := pio.WriteFile(opts.output, data); err != nil {
			return err
		}
		printFile(opts.output)
	}
	return nil
}

// paletteSpec builds the palette request, loading a colour table when a
// CSV or image source is given.
func paletteSpec(mode palette.Mode, opts *paletteOpts) (palette.Spec, error) {
	spec := palette.Spec{Mode: mode, Count: opts.count, BaseHue: opts.baseHue}
	var err error
	switch {
	case opts.paletteCSV != "":
		spec.Custom, err = pio.LoadPaletteCSV(opts.paletteCSV)
	case opts.paletteImage != "":
		var method pio.ExtractMethod
		if method, err = pio.ParseExtractMethod(opts.extract); err != nil {
			return spec, err
		}
		spec.Custom, err = pio.LoadPaletteImage(opts.paletteImage, opts.count, method)
	default:
		return spec, nil
	}
	spec.Mode = palette.Custom
	return spec, err
}

// browsePalettes runs the interactive browser and returns the chosen
// palette, or nil if the user quit.
func browsePalettes(mode palette.Mode, opts *paletteOpts) (palette.Palette, error) {
	if mode == palette.Custom {
		mode = poster.DefaultPaletteMode
	}
	model := NewPaletteBrowser(mode, opts.count, opts.baseHue, opts.seed)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, err
	}
	return final.(PaletteBrowser).Chosen, nil
}
