package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/posterforge/pkg/gallery"
	pio "github.com/matzehuels/posterforge/pkg/io"
	"github.com/matzehuels/posterforge/pkg/pipeline"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	poster  posterFlags
	formats string
	output  string
	scale   float64
	noCache bool
	refresh bool
	save    bool
	watch   bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [config]",
		Short: "Render a poster to PNG, SVG or JSON",
		Long: `Render a poster from a config file and/or flags.

Flags override values from --config. Outputs are written next to each other
using the --output base name and one extension per format.`,
		Example: `  posterforge render --seed 42 --palette vivid
  posterforge render -c poster.toml -f png,svg -o out/poster
  posterforge render --palette-image photo.jpg --extract kmeans --save
  posterforge render poster.toml --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.poster.config = args[0]
			}
			if opts.watch {
				return c.watchRender(cmd, &opts)
			}
			return c.runRender(cmd.Context(), cmd, &opts)
		},
	}

	opts.poster.register(cmd)
	fs := cmd.Flags()
	fs.StringVarP(&opts.formats, "format", "f", pipeline.FormatPNG, "output formats: png, svg, json, palette (comma-separated)")
	fs.StringVarP(&opts.output, "output", "o", "", "output base path (default poster-<seed>)")
	fs.Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "raster scale factor")
	fs.BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	fs.BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	fs.BoolVar(&opts.save, "save", false, "save the poster to the local gallery")
	fs.BoolVarP(&opts.watch, "watch", "w", false, "re-render when the config or palette file changes")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, cmd *cobra.Command, opts *renderOpts) error {
	cfg, err := opts.poster.load(cmd)
	if err != nil {
		return err
	}
	formats, err := pipeline.ParseFormats(opts.formats)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Poster:  cfg,
		Formats: formats,
		Scale:   opts.scale,
		Refresh: opts.refresh,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	res, err := runner.Render(ctx, popts)
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(res, popts.Formats, outputBase(opts.output, res.Seed, false))
	if err != nil {
		return err
	}
	prog.done("rendered poster", "seed", res.Seed, "layers", res.Stats.Layers)

	printSuccess("Poster rendered")
	for _, p := range paths {
		printFile(p)
	}
	printStats(res.Stats.Layers, res.Stats.Bytes, res.CacheHit)

	if opts.save {
		rec, err := c.saveToGallery(ctx, popts, res)
		if err != nil {
			return err
		}
		printDetail("Saved to gallery as %s", rec.ID)
	}
	return nil
}

// watchRender renders once and again after every change to the input files.
func (c *CLI) watchRender(cmd *cobra.Command, opts *renderOpts) error {
	files := opts.poster.inputFiles()
	if len(files) == 0 {
		return fmt.Errorf("--watch needs --config, --palette-csv or --palette-image")
	}
	ctx := cmd.Context()

	rerender := func(ctx context.Context) {
		if err := c.runRender(ctx, cmd, opts); err != nil {
			printError("%v", err)
		}
	}
	rerender(ctx)

	fw, err := newFileWatcher(files, c.Logger, rerender)
	if err != nil {
		return err
	}
	fw.Start(ctx)
	defer fw.Stop()

	printInfo("Watching %s (Ctrl+C to stop)", strings.Join(files, ", "))
	<-ctx.Done()
	return nil
}

// inputFiles lists the files a render reads.
func (f *posterFlags) inputFiles() []string {
	var files []string
	for _, p := range []string{f.config, f.paletteCSV, f.paletteImage} {
		if p != "" {
			files = append(files, p)
		}
	}
	return files
}

// saveToGallery records a rendered poster in the local file gallery.
func (c *CLI) saveToGallery(ctx context.Context, opts pipeline.Options, res *pipeline.Result) (gallery.Record, error) {
	dir, err := galleryDir()
	if err != nil {
		return gallery.Record{}, err
	}
	store, err := gallery.NewFileStore(dir)
	if err != nil {
		return gallery.Record{}, err
	}
	defer store.Close()

	rec := gallery.New(opts.Poster, res.Palette, res.Hash, opts.Formats)
	if err := store.Save(ctx, rec); err != nil {
		return gallery.Record{}, err
	}
	return rec, nil
}

// =============================================================================
// Output Paths
// =============================================================================

// outputBase resolves the base path artifacts are written to. An existing
// directory receives the default name; batch renders append the seed.
func outputBase(output string, seed uint64, batch bool) string {
	name := fmt.Sprintf("poster-%d", seed)
	if output == "" {
		return name
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, name)
	}
	base := strings.TrimSuffix(output, filepath.Ext(output))
	if batch {
		base = fmt.Sprintf("%s-%d", base, seed)
	}
	return base
}

// writeArtifacts writes each format to base plus its extension and returns
// the paths in format order.
func writeArtifacts(res *pipeline.Result, formats []string, base string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		data, ok := res.Artifacts[f]
		if !ok {
			continue
		}
		path := base + pipeline.Extension(f)
		if err := pio.WriteFile(path, data); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
