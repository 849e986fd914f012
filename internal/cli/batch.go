package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/posterforge/pkg/errors"
	"github.com/matzehuels/posterforge/pkg/pipeline"
)

type batchOpts struct {
	poster  posterFlags
	seeds   string
	count   int
	workers int
	formats string
	output  string
	scale   float64
	noCache bool
}

// batchCommand creates the batch command, which renders one configuration
// under many seeds in parallel.
func (c *CLI) batchCommand() *cobra.Command {
	var opts batchOpts

	cmd := &cobra.Command{
		Use:   "batch [config]",
		Short: "Render one configuration under many seeds",
		Long: `Render the same configuration once per seed using a worker pool.

Seeds come from --seeds, or from --count consecutive values starting at --seed.
Each poster is identical to a standalone render with that seed.`,
		Example: `  posterforge batch --count 12 --seed 100 -o out/
  posterforge batch --seeds 3,7,42 -c poster.toml -f png,svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.poster.config = args[0]
			}
			return c.runBatch(cmd, &opts)
		},
	}

	opts.poster.register(cmd)
	fs := cmd.Flags()
	fs.StringVar(&opts.seeds, "seeds", "", "comma-separated seeds")
	fs.IntVar(&opts.count, "count", 0, "number of consecutive seeds starting at --seed")
	fs.IntVarP(&opts.workers, "workers", "j", pipeline.DefaultWorkers, "parallel renders")
	fs.StringVarP(&opts.formats, "format", "f", pipeline.FormatPNG, "output formats (comma-separated)")
	fs.StringVarP(&opts.output, "output", "o", "", "output base path or directory")
	fs.Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "raster scale factor")
	fs.BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.MarkFlagsMutuallyExclusive("seeds", "count")

	return cmd
}

func (c *CLI) runBatch(cmd *cobra.Command, opts *batchOpts) error {
	cfg, err := opts.poster.load(cmd)
	if err != nil {
		return err
	}
	seeds, err := batchSeeds(opts.seeds, cfg.Seed, opts.count)
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

	popts := pipeline.Options{Poster: cfg, Formats: formats, Scale: opts.scale}
	ctx := cmd.Context()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Rendering %d posters...", len(seeds)))
	spinner.Start()
	results, err := runner.RenderBatch(ctx, popts, seeds, opts.workers)
	spinner.Stop()
	if err != nil {
		return err
	}

	var total, hits int
	for _, res := range results {
		paths, err := writeArtifacts(res, formats, outputBase(opts.output, res.Seed, true))
		if err != nil {
			return err
		}
		for _, p := range paths {
			printFile(p)
		}
		total += res.Stats.Bytes
		if res.CacheHit {
			hits++
		}
	}
	prog.done("rendered batch", "posters", len(results), "workers", opts.workers, "cached", hits)
	printSuccess("Rendered %d posters (%s, %d cached)", len(results), humanBytes(total), hits)
	return nil
}

// batchSeeds returns the explicit seed list, or count seeds from first.
func batchSeeds(list string, first uint64, count int) ([]uint64, error) {
	if list != "" {
		var seeds []uint64
		for _, s := range strings.Split(list, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			v, err := strconv.ParseUint(s, 10, 64)
			if err != nil {
				return nil, errors.InvalidParameter("seeds", s, "not an unsigned integer")
			}
			seeds = append(seeds, v)
		}
		if len(seeds) == 0 {
			return nil, errors.Configuration("seeds", "no seeds given")
		}
		return seeds, nil
	}
	if count < 1 {
		return nil, errors.Configuration("seeds", "give --seeds or a positive --count")
	}
	return pipeline.SeedRange(first, count), nil
}
