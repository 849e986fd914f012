package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/posterforge/pkg/cache"
	"github.com/matzehuels/posterforge/pkg/errors"
	"github.com/matzehuels/posterforge/pkg/observability"
	"github.com/matzehuels/posterforge/pkg/poster"
)

// Runner encapsulates rendering with caching.
// Both CLI and server use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Render builds the poster described by opts and produces every requested
// format. Cached artifacts are reused unless opts.Refresh is set; the
// poster itself is always rebuilt, which is cheap and validates the input.
func (r *Runner) Render(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hash, err := opts.ConfigHash()
	if err != nil {
		return nil, err
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, hash, opts.Formats)
	start := time.Now()

	result, err := r.render(ctx, opts, hash)

	layers := 0
	if result != nil {
		layers = result.Stats.Layers
	}
	hooks.OnRenderComplete(ctx, hash, opts.Formats, layers, time.Since(start), err)
	return result, err
}

func (r *Runner) render(ctx context.Context, opts Options, hash string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buildStart := time.Now()
	p, err := poster.Build(opts.Poster)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Poster:  p,
		Hash:    hash,
		Seed:    opts.Poster.Seed,
		Palette: p.Palette.Hex(),
		Stats: Stats{
			Layers:    len(p.Layers),
			BuildTime: time.Since(buildStart),
		},
	}

	renderStart := time.Now()
	artifacts, hit, err := r.artifacts(ctx, p, hash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheHit = hit
	result.Stats.RenderTime = time.Since(renderStart)
	for _, data := range artifacts {
		result.Stats.Bytes += len(data)
	}

	opts.Logger.Debug("rendered poster",
		"seed", result.Seed,
		"layers", result.Stats.Layers,
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// artifacts returns the requested formats, from cache when every one of
// them is present, otherwise freshly rendered and written back.
func (r *Runner) artifacts(ctx context.Context, p *poster.Poster, hash string, opts Options) (map[string][]byte, bool, error) {
	hooks := observability.Cache()

	if !opts.Refresh {
		cached := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				r.Logger.Warn("cache read failed", "err", err)
			}
			if err != nil || !hit {
				break
			}
			cached[format] = data
		}
		if len(cached) == len(opts.Formats) {
			hooks.OnCacheHit(ctx, "artifact")
			return cached, true, nil
		}
		hooks.OnCacheMiss(ctx, "artifact")
	}

	rendered, err := RenderPoster(p, opts.Formats, opts.Scale)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeRender, err, "encode poster")
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		hooks.OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, false, nil
}

// RenderBatch renders opts once per seed with at most workers renders in
// flight. Each render owns its random source. Results are returned in seed
// order; the first failure cancels the renders that have not started.
func (r *Runner) RenderBatch(ctx context.Context, opts Options, seeds []uint64, workers int) ([]*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if len(seeds) == 0 {
		return nil, errors.Configuration("seeds", "at least one seed is required")
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}

	hooks := observability.Render()
	hooks.OnBatchStart(ctx, len(seeds), workers)
	start := time.Now()

	results := make([]*Result, len(seeds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, seed := range seeds {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.Render(gctx, opts.WithSeed(seed))
			if err != nil {
				return seedError(seed, err)
			}
			results[i] = res
			return nil
		})
	}

	err := g.Wait()
	hooks.OnBatchComplete(ctx, len(seeds), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("rendered batch",
		"posters", len(results),
		"workers", workers,
		"duration", time.Since(start))
	return results, nil
}

func seedError(seed uint64, err error) error {
	code := errors.GetCode(err)
	if code == "" {
		return err
	}
	return errors.Wrap(code, err, "seed %d", seed)
}

// SeedRange returns n consecutive seeds starting at first.
func SeedRange(first uint64, n int) []uint64 {
	seeds := make([]uint64, max(n, 0))
	for i := range seeds {
		seeds[i] = first + uint64(i)
	}
	return seeds
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
