// Package pipeline turns a poster configuration into output artifacts.
//
// It is the shared entry point for the CLI and the HTTP server: both build
// [Options], hand them to a [Runner], and receive rendered bytes keyed by
// format. Rendering is deterministic for a given configuration, so the
// Runner caches artifacts under a hash of the normalized configuration and
// a cache hit is byte-identical to a fresh render.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Poster:  poster.DefaultConfig(),
//	    Formats: []string{"png", "json"},
//	}
//	result, err := runner.Render(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
//
// Render several seeds of one configuration in parallel:
//
//	results, err := runner.RenderBatch(ctx, opts, []uint64{1, 2, 3}, 4)
package pipeline

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/posterforge/pkg/cache"
	"github.com/matzehuels/posterforge/pkg/errors"
	"github.com/matzehuels/posterforge/pkg/poster"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultScale renders at the configured canvas size.
	DefaultScale = 1.0

	// MaxScale bounds the raster multiplier.
	MaxScale = 4.0

	// DefaultWorkers is the batch concurrency when none is given.
	DefaultWorkers = 4
)

// Format constants for output formats.
const (
	FormatPNG     = "png"
	FormatSVG     = "svg"
	FormatJSON    = "json"
	FormatPalette = "palette"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:     true,
	FormatSVG:     true,
	FormatJSON:    true,
	FormatPalette: true,
}

// Extension returns the file extension for a format.
func Extension(format string) string {
	switch format {
	case FormatPalette:
		return ".palette.png"
	default:
		return "." + format
	}
}

// ContentType returns the MIME type of a format's artifact.
func ContentType(format string) string {
	switch format {
	case FormatPNG, FormatPalette:
		return "image/png"
	case FormatSVG:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one render.
type Options struct {
	Poster  poster.Config `json:"poster"`
	Formats []string      `json:"formats,omitempty"`
	Scale   float64       `json:"scale,omitempty"`
	Refresh bool          `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a render.
type Result struct {
	// Poster is the resolved composition.
	Poster *poster.Poster

	// Hash is the content hash of the normalized configuration.
	Hash string

	// Seed is the seed the poster was rendered with.
	Seed uint64

	// Palette holds the realized colours as hex strings.
	Palette []string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether every artifact came from the cache.
	CacheHit bool
}

// Stats contains render statistics.
type Stats struct {
	Layers     int
	Bytes      int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.InvalidParameter("format", format, "must be one of: png, svg, json, palette")
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults normalizes the poster configuration, applies
// defaults and validates everything. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.Poster.SetDefaults()
	if err := o.Poster.Validate(); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if err := errors.RequirePositive("scale", o.Scale); err != nil {
		return err
	}
	if err := errors.RequireRange("scale", o.Scale, 0, MaxScale); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ConfigHash returns the content hash of the normalized poster
// configuration. Call after ValidateAndSetDefaults.
func (o *Options) ConfigHash() (string, error) {
	data, err := json.Marshal(o.Poster)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash config")
	}
	return cache.Hash(data), nil
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// WithSeed returns a copy of o rendering with seed.
func (o Options) WithSeed(seed uint64) Options {
	o.Poster.Seed = seed
	return o
}
