// Package cli implements the posterforge command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/posterforge/pkg/buildinfo"
	"github.com/matzehuels/posterforge/pkg/cache"
	"github.com/matzehuels/posterforge/pkg/gallery"
	"github.com/matzehuels/posterforge/pkg/observability"
	"github.com/matzehuels/posterforge/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "posterforge"

	// Environment variables read by serve.
	envRedisURL = "POSTERFORGE_REDIS_URL"
	envMongoURI = "POSTERFORGE_MONGO_URI"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives command output (defaults to stdout).
	Out io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level. At debug level the render,
// cache and HTTP hooks log through the CLI logger too.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).Install()
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "posterforge synthesizes abstract generative posters",
		Long:         `posterforge layers randomized translucent shapes over a coloured background, drawing colours from a generated palette, and writes the result as PNG, SVG or a JSON manifest.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.paletteCommand())
	root.AddCommand(c.galleryCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newRemoteCache connects to Redis when url is set and falls back to the
// local file cache otherwise.
func (c *CLI) newRemoteCache(ctx context.Context, url string) (cache.Cache, error) {
	if url == "" {
		return newCache(false)
	}
	rc, err := cache.NewRedisCache(ctx, url)
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using redis cache")
	return rc, nil
}

// newStore opens the MongoDB gallery when uri is set and an in-memory one
// otherwise.
func (c *CLI) newStore(ctx context.Context, uri string) (gallery.Store, error) {
	if uri == "" {
		return gallery.NewMemoryStore(), nil
	}
	s, err := gallery.NewMongoStore(ctx, gallery.MongoConfig{URI: uri})
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using mongo gallery")
	return s, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/posterforge/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// galleryDir returns the local gallery directory (~/.config/posterforge/gallery/).
func galleryDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "gallery"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "gallery"), nil
}
