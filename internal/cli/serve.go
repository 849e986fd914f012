package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/posterforge/pkg/cache"
	"github.com/matzehuels/posterforge/pkg/pipeline"
	"github.com/matzehuels/posterforge/pkg/server"
)

type serveOpts struct {
	addr        string
	redisURL    string
	mongoURI    string
	cachePrefix string
	noCache     bool
}

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rendering API over HTTP",
		Long: `Run the HTTP API for palettes, renders and the poster gallery.

Without --redis the local file cache is used; without --mongo saved posters
are kept in memory and lost on exit.`,
		Example: `  posterforge serve --addr :9000
  posterforge serve --redis redis://localhost:6379/0 --mongo mongodb://localhost:27017`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, &opts)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.addr, "addr", server.DefaultAddr, "listen address")
	fs.StringVar(&opts.redisURL, "redis", os.Getenv(envRedisURL), "Redis URL for the shared cache (env "+envRedisURL+")")
	fs.StringVar(&opts.mongoURI, "mongo", os.Getenv(envMongoURI), "MongoDB URI for the gallery (env "+envMongoURI+")")
	fs.StringVar(&opts.cachePrefix, "cache-prefix", "", "namespace prefix for cache keys")
	fs.BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts *serveOpts) error {
	ctx := cmd.Context()

	var (
		store cache.Cache
		err   error
	)
	if opts.noCache {
		store = cache.NewNullCache()
	} else if store, err = c.newRemoteCache(ctx, opts.redisURL); err != nil {
		return err
	}

	var keyer cache.Keyer
	if opts.cachePrefix != "" {
		keyer = cache.NewScopedKeyer(nil, opts.cachePrefix)
	}

	gal, err := c.newStore(ctx, opts.mongoURI)
	if err != nil {
		store.Close()
		return err
	}
	if opts.mongoURI == "" {
		printWarning("No --mongo given; saved posters are kept in memory")
	}

	srv := server.New(server.Config{
		Runner: pipeline.NewRunner(store, keyer, c.Logger),
		Store:  gal,
		Logger: c.Logger,
	})
	defer srv.Close()

	return srv.ListenAndServe(ctx, opts.addr)
}
