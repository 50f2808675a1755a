// Package cli implements the inscribe command-line interface.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/inscribe/pkg/buildinfo"
	"github.com/matzehuels/inscribe/pkg/cache"
	"github.com/matzehuels/inscribe/pkg/config"
	"github.com/matzehuels/inscribe/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

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
	Config config.Config

	// Out receives command results: areas, JSON documents and rendered
	// drawings. Status lines and logs go to stderr.
	Out io.Writer

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Inscribe finds the largest vertex-anchored rectangle inside a rectilinear polygon",
		Long: `Inscribe reads the corners of a rectilinear polygon and reports the area of
the largest axis-aligned rectangle that has two polygon vertices as opposite
corners and lies entirely inside the polygon.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+config.DefaultPath()+")")

	// Register all subcommands
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup runs before every command: it applies -v, loads the config file and
// registers the logging hooks.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	registerLogHooks(c.Logger)
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// baseOptions returns solve options built from the [search] section.
func (c *CLI) baseOptions() pipeline.Options {
	sc := c.Config.Search
	return pipeline.Options{
		Policy:        sc.Policy,
		Workers:       sc.Workers,
		BatchSize:     sc.BatchSize,
		ProgressEvery: sc.ProgressEvery,
	}
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(cc, nil, c.Logger)
	if ttl := c.Config.Cache.TTL.Duration; ttl > 0 {
		r.TTL = ttl
	}
	return r, nil
}

// newCache opens the configured backend. Without a home directory the file
// backend has nowhere to live and caching is silently disabled.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	opts := c.Config.Cache.CacheOptions()
	if noCache || opts.Backend == cache.BackendNone {
		return cache.NewNullCache(), nil
	}
	if (opts.Backend == "" || opts.Backend == cache.BackendFile) && opts.Dir == "" {
		return cache.NewNullCache(), nil
	}

	cc, err := cache.Open(ctx, opts)
	if err != nil {
		return nil, err
	}
	backend := opts.Backend
	if backend == "" {
		backend = cache.BackendFile
	}
	return cache.Instrument(cc, backend), nil
}
