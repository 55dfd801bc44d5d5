// Package cli implements the greenzone command-line interface.
//
// This package provides commands for rendering ranking charts from regional
// case data, serving the interactive chart over HTTP, and browsing a dataset
// in the terminal. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Generate SVG, PDF, PNG, or DOT chart files from a dataset
//   - serve: Run the interactive chart web server
//   - browse: Explore a dataset's categories in the terminal
//   - cache: Manage the dataset download cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/greenzone-vis/greenzone/pkg/buildinfo"
	"github.com/greenzone-vis/greenzone/pkg/cache"
	"github.com/greenzone-vis/greenzone/pkg/httputil"
)

const (
	// appName is the application name used for directories and display.
	appName = "greenzone"

	// defaultCacheTTL bounds how long downloaded datasets are reused.
	defaultCacheTTL = time.Hour
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "greenzone",
		Short:        "Greenzone renders regional case data as ranking charts",
		Long:         `Greenzone turns a table of regions and case counts into a categorized ranking chart: regions are bucketed into severity zones, the best performers of each zone are laid out as labeled lines, and the result is rendered to SVG or served interactively.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			c.SetLogLevel(log.DebugLevel)
		}
	}

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newFetcher creates a dataset fetcher for CLI use, backed by the file cache
// unless caching is disabled.
func (c *CLI) newFetcher(noCache bool) *httputil.Fetcher {
	store, err := newCache(noCache)
	if err != nil {
		c.Logger.Debug("cache unavailable, fetching uncached", "err", err)
		store = cache.NewNullCache()
	}
	return httputil.NewFetcher(httputil.WithCache(store, defaultCacheTTL))
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

// cacheDir returns the cache directory using XDG standard (~/.cache/greenzone/).
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
