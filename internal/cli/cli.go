// Package cli implements the rectile command-line interface.
//
// # Commands
//
//   - generate: run the tiling algorithm and print the JSON document
//   - render: write SVG, PNG, PDF or JSON files
//   - tree: write the traversal's discovery tree (DOT, SVG, PNG, PDF)
//   - presets: list or export the built-in seed sets
//   - preview: interactive terminal preview
//   - serve: run the HTTP API
//   - cache: manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// attached to the command context and retrieved with loggerFromContext.
package cli

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rectile/pkg/buildinfo"
	"github.com/matzehuels/rectile/pkg/cache"
	"github.com/matzehuels/rectile/pkg/config"
	"github.com/matzehuels/rectile/pkg/errors"
	"github.com/matzehuels/rectile/pkg/observability"
	"github.com/matzehuels/rectile/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "rectile"

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

	// Config is loaded in the root command's pre-run, before any
	// subcommand executes.
	Config config.Config

	out        io.Writer
	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// ui returns the status printer for the command's writer.
func (c *CLI) ui() status {
	return status{w: c.out}
}

// SetOutput redirects command output (documents, tables, status lines) to w.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Rectile generates rectangle tilings from a few seed rectangles",
		Long:          `Rectile fills the plane around a handful of seed rectangles by propagating their widths and heights across a grid of cells, then draws the resulting tiling.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg

			observability.Register(observability.NewLogHooks(c.Logger))

			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (.toml, .yaml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(ch, cache.NewScopedKeyer(nil, buildinfo.CacheScope()), c.Logger)
	runner.TTL = c.Config.Cache.TTL
	return runner, nil
}

// newCache picks the backend from the cache config: nothing when disabled,
// Redis when a URL is set, otherwise the file cache.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cc := c.Config.Cache
	if noCache || cc.Disabled {
		return cache.NewNullCache(), nil
	}
	if cc.RedisURL != "" {
		return cache.NewRedisCache(ctx, cc.RedisURL, cache.DefaultRedisPrefix)
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory; caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the configured cache directory or the per-user default
// (~/.cache/rectile on Linux).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// An empty string selects the configured default formats.
func parseFormats(s string, defaults []string) []string {
	if s == "" {
		return defaults
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Exit codes returned by ExitCode.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInput       = 2
	ExitGeneration  = 3
	ExitInterrupted = 130
)

// ExitCode maps a command error to a process exit code. Interrupts use the
// shell's SIGINT convention.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled):
		return ExitInterrupted
	}
	switch errors.GetCode(err).Class() {
	case errors.ClassInput:
		return ExitInput
	case errors.ClassGeneration:
		return ExitGeneration
	}
	return ExitFailure
}
