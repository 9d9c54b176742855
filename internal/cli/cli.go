// Package cli implements the dungeonforge command-line interface.
//
// Commands:
//   - generate: lay out a level and write JSON, text, SVG, PNG, PDF or DOT
//   - validate: report problems in a level file without generating
//   - graph: draw the level's room graphs with Graphviz
//   - view: interactive terminal viewer that regenerates on demand
//   - serve: HTTP API for generating levels
//   - sweep: generate many seeds in parallel and report the success rate
//   - cache: manage the layout cache
//
// Every command reads dungeonforge.toml from the working directory (or
// --config) for the seed, budgets and level set. A level argument
// overrides the configured start level.
package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dungeonforge/pkg/buildinfo"
	"github.com/matzehuels/dungeonforge/pkg/cache"
	"github.com/matzehuels/dungeonforge/pkg/config"
	"github.com/matzehuels/dungeonforge/pkg/errors"
	"github.com/matzehuels/dungeonforge/pkg/pipeline"
)

// appName names the cache directory and the binary in help texts.
const appName = "dungeonforge"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	configPath string
}

// New creates a CLI that logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Dungeonforge lays out dungeons from room graphs and templates",
		Long:         `Dungeonforge generates 2D dungeon layouts by placing authored room templates along a room graph, joining them doorway to doorway without overlaps.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultFile+" if present)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.sweepCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads --config, or dungeonforge.toml when present.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.configPath != "" {
		return config.Load(c.configPath)
	}
	return config.LoadOrDefault("")
}

// levelPath picks the level argument or the configured start level.
func levelPath(cfg *config.Config, args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if p := cfg.StartLevelPath(); p != "" {
		return p, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "no level given and no levels configured in %s", config.DefaultFile)
}

// newRunner creates a pipeline runner backed by the user cache directory.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cc, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// genFlags are the generation flags shared by several commands.
type genFlags struct {
	seed    uint64
	outer   int
	inner   int
	fanOut  int
	noCache bool
}

func (f *genFlags) register(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed (default from config, 42)")
	cmd.Flags().IntVar(&f.outer, "outer", 0, "graph picks before giving up (default from config, 10)")
	cmd.Flags().IntVar(&f.inner, "inner", 0, "rebuild attempts per graph pick (default from config, 1000)")
	cmd.Flags().IntVar(&f.fanOut, "fan-out", 0, "maximum corridors leaving one room (default from config, 3)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "skip the layout cache")
}

// options merges flags over the config file. Flags win when set.
func (f *genFlags) options(cfg *config.Config) pipeline.Options {
	return pipeline.Options{
		Seed:              pick(f.seed, cfg.Seed),
		OuterBudget:       pick(f.outer, cfg.Budget.Outer),
		InnerBudget:       pick(f.inner, cfg.Budget.Inner),
		MaxCorridorFanOut: pick(f.fanOut, cfg.Budget.MaxCorridorFanOut),
		Refresh:           f.noCache,
	}
}

func pick[T comparable](flag, fallback T) T {
	var zero T
	if flag != zero {
		return flag
	}
	return fallback
}

// parseFormats parses --format, defaulting to text.
func parseFormats(s string) ([]string, error) {
	formats := pipeline.ParseFormats(s)
	if len(formats) == 0 {
		formats = append(formats, pipeline.DefaultFormats...)
	}
	if err := pipeline.ValidateFormats(formats); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "--format %s", strings.TrimSpace(s))
	}
	return formats, nil
}
