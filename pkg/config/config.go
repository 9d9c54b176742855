// Package config loads dungeonforge.toml, the project file naming the level
// set and the generation budgets.
//
// A minimal file:
//
//	seed = 42
//	levels = ["examples/levels/crypt.yaml", "examples/levels/catacombs.yaml"]
//	start_level = 0
//
//	[budget]
//	outer = 10
//	inner = 1000
//	max_corridor_fan_out = 3
//
//	[server]
//	addr = ":8080"
//
// Relative level paths are resolved against the directory of the config file.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/dungeonforge/pkg/core/level"
	"github.com/matzehuels/dungeonforge/pkg/errors"
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = "dungeonforge.toml"

// DefaultAddr is the listen address of the HTTP server.
const DefaultAddr = ":8080"

// Config is the decoded project file.
type Config struct {
	Seed       uint64   `toml:"seed"`
	Levels     []string `toml:"levels"`
	StartLevel int      `toml:"start_level"`
	Budget     Budget   `toml:"budget"`
	Server     Server   `toml:"server"`
}

// Budget mirrors level.Options.
type Budget struct {
	Outer             int `toml:"outer"`
	Inner             int `toml:"inner"`
	MaxCorridorFanOut int `toml:"max_corridor_fan_out"`
}

// Server configures the serve command.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Seed: level.DefaultSeed,
		Budget: Budget{
			Outer:             level.DefaultOuterBudget,
			Inner:             level.DefaultInnerBudget,
			MaxCorridorFanOut: level.DefaultMaxCorridorFanOut,
		},
		Server: Server{Addr: DefaultAddr},
	}
}

// Load reads and validates the file at path. Keys missing from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}

	dir := filepath.Dir(path)
	for i, p := range cfg.Levels {
		if !filepath.IsAbs(p) {
			cfg.Levels[i] = filepath.Join(dir, p)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to Default
// otherwise. An empty path means DefaultFile.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}
	if _, err := os.Stat(path); stderrors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks budgets and the start level index.
func (c *Config) Validate() error {
	if err := c.LevelOptions().Validate(); err != nil {
		return err
	}
	if c.StartLevel < 0 || (len(c.Levels) > 0 && c.StartLevel >= len(c.Levels)) {
		return errors.New(errors.ErrCodeInvalidConfig, "start_level %d out of range for %d levels", c.StartLevel, len(c.Levels))
	}
	for _, p := range c.Levels {
		if p == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "levels contains an empty path")
		}
	}
	return nil
}

// LevelOptions converts the budget section.
func (c *Config) LevelOptions() level.Options {
	return level.Options{
		OuterBudget:       c.Budget.Outer,
		InnerBudget:       c.Budget.Inner,
		MaxCorridorFanOut: c.Budget.MaxCorridorFanOut,
	}
}

// StartLevelPath returns the path of the level played first, or "" when no
// levels are configured.
func (c *Config) StartLevelPath() string {
	if len(c.Levels) == 0 {
		return ""
	}
	return c.Levels[c.StartLevel]
}

// LevelPath returns the i-th level path, wrapping around so that callers can
// advance past the last level.
func (c *Config) LevelPath(i int) string {
	if len(c.Levels) == 0 {
		return ""
	}
	n := len(c.Levels)
	return c.Levels[((i%n)+n)%n]
}
