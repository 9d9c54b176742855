// Package pipeline runs dungeon generation end to end for the CLI and the
// HTTP server.
//
// # Architecture
//
// The pipeline has three stages:
//
//  1. Load: read a level asset (templates and room graphs) from disk
//  2. Generate: validate the level, run the layout builder and paint the
//     result onto a tile canvas
//  3. Render: produce artifacts (JSON, text, SVG, PNG, PDF, DOT)
//
// Generated layouts and rendered artifacts are cached by content hash, so
// the same level, seed and budget never generate twice.
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    LevelPath: "examples/levels/crypt.yaml",
//	    Seed:      7,
//	    Formats:   []string{"txt", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(string(result.Artifacts["txt"]))
package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dungeonforge/pkg/asset"
	"github.com/matzehuels/dungeonforge/pkg/core/level"
	"github.com/matzehuels/dungeonforge/pkg/render/sink"
	"github.com/matzehuels/dungeonforge/pkg/render/tilemap"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatText = "txt"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatText: true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
}

// DefaultFormats is used when Options.Formats is empty.
var DefaultFormats = []string{FormatText}

// Options configures a pipeline run.
type Options struct {
	// Load options
	LevelPath string       `json:"level_path,omitempty"`
	Level     *asset.Level `json:"-"` // preloaded level; LevelPath is ignored when set

	// Generate options
	Seed              uint64 `json:"seed,omitempty"`
	OuterBudget       int    `json:"outer,omitempty"`
	InnerBudget       int    `json:"inner,omitempty"`
	MaxCorridorFanOut int    `json:"fan_out,omitempty"`
	Refresh           bool   `json:"refresh,omitempty"` // bypass the layout cache

	// Render options
	Formats []string `json:"formats,omitempty"`
	Color   bool     `json:"color,omitempty"`  // ANSI colors in text output
	Labels  bool     `json:"labels,omitempty"` // room ids in SVG output
	Spawns  bool     `json:"spawns,omitempty"` // spawn markers in text and SVG output

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Level is the loaded level asset.
	Level *asset.Level

	// Registry is the placed instance registry. It is nil when the layout
	// came from the cache.
	Registry *level.Registry

	// Canvas holds the painted tiles. Nil on cache hits, like Registry.
	Canvas *tilemap.Canvas

	// Layout is the serializable layout every renderer works from.
	Layout sink.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rooms        int
	GraphID      string
	Attempts     int
	Fingerprint  string // SHA-256 of the JSON layout
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: %s)", format, strings.Join(formatNames(), ", "))
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

func formatNames() []string {
	return []string{FormatJSON, FormatText, FormatSVG, FormatPNG, FormatPDF, FormatDOT}
}

// ParseFormats splits a comma separated list such as "txt,svg".
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// SetGenerateDefaults fills zero generation fields.
func (o *Options) SetGenerateDefaults() {
	if o.Seed == 0 {
		o.Seed = level.DefaultSeed
	}
	if o.OuterBudget == 0 {
		o.OuterBudget = level.DefaultOuterBudget
	}
	if o.InnerBudget == 0 {
		o.InnerBudget = level.DefaultInnerBudget
	}
	if o.MaxCorridorFanOut == 0 {
		o.MaxCorridorFanOut = level.DefaultMaxCorridorFanOut
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults fills zero render fields.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLoad checks that a level source is set.
func (o *Options) ValidateForLoad() error {
	if o.Level == nil && o.LevelPath == "" {
		return fmt.Errorf("level or level_path is required")
	}
	return nil
}

// ValidateForGenerate applies generation defaults and checks the budgets.
func (o *Options) ValidateForGenerate() error {
	o.SetGenerateDefaults()
	return o.LevelOptions().Validate()
}

// ValidateForRender applies render defaults and checks the formats.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// LevelOptions returns the layout builder options.
func (o *Options) LevelOptions() level.Options {
	return level.Options{
		OuterBudget:       o.OuterBudget,
		InnerBudget:       o.InnerBudget,
		MaxCorridorFanOut: o.MaxCorridorFanOut,
	}
}

// LevelName returns the level name used in layouts.
func (o *Options) LevelName() string {
	if o.Level != nil && o.Level.Name != "" {
		return o.Level.Name
	}
	base := filepath.Base(o.LevelPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
