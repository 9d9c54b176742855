package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dungeonforge/pkg/asset"
	"github.com/matzehuels/dungeonforge/pkg/cache"
	"github.com/matzehuels/dungeonforge/pkg/core/catalog"
	"github.com/matzehuels/dungeonforge/pkg/core/level"
	"github.com/matzehuels/dungeonforge/pkg/render/sink"
	"github.com/matzehuels/dungeonforge/pkg/render/tilemap"
)

// Runner executes the load, generate and render stages with caching.
// The CLI commands and the HTTP server both go through it, so cache keys
// and logging stay identical across entry points.
//
// A Runner holds no per-run state beyond its cache and logger. Each
// Generate call builds its own level.Builder, so multiple goroutines can
// share one Runner with different options (the sweep command relies on this).
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
// If logger is nil, log.Default is used.
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete load → generate → render pipeline.
//
// Stage errors are wrapped with the stage name ("load: ...", "generate: ...")
// but keep their error codes, so callers can still branch with errors.Is.
// On success the result carries the layout, the rendered artifacts for
// every format in opts.Formats, and cache hit information for both stages.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	lvl, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	opts.Level = lvl

	result, err := r.Generate(ctx, lvl, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, result, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load returns opts.Level if set, otherwise reads opts.LevelPath.
// The file format is chosen by extension; see asset.ReadFile.
func (r *Runner) Load(_ context.Context, opts Options) (*asset.Level, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	if opts.Level != nil {
		return opts.Level, nil
	}
	lvl, err := asset.ReadFile(opts.LevelPath)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded level", "path", opts.LevelPath, "templates", len(lvl.Templates), "graphs", len(lvl.Graphs))
	return lvl, nil
}

// Generate validates lvl and lays it out.
//
// Validation warnings are logged and generation goes ahead. Error
// diagnostics, such as a graph that is not a tree rooted at its entrance,
// abort with level.ErrInvalidDefinition before any attempt is made.
//
// The cache key covers the level content, the seed and every option that
// changes the search, so a cached layout is only reused when regenerating
// would produce the same one. opts.Refresh skips the lookup but still
// stores the fresh layout.
func (r *Runner) Generate(ctx context.Context, lvl *asset.Level, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, err
	}
	if opts.Level == nil {
		opts.Level = lvl
	}

	def, err := lvl.Definition()
	if err != nil {
		return nil, err
	}
	// Check before hashing: a broken definition must never reach the cache.
	diags, err := def.Check()
	for _, d := range diags {
		if d.Severity == level.SeverityWarning {
			opts.Logger.Warn(d.Message, "subject", d.Subject)
		}
	}
	if err != nil {
		return nil, err
	}

	result := &Result{Level: lvl, Artifacts: make(map[string][]byte)}
	start := time.Now()

	// A key error only disables caching for this run.
	key, keyErr := r.layoutKey(lvl, opts)
	if keyErr == nil && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if l, err := sink.ReadJSON(data); err == nil {
				result.Layout = l
				result.CacheInfo.LayoutHit = true
				result.Stats = statsFor(l, data)
				result.Stats.GenerateTime = time.Since(start)
				opts.Logger.Debug("layout cache hit", "graph", l.Graph, "seed", opts.Seed)
				return result, nil
			}
		}
	}

	canvas := tilemap.New(catalog.Build(def.Templates, opts.Logger), tilemap.WithSpawnMarker(spawnGlyph(opts)))
	b := level.NewBuilder(opts.LevelOptions(), canvas, opts.Logger)
	reg, err := b.GenerateContext(ctx, def.Graphs, def.Templates, level.NewRand(opts.Seed))
	if err != nil {
		return nil, err
	}

	result.Registry = reg
	result.Canvas = canvas
	result.Layout = sink.FromRegistry(opts.LevelName(), reg, canvas)

	data, err := sink.RenderJSON(result.Layout)
	if err != nil {
		return nil, fmt.Errorf("encode layout: %w", err)
	}
	result.Stats = statsFor(result.Layout, data)
	result.Stats.Attempts = b.Attempts()
	result.Stats.GenerateTime = time.Since(start)

	if keyErr == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
			opts.Logger.Warn("cache layout", "error", err)
		}
	}

	r.Logger.Info("generated layout",
		"level", result.Layout.Level,
		"graph", result.Stats.GraphID,
		"rooms", result.Stats.Rooms,
		"attempts", result.Stats.Attempts,
		"duration", result.Stats.GenerateTime)

	return result, nil
}

// layoutKey derives the layout cache key from the level's canonical JSON
// encoding, so the same level read from YAML or JSON shares an entry.
func (r *Runner) layoutKey(lvl *asset.Level, opts Options) (string, error) {
	data, err := asset.Marshal(lvl, asset.FormatJSON)
	if err != nil {
		return "", err
	}
	return r.Keyer.LayoutKey(cache.Hash(data), cache.LayoutKeyOpts{
		Seed:              opts.Seed,
		OuterBudget:       opts.OuterBudget,
		InnerBudget:       opts.InnerBudget,
		MaxCorridorFanOut: opts.MaxCorridorFanOut,
		Spawns:            opts.Spawns,
	}), nil
}

// statsFor fills the layout-derived statistics. Timing and attempt counts
// are set by the caller.
func statsFor(l sink.Layout, data []byte) Stats {
	return Stats{
		Rooms:       len(l.Rooms),
		GraphID:     l.Graph,
		Fingerprint: cache.Hash(data),
	}
}

// spawnGlyph returns the tile marking spawn points, or 0 to leave them out.
func spawnGlyph(opts Options) rune {
	if opts.Spawns {
		return '@'
	}
	return 0
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
