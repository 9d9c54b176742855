package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/dungeonforge/pkg/asset"
	"github.com/matzehuels/dungeonforge/pkg/cache"
	"github.com/matzehuels/dungeonforge/pkg/core/roomgraph"
	"github.com/matzehuels/dungeonforge/pkg/observability"
	"github.com/matzehuels/dungeonforge/pkg/render"
	"github.com/matzehuels/dungeonforge/pkg/render/dot"
	"github.com/matzehuels/dungeonforge/pkg/render/sink"
)

// pngScale renders floor plans at twice their SVG size.
const pngScale = 2.0

// Render generates artifacts for the requested formats. lvl is only needed
// for the dot format and may be nil otherwise.
func Render(ctx context.Context, l sink.Layout, lvl *asset.Level, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var svg []byte
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = sink.RenderJSON(l)
		case FormatText:
			data = []byte(sink.RenderText(l, sink.WithColor(opts.Color)))
		case FormatSVG, FormatPNG, FormatPDF:
			if svg == nil {
				svg = sink.RenderSVG(l, svgOptions(opts)...)
			}
			switch format {
			case FormatSVG:
				data = svg
			case FormatPNG:
				data, err = render.ToPNG(ctx, svg, pngScale)
			case FormatPDF:
				data, err = render.ToPDF(ctx, svg)
			}
		case FormatDOT:
			data, err = renderDOT(lvl)
		default:
			err = ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func svgOptions(opts Options) []sink.SVGOption {
	var out []sink.SVGOption
	if opts.Labels {
		out = append(out, sink.WithLabels())
	}
	if opts.Spawns {
		out = append(out, sink.WithSpawns())
	}
	return out
}

func renderDOT(lvl *asset.Level) ([]byte, error) {
	if lvl == nil {
		return nil, fmt.Errorf("level is required for dot output")
	}
	graphs, err := levelGraphs(lvl)
	if err != nil {
		return nil, err
	}
	return []byte(dot.ToDOT(graphs, dot.Options{Detailed: true})), nil
}

func levelGraphs(lvl *asset.Level) ([]*roomgraph.Graph, error) {
	def, err := lvl.Definition()
	if err != nil {
		return nil, err
	}
	return def.Graphs, nil
}

// RenderWithCacheInfo renders result.Layout, serving artifacts from the
// cache when every requested format is present.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, result *Result, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, hit, err := r.render(ctx, result, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, hit, err
}

func (r *Runner) render(ctx context.Context, result *Result, opts Options) (map[string][]byte, bool, error) {
	layoutHash := result.Stats.Fingerprint
	if layoutHash == "" {
		data, err := sink.RenderJSON(result.Layout)
		if err != nil {
			return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
		}
		layoutHash = cache.Hash(data)
	}
	keyFor := func(format string) string {
		return r.Keyer.ArtifactKey(layoutHash, cache.ArtifactKeyOpts{
			Format: format,
			Labels: opts.Labels,
			Color:  opts.Color && format == FormatText,
		})
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, hit, err := r.Cache.Get(ctx, keyFor(format))
		if err != nil || !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	rendered, err := Render(ctx, result.Layout, result.Level, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		if format == FormatDOT {
			continue
		}
		_ = r.Cache.Set(ctx, keyFor(format), data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Render is RenderWithCacheInfo without the cache hit flag.
func (r *Runner) Render(ctx context.Context, result *Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, result, opts)
	return artifacts, err
}
