// Package pkg provides the core libraries for dungeonforge dungeon layout
// generation.
//
// # Overview
//
// Dungeonforge turns a room graph (which rooms exist and how they connect)
// and a set of authored room templates into a 2D floor plan in which every
// graph edge is a pair of touching doorways and no two rooms overlap. The
// pkg directory is organized into these areas:
//
//  1. [core] - Domain logic (room model, room graphs, template catalog,
//     layout search)
//  2. [asset] - Level files: the JSON and YAML wire form of templates and
//     graphs
//  3. [render] - Tile canvas, layout sinks (JSON, text, SVG) and Graphviz
//     room graph diagrams
//  4. [pipeline] - Orchestration (load → generate → render) with caching
//  5. [cache], [config], [errors], [observability], [buildinfo] -
//     Infrastructure shared by the CLI and the HTTP server
//
// # Architecture
//
// The typical data flow through dungeonforge:
//
//	Level file (templates + room graphs)
//	         ↓
//	    [asset] package (decode, convert to core types)
//	         ↓
//	    [core/level] package (validate, pick a graph, place rooms)
//	         ↓
//	    [render/tilemap] collaborator (paint tiles as rooms commit)
//	         ↓
//	    [render/sink] package (JSON, text, SVG; PNG/PDF via [render])
//
// # Quick Start
//
// Generate a level and print it:
//
//	import (
//	    "context"
//	    "fmt"
//	    "github.com/matzehuels/dungeonforge/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    LevelPath: "examples/levels/crypt.yaml",
//	    Seed:      7,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Print(string(result.Artifacts["txt"]))
//
// Or drive the layout builder directly:
//
//	def, _ := lvl.Definition()
//	b := level.NewBuilder(level.Options{}, tilemap.New(catalog.Build(def.Templates, nil)), nil)
//	reg, err := b.Generate(def.Graphs, def.Templates, level.NewRand(7))
//
// # Errors
//
// Errors carry machine-readable codes from [errors]. Generation surfaces
// NO_GRAPHS_AVAILABLE and BUDGET_EXHAUSTED; malformed input uses the
// INVALID_* family.
package pkg
