// Package render turns generated dungeon layouts into pictures and files.
//
// # Overview
//
// Three subpackages cover the output side of dungeonforge:
//
//   - [tilemap]: a tile canvas that doubles as the layout builder's
//     collaborator, stamping rooms and walling off unused doorways
//   - [sink]: JSON, SVG floor plan and text renderers for finished layouts
//   - [dot]: Graphviz diagrams of the authored room graphs
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG produced by [sink] into other formats
// using the external rsvg-convert tool (from librsvg).
//
//	svg := sink.RenderSVG(layout)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// [tilemap]: github.com/matzehuels/dungeonforge/pkg/render/tilemap
// [sink]: github.com/matzehuels/dungeonforge/pkg/render/sink
// [dot]: github.com/matzehuels/dungeonforge/pkg/render/dot
package render
