// Package sink renders generated dungeon layouts into output formats.
//
// A sink takes a [Layout] (built from a level.Registry with [FromRegistry])
// and produces bytes:
//
//   - JSON: the full placement record, one entry per room
//   - SVG: a floor plan with rooms filled by type and doorways marked
//   - Text: the tile canvas as rows of glyphs, optionally colored
//
// Basic usage:
//
//	l := sink.FromRegistry("crypt", reg, canvas)
//	data, err := sink.RenderJSON(l)
//	svg := sink.RenderSVG(l, sink.WithCellSize(12), sink.WithLabels())
//	txt := sink.RenderText(l, sink.WithColor(true))
package sink
