// Package dot draws room graphs as Graphviz diagrams.
//
// Each node becomes a box filled by room type and each parent-child link an
// arrow. [ToDOT] produces the DOT source; [RenderSVG] and [RenderPNG] lay it
// out with the embedded Graphviz engine.
//
//	src := dot.ToDOT([]*roomgraph.Graph{g}, dot.Options{})
//	svg, err := dot.RenderSVG(ctx, src)
package dot
