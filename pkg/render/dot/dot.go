package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dungeonforge/pkg/core/room"
	"github.com/matzehuels/dungeonforge/pkg/core/roomgraph"
)

// Options configures room graph diagrams.
type Options struct {
	// Detailed adds the node type under each node id.
	Detailed bool
}

var fillColors = map[room.Type]string{
	room.TypeEntrance:   "palegreen",
	room.TypeRoom:       "wheat",
	room.TypeBossRoom:   "salmon",
	room.TypeCorridor:   "lightgrey",
	room.TypeCorridorNS: "lightgrey",
	room.TypeCorridorEW: "lightgrey",
}

// ToDOT converts room graphs to DOT. Several graphs are drawn side by side
// as clusters.
func ToDOT(graphs []*roomgraph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")

	clustered := len(graphs) > 1
	for i, g := range graphs {
		indent := "  "
		if clustered {
			fmt.Fprintf(&buf, "\n  subgraph cluster_%d {\n", i)
			fmt.Fprintf(&buf, "    label=%q;\n", g.ID())
			indent = "    "
		}
		buf.WriteString("\n")
		for _, n := range g.Nodes() {
			fmt.Fprintf(&buf, "%s%q [%s];\n", indent, nodeID(g, n, clustered), strings.Join(fmtAttrs(n, opts.Detailed), ", "))
		}
		for _, n := range g.Nodes() {
			for _, c := range g.Children(n) {
				fmt.Fprintf(&buf, "%s%q -> %q;\n", indent, nodeID(g, n, clustered), nodeID(g, c, clustered))
			}
		}
		if clustered {
			buf.WriteString("  }\n")
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeID namespaces node ids by graph when several graphs share a diagram.
func nodeID(g *roomgraph.Graph, n *roomgraph.Node, clustered bool) string {
	if !clustered {
		return n.ID
	}
	return g.ID() + "/" + n.ID
}

func fmtAttrs(n *roomgraph.Node, detailed bool) []string {
	label := n.ID
	if detailed {
		label += "\n" + n.Type.String()
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if c, ok := fillColors[n.Type]; ok {
		attrs = append(attrs, "fillcolor="+c)
	}
	if n.Type.IsCorridor() {
		attrs = append(attrs, "shape=ellipse")
	}
	if n.Type == room.TypeBossRoom {
		attrs = append(attrs, "penwidth=2")
	}
	return attrs
}

// RenderSVG lays out a DOT graph and returns SVG bytes.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG lays out a DOT graph and returns PNG bytes.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based svg header with a unitless
// one anchored at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
