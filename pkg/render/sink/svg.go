package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/dungeonforge/pkg/core/room"
)

const (
	defaultCellSize = 10.0
	defaultMargin   = 2
)

var typeFill = map[room.Type]string{
	room.TypeEntrance:   "#8fd694",
	room.TypeRoom:       "#d9c7a7",
	room.TypeBossRoom:   "#e07a5f",
	room.TypeCorridorNS: "#b8b8b8",
	room.TypeCorridorEW: "#b8b8b8",
	room.TypeCorridor:   "#b8b8b8",
}

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	cell     float64
	margin   int
	labels   bool
	spawns   bool
	openOnly bool
}

// WithCellSize sets the edge length of one tile in SVG units.
func WithCellSize(px float64) SVGOption { return func(r *svgRenderer) { r.cell = px } }

// WithLabels writes each room id in its center.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithSpawns marks spawn positions.
func WithSpawns() SVGOption { return func(r *svgRenderer) { r.spawns = true } }

// WithConnectedDoorwaysOnly hides doorways that were not used.
func WithConnectedDoorwaysOnly() SVGOption { return func(r *svgRenderer) { r.openOnly = true } }

func newSVGRenderer(opts ...SVGOption) *svgRenderer {
	r := &svgRenderer{cell: defaultCellSize, margin: defaultMargin}
	for _, opt := range opts {
		opt(r)
	}
	if r.cell <= 0 {
		r.cell = defaultCellSize
	}
	return r
}

// RenderSVG draws l as a floor plan. World y grows north, so rows are
// flipped onto SVG's downward axis.
func RenderSVG(l Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	cols := l.Bounds.Width() + 2*r.margin
	rows := l.Bounds.Height() + 2*r.margin
	if len(l.Rooms) == 0 {
		cols, rows = 2*r.margin, 2*r.margin
	}
	width, height := float64(cols)*r.cell, float64(rows)*r.cell

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <title>%s %s</title>`+"\n", html.EscapeString(l.Level), html.EscapeString(l.Graph))
	buf.WriteString(`  <rect width="100%" height="100%" fill="#1d1d1f"/>` + "\n")

	for _, rm := range l.Rooms {
		r.renderRoom(&buf, l.Bounds, rm)
	}
	for _, rm := range l.Rooms {
		for _, d := range rm.Doorways {
			if r.openOnly && !d.Connected {
				continue
			}
			r.renderDoorway(&buf, l.Bounds, d)
		}
	}
	if r.spawns {
		for _, rm := range l.Rooms {
			for _, p := range rm.Spawns {
				x, y := r.center(l.Bounds, p)
				fmt.Fprintf(&buf, `  <circle class="spawn" cx="%.1f" cy="%.1f" r="%.1f" fill="#f2cc8f"/>`+"\n", x, y, r.cell/3)
			}
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// origin maps the top-left corner of world tile p to SVG coordinates.
func (r *svgRenderer) origin(ext room.Bounds, p room.Point) (float64, float64) {
	x := float64(p.X-ext.Lower.X+r.margin) * r.cell
	y := float64(ext.Upper.Y-p.Y+r.margin) * r.cell
	return x, y
}

func (r *svgRenderer) center(ext room.Bounds, p room.Point) (float64, float64) {
	x, y := r.origin(ext, p)
	return x + r.cell/2, y + r.cell/2
}

func (r *svgRenderer) renderRoom(buf *bytes.Buffer, ext room.Bounds, rm Room) {
	x, y := r.origin(ext, room.Point{X: rm.Bounds.Lower.X, Y: rm.Bounds.Upper.Y})
	w := float64(rm.Bounds.Width()) * r.cell
	h := float64(rm.Bounds.Height()) * r.cell
	fill, ok := typeFill[rm.Type]
	if !ok {
		fill = "#ffffff"
	}
	fmt.Fprintf(buf, `  <rect id="room-%s" class="room %s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#3d3d3d" stroke-width="1"/>`+"\n",
		html.EscapeString(rm.ID), rm.Type, x, y, w, h, fill)
	if r.labels {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="monospace" font-size="%.1f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			x+w/2, y+h/2, r.cell, html.EscapeString(rm.ID))
	}
}

func (r *svgRenderer) renderDoorway(buf *bytes.Buffer, ext room.Bounds, d Doorway) {
	x, y := r.origin(ext, d.Position)
	fill := "#3d3d3d"
	if d.Connected {
		fill = "#f4f1de"
	}
	fmt.Fprintf(buf, `  <rect class="door %s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		d.Orientation, x, y, r.cell, r.cell, fill)
}
