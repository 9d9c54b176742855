// Package tilemap paints generated layouts onto a sparse character grid.
//
// [Canvas] implements level.Collaborator: it stamps each placed instance's
// template tiles at the instance offset, walls off doorways that stayed
// unconnected, and erases an instance again when the builder discards it.
//
//	c := tilemap.New(catalog)
//	b := level.NewBuilder(opts, c, logger)
//	if _, err := b.Generate(graphs, templates, rng); err == nil {
//	    fmt.Println(strings.Join(c.Rows(), "\n"))
//	}
package tilemap

import (
	"strings"

	"github.com/matzehuels/dungeonforge/pkg/core/room"
)

// Glyphs used when a template has no tiles of its own.
const (
	Wall  = '#'
	Floor = '.'
	Empty = ' '
)

// TemplateSource resolves template ids. *catalog.Catalog satisfies it.
type TemplateSource interface {
	Lookup(id string) (*room.Template, bool)
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithSpawnMarker draws r on every spawn position.
func WithSpawnMarker(r rune) Option { return func(c *Canvas) { c.spawn = r } }

// WithBlockedDoorways controls whether unconnected doorways are walled off.
// It defaults to true.
func WithBlockedDoorways(on bool) Option { return func(c *Canvas) { c.noBlock = !on } }

type cell struct {
	glyph rune
	owner string
}

// Canvas is a sparse world-space tile grid. The zero value is not usable;
// call New. Canvas is not safe for concurrent use.
type Canvas struct {
	src     TemplateSource
	spawn   rune
	noBlock bool

	cells   map[room.Point]cell
	painted map[string][]room.Point // instance id -> cells it wrote
	order   []string
}

// New returns an empty canvas that looks templates up in src.
func New(src TemplateSource, opts ...Option) *Canvas {
	c := &Canvas{
		src:     src,
		cells:   make(map[room.Point]cell),
		painted: make(map[string][]room.Point),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnInstancePlaced stamps in and blocks its unconnected doorways.
func (c *Canvas) OnInstancePlaced(in *room.Instance) {
	if _, ok := c.painted[in.ID]; ok {
		c.erase(in.ID)
	}
	c.order = append(c.order, in.ID)
	c.painted[in.ID] = nil

	tmpl, ok := c.src.Lookup(in.TemplateID)
	off := in.Offset()
	for y := in.TemplateBounds.Lower.Y; y <= in.TemplateBounds.Upper.Y; y++ {
		for x := in.TemplateBounds.Lower.X; x <= in.TemplateBounds.Upper.X; x++ {
			local := room.Point{X: x, Y: y}
			g, has := rune(0), false
			if ok {
				g, has = tmpl.TileAt(local)
			}
			if !has {
				g = outline(in.TemplateBounds, local)
			}
			c.set(in.ID, local.Add(off), g)
		}
	}
	if !ok || len(tmpl.Tiles) == 0 {
		for _, d := range in.Doorways {
			c.set(in.ID, in.DoorwayWorldPosition(d), Floor)
		}
	}

	if !c.noBlock {
		for _, d := range in.Doorways {
			if !d.Connected {
				c.block(in, d)
			}
		}
	}
	if c.spawn != 0 {
		for _, p := range in.WorldSpawnPositions() {
			c.set(in.ID, p, c.spawn)
		}
	}
}

// OnAttemptDiscarded erases everything in painted. Unknown instances are ignored.
func (c *Canvas) OnAttemptDiscarded(in *room.Instance) {
	if _, ok := c.painted[in.ID]; ok {
		c.erase(in.ID)
	}
}

// block copies the doorway's tile region one cell along the wall so the
// opening is filled with wall tiles. North and south doorways shift right;
// east and west doorways shift down.
func (c *Canvas) block(in *room.Instance, d room.Doorway) {
	origin := in.ToWorld(d.CopyRegion.Origin)
	for x := 0; x < d.CopyRegion.Width; x++ {
		for y := 0; y < d.CopyRegion.Height; y++ {
			src := room.Point{X: origin.X + x, Y: origin.Y - y}
			var dst room.Point
			switch d.Orientation.Axis() {
			case room.AxisVertical:
				dst = room.Point{X: origin.X + 1 + x, Y: origin.Y - y}
			case room.AxisHorizontal:
				dst = room.Point{X: origin.X + x, Y: origin.Y - 1 - y}
			default:
				continue
			}
			if g, ok := c.At(src); ok {
				c.set(in.ID, dst, g)
			}
		}
	}
}

func (c *Canvas) set(owner string, p room.Point, g rune) {
	c.cells[p] = cell{glyph: g, owner: owner}
	c.painted[owner] = append(c.painted[owner], p)
}

func (c *Canvas) erase(id string) {
	for _, p := range c.painted[id] {
		if cur, ok := c.cells[p]; ok && cur.owner == id {
			delete(c.cells, p)
		}
	}
	delete(c.painted, id)
	for i, o := range c.order {
		if o == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// outline walls the edges of b. Edges of a side narrower than three tiles
// stay floor so thin corridors remain walkable.
func outline(b room.Bounds, p room.Point) rune {
	if b.Width() > 2 && (p.X == b.Lower.X || p.X == b.Upper.X) {
		return Wall
	}
	if b.Height() > 2 && (p.Y == b.Lower.Y || p.Y == b.Upper.Y) {
		return Wall
	}
	return Floor
}

// At returns the glyph at world position p.
func (c *Canvas) At(p room.Point) (rune, bool) {
	cl, ok := c.cells[p]
	return cl.glyph, ok
}

// Owner returns the id of the instance that last painted p.
func (c *Canvas) Owner(p room.Point) (string, bool) {
	cl, ok := c.cells[p]
	return cl.owner, ok
}

// Len returns the number of painted cells.
func (c *Canvas) Len() int { return len(c.cells) }

// Instances returns the ids of stamped instances in stamping order.
func (c *Canvas) Instances() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Bounds returns the extent of all painted cells.
func (c *Canvas) Bounds() (room.Bounds, bool) {
	var b room.Bounds
	first := true
	for p := range c.cells {
		pb := room.Bounds{Lower: p, Upper: p}
		if first {
			b, first = pb, false
			continue
		}
		b = b.Union(pb)
	}
	return b, !first
}

// Rows renders the canvas top row first. Unpainted cells are spaces and
// trailing spaces are trimmed.
func (c *Canvas) Rows() []string {
	b, ok := c.Bounds()
	if !ok {
		return nil
	}
	rows := make([]string, 0, b.Height())
	var sb strings.Builder
	for y := b.Upper.Y; y >= b.Lower.Y; y-- {
		sb.Reset()
		for x := b.Lower.X; x <= b.Upper.X; x++ {
			if g, ok := c.At(room.Point{X: x, Y: y}); ok {
				sb.WriteRune(g)
			} else {
				sb.WriteRune(Empty)
			}
		}
		rows = append(rows, strings.TrimRight(sb.String(), string(Empty)))
	}
	return rows
}

// String joins Rows with newlines.
func (c *Canvas) String() string { return strings.Join(c.Rows(), "\n") }

// Reset clears the canvas.
func (c *Canvas) Reset() {
	clear(c.cells)
	clear(c.painted)
	c.order = c.order[:0]
}
