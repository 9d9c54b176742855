package room

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTemplateID is returned by [Template.Validate] for a template without an id.
	ErrEmptyTemplateID = errors.New("template id must not be empty")

	// ErrInvalidBounds is returned when Lower is greater than Upper on either axis.
	ErrInvalidBounds = errors.New("template lower bound exceeds upper bound")

	// ErrDoorwayOutside is returned when a doorway position lies outside the template bounds.
	ErrDoorwayOutside = errors.New("doorway lies outside template bounds")

	// ErrDoorwayOrientation is returned when a doorway has no orientation.
	ErrDoorwayOrientation = errors.New("doorway has no orientation")

	// ErrTilesShape is returned when Tiles does not match the template size.
	ErrTilesShape = errors.New("tile rows do not match template bounds")
)

// Template is an authored room prefab: fixed local bounds, doorway sockets
// and optional tile content. Templates are shared and must not be mutated
// after they are handed to a catalog.
type Template struct {
	ID             string
	Type           Type
	Lower          Point
	Upper          Point
	Doorways       []Doorway
	SpawnPositions []Point

	// Tiles holds one string per row, top row first, so Tiles[0] is the
	// row at Upper.Y. Each row has Width() runes. Empty means the template
	// carries no tile content and renderers draw its outline only.
	Tiles []string
}

// Bounds returns the template-local bounds.
func (t *Template) Bounds() Bounds { return Bounds{Lower: t.Lower, Upper: t.Upper} }

// Width returns the number of columns.
func (t *Template) Width() int { return t.Upper.X - t.Lower.X + 1 }

// Height returns the number of rows.
func (t *Template) Height() int { return t.Upper.Y - t.Lower.Y + 1 }

// TileAt returns the glyph at template-local p. The second result is false
// when p is outside the template or the template has no tiles.
func (t *Template) TileAt(p Point) (rune, bool) {
	if len(t.Tiles) == 0 || !t.Bounds().Contains(p) {
		return 0, false
	}
	row := []rune(t.Tiles[t.Upper.Y-p.Y])
	col := p.X - t.Lower.X
	if col >= len(row) {
		return 0, false
	}
	return row[col], true
}

// DoorwayFacing returns the index of the first doorway with orientation o,
// or -1.
func (t *Template) DoorwayFacing(o Orientation) int {
	for i, d := range t.Doorways {
		if d.Orientation == o {
			return i
		}
	}
	return -1
}

// Validate checks the template's internal consistency. The returned error
// wraps one of the package sentinels.
func (t *Template) Validate() error {
	if t.ID == "" {
		return ErrEmptyTemplateID
	}
	if !t.Bounds().Valid() {
		return fmt.Errorf("template %s: %w", t.ID, ErrInvalidBounds)
	}
	for i, d := range t.Doorways {
		if d.Orientation == OrientationNone {
			return fmt.Errorf("template %s doorway %d: %w", t.ID, i, ErrDoorwayOrientation)
		}
		if !t.Bounds().Contains(d.Position) {
			return fmt.Errorf("template %s doorway %d at %s: %w", t.ID, i, d.Position, ErrDoorwayOutside)
		}
	}
	if len(t.Tiles) > 0 {
		if len(t.Tiles) != t.Height() {
			return fmt.Errorf("template %s: %w: %d rows, want %d", t.ID, ErrTilesShape, len(t.Tiles), t.Height())
		}
		for i, row := range t.Tiles {
			if n := len([]rune(row)); n != t.Width() {
				return fmt.Errorf("template %s row %d: %w: %d columns, want %d", t.ID, i, ErrTilesShape, n, t.Width())
			}
		}
	}
	return nil
}
