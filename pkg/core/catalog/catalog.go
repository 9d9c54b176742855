// Package catalog indexes room templates by id and by type for the layout
// search.
package catalog

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dungeonforge/pkg/core/room"
)

// Rand is the random source used to pick among matching templates.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Catalog is a read-only template index. Iteration and random selection
// follow the order templates were given to [Build].
type Catalog struct {
	byID   map[string]*room.Template
	order  []*room.Template
	byType map[room.Type][]*room.Template
}

// Build indexes templates. A template whose id was already seen is logged
// and skipped, so the first occurrence wins. Nil entries are ignored.
// A nil logger discards output.
func Build(templates []*room.Template, logger *log.Logger) *Catalog {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	c := &Catalog{
		byID:   make(map[string]*room.Template, len(templates)),
		byType: make(map[room.Type][]*room.Template),
	}
	for _, t := range templates {
		if t == nil {
			continue
		}
		if _, dup := c.byID[t.ID]; dup {
			logger.Warn("duplicate template id, keeping first", "id", t.ID, "type", t.Type)
			continue
		}
		c.byID[t.ID] = t
		c.order = append(c.order, t)
		c.byType[t.Type] = append(c.byType[t.Type], t)
	}
	logger.Debug("catalog built", "templates", len(c.order), "types", len(c.byType))
	return c
}

// Lookup returns the template with the given id.
func (c *Catalog) Lookup(id string) (*room.Template, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// RandomMatching returns a uniformly random template of type t. It reports
// false when the catalog holds no template of that type, in which case rng
// is not consulted.
func (c *Catalog) RandomMatching(t room.Type, rng Rand) (*room.Template, bool) {
	matches := c.byType[t]
	if len(matches) == 0 {
		return nil, false
	}
	return matches[rng.IntN(len(matches))], true
}

// Len returns the number of indexed templates.
func (c *Catalog) Len() int { return len(c.order) }

// Templates returns the indexed templates in insertion order.
func (c *Catalog) Templates() []*room.Template {
	out := make([]*room.Template, len(c.order))
	copy(out, c.order)
	return out
}

// HasType reports whether at least one template of type t exists.
func (c *Catalog) HasType(t room.Type) bool { return len(c.byType[t]) > 0 }

// CountByType returns how many templates exist for each type present.
func (c *Catalog) CountByType() map[room.Type]int {
	out := make(map[room.Type]int, len(c.byType))
	for t, ts := range c.byType {
		out[t] = len(ts)
	}
	return out
}
