package sink

import (
	"github.com/matzehuels/dungeonforge/pkg/core/level"
	"github.com/matzehuels/dungeonforge/pkg/core/room"
)

// Layout is the serializable form of a generated level.
type Layout struct {
	Level  string      `json:"level"`
	Graph  string      `json:"graph"`
	Bounds room.Bounds `json:"bounds"`
	Rooms  []Room      `json:"rooms"`
	Tiles  []string    `json:"tiles,omitempty"`
}

// Room is one placed instance in world coordinates.
type Room struct {
	ID       string       `json:"id"`
	Template string       `json:"template"`
	Type     room.Type    `json:"type"`
	Parent   string       `json:"parent,omitempty"`
	Children []string     `json:"children,omitempty"`
	Bounds   room.Bounds  `json:"bounds"`
	Doorways []Doorway    `json:"doorways"`
	Spawns   []room.Point `json:"spawns,omitempty"`
	Entrance bool         `json:"entrance,omitempty"`
	Visited  bool         `json:"visited,omitempty"`
}

// Doorway is a doorway in world coordinates.
type Doorway struct {
	Position    room.Point       `json:"position"`
	Orientation room.Orientation `json:"orientation"`
	Connected   bool             `json:"connected"`
}

// Rows is implemented by tile canvases.
type Rows interface {
	Rows() []string
}

// FromRegistry converts a registry into a Layout. tiles may be nil.
func FromRegistry(levelName string, reg *level.Registry, tiles Rows) Layout {
	l := Layout{Level: levelName, Graph: reg.GraphID()}
	if ext, ok := reg.Extent(); ok {
		l.Bounds = ext
	}
	for _, in := range reg.Instances() {
		r := Room{
			ID:       in.ID,
			Template: in.TemplateID,
			Type:     in.Type,
			Parent:   in.ParentID,
			Children: in.ChildIDs,
			Bounds:   in.Bounds,
			Spawns:   in.WorldSpawnPositions(),
			Entrance: in.Type == room.TypeEntrance,
			Visited:  in.PreviouslyVisited,
		}
		for _, d := range in.Doorways {
			r.Doorways = append(r.Doorways, Doorway{
				Position:    in.DoorwayWorldPosition(d),
				Orientation: d.Orientation,
				Connected:   d.Connected,
			})
		}
		l.Rooms = append(l.Rooms, r)
	}
	if tiles != nil {
		l.Tiles = tiles.Rows()
	}
	return l
}

// RoomAt returns the room whose bounds contain p.
func (l Layout) RoomAt(p room.Point) (Room, bool) {
	for _, r := range l.Rooms {
		if r.Bounds.Contains(p) {
			return r, true
		}
	}
	return Room{}, false
}
