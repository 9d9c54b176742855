package asset

import (
	"fmt"

	"github.com/matzehuels/dungeonforge/pkg/core/level"
	"github.com/matzehuels/dungeonforge/pkg/core/room"
	"github.com/matzehuels/dungeonforge/pkg/core/roomgraph"
	"github.com/matzehuels/dungeonforge/pkg/errors"
)

// Definition converts the wire level into core types.
//
// Unknown type or orientation names, malformed identifiers and structurally
// broken graphs are rejected. Semantic gaps such as a missing corridor
// template are left to level.Validate.
func (l *Level) Definition() (level.Definition, error) {
	def := level.Definition{Name: l.Name}
	if l.Name != "" {
		if err := errors.ValidateLevelName(l.Name); err != nil {
			return def, errors.Wrap(errors.ErrCodeInvalidLevel, err, "level name")
		}
	}

	for i, wt := range l.Templates {
		t, err := wt.template()
		if err != nil {
			return def, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "template %d (%s)", i, wt.ID)
		}
		def.Templates = append(def.Templates, t)
	}
	for i, wg := range l.Graphs {
		g, err := wg.graph()
		if err != nil {
			return def, errors.Wrap(errors.ErrCodeInvalidGraph, err, "graph %d (%s)", i, wg.ID)
		}
		def.Graphs = append(def.Graphs, g)
	}
	return def, nil
}

func (wt Template) template() (*room.Template, error) {
	if err := errors.ValidateID("template", wt.ID); err != nil {
		return nil, err
	}
	typ, err := room.ParseType(wt.Type)
	if err != nil {
		return nil, err
	}
	t := &room.Template{
		ID:             wt.ID,
		Type:           typ,
		Lower:          wt.Lower,
		Upper:          wt.Upper,
		SpawnPositions: wt.SpawnPositions,
		Tiles:          wt.Tiles,
	}
	for i, wd := range wt.Doorways {
		o, err := room.ParseOrientation(wd.Orientation)
		if err != nil {
			return nil, fmt.Errorf("doorway %d: %w", i, err)
		}
		t.Doorways = append(t.Doorways, room.Doorway{
			Position:    wd.Position,
			Orientation: o,
			CopyRegion:  wd.CopyRegion,
		})
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (wg Graph) graph() (*roomgraph.Graph, error) {
	if err := errors.ValidateID("graph", wg.ID); err != nil {
		return nil, err
	}
	parents := make(map[string][]string)
	for _, wn := range wg.Nodes {
		for _, c := range wn.Children {
			parents[c] = append(parents[c], wn.ID)
		}
	}
	nodes := make([]roomgraph.Node, 0, len(wg.Nodes))
	for _, wn := range wg.Nodes {
		if err := errors.ValidateID("node", wn.ID); err != nil {
			return nil, err
		}
		typ, err := room.ParseType(wn.Type)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", wn.ID, err)
		}
		nodes = append(nodes, roomgraph.Node{
			ID:        wn.ID,
			Type:      typ,
			ParentIDs: parents[wn.ID],
			ChildIDs:  wn.Children,
		})
	}
	return roomgraph.New(wg.ID, nodes)
}

// FromDefinition converts core types back into the wire form.
func FromDefinition(def level.Definition) *Level {
	l := &Level{Name: def.Name}
	for _, t := range def.Templates {
		wt := Template{
			ID:             t.ID,
			Type:           t.Type.String(),
			Lower:          t.Lower,
			Upper:          t.Upper,
			SpawnPositions: t.SpawnPositions,
			Tiles:          t.Tiles,
		}
		for _, d := range t.Doorways {
			wt.Doorways = append(wt.Doorways, Doorway{
				Position:    d.Position,
				Orientation: d.Orientation.String(),
				CopyRegion:  d.CopyRegion,
			})
		}
		l.Templates = append(l.Templates, wt)
	}
	for _, g := range def.Graphs {
		wg := Graph{ID: g.ID()}
		for _, n := range g.Nodes() {
			wg.Nodes = append(wg.Nodes, Node{ID: n.ID, Type: n.Type.String(), Children: n.ChildIDs})
		}
		l.Graphs = append(l.Graphs, wg)
	}
	return l
}
