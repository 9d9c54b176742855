package level

import (
	"context"
	"errors"
	"fmt"

	"github.com/matzehuels/dungeonforge/pkg/core/catalog"
	"github.com/matzehuels/dungeonforge/pkg/core/room"
	"github.com/matzehuels/dungeonforge/pkg/core/roomgraph"
)

// Reasons a single parent doorway cannot take a child. Each one rules the
// doorway out for the rest of the attempt.
var (
	ErrNoMatchingTemplate = errors.New("no template matches the room type")
	ErrDoorwayMismatch    = errors.New("template has no doorway facing the parent")
	ErrOverlap            = errors.New("room would overlap a placed room")
	ErrCorridorFanOut     = errors.New("parent already has the maximum number of corridors")
)

// Reasons a node cannot be attached at all. These end the attempt.
var (
	ErrNoOpenDoorway   = errors.New("parent has no open doorway left")
	ErrParentNotPlaced = errors.New("parent room is not placed")
	ErrNodeRevisited   = errors.New("node reached twice")
	ErrNodesUnplaced   = errors.New("nodes not reachable from the entrance")
)

// connect attaches node to parent, trying open parent doorways in random
// order until one takes. On success the child is registered.
func (b *Builder) connect(ctx context.Context, reg *Registry, parent *room.Instance, node *roomgraph.Node, cat *catalog.Catalog, rng Rand) error {
	for {
		open := parent.OpenDoorways()
		if len(open) == 0 {
			return fmt.Errorf("node %s (%s) under %s: %w", node.ID, node.Type, parent.ID, ErrNoOpenDoorway)
		}
		door := &parent.Doorways[open[rng.IntN(len(open))]]

		child, err := b.tryDoorway(reg, parent, door, node, cat, rng)
		if err != nil {
			door.Unavailable = true
			b.logger.Debug("doorway rejected",
				"node", node.ID, "type", node.Type, "parent", parent.ID,
				"door", door.Position, "facing", door.Orientation, "reason", err)
			b.hooks.OnConnectFailed(ctx, node.ID, err)
			continue
		}
		reg.add(child)
		return nil
	}
}

// tryDoorway builds and positions a child instance against one parent
// doorway. It mutates doorway state only on success.
func (b *Builder) tryDoorway(reg *Registry, parent *room.Instance, door *room.Doorway, node *roomgraph.Node, cat *catalog.Catalog, rng Rand) (*room.Instance, error) {
	if node.Type.IsCorridor() && reg.CorridorChildren(parent.ID) >= b.opts.MaxCorridorFanOut {
		return nil, ErrCorridorFanOut
	}

	want := templateType(node.Type, door.Orientation)
	tmpl, ok := cat.RandomMatching(want, rng)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoMatchingTemplate, want)
	}

	child := room.NewInstance(node.ID, parent.ID, node.ChildIDs, tmpl)
	facing := door.Orientation.Opposite()
	ci := -1
	for i, d := range child.Doorways {
		if d.Orientation == facing {
			ci = i
			break
		}
	}
	if ci < 0 {
		return nil, fmt.Errorf("%w: template %s needs a %s doorway", ErrDoorwayMismatch, tmpl.ID, facing)
	}
	childDoor := &child.Doorways[ci]

	child.MoveTo(placement(parent.DoorwayWorldPosition(*door), *childDoor, tmpl.Lower))
	if other := reg.overlapping(child); other != nil {
		return nil, fmt.Errorf("%w: %s at %s hits %s at %s", ErrOverlap, child.ID, child.Bounds, other.ID, other.Bounds)
	}

	door.Connected, door.Unavailable = true, true
	childDoor.Connected, childDoor.Unavailable = true, true
	child.Positioned = true
	return child, nil
}

// placement returns the world lower bound for a child template so that
// childDoor lands one cell beyond parentDoor. The step direction comes from
// the child's doorway: a west-facing child doorway pushes the child east.
func placement(parentDoor room.Point, childDoor room.Doorway, tmplLower room.Point) room.Point {
	return parentDoor.
		Sub(childDoor.Orientation.Normal()).
		Add(tmplLower).
		Sub(childDoor.Position)
}

// templateType resolves the corridor placeholder against the orientation of
// the parent doorway. Other types map to themselves.
func templateType(t room.Type, parentFacing room.Orientation) room.Type {
	if t != room.TypeCorridor {
		return t
	}
	switch parentFacing.Axis() {
	case room.AxisVertical:
		return room.TypeCorridorNS
	case room.AxisHorizontal:
		return room.TypeCorridorEW
	}
	return room.TypeCorridor
}
