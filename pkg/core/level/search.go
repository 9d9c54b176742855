package level

import (
	"context"
	"fmt"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"github.com/matzehuels/dungeonforge/pkg/core/catalog"
	"github.com/matzehuels/dungeonforge/pkg/core/room"
	"github.com/matzehuels/dungeonforge/pkg/core/roomgraph"
	dferrors "github.com/matzehuels/dungeonforge/pkg/errors"
)

// attempt lays out g once on a fresh registry. The registry is returned
// even on failure so it can be torn down; it is complete only when err is nil.
func (b *Builder) attempt(ctx context.Context, g *roomgraph.Graph, cat *catalog.Catalog, rng Rand) (*Registry, error) {
	reg := newRegistry(g.ID())

	entrance, ok := g.Entrance()
	if !ok {
		return reg, dferrors.New(dferrors.ErrCodeNoEntranceNode, "graph %s has no entrance node", g.ID())
	}

	open := queue.New[*roomgraph.Node]()
	open.Enqueue(entrance)
	queued := mapset.New[string]()
	queued.Put(entrance.ID)
	for !open.Empty() {
		node := open.Dequeue()
		for _, child := range g.Children(node) {
			if queued.Has(child.ID) {
				return reg, fmt.Errorf("node %s under %s: %w", child.ID, node.ID, ErrNodeRevisited)
			}
			queued.Put(child.ID)
			open.Enqueue(child)
		}

		if node == entrance {
			tmpl, ok := cat.RandomMatching(room.TypeEntrance, rng)
			if !ok {
				return reg, fmt.Errorf("entrance %s: %w: %s", node.ID, ErrNoMatchingTemplate, room.TypeEntrance)
			}
			in := room.NewInstance(node.ID, "", node.ChildIDs, tmpl)
			in.Positioned = true
			reg.add(in)
			continue
		}

		parent, ok := reg.Get(node.ParentID())
		if !ok || !parent.Positioned {
			return reg, fmt.Errorf("node %s: %w: %q", node.ID, ErrParentNotPlaced, node.ParentID())
		}
		if err := b.connect(ctx, reg, parent, node, cat, rng); err != nil {
			return reg, err
		}
	}
	// Every node must hang off the entrance; a partial layout is a failure.
	if reg.Len() != g.Len() {
		return reg, fmt.Errorf("graph %s: %w: placed %d of %d", g.ID(), ErrNodesUnplaced, reg.Len(), g.Len())
	}
	return reg, nil
}
