package roomgraph

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/matzehuels/dungeonforge/pkg/core/room"
)

// Whole-graph problems reported by [Validate].
var (
	ErrNoEntrance        = errors.New("graph has no entrance")
	ErrMultipleEntrances = errors.New("graph has more than one entrance")
	ErrEntranceHasParent = errors.New("entrance has a parent")
	ErrCycle             = errors.New("graph contains a cycle")
	ErrUnreachable       = errors.New("node is not reachable from the entrance")
	ErrMultipleBosses    = errors.New("graph has more than one boss room")
	ErrEmptyGraph        = errors.New("graph has no nodes")
)

// Validate reports every whole-graph problem in g, joined into one error.
// It returns nil for a graph the layout search can use as authored.
func Validate(g *Graph) error {
	if g.Len() == 0 {
		return fmt.Errorf("graph %s: %w", g.id, ErrEmptyGraph)
	}

	var errs []error
	var entrances []*Node
	bosses := mapset.New[string]()
	for _, n := range g.Nodes() {
		switch n.Type {
		case room.TypeEntrance:
			entrances = append(entrances, n)
			if len(n.ParentIDs) > 0 {
				errs = append(errs, fmt.Errorf("graph %s node %s: %w", g.id, n.ID, ErrEntranceHasParent))
			}
		case room.TypeBossRoom:
			bosses.Put(n.ID)
		}
	}
	switch len(entrances) {
	case 0:
		errs = append(errs, fmt.Errorf("graph %s: %w", g.id, ErrNoEntrance))
	case 1:
	default:
		errs = append(errs, fmt.Errorf("graph %s: %w (%d)", g.id, ErrMultipleEntrances, len(entrances)))
	}
	if bosses.Size() > 1 {
		errs = append(errs, fmt.Errorf("graph %s: %w (%d)", g.id, ErrMultipleBosses, bosses.Size()))
	}

	dg, _ := g.directed()
	if _, err := topo.Sort(dg); err != nil || g.hasSelfLoop() {
		errs = append(errs, fmt.Errorf("graph %s: %w", g.id, ErrCycle))
	}
	if len(entrances) > 0 {
		for _, id := range g.Unreachable(entrances[0].ID) {
			errs = append(errs, fmt.Errorf("graph %s node %s: %w", g.id, id, ErrUnreachable))
		}
	}

	return errors.Join(errs...)
}

// Unreachable returns the ids of nodes with no directed path from the node
// with id from, in construction order.
func (g *Graph) Unreachable(from string) []string {
	dg, ids := g.directed()
	src, ok := ids[from]
	if !ok {
		return nil
	}
	reached := mapset.New[string]()
	reached.Put(from)
	var out []string
	for _, id := range g.order {
		if reached.Has(id) {
			continue
		}
		if topo.PathExistsIn(dg, dg.Node(src), dg.Node(ids[id])) {
			reached.Put(id)
			continue
		}
		out = append(out, id)
	}
	return out
}

// directed converts g into a gonum graph. The returned map gives the
// gonum node id for each room graph node id.
func (g *Graph) directed() (*simple.DirectedGraph, map[string]int64) {
	dg := simple.NewDirectedGraph()
	ids := make(map[string]int64, len(g.order))
	for i, id := range g.order {
		ids[id] = int64(i)
		dg.AddNode(simple.Node(int64(i)))
	}
	for _, id := range g.order {
		for _, c := range g.nodes[id].ChildIDs {
			if c == id {
				continue
			}
			dg.SetEdge(dg.NewEdge(dg.Node(ids[id]), dg.Node(ids[c])))
		}
	}
	return dg, ids
}

func (g *Graph) hasSelfLoop() bool {
	for _, id := range g.order {
		for _, c := range g.nodes[id].ChildIDs {
			if c == id {
				return true
			}
		}
	}
	return false
}
