package roomgraph

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/dungeonforge/pkg/core/room"
)

var (
	// ErrEmptyNodeID is returned when a node has no id.
	ErrEmptyNodeID = errors.New("node id must not be empty")

	// ErrDuplicateNodeID is returned when two nodes share an id.
	ErrDuplicateNodeID = errors.New("duplicate node id")

	// ErrUnknownNode is returned when a parent or child reference does not resolve.
	ErrUnknownNode = errors.New("unknown node")

	// ErrMultipleParents is returned for a node with more than one parent.
	ErrMultipleParents = errors.New("node has more than one parent")

	// ErrInconsistentLink is returned when a child list and a parent list disagree.
	ErrInconsistentLink = errors.New("parent and child lists disagree")
)

// Node is one required room.
type Node struct {
	ID        string
	Type      room.Type
	ParentIDs []string // zero or one entry
	ChildIDs  []string
}

// ParentID returns the node's parent id, or "" for a root.
func (n *Node) ParentID() string {
	if len(n.ParentIDs) == 0 {
		return ""
	}
	return n.ParentIDs[0]
}

// Graph is an immutable room type graph. Node order is preserved from
// construction and used wherever iteration order matters.
type Graph struct {
	id    string
	nodes map[string]*Node
	order []string
}

// New builds a Graph from nodes. Nodes are copied.
func New(id string, nodes []Node) (*Graph, error) {
	g := &Graph{
		id:    id,
		nodes: make(map[string]*Node, len(nodes)),
		order: make([]string, 0, len(nodes)),
	}
	for _, n := range nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("graph %s: %w", id, ErrEmptyNodeID)
		}
		if _, dup := g.nodes[n.ID]; dup {
			return nil, fmt.Errorf("graph %s: %w: %s", id, ErrDuplicateNodeID, n.ID)
		}
		if len(n.ParentIDs) > 1 {
			return nil, fmt.Errorf("graph %s node %s: %w", id, n.ID, ErrMultipleParents)
		}
		g.nodes[n.ID] = &Node{
			ID:        n.ID,
			Type:      n.Type,
			ParentIDs: slices.Clone(n.ParentIDs),
			ChildIDs:  slices.Clone(n.ChildIDs),
		}
		g.order = append(g.order, n.ID)
	}
	if err := g.checkLinks(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Graph) checkLinks() error {
	for _, id := range g.order {
		n := g.nodes[id]
		seen := make(map[string]struct{}, len(n.ChildIDs))
		for _, c := range n.ChildIDs {
			child, ok := g.nodes[c]
			if !ok {
				return fmt.Errorf("graph %s node %s: %w: child %s", g.id, id, ErrUnknownNode, c)
			}
			if _, dup := seen[c]; dup {
				return fmt.Errorf("graph %s node %s: %w: child %s listed twice", g.id, id, ErrInconsistentLink, c)
			}
			seen[c] = struct{}{}
			if child.ParentID() != id {
				return fmt.Errorf("graph %s: %w: %s lists child %s but its parent is %q", g.id, ErrInconsistentLink, id, c, child.ParentID())
			}
		}
		if p := n.ParentID(); p != "" {
			parent, ok := g.nodes[p]
			if !ok {
				return fmt.Errorf("graph %s node %s: %w: parent %s", g.id, id, ErrUnknownNode, p)
			}
			if !slices.Contains(parent.ChildIDs, id) {
				return fmt.Errorf("graph %s: %w: %s names parent %s which does not list it", g.id, ErrInconsistentLink, id, p)
			}
		}
	}
	return nil
}

// ID returns the graph identifier.
func (g *Graph) ID() string { return g.id }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.order) }

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in construction order. Callers must not modify them.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.order))
	for i, id := range g.order {
		out[i] = g.nodes[id]
	}
	return out
}

// Entrance returns the first parentless node of type entrance. An entrance
// that names a parent is not a root and is skipped, so a graph whose only
// entrance sits on a cycle has no entrance at all.
func (g *Graph) Entrance() (*Node, bool) {
	for _, id := range g.order {
		if n := g.nodes[id]; n.Type == room.TypeEntrance && len(n.ParentIDs) == 0 {
			return n, true
		}
	}
	return nil, false
}

// Children returns the child nodes of n in authored order.
func (g *Graph) Children(n *Node) []*Node {
	out := make([]*Node, 0, len(n.ChildIDs))
	for _, c := range n.ChildIDs {
		out = append(out, g.nodes[c])
	}
	return out
}

// Types returns the distinct node types in first-seen order.
func (g *Graph) Types() []room.Type {
	var out []room.Type
	for _, id := range g.order {
		if t := g.nodes[id].Type; !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}
