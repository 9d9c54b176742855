package roomgraph

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/dungeonforge/pkg/core/room"
)

// MaxChildCorridors caps how many corridors may leave a single room.
const MaxChildCorridors = 3

// Link errors returned by [Builder.Connect].
var (
	ErrSelfLink           = errors.New("node cannot link to itself")
	ErrDuplicateChild     = errors.New("child already linked")
	ErrChildHasParent     = errors.New("child already has a parent")
	ErrChildIsAncestor    = errors.New("child is the parent's parent")
	ErrEntranceChild      = errors.New("entrance cannot be a child")
	ErrNoneLink           = errors.New("nodes of type none cannot be linked")
	ErrCorridorToCorridor = errors.New("corridor cannot link to corridor")
	ErrRoomToRoom         = errors.New("rooms must be joined by a corridor")
	ErrTooManyCorridors   = errors.New("room already has the maximum number of corridors")
	ErrCorridorHasChild   = errors.New("corridor already leads to a room")
	ErrSecondBossRoom     = errors.New("a boss room is already connected")
)

// Builder assembles a graph node by node, rejecting links the room graph
// editor would refuse.
type Builder struct {
	id    string
	nodes map[string]*Node
	order []string
}

// NewBuilder starts an empty graph with the given id.
func NewBuilder(id string) *Builder {
	return &Builder{id: id, nodes: make(map[string]*Node)}
}

// Add creates a node of type t with a fresh random id and returns the id.
func (b *Builder) Add(t room.Type) string {
	id := uuid.NewString()
	b.nodes[id] = &Node{ID: id, Type: t}
	b.order = append(b.order, id)
	return id
}

// AddWithID creates a node with a caller-chosen id.
func (b *Builder) AddWithID(id string, t room.Type) error {
	if id == "" {
		return ErrEmptyNodeID
	}
	if _, dup := b.nodes[id]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateNodeID, id)
	}
	b.nodes[id] = &Node{ID: id, Type: t}
	b.order = append(b.order, id)
	return nil
}

// Connect makes child a child of parent.
func (b *Builder) Connect(parentID, childID string) error {
	parent, ok := b.nodes[parentID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, parentID)
	}
	child, ok := b.nodes[childID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, childID)
	}
	if err := b.checkLink(parent, child); err != nil {
		return fmt.Errorf("link %s(%s) -> %s(%s): %w", parent.ID, parent.Type, child.ID, child.Type, err)
	}
	parent.ChildIDs = append(parent.ChildIDs, child.ID)
	child.ParentIDs = append(child.ParentIDs, parent.ID)
	return nil
}

func (b *Builder) checkLink(parent, child *Node) error {
	switch {
	case parent.ID == child.ID:
		return ErrSelfLink
	case parent.Type == room.TypeNone || child.Type == room.TypeNone:
		return ErrNoneLink
	case child.Type == room.TypeEntrance:
		return ErrEntranceChild
	case slices.Contains(parent.ChildIDs, child.ID):
		return ErrDuplicateChild
	case slices.Contains(parent.ParentIDs, child.ID):
		return ErrChildIsAncestor
	case len(child.ParentIDs) > 0:
		return ErrChildHasParent
	case child.Type == room.TypeBossRoom && b.hasConnectedBoss():
		return ErrSecondBossRoom
	}

	pc, cc := parent.Type.IsCorridor(), child.Type.IsCorridor()
	switch {
	case pc && cc:
		return ErrCorridorToCorridor
	case !pc && !cc:
		return ErrRoomToRoom
	case cc && len(parent.ChildIDs) >= MaxChildCorridors:
		return ErrTooManyCorridors
	case !cc && len(parent.ChildIDs) > 0:
		return ErrCorridorHasChild
	}
	return nil
}

func (b *Builder) hasConnectedBoss() bool {
	for _, n := range b.nodes {
		if n.Type == room.TypeBossRoom && len(n.ParentIDs) > 0 {
			return true
		}
	}
	return false
}

// Build returns the finished graph. The builder can keep being used; later
// changes do not affect graphs already built.
func (b *Builder) Build() (*Graph, error) {
	nodes := make([]Node, len(b.order))
	for i, id := range b.order {
		nodes[i] = *b.nodes[id]
	}
	return New(b.id, nodes)
}
