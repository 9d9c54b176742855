package level

import (
	"github.com/matzehuels/dungeonforge/pkg/core/room"
)

// Registry holds the instances placed by one attempt, keyed by node id, in
// placement order.
type Registry struct {
	graphID string
	byID    map[string]*room.Instance
	order   []string

	// corridors counts positioned corridor children per parent id.
	corridors map[string]int
}

func newRegistry(graphID string) *Registry {
	return &Registry{
		graphID:   graphID,
		byID:      make(map[string]*room.Instance),
		corridors: make(map[string]int),
	}
}

func (r *Registry) add(in *room.Instance) {
	if _, ok := r.byID[in.ID]; !ok {
		r.order = append(r.order, in.ID)
	}
	r.byID[in.ID] = in
	if in.ParentID != "" && in.Type.IsCorridor() {
		r.corridors[in.ParentID]++
	}
}

// GraphID returns the id of the room graph the layout realises.
func (r *Registry) GraphID() string { return r.graphID }

// Get returns the instance for a node id.
func (r *Registry) Get(id string) (*room.Instance, bool) {
	in, ok := r.byID[id]
	return in, ok
}

// IDs returns node ids in placement order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Instances returns the instances in placement order.
func (r *Registry) Instances() []*room.Instance {
	out := make([]*room.Instance, len(r.order))
	for i, id := range r.order {
		out[i] = r.byID[id]
	}
	return out
}

// Len returns the number of placed instances.
func (r *Registry) Len() int { return len(r.order) }

// CorridorChildren returns how many corridor instances hang off parentID.
func (r *Registry) CorridorChildren(parentID string) int { return r.corridors[parentID] }

// Extent returns the bounding box of every positioned instance. The second
// result is false for an empty registry.
func (r *Registry) Extent() (room.Bounds, bool) {
	var ext room.Bounds
	found := false
	for _, id := range r.order {
		in := r.byID[id]
		if !in.Positioned {
			continue
		}
		if !found {
			ext, found = in.Bounds, true
			continue
		}
		ext = ext.Union(in.Bounds)
	}
	return ext, found
}

// Entrance returns the instance without a parent.
func (r *Registry) Entrance() (*room.Instance, bool) {
	for _, id := range r.order {
		if in := r.byID[id]; in.ParentID == "" {
			return in, true
		}
	}
	return nil, false
}
