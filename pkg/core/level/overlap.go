package level

import "github.com/matzehuels/dungeonforge/pkg/core/room"

// overlapping returns the first positioned instance whose bounds intersect
// candidate's, or nil. The candidate itself and unpositioned instances are
// skipped. Touching bounds count as overlapping.
func (r *Registry) overlapping(candidate *room.Instance) *room.Instance {
	for _, id := range r.order {
		in := r.byID[id]
		if in == candidate || in.ID == candidate.ID || !in.Positioned {
			continue
		}
		if in.Bounds.Overlaps(candidate.Bounds) {
			return in
		}
	}
	return nil
}
