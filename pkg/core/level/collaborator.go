package level

import "github.com/matzehuels/dungeonforge/pkg/core/room"

// Collaborator is notified about instances entering and leaving the world.
type Collaborator interface {
	// OnInstancePlaced is called for every instance of a successful layout,
	// in placement order, before Generate returns.
	OnInstancePlaced(in *room.Instance)

	// OnAttemptDiscarded is called for every instance of the previous
	// registry before a rebuild attempt starts, and for a failed attempt's
	// leftovers when Generate gives up. Implementations must tolerate
	// instances they were never told about.
	OnAttemptDiscarded(in *room.Instance)
}

// NopCollaborator ignores all notifications.
type NopCollaborator struct{}

func (NopCollaborator) OnInstancePlaced(*room.Instance)   {}
func (NopCollaborator) OnAttemptDiscarded(*room.Instance) {}
