package room

import "slices"

// Instance is a template placed (or about to be placed) for one room graph
// node. It owns its doorway copies; the template it came from is untouched.
type Instance struct {
	ID         string // room graph node id
	TemplateID string
	// Type is the template's type. For corridor placeholders this is the
	// resolved TypeCorridorNS or TypeCorridorEW.
	Type Type

	Bounds         Bounds // world space
	TemplateBounds Bounds // template-local space

	Doorways []Doorway
	ParentID string
	ChildIDs []string

	Positioned        bool
	SpawnPositions    []Point // template-local
	PreviouslyVisited bool
}

// NewInstance creates an unpositioned instance of tmpl for a graph node.
// Bounds start equal to the template bounds. Doorways, child ids and spawn
// positions are copied.
func NewInstance(nodeID, parentID string, childIDs []string, tmpl *Template) *Instance {
	b := tmpl.Bounds()
	return &Instance{
		ID:                nodeID,
		TemplateID:        tmpl.ID,
		Type:              tmpl.Type,
		Bounds:            b,
		TemplateBounds:    b,
		Doorways:          CopyDoorways(tmpl.Doorways),
		ParentID:          parentID,
		ChildIDs:          slices.Clone(childIDs),
		SpawnPositions:    slices.Clone(tmpl.SpawnPositions),
		PreviouslyVisited: tmpl.Type == TypeEntrance,
	}
}

// MoveTo places the instance so that its lower world corner is lower. The
// upper corner follows from the template size.
func (in *Instance) MoveTo(lower Point) {
	in.Bounds = Bounds{
		Lower: lower,
		Upper: lower.Add(in.TemplateBounds.Upper.Sub(in.TemplateBounds.Lower)),
	}
}

// Offset maps template-local coordinates to world coordinates.
func (in *Instance) Offset() Point {
	return in.Bounds.Lower.Sub(in.TemplateBounds.Lower)
}

// ToWorld converts a template-local point.
func (in *Instance) ToWorld(p Point) Point { return p.Add(in.Offset()) }

// DoorwayWorldPosition returns the world coordinate of d, which must be one
// of the instance's doorways.
func (in *Instance) DoorwayWorldPosition(d Doorway) Point {
	return in.ToWorld(d.Position)
}

// WorldSpawnPositions returns the spawn positions in world coordinates.
func (in *Instance) WorldSpawnPositions() []Point {
	out := make([]Point, len(in.SpawnPositions))
	for i, p := range in.SpawnPositions {
		out[i] = in.ToWorld(p)
	}
	return out
}

// OpenDoorways returns the indices of doorways that are neither connected
// nor unavailable.
func (in *Instance) OpenDoorways() []int {
	var idx []int
	for i, d := range in.Doorways {
		if d.Open() {
			idx = append(idx, i)
		}
	}
	return idx
}

// ConnectedCount returns how many doorways are connected.
func (in *Instance) ConnectedCount() int {
	n := 0
	for _, d := range in.Doorways {
		if d.Connected {
			n++
		}
	}
	return n
}
