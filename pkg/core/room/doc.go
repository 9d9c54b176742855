// Package room defines the spatial data model shared by every dungeonforge
// component: room types, doorway orientations, integer grid geometry,
// immutable room templates and the mutable instances the layout search
// places in world space.
//
// # Coordinates
//
// All coordinates are integer grid cells. The y axis grows northward, so a
// doorway facing [North] sits on the upper edge of its template. Bounds are
// inclusive on both corners: a template spanning (0,0)-(3,3) covers a 4x4
// block of cells.
//
// # Templates and Instances
//
// A [Template] is authored data and is never mutated once loaded. The layout
// search creates an [Instance] per room graph node, each holding its own deep
// copy of the template doorways so that connection state never leaks back
// into the catalog:
//
//	inst := room.NewInstance("n1", "", nil, tmpl)
//	inst.MoveTo(room.Point{X: 7, Y: 0})
//	world := inst.DoorwayWorldPosition(inst.Doorways[0])
//
// [Instance.Offset] converts template-local coordinates into world
// coordinates and is what renderers use to stamp template tiles.
package room
