// Package roomgraph models the room type graph that drives layout
// generation: a tree of typed nodes rooted at a single entrance, where each
// edge says "this child room is reached through a doorway of that parent".
//
// # Construction
//
// [New] accepts nodes as authored and checks only structural consistency
// (unique ids, resolvable references, at most one parent, matching
// parent/child lists). A graph without an entrance is accepted here; the
// layout search reports it when it picks the graph.
//
// [Builder] is the authoring path. [Builder.Connect] enforces the editing
// rules of the room graph editor, for example that corridors and rooms must
// alternate and that a room has at most [MaxChildCorridors] corridor
// children:
//
//	b := roomgraph.NewBuilder("crypt")
//	entrance := b.Add(room.TypeEntrance)
//	hall := b.Add(room.TypeCorridor)
//	if err := b.Connect(entrance, hall); err != nil { ... }
//	g, err := b.Build()
//
// [Validate] performs whole-graph checks with gonum: a single entrance,
// acyclicity and reachability of every node from the entrance.
package roomgraph
