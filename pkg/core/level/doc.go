// Package level generates dungeon layouts: given candidate room graphs and a
// template catalog it places one template instance per graph node so that
// every child room is joined to its parent through a pair of facing
// doorways and no two rooms overlap.
//
// # Algorithm
//
// [Builder.Generate] runs two nested retry loops. The outer loop picks a
// graph at random; the inner loop rebuilds that graph from scratch until an
// attempt succeeds or the inner budget runs out. Each attempt places the
// entrance at its template bounds and then visits the remaining nodes
// breadth first. A node is attached by picking one of the parent's open
// doorways at random, choosing a template for the node, and translating the
// template so that its facing doorway sits one cell beyond the parent's.
// Any failure for that doorway (no template, no facing doorway, overlap,
// corridor fan-out) rules the doorway out and the next one is tried. When a
// parent runs out of doorways the attempt fails and the registry is thrown
// away.
//
// Success is all-or-nothing: callers only ever see a complete [Registry].
//
// # Randomness
//
// Every random choice (graph, template, doorway) draws from the single
// [Rand] passed to Generate. The same seed and inputs reproduce the same
// layout:
//
//	b := level.NewBuilder(level.Options{}, nil, logger)
//	reg, err := b.Generate(graphs, templates, level.NewRand(42))
//
// # Collaborators
//
// A [Collaborator] observes the builder: it is told about every instance of
// a registry that is being discarded before a rebuild and about every
// instance of the final layout. Renderers implement it to stamp and erase
// tiles.
package level
