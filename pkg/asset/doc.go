// Package asset reads and writes level files.
//
// A level file bundles the room templates and the candidate room graphs of
// one dungeon level. Files are YAML or JSON with the same schema; the
// format is chosen by file extension:
//
//	name: crypt
//	templates:
//	  - id: gate
//	    type: entrance
//	    lower: {x: 0, y: 0}
//	    upper: {x: 3, y: 3}
//	    doorways:
//	      - position: {x: 3, y: 1}
//	        orientation: east
//	        copy_region: {origin: {x: 3, y: 0}, width: 1, height: 3}
//	    tiles: ["####", "#..#", "#...", "####"]
//	graphs:
//	  - id: main
//	    nodes:
//	      - {id: entrance, type: entrance, children: [hall]}
//	      - {id: hall, type: corridor, children: [vault]}
//	      - {id: vault, type: room}
//
// Graph nodes list only their children; parents are derived. Type and
// orientation names are the text forms of room.Type and room.Orientation.
//
// [Level.Definition] converts the wire form into the core types used by the
// layout builder, validating identifiers, tags and graph structure on the
// way. [FromDefinition] goes the other way.
package asset
