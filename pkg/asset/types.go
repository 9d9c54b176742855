package asset

import "github.com/matzehuels/dungeonforge/pkg/core/room"

// Level is the wire form of a level file.
type Level struct {
	Name      string     `json:"name" yaml:"name"`
	Templates []Template `json:"templates" yaml:"templates"`
	Graphs    []Graph    `json:"graphs" yaml:"graphs"`
}

// Template is the wire form of room.Template.
type Template struct {
	ID             string       `json:"id" yaml:"id"`
	Type           string       `json:"type" yaml:"type"`
	Lower          room.Point   `json:"lower" yaml:"lower"`
	Upper          room.Point   `json:"upper" yaml:"upper"`
	Doorways       []Doorway    `json:"doorways,omitempty" yaml:"doorways,omitempty"`
	SpawnPositions []room.Point `json:"spawn_positions,omitempty" yaml:"spawn_positions,omitempty"`
	Tiles          []string     `json:"tiles,omitempty" yaml:"tiles,omitempty"`
}

// Doorway is the wire form of room.Doorway. Connection state is runtime
// data and is not stored.
type Doorway struct {
	Position    room.Point      `json:"position" yaml:"position"`
	Orientation string          `json:"orientation" yaml:"orientation"`
	CopyRegion  room.CopyRegion `json:"copy_region" yaml:"copy_region"`
}

// Graph is the wire form of a room type graph.
type Graph struct {
	ID    string `json:"id" yaml:"id"`
	Nodes []Node `json:"nodes" yaml:"nodes"`
}

// Node is one graph node.
type Node struct {
	ID       string   `json:"id" yaml:"id"`
	Type     string   `json:"type" yaml:"type"`
	Children []string `json:"children,omitempty" yaml:"children,omitempty"`
}
