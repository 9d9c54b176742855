package room

import (
	"fmt"
	"strings"
)

// Type is the kind of a room graph node and of the template that realises it.
//
// The set is closed. Text forms are produced by [Type.String] and parsed by
// [ParseType]; unknown text is rejected.
type Type int

const (
	TypeNone Type = iota
	TypeEntrance
	TypeRoom
	// TypeCorridor is a placeholder used in room graphs. The layout search
	// resolves it to TypeCorridorNS or TypeCorridorEW depending on the
	// orientation of the parent doorway.
	TypeCorridor
	TypeCorridorNS
	TypeCorridorEW
	TypeBossRoom
)

var typeNames = [...]string{
	TypeNone:       "none",
	TypeEntrance:   "entrance",
	TypeRoom:       "room",
	TypeCorridor:   "corridor",
	TypeCorridorNS: "corridor_ns",
	TypeCorridorEW: "corridor_ew",
	TypeBossRoom:   "boss_room",
}

// Types lists every room type in declaration order.
func Types() []Type {
	return []Type{TypeNone, TypeEntrance, TypeRoom, TypeCorridor, TypeCorridorNS, TypeCorridorEW, TypeBossRoom}
}

// String returns the canonical text form, e.g. "corridor_ns".
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// IsCorridor reports whether t is one of the three corridor types.
func (t Type) IsCorridor() bool {
	return t == TypeCorridor || t == TypeCorridorNS || t == TypeCorridorEW
}

// IsValid reports whether t is a declared type.
func (t Type) IsValid() bool {
	return t >= 0 && int(t) < len(typeNames)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid room type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	v, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseType converts a text form into a Type. Matching ignores case and
// surrounding whitespace. "bossroom" and "corridor-ns" style spellings are
// accepted as aliases.
func ParseType(s string) (Type, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", "_")
	for i, name := range typeNames {
		if norm == name {
			return Type(i), nil
		}
	}
	switch norm {
	case "bossroom", "boss":
		return TypeBossRoom, nil
	case "corridorns":
		return TypeCorridorNS, nil
	case "corridorew":
		return TypeCorridorEW, nil
	}
	return TypeNone, fmt.Errorf("unknown room type %q", s)
}

// Orientation is the side of a template a doorway faces.
type Orientation int

const (
	OrientationNone Orientation = iota
	North
	East
	South
	West
)

var orientationNames = [...]string{
	OrientationNone: "none",
	North:           "north",
	East:            "east",
	South:           "south",
	West:            "west",
}

// String returns the lower-case orientation name.
func (o Orientation) String() string {
	if o < 0 || int(o) >= len(orientationNames) {
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
	return orientationNames[o]
}

// ParseOrientation converts "north", "n", "East", ... into an Orientation.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n":
		return North, nil
	case "east", "e":
		return East, nil
	case "south", "s":
		return South, nil
	case "west", "w":
		return West, nil
	case "none", "":
		return OrientationNone, nil
	}
	return OrientationNone, fmt.Errorf("unknown doorway orientation %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(b []byte) error {
	v, err := ParseOrientation(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Opposite returns the facing orientation: north pairs with south and east
// with west. OrientationNone has no opposite and maps to itself.
func (o Orientation) Opposite() Orientation {
	switch o {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return OrientationNone
}

// Axis groups orientations by the wall they sit on.
type Axis int

const (
	AxisNone Axis = iota
	// AxisVertical holds north and south doorways; corridors leaving them run north-south.
	AxisVertical
	// AxisHorizontal holds east and west doorways.
	AxisHorizontal
)

// Axis returns the axis a doorway with this orientation connects along.
func (o Orientation) Axis() Axis {
	switch o {
	case North, South:
		return AxisVertical
	case East, West:
		return AxisHorizontal
	}
	return AxisNone
}

// Normal returns the outward unit vector of the wall the orientation names.
func (o Orientation) Normal() Point {
	switch o {
	case North:
		return Point{0, 1}
	case East:
		return Point{1, 0}
	case South:
		return Point{0, -1}
	case West:
		return Point{-1, 0}
	}
	return Point{}
}
