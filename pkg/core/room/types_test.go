package room

import (
	"encoding/json"
	"testing"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"entrance", TypeEntrance, false},
		{"Room", TypeRoom, false},
		{" corridor ", TypeCorridor, false},
		{"corridor_ns", TypeCorridorNS, false},
		{"corridor-ew", TypeCorridorEW, false},
		{"boss_room", TypeBossRoom, false},
		{"bossroom", TypeBossRoom, false},
		{"none", TypeNone, false},
		{"kitchen", TypeNone, true},
		{"", TypeNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTypeRoundTrip(t *testing.T) {
	for _, typ := range Types() {
		got, err := ParseType(typ.String())
		if err != nil {
			t.Fatalf("ParseType(%q): %v", typ, err)
		}
		if got != typ {
			t.Errorf("round trip %v -> %v", typ, got)
		}
	}
}

func TestTypeIsCorridor(t *testing.T) {
	want := map[Type]bool{
		TypeCorridor:   true,
		TypeCorridorNS: true,
		TypeCorridorEW: true,
		TypeRoom:       false,
		TypeEntrance:   false,
		TypeBossRoom:   false,
		TypeNone:       false,
	}
	for typ, w := range want {
		if got := typ.IsCorridor(); got != w {
			t.Errorf("%v.IsCorridor() = %v, want %v", typ, got, w)
		}
	}
}

func TestTypeJSON(t *testing.T) {
	var v struct {
		T Type `json:"t"`
	}
	if err := json.Unmarshal([]byte(`{"t":"corridor_ns"}`), &v); err != nil {
		t.Fatal(err)
	}
	if v.T != TypeCorridorNS {
		t.Errorf("got %v", v.T)
	}
	if err := json.Unmarshal([]byte(`{"t":"attic"}`), &v); err == nil {
		t.Error("expected error for unknown type")
	}
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"t":"corridor_ns"}` {
		t.Errorf("Marshal = %s", out)
	}
}

func TestOrientationOpposite(t *testing.T) {
	tests := []struct {
		o, want Orientation
	}{
		{North, South},
		{South, North},
		{East, West},
		{West, East},
		{OrientationNone, OrientationNone},
	}
	for _, tt := range tests {
		if got := tt.o.Opposite(); got != tt.want {
			t.Errorf("%v.Opposite() = %v, want %v", tt.o, got, tt.want)
		}
	}
}

func TestOrientationAxisAndNormal(t *testing.T) {
	if North.Axis() != AxisVertical || South.Axis() != AxisVertical {
		t.Error("north/south should be vertical")
	}
	if East.Axis() != AxisHorizontal || West.Axis() != AxisHorizontal {
		t.Error("east/west should be horizontal")
	}
	for _, o := range []Orientation{North, East, South, West} {
		if got := o.Normal().Add(o.Opposite().Normal()); got != (Point{}) {
			t.Errorf("%v normal + opposite normal = %v, want origin", o, got)
		}
	}
}

func TestParseOrientation(t *testing.T) {
	for in, want := range map[string]Orientation{"north": North, "E": East, "South": South, "w": West, "none": OrientationNone} {
		got, err := ParseOrientation(in)
		if err != nil || got != want {
			t.Errorf("ParseOrientation(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseOrientation("up"); err == nil {
		t.Error("expected error for \"up\"")
	}
}
