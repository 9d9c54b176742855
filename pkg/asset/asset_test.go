package asset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/dungeonforge/pkg/core/room"
	"github.com/matzehuels/dungeonforge/pkg/errors"
)

const hallYAML = `
name: hall
templates:
  - id: gate
    type: entrance
    lower: {x: 0, y: 0}
    upper: {x: 3, y: 3}
    doorways:
      - position: {x: 3, y: 1}
        orientation: east
        copy_region: {origin: {x: 3, y: 0}, width: 1, height: 3}
    spawn_positions: [{x: 1, y: 1}]
    tiles: ["####", "#..#", "#...", "####"]
  - id: passage
    type: corridor_ew
    upper: {x: 2, y: 0}
    doorways:
      - {position: {x: 0, y: 0}, orientation: west}
      - {position: {x: 2, y: 0}, orientation: east}
graphs:
  - id: main
    nodes:
      - {id: entrance, type: entrance, children: [hall]}
      - {id: hall, type: corridor}
`

func TestReadYAML(t *testing.T) {
	l, err := Read(strings.NewReader(hallYAML), FormatYAML)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	def, err := l.Definition()
	if err != nil {
		t.Fatalf("Definition: %v", err)
	}
	if def.Name != "hall" || len(def.Templates) != 2 || len(def.Graphs) != 1 {
		t.Fatalf("Definition = %+v", def)
	}

	gate := def.Templates[0]
	if gate.Type != room.TypeEntrance || gate.Upper != (room.Point{X: 3, Y: 3}) {
		t.Errorf("gate = %+v", gate)
	}
	d := gate.Doorways[0]
	if d.Orientation != room.East || d.CopyRegion.Height != 3 || d.CopyRegion.Origin != (room.Point{X: 3}) {
		t.Errorf("gate doorway = %+v", d)
	}
	if r, ok := gate.TileAt(room.Point{X: 3, Y: 1}); !ok || r != '.' {
		t.Errorf("gate tile at doorway = %q", r)
	}

	g := def.Graphs[0]
	hall, ok := g.Node("hall")
	if !ok || hall.ParentID() != "entrance" || hall.Type != room.TypeCorridor {
		t.Errorf("hall node = %+v", hall)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		input  string
		code   errors.Code
	}{
		{"bad yaml", FormatYAML, "name: [", errors.ErrCodeInvalidLevel},
		{"unknown yaml field", FormatYAML, "name: x\ncolour: red\n", errors.ErrCodeInvalidLevel},
		{"empty yaml", FormatYAML, "", errors.ErrCodeInvalidLevel},
		{"unknown json field", FormatJSON, `{"name":"x","bogus":1}`, errors.ErrCodeInvalidLevel},
		{"unknown format", "toml", "", errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("Read() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestDefinitionErrors(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		code  errors.Code
	}{
		{"unknown template type", Level{Templates: []Template{{ID: "t", Type: "attic"}}}, errors.ErrCodeInvalidTemplate},
		{"bad orientation", Level{Templates: []Template{{ID: "t", Type: "room", Upper: room.Point{X: 1, Y: 1},
			Doorways: []Doorway{{Orientation: "up"}}}}}, errors.ErrCodeInvalidTemplate},
		{"bad template id", Level{Templates: []Template{{ID: "has space", Type: "room"}}}, errors.ErrCodeInvalidTemplate},
		{"doorway outside", Level{Templates: []Template{{ID: "t", Type: "room", Upper: room.Point{X: 1, Y: 1},
			Doorways: []Doorway{{Position: room.Point{X: 5}, Orientation: "east"}}}}}, errors.ErrCodeInvalidTemplate},
		{"unknown node type", Level{Graphs: []Graph{{ID: "g", Nodes: []Node{{ID: "n", Type: "cellar"}}}}}, errors.ErrCodeInvalidGraph},
		{"dangling child", Level{Graphs: []Graph{{ID: "g", Nodes: []Node{{ID: "n", Type: "entrance", Children: []string{"x"}}}}}}, errors.ErrCodeInvalidGraph},
		{"two parents", Level{Graphs: []Graph{{ID: "g", Nodes: []Node{
			{ID: "a", Type: "corridor", Children: []string{"r"}},
			{ID: "b", Type: "corridor", Children: []string{"r"}},
			{ID: "r", Type: "room"},
		}}}}, errors.ErrCodeInvalidGraph},
		{"traversal name", Level{Name: "a..b"}, errors.ErrCodeInvalidLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.level.Definition()
			if !errors.Is(err, tt.code) {
				t.Errorf("Definition() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestFromDefinitionRoundTrip(t *testing.T) {
	l, err := Read(strings.NewReader(hallYAML), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	def, err := l.Definition()
	if err != nil {
		t.Fatal(err)
	}

	for _, format := range []string{FormatJSON, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			data, err := Marshal(FromDefinition(def), format)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			back, err := Read(bytes.NewReader(data), format)
			if err != nil {
				t.Fatalf("Read: %v\n%s", err, data)
			}
			again, err := back.Definition()
			if err != nil {
				t.Fatalf("Definition: %v", err)
			}
			if len(again.Templates) != 2 || again.Templates[1].Doorways[1].Orientation != room.East {
				t.Errorf("templates after round trip = %+v", again.Templates)
			}
			if n, _ := again.Graphs[0].Node("hall"); n.ParentID() != "entrance" {
				t.Errorf("hall parent after round trip = %q", n.ParentID())
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keep.yml")
	if err := os.WriteFile(path, []byte(strings.Replace(hallYAML, "name: hall\n", "", 1)), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if l.Name != "keep" {
		t.Errorf("Name = %q, want file stem", l.Name)
	}

	out := filepath.Join(dir, "keep.json")
	if err := WriteFile(l, out); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := ReadFile(out); err != nil {
		t.Errorf("ReadFile(json): %v", err)
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.yaml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
	if _, err := ReadFile(filepath.Join(dir, "level.txt")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad extension error = %v", err)
	}
}

func TestExampleLevels(t *testing.T) {
	paths, err := filepath.Glob("../../examples/levels/*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no example levels")
	}
	for _, p := range paths {
		t.Run(filepath.Base(p), func(t *testing.T) {
			l, err := ReadFile(p)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if _, err := l.Definition(); err != nil {
				t.Fatalf("Definition: %v", err)
			}
		})
	}
}
