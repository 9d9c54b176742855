package level

import (
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/dungeonforge/pkg/core/room"
	"github.com/matzehuels/dungeonforge/pkg/core/roomgraph"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		def       func(t *testing.T) Definition
		wantErr   bool
		wantInMsg []string
	}{
		{
			name: "complete",
			def: func(t *testing.T) Definition {
				return Definition{Name: "crypt", Templates: dungeonTemplates(), Graphs: []*roomgraph.Graph{dungeonGraph(t)}}
			},
		},
		{
			name: "no templates",
			def: func(t *testing.T) Definition {
				return Definition{Name: "crypt", Graphs: []*roomgraph.Graph{dungeonGraph(t)}}
			},
			wantErr:   true,
			wantInMsg: []string{"no room templates"},
		},
		{
			name: "no graphs",
			def: func(*testing.T) Definition {
				return Definition{Name: "crypt", Templates: dungeonTemplates()}
			},
			wantErr:   true,
			wantInMsg: []string{"no room graphs"},
		},
		{
			name: "missing corridor and boss templates",
			def: func(t *testing.T) Definition {
				return Definition{Name: "crypt", Templates: dungeonTemplates()[:3], Graphs: []*roomgraph.Graph{dungeonGraph(t)}}
			},
			wantInMsg: []string{"no corridor_ew template", "no corridor_ns template", "no boss_room template for node boss"},
		},
		{
			name: "broken template",
			def: func(t *testing.T) Definition {
				ts := dungeonTemplates()
				ts[1].Upper = pt(-1, -1)
				return Definition{Name: "crypt", Templates: ts, Graphs: []*roomgraph.Graph{dungeonGraph(t)}}
			},
			wantErr:   true,
			wantInMsg: []string{"room-a"},
		},
		{
			name: "graph without entrance",
			def: func(t *testing.T) Definition {
				g := mustGraph(t, "lost", roomgraph.Node{ID: "r", Type: room.TypeRoom})
				return Definition{Name: "crypt", Templates: dungeonTemplates(), Graphs: []*roomgraph.Graph{g}}
			},
			wantInMsg: []string{"graph has no entrance"},
		},
		{
			name: "entrance on a loop",
			def: func(t *testing.T) Definition {
				g := mustGraph(t, "loop",
					roomgraph.Node{ID: "e", Type: room.TypeEntrance, ParentIDs: []string{"r"}, ChildIDs: []string{"r"}},
					roomgraph.Node{ID: "r", Type: room.TypeRoom, ParentIDs: []string{"e"}, ChildIDs: []string{"e"}},
				)
				return Definition{Name: "crypt", Templates: dungeonTemplates(), Graphs: []*roomgraph.Graph{g}}
			},
			wantErr:   true,
			wantInMsg: []string{"error: loop: graph loop node e: entrance has a parent", "graph contains a cycle"},
		},
		{
			name: "unreachable boss",
			def: func(t *testing.T) Definition {
				g := mustGraph(t, "split",
					roomgraph.Node{ID: "e", Type: room.TypeEntrance},
					roomgraph.Node{ID: "boss", Type: room.TypeBossRoom},
				)
				return Definition{Name: "crypt", Templates: dungeonTemplates(), Graphs: []*roomgraph.Graph{g}}
			},
			wantErr:   true,
			wantInMsg: []string{"error: split: graph split node boss: node is not reachable from the entrance"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := Validate(tt.def(t))
			if got := HasErrors(ds); got != tt.wantErr {
				t.Errorf("HasErrors = %v, want %v (%v)", got, tt.wantErr, ds)
			}
			var all []string
			for _, d := range ds {
				all = append(all, d.String())
			}
			joined := strings.Join(all, "\n")
			for _, want := range tt.wantInMsg {
				if !strings.Contains(joined, want) {
					t.Errorf("diagnostics missing %q:\n%s", want, joined)
				}
			}
			if len(tt.wantInMsg) == 0 && len(ds) != 0 {
				t.Errorf("unexpected diagnostics:\n%s", joined)
			}
		})
	}
}

func TestDefinitionCheck(t *testing.T) {
	_, err := Definition{Name: "empty"}.Check()
	if !errors.Is(err, ErrInvalidDefinition) {
		t.Errorf("Check() = %v, want ErrInvalidDefinition", err)
	}
	ds, err := Definition{Name: "crypt", Templates: dungeonTemplates(), Graphs: []*roomgraph.Graph{dungeonGraph(t)}}.Check()
	if err != nil || len(ds) != 0 {
		t.Errorf("Check() = %v, %v", ds, err)
	}
}

func TestDefinitionCheckRejectsBrokenTree(t *testing.T) {
	g := mustGraph(t, "split",
		roomgraph.Node{ID: "e", Type: room.TypeEntrance},
		roomgraph.Node{ID: "boss", Type: room.TypeBossRoom},
	)
	_, err := Definition{Name: "crypt", Templates: dungeonTemplates(), Graphs: []*roomgraph.Graph{g}}.Check()
	if !errors.Is(err, ErrInvalidDefinition) {
		t.Fatalf("Check() = %v, want ErrInvalidDefinition", err)
	}
	if !strings.Contains(err.Error(), "boss") {
		t.Errorf("Check() error %q does not name the unreachable node", err)
	}
}
