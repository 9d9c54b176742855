package roomgraph

import (
	"errors"
	"testing"

	"github.com/matzehuels/dungeonforge/pkg/core/room"
)

func linear() []Node {
	return []Node{
		{ID: "e", Type: room.TypeEntrance, ChildIDs: []string{"c"}},
		{ID: "c", Type: room.TypeCorridor, ParentIDs: []string{"e"}, ChildIDs: []string{"r"}},
		{ID: "r", Type: room.TypeRoom, ParentIDs: []string{"c"}},
	}
}

func TestNew(t *testing.T) {
	g, err := New("g1", linear())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if g.ID() != "g1" || g.Len() != 3 {
		t.Errorf("ID/Len = %s/%d", g.ID(), g.Len())
	}
	e, ok := g.Entrance()
	if !ok || e.ID != "e" {
		t.Fatalf("Entrance = %v, %v", e, ok)
	}
	kids := g.Children(e)
	if len(kids) != 1 || kids[0].ID != "c" {
		t.Errorf("Children(e) = %v", kids)
	}
	if n, _ := g.Node("r"); n.ParentID() != "c" {
		t.Errorf("ParentID(r) = %q", n.ParentID())
	}
	if got := g.Types(); len(got) != 3 || got[0] != room.TypeEntrance {
		t.Errorf("Types = %v", got)
	}
}

func TestNewCopiesInput(t *testing.T) {
	nodes := linear()
	g, err := New("g1", nodes)
	if err != nil {
		t.Fatal(err)
	}
	nodes[0].ChildIDs[0] = "zzz"
	e, _ := g.Entrance()
	if e.ChildIDs[0] != "c" {
		t.Error("graph shares child slice with caller")
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		want  error
	}{
		{"empty id", []Node{{Type: room.TypeRoom}}, ErrEmptyNodeID},
		{"duplicate id", []Node{{ID: "a", Type: room.TypeRoom}, {ID: "a", Type: room.TypeRoom}}, ErrDuplicateNodeID},
		{"unknown child", []Node{{ID: "a", Type: room.TypeEntrance, ChildIDs: []string{"x"}}}, ErrUnknownNode},
		{"unknown parent", []Node{{ID: "a", Type: room.TypeRoom, ParentIDs: []string{"x"}}}, ErrUnknownNode},
		{"two parents", []Node{
			{ID: "a", Type: room.TypeCorridor, ChildIDs: []string{"c"}},
			{ID: "b", Type: room.TypeCorridor, ChildIDs: []string{"c"}},
			{ID: "c", Type: room.TypeRoom, ParentIDs: []string{"a", "b"}},
		}, ErrMultipleParents},
		{"child without back link", []Node{
			{ID: "a", Type: room.TypeEntrance, ChildIDs: []string{"b"}},
			{ID: "b", Type: room.TypeCorridor},
		}, ErrInconsistentLink},
		{"parent without forward link", []Node{
			{ID: "a", Type: room.TypeEntrance},
			{ID: "b", Type: room.TypeCorridor, ParentIDs: []string{"a"}},
		}, ErrInconsistentLink},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("g", tt.nodes)
			if !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewAllowsMissingEntrance(t *testing.T) {
	g, err := New("g", []Node{{ID: "r", Type: room.TypeRoom}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := g.Entrance(); ok {
		t.Error("Entrance() should report false")
	}
}

func TestEntranceSkipsNodesWithParent(t *testing.T) {
	tests := []struct {
		name   string
		nodes  []Node
		wantID string
	}{
		{"self loop", []Node{
			{ID: "e", Type: room.TypeEntrance, ParentIDs: []string{"e"}, ChildIDs: []string{"e"}},
		}, ""},
		{"two node loop", []Node{
			{ID: "e", Type: room.TypeEntrance, ParentIDs: []string{"r"}, ChildIDs: []string{"r"}},
			{ID: "r", Type: room.TypeRoom, ParentIDs: []string{"e"}, ChildIDs: []string{"e"}},
		}, ""},
		{"root entrance listed second", []Node{
			{ID: "inner", Type: room.TypeEntrance, ParentIDs: []string{"gate"}},
			{ID: "gate", Type: room.TypeEntrance, ChildIDs: []string{"inner"}},
		}, "gate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New("g", tt.nodes)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			e, ok := g.Entrance()
			if tt.wantID == "" {
				if ok {
					t.Errorf("Entrance() = %s, want none", e.ID)
				}
				return
			}
			if !ok || e.ID != tt.wantID {
				t.Errorf("Entrance() = %v, %v, want %s", e, ok, tt.wantID)
			}
		})
	}
}
