package level

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/dungeonforge/pkg/core/room"
	"github.com/matzehuels/dungeonforge/pkg/core/roomgraph"
	"github.com/matzehuels/dungeonforge/pkg/observability"
)

func pt(x, y int) room.Point { return room.Point{X: x, Y: y} }

func door(x, y int, o room.Orientation) room.Doorway {
	return room.Doorway{Position: pt(x, y), Orientation: o}
}

func fourDoors(id string, t room.Type, w, h int) *room.Template {
	return &room.Template{
		ID:    id,
		Type:  t,
		Upper: pt(w-1, h-1),
		Doorways: []room.Doorway{
			door(w/2, h-1, room.North),
			door(w-1, h/2, room.East),
			door(w/2, 0, room.South),
			door(0, h/2, room.West),
		},
	}
}

// dungeonTemplates is a catalog generous enough that layouts succeed quickly.
func dungeonTemplates() []*room.Template {
	return []*room.Template{
		fourDoors("entrance", room.TypeEntrance, 6, 6),
		fourDoors("room-a", room.TypeRoom, 6, 6),
		fourDoors("room-b", room.TypeRoom, 8, 5),
		fourDoors("boss", room.TypeBossRoom, 10, 10),
		{
			ID: "corridor-ns", Type: room.TypeCorridorNS, Upper: pt(2, 5),
			Doorways: []room.Doorway{door(1, 5, room.North), door(1, 0, room.South)},
		},
		{
			ID: "corridor-ew", Type: room.TypeCorridorEW, Upper: pt(5, 2),
			Doorways: []room.Doorway{door(0, 1, room.West), door(5, 1, room.East)},
		},
	}
}

// dungeonGraph builds entrance -> c1 -> r1 -> c3 -> boss, entrance -> c2 -> r2
// and r1 -> c4 -> r3.
func dungeonGraph(t testing.TB) *roomgraph.Graph {
	t.Helper()
	b := roomgraph.NewBuilder("dungeon")
	nodes := []struct {
		id  string
		typ room.Type
	}{
		{"entrance", room.TypeEntrance},
		{"c1", room.TypeCorridor}, {"c2", room.TypeCorridor},
		{"c3", room.TypeCorridor}, {"c4", room.TypeCorridor},
		{"r1", room.TypeRoom}, {"r2", room.TypeRoom}, {"r3", room.TypeRoom},
		{"boss", room.TypeBossRoom},
	}
	for _, n := range nodes {
		if err := b.AddWithID(n.id, n.typ); err != nil {
			t.Fatal(err)
		}
	}
	for _, l := range [][2]string{
		{"entrance", "c1"}, {"entrance", "c2"},
		{"c1", "r1"}, {"c2", "r2"},
		{"r1", "c3"}, {"r1", "c4"},
		{"c3", "boss"}, {"c4", "r3"},
	} {
		if err := b.Connect(l[0], l[1]); err != nil {
			t.Fatal(err)
		}
	}
	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func mustGraph(t testing.TB, id string, nodes ...roomgraph.Node) *roomgraph.Graph {
	t.Helper()
	g, err := roomgraph.New(id, nodes)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// fingerprint renders a registry as text so runs can be compared.
func fingerprint(reg *Registry) string {
	var sb strings.Builder
	for _, in := range reg.Instances() {
		fmt.Fprintf(&sb, "%s %s %s %s parent=%s", in.ID, in.TemplateID, in.Type, in.Bounds, in.ParentID)
		for _, d := range in.Doorways {
			fmt.Fprintf(&sb, " [%s %s c=%t u=%t]", d.Position, d.Orientation, d.Connected, d.Unavailable)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

type countingHooks struct {
	observability.NoopGenerationHooks
	starts, picks, attempts, completes int
	reasons                            []error
}

func (h *countingHooks) OnGenerateStart(context.Context, int, int)  { h.starts++ }
func (h *countingHooks) OnGraphPicked(context.Context, string, int) { h.picks++ }
func (h *countingHooks) OnAttempt(context.Context, string, int, error) {
	h.attempts++
}
func (h *countingHooks) OnGenerateComplete(context.Context, int, int, time.Duration, error) {
	h.completes++
}
func (h *countingHooks) OnConnectFailed(_ context.Context, _ string, reason error) {
	h.reasons = append(h.reasons, reason)
}

type recordingCollaborator struct {
	placed    []string
	discarded []string
}

func (c *recordingCollaborator) OnInstancePlaced(in *room.Instance) {
	c.placed = append(c.placed, in.ID)
}

func (c *recordingCollaborator) OnAttemptDiscarded(in *room.Instance) {
	c.discarded = append(c.discarded, in.ID)
}
