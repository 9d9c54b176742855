package cli

import (
	"bytes"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/matzehuels/dungeonforge/pkg/asset"
	"github.com/matzehuels/dungeonforge/pkg/config"
	"github.com/matzehuels/dungeonforge/pkg/core/room"
	"github.com/matzehuels/dungeonforge/pkg/errors"
)

// hallLevel lays out entrance -> corridor -> room in a straight line.
func hallLevel() *asset.Level {
	return &asset.Level{
		Name: "hall",
		Templates: []asset.Template{
			{
				ID: "gate", Type: "entrance", Upper: room.Point{X: 3, Y: 3},
				Doorways: []asset.Doorway{{Position: room.Point{X: 3, Y: 1}, Orientation: "east"}},
			},
			{
				ID: "passage", Type: "corridor_ew", Upper: room.Point{X: 2},
				Doorways: []asset.Doorway{
					{Position: room.Point{}, Orientation: "west"},
					{Position: room.Point{X: 2}, Orientation: "east"},
				},
			},
			{
				ID: "vault", Type: "room", Upper: room.Point{X: 3, Y: 3},
				Doorways: []asset.Doorway{{Position: room.Point{Y: 1}, Orientation: "west"}},
			},
		},
		Graphs: []asset.Graph{{
			ID: "main",
			Nodes: []asset.Node{
				{ID: "entrance", Type: "entrance", Children: []string{"hall"}},
				{ID: "hall", Type: "corridor", Children: []string{"vault"}},
				{ID: "vault", Type: "room"},
			},
		}},
	}
}

const hallText = "####   ####\n#..#   #..#\n#.........#\n####   ####\n"

// writeLevel stores lvl as JSON in a temp dir and returns the path.
func writeLevel(t *testing.T, lvl *asset.Level) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), lvl.Name+".json")
	if err := asset.WriteFile(lvl, path); err != nil {
		t.Fatalf("write level: %v", err)
	}
	return path
}

// captureStdout redirects user-facing output for the rest of the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func TestRootCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	sort.Strings(names)
	want := []string{"cache", "completion", "generate", "graph", "serve", "sweep", "validate", "view"}
	for _, w := range want {
		found := false
		for _, n := range names {
			if n == w {
				found = true
			}
		}
		if !found {
			t.Errorf("missing command %q in %v", w, names)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("missing --config flag")
	}
}

func TestLevelPath(t *testing.T) {
	cfg := config.Default()
	cfg.Levels = []string{"levels/crypt.yaml", "levels/catacombs.yaml"}
	cfg.StartLevel = 1

	tests := []struct {
		name string
		cfg  *config.Config
		args []string
		want string
		code errors.Code
	}{
		{"argument wins", cfg, []string{"mine.json"}, "mine.json", ""},
		{"start level", cfg, nil, "levels/catacombs.yaml", ""},
		{"nothing configured", config.Default(), nil, "", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := levelPath(tt.cfg, tt.args)
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Fatalf("err = %v, want code %s", err, tt.code)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("levelPath() = %q, %v, want %q", got, err, tt.want)
			}
		})
	}
}

func TestGenFlagsOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 9
	cfg.Budget.Inner = 50

	f := genFlags{seed: 3, outer: 2, noCache: true}
	opts := f.options(cfg)
	if opts.Seed != 3 || opts.OuterBudget != 2 {
		t.Errorf("flags should win: seed %d outer %d", opts.Seed, opts.OuterBudget)
	}
	if opts.InnerBudget != 50 || opts.MaxCorridorFanOut != cfg.Budget.MaxCorridorFanOut {
		t.Errorf("config should fill unset flags: inner %d fan-out %d", opts.InnerBudget, opts.MaxCorridorFanOut)
	}
	if !opts.Refresh {
		t.Error("--no-cache should refresh")
	}
}

func TestParseFormatsFlag(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "txt", false},
		{"svg, JSON", "svg,json", false},
		{"txt,html", "", true},
	}
	for _, tt := range tests {
		got, err := parseFormats(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseFormats(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil {
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("parseFormats(%q) code = %s", tt.in, errors.GetCode(err))
			}
			continue
		}
		if s := strings.Join(got, ","); s != tt.want {
			t.Errorf("parseFormats(%q) = %q, want %q", tt.in, s, tt.want)
		}
	}
}

func TestRunValidate(t *testing.T) {
	out := captureStdout(t)
	if err := runValidate(writeLevel(t, hallLevel())); err != nil {
		t.Fatalf("runValidate: %v", err)
	}
	if !strings.Contains(out.String(), "is valid") {
		t.Errorf("output = %q", out.String())
	}

	broken := hallLevel()
	broken.Name = "broken"
	broken.Graphs = nil
	err := runValidate(writeLevel(t, broken))
	if !errors.Is(err, errors.ErrCodeInvalidLevel) {
		t.Errorf("err = %v, want INVALID_LEVEL", err)
	}
	if !strings.Contains(out.String(), "no room graphs") {
		t.Errorf("diagnostics missing from %q", out.String())
	}
}

func TestSelectGraphs(t *testing.T) {
	def, err := hallLevel().Definition()
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := selectGraphs(def.Graphs, ""); len(got) != 1 {
		t.Errorf("all graphs = %d", len(got))
	}
	if got, err := selectGraphs(def.Graphs, "main"); err != nil || got[0].ID() != "main" {
		t.Errorf("selectGraphs(main) = %v, %v", got, err)
	}
	if _, err := selectGraphs(def.Graphs, "side"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown graph err = %v", err)
	}
}

func TestRunGraphDOT(t *testing.T) {
	out := captureStdout(t)
	c := New(io.Discard, LogInfo)
	path := writeLevel(t, hallLevel())

	if err := c.runGraph(t.Context(), path, graphFlags{format: "dot", detailed: true}); err != nil {
		t.Fatalf("runGraph: %v", err)
	}
	for _, want := range []string{"digraph G", `"entrance" -> "hall"`, `"hall" -> "vault"`} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("DOT missing %q:\n%s", want, out.String())
		}
	}

	err := c.runGraph(t.Context(), path, graphFlags{format: "gif"})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("gif err = %v, want INVALID_FORMAT", err)
	}
}
