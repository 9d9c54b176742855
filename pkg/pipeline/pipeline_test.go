package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/dungeonforge/pkg/asset"
	"github.com/matzehuels/dungeonforge/pkg/cache"
	"github.com/matzehuels/dungeonforge/pkg/core/level"
	"github.com/matzehuels/dungeonforge/pkg/core/room"
	"github.com/matzehuels/dungeonforge/pkg/render/sink"
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

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"txt", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"dot", false},
		{"SVG", true},
		{"html", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestParseFormats(t *testing.T) {
	got := ParseFormats(" TXT, svg,,json ")
	if strings.Join(got, "|") != "txt|svg|json" {
		t.Errorf("ParseFormats() = %q", got)
	}
	if got := ParseFormats(""); got != nil {
		t.Errorf("ParseFormats(\"\") = %q, want nil", got)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateForGenerate(); err != nil {
		t.Fatalf("ValidateForGenerate: %v", err)
	}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("ValidateForRender: %v", err)
	}

	if opts.Seed != level.DefaultSeed {
		t.Errorf("Seed = %d, want %d", opts.Seed, level.DefaultSeed)
	}
	if opts.OuterBudget != 10 || opts.InnerBudget != 1000 || opts.MaxCorridorFanOut != 3 {
		t.Errorf("budgets = %d/%d/%d", opts.OuterBudget, opts.InnerBudget, opts.MaxCorridorFanOut)
	}
	if strings.Join(opts.Formats, ",") != FormatText {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		check   func(*Options) error
		wantErr bool
	}{
		{"no level", Options{}, (*Options).ValidateForLoad, true},
		{"level path", Options{LevelPath: "crypt.yaml"}, (*Options).ValidateForLoad, false},
		{"preloaded level", Options{Level: hallLevel()}, (*Options).ValidateForLoad, false},
		{"negative budget", Options{InnerBudget: -1}, (*Options).ValidateForGenerate, true},
		{"bad format", Options{Formats: []string{"gif"}}, (*Options).ValidateForRender, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(&tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLevelName(t *testing.T) {
	if got := (&Options{LevelPath: "examples/levels/crypt.yaml"}).LevelName(); got != "crypt" {
		t.Errorf("LevelName() = %q, want crypt", got)
	}
	if got := (&Options{Level: hallLevel(), LevelPath: "x.yaml"}).LevelName(); got != "hall" {
		t.Errorf("LevelName() = %q, want hall", got)
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	result, err := r.Execute(context.Background(), Options{
		Level:   hallLevel(),
		Formats: []string{FormatJSON, FormatText, FormatSVG, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.Rooms != 3 || result.Stats.GraphID != "main" {
		t.Errorf("Stats = %+v", result.Stats)
	}
	if result.Stats.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", result.Stats.Attempts)
	}
	if len(result.Stats.Fingerprint) != 64 {
		t.Errorf("Fingerprint = %q", result.Stats.Fingerprint)
	}
	if result.Registry == nil || result.Canvas == nil {
		t.Fatal("fresh generation should carry registry and canvas")
	}
	if result.CacheInfo.LayoutHit {
		t.Error("null cache should never hit")
	}

	if got := string(result.Artifacts[FormatText]); got != hallText {
		t.Errorf("txt =\n%s\nwant\n%s", got, hallText)
	}
	if !bytes.Contains(result.Artifacts[FormatJSON], []byte(`"level": "hall"`)) {
		t.Error("json artifact missing level name")
	}
	if !bytes.HasPrefix(result.Artifacts[FormatSVG], []byte("<svg")) {
		t.Error("svg artifact missing <svg> header")
	}
	if !bytes.Contains(result.Artifacts[FormatDOT], []byte(`"entrance" -> "hall"`)) {
		t.Error("dot artifact missing edge")
	}
}

func TestExecuteDeterministic(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := Options{Level: hallLevel(), Seed: 99, Formats: []string{FormatJSON}}

	a, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if a.Stats.Fingerprint != b.Stats.Fingerprint {
		t.Error("same seed should give the same fingerprint")
	}
}

func TestGenerateCache(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	lvl := hallLevel()

	first, err := r.Generate(ctx, lvl, Options{Level: lvl})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.LayoutHit {
		t.Fatal("first generation should miss")
	}

	second, err := r.Generate(ctx, lvl, Options{Level: lvl})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Fatal("second generation should hit")
	}
	if second.Registry != nil {
		t.Error("cached result should not carry a registry")
	}
	if second.Stats.Fingerprint != first.Stats.Fingerprint || second.Stats.Rooms != 3 {
		t.Errorf("cached stats = %+v, want %+v", second.Stats, first.Stats)
	}

	third, err := r.Generate(ctx, lvl, Options{Level: lvl, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("Refresh should bypass the cache")
	}

	other, err := r.Generate(ctx, lvl, Options{Level: lvl, Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	if other.CacheInfo.LayoutHit {
		t.Error("a different seed should miss")
	}
}

func TestRenderCache(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	lvl := hallLevel()
	opts := Options{Level: lvl, Formats: []string{FormatText, FormatSVG}}

	result, err := r.Generate(ctx, lvl, opts)
	if err != nil {
		t.Fatal(err)
	}
	if _, hit, err := r.RenderWithCacheInfo(ctx, result, opts); err != nil || hit {
		t.Fatalf("first render: hit %v, err %v", hit, err)
	}
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, result, opts)
	if err != nil || !hit {
		t.Fatalf("second render: hit %v, err %v", hit, err)
	}
	if string(artifacts[FormatText]) != hallText {
		t.Errorf("cached txt = %q", artifacts[FormatText])
	}
}

func TestGenerateInvalidLevel(t *testing.T) {
	lvl := hallLevel()
	lvl.Graphs = nil

	_, err := NewRunner(nil, nil, nil).Generate(context.Background(), lvl, Options{Level: lvl})
	if !errors.Is(err, level.ErrInvalidDefinition) {
		t.Fatalf("err = %v, want ErrInvalidDefinition", err)
	}
}

func TestRenderDOTNeedsLevel(t *testing.T) {
	_, err := Render(context.Background(), sink.Layout{}, nil, Options{Formats: []string{FormatDOT}})
	if err == nil {
		t.Error("dot output without a level should fail")
	}
}
