package sink

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/matzehuels/dungeonforge/pkg/core/room"
)

var (
	wallStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	spawnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	floorStyle = map[room.Type]lipgloss.Style{
		room.TypeEntrance:   lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		room.TypeRoom:       lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
		room.TypeBossRoom:   lipgloss.NewStyle().Foreground(lipgloss.Color("167")),
		room.TypeCorridorNS: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		room.TypeCorridorEW: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	}
)

type TextOption func(*textRenderer)

type textRenderer struct {
	color  bool
	legend bool
}

// WithColor colors glyphs by the type of the room they belong to.
func WithColor(on bool) TextOption { return func(r *textRenderer) { r.color = on } }

// WithLegend appends one line per room listing its id, type and bounds.
func WithLegend() TextOption { return func(r *textRenderer) { r.legend = true } }

// ColorSupported reports whether f is a terminal.
func ColorSupported(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// RenderText returns l's tile rows joined with newlines.
func RenderText(l Layout, opts ...TextOption) string {
	r := &textRenderer{}
	for _, opt := range opts {
		opt(r)
	}

	var sb strings.Builder
	for i, row := range l.Tiles {
		if r.color {
			row = r.colorRow(l, l.Bounds.Upper.Y-i, row)
		}
		sb.WriteString(row)
		sb.WriteByte('\n')
	}
	if r.legend {
		for _, rm := range l.Rooms {
			sb.WriteString(rm.ID + " " + rm.Type.String() + " " + rm.Bounds.String() + "\n")
		}
	}
	return sb.String()
}

func (r *textRenderer) colorRow(l Layout, y int, row string) string {
	var sb strings.Builder
	x := l.Bounds.Lower.X
	for _, g := range row {
		s := string(g)
		switch g {
		case ' ':
		case '#':
			s = wallStyle.Render(s)
		case '@':
			s = spawnStyle.Render(s)
		default:
			if rm, ok := l.RoomAt(room.Point{X: x, Y: y}); ok {
				if st, ok := floorStyle[rm.Type]; ok {
					s = st.Render(s)
				}
			}
		}
		sb.WriteString(s)
		x++
	}
	return sb.String()
}
