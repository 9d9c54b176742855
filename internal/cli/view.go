package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dungeonforge/pkg/config"
	"github.com/matzehuels/dungeonforge/pkg/errors"
	"github.com/matzehuels/dungeonforge/pkg/pipeline"
	"github.com/matzehuels/dungeonforge/pkg/render/sink"
)

var (
	viewHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	viewHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	viewErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// viewCommand creates the interactive viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var gf genFlags
	var legend bool

	cmd := &cobra.Command{
		Use:   "view [level]",
		Short: "Browse generated layouts in the terminal",
		Long: `View generates a level and shows the floor plan full screen.

Keys:
  r  regenerate with a random seed
  n  next seed    p  previous seed
  l  next level from the config file
  q  quit`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeLevelFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			levels := cfg.Levels
			start := cfg.StartLevel
			if len(args) > 0 {
				levels, start = []string{args[0]}, 0
			}
			if len(levels) == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "no level given and no levels configured in %s", config.DefaultFile)
			}

			// Log lines would tear the full screen program.
			cc, err := newCache(gf.noCache)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(cc, nil, quietLogger())
			defer runner.Close()

			base := gf.options(cfg)
			gen := func(ctx context.Context, path string, seed uint64) (*pipeline.Result, error) {
				opts := base
				opts.LevelPath = path
				opts.Seed = seed
				opts.Formats = []string{pipeline.FormatText}
				return runner.Execute(ctx, opts)
			}

			m := newViewerModel(cmd.Context(), gen, levels, start, base.Seed)
			m.color = sink.ColorSupported(os.Stdout)
			m.legend = legend

			final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if vm, ok := final.(viewerModel); ok && vm.result != nil {
				printInfo("Last layout: %s seed %d", vm.levelName(), vm.seed)
			}
			return nil
		},
	}

	gf.register(cmd)
	cmd.Flags().BoolVar(&legend, "legend", false, "list rooms below the plan")

	return cmd
}

// generateFunc produces one layout. The viewer calls it from a tea.Cmd.
type generateFunc func(ctx context.Context, path string, seed uint64) (*pipeline.Result, error)

// layoutMsg carries a finished generation back to the model.
type layoutMsg struct {
	level  int
	seed   uint64
	result *pipeline.Result
	err    error
}

// viewerModel is the bubbletea model behind the view command.
type viewerModel struct {
	ctx    context.Context
	gen    generateFunc
	levels []string
	level  int
	seed   uint64
	color  bool
	legend bool

	result  *pipeline.Result
	err     error
	busy    bool
	width   int
	height  int
	reroll  func() uint64
	message string
}

func newViewerModel(ctx context.Context, gen generateFunc, levels []string, start int, seed uint64) viewerModel {
	return viewerModel{
		ctx:    ctx,
		gen:    gen,
		levels: levels,
		level:  start,
		seed:   seed,
		busy:   true,
		reroll: func() uint64 { return rand.Uint64N(1 << 32) },
	}
}

func (m viewerModel) Init() tea.Cmd {
	return m.generate()
}

// generate returns a command that lays out the current level and seed.
func (m viewerModel) generate() tea.Cmd {
	ctx, gen, lvl, seed := m.ctx, m.gen, m.level, m.seed
	path := m.levels[lvl]
	return func() tea.Msg {
		res, err := gen(ctx, path, seed)
		return layoutMsg{level: lvl, seed: seed, result: res, err: err}
	}
}

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.seed = m.reroll()
		case "n":
			m.seed++
		case "p":
			if m.seed > 1 {
				m.seed--
			}
		case "l":
			if len(m.levels) < 2 {
				m.message = "only one level configured"
				return m, nil
			}
			m.level = (m.level + 1) % len(m.levels)
		default:
			return m, nil
		}
		m.busy = true
		m.message = ""
		return m, m.generate()

	case layoutMsg:
		// Drop results of keys pressed faster than generation.
		if msg.level != m.level || msg.seed != m.seed {
			return m, nil
		}
		m.busy = false
		m.result, m.err = msg.result, msg.err

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m viewerModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("%s · seed %d", m.levelName(), m.seed)
	if len(m.levels) > 1 {
		title += fmt.Sprintf(" · level %d/%d", m.level+1, len(m.levels))
	}
	b.WriteString(viewHeaderStyle.Render(title))
	b.WriteString("\n\n")

	switch {
	case m.busy && m.result == nil:
		b.WriteString(viewHelpStyle.Render("generating..."))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(viewErrorStyle.Render(errors.UserMessage(m.err)))
		b.WriteString("\n")
	case m.result != nil:
		var opts []sink.TextOption
		opts = append(opts, sink.WithColor(m.color))
		if m.legend {
			opts = append(opts, sink.WithLegend())
		}
		b.WriteString(m.clip(sink.RenderText(m.result.Layout, opts...)))
		s := m.result.Stats
		b.WriteString(viewHelpStyle.Render(fmt.Sprintf("%d rooms · graph %s · %d attempts", s.Rooms, s.GraphID, s.Attempts)))
		b.WriteString("\n")
	}

	if m.message != "" {
		b.WriteString(viewHelpStyle.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(viewHelpStyle.Render("r reroll  n/p seed  l level  q quit"))
	return b.String()
}

// clip drops plan rows that do not fit the window. Columns are left to the
// terminal.
func (m viewerModel) clip(plan string) string {
	if m.height <= 0 {
		return plan
	}
	rows := strings.SplitAfter(plan, "\n")
	if limit := m.height - 6; limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return strings.Join(rows, "")
}

func (m viewerModel) levelName() string {
	if m.result != nil && m.result.Layout.Level != "" {
		return m.result.Layout.Level
	}
	opts := pipeline.Options{LevelPath: m.levels[m.level]}
	return opts.LevelName()
}
