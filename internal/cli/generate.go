package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dungeonforge/pkg/pipeline"
	"github.com/matzehuels/dungeonforge/pkg/render/sink"
)

// generateFlags holds the generate command's own flags.
type generateFlags struct {
	gen    genFlags
	format string
	output string
	color  bool
	labels bool
	spawns bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:   "generate [level]",
		Short: "Lay out a level and write it in one or more formats",
		Long: `Generate picks one of the level's room graphs and places a template for
every node, joining doorways without overlaps. The same level, seed and
budgets always produce the same layout.

With a single text format and no -o the floor plan goes to stdout.
Otherwise one file per format is written next to -o (or named after the
level and seed).`,
		Example: `  dungeonforge generate examples/levels/crypt.yaml
  dungeonforge generate --seed 7 -f txt,svg -o crypt
  dungeonforge generate -f png --labels`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeLevelFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			path, err := levelPath(cfg, args)
			if err != nil {
				return err
			}
			formats, err := parseFormats(f.format)
			if err != nil {
				return err
			}

			opts := f.gen.options(cfg)
			opts.LevelPath = path
			opts.Formats = formats
			opts.Labels = f.labels
			opts.Spawns = f.spawns
			opts.Color = f.color
			if !cmd.Flags().Changed("color") {
				opts.Color = f.output == "" && sink.ColorSupported(os.Stdout)
			}
			opts.Logger = loggerFromContext(cmd.Context())

			return c.runGenerate(cmd.Context(), opts, f.output)
		},
	}

	f.gen.register(cmd)
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output formats: json, txt, svg, png, pdf, dot (comma separated, default txt)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file or base name")
	cmd.Flags().BoolVar(&f.color, "color", false, "color text output (default: when stdout is a terminal)")
	cmd.Flags().BoolVar(&f.labels, "labels", false, "label rooms in SVG output")
	cmd.Flags().BoolVar(&f.spawns, "spawns", false, "mark spawn positions")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, output string) error {
	runner, err := c.newRunner(opts.Refresh)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(opts.Logger)
	spin := newSpinner(ctx, fmt.Sprintf("Generating %s...", opts.LevelName()))
	spin.Start()
	result, err := runner.Execute(ctx, opts)
	spin.Stop()
	if err != nil {
		if spin.Cancelled() {
			return ctx.Err()
		}
		return err
	}
	prog.done("generated", "level", result.Layout.Level, "seed", opts.Seed)

	if toStdout(opts.Formats, output) {
		fmt.Fprint(stdout, string(result.Artifacts[pipeline.FormatText]))
		return nil
	}

	base := output
	if base == "" {
		base = fmt.Sprintf("%s-%d", opts.LevelName(), opts.Seed)
	}
	paths, err := writeArtifacts(result.Artifacts, opts.Formats, base)
	if err != nil {
		return err
	}

	printSuccess("Generated %s", StyleHighlight.Render(result.Layout.Level))
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Rooms, result.Stats.GraphID, result.Stats.Attempts, result.CacheInfo.LayoutHit)
	return nil
}

// toStdout reports whether the text plan should be printed instead of
// written to a file.
func toStdout(formats []string, output string) bool {
	return output == "" && len(formats) == 1 && formats[0] == pipeline.FormatText
}

// outputPath returns the file name for one format. A base that already
// carries the format's extension is used as is when only one format is
// written.
func outputPath(base, format string, single bool) string {
	ext := "." + format
	if single && strings.EqualFold(filepath.Ext(base), ext) {
		return base
	}
	if e := filepath.Ext(base); e != "" && pipeline.ValidFormats[strings.ToLower(e[1:])] {
		base = strings.TrimSuffix(base, e)
	}
	return base + ext
}

// writeArtifacts writes each format next to base, in formats order.
func writeArtifacts(artifacts map[string][]byte, formats []string, base string) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := outputPath(base, format, len(formats) == 1)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
