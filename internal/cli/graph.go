package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dungeonforge/pkg/asset"
	"github.com/matzehuels/dungeonforge/pkg/core/roomgraph"
	"github.com/matzehuels/dungeonforge/pkg/errors"
	"github.com/matzehuels/dungeonforge/pkg/render/dot"
)

// graphFlags holds options for the graph command.
type graphFlags struct {
	format   string
	output   string
	graphID  string
	detailed bool
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var f graphFlags

	cmd := &cobra.Command{
		Use:   "graph [level]",
		Short: "Draw the room graphs of a level",
		Long: `Graph renders the level's room type graphs with Graphviz: one box per
room node, one ellipse per corridor, edges from parent to child. Several
graphs are drawn as separate clusters.`,
		Example: `  dungeonforge graph -f svg -o crypt-graphs.svg
  dungeonforge graph --graph descent examples/levels/crypt.yaml`,
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
			return c.runGraph(cmd.Context(), path, f)
		},
	}

	cmd.Flags().StringVarP(&f.format, "format", "f", "dot", "output format: dot, svg, png")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default stdout for dot)")
	cmd.Flags().StringVar(&f.graphID, "graph", "", "draw only the graph with this id")
	cmd.Flags().BoolVar(&f.detailed, "detailed", true, "show room types in node labels")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, path string, f graphFlags) error {
	lvl, err := asset.ReadFile(path)
	if err != nil {
		return err
	}
	def, err := lvl.Definition()
	if err != nil {
		return err
	}
	graphs, err := selectGraphs(def.Graphs, f.graphID)
	if err != nil {
		return err
	}

	src := dot.ToDOT(graphs, dot.Options{Detailed: f.detailed})
	var data []byte
	switch f.format {
	case "dot":
		data = []byte(src)
	case "svg":
		data, err = dot.RenderSVG(ctx, src)
	case "png":
		data, err = dot.RenderPNG(ctx, src)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "graph format %q (must be dot, svg or png)", f.format)
	}
	if err != nil {
		return err
	}

	if f.output == "" {
		if f.format != "dot" {
			f.output = fmt.Sprintf("%s-graphs.%s", lvl.Name, f.format)
		} else {
			_, err := stdout.Write(data)
			return err
		}
	}
	if err := os.WriteFile(f.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.output, err)
	}
	printSuccess("Drew %d room graphs", len(graphs))
	printFile(f.output)
	return nil
}

// selectGraphs returns all graphs, or the one named id.
func selectGraphs(graphs []*roomgraph.Graph, id string) ([]*roomgraph.Graph, error) {
	if id == "" {
		return graphs, nil
	}
	for _, g := range graphs {
		if g.ID() == id {
			return []*roomgraph.Graph{g}, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "no graph %q", id)
}
