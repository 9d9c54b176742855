package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/dungeonforge/pkg/asset"
	"github.com/matzehuels/dungeonforge/pkg/core/level"
	"github.com/matzehuels/dungeonforge/pkg/errors"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [level]",
		Short: "Report problems in a level file without generating",
		Long: `Validate checks every room template and room graph of a level.

Errors (malformed templates, missing graphs) make generation impossible.
Warnings (no corridor templates, unreachable nodes, a node type without a
template) mean some or all attempts will fail.`,
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
			return runValidate(path)
		},
	}
}

func runValidate(path string) error {
	lvl, err := asset.ReadFile(path)
	if err != nil {
		return err
	}
	def, err := lvl.Definition()
	if err != nil {
		return err
	}

	ds := level.Validate(def)
	printDiagnostics(ds)
	if level.HasErrors(ds) {
		return errors.New(errors.ErrCodeInvalidLevel, "%s: level has errors", path)
	}

	if len(ds) == 0 {
		printSuccess("%s is valid", StyleHighlight.Render(path))
	} else {
		printSuccess("%s is valid with %d warnings", StyleHighlight.Render(path), len(ds))
	}
	printDetail("%d templates · %d graphs", len(def.Templates), len(def.Graphs))
	printNextStep("Generate it", "dungeonforge generate "+path)
	return nil
}
