package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for dungeonforge.

To load completions:

Bash:
  $ source <(dungeonforge completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ dungeonforge completion bash > /etc/bash_completion.d/dungeonforge
  # macOS:
  $ dungeonforge completion bash > $(brew --prefix)/etc/bash_completion.d/dungeonforge

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ dungeonforge completion zsh > "${fpath[1]}/_dungeonforge"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ dungeonforge completion fish | source

  # To load completions for each session, execute once:
  $ dungeonforge completion fish > ~/.config/fish/completions/dungeonforge.fish

PowerShell:
  PS> dungeonforge completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> dungeonforge completion powershell > dungeonforge.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}

	return cmd
}

// completeLevelFiles completes the level argument with asset files.
func completeLevelFiles(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"yaml", "yml", "json"}, cobra.ShellCompDirectiveFilterFileExt
}
