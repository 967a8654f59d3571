package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/svgreveal/pkg/reveal"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for svgreveal.

To load completions:

Bash:
  $ source <(svgreveal completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ svgreveal completion bash > /etc/bash_completion.d/svgreveal
  # macOS:
  $ svgreveal completion bash > $(brew --prefix)/etc/bash_completion.d/svgreveal

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ svgreveal completion zsh > "${fpath[1]}/_svgreveal"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ svgreveal completion fish | source

  # To load completions for each session, execute once:
  $ svgreveal completion fish > ~/.config/fish/completions/svgreveal.fish

PowerShell:
  PS> svgreveal completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> svgreveal completion powershell > svgreveal.ps1
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

// completeWords returns a flag completion function offering a fixed set.
func completeWords[T ~string](words ...T) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = string(w)
	}
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

var (
	allModes = append(reveal.ClassGeneric.Modes(), reveal.ModeGrow, reveal.ModeFadeIn)
	easings  = []reveal.Easing{reveal.EaseLinear, reveal.Ease, reveal.EaseIn, reveal.EaseOut, reveal.EaseInOut}
	actions  = []reveal.Action{reveal.ActionPlay, reveal.ActionPause, reveal.ActionReset}
)
