package cmd

import (
	"fmt"
	"strings"

	"github.com/pandalog/pandalog/internal/cmdutil"
	"github.com/spf13/cobra"
)

const completionHelp = `Generate shell completion script.

Team names and stream titles are completed from the Graylog server
when GRAYLOG_HOST and GRAYLOG_TOKEN are set.

To load completions:

Bash:
  $ source <({{name}} completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ {{name}} completion bash > /etc/bash_completion.d/{{name}}
  # macOS:
  $ {{name}} completion bash > $(brew --prefix)/etc/bash_completion.d/{{name}}

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ {{name}} completion zsh > "${fpath[1]}/_{{name}}"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ {{name}} completion fish | source
  # To load completions for each session, execute once:
  $ {{name}} completion fish > ~/.config/fish/completions/{{name}}.fish

PowerShell:
  PS> {{name}} completion powershell | Out-String | Invoke-Expression
`

func newCompletionCmd(name string) *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate completion script",
		Long:                  strings.ReplaceAll(completionHelp, "{{name}}", name),
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cmdutil.UsageArgs(cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs)),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return fmt.Errorf("unsupported shell: %s", args[0])
		},
	}
}
