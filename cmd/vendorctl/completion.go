package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacksmith/vendorctl/internal/model"
)

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for vendorctl.

To load completions:

Bash:
  $ source <(vendorctl completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ vendorctl completion bash > /etc/bash_completion.d/vendorctl
  # macOS:
  $ vendorctl completion bash > $(brew --prefix)/etc/bash_completion.d/vendorctl

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ vendorctl completion zsh > "${fpath[1]}/_vendorctl"
  # You will need to start a new shell for this setup to take effect.

Fish:
  $ vendorctl completion fish | source
  # To load completions for each session, execute once:
  $ vendorctl completion fish > ~/.config/fish/completions/vendorctl.fish
`,
	Annotations: map[string]string{noSetup: "true"},
}

var completionBashCmd = &cobra.Command{
	Use:   "bash",
	Short: "Generate bash completion script",
	Long:  "Generate the autocompletion script for bash.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenBashCompletion(os.Stdout)
	},
}

var completionZshCmd = &cobra.Command{
	Use:   "zsh",
	Short: "Generate zsh completion script",
	Long:  "Generate the autocompletion script for zsh.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenZshCompletion(os.Stdout)
	},
}

var completionFishCmd = &cobra.Command{
	Use:   "fish",
	Short: "Generate fish completion script",
	Long:  "Generate the autocompletion script for fish.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenFishCompletion(os.Stdout, true)
	},
}

func init() {
	completionCmd.AddCommand(completionBashCmd)
	completionCmd.AddCommand(completionZshCmd)
	completionCmd.AddCommand(completionFishCmd)
	rootCmd.AddCommand(completionCmd)
}

// completeChoices completes a flag from a fixed list of values.
func completeChoices(choices []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var out []string
		for _, c := range choices {
			if strings.HasPrefix(c, strings.ToLower(toComplete)) {
				out = append(out, c)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeOrderStatus completes the status argument of set-status. Item
// ids are not completed because that needs a signed-in request.
func completeOrderStatus(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 1 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeChoices(model.OrderStatuses)(cmd, args, toComplete)
}
