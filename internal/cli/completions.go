package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCompletionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completions [bash|zsh|fish]",
		Short: "Print a shell completion script to stdout",
		Long: `Print a tab-completion script for the given shell (default bash).

Load it with e.g.:
  source <(please completions)
  please completions fish | source`,
		Args:      maxArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish"},
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := "bash"
			if len(args) == 1 {
				shell = args[0]
			}

			out := cmd.OutOrStdout()
			switch shell {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return fmt.Errorf("completions: unsupported shell %q", shell)
			}
		},
	}
}
