package cli

import (
	"github.com/spf13/cobra"
)

func newShellCmd(toolGetter ToolGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "shell <artifact>",
		Short: "Start an interactive development shell for an artifact",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return toolGetter().Shell(args[0])
		},
	}
}
