package cli

import (
	"github.com/spf13/cobra"
)

func newInstallCmd(toolGetter ToolGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "install <artifact>",
		Short: "Install an artifact into the user profile",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return toolGetter().Install(args[0])
		},
	}
}
