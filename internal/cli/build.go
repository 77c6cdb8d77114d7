package cli

import (
	"github.com/spf13/cobra"
)

func newBuildCmd(toolGetter ToolGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "build <artifact>",
		Short: "Build an artifact from the tungsten package set",
		Long: `Build an artifact from the tungsten package set.

Leaves the usual ./result symlink pointing at the build output.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return toolGetter().Build(args[0])
		},
	}
}
