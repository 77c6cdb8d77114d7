package cli

import (
	"github.com/spf13/cobra"
)

func newRunTestCmd(toolGetter ToolGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "run-test <test>",
		Short: "Build and run a test from the tungsten test suite",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return toolGetter().BuildTest(args[0])
		},
	}
}
