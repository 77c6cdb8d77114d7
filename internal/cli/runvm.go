package cli

import (
	"github.com/spf13/cobra"
)

func newRunVMCmd(toolGetter ToolGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "run-vm <test>",
		Short: "Launch a test VM interactively",
		Long: `Build a test's VM driver and launch it interactively.

Host ports 8080, 8143 and 2222 are forwarded into the VM (2222 to the
guest's SSH port). The session blocks until the VM is shut down.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return toolGetter().RunVM(args[0])
		},
	}
}
