package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// exactArgs validates the positional argument count before anything else
// runs. The message cites the command name and both counts.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("%s: expected %d argument(s), got %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}

// maxArgs validates that at most n positional arguments were given.
func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return fmt.Errorf("%s: expected at most %d argument(s), got %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}
