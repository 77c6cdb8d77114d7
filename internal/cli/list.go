package cli

import (
	"fmt"

	"github.com/enricodhd/nixpkgs-tungsten/internal/nix"
	"github.com/spf13/cobra"
)

func newListCmd(toolGetter ToolGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "list [filter]",
		Short: "List buildable artifacts, optionally filtered by substring",
		Long: `List the attribute names of all buildable artifacts, one per line.

An optional filter keeps only names containing the given substring
(case-sensitive), preserving order.`,
		Args: maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attrs, err := toolGetter().ListAttrs()
			if err != nil {
				return err
			}

			filter := ""
			if len(args) == 1 {
				filter = args[0]
			}
			for _, attr := range nix.FilterAttrs(attrs, filter) {
				fmt.Fprintln(cmd.OutOrStdout(), attr)
			}
			return nil
		},
	}
}
