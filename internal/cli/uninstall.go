package cli

import (
	"github.com/enricodhd/nixpkgs-tungsten/internal/util"
	"github.com/spf13/cobra"
)

func newUninstallCmd(toolGetter ToolGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall <artifact>",
		Short: "Remove an installed artifact from the user profile",
		Long: `Remove an installed artifact from the user profile.

nix-env addresses installed items by derivation name rather than attribute
path, so the name is resolved first. Resolution failure aborts the
uninstall.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool := toolGetter()

			name, err := tool.ResolveName(args[0])
			if err != nil {
				return err
			}
			util.Log("Uninstalling %s (%s)", args[0], name)
			return tool.Uninstall(name)
		},
	}
}
