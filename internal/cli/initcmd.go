package cli

import (
	"github.com/enricodhd/nixpkgs-tungsten/internal/config"
	"github.com/enricodhd/nixpkgs-tungsten/internal/env"
	"github.com/enricodhd/nixpkgs-tungsten/internal/nix"
	"github.com/enricodhd/nixpkgs-tungsten/internal/util"
	"github.com/spf13/cobra"
)

func newInitCmd(ctxGetter ContextGetter, toolGetter ToolGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Bootstrap Nix, the tungsten channel and the binary cache",
		Long: `Bootstrap a working tungsten environment.

Installs Nix if absent (installer URL overridable via ` + config.InstallerURLEnvVar + `),
subscribes the tungsten channel if absent, and writes the binary-cache
configuration if absent. Safe to re-run: existing state is never touched.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := env.NewBootstrapper(ctxGetter(), toolGetter(), nix.DefaultRunner())
			if err := b.Run(); err != nil {
				return err
			}
			util.Success("Environment ready. Run `please doctor` to verify.")
			return nil
		},
	}
}
