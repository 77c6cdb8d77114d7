package cli

import (
	"os"

	"github.com/enricodhd/nixpkgs-tungsten/internal/env"
	"github.com/spf13/cobra"
)

func newDoctorCmd(ctxGetter ContextGetter, toolGetter ToolGetter) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the environment for a working tungsten setup",
		Long: `Check the environment for a working tungsten setup.

Verifies that Nix is installed, the tungsten channel is subscribed, the
binary cache is configured, and hardware virtualization is usable. The
virtualization check is advisory; the other three decide the exit code.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			report := env.RunDoctor(ctxGetter(), toolGetter())
			report.Print()
			os.Exit(report.ExitCode())
			return nil
		},
	}
}
