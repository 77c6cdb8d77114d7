package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/enricodhd/nixpkgs-tungsten/internal/config"
	"github.com/enricodhd/nixpkgs-tungsten/internal/env"
	"github.com/enricodhd/nixpkgs-tungsten/internal/nix"
	"github.com/enricodhd/nixpkgs-tungsten/internal/util"
	"github.com/spf13/cobra"
)

// ContextGetter returns the invocation context.
type ContextGetter func() *config.Context

// ToolGetter returns the Nix tool handle.
type ToolGetter func() *nix.Tool

var (
	cmdCtx  *config.Context
	cmdTool *nix.Tool
)

// Seams for tests.
var (
	geteuid  = os.Geteuid
	primeEnv = env.Prime
)

// errUsage marks errors whose message is the already-printed usage text.
var errUsage = errors.New("usage")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "please",
	Short: "Build, install and test tungsten artifacts and VM images",
	Long: `please: operator CLI for the tungsten Nix package set.

Dispatches to the Nix toolchain to build, install, uninstall and test
tungsten artifacts, run interactive VM tests, and bootstrap a working
environment (Nix itself, the tungsten channel, the binary cache).`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Nix profiles are per-user; running privileged would operate on
		// root's profile and can corrupt store permissions.
		if geteuid() == 0 {
			return fmt.Errorf("refusing to run as root: please manages a per-user Nix profile; run it as an unprivileged user")
		}
		primeEnv(getContext(), getTool())
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			util.Warn("unknown command: %s", args[0])
		}
		_ = cmd.Usage()
		return errUsage
	},
}

// Execute runs the root command and returns the process exit code. External
// tool failures propagate their own exit codes verbatim.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	if !errors.Is(err, errUsage) {
		util.Error("%v", err)
	}
	return 1
}

func init() {
	cobra.OnInitialize(initContext)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(newBuildCmd(getTool))
	rootCmd.AddCommand(newInstallCmd(getTool))
	rootCmd.AddCommand(newUninstallCmd(getTool))
	rootCmd.AddCommand(newShellCmd(getTool))
	rootCmd.AddCommand(newListCmd(getTool))
	rootCmd.AddCommand(newRunTestCmd(getTool))
	rootCmd.AddCommand(newRunVMCmd(getTool))
	rootCmd.AddCommand(newDoctorCmd(getContext, getTool))
	rootCmd.AddCommand(newInitCmd(getContext, getTool))
	rootCmd.AddCommand(newCompletionsCmd())
}

// initContext builds the invocation context once. Settings problems fall
// back to defaults with a warning rather than blocking every command.
func initContext() {
	if cmdCtx != nil {
		return
	}

	paths := config.NewPaths("")
	ctx, err := config.NewContext(paths)
	if err != nil {
		util.Warn("could not load settings: %v (using defaults)", err)
		ctx = &config.Context{Paths: paths, Settings: config.DefaultSettings()}
	}
	cmdCtx = ctx
	cmdTool = nix.New(ctx.Settings.Jobset)
}

// getContext returns the invocation context, building it on first use.
func getContext() *config.Context {
	if cmdCtx == nil {
		initContext()
	}
	return cmdCtx
}

// getTool returns the Nix tool handle, building it on first use.
func getTool() *nix.Tool {
	if cmdTool == nil {
		initContext()
	}
	return cmdTool
}
