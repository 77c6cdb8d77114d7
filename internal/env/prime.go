package env

import (
	"os"

	"github.com/enricodhd/nixpkgs-tungsten/internal/config"
	"github.com/enricodhd/nixpkgs-tungsten/internal/nix"
	"github.com/enricodhd/nixpkgs-tungsten/internal/util"
)

// Prime performs best-effort environment priming before dispatch: put the Nix
// profile bin dirs on PATH if a user-scoped install exists, then warm the
// attribute index so later queries do not fail on a cold cache. All failures
// are tolerated silently.
func Prime(ctx *config.Context, tool *nix.Tool) {
	if util.FileExists(ctx.Paths.NixProfileScript()) {
		path := util.PrependPath(ctx.Paths.NixProfileBinDirs(), os.Getenv("PATH"))
		os.Setenv("PATH", path)
	}

	if toolInstalled() {
		_ = tool.PrimeIndex()
	}
}
