package env

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/enricodhd/nixpkgs-tungsten/internal/config"
	"github.com/enricodhd/nixpkgs-tungsten/internal/nix"
	"github.com/enricodhd/nixpkgs-tungsten/internal/util"
)

// Bootstrapper performs the idempotent `please init` setup: install Nix if
// absent, subscribe the tungsten channel if absent, write the binary-cache
// configuration if absent. Repeating a run never destroys existing state.
type Bootstrapper struct {
	ctx    *config.Context
	tool   *nix.Tool
	runner nix.Runner
}

// NewBootstrapper creates a Bootstrapper.
func NewBootstrapper(ctx *config.Context, tool *nix.Tool, runner nix.Runner) *Bootstrapper {
	return &Bootstrapper{ctx: ctx, tool: tool, runner: runner}
}

// Run executes all bootstrap steps in order.
func (b *Bootstrapper) Run() error {
	if err := b.ensureTool(); err != nil {
		return err
	}
	if err := b.ensureChannel(); err != nil {
		return err
	}
	return b.ensureCacheConfig()
}

// ensureTool installs Nix via the pinned installer script if it is not
// already on PATH.
func (b *Bootstrapper) ensureTool() error {
	if toolInstalled() {
		util.Log("Nix already installed")
		return nil
	}

	url := b.ctx.InstallerURL()
	util.Log("Installing Nix from %s", url)
	// The installer is a shell script by contract; the URL is the only
	// interpolated value and is quoted.
	pipeline := fmt.Sprintf("curl -L %s | sh", util.ShellQuote(url))
	if err := b.runner.Run("sh", "-c", pipeline); err != nil {
		return fmt.Errorf("Nix install failed: %w", err)
	}
	return nil
}

// ensureChannel subscribes the tungsten channel unless already subscribed.
func (b *Bootstrapper) ensureChannel() error {
	name := b.ctx.Settings.ChannelName

	subscribed, err := b.tool.HasChannel(name)
	if err != nil {
		return err
	}
	if subscribed {
		util.Log("Channel %s already subscribed", name)
		return nil
	}

	util.Log("Subscribing channel %s", name)
	return b.tool.AddChannel(name, b.ctx.Settings.ChannelURL)
}

// ensureCacheConfig writes the user nix.conf with the tungsten substituter.
// An existing file is never touched; the operator is told to edit it instead.
func (b *Bootstrapper) ensureCacheConfig() error {
	confFile := b.ctx.Paths.NixConfFile()

	if util.FileExists(confFile) {
		util.Log("%s already exists, not overwriting", confFile)
		util.Log("  add %s to its substituters manually if missing", b.ctx.Settings.CacheURL)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(confFile), 0755); err != nil {
		return fmt.Errorf("could not create %s: %w", filepath.Dir(confFile), err)
	}

	content := cacheConfigContent(b.ctx.Settings)
	if err := os.WriteFile(confFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("could not write %s: %w", confFile, err)
	}
	util.Success("Wrote %s", confFile)
	return nil
}

// cacheConfigContent renders the nix.conf body for a fresh install.
func cacheConfigContent(settings *config.Settings) string {
	var sb strings.Builder
	sb.WriteString("# Written by `please init`. Edit freely; please never overwrites this file.\n")
	sb.WriteString("substituters = " + strings.Join(settings.Substituters(), " ") + "\n")
	sb.WriteString("trusted-public-keys = " + strings.Join(settings.TrustedPublicKeys(), " ") + "\n")
	return sb.String()
}
