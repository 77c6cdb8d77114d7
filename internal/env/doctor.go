package env

import (
	"fmt"
	"os"
	"strings"

	"github.com/enricodhd/nixpkgs-tungsten/internal/config"
	"github.com/enricodhd/nixpkgs-tungsten/internal/nix"
	"github.com/enricodhd/nixpkgs-tungsten/internal/util"
)

// toolInstalled is a seam for tests.
var toolInstalled = nix.Installed

// Check is a single environment sanity check result. Advisory checks warn but
// never flip the overall exit code.
type Check struct {
	Name     string
	Advisory bool
	Passed   bool
	Detail   string
}

// Report aggregates the doctor checks for one run.
type Report struct {
	Checks      []Check
	HasFailures bool // essential failures only
}

// RunDoctor performs the four environment checks: Nix installed, tungsten
// channel subscribed, binary cache configured, KVM device usable.
func RunDoctor(ctx *config.Context, tool *nix.Tool) *Report {
	report := &Report{}

	installed := toolInstalled()
	report.add(Check{
		Name:   "nix installed",
		Passed: installed,
		Detail: "Nix toolchain not found on PATH",
	})

	subscribed := false
	if installed {
		subscribed, _ = tool.HasChannel(ctx.Settings.ChannelName)
	}
	report.add(Check{
		Name:   fmt.Sprintf("%s channel subscribed", ctx.Settings.ChannelName),
		Passed: subscribed,
		Detail: fmt.Sprintf("channel %s is not subscribed", ctx.Settings.ChannelName),
	})

	report.add(Check{
		Name:   "binary cache configured",
		Passed: CacheConfigured(ctx),
		Detail: fmt.Sprintf("%s does not name the %s substituter", ctx.Paths.NixConfFile(), ctx.Settings.CacheURL),
	})

	kvmErr := kvmAccessible()
	detail := ""
	if kvmErr != nil {
		detail = kvmErr.Error()
	}
	report.add(Check{
		Name:     "hardware virtualization (/dev/kvm)",
		Advisory: true,
		Passed:   kvmErr == nil,
		Detail:   detail,
	})

	return report
}

func (r *Report) add(check Check) {
	r.Checks = append(r.Checks, check)
	if !check.Passed && !check.Advisory {
		r.HasFailures = true
	}
}

// Print writes one aligned status line per check, plus remediation guidance
// if any essential check failed.
func (r *Report) Print() {
	util.Log("Doctor:")

	nameW := 0
	for _, check := range r.Checks {
		if len(check.Name) > nameW {
			nameW = len(check.Name)
		}
	}

	for _, check := range r.Checks {
		status := util.Colorf(util.Green, "OK  ")
		if !check.Passed {
			if check.Advisory {
				status = util.Colorf(util.Yellow, "WARN")
			} else {
				status = util.Colorf(util.Red, "FAIL")
			}
		}

		line := fmt.Sprintf("  %s %-*s", status, nameW, check.Name)
		if !check.Passed && check.Detail != "" {
			line += "  " + util.Colorf(util.Dim, check.Detail)
		}
		fmt.Println(strings.TrimRight(line, " "))
	}

	if r.HasFailures {
		fmt.Println()
		fmt.Println("  Fix: run `please init` to bootstrap Nix, the channel and the cache config.")
	}
}

// ExitCode returns 0 if all essential checks passed, 1 otherwise. The
// virtualization check is advisory and never affects the result.
func (r *Report) ExitCode() int {
	if r.HasFailures {
		return 1
	}
	return 0
}

// CacheConfigured reports whether the user nix.conf exists and lists the
// tungsten cache as a substituter.
func CacheConfigured(ctx *config.Context) bool {
	data, err := os.ReadFile(ctx.Paths.NixConfFile())
	if err != nil {
		return false
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		if strings.TrimSpace(key) != "substituters" {
			continue
		}
		if strings.Contains(value, ctx.Settings.CacheURL) {
			return true
		}
	}
	return false
}
