package env

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/enricodhd/nixpkgs-tungsten/internal/config"
	"github.com/enricodhd/nixpkgs-tungsten/internal/nix"
)

func newTestContext(t *testing.T) *config.Context {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	return &config.Context{
		Paths:    config.NewPaths(tmpDir),
		Settings: config.DefaultSettings(),
	}
}

func writeCacheConf(t *testing.T, ctx *config.Context, content string) {
	t.Helper()
	if err := os.MkdirAll(ctx.Paths.NixConfDir(), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ctx.Paths.NixConfFile(), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRunDoctor_AllEssentialPass(t *testing.T) {
	ctx := newTestContext(t)
	setToolInstalled(t, true)
	setKVMDevice(t, filepath.Join(t.TempDir(), "missing-kvm"))

	runner := newFakeRunner()
	runner.output["nix-channel --list"] = "tungsten https://example.com/t.tar.gz\n"
	tool := nix.NewWithRunner(ctx.Settings.Jobset, runner)

	writeCacheConf(t, ctx, "substituters = https://cache.nixos.org "+ctx.Settings.CacheURL+"\n")

	report := RunDoctor(ctx, tool)

	if len(report.Checks) != 4 {
		t.Fatalf("RunDoctor() performed %d checks, want 4", len(report.Checks))
	}
	// KVM device missing: advisory failure must not flip the exit code.
	if report.Checks[3].Passed {
		t.Error("KVM check should have failed")
	}
	if report.Checks[3].Advisory != true {
		t.Error("KVM check should be advisory")
	}
	if report.HasFailures {
		t.Error("advisory failure flipped HasFailures")
	}
	if report.ExitCode() != 0 {
		t.Errorf("ExitCode() = %d, want 0", report.ExitCode())
	}
}

func TestRunDoctor_EssentialFailures(t *testing.T) {
	tests := []struct {
		name       string
		installed  bool
		channels   string
		cacheConf  string // empty means no file
		wantFailed string
	}{
		{
			name:       "tool missing fails everything downstream",
			installed:  false,
			wantFailed: "nix installed",
		},
		{
			name:       "channel not subscribed",
			installed:  true,
			channels:   "nixpkgs https://nixos.org/channels/nixpkgs-unstable\n",
			cacheConf:  "substituters = https://tungsten.cachix.org\n",
			wantFailed: "tungsten channel subscribed",
		},
		{
			name:       "cache not configured",
			installed:  true,
			channels:   "tungsten https://example.com/t.tar.gz\n",
			wantFailed: "binary cache configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext(t)
			setToolInstalled(t, tt.installed)
			setKVMDevice(t, filepath.Join(t.TempDir(), "missing-kvm"))

			runner := newFakeRunner()
			runner.output["nix-channel --list"] = tt.channels
			tool := nix.NewWithRunner(ctx.Settings.Jobset, runner)

			if tt.cacheConf != "" {
				writeCacheConf(t, ctx, tt.cacheConf)
			}

			report := RunDoctor(ctx, tool)

			if report.ExitCode() != 1 {
				t.Errorf("ExitCode() = %d, want 1", report.ExitCode())
			}

			found := false
			for _, check := range report.Checks {
				if check.Name == tt.wantFailed && !check.Passed && !check.Advisory {
					found = true
				}
			}
			if !found {
				t.Errorf("expected essential failure of %q, checks: %+v", tt.wantFailed, report.Checks)
			}
		})
	}
}

func TestRunDoctor_KVMAdvisoryOnly(t *testing.T) {
	ctx := newTestContext(t)
	setToolInstalled(t, true)

	// A plain read/write file stands in for an accessible device node.
	kvm := filepath.Join(t.TempDir(), "kvm")
	if err := os.WriteFile(kvm, nil, 0600); err != nil {
		t.Fatal(err)
	}
	setKVMDevice(t, kvm)

	runner := newFakeRunner()
	runner.output["nix-channel --list"] = "tungsten https://example.com/t.tar.gz\n"
	tool := nix.NewWithRunner(ctx.Settings.Jobset, runner)
	writeCacheConf(t, ctx, "substituters = "+ctx.Settings.CacheURL+"\n")

	report := RunDoctor(ctx, tool)
	if !report.Checks[3].Passed {
		t.Errorf("KVM check failed for accessible device: %s", report.Checks[3].Detail)
	}
	if report.ExitCode() != 0 {
		t.Errorf("ExitCode() = %d, want 0", report.ExitCode())
	}
}

func TestCacheConfigured(t *testing.T) {
	tests := []struct {
		name     string
		content  string // empty means no file
		expected bool
	}{
		{
			name:     "no file",
			content:  "",
			expected: false,
		},
		{
			name:     "substituter listed",
			content:  "substituters = https://cache.nixos.org https://tungsten.cachix.org\n",
			expected: true,
		},
		{
			name:     "other substituters only",
			content:  "substituters = https://cache.nixos.org\n",
			expected: false,
		},
		{
			name:     "cache url outside substituters key",
			content:  "# https://tungsten.cachix.org\nsubstituters = https://cache.nixos.org\n",
			expected: false,
		},
		{
			name:     "whitespace around key",
			content:  "  substituters =  https://tungsten.cachix.org \n",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext(t)
			if tt.content != "" {
				writeCacheConf(t, ctx, tt.content)
			}

			if got := CacheConfigured(ctx); got != tt.expected {
				t.Errorf("CacheConfigured() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestReport_ExitCode(t *testing.T) {
	tests := []struct {
		name     string
		checks   []Check
		expected int
	}{
		{
			name: "all pass",
			checks: []Check{
				{Name: "a", Passed: true},
				{Name: "b", Passed: true},
			},
			expected: 0,
		},
		{
			name: "essential failure",
			checks: []Check{
				{Name: "a", Passed: false},
			},
			expected: 1,
		},
		{
			name: "advisory failure only",
			checks: []Check{
				{Name: "a", Passed: true},
				{Name: "kvm", Advisory: true, Passed: false},
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := &Report{}
			for _, check := range tt.checks {
				report.add(check)
			}
			if got := report.ExitCode(); got != tt.expected {
				t.Errorf("ExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestCacheConfigContent(t *testing.T) {
	content := cacheConfigContent(config.DefaultSettings())

	if !strings.Contains(content, "substituters = ") {
		t.Error("content missing substituters line")
	}
	if !strings.Contains(content, config.DefaultCacheURL) {
		t.Error("content missing tungsten cache URL")
	}
	if !strings.Contains(content, "trusted-public-keys = ") {
		t.Error("content missing trusted-public-keys line")
	}
	if !strings.Contains(content, config.DefaultCachePubKey) {
		t.Error("content missing tungsten public key")
	}
}
