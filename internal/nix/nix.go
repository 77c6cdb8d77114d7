package nix

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/enricodhd/nixpkgs-tungsten/internal/util"
)

// Runner executes external processes. The default implementation runs them
// with inherited stdio; tests substitute a recorder.
type Runner interface {
	// Run executes a command connected to the caller's stdio.
	Run(name string, args ...string) error
	// RunWithEnv is Run with extra environment variables appended.
	RunWithEnv(extraEnv map[string]string, name string, args ...string) error
	// Output executes a command and captures stdout; stderr passes through
	// so build progress stays visible.
	Output(name string, args ...string) ([]byte, error)
	// QuietOutput is Output with stderr discarded, for best-effort queries.
	QuietOutput(name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(name string, args ...string) error {
	return execRunner{}.RunWithEnv(nil, name, args...)
}

func (execRunner) RunWithEnv(extraEnv map[string]string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	env := os.Environ()
	for key, value := range extraEnv {
		env = append(env, key+"="+value)
	}
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (execRunner) Output(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	cmd.Stderr = os.Stderr
	return cmd.Output()
}

func (execRunner) QuietOutput(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// DefaultRunner returns the Runner that executes real processes.
func DefaultRunner() Runner {
	return execRunner{}
}

// lookPath is a seam for tests.
var lookPath = exec.LookPath

// Tool wraps the Nix toolchain for one jobset expression. All invocations are
// argv lists; artifact and test names are never interpolated into a shell.
type Tool struct {
	jobset string
	runner Runner
}

// New creates a Tool for the given jobset expression (e.g. "<tungsten>").
func New(jobset string) *Tool {
	return &Tool{jobset: jobset, runner: execRunner{}}
}

// NewWithRunner creates a Tool with a custom Runner.
func NewWithRunner(jobset string, runner Runner) *Tool {
	return &Tool{jobset: jobset, runner: runner}
}

// Installed reports whether the Nix toolchain is on PATH.
func Installed() bool {
	_, err := lookPath("nix-instantiate")
	return err == nil
}

// run logs the invocation and executes it over inherited stdio.
func (t *Tool) run(extraEnv map[string]string, name string, args ...string) error {
	util.Log("+ %s %s", name, strings.Join(args, " "))
	if extraEnv == nil {
		return t.runner.Run(name, args...)
	}
	return t.runner.RunWithEnv(extraEnv, name, args...)
}

// Build builds an artifact attribute, leaving the usual ./result symlink.
func (t *Tool) Build(attr string) error {
	if err := t.run(nil, "nix-build", t.jobset, "-A", attr); err != nil {
		return fmt.Errorf("build of %s failed: %w", attr, err)
	}
	return nil
}

// Install installs an artifact attribute into the user profile.
func (t *Tool) Install(attr string) error {
	if err := t.run(nil, "nix-env", "-f", t.jobset, "-iA", attr); err != nil {
		return fmt.Errorf("install of %s failed: %w", attr, err)
	}
	return nil
}

// ResolveName evaluates an attribute's derivation name. nix-env addresses
// installed items by that name, not by attribute path, so uninstall needs it.
func (t *Tool) ResolveName(attr string) (string, error) {
	out, err := t.runner.Output("nix-instantiate", "--eval", "--strict", "--json",
		t.jobset, "-A", attr+".name")
	if err != nil {
		return "", fmt.Errorf("could not resolve name of %s: %w", attr, err)
	}

	name := strings.Trim(strings.TrimSpace(string(out)), `"`)
	if name == "" {
		return "", fmt.Errorf("attribute %s evaluates to an empty name", attr)
	}
	return name, nil
}

// Uninstall removes an installed artifact from the user profile. The caller
// passes the resolved derivation name, not the attribute path.
func (t *Tool) Uninstall(name string) error {
	if err := t.run(nil, "nix-env", "-e", name); err != nil {
		return fmt.Errorf("uninstall of %s failed: %w", name, err)
	}
	return nil
}

// Shell starts an interactive development shell for an artifact.
func (t *Tool) Shell(attr string) error {
	if err := t.run(nil, "nix-shell", t.jobset, "-A", attr); err != nil {
		return fmt.Errorf("shell for %s failed: %w", attr, err)
	}
	return nil
}

// BuildTest builds a test attribute under tests.
func (t *Tool) BuildTest(test string) error {
	if err := t.run(nil, "nix-build", t.jobset, "-A", "tests."+test); err != nil {
		return fmt.Errorf("test %s failed: %w", test, err)
	}
	return nil
}

// qemuPortForwards maps fixed host ports into every interactive VM: HTTP on
// 8080, HTTPS on 8143, SSH on 2222.
const qemuPortForwards = "hostfwd=tcp::8080-:8080,hostfwd=tcp::8143-:8143,hostfwd=tcp::2222-:22"

// RunVM builds a test's VM driver and launches it interactively with the
// fixed port forwards. Blocks until the operator ends the VM session.
func (t *Tool) RunVM(test string) error {
	attr := "tests." + test + ".driver"
	util.Log("+ nix-build %s -A %s --no-out-link", t.jobset, attr)
	out, err := t.runner.Output("nix-build", t.jobset, "-A", attr, "--no-out-link")
	if err != nil {
		return fmt.Errorf("building VM driver for %s failed: %w", test, err)
	}

	driver := strings.TrimSpace(string(out))
	if lines := strings.Split(driver, "\n"); len(lines) > 0 {
		driver = strings.TrimSpace(lines[len(lines)-1])
	}
	if driver == "" {
		return fmt.Errorf("VM driver build for %s produced no store path", test)
	}

	env := map[string]string{"QEMU_NET_OPTS": qemuPortForwards}
	if err := t.run(env, driver+"/bin/nixos-test-driver", "--interactive"); err != nil {
		return fmt.Errorf("VM session for %s failed: %w", test, err)
	}
	return nil
}
