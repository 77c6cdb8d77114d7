package env

import (
	"fmt"
	"strings"
	"testing"
)

// fakeRunner records invocations and serves canned output, mirroring the one
// in the nix package tests.
type fakeRunner struct {
	calls  [][]string
	output map[string]string
	fail   map[string]bool
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{output: make(map[string]string), fail: make(map[string]bool)}
}

func (f *fakeRunner) record(name string, args []string) string {
	argv := append([]string{name}, args...)
	f.calls = append(f.calls, argv)
	return strings.Join(argv, " ")
}

func (f *fakeRunner) Run(name string, args ...string) error {
	key := f.record(name, args)
	if f.fail[key] {
		return fmt.Errorf("exit status 1")
	}
	return nil
}

func (f *fakeRunner) RunWithEnv(extraEnv map[string]string, name string, args ...string) error {
	return f.Run(name, args...)
}

func (f *fakeRunner) Output(name string, args ...string) ([]byte, error) {
	key := f.record(name, args)
	if f.fail[key] {
		return nil, fmt.Errorf("exit status 1")
	}
	return []byte(f.output[key]), nil
}

func (f *fakeRunner) QuietOutput(name string, args ...string) ([]byte, error) {
	return f.Output(name, args...)
}

// setToolInstalled swaps the tool detection seam for one test.
func setToolInstalled(t *testing.T, installed bool) {
	t.Helper()
	orig := toolInstalled
	toolInstalled = func() bool { return installed }
	t.Cleanup(func() { toolInstalled = orig })
}

// setKVMDevice swaps the KVM device path for one test.
func setKVMDevice(t *testing.T, path string) {
	t.Helper()
	orig := kvmDevice
	kvmDevice = path
	t.Cleanup(func() { kvmDevice = orig })
}
