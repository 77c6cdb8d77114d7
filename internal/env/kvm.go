package env

import (
	"fmt"

	"github.com/enricodhd/nixpkgs-tungsten/internal/util"
	"golang.org/x/sys/unix"
)

// kvmDevice is a seam for tests.
var kvmDevice = "/dev/kvm"

// kvmAccessible reports whether the KVM device exists and is readable and
// writable by the invoking user. VM tests fall back to slow emulation
// without it, so this is advisory.
func kvmAccessible() error {
	if !util.PathExists(kvmDevice) {
		return fmt.Errorf("%s not present (no hardware virtualization)", kvmDevice)
	}
	if err := unix.Access(kvmDevice, unix.R_OK|unix.W_OK); err != nil {
		return fmt.Errorf("%s not read/write accessible: %w", kvmDevice, err)
	}
	return nil
}
