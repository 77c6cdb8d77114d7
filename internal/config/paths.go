package config

import (
	"os"
	"os/user"
	"path/filepath"
)

// Paths holds the standard filesystem locations please touches.
// Everything durable (profiles, channels, the store) is owned by Nix itself;
// please only reads those locations and writes the user nix.conf once.
type Paths struct {
	Home string // User home directory
}

// NewPaths creates a Paths instance rooted at home.
// An empty home resolves to the current user's home directory.
func NewPaths(home string) *Paths {
	if home == "" {
		home = DefaultHome()
	}
	return &Paths{Home: home}
}

// DefaultHome returns $HOME, falling back to the current user's home dir.
func DefaultHome() string {
	home := os.Getenv("HOME")
	if home == "" {
		if currentUser, err := user.Current(); err == nil {
			home = currentUser.HomeDir
		}
	}
	return home
}

// NixConfDir returns the user Nix configuration directory: ~/.config/nix
func (p *Paths) NixConfDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "nix")
	}
	return filepath.Join(p.Home, ".config", "nix")
}

// NixConfFile returns the user nix.conf path, where init writes the
// substituter configuration.
func (p *Paths) NixConfFile() string {
	return filepath.Join(p.NixConfDir(), "nix.conf")
}

// SettingsDir returns the please configuration directory: ~/.config/please
func (p *Paths) SettingsDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "please")
	}
	return filepath.Join(p.Home, ".config", "please")
}

// SettingsFile returns the optional settings file path:
// ~/.config/please/config.yaml
func (p *Paths) SettingsFile() string {
	return filepath.Join(p.SettingsDir(), "config.yaml")
}

// NixProfileDir returns the per-user Nix profile directory: ~/.nix-profile
func (p *Paths) NixProfileDir() string {
	return filepath.Join(p.Home, ".nix-profile")
}

// NixProfileScript returns the profile script the Nix installer drops, used
// to detect a user-scoped Nix installation.
func (p *Paths) NixProfileScript() string {
	return filepath.Join(p.NixProfileDir(), "etc", "profile.d", "nix.sh")
}

// NixProfileBinDirs returns the bin directories a sourced Nix profile would
// put on PATH, in priority order.
func (p *Paths) NixProfileBinDirs() []string {
	return []string{
		filepath.Join(p.NixProfileDir(), "bin"),
		"/nix/var/nix/profiles/default/bin",
	}
}
