package config

import "os"

// Context is the per-invocation configuration handed to every subcommand.
// Built once at startup and treated as immutable afterwards.
type Context struct {
	Paths    *Paths
	Settings *Settings
}

// NewContext builds a Context from paths, loading settings from disk with
// defaults for anything unset.
func NewContext(paths *Paths) (*Context, error) {
	settings, err := NewSettingsManager(paths).LoadOrDefault()
	if err != nil {
		return nil, err
	}
	return &Context{Paths: paths, Settings: settings}, nil
}

// InstallerURL returns the Nix installer URL, with the environment override
// taking precedence over settings.
func (c *Context) InstallerURL() string {
	if url := os.Getenv(InstallerURLEnvVar); url != "" {
		return url
	}
	return c.Settings.InstallerURL
}
