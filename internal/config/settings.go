package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults for the tungsten package set. Every value can be overridden by
// ~/.config/please/config.yaml; the installer URL additionally by the
// PLEASE_NIX_INSTALL_URL environment variable.
const (
	DefaultChannelName  = "tungsten"
	DefaultChannelURL   = "https://github.com/enricodhd/nixpkgs-tungsten/archive/master.tar.gz"
	DefaultJobset       = "<tungsten>"
	DefaultCacheURL     = "https://tungsten.cachix.org"
	DefaultCachePubKey  = "tungsten.cachix.org-1:Ay0eV2RsFbeQa4pCA0kdTvhUzQmTBH12jCZzneoshVU="
	DefaultInstallerURL = "https://nixos.org/nix/install"
	InstallerURLEnvVar  = "PLEASE_NIX_INSTALL_URL"
	upstreamCacheURL    = "https://cache.nixos.org"
	upstreamCachePubKey = "cache.nixos.org-1:6NCHdD59X431o0gWypbMrAURkbJ16ZPMQFGspcDShjY="
)

// Settings holds user-overridable configuration.
type Settings struct {
	ChannelName  string `yaml:"channel-name"`
	ChannelURL   string `yaml:"channel-url"`
	Jobset       string `yaml:"jobset"`
	CacheURL     string `yaml:"cache-url"`
	CachePubKey  string `yaml:"cache-public-key"`
	InstallerURL string `yaml:"installer-url"`
}

// DefaultSettings returns the compiled-in defaults.
func DefaultSettings() *Settings {
	return &Settings{
		ChannelName:  DefaultChannelName,
		ChannelURL:   DefaultChannelURL,
		Jobset:       DefaultJobset,
		CacheURL:     DefaultCacheURL,
		CachePubKey:  DefaultCachePubKey,
		InstallerURL: DefaultInstallerURL,
	}
}

// Substituters returns the substituter list for nix.conf: the tungsten cache
// plus the upstream nixos.org cache.
func (s *Settings) Substituters() []string {
	return []string{upstreamCacheURL, s.CacheURL}
}

// TrustedPublicKeys returns the trusted-public-keys list matching
// Substituters.
func (s *Settings) TrustedPublicKeys() []string {
	return []string{upstreamCachePubKey, s.CachePubKey}
}

// SettingsManager handles settings loading.
type SettingsManager struct {
	paths *Paths
}

// NewSettingsManager creates a settings manager.
func NewSettingsManager(paths *Paths) *SettingsManager {
	return &SettingsManager{paths: paths}
}

// Path returns the settings file path.
func (sm *SettingsManager) Path() string {
	return sm.paths.SettingsFile()
}

// Load reads settings from disk. Fields absent from the file keep their
// defaults.
func (sm *SettingsManager) Load() (*Settings, error) {
	data, err := os.ReadFile(sm.Path())
	if err != nil {
		return nil, err
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", sm.Path(), err)
	}
	sm.sanitize(settings)

	return settings, nil
}

// LoadOrDefault reads settings, returning defaults if no file exists.
func (sm *SettingsManager) LoadOrDefault() (*Settings, error) {
	settings, err := sm.Load()
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}
	return settings, nil
}

// sanitize backfills empty fields with defaults so a sparse file cannot
// produce unusable settings.
func (sm *SettingsManager) sanitize(settings *Settings) {
	defaults := DefaultSettings()
	if settings.ChannelName == "" {
		settings.ChannelName = defaults.ChannelName
	}
	if settings.ChannelURL == "" {
		settings.ChannelURL = defaults.ChannelURL
	}
	if settings.Jobset == "" {
		settings.Jobset = defaults.Jobset
	}
	if settings.CacheURL == "" {
		settings.CacheURL = defaults.CacheURL
	}
	if settings.CachePubKey == "" {
		settings.CachePubKey = defaults.CachePubKey
	}
	if settings.InstallerURL == "" {
		settings.InstallerURL = defaults.InstallerURL
	}
}
