package core

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config carries suite-wide harness settings. Env vars win over the file,
// the file wins over defaults.
type Config struct {
	KnownGlobals []string
	Port         int
	TimeoutScale float64
	Debug        bool
}

// DefaultConfig returns the settings used when no harness.toml is present.
func DefaultConfig() Config {
	return Config{
		Port:         defaultPort,
		TimeoutScale: 1.0,
	}
}

// harness.toml key mapping to Config.
type fileConfig struct {
	KnownGlobals []string `toml:"known_globals"`
	Port         int      `toml:"port"`
	TimeoutScale float64  `toml:"timeout_scale"`
	Debug        bool     `toml:"debug"`
}

// LoadConfig reads a harness.toml, overlaying only the keys the file
// defines onto the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load harness config: %w", err)
	}

	if meta.IsDefined("known_globals") {
		for _, name := range raw.KnownGlobals {
			if name = strings.TrimSpace(name); name != "" {
				cfg.KnownGlobals = append(cfg.KnownGlobals, name)
			}
		}
	}

	if meta.IsDefined("port") {
		cfg.Port = raw.Port
	}

	if meta.IsDefined("timeout_scale") {
		cfg.TimeoutScale = raw.TimeoutScale
	}

	if meta.IsDefined("debug") {
		cfg.Debug = raw.Debug
	}

	return cfg, nil
}

// ApplyConfig folds file settings into the harness: known globals extend the
// leak allowlist.
func (h *Harness) ApplyConfig(cfg Config) {
	h.leaks.Allow(cfg.KnownGlobals...)
}

// suiteConfig holds the process-wide settings. Env vars still win over it at
// each read site.
//
//nolint:gochecknoglobals // Process-wide suite settings, set once at startup
var suiteConfig = DefaultConfig()

// SetConfig installs cfg as the process-wide suite settings. Call it from
// TestMain, before any probe runs.
func SetConfig(cfg Config) {
	suiteConfig = cfg
	resetLogger()
}

// SuiteConfig returns the process-wide settings.
func SuiteConfig() Config {
	return suiteConfig
}
