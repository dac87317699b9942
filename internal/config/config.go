// Package config loads client configuration from a YAML file and/or
// environment variables.
//
// Sources, in order of precedence: explicit path argument, BLOGCTL_CONFIG,
// environment variables only.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds everything the client needs to talk to the blog API.
type Config struct {
	// BaseURL is the root of the remote REST API, e.g. https://api.example.com.
	BaseURL string `yaml:"base_url" env:"BLOGCTL_BASE_URL"`

	// Timeout bounds a single HTTP round-trip.
	Timeout time.Duration `yaml:"timeout" env:"BLOGCTL_TIMEOUT" env-default:"15s"`

	// StateDir is where tokens and the cached profile live. Empty means
	// the default config dir (see DefaultStateDir).
	StateDir string `yaml:"state_dir" env:"BLOGCTL_STATE_DIR"`
}

// Load reads configuration from path (optional) and the environment.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("BLOGCTL_CONFIG")
	}

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read env config: %w", err)
		}
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url is required (set BLOGCTL_BASE_URL)")
	}
	if cfg.StateDir == "" {
		cfg.StateDir = DefaultStateDir()
	}
	return &cfg, nil
}

// MustLoad is Load that exits the process on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	return cfg
}

// DefaultStateDir resolves the per-user state directory, honoring
// XDG_CONFIG_HOME.
func DefaultStateDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "blogctl")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "blogctl")
}
