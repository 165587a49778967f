package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/sigreer/biosctl/internal/firmware"
	"github.com/sigreer/biosctl/internal/session"
)

// EnvPrefix prefixes every environment override, e.g. BIOSCTL_DEVICE.
const EnvPrefix = "BIOSCTL_"

// DefaultHistoryPath is where set operations are recorded.
const DefaultHistoryPath = "/var/lib/biosctl/history.db"

type Config struct {
	// Root is the directory holding firmware attribute devices.
	Root    string `yaml:"root" env:"ROOT"`
	Device  string `yaml:"device" env:"DEVICE"`
	Workers int    `yaml:"workers" env:"WORKERS"`

	// LogLevel is a zerolog level name, used when neither -v nor -q is given.
	LogLevel string `yaml:"log_level,omitempty" env:"LOG"`

	// Authentication is the password slot --password is written to.
	Authentication string  `yaml:"authentication" env:"AUTH"`
	History        History `yaml:"history" envPrefix:"HISTORY_"`
}

type History struct {
	Enabled bool   `yaml:"enabled" env:"ENABLED"`
	Path    string `yaml:"path" env:"PATH"`
}

var defaultConfig = Config{
	Root:           firmware.DefaultRoot,
	Device:         firmware.DefaultDevice,
	Workers:        firmware.DefaultWorkers,
	Authentication: session.DefaultAuthentication,
	History: History{
		Enabled: true,
		Path:    DefaultHistoryPath,
	},
}

// Default returns the built-in configuration.
func Default() Config {
	return defaultConfig
}

func candidatePaths() []string {
	return []string{
		"/etc/biosctl/config.yaml",
		filepath.Join(os.Getenv("HOME"), ".config/biosctl/config.yaml"),
		"config.yaml",
	}
}

// Load reads the YAML file at path, or the first existing default
// location when path is empty, and applies BIOSCTL_* environment
// overrides on top. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		for _, c := range candidatePaths() {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}

	cfg := defaultConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config '%s': %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	// explicitly emptied keys fall back to defaults
	if cfg.Root == "" {
		cfg.Root = defaultConfig.Root
	}
	if cfg.Device == "" {
		cfg.Device = defaultConfig.Device
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultConfig.Workers
	}
	if cfg.Authentication == "" {
		cfg.Authentication = defaultConfig.Authentication
	}
	if cfg.History.Path == "" {
		cfg.History.Path = defaultConfig.History.Path
	}

	return &cfg, nil
}

// FirmwareDevice returns the configured firmware device.
func (c *Config) FirmwareDevice() *firmware.Device {
	return firmware.FromName(c.Device, firmware.WithRoot(c.Root), firmware.WithWorkers(c.Workers))
}
