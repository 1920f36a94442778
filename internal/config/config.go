// Package config provides the application's YAML-backed settings with
// first-run default creation and atomic save.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// Theme selects the display theme ("light" or "dark").
	Theme string `yaml:"theme"`

	// WeekStart controls which weekday is treated as the first day of the
	// week. Supported values: "monday" (default) or "sunday".
	WeekStart string `yaml:"week_start"`

	// ShowWeekNumbers toggles ISO week numbers in calendar listings.
	ShowWeekNumbers bool `yaml:"show_week_numbers"`

	// DefaultEventDuration is the end-time offset, in minutes, applied to
	// manually added events that specify no end.
	DefaultEventDuration int `yaml:"default_event_duration"`

	// BackupEnabled controls timestamped backup copies of the JSON stores
	// on every save.
	BackupEnabled bool `yaml:"backup_enabled"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Theme:                "light",
		WeekStart:            "monday",
		ShowWeekNumbers:      false,
		DefaultEventDuration: 60,
		BackupEnabled:        true,
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs from older versions still behave correctly.
func (c *Config) Normalize() {
	switch c.Theme {
	case "light", "dark":
	default:
		c.Theme = "light"
	}
	switch c.WeekStart {
	case "monday", "sunday":
	default:
		c.WeekStart = "monday"
	}
	if c.DefaultEventDuration <= 0 {
		c.DefaultEventDuration = 60
	}
}

// Load loads configuration from the given YAML path.
//
// If the file does not exist, a default config is written there (creating
// the parent directory if needed) and returned. Otherwise the file is
// unmarshalled over the defaults and normalized, so absent keys keep
// their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes the configuration to path atomically (temp file + rename)
// with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".classcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
