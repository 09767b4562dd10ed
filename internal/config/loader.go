package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Loader handles loading configuration from multiple sources. Every load
// starts again from the defaults, so one Loader can be reused.
type Loader struct {
	configPath string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{}
}

// SetConfigPath points the loader at an explicit TOML file. An explicit
// file must exist; the default location is optional.
func (l *Loader) SetConfigPath(path string) {
	l.configPath = path
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the TOML config file, if any
// 3. Override with environment variables
// 4. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	config := NewConfig()

	if err := l.loadFile(config); err != nil {
		return nil, err
	}

	if err := config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// loadFile decodes the TOML file over the defaults
func (l *Loader) loadFile(config *Config) error {
	path, explicit := l.resolveConfigPath()
	if path == "" {
		return nil
	}

	meta, err := toml.DecodeFile(path, config)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return &ConfigError{Field: undecoded[0].String(), Message: "unknown configuration key"}
	}
	return nil
}

// resolveConfigPath picks the explicit path, then TASKLIST_CONFIG, then the
// per-user default
func (l *Loader) resolveConfigPath() (string, bool) {
	if l.configPath != "" {
		return l.configPath, true
	}
	if path := os.Getenv("TASKLIST_CONFIG"); path != "" {
		return path, true
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(dir, "tasklist", "config.toml"), false
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Display overrides
	TimeFormat    *string
	DateFormat    *string
	DoneMarker    *string
	PendingMarker *string
	ShowCreated   *bool

	// Validation overrides
	TaskTextMaxLength *int

	// Application overrides
	Mode      *string
	Prompt    *string
	LogLevel  *string
	LogFormat *string
	Verbose   *bool

	// Drag overrides
	RowHeight *int
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// Display overrides
	if overrides.TimeFormat != nil {
		config.Display.TimeFormat = *overrides.TimeFormat
	}
	if overrides.DateFormat != nil {
		config.Display.DateFormat = *overrides.DateFormat
	}
	if overrides.DoneMarker != nil {
		config.Display.DoneMarker = *overrides.DoneMarker
	}
	if overrides.PendingMarker != nil {
		config.Display.PendingMarker = *overrides.PendingMarker
	}
	if overrides.ShowCreated != nil {
		config.Display.ShowCreated = *overrides.ShowCreated
	}

	// Validation overrides
	if overrides.TaskTextMaxLength != nil {
		config.Validation.TaskTextMaxLength = *overrides.TaskTextMaxLength
	}

	// Application overrides
	if overrides.Mode != nil {
		config.Application.Mode = *overrides.Mode
	}
	if overrides.Prompt != nil {
		config.Application.Prompt = *overrides.Prompt
	}
	if overrides.LogLevel != nil {
		config.Application.LogLevel = *overrides.LogLevel
	}
	if overrides.LogFormat != nil {
		config.Application.LogFormat = *overrides.LogFormat
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}

	// Drag overrides
	if overrides.RowHeight != nil {
		config.Drag.RowHeight = *overrides.RowHeight
	}
}
