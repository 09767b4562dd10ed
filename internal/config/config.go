package config

import (
	"os"
	"strconv"
)

// Config holds all configuration options for the task list application
type Config struct {
	Display     DisplayConfig     `toml:"display"`
	Validation  ValidationConfig  `toml:"validation"`
	Application ApplicationConfig `toml:"application"`
	Drag        DragConfig        `toml:"drag"`
}

// DisplayConfig holds rendering configuration
type DisplayConfig struct {
	TimeFormat    string `toml:"time_format" env:"TASKLIST_TIME_FORMAT"`
	DateFormat    string `toml:"date_format" env:"TASKLIST_DATE_FORMAT"`
	DoneMarker    string `toml:"done_marker" env:"TASKLIST_DONE_MARKER"`
	PendingMarker string `toml:"pending_marker" env:"TASKLIST_PENDING_MARKER"`
	ShowCreated   bool   `toml:"show_created" env:"TASKLIST_SHOW_CREATED"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	// TaskTextMaxLength caps task text in runes. Zero means unlimited.
	TaskTextMaxLength int `toml:"task_text_max_length" env:"TASKLIST_TEXT_MAX_LENGTH"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Mode      string `toml:"mode" env:"TASKLIST_MODE"`
	Prompt    string `toml:"prompt" env:"TASKLIST_PROMPT"`
	LogLevel  string `toml:"log_level" env:"TASKLIST_LOG_LEVEL"`
	LogFormat string `toml:"log_format" env:"TASKLIST_LOG_FORMAT"`
	Verbose   bool   `toml:"verbose" env:"TASKLIST_VERBOSE"`
}

// DragConfig holds drag-and-drop geometry for the terminal UI
type DragConfig struct {
	RowHeight int `toml:"row_height" env:"TASKLIST_ROW_HEIGHT"`
}

// Application modes
const (
	ModeShell = "shell"
	ModeTUI   = "tui"
)

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			TimeFormat:    "15:04",
			DateFormat:    "02 Jan 06",
			DoneMarker:    "[x]",
			PendingMarker: "[ ]",
			ShowCreated:   true,
		},
		Validation: ValidationConfig{
			TaskTextMaxLength: 0,
		},
		Application: ApplicationConfig{
			Mode:      ModeShell,
			Prompt:    "> ",
			LogLevel:  "warn",
			LogFormat: "text",
			Verbose:   false,
		},
		Drag: DragConfig{
			RowHeight: 2,
		},
	}
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Display configuration
	if format := os.Getenv("TASKLIST_TIME_FORMAT"); format != "" {
		c.Display.TimeFormat = format
	}
	if format := os.Getenv("TASKLIST_DATE_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}
	if marker := os.Getenv("TASKLIST_DONE_MARKER"); marker != "" {
		c.Display.DoneMarker = marker
	}
	if marker := os.Getenv("TASKLIST_PENDING_MARKER"); marker != "" {
		c.Display.PendingMarker = marker
	}
	if show := os.Getenv("TASKLIST_SHOW_CREATED"); show != "" {
		if b, err := strconv.ParseBool(show); err == nil {
			c.Display.ShowCreated = b
		}
	}

	// Validation configuration
	if maxLen := os.Getenv("TASKLIST_TEXT_MAX_LENGTH"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.TaskTextMaxLength = n
		}
	}

	// Application configuration
	if mode := os.Getenv("TASKLIST_MODE"); mode != "" {
		c.Application.Mode = mode
	}
	if prompt := os.Getenv("TASKLIST_PROMPT"); prompt != "" {
		c.Application.Prompt = prompt
	}
	if level := os.Getenv("TASKLIST_LOG_LEVEL"); level != "" {
		c.Application.LogLevel = level
	}
	if format := os.Getenv("TASKLIST_LOG_FORMAT"); format != "" {
		c.Application.LogFormat = format
	}
	if verbose := os.Getenv("TASKLIST_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	// Drag configuration
	if height := os.Getenv("TASKLIST_ROW_HEIGHT"); height != "" {
		if n, err := strconv.Atoi(height); err == nil {
			c.Drag.RowHeight = n
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate display configuration
	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}
	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}
	if c.Display.DoneMarker == "" || c.Display.PendingMarker == "" {
		return &ConfigError{Field: "display.markers", Message: "done and pending markers cannot be empty"}
	}
	if c.Display.DoneMarker == c.Display.PendingMarker {
		return &ConfigError{Field: "display.markers", Message: "done and pending markers must differ"}
	}

	// Validate validation configuration
	if c.Validation.TaskTextMaxLength < 0 {
		return &ConfigError{Field: "validation.task_text_max_length", Message: "task text maximum length cannot be negative"}
	}

	// Validate application configuration
	switch c.Application.Mode {
	case ModeShell, ModeTUI:
	default:
		return &ConfigError{Field: "application.mode", Message: "mode must be \"shell\" or \"tui\""}
	}
	switch c.Application.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "application.log_level", Message: "log level must be one of debug, info, warn, error"}
	}
	switch c.Application.LogFormat {
	case "text", "json", "logfmt":
	default:
		return &ConfigError{Field: "application.log_format", Message: "log format must be one of text, json, logfmt"}
	}

	// Validate drag configuration
	if c.Drag.RowHeight < 1 {
		return &ConfigError{Field: "drag.row_height", Message: "row height must be at least 1"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
