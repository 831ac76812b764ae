// Package config provides configuration for keyedit.
//
// Settings come from three places, later ones winning:
//
//  1. Built-in defaults (Default)
//  2. A configuration file, TOML or YAML by extension (LoadFile)
//  3. KEYEDIT_* environment variables (ApplyEnv)
//
// Command-line flags are applied on top by the caller.
package config

import (
	"fmt"
	"strings"
)

// Config holds all keyedit settings.
type Config struct {
	Editor  EditorConfig  `toml:"editor" yaml:"editor"`
	Files   FilesConfig   `toml:"files" yaml:"files"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// EditorConfig controls the editing engine.
type EditorConfig struct {
	// UndoablePaste records pastes in the undo history.
	UndoablePaste bool `toml:"undoable_paste" yaml:"undoable_paste"`

	// MaxUndo caps the undo history. Zero means unbounded.
	MaxUndo int `toml:"max_undo" yaml:"max_undo"`

	// SystemClipboard mirrors copied text to the system clipboard.
	SystemClipboard bool `toml:"system_clipboard" yaml:"system_clipboard"`
}

// FilesConfig controls file access.
type FilesConfig struct {
	// DefaultSavePath is where "save" writes when no path is given.
	DefaultSavePath string `toml:"default_save_path" yaml:"default_save_path"`

	// Watch reports changes made to opened files by other programs.
	Watch bool `toml:"watch" yaml:"watch"`
}

// LoggingConfig controls diagnostic logging.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`

	// File is a log file path. Empty logs to stderr.
	File string `toml:"file" yaml:"file"`

	// MaxSizeMB is the size at which the log file is rotated.
	MaxSizeMB int `toml:"max_size_mb" yaml:"max_size_mb"`

	// MaxBackups is the number of rotated files to keep.
	MaxBackups int `toml:"max_backups" yaml:"max_backups"`

	// MaxAgeDays is how long rotated files are kept.
	MaxAgeDays int `toml:"max_age_days" yaml:"max_age_days"`
}

// Default configuration values.
const (
	DefaultSavePath   = "results.txt"
	DefaultLogLevel   = "info"
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 7
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Files: FilesConfig{
			DefaultSavePath: DefaultSavePath,
		},
		Logging: LoggingConfig{
			Level:      DefaultLogLevel,
			MaxSizeMB:  DefaultMaxSizeMB,
			MaxBackups: DefaultMaxBackups,
			MaxAgeDays: DefaultMaxAgeDays,
		},
	}
}

// ValidLogLevel reports whether s names a log level. Case is ignored and
// "warning" is accepted for warn.
func ValidLogLevel(s string) bool {
	switch strings.ToLower(s) {
	case "debug", "info", "warn", "warning", "error":
		return true
	default:
		return false
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if !ValidLogLevel(c.Logging.Level) {
		return &ValidationError{
			Path:    "logging.level",
			Message: "must be debug, info, warn, or error",
			Value:   c.Logging.Level,
		}
	}

	ints := []struct {
		path  string
		value int
	}{
		{"editor.max_undo", c.Editor.MaxUndo},
		{"logging.max_size_mb", c.Logging.MaxSizeMB},
		{"logging.max_backups", c.Logging.MaxBackups},
		{"logging.max_age_days", c.Logging.MaxAgeDays},
	}
	for _, s := range ints {
		if s.value < 0 {
			return &ValidationError{Path: s.path, Message: "must not be negative", Value: s.value}
		}
	}

	if c.Files.DefaultSavePath == "" {
		return &ValidationError{Path: "files.default_save_path", Message: "must not be empty", Value: ""}
	}

	return nil
}

// String returns a short summary for diagnostics.
func (c *Config) String() string {
	return fmt.Sprintf("editor=%+v files=%+v logging.level=%s", c.Editor, c.Files, c.Logging.Level)
}
