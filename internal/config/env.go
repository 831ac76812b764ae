package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "KEYEDIT_"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// envSetting binds an environment variable to a setting.
type envSetting struct {
	name string // without prefix
	path string // setting path, for errors
	set  func(c *Config, value string) error
}

// envSettings returns the supported environment variables.
func envSettings() []envSetting {
	return []envSetting{
		{"LOG_LEVEL", "logging.level", setString(func(c *Config) *string { return &c.Logging.Level })},
		{"LOG_FILE", "logging.file", setString(func(c *Config) *string { return &c.Logging.File })},
		{"EDITOR_UNDOABLE_PASTE", "editor.undoable_paste", setBool(func(c *Config) *bool { return &c.Editor.UndoablePaste })},
		{"EDITOR_MAX_UNDO", "editor.max_undo", setInt(func(c *Config) *int { return &c.Editor.MaxUndo })},
		{"EDITOR_SYSTEM_CLIPBOARD", "editor.system_clipboard", setBool(func(c *Config) *bool { return &c.Editor.SystemClipboard })},
		{"FILES_DEFAULT_SAVE_PATH", "files.default_save_path", setString(func(c *Config) *string { return &c.Files.DefaultSavePath })},
		{"FILES_WATCH", "files.watch", setBool(func(c *Config) *bool { return &c.Files.Watch })},
	}
}

// EnvNames returns the full names of the supported environment variables.
func EnvNames() []string {
	settings := envSettings()
	names := make([]string, len(settings))
	for i, s := range settings {
		names[i] = EnvPrefix + s.name
	}
	return names
}

// ApplyEnv overrides cfg from environment variables found by lookup.
// Empty values are treated as set.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	for _, s := range envSettings() {
		val, ok := lookup(EnvPrefix + s.name)
		if !ok {
			continue
		}
		if err := s.set(cfg, val); err != nil {
			return &ValidationError{
				Path:    s.path,
				Message: fmt.Sprintf("from %s%s: %v", EnvPrefix, s.name, err),
				Value:   val,
			}
		}
	}
	return nil
}

func setString(field func(*Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		*field(c) = v
		return nil
	}
}

func setBool(field func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

func setInt(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.New("not an integer")
		}
		*field(c) = i
		return nil
	}
}

// parseBool accepts the usual spellings of true and false.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0", "":
		return false, nil
	default:
		return false, errors.New("not a boolean")
	}
}
