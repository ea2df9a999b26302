// Package logger provides configurable logging for the whole application,
// built on log/slog with level, tag, package, and file based filtering.
package logger

import (
	"log/slog"
	"strings"
)

// Config holds all settings for the logger. It is decoded from the [logger]
// table of the application config file.
type Config struct {
	// LogLevel is the minimum level to log: "debug", "info", "warn", "error".
	LogLevel string `toml:"log_level"`

	// LogFilePath is the log destination. Empty selects the default cache
	// path, "-" selects stderr.
	LogFilePath string `toml:"log_file"`

	// Filtering. Enabled lists are allow-lists (empty means everything);
	// Disabled lists always win over Enabled lists.
	EnabledTags      []string `toml:"tags"`
	DisabledTags     []string `toml:"disable_tags"`
	EnabledPackages  []string `toml:"packages"`
	DisabledPackages []string `toml:"disable_packages"`
	EnabledFiles     []string `toml:"files"`
	DisabledFiles    []string `toml:"disable_files"`

	// FilterDebug prints filter decisions to stderr. Flag-only escape hatch
	// for debugging the filtering itself.
	FilterDebug bool `toml:"-"`

	// Processed lookup sets, built by process().
	level               slog.Level
	enabledTagsSet      map[string]struct{}
	disabledTagsSet     map[string]struct{}
	enabledPackagesSet  map[string]struct{}
	disabledPackagesSet map[string]struct{}
	enabledFilesSet     map[string]struct{}
	disabledFilesSet    map[string]struct{}
}

// NewConfig returns a Config with default values.
func NewConfig() Config {
	return Config{
		LogLevel:    "info",
		LogFilePath: "",
	}
}

// process parses the string level and converts filter slices into sets.
func (c *Config) process() {
	c.level = parseLevel(c.LogLevel)
	c.enabledTagsSet = sliceToSet(c.EnabledTags)
	c.disabledTagsSet = sliceToSet(c.DisabledTags)
	c.enabledPackagesSet = sliceToSet(c.EnabledPackages)
	c.disabledPackagesSet = sliceToSet(c.DisabledPackages)
	c.enabledFilesSet = sliceToSet(c.EnabledFiles)
	c.disabledFilesSet = sliceToSet(c.DisabledFiles)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// sliceToSet lowercases entries for case-insensitive matching. Returns nil
// for an empty list so callers can treat nil as "no filter".
func sliceToSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			set[strings.ToLower(trimmed)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
