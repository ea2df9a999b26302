// Package config loads and merges application configuration from defaults,
// the TOML config file, and command-line flags, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/seagrine/hem/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger   logger.Config             `toml:"logger"`
	Editor   EditorConfig              `toml:"editor"`
	Surround SurroundConfig            `toml:"surround"`
	Plugins  map[string]map[string]any `toml:"plugins"`
}

// EditorConfig holds general editor settings.
type EditorConfig struct {
	TabWidth        int  `toml:"tab_width"`
	ScrollOff       int  `toml:"scroll_off"`
	SystemClipboard bool `toml:"system_clipboard"`
	StatusBarHeight int  `toml:"status_bar_height"`
}

// SurroundConfig holds settings for the surrounding-pair engine.
type SurroundConfig struct {
	// NLines bounds the search window to this many lines above and below
	// the reference line.
	NLines int `toml:"n_lines"`

	// SearchMethod selects how candidates relate to the reference point:
	// "cover", "cover_or_next", "cover_or_prev", or "cover_or_nearest".
	SearchMethod string `toml:"search_method"`

	// HighlightDurationMs is how long a found pair stays highlighted.
	HighlightDurationMs int `toml:"highlight_duration_ms"`

	// Custom maps identifier characters to user-defined surrounding specs,
	// declared as [surround.custom.<char>] tables.
	Custom map[string]CustomSurrounding `toml:"custom"`
}

// CustomSurrounding is a user-declared surrounding definition. Exactly one
// of the search forms must be given: Open/Close literals, or Find/Extract
// patterns. OutputLeft/OutputRight are what add and replace insert.
type CustomSurrounding struct {
	OutputLeft  string `toml:"output_left"`
	OutputRight string `toml:"output_right"`
	Open        string `toml:"open"`
	Close       string `toml:"close"`
	Find        string `toml:"find"`
	Extract     string `toml:"extract"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig returns a Config populated with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			TabWidth:        DefaultTabWidth,
			ScrollOff:       DefaultScrollOff,
			SystemClipboard: SystemClipboard,
			StatusBarHeight: StatusBarHeight,
		},
		Surround: SurroundConfig{
			NLines:              DefaultNLines,
			SearchMethod:        DefaultSearchMethod,
			HighlightDurationMs: DefaultHighlightMs,
		},
	}
}

// loadFromFile decodes the TOML file at filePath over cfg, so only keys
// present in the file override the values already in cfg. A missing file
// is not an error.
func loadFromFile(filePath string, cfg *Config) error {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("checking config file %q: %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("parsing config file %q: %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		logger.Warnf("Config file %q: unrecognized keys: %s", filePath, strings.Join(keys, ", "))
	}
	return nil
}

// ValidSearchMethod reports whether name is a recognized search method.
func ValidSearchMethod(name string) bool {
	switch name {
	case "cover", "cover_or_next", "cover_or_prev", "cover_or_nearest":
		return true
	}
	return false
}

// validate resets out-of-range values to their defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.ScrollOff < 0 {
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Surround.NLines < 1 {
		c.Surround.NLines = defaults.Surround.NLines
	}
	if !ValidSearchMethod(c.Surround.SearchMethod) {
		c.Surround.SearchMethod = defaults.Surround.SearchMethod
	}
	if c.Surround.HighlightDurationMs <= 0 {
		c.Surround.HighlightDurationMs = defaults.Surround.HighlightDurationMs
	}
}

// EffectivePath resolves the config file path: an explicit path wins,
// otherwise the per-user config directory is used.
func EffectivePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
}

// LoadConfig loads defaults, overlays the config file and flag overrides,
// and validates the result. Only the first call does work.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		cfg := NewDefaultConfig()

		if path := EffectivePath(configFilePath); path != "" {
			if err := loadFromFile(path, cfg); err != nil {
				loadErr = err
			}
		}

		if flags != nil {
			flags.ApplyOverrides(cfg)
		}

		cfg.validate()
		loadedConfig = cfg
	})

	return loadedConfig, loadErr
}

// Reload re-reads the config file and returns a fresh validated Config.
// Unlike LoadConfig it does not touch the global instance; callers decide
// which parts to apply to a running editor.
func Reload(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()
	if path := EffectivePath(configFilePath); path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, nil
}

// Get returns the loaded application configuration. Panics if LoadConfig
// was never called; that is a programming error in main.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
