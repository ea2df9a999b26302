package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Editor.TabWidth != DefaultTabWidth {
		t.Errorf("TabWidth: expected %d, got %d", DefaultTabWidth, cfg.Editor.TabWidth)
	}
	if cfg.Surround.NLines != DefaultNLines {
		t.Errorf("NLines: expected %d, got %d", DefaultNLines, cfg.Surround.NLines)
	}
	if cfg.Surround.SearchMethod != "cover" {
		t.Errorf("SearchMethod: expected %q, got %q", "cover", cfg.Surround.SearchMethod)
	}
	if cfg.Surround.HighlightDurationMs != DefaultHighlightMs {
		t.Errorf("HighlightDurationMs: expected %d, got %d", DefaultHighlightMs, cfg.Surround.HighlightDurationMs)
	}
}

func TestLoadFromFileOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[editor]
tab_width = 8

[surround]
n_lines = 5
search_method = "cover_or_next"

[surround.custom.m]
output_left = "<<"
output_right = ">>"
open = "<<"
close = ">>"

[plugins.autosave]
enabled = true
interval_seconds = 30
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg := NewDefaultConfig()
	if err := loadFromFile(path, cfg); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}

	if cfg.Editor.TabWidth != 8 {
		t.Errorf("TabWidth: expected 8, got %d", cfg.Editor.TabWidth)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Editor.ScrollOff != DefaultScrollOff {
		t.Errorf("ScrollOff: expected default %d, got %d", DefaultScrollOff, cfg.Editor.ScrollOff)
	}
	if cfg.Surround.NLines != 5 {
		t.Errorf("NLines: expected 5, got %d", cfg.Surround.NLines)
	}
	if cfg.Surround.SearchMethod != "cover_or_next" {
		t.Errorf("SearchMethod: expected cover_or_next, got %q", cfg.Surround.SearchMethod)
	}

	custom, ok := cfg.Surround.Custom["m"]
	if !ok {
		t.Fatalf("expected custom surrounding %q to be present", "m")
	}
	if custom.OutputLeft != "<<" || custom.OutputRight != ">>" {
		t.Errorf("custom output: expected <</>>, got %q/%q", custom.OutputLeft, custom.OutputRight)
	}

	autosave, ok := cfg.Plugins["autosave"]
	if !ok {
		t.Fatalf("expected [plugins.autosave] table to be present")
	}
	if enabled, _ := autosave["enabled"].(bool); !enabled {
		t.Errorf("expected plugins.autosave.enabled = true")
	}
}

func TestLoadFromFileMissingIsNotError(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := loadFromFile(filepath.Join(t.TempDir(), "absent.toml"), cfg); err != nil {
		t.Errorf("missing file should not be an error, got %v", err)
	}
}

func TestValidateResetsInvalidValues(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Editor.TabWidth = -1
	cfg.Surround.NLines = 0
	cfg.Surround.SearchMethod = "sideways"
	cfg.Surround.HighlightDurationMs = -100

	cfg.validate()

	if cfg.Editor.TabWidth != DefaultTabWidth {
		t.Errorf("TabWidth: expected reset to %d, got %d", DefaultTabWidth, cfg.Editor.TabWidth)
	}
	if cfg.Surround.NLines != DefaultNLines {
		t.Errorf("NLines: expected reset to %d, got %d", DefaultNLines, cfg.Surround.NLines)
	}
	if cfg.Surround.SearchMethod != DefaultSearchMethod {
		t.Errorf("SearchMethod: expected reset to %q, got %q", DefaultSearchMethod, cfg.Surround.SearchMethod)
	}
	if cfg.Surround.HighlightDurationMs != DefaultHighlightMs {
		t.Errorf("HighlightDurationMs: expected reset to %d, got %d", DefaultHighlightMs, cfg.Surround.HighlightDurationMs)
	}
}

func TestValidSearchMethod(t *testing.T) {
	for _, name := range []string{"cover", "cover_or_next", "cover_or_prev", "cover_or_nearest"} {
		if !ValidSearchMethod(name) {
			t.Errorf("expected %q to be valid", name)
		}
	}
	for _, name := range []string{"", "Cover", "nearest", "cover-or-next"} {
		if ValidSearchMethod(name) {
			t.Errorf("expected %q to be invalid", name)
		}
	}
}
