package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestParseColorString(t *testing.T) {
	tests := []struct {
		input   string
		want    tcell.Color
		wantErr bool
	}{
		{"#ff0000", tcell.NewHexColor(0xff0000), false},
		{"  #00FF00 ", tcell.NewHexColor(0x00ff00), false},
		{"reset", tcell.ColorReset, false},
		{"default", tcell.ColorDefault, false},
		{"red", tcell.ColorRed, false},
		{"DarkCyan", tcell.ColorDarkCyan, false},
		{"#fff", 0, true},
		{"#zzzzzz", 0, true},
		{"nosuchcolor", 0, true},
	}

	for _, tt := range tests {
		got, err := parseColorString(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseColorString(%q): expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseColorString(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseColorString(%q): expected %v, got %v", tt.input, tt.want, got)
		}
	}
}

func TestLoadThemeFromFile(t *testing.T) {
	content := `
name = "Test Theme"
is_dark = true

[styles.Default]
fg = "#cdd3de"
bg = "reset"

[styles.StatusBar]
bg = "#23272e"

[styles.SearchHighlight]
fg = "black"
bg = "#d3976a"
bold = true
`
	path := filepath.Join(t.TempDir(), "test.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write theme file: %v", err)
	}

	th, err := LoadThemeFromFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFromFile: %v", err)
	}
	if th.Name != "Test Theme" {
		t.Errorf("name: expected %q, got %q", "Test Theme", th.Name)
	}
	if !th.IsDark {
		t.Errorf("is_dark: expected true")
	}

	// StatusBar sets only bg, so fg inherits from Default.
	wantFg, _, _ := th.Styles["Default"].Decompose()
	gotFg, gotBg, _ := th.Styles["StatusBar"].Decompose()
	if gotFg != wantFg {
		t.Errorf("StatusBar fg: expected inherited %v, got %v", wantFg, gotFg)
	}
	if gotBg != tcell.NewHexColor(0x23272e) {
		t.Errorf("StatusBar bg: expected %v, got %v", tcell.NewHexColor(0x23272e), gotBg)
	}

	_, _, attrs := th.Styles["SearchHighlight"].Decompose()
	if attrs&tcell.AttrBold == 0 {
		t.Errorf("SearchHighlight: expected bold attribute")
	}
}

func TestLoadThemeNameFallsBackToFilename(t *testing.T) {
	content := `
[styles.Default]
fg = "#ffffff"
`
	path := filepath.Join(t.TempDir(), "midnight.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write theme file: %v", err)
	}

	th, err := LoadThemeFromFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFromFile: %v", err)
	}
	if th.Name != "midnight" {
		t.Errorf("name: expected %q, got %q", "midnight", th.Name)
	}
}

func TestGetStyleFallbackChain(t *testing.T) {
	base := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	th := &Theme{
		Name: "chain",
		Styles: map[string]tcell.Style{
			"Default":   base,
			"StatusBar": base.Bold(true),
		},
	}

	if got := th.GetStyle("StatusBar"); got != base.Bold(true) {
		t.Errorf("exact lookup: expected StatusBar style, got %v", got)
	}
	if got := th.GetStyle("StatusBar.Message"); got != base.Bold(true) {
		t.Errorf("base-name lookup: expected StatusBar style, got %v", got)
	}
	if got := th.GetStyle("NoSuchStyle"); got != base {
		t.Errorf("default fallback: expected Default style, got %v", got)
	}

	empty := &Theme{Name: "empty", Styles: map[string]tcell.Style{}}
	if got := empty.GetStyle("Anything"); got != tcell.StyleDefault {
		t.Errorf("empty theme: expected tcell default, got %v", got)
	}
}
