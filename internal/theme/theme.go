// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/seagrine/hem/internal/logger"
)

// Theme maps style names to concrete tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle resolves a style name against the theme. Lookup order is the
// exact name, then the base name (part before the first dot), then the
// theme's "Default" style, then tcell's default.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			logger.DebugTagf("theme", "Theme '%s': style '%s' not found, using base '%s'", t.Name, name, baseName)
			return style
		}
	}

	if defStyle, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.DebugTagf("theme", "Theme '%s': style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': style '%s' and 'Default' both missing, using tcell default", t.Name, name)
	return tcell.StyleDefault
}

// HemDark is the built-in theme.
var HemDark Theme

func init() {
	// Palette
	hdBackground := tcell.NewHexColor(0x23272e) // status bar background
	hdForeground := tcell.NewHexColor(0xcdd3de) // default text
	hdGutter := tcell.NewHexColor(0x5f6672)     // line numbers, low emphasis
	hdYellow := tcell.NewHexColor(0xe8c176)     // modified indicator
	hdGreen := tcell.NewHexColor(0x9ac97c)      // find prefix
	hdCyan := tcell.NewHexColor(0x62b6c5)       // pending-operator indicator
	hdOrange := tcell.NewHexColor(0xd3976a)     // search matches
	hdMagenta := tcell.NewHexColor(0xc37edd)    // surround flash

	// Text cells keep the terminal background.
	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(hdForeground)

	HemDark = Theme{
		Name:   "Hem Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			"Default":   baseStyle,
			"Selection": baseStyle.Reverse(true),

			// Transient overlays drawn above the text.
			"SearchHighlight":   tcell.StyleDefault.Background(hdOrange).Foreground(tcell.ColorBlack),
			"SurroundHighlight": tcell.StyleDefault.Background(hdMagenta).Foreground(tcell.ColorBlack),

			"LineNumber":       baseStyle.Foreground(hdGutter),
			"LineNumberActive": baseStyle.Foreground(hdYellow),
			"DimText":          baseStyle.Foreground(hdGutter),

			"StatusBar":         tcell.StyleDefault.Background(hdBackground).Foreground(hdForeground),
			"StatusBarMode":     tcell.StyleDefault.Background(hdBackground).Foreground(hdCyan).Bold(true),
			"StatusBarModified": tcell.StyleDefault.Background(hdBackground).Foreground(hdYellow),
			"StatusBarMessage":  tcell.StyleDefault.Background(hdBackground).Foreground(hdForeground).Bold(true),
			"StatusBarFind":     tcell.StyleDefault.Background(hdBackground).Foreground(hdGreen).Bold(true),
			"StatusBarPending":  tcell.StyleDefault.Background(hdBackground).Foreground(hdCyan).Bold(true),
		},
	}
}
