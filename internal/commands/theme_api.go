package commands

import "github.com/seagrine/hem/internal/theme"

// ThemeAPI is the theme surface the built-in commands drive.
type ThemeAPI interface {
	SetTheme(name string) error
	GetTheme() *theme.Theme
	ListThemes() []string
	SetStatusMessage(format string, args ...interface{})
}
