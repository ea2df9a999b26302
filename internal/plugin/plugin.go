// Package plugin defines the editor's extension points: the Plugin
// lifecycle interface and the EditorAPI handed to plugins at startup.
package plugin

import (
	"github.com/gdamore/tcell/v2"

	"github.com/seagrine/hem/internal/event"
	"github.com/seagrine/hem/internal/surround"
	"github.com/seagrine/hem/internal/theme"
	"github.com/seagrine/hem/internal/types"
)

// CommandFunc is the signature for ':' commands registered by plugins.
type CommandFunc func(args []string) error

// EditorAPI is the controlled surface plugins use to interact with the
// editor core.
type EditorAPI interface {
	// Buffer access.
	GetBufferLine(line int) ([]byte, error)
	GetBufferLines(startLine, endLine int) ([][]byte, error)
	GetBufferLineCount() int
	GetBufferFilePath() string
	GetBufferBytes() []byte
	IsBufferModified() bool

	// Buffer modification.
	InsertText(pos types.Position, text []byte) error
	DeleteRange(start, end types.Position) error
	SaveBuffer(path ...string) error

	// Cursor and viewport.
	GetCursor() types.Position
	SetCursor(pos types.Position)
	GetViewport() (top, left int)

	// Event bus.
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// Command and surrounding registration.
	RegisterCommand(name string, cmdFunc CommandFunc) error
	RegisterSurrounding(id string, spec surround.CustomSpec) error
	ListSurroundings() []string

	// Status bar.
	SetStatusMessage(format string, args ...interface{})

	// Theme access.
	GetThemeStyle(styleName string) tcell.Style
	GetTheme() *theme.Theme
	SetTheme(name string) error
	ListThemes() []string

	// Configuration: values from the plugin's [plugins.<name>] table.
	GetPluginConfigValue(pluginName, key string) (interface{}, bool)
}

// Plugin is the lifecycle every plugin implements. Setup work such as
// subscribing to events and registering commands or surroundings happens
// in Initialize.
type Plugin interface {
	Name() string
	Initialize(api EditorAPI) error
	Shutdown() error
}
