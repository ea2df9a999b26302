// Package event provides the synchronous event bus connecting the editor
// core, the UI layer, and plugins.
package event

import (
	"github.com/gdamore/tcell/v2"

	"github.com/seagrine/hem/internal/types"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Buffer and cursor events
	TypeBufferModified // buffer content changed (insert/delete)
	TypeBufferLoaded   // a file was loaded into the buffer
	TypeBufferSaved    // the buffer was written out
	TypeCursorMoved    // the cursor position changed

	// Editor state events
	TypeModeChanged     // input mode changed (normal, command, surround, ...)
	TypeThemeChanged    // the active theme changed
	TypeConfigReloaded  // the config file was re-read and applied
	TypeSurroundApplied // a surrounding operation ran successfully

	// Raw input, forwarded for plugins
	TypeKeyPressed

	// Application lifecycle
	TypeAppReady
	TypeAppQuit
)

func (t Type) String() string {
	switch t {
	case TypeBufferModified:
		return "BufferModified"
	case TypeBufferLoaded:
		return "BufferLoaded"
	case TypeBufferSaved:
		return "BufferSaved"
	case TypeCursorMoved:
		return "CursorMoved"
	case TypeModeChanged:
		return "ModeChanged"
	case TypeThemeChanged:
		return "ThemeChanged"
	case TypeConfigReloaded:
		return "ConfigReloaded"
	case TypeSurroundApplied:
		return "SurroundApplied"
	case TypeKeyPressed:
		return "KeyPressed"
	case TypeAppReady:
		return "AppReady"
	case TypeAppQuit:
		return "AppQuit"
	}
	return "Unknown"
}

// Event is the structure passed through the bus.
type Event struct {
	Type Type
	Data any
}

// BufferModifiedData describes a buffer change.
type BufferModifiedData struct {
	Edit types.EditInfo
}

// BufferLoadedData names the file that was loaded.
type BufferLoadedData struct {
	FilePath string
}

// BufferSavedData names the file that was written.
type BufferSavedData struct {
	FilePath string
}

// CursorMovedData carries the new cursor position.
type CursorMovedData struct {
	NewPosition types.Position
}

// ModeChangedData carries the new input mode name.
type ModeChangedData struct {
	Mode string
}

// SurroundAppliedData describes a completed surrounding operation.
type SurroundAppliedData struct {
	Action     string // "add", "delete", "replace", "find", "find_left", "highlight", "yank"
	Identifier string // surrounding identifier character
	Position   types.Position
}

// ThemeChangedData names the newly active theme.
type ThemeChangedData struct {
	ThemeName string
}

// KeyPressedData carries the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// ConfigReloadedData is dispatched after a config reload; subscribers
// re-read the settings they care about.
type ConfigReloadedData struct{}

// AppReadyData is dispatched once startup wiring is complete.
type AppReadyData struct{}

// AppQuitData is dispatched just before shutdown begins.
type AppQuitData struct{}
