// Package statusbar draws the single status line at the bottom of the
// screen: file info and cursor position, the mode name, the pending
// surround operator, and transient messages that double as the command,
// find, and surround prompt line.
package statusbar

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/seagrine/hem/internal/config"
	"github.com/seagrine/hem/internal/theme"
	"github.com/seagrine/hem/internal/types"
)

// Config defines status bar behavior.
type Config struct {
	MessageTimeout time.Duration
}

// DefaultConfig returns the standard message timeout.
func DefaultConfig() Config {
	return Config{MessageTimeout: config.MessageTimeout}
}

// StatusBar is the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	filePath   string
	cursorPos  types.Position
	isModified bool
	editorMode string
	pending    string

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config}
}

// SetFileInfo updates the file path and modified flag shown in the bar.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetCursorInfo updates the cursor position shown.
func (sb *StatusBar) SetCursorInfo(pos types.Position) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
}

// SetEditorMode updates the displayed mode name.
func (sb *StatusBar) SetEditorMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.editorMode = mode
}

// SetPendingInput updates the pending-operator indicator, shown next to
// the mode name while a surround operation waits for its keys. An empty
// string clears it.
func (sb *StatusBar) SetPendingInput(keys string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.pending = keys
}

// SetTemporaryMessage displays a message until the timeout elapses or it
// is replaced. Messages beginning with ':' or '/' render in the prompt
// style.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = time.Now()
}

// ResetTemporaryMessage clears any temporary message being displayed.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// messageLocked returns the active temporary message, expiring it first.
// Callers must hold the write lock.
func (sb *StatusBar) messageLocked() (string, bool) {
	if sb.tempMessageTime.IsZero() {
		return "", false
	}
	if time.Since(sb.tempMessageTime) > sb.config.MessageTimeout {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
		return "", false
	}
	return sb.tempMessage, sb.tempMessage != ""
}

// Draw renders the status bar onto the last line of the screen.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int, th *theme.Theme) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	sb.mu.Lock()
	msg, msgActive := sb.messageLocked()
	filePath := sb.filePath
	modified := sb.isModified
	cursor := sb.cursorPos
	mode := sb.editorMode
	pending := sb.pending
	sb.mu.Unlock()

	barStyle := th.GetStyle("StatusBar")
	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, barStyle)
	}

	// An active message (or prompt) takes over the whole line.
	if msgActive {
		style := th.GetStyle("StatusBarMessage")
		if strings.HasPrefix(msg, ":") || strings.HasPrefix(msg, "/") {
			style = th.GetStyle("StatusBarFind")
		}
		drawText(screen, 0, y, width, style, msg)
		return
	}

	if filePath == "" {
		filePath = "[No Name]"
	}
	x := drawText(screen, 0, y, width, barStyle, filePath)
	if modified {
		x = drawText(screen, x, y, width, th.GetStyle("StatusBarModified"), " [Modified]")
	}
	leftEnd := drawText(screen, x, y, width, barStyle,
		fmt.Sprintf(" -- Line: %d, Col: %d", cursor.Line+1, cursor.Col+1))

	// Mode and pending operator sit right-aligned.
	rightWidth := 0
	if pending != "" {
		rightWidth += uniseg.StringWidth(pending) + 2
	}
	if mode != "" {
		rightWidth += uniseg.StringWidth(mode) + 1
	}
	rx := width - rightWidth
	if rightWidth == 0 || rx <= leftEnd+1 {
		return
	}
	if pending != "" {
		rx = drawText(screen, rx, y, width, th.GetStyle("StatusBarPending"), pending)
		rx += 2
	}
	if mode != "" {
		drawText(screen, rx, y, width, th.GetStyle("StatusBarMode"), mode)
	}
}

// drawText draws s at (x, y) clipped to maxWidth columns and returns the
// column after the last cell drawn.
func drawText(screen tcell.Screen, x, y, maxWidth int, style tcell.Style, s string) int {
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		clusterWidth := gr.Width()
		if x+clusterWidth > maxWidth {
			break
		}
		runes := gr.Runes()
		if len(runes) == 0 {
			continue
		}
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += clusterWidth
	}
	return x
}
