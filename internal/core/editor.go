// Package core composes the buffer and the per-concern managers
// (cursor, selection, history, text, clipboard, find, surrounding)
// behind one Editor facade that the UI layers talk to.
package core

import (
	"time"

	"github.com/seagrine/hem/internal/buffer"
	"github.com/seagrine/hem/internal/config"
	"github.com/seagrine/hem/internal/core/clipboard"
	"github.com/seagrine/hem/internal/core/cursor"
	"github.com/seagrine/hem/internal/core/find"
	"github.com/seagrine/hem/internal/core/history"
	"github.com/seagrine/hem/internal/core/selection"
	"github.com/seagrine/hem/internal/core/surrounding"
	"github.com/seagrine/hem/internal/core/text"
	"github.com/seagrine/hem/internal/event"
	"github.com/seagrine/hem/internal/highlight"
	"github.com/seagrine/hem/internal/logger"
	"github.com/seagrine/hem/internal/surround"
	"github.com/seagrine/hem/internal/types"
)

// Editor owns the buffer and the managers that operate on it. The
// managers hold their own state and reach back into the editor through
// small per-package interfaces, so each one sees only what it needs.
type Editor struct {
	buffer       buffer.Buffer
	eventManager *event.Manager

	cursorManager    *cursor.Manager
	selectionManager *selection.Manager
	historyManager   *history.Manager
	textOps          *text.Operations
	clipboardManager *clipboard.Manager
	findManager      *find.Manager
	surroundManager  *surrounding.Manager
	flash            *highlight.Manager

	tabWidth          int
	scrollOff         int
	systemClipboard   bool
	highlightDuration time.Duration
}

// NewEditor wires the managers around buf. The flash manager is built
// by the caller because its expiry callback needs the redraw hook.
func NewEditor(buf buffer.Buffer, eventMgr *event.Manager, engine *surround.Engine, flash *highlight.Manager, cfg *config.Config) *Editor {
	e := &Editor{
		buffer:       buf,
		eventManager: eventMgr,
		flash:        flash,
	}
	e.cursorManager = cursor.NewManager(e)
	e.selectionManager = selection.NewManager(e)
	e.historyManager = history.NewManager(e, history.DefaultMaxHistory)
	e.textOps = text.NewOperations(e)
	e.clipboardManager = clipboard.NewManager(e)
	e.findManager = find.NewManager(e)
	e.surroundManager = surrounding.NewManager(e, engine)
	e.ApplyConfig(cfg)
	return e
}

// ApplyConfig applies the editor and surround settings from cfg. Called
// once at construction and again on live config reload.
func (e *Editor) ApplyConfig(cfg *config.Config) {
	e.tabWidth = cfg.Editor.TabWidth
	e.scrollOff = cfg.Editor.ScrollOff
	e.systemClipboard = cfg.Editor.SystemClipboard
	e.highlightDuration = time.Duration(cfg.Surround.HighlightDurationMs) * time.Millisecond

	engine := e.surroundManager.Engine()
	engine.SetNLines(cfg.Surround.NLines)
	method, err := surround.ParseMethod(cfg.Surround.SearchMethod)
	if err != nil {
		logger.Warnf("Editor: invalid search method %q, keeping %q", cfg.Surround.SearchMethod, engine.Method())
	} else {
		engine.SetMethod(method)
	}

	logger.DebugTagf("core", "Config applied: tab=%d scrolloff=%d nlines=%d method=%s",
		e.tabWidth, e.scrollOff, engine.NLines(), engine.Method())
}

// GetBuffer returns the editor's buffer.
func (e *Editor) GetBuffer() buffer.Buffer {
	return e.buffer
}

// GetEventManager returns the event bus shared with the app.
func (e *Editor) GetEventManager() *event.Manager {
	return e.eventManager
}

// GetHistoryManager returns the undo/redo manager.
func (e *Editor) GetHistoryManager() *history.Manager {
	return e.historyManager
}

// GetSurroundManager returns the surrounding-operation manager.
func (e *Editor) GetSurroundManager() *surrounding.Manager {
	return e.surroundManager
}

// TabWidth returns the configured tab stop width.
func (e *Editor) TabWidth() int {
	return e.tabWidth
}

// ScrollOff returns the number of context lines kept around the cursor.
func (e *Editor) ScrollOff() int {
	return e.scrollOff
}

// UseSystemClipboard reports whether yanks mirror to the system clipboard.
func (e *Editor) UseSystemClipboard() bool {
	return e.systemClipboard
}

// GetCursor returns the current cursor position.
func (e *Editor) GetCursor() types.Position {
	return e.cursorManager.GetPosition()
}

// SetCursor clamps pos to the buffer and moves the cursor there.
func (e *Editor) SetCursor(pos types.Position) {
	e.cursorManager.SetPosition(pos)
	e.eventManager.Dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: e.cursorManager.GetPosition()})
}

// SetViewSize updates the text area dimensions used for scrolling.
// Called on resize and before drawing.
func (e *Editor) SetViewSize(width, height int) {
	e.cursorManager.SetViewSize(width, height)
	e.cursorManager.ScrollToCursor()
}

// GetViewport returns the viewport origin: top visible line and
// leftmost visible visual column.
func (e *Editor) GetViewport() (top, left int) {
	return e.cursorManager.GetViewport()
}

// ScrollToCursor adjusts the viewport so the cursor stays visible.
func (e *Editor) ScrollToCursor() {
	e.cursorManager.ScrollToCursor()
}

// SetClipboard stores content in the clipboard register.
func (e *Editor) SetClipboard(content []byte) {
	e.clipboardManager.SetContent(content)
}

// FlashHighlight shows regions for the configured highlight duration.
func (e *Editor) FlashHighlight(regions []types.HighlightRegion) {
	e.flash.Flash(regions, e.highlightDuration)
}

// GetHighlights returns the regions the renderer should emphasize:
// search matches plus any active surround flash.
func (e *Editor) GetHighlights() []types.HighlightRegion {
	regions := e.findManager.GetHighlights()
	return append(regions, e.flash.Regions()...)
}

// IsModified reports whether the buffer has unsaved changes.
func (e *Editor) IsModified() bool {
	return e.buffer.IsModified()
}

// SaveBuffer writes the buffer to filePath, or to its current path when
// none is given, and announces the save on the event bus.
func (e *Editor) SaveBuffer(filePath ...string) error {
	path := e.buffer.FilePath()
	if len(filePath) > 0 && filePath[0] != "" {
		path = filePath[0]
	}

	if err := e.buffer.Save(path); err != nil {
		return err
	}

	e.eventManager.Dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: e.buffer.FilePath()})
	logger.DebugTagf("core", "Saved buffer to %q", e.buffer.FilePath())
	return nil
}
