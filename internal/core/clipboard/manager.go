// Package clipboard implements yank and paste against an internal
// register, mirrored to the system clipboard when enabled.
package clipboard

import (
	"fmt"

	system "github.com/atotto/clipboard"

	"github.com/seagrine/hem/internal/buffer"
	"github.com/seagrine/hem/internal/core/history"
	"github.com/seagrine/hem/internal/core/text"
	"github.com/seagrine/hem/internal/event"
	"github.com/seagrine/hem/internal/logger"
	"github.com/seagrine/hem/internal/types"
)

// EditorInterface defines the editor methods clipboard operations need.
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	GetCursor() types.Position
	SetCursor(pos types.Position)
	GetSelection() (start, end types.Position, ok bool)
	ClearSelection()
	GetEventManager() *event.Manager
	ScrollToCursor()
	GetHistoryManager() *history.Manager
	UseSystemClipboard() bool
}

// Manager handles yank and paste. The internal register always holds the
// last yank, so the editor keeps working when no system clipboard is
// reachable (headless sessions, missing xclip/wl-copy).
type Manager struct {
	editor   EditorInterface
	register []byte
}

// NewManager creates a clipboard manager with an empty register.
func NewManager(editor EditorInterface) *Manager {
	return &Manager{editor: editor}
}

// YankSelection copies the selected text into the clipboard and clears
// the selection. Reports whether a selection was yanked.
func (m *Manager) YankSelection() (bool, error) {
	start, end, ok := m.editor.GetSelection()
	if !ok {
		return false, nil
	}

	content, err := text.ExtractRange(m.editor.GetBuffer(), start, end)
	if err != nil {
		return false, fmt.Errorf("failed to extract selected text for yank: %w", err)
	}

	m.SetContent(content)
	m.editor.ClearSelection()
	logger.DebugTagf("clipboard", "Yanked %d bytes", len(content))
	return true, nil
}

// SetContent replaces the register and mirrors the text to the system
// clipboard when enabled.
func (m *Manager) SetContent(content []byte) {
	m.register = append(m.register[:0], content...)
	if !m.editor.UseSystemClipboard() {
		return
	}
	if err := system.WriteAll(string(content)); err != nil {
		logger.DebugTagf("clipboard", "System clipboard write failed, register only: %v", err)
	}
}

// Content returns a copy of the internal register.
func (m *Manager) Content() []byte {
	return append([]byte(nil), m.register...)
}

// readContent prefers the system clipboard so text copied in other
// programs pastes here; the register is the fallback.
func (m *Manager) readContent() []byte {
	if m.editor.UseSystemClipboard() {
		if s, err := system.ReadAll(); err == nil && s != "" {
			return []byte(s)
		}
	}
	return m.register
}

// Paste inserts the clipboard content at the cursor, replacing the active
// selection if there is one. The selection delete and the insert are
// recorded as one history step.
func (m *Manager) Paste() (bool, error) {
	content := m.readContent()
	if len(content) == 0 {
		return false, nil
	}

	buf := m.editor.GetBuffer()
	eventMgr := m.editor.GetEventManager()
	cursorBefore := m.editor.GetCursor()
	var changes []history.Change

	pastePos := cursorBefore
	if start, end, ok := m.editor.GetSelection(); ok {
		selectedText, err := text.ExtractRange(buf, start, end)
		if err != nil {
			return false, fmt.Errorf("failed to extract selected text: %w", err)
		}

		m.editor.ClearSelection()
		editInfo, err := buf.Delete(start, end)
		if err != nil {
			return false, fmt.Errorf("failed to delete selection before paste: %w", err)
		}

		changes = append(changes, history.Change{
			Type:          history.DeleteAction,
			Text:          selectedText,
			StartPosition: start,
			EndPosition:   end,
			CursorBefore:  cursorBefore,
		})
		pastePos = start

		if eventMgr != nil {
			eventMgr.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: editInfo})
		}
	}

	editInfo, err := buf.Insert(pastePos, content)
	if err != nil {
		return false, fmt.Errorf("buffer insert failed during paste: %w", err)
	}
	newPos := editInfo.NewEndPosition

	changes = append(changes, history.Change{
		Type:          history.InsertAction,
		Text:          append([]byte(nil), content...),
		StartPosition: pastePos,
		EndPosition:   newPos,
		CursorBefore:  cursorBefore,
	})
	if histMgr := m.editor.GetHistoryManager(); histMgr != nil {
		histMgr.RecordChangeSet(history.ChangeSet{Changes: changes})
	}

	m.editor.SetCursor(newPos)
	m.editor.ScrollToCursor()

	logger.DebugTagf("clipboard", "Pasted %d bytes", len(content))
	if eventMgr != nil {
		eventMgr.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: editInfo})
	}
	return true, nil
}
