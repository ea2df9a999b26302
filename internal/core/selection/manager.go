// Package selection tracks the anchor/end state of a character-wise
// selection.
package selection

import (
	"github.com/seagrine/hem/internal/logger"
	"github.com/seagrine/hem/internal/types"
)

// EditorInterface defines what the selection manager needs from the editor.
type EditorInterface interface {
	GetCursor() types.Position
}

// Manager owns selection state. The anchor is fixed where the selection
// started; the end follows the cursor.
type Manager struct {
	editor EditorInterface

	selecting bool
	anchor    types.Position
	end       types.Position
}

var noPosition = types.Position{Line: -1, Col: -1}

// NewManager creates a selection manager with no active selection.
func NewManager(editor EditorInterface) *Manager {
	return &Manager{
		editor: editor,
		anchor: noPosition,
		end:    noPosition,
	}
}

// HasSelection reports whether a non-empty selection is active.
func (m *Manager) HasSelection() bool {
	return m.selecting && m.anchor != m.end
}

// GetSelection returns the normalized selection range (start never after
// end). ok is false while no selection is active or it is still empty.
func (m *Manager) GetSelection() (start, end types.Position, ok bool) {
	if !m.selecting {
		return noPosition, noPosition, false
	}
	start, end = m.anchor, m.end
	if start == end {
		return start, end, false
	}
	if start.After(end) {
		start, end = end, start
	}
	return start, end, true
}

// ClearSelection resets the selection state.
func (m *Manager) ClearSelection() {
	if m.selecting {
		logger.DebugTagf("core", "Selection cleared")
	}
	m.selecting = false
	m.anchor = noPosition
	m.end = noPosition
}

// StartOrUpdateSelection anchors a new selection at the cursor, or extends
// the active one to it.
func (m *Manager) StartOrUpdateSelection() {
	cursor := m.editor.GetCursor()
	if !m.selecting {
		m.anchor = cursor
		m.selecting = true
		logger.DebugTagf("core", "Selection started at %v", m.anchor)
	}
	m.end = cursor
}

// UpdateSelectionEnd moves the selection end to the cursor if a selection
// is active.
func (m *Manager) UpdateSelectionEnd() {
	if m.selecting {
		m.end = m.editor.GetCursor()
	}
}

// IsSelecting reports whether a selection anchor is set, even while the
// selection is still empty.
func (m *Manager) IsSelecting() bool {
	return m.selecting
}
