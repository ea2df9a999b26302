package history

import (
	"fmt"
	"sync"

	"github.com/seagrine/hem/internal/buffer"
	"github.com/seagrine/hem/internal/event"
	"github.com/seagrine/hem/internal/logger"
	"github.com/seagrine/hem/internal/types"
)

const DefaultMaxHistory = 100

// EditorInterface defines the methods the history manager needs from the
// editor.
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	SetCursor(types.Position)
	GetEventManager() *event.Manager
	ScrollToCursor()
}

// Manager handles the undo/redo stack. Entries are change sets; undoing a
// set applies the inverse of its changes in reverse order, so a grouped
// edit reverts as one step.
type Manager struct {
	editor       EditorInterface
	sets         []ChangeSet
	currentIndex int // index of the next set to potentially Redo
	maxHistory   int
	mutex        sync.Mutex
}

// NewManager creates a history manager.
func NewManager(editor EditorInterface, maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		editor:     editor,
		sets:       make([]ChangeSet, 0, maxHistory),
		maxHistory: maxHistory,
	}
}

// RecordChange adds a single change as its own set, clearing any redo
// history.
func (m *Manager) RecordChange(change Change) {
	m.RecordChangeSet(ChangeSet{Changes: []Change{change}})
}

// RecordChangeSet adds a grouped set of changes, clearing any redo history.
// Empty sets are ignored.
func (m *Manager) RecordChangeSet(set ChangeSet) {
	if len(set.Changes) == 0 {
		return
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	// Recording after an undo discards the redo tail.
	if m.currentIndex < len(m.sets) {
		m.sets = m.sets[:m.currentIndex]
	}

	m.sets = append(m.sets, set)

	// FIFO eviction once the stack exceeds its cap.
	if len(m.sets) > m.maxHistory {
		m.sets = m.sets[len(m.sets)-m.maxHistory:]
	}

	m.currentIndex = len(m.sets)
	logger.DebugTagf("history", "Recorded set of %d change(s). Index: %d, Count: %d",
		len(set.Changes), m.currentIndex, len(m.sets))
}

// applyInverse reverts a single change and returns the resulting edit.
func (m *Manager) applyInverse(change Change) (types.EditInfo, error) {
	buf := m.editor.GetBuffer()
	switch change.Type {
	case InsertAction:
		// Undo an insert by deleting the inserted range.
		return buf.Delete(change.StartPosition, change.EndPosition)
	case DeleteAction:
		// Undo a delete by putting the deleted text back.
		return buf.Insert(change.StartPosition, change.Text)
	}
	return types.EditInfo{}, fmt.Errorf("unknown change type %d", change.Type)
}

// applyForward reapplies a single change and returns the resulting edit.
func (m *Manager) applyForward(change Change) (types.EditInfo, error) {
	buf := m.editor.GetBuffer()
	switch change.Type {
	case InsertAction:
		return buf.Insert(change.StartPosition, change.Text)
	case DeleteAction:
		return buf.Delete(change.StartPosition, change.EndPosition)
	}
	return types.EditInfo{}, fmt.Errorf("unknown change type %d", change.Type)
}

// Undo reverts the most recent change set.
func (m *Manager) Undo() (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex <= 0 {
		logger.DebugTagf("history", "Nothing to undo.")
		return false, nil
	}

	m.currentIndex--
	set := m.sets[m.currentIndex]
	logger.DebugTagf("history", "Undoing set %d (%d change(s))", m.currentIndex, len(set.Changes))

	eventMgr := m.editor.GetEventManager()
	for i := len(set.Changes) - 1; i >= 0; i-- {
		editInfo, err := m.applyInverse(set.Changes[i])
		if err != nil {
			logger.Errorf("History: error undoing change %d of set %d: %v", i, m.currentIndex, err)
			m.currentIndex++ // leave the set marked as applied
			return false, fmt.Errorf("undo failed: %w", err)
		}
		if eventMgr != nil {
			eventMgr.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: editInfo})
		}
	}

	// The cursor goes back to where it was before the first change.
	m.editor.SetCursor(set.Changes[0].CursorBefore)
	m.editor.ScrollToCursor()
	return true, nil
}

// Redo reapplies the most recently undone change set.
func (m *Manager) Redo() (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex >= len(m.sets) {
		logger.DebugTagf("history", "Nothing to redo. currentIndex=%d, count=%d", m.currentIndex, len(m.sets))
		return false, nil
	}

	set := m.sets[m.currentIndex]
	logger.DebugTagf("history", "Redoing set %d (%d change(s))", m.currentIndex, len(set.Changes))

	eventMgr := m.editor.GetEventManager()
	for i, change := range set.Changes {
		editInfo, err := m.applyForward(change)
		if err != nil {
			logger.Errorf("History: error redoing change %d of set %d: %v", i, m.currentIndex, err)
			return false, fmt.Errorf("redo failed: %w", err)
		}
		if eventMgr != nil {
			eventMgr.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: editInfo})
		}
	}

	// The cursor lands where the last change left it: after inserted text,
	// or at the start of a deleted range.
	last := set.Changes[len(set.Changes)-1]
	finalCursor := last.EndPosition
	if last.Type == DeleteAction {
		finalCursor = last.StartPosition
	}
	m.editor.SetCursor(finalCursor)
	m.editor.ScrollToCursor()

	m.currentIndex++
	return true, nil
}

// Clear resets the history stack. Called on file load.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sets = m.sets[:0]
	m.currentIndex = 0
	logger.DebugTagf("history", "Cleared.")
}

// CanUndo reports whether there are changes to undo.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex > 0
}

// CanRedo reports whether there are undone changes to reapply.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex < len(m.sets)
}
