package core

import (
	"github.com/seagrine/hem/internal/event"
	"github.com/seagrine/hem/internal/logger"
	"github.com/seagrine/hem/internal/types"
)

// Text operations delegated to textOps.

func (e *Editor) InsertRune(r rune) error {
	return e.textOps.InsertRune(r)
}

func (e *Editor) InsertNewLine() error {
	return e.textOps.InsertNewLine()
}

func (e *Editor) InsertTab() error {
	return e.textOps.InsertRune('\t')
}

func (e *Editor) DeleteBackward() error {
	return e.textOps.DeleteBackward()
}

func (e *Editor) DeleteForward() error {
	return e.textOps.DeleteForward()
}

// Clipboard operations delegated to clipboardManager.

func (e *Editor) YankSelection() (bool, error) {
	return e.clipboardManager.YankSelection()
}

func (e *Editor) Paste() (bool, error) {
	return e.clipboardManager.Paste()
}

// Cursor movement. Each move drags the selection end along while a
// selection is active.

func (e *Editor) MoveCursor(deltaLine, deltaCol int) {
	before := e.cursorManager.GetPosition()
	e.cursorManager.MoveCursor(deltaLine, deltaCol)
	e.afterMove(before)
	logger.DebugTagf("core", "MoveCursor: Delta(%d,%d) -> NewCursor(%d,%d)",
		deltaLine, deltaCol, e.GetCursor().Line, e.GetCursor().Col)
}

func (e *Editor) PageMove(deltaPages int) {
	before := e.cursorManager.GetPosition()
	e.cursorManager.PageMove(deltaPages)
	e.afterMove(before)
	logger.DebugTagf("core", "PageMove: Delta(%d) -> NewCursor(%d,%d)",
		deltaPages, e.GetCursor().Line, e.GetCursor().Col)
}

func (e *Editor) Home() {
	before := e.cursorManager.GetPosition()
	e.cursorManager.MoveToLineStart()
	e.afterMove(before)
}

func (e *Editor) End() {
	before := e.cursorManager.GetPosition()
	e.cursorManager.MoveToLineEnd()
	e.afterMove(before)
}

// afterMove updates the selection end and announces the cursor change.
func (e *Editor) afterMove(before types.Position) {
	if e.selectionManager.IsSelecting() {
		e.selectionManager.UpdateSelectionEnd()
	}
	if pos := e.cursorManager.GetPosition(); pos != before {
		e.eventManager.Dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: pos})
	}
}

// Selection state delegated to selectionManager.

func (e *Editor) HasSelection() bool {
	return e.selectionManager.HasSelection()
}

func (e *Editor) GetSelection() (start, end types.Position, ok bool) {
	return e.selectionManager.GetSelection()
}

func (e *Editor) ClearSelection() {
	e.selectionManager.ClearSelection()
}

func (e *Editor) StartOrUpdateSelection() {
	e.selectionManager.StartOrUpdateSelection()
}

func (e *Editor) IsSelecting() bool {
	return e.selectionManager.IsSelecting()
}

// History operations delegated to historyManager.

func (e *Editor) Undo() (bool, error) {
	return e.historyManager.Undo()
}

func (e *Editor) Redo() (bool, error) {
	return e.historyManager.Redo()
}

// Find operations delegated to findManager.

func (e *Editor) FindNext(forward bool) (types.Position, bool) {
	return e.findManager.FindNext(forward)
}

func (e *Editor) HighlightMatches(term string) error {
	return e.findManager.HighlightMatches(term)
}

func (e *Editor) ClearSearchHighlights() {
	e.findManager.ClearHighlights()
}

func (e *Editor) HasSearchHighlights() bool {
	return e.findManager.HasHighlights()
}

func (e *Editor) Replace(pattern, replacement string, global bool) (int, error) {
	return e.findManager.Replace(pattern, replacement, global)
}

// Surround operations delegated to surroundManager.

func (e *Editor) SurroundAdd(id string) error {
	return e.surroundManager.Add(id)
}

func (e *Editor) SurroundDelete(id string) error {
	return e.surroundManager.Delete(id)
}

func (e *Editor) SurroundReplace(fromID, toID string) error {
	return e.surroundManager.Replace(fromID, toID)
}

func (e *Editor) SurroundFind(id string) error {
	return e.surroundManager.Find(id)
}

func (e *Editor) SurroundFindLeft(id string) error {
	return e.surroundManager.FindLeft(id)
}

func (e *Editor) SurroundHighlight(id string) error {
	return e.surroundManager.Highlight(id)
}

func (e *Editor) SurroundYank(id string) (int, error) {
	return e.surroundManager.Yank(id)
}
