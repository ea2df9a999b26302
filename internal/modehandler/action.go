package modehandler

import (
	"github.com/gdamore/tcell/v2"

	"github.com/seagrine/hem/internal/input"
	"github.com/seagrine/hem/internal/logger"
)

// executeAction runs a decoded action in normal mode. Reports whether
// the action changed anything worth redrawing.
func (mh *ModeHandler) executeAction(actionEvent input.ActionEvent, ev *tcell.EventKey) bool {
	actionProcessed := true
	action := actionEvent.Action
	isShift := ev != nil && ev.Modifiers()&tcell.ModShift != 0

	isMovementAction := false
	switch action {
	case input.ActionMoveUp, input.ActionMoveDown, input.ActionMoveLeft, input.ActionMoveRight,
		input.ActionMovePageUp, input.ActionMovePageDown, input.ActionMoveHome, input.ActionMoveEnd:
		isMovementAction = true
	}

	// Shifted movement extends the selection; plain movement drops it.
	if isMovementAction && isShift {
		mh.editor.StartOrUpdateSelection()
	}
	if isMovementAction && !isShift {
		mh.editor.ClearSelection()
	}

	switch action {
	// Mode switching.
	case input.ActionEnterCommandMode:
		mh.editor.ClearSelection()
		mh.setMode(ModeCommand)
		mh.cmdBuffer = ""
		mh.statusBar.SetTemporaryMessage(":")

	case input.ActionEnterFindMode:
		mh.editor.ClearSelection()
		mh.setMode(ModeFind)
		mh.findBuffer = ""
		mh.editor.ClearSearchHighlights()
		mh.statusBar.SetTemporaryMessage("/")

	case input.ActionEnterSurroundMode:
		mh.enterSurroundMode()

	// Quit and save.
	case input.ActionQuit:
		switch {
		case mh.editor.HasSearchHighlights():
			mh.editor.ClearSearchHighlights()
			mh.statusBar.SetTemporaryMessage("Highlights cleared")
		case mh.editor.IsModified() && !mh.forceQuitPending:
			mh.statusBar.SetTemporaryMessage("Unsaved changes! Press ESC again or Ctrl+Q to force quit.")
			mh.forceQuitPending = true
		default:
			mh.signalQuit()
			actionProcessed = false
		}
	case input.ActionForceQuit:
		mh.signalQuit()
		actionProcessed = false

	case input.ActionSave:
		mh.editor.ClearSelection()
		if err := mh.editor.SaveBuffer(); err != nil {
			mh.statusBar.SetTemporaryMessage("Save FAILED: %v", err)
		} else {
			savedPath := mh.editor.GetBuffer().FilePath()
			if savedPath == "" {
				savedPath = "[No Name]"
			}
			mh.statusBar.SetTemporaryMessage("Buffer saved to %s", savedPath)
		}

	// Find next/previous.
	case input.ActionFindNext:
		if mh.lastSearchTerm != "" {
			mh.executeFind(mh.lastSearchForward)
		} else {
			mh.statusBar.SetTemporaryMessage("No previous search term")
			actionProcessed = false
		}
	case input.ActionFindPrevious:
		if mh.lastSearchTerm != "" {
			mh.executeFind(!mh.lastSearchForward)
		} else {
			mh.statusBar.SetTemporaryMessage("No previous search term")
			actionProcessed = false
		}

	// Movement.
	case input.ActionMoveUp:
		mh.editor.MoveCursor(-1, 0)
	case input.ActionMoveDown:
		mh.editor.MoveCursor(1, 0)
	case input.ActionMoveLeft:
		mh.editor.MoveCursor(0, -1)
	case input.ActionMoveRight:
		mh.editor.MoveCursor(0, 1)
	case input.ActionMovePageUp:
		mh.editor.PageMove(-1)
	case input.ActionMovePageDown:
		mh.editor.PageMove(1)
	case input.ActionMoveHome:
		mh.editor.Home()
	case input.ActionMoveEnd:
		mh.editor.End()

	// Clipboard.
	case input.ActionYank:
		copied, err := mh.editor.YankSelection()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Yank failed: %v", err)
			actionProcessed = false
		} else if copied {
			mh.statusBar.SetTemporaryMessage("Selection yanked")
		} else {
			mh.statusBar.SetTemporaryMessage("Nothing selected to yank")
		}

	case input.ActionPaste:
		pasted, err := mh.editor.Paste()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Paste failed: %v", err)
			actionProcessed = false
		} else if !pasted {
			mh.statusBar.SetTemporaryMessage("Clipboard empty")
			actionProcessed = false
		}

	// History.
	case input.ActionUndo:
		undone, err := mh.editor.Undo()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Undo failed: %v", err)
			actionProcessed = false
		} else if !undone {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
			actionProcessed = false
		}
	case input.ActionRedo:
		redone, err := mh.editor.Redo()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Redo failed: %v", err)
			actionProcessed = false
		} else if !redone {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
			actionProcessed = false
		}

	// Text modification. Search highlights go stale on edit.
	case input.ActionInsertRune:
		mh.editor.ClearSearchHighlights()
		if err := mh.editor.InsertRune(actionEvent.Rune); err != nil {
			logger.Debugf("InsertRune: %v", err)
			actionProcessed = false
		}
	case input.ActionInsertNewLine:
		mh.editor.ClearSearchHighlights()
		if err := mh.editor.InsertNewLine(); err != nil {
			logger.Debugf("InsertNewLine: %v", err)
			actionProcessed = false
		}
	case input.ActionInsertTab:
		mh.editor.ClearSearchHighlights()
		if err := mh.editor.InsertTab(); err != nil {
			logger.Debugf("InsertTab: %v", err)
			actionProcessed = false
		}
	case input.ActionDeleteCharBackward:
		mh.editor.ClearSearchHighlights()
		if err := mh.editor.DeleteBackward(); err != nil {
			logger.Debugf("DeleteBackward: %v", err)
			actionProcessed = false
		}
	case input.ActionDeleteCharForward:
		mh.editor.ClearSearchHighlights()
		if err := mh.editor.DeleteForward(); err != nil {
			logger.Debugf("DeleteForward: %v", err)
			actionProcessed = false
		}

	default:
		actionProcessed = false
	}

	if action != input.ActionQuit && action != input.ActionUnknown && actionProcessed {
		mh.forceQuitPending = false
	}

	return actionProcessed
}
