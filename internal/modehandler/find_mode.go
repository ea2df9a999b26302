package modehandler

import (
	"unicode/utf8"

	"github.com/seagrine/hem/internal/input"
	"github.com/seagrine/hem/internal/logger"
)

// handleActionFind edits the '/' search line, highlighting matches as
// the pattern grows.
func (mh *ModeHandler) handleActionFind(actionEvent input.ActionEvent) bool {
	actionProcessed := true
	needsUpdate := false

	switch actionEvent.Action {
	// Mode-trigger runes like '/' and ':' are ordinary characters here.
	case input.ActionInsertRune, input.ActionEnterCommandMode, input.ActionEnterFindMode:
		mh.findBuffer += string(actionEvent.Rune)
		needsUpdate = true

	case input.ActionDeleteCharBackward:
		if len(mh.findBuffer) > 0 {
			_, size := utf8.DecodeLastRuneInString(mh.findBuffer)
			mh.findBuffer = mh.findBuffer[:len(mh.findBuffer)-size]
			needsUpdate = true
		} else {
			mh.cancelFindMode()
		}

	case input.ActionInsertNewLine: // Enter: accept and jump
		term := mh.findBuffer
		mh.findBuffer = ""
		mh.setMode(ModeNormal)
		if term == "" {
			mh.editor.ClearSearchHighlights()
			mh.statusBar.ResetTemporaryMessage()
			return true
		}
		mh.lastSearchTerm = term
		mh.lastSearchForward = true
		if err := mh.editor.HighlightMatches(term); err != nil {
			mh.statusBar.SetTemporaryMessage("Invalid pattern: %v", err)
			return true
		}
		mh.executeFind(true)

	case input.ActionQuit: // Escape: cancel
		mh.cancelFindMode()

	default:
		actionProcessed = false
	}

	if needsUpdate && mh.currentMode == ModeFind {
		mh.statusBar.SetTemporaryMessage("/%s", mh.findBuffer)
		mh.refreshFindHighlights()
	}

	return actionProcessed
}

// refreshFindHighlights recomputes search highlights for the partial
// pattern. A pattern that fails to compile mid-typing just clears
// them.
func (mh *ModeHandler) refreshFindHighlights() {
	if mh.findBuffer == "" {
		mh.editor.ClearSearchHighlights()
		return
	}
	if err := mh.editor.HighlightMatches(mh.findBuffer); err != nil {
		logger.DebugTagf("find", "ModeHandler: partial pattern %q: %v", mh.findBuffer, err)
		mh.editor.ClearSearchHighlights()
	}
}

// executeFind jumps to the next match of the last search term. The
// find manager keeps its compiled pattern across edits, so repeats
// work even after highlights were cleared.
func (mh *ModeHandler) executeFind(forward bool) {
	pos, found := mh.editor.FindNext(forward)
	if !found {
		mh.statusBar.SetTemporaryMessage("Pattern not found: %s", mh.lastSearchTerm)
		return
	}
	mh.editor.SetCursor(pos)
	mh.statusBar.SetTemporaryMessage("Found: '%s'", mh.lastSearchTerm)
}

// cancelFindMode abandons the search line and its highlights.
func (mh *ModeHandler) cancelFindMode() {
	mh.setMode(ModeNormal)
	mh.findBuffer = ""
	mh.editor.ClearSearchHighlights()
	mh.statusBar.ResetTemporaryMessage()
	logger.DebugTagf("event", "ModeHandler: find canceled")
}
