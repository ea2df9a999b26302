package modehandler

import (
	"strings"
	"unicode/utf8"

	"github.com/seagrine/hem/internal/core/find"
	"github.com/seagrine/hem/internal/input"
	"github.com/seagrine/hem/internal/logger"
)

// handleActionCommand edits and executes the ':' command line.
func (mh *ModeHandler) handleActionCommand(actionEvent input.ActionEvent) bool {
	actionProcessed := true
	needsUpdate := false

	switch actionEvent.Action {
	// Mode-trigger runes like ':' and '/' are ordinary characters here.
	case input.ActionInsertRune, input.ActionEnterCommandMode, input.ActionEnterFindMode:
		mh.cmdBuffer += string(actionEvent.Rune)
		needsUpdate = true

	case input.ActionDeleteCharBackward:
		if len(mh.cmdBuffer) > 0 {
			_, size := utf8.DecodeLastRuneInString(mh.cmdBuffer)
			mh.cmdBuffer = mh.cmdBuffer[:len(mh.cmdBuffer)-size]
			needsUpdate = true
		} else {
			mh.setMode(ModeNormal)
			mh.statusBar.ResetTemporaryMessage()
		}

	case input.ActionInsertNewLine: // Enter: execute
		mh.executeCommand()
		mh.setMode(ModeNormal)

	case input.ActionQuit: // Escape: cancel
		mh.setMode(ModeNormal)
		mh.cmdBuffer = ""
		mh.statusBar.ResetTemporaryMessage()

	default:
		actionProcessed = false
	}

	if needsUpdate && mh.currentMode == ModeCommand {
		mh.statusBar.SetTemporaryMessage(":%s", mh.cmdBuffer)
	}

	return actionProcessed
}

// executeCommand parses and runs the buffered command line.
func (mh *ModeHandler) executeCommand() {
	cmdStr := strings.TrimSpace(mh.cmdBuffer)
	mh.cmdBuffer = ""
	if cmdStr == "" {
		mh.statusBar.ResetTemporaryMessage()
		return
	}

	// Substitute keeps its raw text: the pattern may contain spaces.
	if strings.HasPrefix(cmdStr, "s/") {
		mh.executeSubstitute(cmdStr)
		return
	}

	parts := strings.Fields(cmdStr)
	cmdName := parts[0]
	args := parts[1:]

	cmdFunc, exists := mh.commands[cmdName]
	if !exists {
		mh.statusBar.SetTemporaryMessage("Unknown command: %s", cmdName)
		return
	}
	logger.DebugTagf("event", "ModeHandler: executing :%s %v", cmdName, args)
	if err := cmdFunc(args); err != nil {
		mh.statusBar.SetTemporaryMessage("Error executing command %q: %v", cmdName, err)
	}
}

// executeSubstitute handles :s/pattern/replacement/[g] on the cursor
// line.
func (mh *ModeHandler) executeSubstitute(cmdStr string) {
	pattern, replacement, global, err := find.ParseSubstituteCommand(strings.TrimPrefix(cmdStr, "s"))
	if err != nil {
		mh.statusBar.SetTemporaryMessage("Substitute: %v", err)
		return
	}

	count, err := mh.editor.Replace(pattern, replacement, global)
	if err != nil {
		mh.statusBar.SetTemporaryMessage("Substitute failed: %v", err)
		return
	}
	if count == 0 {
		mh.statusBar.SetTemporaryMessage("Pattern not found: %s", pattern)
		return
	}
	mh.statusBar.SetTemporaryMessage("Replaced %d occurrence(s)", count)
}
