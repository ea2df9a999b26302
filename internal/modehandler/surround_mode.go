package modehandler

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/seagrine/hem/internal/config"
	"github.com/seagrine/hem/internal/logger"
)

// surroundStage tracks how far through a surround sequence input has
// progressed.
type surroundStage int

const (
	stageOperation surroundStage = iota // waiting for a/d/r/f/F/h/y
	stageTarget                         // waiting for the surrounding identifier
	stageReplacement                    // replace only: waiting for the new identifier
)

// pendingSurround is the in-flight surround sequence. The deadline is
// refreshed on every accepted key and checked lazily on the next one.
type pendingSurround struct {
	stage    surroundStage
	op       rune
	target   string
	deadline time.Time
}

// enterSurroundMode starts collecting a surround sequence.
func (mh *ModeHandler) enterSurroundMode() {
	mh.editor.ClearSelection()
	mh.setMode(ModeSurround)
	mh.pending = pendingSurround{
		stage:    stageOperation,
		deadline: time.Now().Add(config.SurroundInputTimeout),
	}
	mh.statusBar.SetPendingInput("s")
}

// handleActionSurround consumes raw key events for the surround
// sequence. Identifiers can be any printable rune, including ones
// bound elsewhere, so decoding through the keymap would get in the
// way.
func (mh *ModeHandler) handleActionSurround(ev *tcell.EventKey) bool {
	if time.Now().After(mh.pending.deadline) {
		mh.cancelSurround("Surround canceled (timeout)")
		return true
	}
	if ev.Key() != tcell.KeyRune {
		if ev.Key() == tcell.KeyEscape {
			mh.cancelSurround("Surround canceled")
		} else {
			mh.cancelSurround("Surround canceled (expected a character)")
		}
		return true
	}

	r := ev.Rune()
	mh.pending.deadline = time.Now().Add(config.SurroundInputTimeout)

	switch mh.pending.stage {
	case stageOperation:
		switch r {
		case 'a', 'd', 'r', 'f', 'F', 'h', 'y':
			mh.pending.op = r
			mh.pending.stage = stageTarget
			mh.statusBar.SetPendingInput("s" + string(r))
		default:
			mh.cancelSurround("Unknown surround operation %q", r)
		}

	case stageTarget:
		if mh.pending.op == 'r' {
			mh.pending.target = string(r)
			mh.pending.stage = stageReplacement
			mh.statusBar.SetPendingInput("sr" + string(r))
			return true
		}
		mh.runSurround(mh.pending.op, string(r), "")

	case stageReplacement:
		mh.runSurround('r', mh.pending.target, string(r))
	}

	return true
}

// runSurround executes a completed surround sequence and returns to
// normal mode.
func (mh *ModeHandler) runSurround(op rune, id, replacement string) {
	mh.finishSurround()
	logger.DebugTagf("event", "ModeHandler: surround %c id=%q replacement=%q", op, id, replacement)

	var err error
	switch op {
	case 'a':
		err = mh.editor.SurroundAdd(id)
	case 'd':
		err = mh.editor.SurroundDelete(id)
	case 'r':
		err = mh.editor.SurroundReplace(id, replacement)
	case 'f':
		err = mh.editor.SurroundFind(id)
	case 'F':
		err = mh.editor.SurroundFindLeft(id)
	case 'h':
		err = mh.editor.SurroundHighlight(id)
	case 'y':
		var n int
		n, err = mh.editor.SurroundYank(id)
		if err == nil {
			mh.statusBar.SetTemporaryMessage("Yanked %d characters", n)
		}
	}
	if err != nil {
		mh.statusBar.SetTemporaryMessage("%s", err)
	}
}

// cancelSurround abandons the pending sequence with a status message.
func (mh *ModeHandler) cancelSurround(format string, args ...interface{}) {
	mh.finishSurround()
	mh.statusBar.SetTemporaryMessage(format, args...)
}

func (mh *ModeHandler) finishSurround() {
	mh.pending = pendingSurround{}
	mh.statusBar.SetPendingInput("")
	mh.setMode(ModeNormal)
}
