// Package input translates terminal key events into editor actions.
package input

// Action identifies an editor operation requested by a key event.
type Action int

const (
	ActionUnknown Action = iota
	ActionQuit
	ActionForceQuit
	ActionSave

	// Cursor movement.
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome
	ActionMoveEnd

	// Text modification.
	ActionInsertRune
	ActionInsertNewLine
	ActionInsertTab
	ActionDeleteCharForward
	ActionDeleteCharBackward

	// Clipboard.
	ActionYank
	ActionPaste

	// History.
	ActionUndo
	ActionRedo

	// Find.
	ActionFindNext
	ActionFindPrevious

	// Mode switching.
	ActionEnterCommandMode
	ActionEnterFindMode
	ActionEnterSurroundMode
)

// ActionEvent is a decoded key event: the action plus its payload.
type ActionEvent struct {
	Action Action
	Rune   rune // set for ActionInsertRune
}
