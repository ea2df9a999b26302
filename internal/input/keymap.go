package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys (arrows, Enter, Ctrl chords) to actions.
type Keymap map[tcell.Key]Action

// RuneKeymap maps printable runes bound to actions instead of insertion.
type RuneKeymap map[rune]Action

// InputProcessor translates tcell key events into ActionEvents. It is
// mode-agnostic: the mode handler interprets the action it gets back,
// including resolving the rune that follows the leader key.
type InputProcessor struct {
	keymap       Keymap
	runeKeymap   RuneKeymap
	leaderKeymap RuneKeymap
}

// NewInputProcessor creates a processor with the default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:       make(Keymap),
		runeKeymap:   make(RuneKeymap),
		leaderKeymap: make(RuneKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyPgUp] = ActionMovePageUp
	p.keymap[tcell.KeyPgDn] = ActionMovePageDown
	p.keymap[tcell.KeyHome] = ActionMoveHome
	p.keymap[tcell.KeyEnd] = ActionMoveEnd
	p.keymap[tcell.KeyEnter] = ActionInsertNewLine
	p.keymap[tcell.KeyTab] = ActionInsertTab
	p.keymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCharBackward
	p.keymap[tcell.KeyDelete] = ActionDeleteCharForward
	p.keymap[tcell.KeyEscape] = ActionQuit
	p.keymap[tcell.KeyCtrlC] = ActionQuit
	p.keymap[tcell.KeyCtrlQ] = ActionForceQuit
	p.keymap[tcell.KeyCtrlS] = ActionSave
	p.keymap[tcell.KeyCtrlZ] = ActionUndo
	p.keymap[tcell.KeyCtrlY] = ActionRedo

	// Runes bound directly; everything else inserts. The leader map
	// carries escapes for these, so the characters stay typeable.
	p.runeKeymap[':'] = ActionEnterCommandMode
	p.runeKeymap['/'] = ActionEnterFindMode

	// Runes recognized after the leader key.
	p.leaderKeymap['s'] = ActionEnterSurroundMode
	p.leaderKeymap['n'] = ActionFindNext
	p.leaderKeymap['N'] = ActionFindPrevious
	p.leaderKeymap['y'] = ActionYank
	p.leaderKeymap['p'] = ActionPaste
	p.leaderKeymap['u'] = ActionUndo
	p.leaderKeymap['r'] = ActionRedo
	p.leaderKeymap['w'] = ActionSave
	p.leaderKeymap[','] = ActionInsertRune
	p.leaderKeymap[':'] = ActionInsertRune
	p.leaderKeymap['/'] = ActionInsertRune
}

// ProcessEvent decodes a tcell key event into an ActionEvent.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()
	runeVal := ev.Rune()

	// Ctrl+letter arrives as a dedicated key code; the modifier bit is
	// redundant and varies by terminal.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}

	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action}
		}
	}

	if key == tcell.KeyRune && mod == tcell.ModNone {
		if action, ok := p.runeKeymap[runeVal]; ok {
			return ActionEvent{Action: action, Rune: runeVal}
		}
		return ActionEvent{Action: ActionInsertRune, Rune: runeVal}
	}

	return ActionEvent{Action: ActionUnknown}
}

// LeaderAction resolves the rune typed after the leader key. Unbound
// runes report false and the sequence is ignored.
func (p *InputProcessor) LeaderAction(r rune) (ActionEvent, bool) {
	action, ok := p.leaderKeymap[r]
	if !ok {
		return ActionEvent{Action: ActionUnknown}, false
	}
	return ActionEvent{Action: action, Rune: r}, true
}
