package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestProcessEvent(t *testing.T) {
	p := NewInputProcessor()

	tests := []struct {
		name   string
		ev     *tcell.EventKey
		action Action
		r      rune
	}{
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), ActionMoveUp, 0},
		{"shift arrow", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModShift), ActionMoveRight, 0},
		{"plain rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), ActionInsertRune, 'x'},
		{"colon enters command mode", tcell.NewEventKey(tcell.KeyRune, ':', tcell.ModNone), ActionEnterCommandMode, ':'},
		{"slash enters find mode", tcell.NewEventKey(tcell.KeyRune, '/', tcell.ModNone), ActionEnterFindMode, '/'},
		{"escape quits", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionQuit, 0},
		{"ctrl-s saves", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), ActionSave, 0},
		{"ctrl-q force quits", tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl), ActionForceQuit, 0},
		{"ctrl-z undoes", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), ActionUndo, 0},
		{"tab inserts", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), ActionInsertTab, 0},
		{"enter breaks line", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), ActionInsertNewLine, 0},
		{"backspace deletes", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), ActionDeleteCharBackward, 0},
		{"alt rune ignored", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), ActionUnknown, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ProcessEvent(tt.ev)
			if got.Action != tt.action {
				t.Errorf("action: expected %v, got %v", tt.action, got.Action)
			}
			if tt.action == ActionInsertRune && got.Rune != tt.r {
				t.Errorf("rune: expected %q, got %q", tt.r, got.Rune)
			}
		})
	}
}

func TestLeaderAction(t *testing.T) {
	p := NewInputProcessor()

	tests := []struct {
		r      rune
		action Action
		ok     bool
	}{
		{'s', ActionEnterSurroundMode, true},
		{'n', ActionFindNext, true},
		{'N', ActionFindPrevious, true},
		{'y', ActionYank, true},
		{'p', ActionPaste, true},
		{'u', ActionUndo, true},
		{'r', ActionRedo, true},
		{'w', ActionSave, true},
		{',', ActionInsertRune, true},
		{':', ActionInsertRune, true},
		{'/', ActionInsertRune, true},
		{'z', ActionUnknown, false},
	}

	for _, tt := range tests {
		got, ok := p.LeaderAction(tt.r)
		if ok != tt.ok {
			t.Errorf("LeaderAction(%q) ok: expected %v, got %v", tt.r, tt.ok, ok)
			continue
		}
		if ok && got.Action != tt.action {
			t.Errorf("LeaderAction(%q): expected %v, got %v", tt.r, tt.action, got.Action)
		}
		if ok && got.Action == ActionInsertRune && got.Rune != tt.r {
			t.Errorf("LeaderAction(%q) rune: expected %q, got %q", tt.r, tt.r, got.Rune)
		}
	}
}
