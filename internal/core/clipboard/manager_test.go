package clipboard

import (
	"testing"

	"github.com/seagrine/hem/internal/buffer"
	"github.com/seagrine/hem/internal/core/history"
	"github.com/seagrine/hem/internal/event"
	"github.com/seagrine/hem/internal/types"
)

// stubEditor keeps the tests off the real system clipboard.
type stubEditor struct {
	buf      buffer.Buffer
	cursor   types.Position
	events   *event.Manager
	history  *history.Manager
	selStart types.Position
	selEnd   types.Position
	hasSel   bool
}

func (s *stubEditor) GetBuffer() buffer.Buffer        { return s.buf }
func (s *stubEditor) GetCursor() types.Position       { return s.cursor }
func (s *stubEditor) SetCursor(pos types.Position)    { s.cursor = pos }
func (s *stubEditor) ClearSelection()                 { s.hasSel = false }
func (s *stubEditor) GetEventManager() *event.Manager { return s.events }
func (s *stubEditor) ScrollToCursor()                 {}
func (s *stubEditor) UseSystemClipboard() bool        { return false }
func (s *stubEditor) GetSelection() (types.Position, types.Position, bool) {
	return s.selStart, s.selEnd, s.hasSel
}
func (s *stubEditor) GetHistoryManager() *history.Manager { return s.history }

func newStubEditor(t *testing.T, content string) *stubEditor {
	t.Helper()
	buf := buffer.NewSliceBuffer()
	if content != "" {
		if _, err := buf.Insert(types.Position{Line: 0, Col: 0}, []byte(content)); err != nil {
			t.Fatalf("seeding buffer: %v", err)
		}
	}
	ed := &stubEditor{buf: buf, events: event.NewManager()}
	ed.history = history.NewManager(ed, 10)
	return ed
}

func TestYankSelection(t *testing.T) {
	ed := newStubEditor(t, "one\ntwo\nthree")
	mgr := NewManager(ed)
	ed.hasSel = true
	ed.selStart = types.Position{Line: 0, Col: 1}
	ed.selEnd = types.Position{Line: 1, Col: 2}

	done, err := mgr.YankSelection()
	if err != nil || !done {
		t.Fatalf("YankSelection: expected (true, nil), got (%v, %v)", done, err)
	}
	if got := string(mgr.Content()); got != "ne\ntw" {
		t.Errorf("register: expected %q, got %q", "ne\ntw", got)
	}
	if ed.hasSel {
		t.Error("selection: expected cleared after yank")
	}
	if got := string(ed.buf.Bytes()); got != "one\ntwo\nthree" {
		t.Errorf("buffer: yank must not modify it, got %q", got)
	}
}

func TestYankWithoutSelection(t *testing.T) {
	ed := newStubEditor(t, "text")
	mgr := NewManager(ed)

	done, err := mgr.YankSelection()
	if err != nil {
		t.Fatalf("YankSelection: unexpected error: %v", err)
	}
	if done {
		t.Error("YankSelection: expected false with no selection")
	}
}

func TestPaste(t *testing.T) {
	ed := newStubEditor(t, "hello world")
	mgr := NewManager(ed)
	mgr.SetContent([]byte("big "))
	ed.cursor = types.Position{Line: 0, Col: 6}

	done, err := mgr.Paste()
	if err != nil || !done {
		t.Fatalf("Paste: expected (true, nil), got (%v, %v)", done, err)
	}
	if got := string(ed.buf.Bytes()); got != "hello big world" {
		t.Errorf("buffer: expected %q, got %q", "hello big world", got)
	}
	if want := (types.Position{Line: 0, Col: 10}); ed.cursor != want {
		t.Errorf("cursor: expected %v, got %v", want, ed.cursor)
	}
}

func TestPasteMultiline(t *testing.T) {
	ed := newStubEditor(t, "ab")
	mgr := NewManager(ed)
	mgr.SetContent([]byte("x\nyz"))
	ed.cursor = types.Position{Line: 0, Col: 1}

	if done, err := mgr.Paste(); err != nil || !done {
		t.Fatalf("Paste: expected (true, nil), got (%v, %v)", done, err)
	}
	if got := string(ed.buf.Bytes()); got != "ax\nyzb" {
		t.Errorf("buffer: expected %q, got %q", "ax\nyzb", got)
	}
	if want := (types.Position{Line: 1, Col: 2}); ed.cursor != want {
		t.Errorf("cursor: expected end of pasted text %v, got %v", want, ed.cursor)
	}
}

func TestPasteEmptyRegister(t *testing.T) {
	ed := newStubEditor(t, "abc")
	mgr := NewManager(ed)

	done, err := mgr.Paste()
	if err != nil {
		t.Fatalf("Paste: unexpected error: %v", err)
	}
	if done {
		t.Error("Paste: expected false with an empty register")
	}
	if got := string(ed.buf.Bytes()); got != "abc" {
		t.Errorf("buffer: expected unchanged %q, got %q", "abc", got)
	}
}

// Pasting over a selection must undo as one step: both the removed
// selection and the inserted text revert together.
func TestPasteOverSelectionUndoesAtomically(t *testing.T) {
	ed := newStubEditor(t, "hello world")
	mgr := NewManager(ed)
	mgr.SetContent([]byte("there"))
	ed.hasSel = true
	ed.selStart = types.Position{Line: 0, Col: 6}
	ed.selEnd = types.Position{Line: 0, Col: 11}
	ed.cursor = ed.selEnd

	if done, err := mgr.Paste(); err != nil || !done {
		t.Fatalf("Paste: expected (true, nil), got (%v, %v)", done, err)
	}
	if got := string(ed.buf.Bytes()); got != "hello there" {
		t.Errorf("buffer: expected %q, got %q", "hello there", got)
	}

	if done, err := ed.history.Undo(); err != nil || !done {
		t.Fatalf("Undo: expected (true, nil), got (%v, %v)", done, err)
	}
	if got := string(ed.buf.Bytes()); got != "hello world" {
		t.Errorf("after undo: expected %q, got %q", "hello world", got)
	}
	if ed.history.CanUndo() {
		t.Error("CanUndo: expected false, paste-over-selection should be one step")
	}
}
