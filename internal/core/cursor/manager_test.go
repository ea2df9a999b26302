package cursor

import (
	"testing"

	"github.com/seagrine/hem/internal/buffer"
	"github.com/seagrine/hem/internal/types"
)

type stubEditor struct {
	buf       buffer.Buffer
	tabWidth  int
	scrollOff int
}

func (s *stubEditor) GetBuffer() buffer.Buffer { return s.buf }
func (s *stubEditor) TabWidth() int            { return s.tabWidth }
func (s *stubEditor) ScrollOff() int           { return s.scrollOff }

func newStubEditor(t *testing.T, content string) *stubEditor {
	t.Helper()
	buf := buffer.NewSliceBuffer()
	if content != "" {
		if _, err := buf.Insert(types.Position{Line: 0, Col: 0}, []byte(content)); err != nil {
			t.Fatalf("seeding buffer: %v", err)
		}
	}
	return &stubEditor{buf: buf, tabWidth: 4, scrollOff: 0}
}

func TestSetPositionClamps(t *testing.T) {
	ed := newStubEditor(t, "héllo\nworld")
	mgr := NewManager(ed)

	tests := []struct {
		name string
		set  types.Position
		want types.Position
	}{
		{"in range", types.Position{Line: 1, Col: 3}, types.Position{Line: 1, Col: 3}},
		{"negative", types.Position{Line: -2, Col: -5}, types.Position{Line: 0, Col: 0}},
		{"line past end", types.Position{Line: 9, Col: 0}, types.Position{Line: 1, Col: 0}},
		{"col past rune count", types.Position{Line: 0, Col: 20}, types.Position{Line: 0, Col: 5}},
	}
	for _, tt := range tests {
		mgr.SetPosition(tt.set)
		if got := mgr.GetPosition(); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestMoveCursorWrapsAcrossLines(t *testing.T) {
	ed := newStubEditor(t, "ab\ncd")
	mgr := NewManager(ed)

	// Right from the end of line 0 wraps to the start of line 1.
	mgr.SetPosition(types.Position{Line: 0, Col: 2})
	mgr.MoveCursor(0, 1)
	if want := (types.Position{Line: 1, Col: 0}); mgr.GetPosition() != want {
		t.Errorf("wrap right: expected %v, got %v", want, mgr.GetPosition())
	}

	// Left from column 0 wraps to the end of the previous line.
	mgr.MoveCursor(0, -1)
	if want := (types.Position{Line: 0, Col: 2}); mgr.GetPosition() != want {
		t.Errorf("wrap left: expected %v, got %v", want, mgr.GetPosition())
	}

	// No wrap at the buffer edges.
	mgr.SetPosition(types.Position{Line: 0, Col: 0})
	mgr.MoveCursor(0, -1)
	if want := (types.Position{Line: 0, Col: 0}); mgr.GetPosition() != want {
		t.Errorf("left at start: expected %v, got %v", want, mgr.GetPosition())
	}
	mgr.SetPosition(types.Position{Line: 1, Col: 2})
	mgr.MoveCursor(0, 1)
	if want := (types.Position{Line: 1, Col: 2}); mgr.GetPosition() != want {
		t.Errorf("right at end: expected %v, got %v", want, mgr.GetPosition())
	}
}

func TestMoveToLineStartAndEnd(t *testing.T) {
	ed := newStubEditor(t, "    indented\n\nnaïve")
	mgr := NewManager(ed)

	mgr.SetPosition(types.Position{Line: 0, Col: 9})
	mgr.MoveToLineStart()
	if want := (types.Position{Line: 0, Col: 4}); mgr.GetPosition() != want {
		t.Errorf("line start: expected first non-whitespace %v, got %v", want, mgr.GetPosition())
	}

	mgr.SetPosition(types.Position{Line: 1, Col: 0})
	mgr.MoveToLineStart()
	if want := (types.Position{Line: 1, Col: 0}); mgr.GetPosition() != want {
		t.Errorf("blank line start: expected %v, got %v", want, mgr.GetPosition())
	}

	mgr.SetPosition(types.Position{Line: 2, Col: 0})
	mgr.MoveToLineEnd()
	if want := (types.Position{Line: 2, Col: 5}); mgr.GetPosition() != want {
		t.Errorf("line end: expected rune count %v, got %v", want, mgr.GetPosition())
	}
}

func TestScrollToCursorVertical(t *testing.T) {
	content := ""
	for i := 0; i < 40; i++ {
		if i > 0 {
			content += "\n"
		}
		content += "line"
	}
	ed := newStubEditor(t, content)
	ed.scrollOff = 2
	mgr := NewManager(ed)
	mgr.SetViewSize(80, 10)

	mgr.SetPosition(types.Position{Line: 25, Col: 0})
	top, _ := mgr.GetViewport()
	// Cursor line must sit at least scrollOff above the bottom edge.
	if 25 >= top+10-2 || 25 < top+2 {
		t.Errorf("scroll down: line 25 outside comfort zone, viewportTop=%d", top)
	}

	mgr.SetPosition(types.Position{Line: 3, Col: 0})
	top, _ = mgr.GetViewport()
	if 3 < top+2 && top != 0 {
		t.Errorf("scroll up: line 3 above comfort zone, viewportTop=%d", top)
	}
	if top > 3 {
		t.Errorf("scroll up: viewportTop %d hides cursor line 3", top)
	}
}

func TestScrollToCursorHorizontal(t *testing.T) {
	long := make([]byte, 120)
	for i := range long {
		long[i] = 'x'
	}
	ed := newStubEditor(t, string(long))
	mgr := NewManager(ed)
	mgr.SetViewSize(20, 5) // gutter for 1 line = 2 cells, text width 18

	mgr.SetPosition(types.Position{Line: 0, Col: 50})
	_, left := mgr.GetViewport()
	if left != 50-18+1 {
		t.Errorf("scroll right: expected viewportLeft %d, got %d", 50-18+1, left)
	}

	mgr.SetPosition(types.Position{Line: 0, Col: 10})
	_, left = mgr.GetViewport()
	if left != 10 {
		t.Errorf("scroll left: expected viewportLeft 10, got %d", left)
	}
}

func TestVisualCol(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		runeCol  int
		tabWidth int
		want     int
	}{
		{"ascii", "hello", 3, 4, 3},
		{"tab at start", "\tab", 1, 4, 4},
		{"after tab", "\tab", 2, 4, 5},
		{"tab mid line", "ab\tcd", 3, 4, 4},
		{"tab width 8", "\tx", 1, 8, 8},
		{"wide runes", "日本語", 2, 4, 4},
		{"mixed", "a日b", 2, 4, 3},
		{"zero col", "anything", 0, 4, 0},
	}
	for _, tt := range tests {
		if got := VisualCol([]byte(tt.line), tt.runeCol, tt.tabWidth); got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestGutterWidth(t *testing.T) {
	tests := []struct {
		lineCount int
		want      int
	}{
		{0, 2},
		{1, 2},
		{9, 2},
		{10, 3},
		{99, 3},
		{100, 4},
		{9999, 5},
	}
	for _, tt := range tests {
		if got := GutterWidth(tt.lineCount); got != tt.want {
			t.Errorf("GutterWidth(%d): expected %d, got %d", tt.lineCount, tt.want, got)
		}
	}
}
