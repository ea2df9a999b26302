package surrounding

import (
	"errors"
	"testing"

	"github.com/seagrine/hem/internal/buffer"
	"github.com/seagrine/hem/internal/core/history"
	"github.com/seagrine/hem/internal/event"
	"github.com/seagrine/hem/internal/surround"
	"github.com/seagrine/hem/internal/types"
)

type stubEditor struct {
	buf      buffer.Buffer
	cursor   types.Position
	events   *event.Manager
	history  *history.Manager
	selStart types.Position
	selEnd   types.Position
	hasSel   bool
	clip     []byte
	flashed  []types.HighlightRegion
}

func (s *stubEditor) GetBuffer() buffer.Buffer            { return s.buf }
func (s *stubEditor) GetCursor() types.Position           { return s.cursor }
func (s *stubEditor) SetCursor(pos types.Position)        { s.cursor = pos }
func (s *stubEditor) GetEventManager() *event.Manager     { return s.events }
func (s *stubEditor) GetHistoryManager() *history.Manager { return s.history }
func (s *stubEditor) ScrollToCursor()                     {}
func (s *stubEditor) HasSelection() bool                  { return s.hasSel }
func (s *stubEditor) ClearSelection()                     { s.hasSel = false }
func (s *stubEditor) SetClipboard(content []byte)         { s.clip = content }
func (s *stubEditor) GetSelection() (types.Position, types.Position, bool) {
	return s.selStart, s.selEnd, s.hasSel
}
func (s *stubEditor) FlashHighlight(regions []types.HighlightRegion) {
	s.flashed = regions
}

func newTestManager(t *testing.T, content string) (*stubEditor, *Manager) {
	t.Helper()
	buf := buffer.NewSliceBuffer()
	if content != "" {
		if _, err := buf.Insert(types.Position{Line: 0, Col: 0}, []byte(content)); err != nil {
			t.Fatalf("seeding buffer: %v", err)
		}
	}
	ed := &stubEditor{buf: buf, events: event.NewManager()}
	ed.history = history.NewManager(ed, 10)
	eng := surround.NewEngine(surround.NewRegistry(), 20, surround.Cover)
	return ed, NewManager(ed, eng)
}

func TestDeleteSurrounding(t *testing.T) {
	ed, m := newTestManager(t, "x (abc) y")
	ed.cursor = types.Position{Line: 0, Col: 4}

	if err := m.Delete(")"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := string(ed.buf.Bytes()); got != "x abc y" {
		t.Errorf("buffer: expected %q, got %q", "x abc y", got)
	}
	if want := (types.Position{Line: 0, Col: 2}); ed.cursor != want {
		t.Errorf("cursor: expected %v, got %v", want, ed.cursor)
	}
}

func TestDeletePaddedSurrounding(t *testing.T) {
	ed, m := newTestManager(t, "f( a )g")
	ed.cursor = types.Position{Line: 0, Col: 3}

	if err := m.Delete("("); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := string(ed.buf.Bytes()); got != "fag" {
		t.Errorf("buffer: expected %q, got %q", "fag", got)
	}
}

func TestDeleteMultiline(t *testing.T) {
	ed, m := newTestManager(t, "(a\nb)")
	ed.cursor = types.Position{Line: 0, Col: 1}

	if err := m.Delete(")"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := string(ed.buf.Bytes()); got != "a\nb" {
		t.Errorf("buffer: expected %q, got %q", "a\nb", got)
	}
	if want := (types.Position{Line: 0, Col: 0}); ed.cursor != want {
		t.Errorf("cursor: expected %v, got %v", want, ed.cursor)
	}
}

func TestDeleteUndoesAsOneStep(t *testing.T) {
	ed, m := newTestManager(t, "x (abc) y")
	ed.cursor = types.Position{Line: 0, Col: 4}

	if err := m.Delete(")"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := ed.history.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := string(ed.buf.Bytes()); got != "x (abc) y" {
		t.Errorf("buffer after undo: expected %q, got %q", "x (abc) y", got)
	}
	if ed.history.CanUndo() {
		t.Errorf("both part deletions should undo as one step")
	}

	if _, err := ed.history.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := string(ed.buf.Bytes()); got != "x abc y" {
		t.Errorf("buffer after redo: expected %q, got %q", "x abc y", got)
	}
}

func TestReplaceSurrounding(t *testing.T) {
	ed, m := newTestManager(t, `say "hi" ok`)
	ed.cursor = types.Position{Line: 0, Col: 5}

	if err := m.Replace(`"`, "'"); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got := string(ed.buf.Bytes()); got != "say 'hi' ok" {
		t.Errorf("buffer: expected %q, got %q", "say 'hi' ok", got)
	}
	if want := (types.Position{Line: 0, Col: 5}); ed.cursor != want {
		t.Errorf("cursor: expected %v, got %v", want, ed.cursor)
	}

	if _, err := ed.history.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := string(ed.buf.Bytes()); got != `say "hi" ok` {
		t.Errorf("buffer after undo: expected %q, got %q", `say "hi" ok`, got)
	}
	if ed.history.CanUndo() {
		t.Errorf("replace should undo as one step")
	}
}

func TestReplaceWithTagPrompt(t *testing.T) {
	ed, m := newTestManager(t, "(abc)")
	ed.cursor = types.Position{Line: 0, Col: 2}
	var labels []string
	m.SetPrompt(func(label string) (string, error) {
		labels = append(labels, label)
		return "div", nil
	})

	if err := m.Replace(")", "t"); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got := string(ed.buf.Bytes()); got != "<div>abc</div>" {
		t.Errorf("buffer: expected %q, got %q", "<div>abc</div>", got)
	}
	if want := (types.Position{Line: 0, Col: 5}); ed.cursor != want {
		t.Errorf("cursor: expected %v, got %v", want, ed.cursor)
	}
	if len(labels) != 1 || labels[0] != "Tag: " {
		t.Errorf("prompt labels: expected [\"Tag: \"], got %q", labels)
	}
}

func TestReplaceAbortedPromptLeavesBufferUntouched(t *testing.T) {
	ed, m := newTestManager(t, "(abc)")
	ed.cursor = types.Position{Line: 0, Col: 2}
	m.SetPrompt(func(string) (string, error) { return "", nil })

	err := m.Replace(")", "t")
	var inputErr *surround.InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got %v", err)
	}
	if got := string(ed.buf.Bytes()); got != "(abc)" {
		t.Errorf("buffer: expected %q, got %q", "(abc)", got)
	}
	if ed.history.CanUndo() {
		t.Errorf("aborted replace should record no history")
	}
}

func TestAddWordUnderCursor(t *testing.T) {
	ed, m := newTestManager(t, "hello world")
	ed.cursor = types.Position{Line: 0, Col: 7}

	if err := m.Add(`"`); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := string(ed.buf.Bytes()); got != `hello "world"` {
		t.Errorf("buffer: expected %q, got %q", `hello "world"`, got)
	}
	if want := (types.Position{Line: 0, Col: 7}); ed.cursor != want {
		t.Errorf("cursor: expected %v, got %v", want, ed.cursor)
	}
}

func TestAddSingleCharFallback(t *testing.T) {
	ed, m := newTestManager(t, "a + b")
	ed.cursor = types.Position{Line: 0, Col: 2}

	if err := m.Add(")"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := string(ed.buf.Bytes()); got != "a (+) b" {
		t.Errorf("buffer: expected %q, got %q", "a (+) b", got)
	}
}

func TestAddSelection(t *testing.T) {
	ed, m := newTestManager(t, "abc def")
	ed.selStart = types.Position{Line: 0, Col: 0}
	ed.selEnd = types.Position{Line: 0, Col: 3}
	ed.hasSel = true

	if err := m.Add("("); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := string(ed.buf.Bytes()); got != "( abc ) def" {
		t.Errorf("buffer: expected %q, got %q", "( abc ) def", got)
	}
	if want := (types.Position{Line: 0, Col: 2}); ed.cursor != want {
		t.Errorf("cursor: expected %v, got %v", want, ed.cursor)
	}
	if ed.hasSel {
		t.Errorf("selection should clear after add")
	}
}

func TestAddLinewiseSelection(t *testing.T) {
	ed, m := newTestManager(t, "  foo\n  bar\nbaz")
	ed.selStart = types.Position{Line: 0, Col: 0}
	ed.selEnd = types.Position{Line: 2, Col: 0}
	ed.hasSel = true

	if err := m.Add(")"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := string(ed.buf.Bytes()); got != "  (foo\n  bar)\nbaz" {
		t.Errorf("buffer: expected %q, got %q", "  (foo\n  bar)\nbaz", got)
	}
	if want := (types.Position{Line: 0, Col: 3}); ed.cursor != want {
		t.Errorf("cursor: expected %v, got %v", want, ed.cursor)
	}
}

func TestAddInteractiveSurrounding(t *testing.T) {
	ed, m := newTestManager(t, "val x")
	ed.cursor = types.Position{Line: 0, Col: 1}
	answers := []string{"<<", ">>"}
	m.SetPrompt(func(string) (string, error) {
		next := answers[0]
		answers = answers[1:]
		return next, nil
	})

	if err := m.Add("?"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := string(ed.buf.Bytes()); got != "<<val>> x" {
		t.Errorf("buffer: expected %q, got %q", "<<val>> x", got)
	}
	if want := (types.Position{Line: 0, Col: 2}); ed.cursor != want {
		t.Errorf("cursor: expected %v, got %v", want, ed.cursor)
	}
}

func TestAddOnEmptyLine(t *testing.T) {
	_, m := newTestManager(t, "")
	err := m.Add("(")
	var inputErr *surround.InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got %v", err)
	}
}

func TestFindCyclesThroughParts(t *testing.T) {
	ed, m := newTestManager(t, "x (abc) y")
	ed.cursor = types.Position{Line: 0, Col: 4}

	want := []types.Position{
		{Line: 0, Col: 6},
		{Line: 0, Col: 2}, // wrapped within the candidate
		{Line: 0, Col: 6},
	}
	for i, w := range want {
		if err := m.Find(")"); err != nil {
			t.Fatalf("Find #%d: %v", i, err)
		}
		if ed.cursor != w {
			t.Errorf("Find #%d: expected cursor %v, got %v", i, w, ed.cursor)
		}
	}
}

func TestFindLeft(t *testing.T) {
	ed, m := newTestManager(t, "x (abc) y")
	ed.cursor = types.Position{Line: 0, Col: 4}

	if err := m.FindLeft(")"); err != nil {
		t.Fatalf("FindLeft: %v", err)
	}
	if want := (types.Position{Line: 0, Col: 2}); ed.cursor != want {
		t.Errorf("cursor: expected %v, got %v", want, ed.cursor)
	}
}

func TestFindDirectionBounds(t *testing.T) {
	ed, m := newTestManager(t, "x (abc) y")
	ed.cursor = types.Position{Line: 0, Col: 8}

	var notFound *surround.NotFoundError
	if err := m.Find(")"); !errors.As(err, &notFound) {
		t.Errorf("Find past the pair: expected NotFoundError, got %v", err)
	}
	if err := m.FindLeft(")"); err != nil {
		t.Fatalf("FindLeft: %v", err)
	}
	if want := (types.Position{Line: 0, Col: 6}); ed.cursor != want {
		t.Errorf("cursor: expected %v, got %v", want, ed.cursor)
	}
}

func TestFindMultibyteColumns(t *testing.T) {
	ed, m := newTestManager(t, "é(a)")
	ed.cursor = types.Position{Line: 0, Col: 0}

	if err := m.Find(")"); err != nil {
		t.Fatalf("Find: %v", err)
	}
	if want := (types.Position{Line: 0, Col: 1}); ed.cursor != want {
		t.Errorf("cursor: expected %v, got %v", want, ed.cursor)
	}
}

func TestHighlightFlashesParts(t *testing.T) {
	ed, m := newTestManager(t, "(abc)")
	ed.cursor = types.Position{Line: 0, Col: 2}

	if err := m.Highlight(")"); err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	want := []types.HighlightRegion{
		{Start: types.Position{Line: 0, Col: 0}, End: types.Position{Line: 0, Col: 1}, Type: types.HighlightSurround},
		{Start: types.Position{Line: 0, Col: 4}, End: types.Position{Line: 0, Col: 5}, Type: types.HighlightSurround},
	}
	if len(ed.flashed) != len(want) {
		t.Fatalf("regions: expected %d, got %d", len(want), len(ed.flashed))
	}
	for i := range want {
		if ed.flashed[i] != want[i] {
			t.Errorf("region %d: expected %+v, got %+v", i, want[i], ed.flashed[i])
		}
	}
	if got := string(ed.buf.Bytes()); got != "(abc)" {
		t.Errorf("highlight must not modify the buffer, got %q", got)
	}
}

func TestYankBody(t *testing.T) {
	ed, m := newTestManager(t, `say "héllo" now`)
	ed.cursor = types.Position{Line: 0, Col: 6}

	count, err := m.Yank(`"`)
	if err != nil {
		t.Fatalf("Yank: %v", err)
	}
	if count != 5 {
		t.Errorf("count: expected 5 runes, got %d", count)
	}
	if got := string(ed.clip); got != "héllo" {
		t.Errorf("clipboard: expected %q, got %q", "héllo", got)
	}
	if want := (types.Position{Line: 0, Col: 6}); ed.cursor != want {
		t.Errorf("yank must not move the cursor, got %v", ed.cursor)
	}
}

func TestNotFoundLeavesBufferUntouched(t *testing.T) {
	ed, m := newTestManager(t, "plain text")
	ed.cursor = types.Position{Line: 0, Col: 3}

	err := m.Delete("(")
	var notFound *surround.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if got := string(ed.buf.Bytes()); got != "plain text" {
		t.Errorf("buffer: expected %q, got %q", "plain text", got)
	}
	if ed.history.CanUndo() {
		t.Errorf("failed delete should record no history")
	}
}

func TestSurroundAppliedEvent(t *testing.T) {
	ed, m := newTestManager(t, "x (abc) y")
	ed.cursor = types.Position{Line: 0, Col: 4}

	var applied []event.SurroundAppliedData
	ed.events.Subscribe(event.TypeSurroundApplied, func(e event.Event) bool {
		applied = append(applied, e.Data.(event.SurroundAppliedData))
		return false
	})

	if err := m.Delete(")"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(applied) != 1 {
		t.Fatalf("events: expected 1, got %d", len(applied))
	}
	if applied[0].Action != "delete" || applied[0].Identifier != ")" {
		t.Errorf("event: expected delete/\")\", got %s/%q", applied[0].Action, applied[0].Identifier)
	}
}
