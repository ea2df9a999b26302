// Package surrounding glues the surround engine to the editor: it
// snapshots the buffer, converts between editor and engine coordinates,
// applies the computed delimiter edits as targeted buffer mutations, and
// records them in history as a single step.
package surrounding

import (
	"bytes"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/seagrine/hem/internal/buffer"
	"github.com/seagrine/hem/internal/core/history"
	"github.com/seagrine/hem/internal/core/text"
	"github.com/seagrine/hem/internal/event"
	"github.com/seagrine/hem/internal/logger"
	"github.com/seagrine/hem/internal/surround"
	"github.com/seagrine/hem/internal/types"
	"github.com/seagrine/hem/internal/utils"
)

// EditorInterface defines methods the surrounding manager needs from the
// editor.
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	GetCursor() types.Position
	SetCursor(types.Position)
	GetEventManager() *event.Manager
	GetHistoryManager() *history.Manager
	ScrollToCursor()
	HasSelection() bool
	GetSelection() (start, end types.Position, ok bool)
	ClearSelection()
	SetClipboard(content []byte)
	FlashHighlight(regions []types.HighlightRegion)
}

// Manager runs surrounding operations against the editor state.
type Manager struct {
	editor EditorInterface
	engine *surround.Engine
	prompt surround.PromptFunc
}

// NewManager creates a surrounding manager around an engine.
func NewManager(editor EditorInterface, engine *surround.Engine) *Manager {
	return &Manager{editor: editor, engine: engine}
}

// Engine exposes the engine for configuration and spec registration.
func (m *Manager) Engine() *surround.Engine { return m.engine }

// SetPrompt installs the function used to collect interactive input
// (tag names, function names, "?" sides).
func (m *Manager) SetPrompt(prompt surround.PromptFunc) { m.prompt = prompt }

// Add surrounds the active selection, or the identifier word under the
// cursor, with id's rendered delimiters.
func (m *Manager) Add(id string) error {
	spec, err := m.engine.Registry().Spec(id, m.prompt)
	if err != nil {
		return err
	}
	left, right, err := spec.Output.Render(m.prompt)
	if err != nil {
		return err
	}
	bodyStart, bodyEnd, err := m.addBody()
	if err != nil {
		return err
	}

	r := m.newRecorder()
	// Right side first so the left insertion point stays valid.
	if _, err := r.insertAt(bodyEnd, right); err != nil {
		return err
	}
	info, err := r.insertAt(bodyStart, left)
	if err != nil {
		return err
	}
	r.commit(m.editor.GetHistoryManager())

	m.finish("add", id, info.NewEndPosition)
	return nil
}

// Delete removes both delimiter parts of id's surrounding around the
// cursor, leaving the body in place.
func (m *Manager) Delete(id string) error {
	c, err := m.find(id, m.engine.Method())
	if err != nil {
		return err
	}

	lStart, lEnd := m.partRange(c.Left)
	rStart, rEnd := m.partRange(c.Right)

	r := m.newRecorder()
	if err := r.deleteRange(rStart, rEnd); err != nil {
		return err
	}
	if err := r.deleteRange(lStart, lEnd); err != nil {
		return err
	}
	r.commit(m.editor.GetHistoryManager())

	m.finish("delete", id, lStart)
	return nil
}

// Replace swaps fromID's delimiters around the cursor for toID's
// rendered output. Interactive input is collected before the first
// mutation, so an aborted prompt leaves the buffer untouched.
func (m *Manager) Replace(fromID, toID string) error {
	c, err := m.find(fromID, m.engine.Method())
	if err != nil {
		return err
	}
	spec, err := m.engine.Registry().Spec(toID, m.prompt)
	if err != nil {
		return err
	}
	left, right, err := spec.Output.Render(m.prompt)
	if err != nil {
		return err
	}

	lStart, lEnd := m.partRange(c.Left)
	rStart, rEnd := m.partRange(c.Right)

	r := m.newRecorder()
	if err := r.deleteRange(rStart, rEnd); err != nil {
		return err
	}
	if _, err := r.insertAt(rStart, right); err != nil {
		return err
	}
	if err := r.deleteRange(lStart, lEnd); err != nil {
		return err
	}
	info, err := r.insertAt(lStart, left)
	if err != nil {
		return err
	}
	r.commit(m.editor.GetHistoryManager())

	m.finish("replace", toID, info.NewEndPosition)
	return nil
}

// Find moves the cursor to the nearest delimiter boundary of id's
// surrounding at or after the cursor, cycling through the parts on
// repeated calls.
func (m *Manager) Find(id string) error {
	return m.findMove("find", id, surround.CoverOrNext, true)
}

// FindLeft is Find toward the start of the buffer.
func (m *Manager) FindLeft(id string) error {
	return m.findMove("find_left", id, surround.CoverOrPrev, false)
}

func (m *Manager) findMove(action, id string, method surround.Method, forward bool) error {
	c, err := m.find(id, method)
	if err != nil {
		return err
	}

	cursor := m.editor.GetCursor()
	targets := m.partTargets(c)
	var picked types.Position
	if forward {
		picked = targets[0]
		for _, t := range targets {
			if t.After(cursor) {
				picked = t
				break
			}
		}
	} else {
		picked = targets[len(targets)-1]
		for i := len(targets) - 1; i >= 0; i-- {
			if targets[i].Before(cursor) {
				picked = targets[i]
				break
			}
		}
	}

	m.editor.SetCursor(picked)
	m.editor.ScrollToCursor()
	m.dispatchApplied(action, id, picked)
	return nil
}

// Highlight flashes both delimiter parts of id's surrounding.
func (m *Manager) Highlight(id string) error {
	c, err := m.find(id, m.engine.Method())
	if err != nil {
		return err
	}

	lStart, lEnd := m.partRange(c.Left)
	rStart, rEnd := m.partRange(c.Right)
	m.editor.FlashHighlight([]types.HighlightRegion{
		{Start: lStart, End: lEnd, Type: types.HighlightSurround},
		{Start: rStart, End: rEnd, Type: types.HighlightSurround},
	})

	m.dispatchApplied("highlight", id, lStart)
	return nil
}

// Yank copies the text between id's delimiters into the clipboard
// register, without moving the cursor. Returns the rune count.
func (m *Manager) Yank(id string) (int, error) {
	lines := m.editor.GetBuffer().Lines()
	body, c, err := m.engine.Yank(lines, m.refPosition(), id, m.prompt)
	if err != nil {
		return 0, err
	}

	m.editor.SetClipboard(body)
	m.dispatchApplied("yank", id, m.editorPos(c.Left.From))
	logger.DebugTagf("surround", "Yanked %d byte(s) from %q body", len(body), id)
	return utf8.RuneCount(body), nil
}

// find runs an engine search from the cursor over the current buffer.
func (m *Manager) find(id string, method surround.Method) (surround.Candidate, error) {
	lines := m.editor.GetBuffer().Lines()
	return m.engine.FindWith(lines, m.refPosition(), id, method, m.prompt)
}

// finish applies the post-edit editor state shared by the mutating
// operations.
func (m *Manager) finish(action, id string, cursor types.Position) {
	m.editor.ClearSelection()
	m.editor.SetCursor(cursor)
	m.editor.ScrollToCursor()
	m.dispatchApplied(action, id, cursor)
	logger.DebugTagf("surround", "%s %q done, cursor %v", action, id, cursor)
}

func (m *Manager) dispatchApplied(action, id string, pos types.Position) {
	if ev := m.editor.GetEventManager(); ev != nil {
		ev.Dispatch(event.TypeSurroundApplied, event.SurroundAppliedData{
			Action:     action,
			Identifier: id,
			Position:   pos,
		})
	}
}

// refPosition converts the cursor to the engine's 1-based line, byte
// column coordinates.
func (m *Manager) refPosition() surround.Position {
	pos := m.editor.GetCursor()
	line, err := m.editor.GetBuffer().Line(pos.Line)
	if err != nil {
		return surround.Position{Line: pos.Line + 1}
	}
	off := utils.RuneIndexToByteOffset(line, pos.Col)
	if off < 0 {
		off = len(line)
	}
	return surround.Position{Line: pos.Line + 1, Col: off}
}

// editorPos converts an engine position to editor coordinates. Byte
// offsets inside a multi-byte rune resolve to that rune's index.
func (m *Manager) editorPos(p surround.Position) types.Position {
	line, err := m.editor.GetBuffer().Line(p.Line - 1)
	if err != nil {
		return types.Position{Line: p.Line - 1}
	}
	return types.Position{Line: p.Line - 1, Col: utils.ByteOffsetToRuneIndex(line, p.Col)}
}

// editorPosAfter converts the position one byte past p, stepping over
// the joining newline when p sits on it.
func (m *Manager) editorPosAfter(p surround.Position) types.Position {
	line, err := m.editor.GetBuffer().Line(p.Line - 1)
	if err != nil {
		return types.Position{Line: p.Line - 1}
	}
	if p.Col >= len(line) {
		return types.Position{Line: p.Line, Col: 0}
	}
	return types.Position{Line: p.Line - 1, Col: utils.ByteOffsetToRuneIndex(line, p.Col+1)}
}

// partRange converts an engine span to an editor [start, end) range.
// Conversions read the buffer, so callers convert before mutating.
func (m *Manager) partRange(span surround.Span) (types.Position, types.Position) {
	return m.editorPos(span.From), m.editorPosAfter(span.To)
}

// partTargets lists the candidate's part boundary positions in document
// order, deduplicated.
func (m *Manager) partTargets(c surround.Candidate) []types.Position {
	raw := []types.Position{
		m.editorPos(c.Left.From),
		m.editorPos(c.Left.To),
		m.editorPos(c.Right.From),
		m.editorPos(c.Right.To),
	}
	sort.Slice(raw, func(i, j int) bool { return raw[i].Before(raw[j]) })
	targets := raw[:1]
	for _, p := range raw[1:] {
		if p != targets[len(targets)-1] {
			targets = append(targets, p)
		}
	}
	return targets
}

// addBody resolves the span the add operation surrounds: the active
// selection (whole-line selections shrink to their text), or the
// identifier word under the cursor.
func (m *Manager) addBody() (types.Position, types.Position, error) {
	if start, end, ok := m.editor.GetSelection(); ok {
		if start.Col == 0 && end.Col == 0 && end.Line > start.Line {
			return m.linewiseBody(start.Line, end.Line-1)
		}
		return start, end, nil
	}
	return m.wordBody()
}

// linewiseBody shrinks a whole-line range so the delimiters land after
// the indentation and before trailing whitespace. Blank edge lines are
// excluded.
func (m *Manager) linewiseBody(firstLine, lastLine int) (types.Position, types.Position, error) {
	buf := m.editor.GetBuffer()

	for firstLine < lastLine {
		if line, err := buf.Line(firstLine); err == nil && len(bytes.TrimLeft(line, " \t")) > 0 {
			break
		}
		firstLine++
	}
	for lastLine > firstLine {
		if line, err := buf.Line(lastLine); err == nil && len(bytes.TrimLeft(line, " \t")) > 0 {
			break
		}
		lastLine--
	}

	firstTxt, err := buf.Line(firstLine)
	if err != nil {
		return types.Position{}, types.Position{}, err
	}
	lastTxt, err := buf.Line(lastLine)
	if err != nil {
		return types.Position{}, types.Position{}, err
	}

	endCol := trailingStart(lastTxt)
	if endCol == 0 {
		return types.Position{}, types.Position{}, &surround.InputError{Reason: "selection contains no text to surround"}
	}
	start := types.Position{Line: firstLine, Col: indentRunes(firstTxt)}
	end := types.Position{Line: lastLine, Col: endCol}
	return start, end, nil
}

// wordBody finds the identifier word under the cursor, falling back to
// the single character there.
func (m *Manager) wordBody() (types.Position, types.Position, error) {
	pos := m.editor.GetCursor()
	line, err := m.editor.GetBuffer().Line(pos.Line)
	if err != nil {
		return types.Position{}, types.Position{}, err
	}
	runes := []rune(string(line))
	if len(runes) == 0 {
		return types.Position{}, types.Position{}, &surround.InputError{Reason: "nothing under the cursor to surround"}
	}
	col := pos.Col
	if col >= len(runes) {
		col = len(runes) - 1
	}

	start, end := col, col+1
	if isWordRune(runes[col]) {
		for start > 0 && isWordRune(runes[start-1]) {
			start--
		}
		for end < len(runes) && isWordRune(runes[end]) {
			end++
		}
	}
	return types.Position{Line: pos.Line, Col: start}, types.Position{Line: pos.Line, Col: end}, nil
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// indentRunes counts the leading space and tab runes of line.
func indentRunes(line []byte) int {
	n := 0
	for _, b := range line {
		if b != ' ' && b != '\t' {
			break
		}
		n++
	}
	return n
}

// trailingStart returns the rune column just past the last non-blank
// character of line.
func trailingStart(line []byte) int {
	end := len(line)
	for end > 0 && (line[end-1] == ' ' || line[end-1] == '\t') {
		end--
	}
	return utils.ByteOffsetToRuneIndex(line, end)
}

// editRecorder accumulates the buffer mutations of one operation so they
// commit to history as a single change set. A failed mutation rolls the
// earlier ones back, keeping the operation atomic.
type editRecorder struct {
	buf          buffer.Buffer
	events       *event.Manager
	cursorBefore types.Position
	changes      []history.Change
}

func (m *Manager) newRecorder() *editRecorder {
	return &editRecorder{
		buf:          m.editor.GetBuffer(),
		events:       m.editor.GetEventManager(),
		cursorBefore: m.editor.GetCursor(),
	}
}

func (r *editRecorder) deleteRange(start, end types.Position) error {
	removed, err := text.ExtractRange(r.buf, start, end)
	if err != nil {
		r.rollback()
		return err
	}
	info, err := r.buf.Delete(start, end)
	if err != nil {
		r.rollback()
		return err
	}
	r.changes = append(r.changes, history.Change{
		Type:          history.DeleteAction,
		Text:          removed,
		StartPosition: info.StartPosition,
		EndPosition:   info.OldEndPosition,
		CursorBefore:  r.cursorBefore,
	})
	r.dispatch(info)
	return nil
}

func (r *editRecorder) insertAt(pos types.Position, s string) (types.EditInfo, error) {
	if s == "" {
		return types.EditInfo{StartPosition: pos, OldEndPosition: pos, NewEndPosition: pos}, nil
	}
	info, err := r.buf.Insert(pos, []byte(s))
	if err != nil {
		r.rollback()
		return types.EditInfo{}, err
	}
	r.changes = append(r.changes, history.Change{
		Type:          history.InsertAction,
		Text:          []byte(s),
		StartPosition: info.StartPosition,
		EndPosition:   info.NewEndPosition,
		CursorBefore:  r.cursorBefore,
	})
	r.dispatch(info)
	return info, nil
}

func (r *editRecorder) rollback() {
	for i := len(r.changes) - 1; i >= 0; i-- {
		c := r.changes[i]
		var info types.EditInfo
		var err error
		switch c.Type {
		case history.InsertAction:
			info, err = r.buf.Delete(c.StartPosition, c.EndPosition)
		case history.DeleteAction:
			info, err = r.buf.Insert(c.StartPosition, c.Text)
		}
		if err == nil {
			r.dispatch(info)
		}
	}
	r.changes = nil
}

func (r *editRecorder) commit(hist *history.Manager) {
	if hist != nil && len(r.changes) > 0 {
		hist.RecordChangeSet(history.ChangeSet{Changes: r.changes})
	}
}

func (r *editRecorder) dispatch(info types.EditInfo) {
	if r.events != nil {
		r.events.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: info})
	}
}
