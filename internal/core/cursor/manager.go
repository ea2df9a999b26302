// Package cursor owns the cursor position and the viewport it must stay
// visible in.
package cursor

import (
	"math"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/seagrine/hem/internal/buffer"
	"github.com/seagrine/hem/internal/logger"
	"github.com/seagrine/hem/internal/types"
)

// Editor is the interface the cursor manager expects from the editor.
type Editor interface {
	GetBuffer() buffer.Buffer
	TabWidth() int
	ScrollOff() int
}

// Manager tracks the cursor position (0-based line, rune column) and the
// viewport origin (top line, left visual column).
type Manager struct {
	editor       Editor
	position     types.Position
	viewportTop  int
	viewportLeft int // visual column of the leftmost visible text cell
	viewWidth    int
	viewHeight   int
}

// NewManager creates a cursor manager positioned at the buffer start.
func NewManager(editor Editor) *Manager {
	return &Manager{editor: editor}
}

// SetViewSize updates the text area dimensions used for scrolling.
func (m *Manager) SetViewSize(width, height int) {
	m.viewWidth = width
	m.viewHeight = height
}

// GetViewport returns the viewport origin: top line and left visual column.
func (m *Manager) GetViewport() (top, left int) {
	return m.viewportTop, m.viewportLeft
}

// GetPosition returns the current cursor position.
func (m *Manager) GetPosition() types.Position {
	return m.position
}

// lineRuneCount returns the rune length of a buffer line, 0 when the index
// is out of range.
func lineRuneCount(buf buffer.Buffer, index int) int {
	line, err := buf.Line(index)
	if err != nil {
		return 0
	}
	return utf8.RuneCount(line)
}

// SetPosition clamps pos to the buffer and moves the cursor there, keeping
// it visible.
func (m *Manager) SetPosition(pos types.Position) {
	buf := m.editor.GetBuffer()
	if buf == nil {
		logger.Warnf("cursor: SetPosition called without a buffer")
		return
	}

	lineCount := buf.LineCount()
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= lineCount {
		pos.Line = lineCount - 1
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	if max := lineRuneCount(buf, pos.Line); pos.Col > max {
		pos.Col = max
	}

	m.position = pos
	m.ScrollToCursor()
}

// MoveCursor moves the cursor by the given deltas. Horizontal single-line
// moves wrap across line boundaries: left from column 0 lands at the end
// of the previous line, right past the end lands at the start of the next.
func (m *Manager) MoveCursor(deltaLine, deltaCol int) {
	buf := m.editor.GetBuffer()
	if buf == nil {
		return
	}

	pos := types.Position{
		Line: m.position.Line + deltaLine,
		Col:  m.position.Col + deltaCol,
	}

	if deltaLine == 0 {
		switch {
		case deltaCol < 0 && pos.Col < 0 && pos.Line > 0:
			pos.Line--
			pos.Col = lineRuneCount(buf, pos.Line)
		case deltaCol > 0 && pos.Line < buf.LineCount()-1 && pos.Col > lineRuneCount(buf, pos.Line):
			pos.Line++
			pos.Col = 0
		}
	}

	m.SetPosition(pos)
}

// PageMove moves the cursor by whole view heights.
func (m *Manager) PageMove(deltaPages int) {
	if m.viewHeight <= 0 {
		return
	}
	m.MoveCursor(deltaPages*m.viewHeight, 0)
}

// MoveToLineStart moves the cursor to the first non-whitespace character
// of the current line (column 0 on blank lines).
func (m *Manager) MoveToLineStart() {
	buf := m.editor.GetBuffer()
	if buf == nil {
		return
	}
	line, err := buf.Line(m.position.Line)
	if err != nil {
		return
	}

	col := 0
	for _, r := range string(line) {
		if r != ' ' && r != '\t' {
			break
		}
		col++
	}
	if col >= utf8.RuneCount(line) {
		col = 0
	}
	m.SetPosition(types.Position{Line: m.position.Line, Col: col})
}

// MoveToLineEnd moves the cursor one past the last character of the
// current line.
func (m *Manager) MoveToLineEnd() {
	buf := m.editor.GetBuffer()
	if buf == nil {
		return
	}
	m.SetPosition(types.Position{
		Line: m.position.Line,
		Col:  lineRuneCount(buf, m.position.Line),
	})
}

// ScrollToCursor adjusts the viewport so the cursor stays visible, keeping
// ScrollOff lines of context vertically and following the cursor's visual
// column horizontally.
func (m *Manager) ScrollToCursor() {
	if m.viewHeight <= 0 {
		return
	}
	buf := m.editor.GetBuffer()
	if buf == nil {
		return
	}

	scrollOff := m.editor.ScrollOff()
	if m.position.Line < m.viewportTop+scrollOff {
		m.viewportTop = m.position.Line - scrollOff
		if m.viewportTop < 0 {
			m.viewportTop = 0
		}
	} else if m.position.Line >= m.viewportTop+m.viewHeight-scrollOff {
		m.viewportTop = m.position.Line - m.viewHeight + scrollOff + 1
		if m.viewportTop < 0 {
			m.viewportTop = 0
		}
	}

	line, err := buf.Line(m.position.Line)
	if err != nil {
		return
	}
	visCol := VisualCol(line, m.position.Col, m.editor.TabWidth())

	textWidth := m.viewWidth
	if gutter := GutterWidth(buf.LineCount()); gutter < m.viewWidth {
		textWidth = m.viewWidth - gutter
	}
	if textWidth <= 0 {
		return
	}

	if visCol < m.viewportLeft {
		m.viewportLeft = visCol
	} else if visCol >= m.viewportLeft+textWidth {
		m.viewportLeft = visCol - textWidth + 1
	}
}

// GutterWidth returns the line-number gutter width for a buffer of
// lineCount lines: digits of the largest line number plus one space of
// padding. The renderer and the scroll math must agree on this.
func GutterWidth(lineCount int) int {
	if lineCount <= 0 {
		lineCount = 1
	}
	digits := int(math.Log10(float64(lineCount))) + 1
	return digits + 1
}

// VisualCol converts a rune column on line to a visual (screen cell)
// column, expanding tabs to the next stop and using the display width of
// each grapheme cluster.
func VisualCol(line []byte, runeCol, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 1
	}
	visual := 0
	runes := 0
	gr := uniseg.NewGraphemes(string(line))
	for gr.Next() {
		if runes >= runeCol {
			break
		}
		cluster := gr.Str()
		runes += utf8.RuneCountInString(cluster)
		if cluster == "\t" {
			visual = (visual/tabWidth + 1) * tabWidth
			continue
		}
		width := runewidth.StringWidth(cluster)
		if width < 1 {
			width = 1
		}
		visual += width
	}
	return visual
}
