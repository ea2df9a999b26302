package buffer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/seagrine/hem/internal/types"
)

// SliceBuffer stores the text as a slice of line byte slices, without
// trailing newlines. It always holds at least one (possibly empty) line.
type SliceBuffer struct {
	lines    [][]byte
	filePath string
	modified bool
}

// NewSliceBuffer creates an empty buffer with a single empty line.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{
		lines: [][]byte{[]byte("")},
	}
}

// Load reads a file into the buffer, replacing existing content. A missing
// file yields an empty buffer bound to that path.
func (sb *SliceBuffer) Load(filePath string) error {
	sb.modified = false

	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sb.lines = [][]byte{[]byte("")}
			sb.filePath = filePath
			return nil
		}
		return fmt.Errorf("opening %q: %w", filePath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	var newLines [][]byte
	for scanner.Scan() {
		line := scanner.Bytes()
		lineCopy := make([]byte, len(line))
		copy(lineCopy, line)
		newLines = append(newLines, lineCopy)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %q: %w", filePath, err)
	}
	if len(newLines) == 0 {
		newLines = append(newLines, []byte(""))
	}

	sb.lines = newLines
	sb.filePath = filePath
	return nil
}

// Save writes the buffer to filePath, or to the stored path when empty.
// The written file always ends with a newline, so a loaded file round-trips
// byte for byte.
func (sb *SliceBuffer) Save(filePath string) error {
	path := sb.filePath
	if filePath != "" {
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	content := append(sb.Bytes(), '\n')
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}
	sb.filePath = path
	sb.modified = false
	return nil
}

func (sb *SliceBuffer) Lines() [][]byte {
	return sb.lines
}

func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

func (sb *SliceBuffer) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(sb.lines) {
		return nil, fmt.Errorf("line index %d out of bounds (0-%d)", index, len(sb.lines)-1)
	}
	return sb.lines[index], nil
}

// Bytes joins the lines with newlines. No trailing newline is added.
func (sb *SliceBuffer) Bytes() []byte {
	var out bytes.Buffer
	for i, line := range sb.lines {
		out.Write(line)
		if i < len(sb.lines)-1 {
			out.WriteByte('\n')
		}
	}
	return out.Bytes()
}

func (sb *SliceBuffer) FilePath() string {
	return sb.filePath
}

func (sb *SliceBuffer) IsModified() bool {
	return sb.modified
}

// clampPosition clamps pos to the buffer and returns the valid position
// together with the byte offset of its column within the line.
func (sb *SliceBuffer) clampPosition(pos types.Position) (types.Position, int) {
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(sb.lines) {
		pos.Line = len(sb.lines) - 1
	}
	col, byteOff := clampToLine(sb.lines[pos.Line], pos.Col)
	return types.Position{Line: pos.Line, Col: col}, byteOff
}

// clampToLine converts a rune column to a byte offset, clamping to the
// line's rune count.
func clampToLine(line []byte, col int) (validCol, byteOff int) {
	if col < 0 {
		col = 0
	}
	runeCount := 0
	for i := 0; i < len(line); {
		if runeCount == col {
			return col, i
		}
		_, size := utf8.DecodeRune(line[i:])
		i += size
		runeCount++
	}
	return runeCount, len(line)
}

// byteIndex returns the absolute byte offset of (line, byteOffInLine),
// counting one byte per joining newline.
func (sb *SliceBuffer) byteIndex(line, byteOffInLine int) uint32 {
	offset := 0
	for i := 0; i < line; i++ {
		offset += len(sb.lines[i]) + 1
	}
	return uint32(offset + byteOffInLine)
}

// Insert inserts text at pos, splitting lines at newlines in text.
func (sb *SliceBuffer) Insert(pos types.Position, text []byte) (types.EditInfo, error) {
	validPos, byteOff := sb.clampPosition(pos)
	start := sb.byteIndex(validPos.Line, byteOff)
	edit := types.EditInfo{
		StartIndex:     start,
		OldEndIndex:    start,
		NewEndIndex:    start + uint32(len(text)),
		StartPosition:  validPos,
		OldEndPosition: validPos,
		NewEndPosition: validPos,
	}
	if len(text) == 0 {
		return edit, nil
	}

	sb.modified = true

	currentLine := sb.lines[validPos.Line]
	insertLines := bytes.Split(text, []byte("\n"))

	tail := make([]byte, len(currentLine)-byteOff)
	copy(tail, currentLine[byteOff:])

	head := append([]byte{}, currentLine[:byteOff]...)
	sb.lines[validPos.Line] = append(head, insertLines[0]...)

	if len(insertLines) == 1 {
		sb.lines[validPos.Line] = append(sb.lines[validPos.Line], tail...)
		edit.NewEndPosition = types.Position{
			Line: validPos.Line,
			Col:  validPos.Col + utf8.RuneCount(insertLines[0]),
		}
		return edit, nil
	}

	newLines := make([][]byte, len(insertLines)-1)
	for i := 1; i < len(insertLines); i++ {
		lineCopy := make([]byte, len(insertLines[i]))
		copy(lineCopy, insertLines[i])
		newLines[i-1] = lineCopy
	}
	lastNew := len(newLines) - 1
	endCol := utf8.RuneCount(newLines[lastNew])
	newLines[lastNew] = append(newLines[lastNew], tail...)

	rest := make([][]byte, len(sb.lines)-(validPos.Line+1))
	copy(rest, sb.lines[validPos.Line+1:])
	sb.lines = append(sb.lines[:validPos.Line+1], append(newLines, rest...)...)

	edit.NewEndPosition = types.Position{
		Line: validPos.Line + len(insertLines) - 1,
		Col:  endCol,
	}
	return edit, nil
}

// Delete removes the range [start, end). Start and end are swapped if
// given out of order.
func (sb *SliceBuffer) Delete(start, end types.Position) (types.EditInfo, error) {
	if start.Line > end.Line || (start.Line == end.Line && start.Col > end.Col) {
		start, end = end, start
	}

	vStart, startOff := sb.clampPosition(start)
	vEnd, endOff := sb.clampPosition(end)

	startIndex := sb.byteIndex(vStart.Line, startOff)
	oldEndIndex := sb.byteIndex(vEnd.Line, endOff)
	edit := types.EditInfo{
		StartIndex:     startIndex,
		OldEndIndex:    oldEndIndex,
		NewEndIndex:    startIndex,
		StartPosition:  vStart,
		OldEndPosition: vEnd,
		NewEndPosition: vStart,
	}
	if vStart == vEnd {
		return edit, nil
	}

	sb.modified = true

	startLine := sb.lines[vStart.Line]
	if vStart.Line == vEnd.Line {
		sb.lines[vStart.Line] = append(startLine[:startOff], startLine[endOff:]...)
		return edit, nil
	}

	endLine := sb.lines[vEnd.Line]
	merged := append([]byte{}, startLine[:startOff]...)
	merged = append(merged, endLine[endOff:]...)
	sb.lines[vStart.Line] = merged

	removeFrom := vStart.Line + 1
	removeTo := vEnd.Line
	if removeTo+1 >= len(sb.lines) {
		sb.lines = sb.lines[:removeFrom]
	} else {
		sb.lines = append(sb.lines[:removeFrom], sb.lines[removeTo+1:]...)
	}

	if len(sb.lines) == 0 {
		sb.lines = [][]byte{[]byte("")}
	}
	return edit, nil
}

var _ Buffer = (*SliceBuffer)(nil)
