// Package text implements the insert and delete primitives behind typing.
package text

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/seagrine/hem/internal/buffer"
	"github.com/seagrine/hem/internal/core/history"
	"github.com/seagrine/hem/internal/event"
	"github.com/seagrine/hem/internal/types"
	"github.com/seagrine/hem/internal/utils"
)

// EditorInterface defines the editor methods text operations need.
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	GetCursor() types.Position
	SetCursor(pos types.Position)
	GetEventManager() *event.Manager
	ClearSelection()
	HasSelection() bool
	GetSelection() (start, end types.Position, ok bool)
	ScrollToCursor()
	GetHistoryManager() *history.Manager
}

// Operations handles text insertion and deletion at the cursor.
type Operations struct {
	editor EditorInterface
}

// NewOperations creates a text operations manager.
func NewOperations(editor EditorInterface) *Operations {
	return &Operations{editor: editor}
}

// InsertRune inserts a single rune at the cursor.
func (o *Operations) InsertRune(r rune) error {
	o.editor.ClearSelection()

	runeBytes := make([]byte, utf8.RuneLen(r))
	utf8.EncodeRune(runeBytes, r)

	cursorBefore := o.editor.GetCursor()
	editInfo, err := o.editor.GetBuffer().Insert(cursorBefore, runeBytes)
	if err != nil {
		return err
	}

	cursorAfter := cursorBefore
	if r == '\n' {
		cursorAfter.Line++
		cursorAfter.Col = 0
	} else {
		cursorAfter.Col++
	}
	o.editor.SetCursor(cursorAfter)

	if histMgr := o.editor.GetHistoryManager(); histMgr != nil {
		histMgr.RecordChange(history.Change{
			Type:          history.InsertAction,
			Text:          runeBytes,
			StartPosition: cursorBefore,
			EndPosition:   cursorAfter,
			CursorBefore:  cursorBefore,
		})
	}

	o.editor.ScrollToCursor()
	o.dispatchModified(editInfo)
	return nil
}

// InsertNewLine inserts a line break at the cursor.
func (o *Operations) InsertNewLine() error {
	return o.InsertRune('\n')
}

// DeleteBackward deletes the active selection, or the character before the
// cursor (joining lines at column 0).
func (o *Operations) DeleteBackward() error {
	if done, err := o.deleteSelection(); done || err != nil {
		return err
	}

	cursorBefore := o.editor.GetCursor()
	start := cursorBefore
	end := cursorBefore
	var deletedText []byte

	switch {
	case cursorBefore.Col > 0:
		start.Col--
		line, err := o.editor.GetBuffer().Line(start.Line)
		if err != nil {
			return fmt.Errorf("cannot get line %d: %w", start.Line, err)
		}
		deletedText = runeAt(line, start.Col)
	case cursorBefore.Line > 0:
		start.Line--
		prevLine, err := o.editor.GetBuffer().Line(start.Line)
		if err != nil {
			return fmt.Errorf("cannot get line %d: %w", start.Line, err)
		}
		start.Col = utf8.RuneCount(prevLine)
		deletedText = []byte{'\n'}
	default:
		return nil // start of buffer
	}

	editInfo, err := o.editor.GetBuffer().Delete(start, end)
	if err != nil {
		return fmt.Errorf("buffer delete failed: %w", err)
	}

	o.recordDelete(deletedText, start, end, cursorBefore)
	o.editor.SetCursor(start)
	o.editor.ScrollToCursor()
	o.dispatchModified(editInfo)
	return nil
}

// DeleteForward deletes the active selection, or the character under the
// cursor (joining lines at the end of a line).
func (o *Operations) DeleteForward() error {
	if done, err := o.deleteSelection(); done || err != nil {
		return err
	}

	cursorBefore := o.editor.GetCursor()
	start := cursorBefore
	end := cursorBefore
	var deletedText []byte

	line, err := o.editor.GetBuffer().Line(start.Line)
	if err != nil {
		return fmt.Errorf("cannot get line %d: %w", start.Line, err)
	}

	switch {
	case start.Col < utf8.RuneCount(line):
		end.Col++
		deletedText = runeAt(line, start.Col)
	case start.Line < o.editor.GetBuffer().LineCount()-1:
		end.Line++
		end.Col = 0
		deletedText = []byte{'\n'}
	default:
		return nil // end of buffer
	}

	editInfo, err := o.editor.GetBuffer().Delete(start, end)
	if err != nil {
		return fmt.Errorf("buffer delete failed: %w", err)
	}

	o.recordDelete(deletedText, start, end, cursorBefore)
	o.editor.SetCursor(start)
	o.editor.ScrollToCursor()
	o.dispatchModified(editInfo)
	return nil
}

// deleteSelection removes the active selection, if any. Reports whether a
// selection was consumed.
func (o *Operations) deleteSelection() (bool, error) {
	if !o.editor.HasSelection() {
		return false, nil
	}
	start, end, _ := o.editor.GetSelection()
	cursorBefore := o.editor.GetCursor()

	deletedText, err := ExtractRange(o.editor.GetBuffer(), start, end)
	if err != nil {
		return false, fmt.Errorf("failed to extract selected text: %w", err)
	}

	o.editor.ClearSelection()
	editInfo, err := o.editor.GetBuffer().Delete(start, end)
	if err != nil {
		return false, fmt.Errorf("buffer delete failed: %w", err)
	}

	o.recordDelete(deletedText, start, end, cursorBefore)
	o.editor.SetCursor(start)
	o.editor.ScrollToCursor()
	o.dispatchModified(editInfo)
	return true, nil
}

func (o *Operations) recordDelete(text []byte, start, end, cursorBefore types.Position) {
	histMgr := o.editor.GetHistoryManager()
	if histMgr == nil || len(text) == 0 {
		return
	}
	histMgr.RecordChange(history.Change{
		Type:          history.DeleteAction,
		Text:          text,
		StartPosition: start,
		EndPosition:   end,
		CursorBefore:  cursorBefore,
	})
}

func (o *Operations) dispatchModified(edit types.EditInfo) {
	if em := o.editor.GetEventManager(); em != nil {
		em.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: edit})
	}
}

// runeAt returns a copy of the encoded rune at the given rune column, or
// nil when the column is past the end of the line.
func runeAt(line []byte, runeCol int) []byte {
	byteOff := utils.RuneIndexToByteOffset(line, runeCol)
	if byteOff < 0 || byteOff >= len(line) {
		return nil
	}
	_, size := utf8.DecodeRune(line[byteOff:])
	return append([]byte(nil), line[byteOff:byteOff+size]...)
}

// ExtractRange returns a copy of the buffer text in [start, end), lines
// joined by '\n'. Columns are rune indices; out-of-range columns clamp to
// the line end.
func ExtractRange(buf buffer.Buffer, start, end types.Position) ([]byte, error) {
	var content bytes.Buffer

	byteOffset := func(line []byte, col int) int {
		off := utils.RuneIndexToByteOffset(line, col)
		if off < 0 {
			return len(line)
		}
		return off
	}

	if start.Line == end.Line {
		line, err := buf.Line(start.Line)
		if err != nil {
			return nil, fmt.Errorf("cannot get line %d: %w", start.Line, err)
		}
		startOff := byteOffset(line, start.Col)
		endOff := byteOffset(line, end.Col)
		if endOff > startOff {
			content.Write(line[startOff:endOff])
		}
		return content.Bytes(), nil
	}

	for lineIdx := start.Line; lineIdx <= end.Line; lineIdx++ {
		line, err := buf.Line(lineIdx)
		if err != nil {
			return nil, fmt.Errorf("cannot get line %d: %w", lineIdx, err)
		}
		switch lineIdx {
		case start.Line:
			content.Write(line[byteOffset(line, start.Col):])
			content.WriteByte('\n')
		case end.Line:
			content.Write(line[:byteOffset(line, end.Col)])
		default:
			content.Write(line)
			content.WriteByte('\n')
		}
	}
	return content.Bytes(), nil
}
