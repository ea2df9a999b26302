// Package find implements regexp search, match highlighting, and the
// substitute command.
package find

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/seagrine/hem/internal/buffer"
	"github.com/seagrine/hem/internal/core/history"
	"github.com/seagrine/hem/internal/event"
	"github.com/seagrine/hem/internal/logger"
	"github.com/seagrine/hem/internal/types"
	"github.com/seagrine/hem/internal/utils"
)

// EditorInterface defines methods the find manager needs from the editor.
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	GetCursor() types.Position
	SetCursor(types.Position)
	GetEventManager() *event.Manager
	ScrollToCursor()
	GetHistoryManager() *history.Manager
}

// Manager handles find, replace, and search highlight state.
type Manager struct {
	editor            EditorInterface
	mutex             sync.RWMutex
	searchHighlights  []types.HighlightRegion
	lastSearchTerm    string
	lastSearchRegex   *regexp.Regexp
	lastMatchPos      *types.Position
	lastSearchForward bool
}

// NewManager creates a find manager.
func NewManager(editor EditorInterface) *Manager {
	return &Manager{
		editor:            editor,
		lastSearchForward: true,
	}
}

// FindNext finds the next occurrence of the last search term in the given
// direction, wrapping around the buffer. Returns the match position.
func (m *Manager) FindNext(forward bool) (types.Position, bool) {
	m.mutex.Lock()
	re := m.lastSearchRegex
	lastPos := m.lastMatchPos
	m.mutex.Unlock()

	if re == nil {
		return types.Position{}, false
	}

	startPos := m.editor.GetCursor()
	if lastPos != nil {
		startPos = *lastPos
		if forward {
			// One column past the last match, so the search advances.
			startPos.Col++
		}
	}

	foundPos, found := m.findFrom(re, startPos, forward)
	if !found {
		return types.Position{}, false
	}

	m.mutex.Lock()
	m.lastMatchPos = &foundPos
	m.lastSearchForward = forward
	m.mutex.Unlock()
	return foundPos, true
}

// findFrom searches from startPos in the given direction, wrapping to the
// other end of the buffer when the first pass finds nothing.
func (m *Manager) findFrom(re *regexp.Regexp, startPos types.Position, forward bool) (types.Position, bool) {
	buf := m.editor.GetBuffer()
	lineCount := buf.LineCount()

	if forward {
		if pos, ok := m.scanForward(re, startPos, lineCount-1); ok {
			return pos, true
		}
		return m.scanForward(re, types.Position{}, startPos.Line)
	}

	if pos, ok := m.scanBackward(re, startPos, 0); ok {
		return pos, true
	}
	bottom := types.Position{Line: lineCount - 1}
	if line, err := buf.Line(bottom.Line); err == nil {
		bottom.Col = utf8.RuneCount(line)
	}
	return m.scanBackward(re, bottom, startPos.Line)
}

// scanForward finds the first match at or after from, up to lastLine
// inclusive.
func (m *Manager) scanForward(re *regexp.Regexp, from types.Position, lastLine int) (types.Position, bool) {
	buf := m.editor.GetBuffer()
	if lastLine >= buf.LineCount() {
		lastLine = buf.LineCount() - 1
	}
	for lineIdx := from.Line; lineIdx <= lastLine; lineIdx++ {
		lineBytes, err := buf.Line(lineIdx)
		if err != nil {
			continue
		}
		searchStart := 0
		if lineIdx == from.Line {
			searchStart = utils.RuneIndexToByteOffset(lineBytes, from.Col)
			if searchStart < 0 {
				searchStart = len(lineBytes)
			}
		}
		if loc := re.FindIndex(lineBytes[searchStart:]); loc != nil {
			col := utils.ByteOffsetToRuneIndex(lineBytes, searchStart+loc[0])
			return types.Position{Line: lineIdx, Col: col}, true
		}
	}
	return types.Position{}, false
}

// scanBackward finds the last match strictly before from, down to
// firstLine inclusive.
func (m *Manager) scanBackward(re *regexp.Regexp, from types.Position, firstLine int) (types.Position, bool) {
	buf := m.editor.GetBuffer()
	for lineIdx := from.Line; lineIdx >= firstLine; lineIdx-- {
		lineBytes, err := buf.Line(lineIdx)
		if err != nil {
			continue
		}
		searchEnd := len(lineBytes)
		if lineIdx == from.Line {
			searchEnd = utils.RuneIndexToByteOffset(lineBytes, from.Col)
			if searchEnd < 0 {
				searchEnd = len(lineBytes)
			}
		}
		locs := re.FindAllIndex(lineBytes[:searchEnd], -1)
		if len(locs) > 0 {
			last := locs[len(locs)-1]
			col := utils.ByteOffsetToRuneIndex(lineBytes, last[0])
			return types.Position{Line: lineIdx, Col: col}, true
		}
	}
	return types.Position{}, false
}

// HighlightMatches compiles term and stores a highlight region for every
// occurrence in the buffer. An empty term clears the search state.
func (m *Manager) HighlightMatches(term string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.searchHighlights = m.searchHighlights[:0]
	m.lastSearchTerm = term
	m.lastSearchRegex = nil
	m.lastMatchPos = nil

	if term == "" {
		return nil
	}

	re, err := regexp.Compile(term)
	if err != nil {
		logger.Warnf("HighlightMatches: invalid regex %q: %v", term, err)
		return fmt.Errorf("invalid search pattern: %w", err)
	}
	m.lastSearchRegex = re

	buf := m.editor.GetBuffer()
	lineCount := buf.LineCount()
	for lineIdx := 0; lineIdx < lineCount; lineIdx++ {
		lineBytes, err := buf.Line(lineIdx)
		if err != nil {
			continue
		}
		for _, loc := range re.FindAllIndex(lineBytes, -1) {
			m.searchHighlights = append(m.searchHighlights, types.HighlightRegion{
				Start: types.Position{Line: lineIdx, Col: utils.ByteOffsetToRuneIndex(lineBytes, loc[0])},
				End:   types.Position{Line: lineIdx, Col: utils.ByteOffsetToRuneIndex(lineBytes, loc[1])},
				Type:  types.HighlightSearch,
			})
		}
	}

	logger.DebugTagf("find", "Added %d search highlight(s) for %q", len(m.searchHighlights), term)
	return nil
}

// ClearHighlights removes the search highlight regions.
func (m *Manager) ClearHighlights() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if len(m.searchHighlights) > 0 {
		logger.DebugTagf("find", "Clearing %d search highlight(s)", len(m.searchHighlights))
		m.searchHighlights = m.searchHighlights[:0]
	}
}

// HasHighlights reports whether any search highlights are active.
func (m *Manager) HasHighlights() bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.searchHighlights) > 0
}

// GetHighlights returns a copy of the current search highlight regions.
func (m *Manager) GetHighlights() []types.HighlightRegion {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if len(m.searchHighlights) == 0 {
		return nil
	}
	highlights := make([]types.HighlightRegion, len(m.searchHighlights))
	copy(highlights, m.searchHighlights)
	return highlights
}

// ParseSubstituteCommand parses the ":s/pattern/replacement/[g]" argument
// string.
// TODO: support an 'i' flag for case-insensitive patterns.
func ParseSubstituteCommand(cmdStr string) (pattern, replacement string, global bool, err error) {
	parts := strings.SplitN(cmdStr, "/", 4)
	if len(parts) < 3 || parts[0] != "" {
		err = fmt.Errorf("invalid format: use /pattern/replacement/[g]")
		return
	}

	pattern = parts[1]
	replacement = parts[2]
	if pattern == "" {
		err = fmt.Errorf("search pattern cannot be empty")
		return
	}
	if len(parts) > 3 && strings.Contains(parts[3], "g") {
		global = true
	}
	return
}

// Replace substitutes pattern matches on the cursor's line: the first
// match, or every match when global is set. All replacements record as a
// single history step. Returns the replacement count.
func (m *Manager) Replace(patternStr, replacement string, global bool) (int, error) {
	if patternStr == "" {
		return 0, fmt.Errorf("search pattern cannot be empty")
	}
	re, err := regexp.Compile(patternStr)
	if err != nil {
		return 0, fmt.Errorf("invalid search pattern: %w", err)
	}

	buf := m.editor.GetBuffer()
	cursorBefore := m.editor.GetCursor()
	lineIdx := cursorBefore.Line
	eventMgr := m.editor.GetEventManager()

	lineRef, err := buf.Line(lineIdx)
	if err != nil {
		return 0, fmt.Errorf("cannot get current line %d: %w", lineIdx, err)
	}
	// Buffer edits reuse the line's backing array, so work from a copy.
	lineBytes := append([]byte(nil), lineRef...)

	var matches [][]int
	for _, loc := range re.FindAllIndex(lineBytes, -1) {
		if loc[1] > loc[0] { // zero-width matches would loop forever
			matches = append(matches, loc)
		}
	}
	if len(matches) == 0 {
		return 0, nil
	}
	if !global {
		matches = matches[:1]
	}

	// Match offsets refer to the original line, so apply right to left.
	replacementBytes := []byte(replacement)
	var changes []history.Change
	var firstStart types.Position
	count := 0
	for i := len(matches) - 1; i >= 0; i-- {
		loc := matches[i]
		start := types.Position{Line: lineIdx, Col: utils.ByteOffsetToRuneIndex(lineBytes, loc[0])}
		end := types.Position{Line: lineIdx, Col: utils.ByteOffsetToRuneIndex(lineBytes, loc[1])}
		deleted := append([]byte(nil), lineBytes[loc[0]:loc[1]]...)

		editInfoDel, err := buf.Delete(start, end)
		if err != nil {
			return count, fmt.Errorf("replace failed during delete: %w", err)
		}
		changes = append(changes, history.Change{
			Type:          history.DeleteAction,
			Text:          deleted,
			StartPosition: start,
			EndPosition:   end,
			CursorBefore:  cursorBefore,
		})

		editInfoIns, err := buf.Insert(start, replacementBytes)
		if err != nil {
			return count, fmt.Errorf("replace failed during insert: %w", err)
		}
		changes = append(changes, history.Change{
			Type:          history.InsertAction,
			Text:          replacementBytes,
			StartPosition: start,
			EndPosition:   editInfoIns.NewEndPosition,
			CursorBefore:  cursorBefore,
		})

		if eventMgr != nil {
			net := types.EditInfo{
				StartIndex:     editInfoDel.StartIndex,
				StartPosition:  editInfoDel.StartPosition,
				OldEndIndex:    editInfoDel.OldEndIndex,
				OldEndPosition: editInfoDel.OldEndPosition,
				NewEndIndex:    editInfoDel.StartIndex + uint32(len(replacementBytes)),
				NewEndPosition: editInfoIns.NewEndPosition,
			}
			eventMgr.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: net})
		}

		firstStart = start
		count++
	}

	if histMgr := m.editor.GetHistoryManager(); histMgr != nil {
		histMgr.RecordChangeSet(history.ChangeSet{Changes: changes})
	}

	m.editor.SetCursor(firstStart)
	m.editor.ScrollToCursor()
	logger.DebugTagf("find", "Replaced %d occurrence(s) on line %d", count, lineIdx)
	return count, nil
}
