package surround

import "sort"

// window is the bounded neighborhood searched around the reference: the
// reference line plus nLines above and below, flattened with newlines so
// matchers can work across line boundaries. This bound is the engine's
// only defense against pathological cost on large documents.
type window struct {
	text       []byte
	lineStarts []int // offset of each window line within text
	firstLine  int   // 1-based document line of lineStarts[0]
	refOff     int   // reference position as an offset into text
	refLine    int   // clamped 1-based reference line
}

// newWindow builds the neighborhood for ref over the document lines.
// The reference is clamped into the document before the window is cut.
func newWindow(lines [][]byte, ref Position, nLines int) *window {
	if len(lines) == 0 {
		lines = [][]byte{nil}
	}
	if ref.Line < 1 {
		ref.Line = 1
	}
	if ref.Line > len(lines) {
		ref.Line = len(lines)
	}
	if ref.Col < 0 {
		ref.Col = 0
	}
	if max := len(lines[ref.Line-1]); ref.Col > max {
		ref.Col = max
	}

	lo := ref.Line - nLines
	if lo < 1 {
		lo = 1
	}
	hi := ref.Line + nLines
	if hi > len(lines) {
		hi = len(lines)
	}

	size := 0
	for i := lo; i <= hi; i++ {
		size += len(lines[i-1]) + 1
	}
	text := make([]byte, 0, size)
	starts := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		starts = append(starts, len(text))
		text = append(text, lines[i-1]...)
		if i < hi {
			text = append(text, '\n')
		}
	}

	return &window{
		text:       text,
		lineStarts: starts,
		firstLine:  lo,
		refOff:     starts[ref.Line-lo] + ref.Col,
		refLine:    ref.Line,
	}
}

// position converts a window text offset to a document position.
func (w *window) position(off int) Position {
	i := sort.Search(len(w.lineStarts), func(i int) bool {
		return w.lineStarts[i] > off
	}) - 1
	if i < 0 {
		i = 0
	}
	return Position{
		Line: w.firstLine + i,
		Col:  off - w.lineStarts[i],
	}
}
