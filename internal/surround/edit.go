package surround

import "bytes"

// EditResult is a computed mutation: the full new line array and the
// cursor position at the character immediately following the inserted
// or retained left delimiter.
type EditResult struct {
	Lines  [][]byte
	Cursor Position
}

// flatten joins lines with newlines and records each line's offset.
func flatten(lines [][]byte) (text []byte, starts []int) {
	size := 0
	for _, line := range lines {
		size += len(line) + 1
	}
	text = make([]byte, 0, size)
	starts = make([]int, 0, len(lines))
	for i, line := range lines {
		starts = append(starts, len(text))
		text = append(text, line...)
		if i < len(lines)-1 {
			text = append(text, '\n')
		}
	}
	return text, starts
}

// splitLines is the inverse of flatten.
func splitLines(text []byte) [][]byte {
	parts := bytes.Split(text, []byte("\n"))
	lines := make([][]byte, len(parts))
	for i, part := range parts {
		line := make([]byte, len(part))
		copy(line, part)
		lines[i] = line
	}
	return lines
}

// docOffset converts a document position to an offset in flattened text,
// clamping to valid bounds.
func docOffset(lines [][]byte, starts []int, pos Position) int {
	if pos.Line < 1 {
		return 0
	}
	if pos.Line > len(lines) {
		pos.Line = len(lines)
		pos.Col = len(lines[pos.Line-1])
	}
	col := pos.Col
	if col < 0 {
		col = 0
	}
	if max := len(lines[pos.Line-1]); col > max {
		col = max
	}
	return starts[pos.Line-1] + col
}

// docPosition converts a flattened-text offset back to a position.
func docPosition(starts []int, off int) Position {
	line := 0
	for line+1 < len(starts) && starts[line+1] <= off {
		line++
	}
	return Position{Line: line + 1, Col: off - starts[line]}
}

// deleteParts removes the candidate's delimiter texts, leaving the body
// intact. The right part goes first so the left offsets stay valid.
func deleteParts(lines [][]byte, c Candidate) EditResult {
	text, starts := flatten(lines)
	lFrom := docOffset(lines, starts, c.Left.From)
	lTo := docOffset(lines, starts, c.Left.To) + 1
	rFrom := docOffset(lines, starts, c.Right.From)
	rTo := docOffset(lines, starts, c.Right.To) + 1

	out := make([]byte, 0, len(text))
	out = append(out, text[:lFrom]...)
	out = append(out, text[lTo:rFrom]...)
	out = append(out, text[rTo:]...)

	newLines := splitLines(out)
	_, newStarts := flatten(newLines)
	return EditResult{
		Lines:  newLines,
		Cursor: docPosition(newStarts, lFrom),
	}
}

// replaceParts swaps the candidate's delimiter texts for the rendered
// left/right output, as one combined rewrite.
func replaceParts(lines [][]byte, c Candidate, left, right string) EditResult {
	text, starts := flatten(lines)
	lFrom := docOffset(lines, starts, c.Left.From)
	lTo := docOffset(lines, starts, c.Left.To) + 1
	rFrom := docOffset(lines, starts, c.Right.From)
	rTo := docOffset(lines, starts, c.Right.To) + 1

	out := make([]byte, 0, len(text)+len(left)+len(right))
	out = append(out, text[:lFrom]...)
	out = append(out, left...)
	out = append(out, text[lTo:rFrom]...)
	out = append(out, right...)
	out = append(out, text[rTo:]...)

	newLines := splitLines(out)
	_, newStarts := flatten(newLines)
	return EditResult{
		Lines:  newLines,
		Cursor: docPosition(newStarts, lFrom+len(left)),
	}
}

// addParts surrounds the body span with the rendered output. For a
// linewise body, leading indentation stays outside the left delimiter
// and trailing whitespace stays outside the right one.
func addParts(lines [][]byte, body Span, left, right string, linewise bool) EditResult {
	text, starts := flatten(lines)
	from := docOffset(lines, starts, body.From)
	to := docOffset(lines, starts, body.To) + 1
	if to < from {
		to = from
	}

	if linewise {
		for from < to && isSpaceByte(text[from]) {
			from++
		}
		for to > from && isSpaceByte(text[to-1]) {
			to--
		}
	}

	out := make([]byte, 0, len(text)+len(left)+len(right))
	out = append(out, text[:from]...)
	out = append(out, left...)
	out = append(out, text[from:to]...)
	out = append(out, right...)
	out = append(out, text[to:]...)

	newLines := splitLines(out)
	_, newStarts := flatten(newLines)
	return EditResult{
		Lines:  newLines,
		Cursor: docPosition(newStarts, from+len(left)),
	}
}

// bodyText returns the text between the candidate's parts.
func bodyText(lines [][]byte, c Candidate) []byte {
	text, starts := flatten(lines)
	lTo := docOffset(lines, starts, c.Left.To) + 1
	rFrom := docOffset(lines, starts, c.Right.From)
	if rFrom < lTo {
		return nil
	}
	out := make([]byte, rFrom-lTo)
	copy(out, text[lTo:rFrom])
	return out
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t'
}
