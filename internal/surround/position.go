package surround

// Position locates a text unit in the document: Line is 1-based, Col is
// a 0-based byte offset within that line.
type Position struct {
	Line int
	Col  int
}

// Before reports whether p sorts strictly before q in document order.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}

// Span is a contiguous text range. To addresses the last byte of the
// span, not one past it, so a single-character span has From == To.
type Span struct {
	From Position
	To   Position
}
