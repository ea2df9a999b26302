// internal/types/highlight.go
package types

// HighlightType distinguishes what produced a highlight region, so the
// renderer can style them independently.
type HighlightType int

const (
	// HighlightSearch marks a find-match region. Persistent until cleared.
	HighlightSearch HighlightType = iota
	// HighlightSurround marks a located delimiter part. Expires on a timer.
	HighlightSurround
)

// HighlightRegion is a half-open [Start, End) region of the buffer to draw
// with a non-default style. End.Col is exclusive.
type HighlightRegion struct {
	Start Position
	End   Position
	Type  HighlightType
}
