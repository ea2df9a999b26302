// Package render draws the text area: the line-number gutter, the
// visible buffer slice with highlight and selection styling, and the
// terminal cursor.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/seagrine/hem/internal/core"
	"github.com/seagrine/hem/internal/core/cursor"
	"github.com/seagrine/hem/internal/theme"
	"github.com/seagrine/hem/internal/types"
)

// Buffer draws the visible buffer region onto screen. textHeight is the
// row count reserved for text; the rows below belong to the status bar.
func Buffer(screen tcell.Screen, editor *core.Editor, activeTheme *theme.Theme, textHeight int) {
	defaultStyle := activeTheme.GetStyle("Default")
	lineNumberStyle := activeTheme.GetStyle("LineNumber")
	lineNumberActive := activeTheme.GetStyle("LineNumberActive")
	selectionStyle := activeTheme.GetStyle("Selection")
	searchStyle := activeTheme.GetStyle("SearchHighlight")
	surroundStyle := activeTheme.GetStyle("SurroundHighlight")
	dimStyle := activeTheme.GetStyle("DimText")

	width, _ := screen.Size()
	if textHeight <= 0 || width <= 0 {
		return
	}

	viewTop, viewLeft := editor.GetViewport()
	selStart, selEnd, selectionActive := editor.GetSelection()
	tabWidth := editor.TabWidth()
	cursorLine := editor.GetCursor().Line

	lines := editor.GetBuffer().Lines()
	gutterWidth := cursor.GutterWidth(len(lines))
	if gutterWidth >= width {
		gutterWidth = 0
	}
	textWidth := width - gutterWidth
	numberWidth := gutterWidth - 1

	// Bucket the highlight regions by visible line so the cell loop only
	// scans the ones that can apply.
	lineHighlights := make(map[int][]types.HighlightRegion)
	for _, h := range editor.GetHighlights() {
		for lineIdx := h.Start.Line; lineIdx <= h.End.Line; lineIdx++ {
			if lineIdx >= viewTop && lineIdx < viewTop+textHeight {
				lineHighlights[lineIdx] = append(lineHighlights[lineIdx], h)
			}
		}
	}

	for screenY := 0; screenY < textHeight; screenY++ {
		lineIdx := screenY + viewTop

		for fillX := 0; fillX < width; fillX++ {
			screen.SetContent(fillX, screenY, ' ', nil, defaultStyle)
		}

		if lineIdx < 0 || lineIdx >= len(lines) {
			screen.SetContent(0, screenY, '~', nil, dimStyle)
			continue
		}

		if gutterWidth > 0 {
			numberStyle := lineNumberStyle
			if lineIdx == cursorLine {
				numberStyle = lineNumberActive
			}
			for i, r := range fmt.Sprintf("%*d", numberWidth, lineIdx+1) {
				if i < numberWidth {
					screen.SetContent(i, screenY, r, nil, numberStyle)
				}
			}
		}

		highlights := lineHighlights[lineIdx]
		visualX := 0
		runeIdx := 0
		gr := uniseg.NewGraphemes(string(lines[lineIdx]))
		for gr.Next() {
			if visualX >= viewLeft+textWidth {
				break
			}
			clusterRunes := gr.Runes()
			cluster := gr.Str()

			// Width math mirrors cursor.VisualCol so the drawn text and
			// the cursor position cannot disagree.
			var clusterWidth int
			if cluster == "\t" {
				clusterWidth = tabWidth - visualX%tabWidth
			} else {
				clusterWidth = runewidth.StringWidth(cluster)
				if clusterWidth < 1 {
					clusterWidth = 1
				}
			}

			screenX := visualX - viewLeft + gutterWidth
			if visualX >= viewLeft {
				pos := types.Position{Line: lineIdx, Col: runeIdx}
				style := defaultStyle
				if selectionActive && isPositionWithin(pos, selStart, selEnd) {
					style = selectionStyle
				}
				for _, h := range highlights {
					if !isPositionWithin(pos, h.Start, h.End) {
						continue
					}
					if h.Type == types.HighlightSurround {
						style = surroundStyle
					} else {
						style = searchStyle
					}
					break
				}

				if cluster == "\t" {
					for i := 0; i < clusterWidth && screenX+i < width; i++ {
						screen.SetContent(screenX+i, screenY, ' ', nil, style)
					}
				} else if screenX < width {
					screen.SetContent(screenX, screenY, clusterRunes[0], clusterRunes[1:], style)
					for i := 1; i < clusterWidth && screenX+i < width; i++ {
						screen.SetContent(screenX+i, screenY, ' ', nil, style)
					}
				}
			}

			visualX += clusterWidth
			runeIdx += len(clusterRunes)
		}
	}
}

// Cursor places the terminal cursor at the editor cursor's screen cell,
// hiding it when scrolled out of the text area.
func Cursor(screen tcell.Screen, editor *core.Editor, textHeight int) {
	pos := editor.GetCursor()
	viewTop, viewLeft := editor.GetViewport()
	width, _ := screen.Size()

	buf := editor.GetBuffer()
	gutterWidth := cursor.GutterWidth(buf.LineCount())
	if gutterWidth >= width {
		gutterWidth = 0
	}

	visualCol := 0
	if line, err := buf.Line(pos.Line); err == nil {
		visualCol = cursor.VisualCol(line, pos.Col, editor.TabWidth())
	}

	screenX := visualCol - viewLeft + gutterWidth
	screenY := pos.Line - viewTop
	if screenX < gutterWidth || screenX >= width || screenY < 0 || screenY >= textHeight {
		screen.HideCursor()
		return
	}
	screen.ShowCursor(screenX, screenY)
}

// isPositionWithin reports whether pos falls in the half-open range
// [start, end). start and end must be normalized.
func isPositionWithin(pos, start, end types.Position) bool {
	if pos.Line < start.Line || pos.Line > end.Line {
		return false
	}
	if pos.Line == start.Line && pos.Col < start.Col {
		return false
	}
	if pos.Line == end.Line && pos.Col >= end.Col {
		return false
	}
	return true
}
