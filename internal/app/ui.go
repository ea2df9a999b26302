package app

import (
	"github.com/seagrine/hem/internal/logger"
	"github.com/seagrine/hem/internal/render"
)

// resizeAndDraw refreshes the editor's view dimensions and repaints.
// The text area is the screen minus the status bar rows.
func (a *App) resizeAndDraw() {
	width, height := a.tuiManager.Size()
	a.editor.SetViewSize(width, height-a.cfg.Editor.StatusBarHeight)
	a.drawEditor()
}

// drawEditor repaints the whole screen: text area, status bar, cursor.
func (a *App) drawEditor() {
	a.updateStatusBarContent()

	screen := a.tuiManager.Screen()
	width, height := a.tuiManager.Size()
	textHeight := height - a.cfg.Editor.StatusBarHeight

	activeTheme := a.themeManager.Current()

	logger.DebugTagf("draw", "drawEditor: screen %dx%d, text height %d", width, height, textHeight)

	a.tuiManager.Clear()
	render.Buffer(screen, a.editor, activeTheme, textHeight)
	a.statusBar.Draw(screen, width, height, activeTheme)
	render.Cursor(screen, a.editor, textHeight)
	a.tuiManager.Show()
}

// updateStatusBarContent pushes current editor state to the status bar.
// Command and find input echoes are the mode handler's own messages.
func (a *App) updateStatusBarContent() {
	buf := a.editor.GetBuffer()
	a.statusBar.SetFileInfo(buf.FilePath(), buf.IsModified())
	a.statusBar.SetCursorInfo(a.editor.GetCursor())
	a.statusBar.SetEditorMode(a.modeHandler.GetCurrentMode().String())
}

// requestRedraw wakes the draw loop without blocking; a pending request
// already covers this one.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}
