package app

import (
	"github.com/seagrine/hem/internal/event"
)

// handleCursorMovedForStatus keeps the status bar's position readout
// current without a full content refresh.
func (a *App) handleCursorMovedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.CursorMovedData); ok {
		a.statusBar.SetCursorInfo(data.NewPosition)
	}
	return false
}

func (a *App) handleBufferModifiedForStatus(e event.Event) bool {
	a.updateStatusBarContent()
	return false
}

// handleBufferSavedForStatus refreshes the modified flag. Saves can come
// from a background plugin, so a redraw is requested explicitly.
func (a *App) handleBufferSavedForStatus(e event.Event) bool {
	a.updateStatusBarContent()
	a.requestRedraw()
	return false
}

func (a *App) handleBufferLoadedForStatus(e event.Event) bool {
	a.updateStatusBarContent()
	a.requestRedraw()
	return false
}

func (a *App) handleModeChangedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.ModeChangedData); ok {
		a.statusBar.SetEditorMode(data.Mode)
	}
	return false
}
