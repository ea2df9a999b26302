package app

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/seagrine/hem/internal/commands"
	"github.com/seagrine/hem/internal/config"
	"github.com/seagrine/hem/internal/event"
	"github.com/seagrine/hem/internal/logger"
	"github.com/seagrine/hem/internal/plugin"
	"github.com/seagrine/hem/internal/surround"
	"github.com/seagrine/hem/internal/theme"
	"github.com/seagrine/hem/internal/types"
)

var (
	_ plugin.EditorAPI  = (*appEditorAPI)(nil)
	_ commands.ThemeAPI = (*appEditorAPI)(nil)
	_ commands.AppAPI   = (*appEditorAPI)(nil)
)

// appEditorAPI is the concrete API handed to plugins and built-in
// commands. One adapter serves all three interfaces.
type appEditorAPI struct {
	app *App
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Buffer access ---

// GetBufferLines returns a copy of the line slice for the half-open
// range [startLine, endLine), clamped to the buffer.
func (api *appEditorAPI) GetBufferLines(startLine, endLine int) ([][]byte, error) {
	buf := api.app.editor.GetBuffer()
	count := buf.LineCount()
	if startLine < 0 {
		startLine = 0
	}
	if endLine > count {
		endLine = count
	}
	if startLine >= endLine {
		return nil, nil
	}
	lines := buf.Lines()
	out := make([][]byte, endLine-startLine)
	copy(out, lines[startLine:endLine])
	return out, nil
}

func (api *appEditorAPI) GetBufferLine(line int) ([]byte, error) {
	return api.app.editor.GetBuffer().Line(line)
}

func (api *appEditorAPI) GetBufferLineCount() int {
	return api.app.editor.GetBuffer().LineCount()
}

func (api *appEditorAPI) GetBufferFilePath() string {
	return api.app.editor.GetBuffer().FilePath()
}

func (api *appEditorAPI) GetBufferBytes() []byte {
	return api.app.editor.GetBuffer().Bytes()
}

func (api *appEditorAPI) IsBufferModified() bool {
	return api.app.editor.GetBuffer().IsModified()
}

// --- Buffer modification ---

// InsertText writes directly to the buffer, outside the undo history.
// Plugin edits announce themselves on the bus like any other edit.
func (api *appEditorAPI) InsertText(pos types.Position, text []byte) error {
	editInfo, err := api.app.editor.GetBuffer().Insert(pos, text)
	if err != nil {
		return err
	}
	api.app.eventManager.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: editInfo})
	api.app.requestRedraw()
	return nil
}

func (api *appEditorAPI) DeleteRange(start, end types.Position) error {
	editInfo, err := api.app.editor.GetBuffer().Delete(start, end)
	if err != nil {
		return err
	}
	api.app.eventManager.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: editInfo})
	api.app.requestRedraw()
	return nil
}

func (api *appEditorAPI) SaveBuffer(path ...string) error {
	return api.app.editor.SaveBuffer(path...)
}

// --- Cursor and viewport ---

func (api *appEditorAPI) GetCursor() types.Position {
	return api.app.editor.GetCursor()
}

func (api *appEditorAPI) SetCursor(pos types.Position) {
	api.app.editor.SetCursor(pos)
	api.app.requestRedraw()
}

func (api *appEditorAPI) GetViewport() (top, left int) {
	return api.app.editor.GetViewport()
}

// --- Event bus ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Command and surrounding registration ---

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if api.app == nil || api.app.modeHandler == nil {
		logger.Errorf("API: cannot register command %q before startup completes", name)
		return fmt.Errorf("command registration unavailable")
	}
	return api.app.modeHandler.RegisterCommand(name, cmdFunc)
}

func (api *appEditorAPI) RegisterSurrounding(id string, spec surround.CustomSpec) error {
	return api.app.editor.GetSurroundManager().Engine().Registry().Register(id, spec)
}

func (api *appEditorAPI) ListSurroundings() []string {
	return api.app.editor.GetSurroundManager().Engine().Registry().Identifiers()
}

// --- Status bar ---

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
	api.app.requestRedraw()
}

// --- Theme access ---

func (api *appEditorAPI) GetThemeStyle(styleName string) tcell.Style {
	return api.app.themeManager.Current().GetStyle(styleName)
}

func (api *appEditorAPI) GetTheme() *theme.Theme {
	return api.app.themeManager.Current()
}

// SetTheme activates a theme and repaints with its base style.
func (api *appEditorAPI) SetTheme(name string) error {
	if err := api.app.themeManager.SetTheme(name); err != nil {
		return err
	}
	api.app.tuiManager.SetStyle(api.app.themeManager.Current().GetStyle("Default"))
	api.app.eventManager.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{ThemeName: api.app.themeManager.Current().Name})
	api.app.requestRedraw()
	return nil
}

func (api *appEditorAPI) ListThemes() []string {
	return api.app.themeManager.ListThemes()
}

// --- Plugin configuration ---

func (api *appEditorAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	table, ok := api.app.cfg.Plugins[pluginName]
	if !ok {
		return nil, false
	}
	value, ok := table[key]
	return value, ok
}

// --- App control ---

// RequestQuit ends the session. Without force, unsaved changes block the
// quit and leave a hint in the status bar.
func (api *appEditorAPI) RequestQuit(force bool) {
	if !force && api.app.editor.IsModified() {
		logger.Debugf("API: quit blocked by unsaved changes")
		api.SetStatusMessage("No write since last change (use :q! to override)")
		return
	}
	api.app.modeHandler.SignalQuit()
}

// SetOption changes one runtime option. The mutated config goes through
// ApplyConfig, the same path used at startup and on file reload.
func (api *appEditorAPI) SetOption(name, value string) error {
	cfg := api.app.cfg
	switch name {
	case "nlines":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("nlines needs a positive integer, got %q", value)
		}
		cfg.Surround.NLines = n
	case "method":
		if !config.ValidSearchMethod(value) {
			return fmt.Errorf("unknown method %q (cover, cover_or_next, cover_or_prev, cover_or_nearest)", value)
		}
		cfg.Surround.SearchMethod = value
	case "highlight":
		ms, err := strconv.Atoi(value)
		if err != nil || ms <= 0 {
			return fmt.Errorf("highlight needs a duration in milliseconds, got %q", value)
		}
		cfg.Surround.HighlightDurationMs = ms
	default:
		return fmt.Errorf("unknown option %q", name)
	}
	api.app.editor.ApplyConfig(cfg)
	return nil
}
