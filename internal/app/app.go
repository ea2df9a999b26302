// Package app assembles the editor: screen, buffer, core managers,
// mode handling, plugins and configuration, and runs the draw loop.
package app

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/seagrine/hem/internal/buffer"
	"github.com/seagrine/hem/internal/commands"
	"github.com/seagrine/hem/internal/config"
	"github.com/seagrine/hem/internal/core"
	"github.com/seagrine/hem/internal/event"
	"github.com/seagrine/hem/internal/highlight"
	"github.com/seagrine/hem/internal/input"
	"github.com/seagrine/hem/internal/logger"
	"github.com/seagrine/hem/internal/modehandler"
	"github.com/seagrine/hem/internal/plugin"
	"github.com/seagrine/hem/internal/statusbar"
	"github.com/seagrine/hem/internal/surround"
	"github.com/seagrine/hem/internal/theme"
	"github.com/seagrine/hem/internal/tui"
)

// App owns every component and the two goroutines that drive them: the
// tcell event loop and the draw loop in Run.
type App struct {
	cfg        *config.Config
	configPath string
	flags      *config.Flags

	tuiManager    *tui.TUI
	editor        *core.Editor
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	modeHandler   *modehandler.ModeHandler
	themeManager  *theme.Manager
	flash         *highlight.Manager
	editorAPI     *appEditorAPI
	configWatcher *config.Watcher

	filePath string

	quit          chan struct{}
	redrawRequest chan struct{}
	reloadRequest chan struct{}
}

// NewApp wires all components together. filePath may be empty or name a
// file that does not exist yet; both start an empty buffer.
func NewApp(filePath string, cfg *config.Config, flags *config.Flags) (*App, error) {
	a := &App{
		cfg:           cfg,
		flags:         flags,
		filePath:      filePath,
		quit:          make(chan struct{}),
		redrawRequest: make(chan struct{}, 1),
		reloadRequest: make(chan struct{}, 1),
	}

	var explicitPath string
	if flags != nil && flags.ConfigFilePath != nil {
		explicitPath = *flags.ConfigFilePath
	}
	a.configPath = config.EffectivePath(explicitPath)

	var err error
	a.tuiManager, err = tui.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize TUI: %w", err)
	}

	a.themeManager = theme.NewManager()
	a.tuiManager.SetStyle(a.themeManager.Current().GetStyle("Default"))

	a.eventManager = event.NewManager()

	buf := buffer.NewSliceBuffer()
	if err := buf.Load(filePath); err != nil {
		a.tuiManager.Close()
		return nil, fmt.Errorf("failed to load %q: %w", filePath, err)
	}

	// The engine starts with defaults; ApplyConfig inside NewEditor
	// applies the configured window and method, same as on reload.
	engine := surround.NewEngine(surround.NewRegistry(), config.DefaultNLines, surround.Cover)
	if err := registerCustomSurroundings(engine.Registry(), cfg.Surround.Custom); err != nil {
		a.tuiManager.Close()
		return nil, err
	}

	a.flash = highlight.NewManager(a.requestRedraw)
	a.editor = core.NewEditor(buf, a.eventManager, engine, a.flash, cfg)
	a.statusBar = statusbar.New(statusbar.DefaultConfig())

	a.modeHandler = modehandler.New(modehandler.Config{
		Editor:         a.editor,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   a.eventManager,
		StatusBar:      a.statusBar,
		QuitSignal:     a.quit,
	})

	// Interactive surroundings and tag/function prompts read their input
	// through the app's status-bar prompt.
	a.editor.GetSurroundManager().SetPrompt(a.promptInput)

	a.editorAPI = newEditorAPI(a)

	a.pluginManager = plugin.NewManager()
	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: plugin registration: %v", err)
	}
	a.pluginManager.InitializePlugins(a.editorAPI)

	// Built-in commands register after plugins so a clash is logged from
	// the command side.
	commands.RegisterAppCommands(a.editorAPI, a.editorAPI, a.editorAPI)

	a.eventManager.Subscribe(event.TypeCursorMoved, a.handleCursorMovedForStatus)
	a.eventManager.Subscribe(event.TypeBufferModified, a.handleBufferModifiedForStatus)
	a.eventManager.Subscribe(event.TypeBufferSaved, a.handleBufferSavedForStatus)
	a.eventManager.Subscribe(event.TypeBufferLoaded, a.handleBufferLoadedForStatus)
	a.eventManager.Subscribe(event.TypeModeChanged, a.handleModeChangedForStatus)

	if a.configPath != "" {
		watcher, err := config.NewWatcher(a.configPath, a.onConfigFileChanged)
		if err != nil {
			logger.Warnf("App: config watcher unavailable: %v", err)
		} else {
			a.configWatcher = watcher
		}
	}

	width, height := a.tuiManager.Size()
	a.editor.SetViewSize(width, height-cfg.Editor.StatusBarHeight)

	logger.Infof("App: initialized (file=%q, config=%q)", filePath, a.configPath)
	return a, nil
}

// Run starts the event loop goroutine and blocks in the draw loop until
// quit is signalled.
func (a *App) Run() error {
	defer a.shutdown()

	go a.eventLoop()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("Welcome to %s. ',s' surrounds, ':' commands, ESC quits.", config.AppName)
	a.resizeAndDraw()

	for {
		select {
		case <-a.quit:
			logger.Infof("App: quit signal received")
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			return nil
		case <-a.reloadRequest:
			a.reloadConfig()
			a.resizeAndDraw()
		case <-a.redrawRequest:
			a.resizeAndDraw()
		}
	}
}

// shutdown tears components down in reverse dependency order. Closing
// the screen also unblocks the event loop goroutine.
func (a *App) shutdown() {
	a.pluginManager.ShutdownPlugins()
	if a.configWatcher != nil {
		a.configWatcher.Close()
	}
	a.flash.Shutdown()
	a.tuiManager.Close()
}

// eventLoop pulls tcell events and feeds keys to the mode handler. Runs
// on its own goroutine; drawing stays on the Run goroutine.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			logger.Debugf("App: event loop finished (screen closed)")
			return
		}

		switch tev := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.Screen().Sync()
			a.requestRedraw()
		case *tcell.EventKey:
			if a.modeHandler.HandleKeyEvent(tev) {
				a.requestRedraw()
			}
		}
	}
}

// promptInput reads a line of input through the status bar. It runs as
// part of handling the key that opened the prompt, so polling the screen
// here does not race the event loop's own PollEvent.
func (a *App) promptInput(label string) (string, error) {
	var entered []rune
	for {
		a.statusBar.SetTemporaryMessage("%s%s", label, string(entered))
		a.requestRedraw()

		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return "", errors.New("input canceled")
		}

		switch tev := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.Screen().Sync()
			a.requestRedraw()
		case *tcell.EventKey:
			switch tev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				a.statusBar.ResetTemporaryMessage()
				a.requestRedraw()
				return "", errors.New("input canceled")
			case tcell.KeyEnter:
				a.statusBar.ResetTemporaryMessage()
				return string(entered), nil
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if len(entered) > 0 {
					entered = entered[:len(entered)-1]
				}
			case tcell.KeyRune:
				entered = append(entered, tev.Rune())
			}
		}
	}
}

// registerCustomSurroundings overlays the [surround.custom] definitions
// from the config onto the registry. At startup a malformed definition
// aborts; on reload the caller downgrades the error to a status message.
func registerCustomSurroundings(registry *surround.Registry, custom map[string]config.CustomSurrounding) error {
	for id, def := range custom {
		spec := surround.CustomSpec{
			OutputLeft:  def.OutputLeft,
			OutputRight: def.OutputRight,
			Open:        def.Open,
			Close:       def.Close,
			Find:        def.Find,
			Extract:     def.Extract,
		}
		if err := registry.Register(id, spec); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		logger.DebugTagf("config", "Registered custom surrounding %q", id)
	}
	return nil
}

// onConfigFileChanged runs on the watcher goroutine; the actual reload
// is handed to the draw loop so config application stays single-threaded.
func (a *App) onConfigFileChanged() {
	select {
	case a.reloadRequest <- struct{}{}:
	default:
	}
}

// reloadConfig re-reads the config file and applies it to the running
// editor. Reload errors never kill a live session.
func (a *App) reloadConfig() {
	newCfg, err := config.Reload(a.configPath, a.flags)
	if err != nil {
		logger.Errorf("App: config reload failed: %v", err)
		a.statusBar.SetTemporaryMessage("Config reload failed: %v", err)
		return
	}

	a.cfg = newCfg
	a.editor.ApplyConfig(newCfg)

	registry := a.editor.GetSurroundManager().Engine().Registry()
	if err := registerCustomSurroundings(registry, newCfg.Surround.Custom); err != nil {
		a.statusBar.SetTemporaryMessage("Config reloaded; %v", err)
	} else {
		a.statusBar.SetTemporaryMessage("Configuration reloaded")
	}

	a.eventManager.Dispatch(event.TypeConfigReloaded, event.ConfigReloadedData{})
	logger.Infof("App: configuration reloaded from %s", a.configPath)
}
