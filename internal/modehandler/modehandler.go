// Package modehandler routes key events by input mode: normal typing,
// ':' command entry, '/' incremental find, and the pending surround
// operator started with leader-s.
package modehandler

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/seagrine/hem/internal/config"
	"github.com/seagrine/hem/internal/core"
	"github.com/seagrine/hem/internal/event"
	"github.com/seagrine/hem/internal/input"
	"github.com/seagrine/hem/internal/logger"
	"github.com/seagrine/hem/internal/plugin"
	"github.com/seagrine/hem/internal/statusbar"
)

// InputMode is the state that decides how a key event is interpreted.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
	ModeFind
	ModeSurround
)

func (m InputMode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeCommand:
		return "COMMAND"
	case ModeFind:
		return "FIND"
	case ModeSurround:
		return "SURROUND"
	}
	return "UNKNOWN"
}

// ModeHandler manages input modes, the leader key, command execution,
// and the surround pending-operator state.
type ModeHandler struct {
	editor         *core.Editor
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	quitSignal     chan<- struct{}
	quitOnce       sync.Once

	currentMode InputMode
	commands    map[string]plugin.CommandFunc

	cmdBuffer string

	findBuffer        string
	lastSearchTerm    string
	lastSearchForward bool

	// Leader state. Expiry is checked lazily on the next key event, so
	// no timer goroutine touches mode state.
	leaderPending  bool
	leaderDeadline time.Time

	pending pendingSurround

	forceQuitPending bool
}

// Config holds the dependencies for a ModeHandler.
type Config struct {
	Editor         *core.Editor
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	QuitSignal     chan<- struct{}
}

// New creates a ModeHandler starting in normal mode.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.InputProcessor == nil || cfg.EventManager == nil || cfg.StatusBar == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: missing required dependencies")
	}
	return &ModeHandler{
		editor:         cfg.Editor,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		quitSignal:     cfg.QuitSignal,
		currentMode:    ModeNormal,
		commands:       make(map[string]plugin.CommandFunc),
	}
}

// HandleKeyEvent routes a key event through the current mode. Reports
// whether the event changed anything worth redrawing.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	mh.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev})

	switch mh.currentMode {
	case ModeNormal:
		return mh.handleActionNormal(ev)
	case ModeCommand:
		return mh.handleActionCommand(mh.inputProcessor.ProcessEvent(ev))
	case ModeFind:
		return mh.handleActionFind(mh.inputProcessor.ProcessEvent(ev))
	case ModeSurround:
		return mh.handleActionSurround(ev)
	}
	logger.Warnf("ModeHandler: unknown input mode %v", mh.currentMode)
	return false
}

// handleActionNormal resolves the leader sequence, then executes the
// decoded action.
func (mh *ModeHandler) handleActionNormal(ev *tcell.EventKey) bool {
	isPlainRune := ev.Key() == tcell.KeyRune && ev.Modifiers() == tcell.ModNone

	if mh.leaderPending {
		mh.leaderPending = false
		mh.statusBar.SetPendingInput("")
		if time.Now().Before(mh.leaderDeadline) && isPlainRune {
			if leaderEvent, ok := mh.inputProcessor.LeaderAction(ev.Rune()); ok {
				return mh.executeAction(leaderEvent, ev)
			}
			logger.DebugTagf("event", "ModeHandler: unbound leader sequence %q", ev.Rune())
			return true
		}
		// Expired, or a non-rune key: fall through and handle normally.
	}

	if isPlainRune && ev.Rune() == config.DefaultLeaderKey {
		mh.leaderPending = true
		mh.leaderDeadline = time.Now().Add(config.SurroundInputTimeout)
		mh.statusBar.SetPendingInput(string(config.DefaultLeaderKey))
		return true
	}

	return mh.executeAction(mh.inputProcessor.ProcessEvent(ev), ev)
}

// setMode switches the input mode and announces the change.
func (mh *ModeHandler) setMode(mode InputMode) {
	if mh.currentMode == mode {
		return
	}
	mh.currentMode = mode
	mh.eventManager.Dispatch(event.TypeModeChanged, event.ModeChangedData{Mode: mode.String()})
	logger.DebugTagf("event", "ModeHandler: mode -> %s", mode)
}

// signalQuit tells the app to shut down. Safe to call more than once.
func (mh *ModeHandler) signalQuit() {
	mh.quitOnce.Do(func() { close(mh.quitSignal) })
}

// SignalQuit lets the app layer trigger the same single close of the
// quit channel that the quit keys use, e.g. for the ':q' commands.
func (mh *ModeHandler) SignalQuit() {
	mh.signalQuit()
}

// RegisterCommand adds a ':' command to the registry. Called via the
// plugin API.
func (mh *ModeHandler) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if _, exists := mh.commands[name]; exists {
		return fmt.Errorf("command %q already registered", name)
	}
	mh.commands[name] = cmdFunc
	logger.DebugTagf("event", "ModeHandler: registered command :%s", name)
	return nil
}

// GetCurrentMode returns the active input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCommandBuffer returns the partial command line, for display.
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return mh.cmdBuffer
	}
	return ""
}
