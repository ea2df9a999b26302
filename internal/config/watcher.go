package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/seagrine/hem/internal/logger"
	"github.com/seagrine/hem/internal/utils"
)

// watchDebounce coalesces the bursts of events editors produce when they
// rewrite a file (truncate+write, or write-rename).
const watchDebounce = 100 * time.Millisecond

// Watcher watches the config file and invokes a callback after changes.
type Watcher struct {
	path     string
	onChange func()
	fsw      *fsnotify.Watcher
	done     chan struct{}
	debounce utils.Debouncer
}

// NewWatcher starts watching path and calls onChange (debounced) whenever
// the file is written, created, or replaced. The directory is watched
// rather than the file so renames are picked up.
func NewWatcher(path string, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     path,
		onChange: onChange,
		fsw:      fsw,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.DebugTagf("config", "Config file event: %s", event.Op)
			w.debounce.Debounce(watchDebounce, w.onChange)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warnf("Config watcher error: %v", err)
		case <-w.done:
			w.debounce.Stop()
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
