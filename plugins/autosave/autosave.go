// Package autosave periodically writes the buffer to disk when it has
// unsaved changes. Configured through the [plugins.autosave] table:
//
//	[plugins.autosave]
//	enabled = true
//	interval = "30s"
package autosave

import (
	"sync"
	"time"

	"github.com/seagrine/hem/internal/event"
	"github.com/seagrine/hem/internal/logger"
	"github.com/seagrine/hem/internal/plugin"
)

var _ plugin.Plugin = (*AutoSave)(nil)

const (
	defaultEnabled  = false
	defaultInterval = time.Minute
)

// AutoSave runs a ticker goroutine that saves the buffer whenever it is
// modified and has a file name.
type AutoSave struct {
	api plugin.EditorAPI

	mu       sync.Mutex
	enabled  bool
	interval time.Duration
	stop     chan struct{}
	wg       sync.WaitGroup
}

// New creates the plugin.
func New() plugin.Plugin {
	return &AutoSave{
		enabled:  defaultEnabled,
		interval: defaultInterval,
	}
}

func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads the plugin config and starts the saver loop if
// enabled. A config reload reconfigures the loop in place.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api
	p.configure()

	api.SubscribeEvent(event.TypeConfigReloaded, func(e event.Event) bool {
		p.configure()
		return false
	})
	return nil
}

// Shutdown stops the saver loop and waits for it to finish.
func (p *AutoSave) Shutdown() error {
	p.mu.Lock()
	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
	return nil
}

// configure applies the current [plugins.autosave] settings, restarting
// the saver loop when they changed. Safe to call repeatedly.
func (p *AutoSave) configure() {
	enabled, interval := p.readConfig()

	p.mu.Lock()
	defer p.mu.Unlock()

	if enabled == p.enabled && interval == p.interval {
		return
	}

	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
	p.enabled = enabled
	p.interval = interval

	if enabled {
		p.stop = make(chan struct{})
		p.wg.Add(1)
		go p.saverLoop(interval, p.stop)
	}
	logger.Infof("autosave: enabled=%v interval=%v", enabled, interval)
}

// readConfig pulls enabled and interval from the plugin config table,
// falling back to defaults on missing or malformed values.
func (p *AutoSave) readConfig() (bool, time.Duration) {
	enabled := defaultEnabled
	interval := defaultInterval

	if v, ok := p.api.GetPluginConfigValue(p.Name(), "enabled"); ok {
		if b, isBool := v.(bool); isBool {
			enabled = b
		} else {
			logger.Warnf("autosave: 'enabled' has type %T, expected bool", v)
		}
	}

	if v, ok := p.api.GetPluginConfigValue(p.Name(), "interval"); ok {
		s, isStr := v.(string)
		if !isStr {
			logger.Warnf("autosave: 'interval' has type %T, expected duration string", v)
			return enabled, interval
		}
		d, err := time.ParseDuration(s)
		switch {
		case err != nil:
			logger.Warnf("autosave: bad 'interval' %q: %v", s, err)
		case d <= 0:
			logger.Warnf("autosave: 'interval' must be positive, got %q", s)
		default:
			interval = d
		}
	}

	return enabled, interval
}

func (p *AutoSave) saverLoop(interval time.Duration, stop <-chan struct{}) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.saveIfModified()
		case <-stop:
			return
		}
	}
}

// saveIfModified writes the buffer when it is dirty. Buffers without a
// file name are skipped.
func (p *AutoSave) saveIfModified() {
	if !p.api.IsBufferModified() {
		return
	}

	path := p.api.GetBufferFilePath()
	if path == "" {
		logger.DebugTagf("plugin", "autosave: buffer has no name, skipping")
		return
	}

	if err := p.api.SaveBuffer(); err != nil {
		logger.Errorf("autosave: save failed for %q: %v", path, err)
		return
	}
	logger.Infof("autosave: wrote %s", path)
}
