package plugin

import (
	"fmt"
	"sync"

	"github.com/seagrine/hem/internal/logger"
)

// Manager handles registration and lifecycle of plugins.
type Manager struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
}

// NewManager creates an empty plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin instance. Must be called before
// InitializePlugins.
func (m *Manager) Register(p Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := p.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: name cannot be empty")
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: %q already registered", name)
	}

	m.plugins[name] = p
	logger.Debugf("PluginManager: registered plugin %q", name)
	return nil
}

// InitializePlugins calls Initialize on every registered plugin. A
// failing plugin is logged and skipped so the rest still load.
func (m *Manager) InitializePlugins(api EditorAPI) {
	m.mu.RLock()
	pluginsToInit := make([]Plugin, 0, len(m.plugins))
	for _, p := range m.plugins {
		pluginsToInit = append(pluginsToInit, p)
	}
	m.mu.RUnlock()

	for _, p := range pluginsToInit {
		if err := p.Initialize(api); err != nil {
			logger.Errorf("PluginManager: initializing %q failed: %v", p.Name(), err)
			continue
		}
		logger.Debugf("PluginManager: initialized plugin %q", p.Name())
	}
}

// ShutdownPlugins calls Shutdown on all registered plugins.
func (m *Manager) ShutdownPlugins() {
	m.mu.RLock()
	pluginsToShutdown := make([]Plugin, 0, len(m.plugins))
	for _, p := range m.plugins {
		pluginsToShutdown = append(pluginsToShutdown, p)
	}
	m.mu.RUnlock()

	for _, p := range pluginsToShutdown {
		if err := p.Shutdown(); err != nil {
			logger.Warnf("PluginManager: shutting down %q failed: %v", p.Name(), err)
		}
	}
}

// GetPlugin returns a registered plugin by name.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.plugins[name]
	return p, exists
}
