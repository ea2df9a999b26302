// internal/theme/manager.go
package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/seagrine/hem/internal/config"
	"github.com/seagrine/hem/internal/logger"
)

// Manager holds loaded themes and tracks the active one.
type Manager struct {
	themes      map[string]*Theme // lowercase name -> theme
	activeTheme *Theme
	themesDir   string
	mutex       sync.RWMutex
}

// NewManager loads the built-in theme plus any .toml themes from the
// user themes directory and picks the initial active theme.
func NewManager() *Manager {
	mgr := &Manager{
		themes: make(map[string]*Theme),
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		logger.Warnf("Could not find user config dir: %v. Custom themes unavailable.", err)
		mgr.themesDir = ""
	} else {
		mgr.themesDir = filepath.Join(configDir, config.ConfigDirName, config.ThemesDirName)
	}

	mgr.loadBuiltinThemes()

	if mgr.themesDir != "" {
		if err := mgr.LoadThemesFromDir(); err != nil {
			logger.Errorf("Error loading themes from '%s': %v", mgr.themesDir, err)
		}
	}

	if t, ok := mgr.themes[strings.ToLower(HemDark.Name)]; ok {
		mgr.activeTheme = t
	} else if len(mgr.themes) > 0 {
		for _, t := range mgr.themes {
			mgr.activeTheme = t
			break
		}
	}

	if mgr.activeTheme == nil {
		logger.Errorf("No themes loaded, falling back to failsafe theme")
		mgr.activeTheme = &Theme{
			Name: "Failsafe",
			Styles: map[string]tcell.Style{
				"Default": tcell.StyleDefault,
			},
		}
	} else {
		logger.Infof("Initial active theme: %s", mgr.activeTheme.Name)
	}

	return mgr
}

// loadBuiltinThemes registers the themes compiled into the binary.
func (m *Manager) loadBuiltinThemes() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.themes[strings.ToLower(HemDark.Name)] = &HemDark
	logger.DebugTagf("theme", "Loaded built-in theme: %s", HemDark.Name)
}

// LoadThemesFromDir scans the themes directory for .toml files. A file
// that fails to parse is skipped, not fatal.
func (m *Manager) LoadThemesFromDir() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.themesDir == "" {
		return errors.New("theme directory path is not set")
	}

	if _, err := os.Stat(m.themesDir); os.IsNotExist(err) {
		logger.Infof("Theme directory '%s' does not exist, creating it", m.themesDir)
		if err := os.MkdirAll(m.themesDir, 0o755); err != nil {
			return fmt.Errorf("failed to create theme dir: %w", err)
		}
		return nil
	}

	files, err := os.ReadDir(m.themesDir)
	if err != nil {
		return fmt.Errorf("failed to read theme directory '%s': %w", m.themesDir, err)
	}

	loadedCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".toml") {
			continue
		}
		filePath := filepath.Join(m.themesDir, file.Name())
		theme, err := LoadThemeFromFile(filePath)
		if err != nil {
			logger.Warnf("Failed to load theme from '%s': %v", filePath, err)
			continue
		}

		nameLower := strings.ToLower(theme.Name)
		if existing, ok := m.themes[nameLower]; ok {
			logger.Warnf("Theme '%s' from '%s' overrides existing theme '%s'", theme.Name, filePath, existing.Name)
		}
		m.themes[nameLower] = theme
		loadedCount++
	}
	if loadedCount > 0 {
		logger.Infof("Loaded %d custom theme(s) from %s", loadedCount, m.themesDir)
	}
	return nil
}

// Current returns the active theme.
func (m *Manager) Current() *Theme {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.activeTheme == nil {
		return &Theme{Name: "Failsafe", Styles: map[string]tcell.Style{"Default": tcell.StyleDefault}}
	}
	return m.activeTheme
}

// SetTheme activates a theme by name (case-insensitive).
func (m *Manager) SetTheme(name string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	theme, ok := m.themes[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("theme '%s' not found", name)
	}

	if m.activeTheme != theme {
		m.activeTheme = theme
		logger.Infof("Active theme set to: %s", theme.Name)
	}
	return nil
}

// ListThemes returns the names of all loaded themes, sorted.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	names := make([]string, 0, len(m.themes))
	for _, theme := range m.themes {
		names = append(names, theme.Name)
	}
	sort.Strings(names)
	return names
}

// GetTheme looks up a theme by name (case-insensitive).
func (m *Manager) GetTheme(name string) (*Theme, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	theme, ok := m.themes[strings.ToLower(name)]
	return theme, ok
}
