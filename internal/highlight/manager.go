// Package highlight owns the transient regions drawn after a surround
// operation locates or edits a pair. Regions are set with a lifetime and
// cleared by a timer, so the flash never outlives user attention.
package highlight

import (
	"sync"
	"time"

	"github.com/seagrine/hem/internal/logger"
	"github.com/seagrine/hem/internal/types"
)

// Manager holds the currently flashed regions and the timer that expires
// them. A redraw callback wakes the UI when the flash expires, since
// expiry happens off the event loop.
type Manager struct {
	appRedraw func()

	mu      sync.Mutex
	regions []types.HighlightRegion
	timer   *time.Timer
	gen     uint64 // invalidates timers from superseded flashes
}

// NewManager creates a flash manager. redrawFunc is called (from a timer
// goroutine) whenever regions expire and the screen needs repainting.
func NewManager(redrawFunc func()) *Manager {
	return &Manager{
		appRedraw: redrawFunc,
		regions:   make([]types.HighlightRegion, 0, 2),
	}
}

// Flash replaces the active regions and arms the expiry timer. A flash
// already in progress is superseded, not extended.
func (m *Manager) Flash(regions []types.HighlightRegion, duration time.Duration) {
	if len(regions) == 0 || duration <= 0 {
		m.Clear()
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timer != nil {
		m.timer.Stop()
	}
	m.regions = append(m.regions[:0], regions...)
	m.gen++
	gen := m.gen
	logger.DebugTagf("highlight", "Flashing %d region(s) for %v", len(regions), duration)
	m.timer = time.AfterFunc(duration, func() { m.expire(gen) })
}

// expire clears the flash if it has not been superseded since the timer
// was armed.
func (m *Manager) expire(gen uint64) {
	m.mu.Lock()
	if gen != m.gen || len(m.regions) == 0 {
		m.mu.Unlock()
		return
	}
	m.regions = m.regions[:0]
	m.timer = nil
	m.mu.Unlock()

	logger.DebugTagf("highlight", "Flash expired, requesting redraw")
	if m.appRedraw != nil {
		m.appRedraw()
	}
}

// Regions returns a copy of the active flash regions, empty after expiry.
func (m *Manager) Regions() []types.HighlightRegion {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.regions) == 0 {
		return nil
	}
	out := make([]types.HighlightRegion, len(m.regions))
	copy(out, m.regions)
	return out
}

// Active reports whether a flash is currently visible.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.regions) > 0
}

// Clear drops the flash immediately. Callers that clear in response to an
// edit are about to redraw anyway, so no redraw is requested here.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.gen++
	m.regions = m.regions[:0]
}

// Shutdown stops any pending expiry timer.
func (m *Manager) Shutdown() {
	m.Clear()
}
