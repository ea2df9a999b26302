package highlight

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/seagrine/hem/internal/types"
)

func testRegions() []types.HighlightRegion {
	return []types.HighlightRegion{
		{Start: types.Position{Line: 0, Col: 2}, End: types.Position{Line: 0, Col: 3}, Type: types.HighlightSurround},
		{Start: types.Position{Line: 0, Col: 8}, End: types.Position{Line: 0, Col: 9}, Type: types.HighlightSurround},
	}
}

func TestFlashExpiresAndRedraws(t *testing.T) {
	var redraws atomic.Int32
	m := NewManager(func() { redraws.Add(1) })

	m.Flash(testRegions(), 30*time.Millisecond)
	if !m.Active() {
		t.Fatalf("expected flash active immediately after Flash")
	}
	if got := len(m.Regions()); got != 2 {
		t.Fatalf("regions: expected 2, got %d", got)
	}

	time.Sleep(120 * time.Millisecond)
	if m.Active() {
		t.Errorf("expected flash expired after duration")
	}
	if got := redraws.Load(); got != 1 {
		t.Errorf("redraws: expected 1, got %d", got)
	}
}

func TestFlashSupersedesPrevious(t *testing.T) {
	var redraws atomic.Int32
	m := NewManager(func() { redraws.Add(1) })

	m.Flash(testRegions(), 30*time.Millisecond)
	m.Flash(testRegions()[:1], 200*time.Millisecond)

	// The first timer's deadline passes while the second flash is live.
	time.Sleep(90 * time.Millisecond)
	if !m.Active() {
		t.Errorf("expected second flash still active past first deadline")
	}
	if got := len(m.Regions()); got != 1 {
		t.Errorf("regions: expected 1 from second flash, got %d", got)
	}
	if got := redraws.Load(); got != 0 {
		t.Errorf("redraws: expected 0 while flash live, got %d", got)
	}

	m.Shutdown()
}

func TestClearCancelsTimerWithoutRedraw(t *testing.T) {
	var redraws atomic.Int32
	m := NewManager(func() { redraws.Add(1) })

	m.Flash(testRegions(), 30*time.Millisecond)
	m.Clear()
	if m.Active() {
		t.Fatalf("expected no active flash after Clear")
	}

	time.Sleep(90 * time.Millisecond)
	if got := redraws.Load(); got != 0 {
		t.Errorf("redraws: expected 0 after manual clear, got %d", got)
	}
}

func TestFlashEmptyRegionsClears(t *testing.T) {
	m := NewManager(nil)
	m.Flash(testRegions(), 50*time.Millisecond)
	m.Flash(nil, 50*time.Millisecond)
	if m.Active() {
		t.Errorf("expected empty flash to clear active regions")
	}
	if got := m.Regions(); got != nil {
		t.Errorf("regions: expected nil, got %v", got)
	}
}
