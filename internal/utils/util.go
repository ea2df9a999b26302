// Package utils holds small helpers shared across packages.
package utils

import (
	"sync"
	"time"
	"unicode/utf8"
)

// RuneIndexToByteOffset converts a rune index within line to a byte
// offset. An index equal to the rune count maps to len(line); anything
// beyond that returns -1.
func RuneIndexToByteOffset(line []byte, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	byteOffset := 0
	runeCount := 0
	for byteOffset < len(line) {
		if runeCount == runeIndex {
			return byteOffset
		}
		_, size := utf8.DecodeRune(line[byteOffset:])
		byteOffset += size
		runeCount++
	}
	if runeCount == runeIndex {
		return len(line)
	}
	return -1
}

// ByteOffsetToRuneIndex converts a byte offset within line to a rune
// index. Offsets inside a multi-byte rune map to that rune's index;
// offsets past the end clamp to the rune count.
func ByteOffsetToRuneIndex(line []byte, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	runeIndex := 0
	offset := 0
	for offset < byteOffset {
		_, size := utf8.DecodeRune(line[offset:])
		if offset+size > byteOffset {
			break
		}
		offset += size
		runeIndex++
	}
	return runeIndex
}

// Debouncer coalesces bursts of calls into one, running fn only after
// duration has passed without another call.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
}

// Debounce schedules fn after duration, cancelling any pending call.
func (d *Debouncer) Debounce(duration time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(duration, func() {
		d.mu.Lock()
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
