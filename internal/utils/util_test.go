package utils

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestRuneIndexToByteOffset(t *testing.T) {
	line := []byte("héllo") // h=1 byte, é=2 bytes

	tests := []struct {
		runeIndex int
		expected  int
	}{
		{0, 0},
		{1, 1},
		{2, 3}, // after the two-byte é
		{5, 7}, // end of line
		{6, -1},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := RuneIndexToByteOffset(line, tt.runeIndex); got != tt.expected {
			t.Errorf("RuneIndexToByteOffset(%d): expected %d, got %d", tt.runeIndex, tt.expected, got)
		}
	}
}

func TestByteOffsetToRuneIndex(t *testing.T) {
	line := []byte("héllo")

	tests := []struct {
		byteOffset int
		expected   int
	}{
		{0, 0},
		{1, 1},
		{2, 1}, // inside é
		{3, 2},
		{7, 5},
		{99, 5}, // clamped
		{-1, 0},
	}
	for _, tt := range tests {
		if got := ByteOffsetToRuneIndex(line, tt.byteOffset); got != tt.expected {
			t.Errorf("ByteOffsetToRuneIndex(%d): expected %d, got %d", tt.byteOffset, tt.expected, got)
		}
	}
}

func TestDebouncerCoalesces(t *testing.T) {
	var calls atomic.Int32
	var d Debouncer

	for i := 0; i < 5; i++ {
		d.Debounce(20*time.Millisecond, func() { calls.Add(1) })
	}

	time.Sleep(60 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 call after burst, got %d", got)
	}
}

func TestDebouncerStop(t *testing.T) {
	var calls atomic.Int32
	var d Debouncer

	d.Debounce(20*time.Millisecond, func() { calls.Add(1) })
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("expected no calls after Stop, got %d", got)
	}
}
