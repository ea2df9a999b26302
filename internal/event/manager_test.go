package event

import "testing"

func TestDispatchReachesSubscribers(t *testing.T) {
	m := NewManager()
	var got []string

	m.Subscribe(TypeBufferSaved, func(e Event) bool {
		data, ok := e.Data.(BufferSavedData)
		if !ok {
			t.Fatalf("expected BufferSavedData, got %T", e.Data)
		}
		got = append(got, "first:"+data.FilePath)
		return false
	})
	m.Subscribe(TypeBufferSaved, func(e Event) bool {
		got = append(got, "second")
		return false
	})

	m.Dispatch(TypeBufferSaved, BufferSavedData{FilePath: "a.txt"})

	if len(got) != 2 {
		t.Fatalf("expected 2 handler calls, got %d", len(got))
	}
	if got[0] != "first:a.txt" || got[1] != "second" {
		t.Errorf("unexpected call order: %v", got)
	}
}

func TestDispatchStopsWhenConsumed(t *testing.T) {
	m := NewManager()
	calls := 0

	m.Subscribe(TypeCursorMoved, func(e Event) bool {
		calls++
		return true // consume
	})
	m.Subscribe(TypeCursorMoved, func(e Event) bool {
		calls++
		return false
	})

	m.Dispatch(TypeCursorMoved, CursorMovedData{})

	if calls != 1 {
		t.Errorf("expected 1 call after consumption, got %d", calls)
	}
}

func TestDispatchWithoutSubscribersIsNoop(t *testing.T) {
	m := NewManager()
	m.Dispatch(TypeAppQuit, AppQuitData{}) // must not panic
}

func TestSubscribeDuringDispatch(t *testing.T) {
	m := NewManager()
	lateCalled := false

	m.Subscribe(TypeAppReady, func(e Event) bool {
		m.Subscribe(TypeAppReady, func(e Event) bool {
			lateCalled = true
			return false
		})
		return false
	})

	m.Dispatch(TypeAppReady, AppReadyData{})
	if lateCalled {
		t.Error("handler subscribed during dispatch must not run in same dispatch")
	}

	m.Dispatch(TypeAppReady, AppReadyData{})
	if !lateCalled {
		t.Error("late handler should run on the next dispatch")
	}
}
