package event

import (
	"sync"

	"github.com/seagrine/hem/internal/logger"
)

// Handler is the subscriber signature. Returning true consumes the event
// and stops propagation to later subscribers.
type Handler func(e Event) bool

// Manager handles subscriptions and dispatching. Dispatch is synchronous;
// handlers run on the dispatching goroutine in subscription order.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewManager creates an empty event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe registers a handler for an event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[eventType] = append(m.handlers[eventType], handler)
	logger.DebugTagf("event", "Handler subscribed to %v", eventType)
}

// Dispatch sends an event to the handlers registered for its type.
// The handler slice is copied before iteration so a handler that
// subscribes during dispatch cannot mutate the list under us.
func (m *Manager) Dispatch(eventType Type, data any) {
	m.mu.RLock()
	registered := m.handlers[eventType]
	handlers := make([]Handler, len(registered))
	copy(handlers, registered)
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	e := Event{Type: eventType, Data: data}
	for _, handler := range handlers {
		if handler(e) {
			logger.DebugTagf("event", "%v consumed", eventType)
			return
		}
	}
}
