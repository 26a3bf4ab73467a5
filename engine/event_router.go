package engine

import (
	"github.com/lixenwraith/filament/event"
)

// EventHandler processes specific event types
// Systems implement this interface to receive routed events
type EventHandler interface {
	// HandleEvent processes a single event
	// Called synchronously during the dispatch phase, before the
	// system updates run
	HandleEvent(world *World, ev event.Event)

	// EventTypes returns the event types this handler processes
	// The router uses this for registration
	EventTypes() []event.EventType
}

// EventRouter dispatches queued events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch (no concurrency issues with World mutation)
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
//   - All events consumed and dispatched before the system updates run
type EventRouter struct {
	handlers map[event.EventType][]EventHandler
	queue    *event.Queue
}

// NewEventRouter creates a router attached to the given queue
func NewEventRouter(queue *event.Queue) *EventRouter {
	return &EventRouter{
		handlers: make(map[event.EventType][]EventHandler),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
// A handler can register for multiple event types
func (r *EventRouter) Register(handler EventHandler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// DispatchAll consumes all pending events and routes to handlers
// Events are processed in FIFO order; all handlers for an event are
// called before moving to the next event
//
// Must be called once per tick, BEFORE the system updates
func (r *EventRouter) DispatchAll(world *World) {
	events := r.queue.Consume()
	for _, ev := range events {
		handlers := r.handlers[ev.Type]
		for _, h := range handlers {
			h.HandleEvent(world, ev)
		}
	}
}

// HasHandlers returns true if any handlers are registered for the given type
func (r *EventRouter) HasHandlers(t event.EventType) bool {
	return len(r.handlers[t]) > 0
}

// HandlerCount returns the number of handlers registered for the given type
func (r *EventRouter) HandlerCount(t event.EventType) int {
	return len(r.handlers[t])
}
