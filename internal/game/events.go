package game

import (
	"slices"
	"sync"
	"time"
)

// EventType represents the type of game event.
type EventType int

const (
	// EventAction is emitted after every successfully applied action.
	EventAction EventType = iota
	// EventShopCulled is emitted when a four-of-a-kind display was replaced.
	EventShopCulled
	// EventTurnStarted is emitted when the next player becomes active.
	EventTurnStarted
	// EventGameOver is emitted once, with final scores.
	EventGameOver
)

// String returns a human-readable representation of the event type.
func (t EventType) String() string {
	switch t {
	case EventAction:
		return "Action"
	case EventShopCulled:
		return "ShopCulled"
	case EventTurnStarted:
		return "TurnStarted"
	case EventGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Event represents a game event.
type Event struct {
	Seq       uint64         `json:"seq"`
	Type      EventType      `json:"type"`
	Game      string         `json:"game"`
	Turn      int            `json:"turn"`
	Player    string         `json:"player,omitempty"`
	Action    Action         `json:"-"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}

// EventBus manages event subscriptions and delivery.
type EventBus interface {
	// Subscribe registers a handler under a subscriber id.
	Subscribe(id string, handler func(Event))

	// Unsubscribe removes the handler for an id.
	Unsubscribe(id string)

	// Publish sends an event to subscribed handlers.
	Publish(event Event)
}

// SimpleEventBus is a basic in-memory event bus implementation. Handlers run
// synchronously in subscriber-id order so that logs see events in sequence.
type SimpleEventBus struct {
	mu       sync.RWMutex
	handlers map[string]func(Event)
}

// NewSimpleEventBus creates a new event bus.
func NewSimpleEventBus() *SimpleEventBus {
	return &SimpleEventBus{handlers: make(map[string]func(Event))}
}

// Subscribe registers a handler under a subscriber id.
func (bus *SimpleEventBus) Subscribe(id string, handler func(Event)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.handlers[id] = handler
}

// Unsubscribe removes the handler for an id.
func (bus *SimpleEventBus) Unsubscribe(id string) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.handlers, id)
}

// Publish sends an event to every subscribed handler.
func (bus *SimpleEventBus) Publish(event Event) {
	bus.mu.RLock()
	ids := make([]string, 0, len(bus.handlers))
	for id := range bus.handlers {
		ids = append(ids, id)
	}
	handlers := make([]func(Event), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		handlers = append(handlers, bus.handlers[id])
	}
	bus.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
}

// NullEventBus is an event bus that does nothing.
type NullEventBus struct{}

// NewNullEventBus creates a new null event bus.
func NewNullEventBus() *NullEventBus { return &NullEventBus{} }

// Subscribe does nothing.
func (bus *NullEventBus) Subscribe(id string, handler func(Event)) {}

// Unsubscribe does nothing.
func (bus *NullEventBus) Unsubscribe(id string) {}

// Publish does nothing.
func (bus *NullEventBus) Publish(event Event) {}
