package events

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event represents a domain event
type Event struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Source        string    `json:"source"`
	Timestamp     time.Time `json:"timestamp"`
	CorrelationID string    `json:"correlation_id,omitempty"`

	// Actor information
	ActorID   string `json:"actor_id,omitempty"`
	ActorType string `json:"actor_type,omitempty"` // patient, staff, system

	// Event data
	Data any `json:"data"`
}

// NewEvent creates a new event with auto-generated ID and timestamp
func NewEvent(eventType, source string, data any) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    source,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// WithActor sets the actor information on the event
func (e Event) WithActor(actorID, actorType string) Event {
	e.ActorID = actorID
	e.ActorType = actorType
	return e
}

// WithCorrelation sets the correlation ID for request tracing
func (e Event) WithCorrelation(correlationID string) Event {
	e.CorrelationID = correlationID
	return e
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// EventBus defines the interface for event publishing and subscription
type EventBus interface {
	// Publish publishes an event to the bus
	Publish(ctx context.Context, event Event) error

	// Subscribe registers a handler for events matching a pattern.
	// A pattern is an event type prefix; "*" matches everything.
	Subscribe(pattern string, consumerName string, handler Handler)

	// Close shuts the bus down
	Close()
}

// Bus is an in-process event bus. The demo runs with no external broker,
// so delivery is synchronous fan-out to matching subscribers; handler
// errors are logged and never fail the publisher.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscription
	closed bool
}

type subscription struct {
	pattern  string
	consumer string
	handler  Handler
}

// Ensure Bus implements EventBus
var _ EventBus = (*Bus)(nil)

// NewBus creates a new in-process event bus
func NewBus() *Bus {
	return &Bus{}
}

// Publish delivers the event to all matching subscribers
func (b *Bus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil
	}

	for _, sub := range b.subs {
		if !matches(sub.pattern, event.Type) {
			continue
		}
		if err := sub.handler(ctx, event); err != nil {
			log.Printf("event handler %s failed on %s: %v", sub.consumer, event.Type, err)
		}
	}

	return nil
}

// Subscribe registers a handler for events matching a pattern
func (b *Bus) Subscribe(pattern string, consumerName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subs = append(b.subs, subscription{
		pattern:  pattern,
		consumer: consumerName,
		handler:  handler,
	})
}

// Close shuts the bus down; subsequent publishes are dropped
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}

func matches(pattern, eventType string) bool {
	if pattern == "*" || pattern == "" {
		return true
	}
	return strings.HasPrefix(eventType, pattern)
}
