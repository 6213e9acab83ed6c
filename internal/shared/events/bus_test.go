package events

import (
	"context"
	"fmt"
	"testing"
)

func TestNewEvent(t *testing.T) {
	event := NewEvent("patient.registered", "patient", map[string]any{"patient_id": 1})

	if event.ID == "" {
		t.Error("Event should get a generated ID")
	}
	if event.Type != "patient.registered" || event.Source != "patient" {
		t.Errorf("Unexpected event identity: %s / %s", event.Type, event.Source)
	}
	if event.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}

	other := NewEvent("patient.registered", "patient", nil)
	if other.ID == event.ID {
		t.Error("Event IDs must be unique")
	}
}

func TestWithActorAndCorrelation(t *testing.T) {
	base := NewEvent("appointment.booked", "appointment", nil)

	decorated := base.WithActor("1", "patient").WithCorrelation("req-123")
	if decorated.ActorID != "1" || decorated.ActorType != "patient" {
		t.Errorf("Unexpected actor: %s / %s", decorated.ActorID, decorated.ActorType)
	}
	if decorated.CorrelationID != "req-123" {
		t.Errorf("Unexpected correlation ID: %s", decorated.CorrelationID)
	}
	if base.ActorID != "" || base.CorrelationID != "" {
		t.Error("Decoration must not mutate the original event")
	}
}

func TestBusPatternMatching(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var all, billing, exact []string
	bus.Subscribe("*", "audit", func(ctx context.Context, e Event) error {
		all = append(all, e.Type)
		return nil
	})
	bus.Subscribe("billing.", "billing-watch", func(ctx context.Context, e Event) error {
		billing = append(billing, e.Type)
		return nil
	})
	bus.Subscribe("patient.registered", "welcome", func(ctx context.Context, e Event) error {
		exact = append(exact, e.Type)
		return nil
	})

	ctx := context.Background()
	bus.Publish(ctx, NewEvent("patient.registered", "patient", nil))
	bus.Publish(ctx, NewEvent("billing.payment.simulated", "billing", nil))
	bus.Publish(ctx, NewEvent("feedback.received", "feedback", nil))

	if len(all) != 3 {
		t.Errorf("Wildcard subscriber should see all events, got %d", len(all))
	}
	if len(billing) != 1 || billing[0] != "billing.payment.simulated" {
		t.Errorf("Prefix subscriber mismatch: %v", billing)
	}
	if len(exact) != 1 {
		t.Errorf("Exact subscriber mismatch: %v", exact)
	}
}

func TestBusHandlerErrorDoesNotFailPublish(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	delivered := 0
	bus.Subscribe("*", "broken", func(ctx context.Context, e Event) error {
		return fmt.Errorf("handler exploded")
	})
	bus.Subscribe("*", "healthy", func(ctx context.Context, e Event) error {
		delivered++
		return nil
	})

	if err := bus.Publish(context.Background(), NewEvent("patient.registered", "patient", nil)); err != nil {
		t.Errorf("Publish should not propagate handler errors, got %v", err)
	}
	if delivered != 1 {
		t.Errorf("Later subscribers should still be reached, got %d deliveries", delivered)
	}
}

func TestBusClosedDropsEvents(t *testing.T) {
	bus := NewBus()

	delivered := 0
	bus.Subscribe("*", "audit", func(ctx context.Context, e Event) error {
		delivered++
		return nil
	})

	bus.Close()
	bus.Publish(context.Background(), NewEvent("patient.registered", "patient", nil))

	if delivered != 0 {
		t.Errorf("Closed bus must drop events, got %d deliveries", delivered)
	}
}
