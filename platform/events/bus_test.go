package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"realty_portal_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func TestPublishOutlivesCallerContext(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	seen := make(chan error, 1)
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, _ Event) error {
		// Simulate work that finishes well after the publishing request
		// has returned and its context has been cancelled.
		time.Sleep(20 * time.Millisecond)
		seen <- ctx.Err()
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	bus.Publish(ctx, testEvent{BaseEvent: NewBaseEvent(), name: "test.event"})
	cancel()

	select {
	case err := <-seen:
		if err != nil {
			t.Fatalf("handler context err = %v, want nil after caller cancel", err)
		}
	case <-time.After(time.Second):
		t.Fatal("handler was not invoked")
	}
}

func TestPublishSyncJoinsHandlerErrors(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	errBoom := errors.New("boom")
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error {
		return errBoom
	}))
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error {
		return nil
	}))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "test.event"})
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected joined handler error, got %v", err)
	}
}

func TestPublishIgnoresUnsubscribedEvents(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	invoked := make(chan struct{}, 1)
	bus.Subscribe("test.other", HandlerFunc(func(context.Context, Event) error {
		invoked <- struct{}{}
		return nil
	}))

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "test.event"})

	select {
	case <-invoked:
		t.Fatal("handler for a different event was invoked")
	case <-time.After(50 * time.Millisecond):
	}
}
