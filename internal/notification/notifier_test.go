package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"realty_portal_backend/internal/email"
	"realty_portal_backend/internal/events"
	"realty_portal_backend/platform/logger"
)

type countingSender struct {
	contactCalls  int
	reminderCalls int
	lastContact   email.ContactNotificationData
	lastReminder  email.TaskReminderData
	err           error
}

func (s *countingSender) SendContactNotification(_ context.Context, _ string, data email.ContactNotificationData) error {
	s.contactCalls++
	s.lastContact = data
	return s.err
}

func (s *countingSender) SendTaskReminder(_ context.Context, _ string, data email.TaskReminderData) error {
	s.reminderCalls++
	s.lastReminder = data
	return s.err
}

var _ email.Sender = (*countingSender)(nil)

func TestContactMessageSendsEmail(t *testing.T) {
	sender := &countingSender{}
	log := logger.New("test")
	notifier := New(sender, "office@example.com", log)
	bus := events.NewInMemoryBus(log)
	notifier.Subscribe(bus)

	err := bus.PublishSync(context.Background(), events.ContactMessageReceived{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    7,
		Name:      "Carol",
		Email:     "carol@example.com",
		Message:   "Interested in the canal house",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sender.contactCalls != 1 {
		t.Fatalf("contact emails sent = %d, want 1", sender.contactCalls)
	}
	if sender.lastContact.Name != "Carol" || sender.lastContact.Email != "carol@example.com" {
		t.Errorf("unexpected contact data: %+v", sender.lastContact)
	}
}

func TestTaskDueSoonSendsReminder(t *testing.T) {
	sender := &countingSender{}
	log := logger.New("test")
	notifier := New(sender, "office@example.com", log)
	bus := events.NewInMemoryBus(log)
	notifier.Subscribe(bus)

	due := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	err := bus.PublishSync(context.Background(), events.TaskDueSoon{
		BaseEvent: events.NewBaseEvent(),
		TaskID:    3,
		Title:     "Call Bob about viewing",
		DueDate:   due,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sender.reminderCalls != 1 {
		t.Fatalf("reminder emails sent = %d, want 1", sender.reminderCalls)
	}
	if sender.lastReminder.Title != "Call Bob about viewing" {
		t.Errorf("unexpected reminder data: %+v", sender.lastReminder)
	}
}

func TestSendFailureIsSwallowed(t *testing.T) {
	sender := &countingSender{err: errors.New("smtp down")}
	log := logger.New("test")
	notifier := New(sender, "office@example.com", log)
	bus := events.NewInMemoryBus(log)
	notifier.Subscribe(bus)

	err := bus.PublishSync(context.Background(), events.ContactMessageReceived{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    7,
		Name:      "Carol",
	})
	if err != nil {
		t.Fatalf("delivery failure should not propagate, got %v", err)
	}
	if sender.contactCalls != 1 {
		t.Fatalf("contact emails attempted = %d, want 1", sender.contactCalls)
	}
}

func TestSubscribeWithoutSenderIsNoOp(t *testing.T) {
	log := logger.New("test")
	notifier := New(nil, "", log)
	bus := events.NewInMemoryBus(log)
	notifier.Subscribe(bus)

	err := bus.PublishSync(context.Background(), events.ContactMessageReceived{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
