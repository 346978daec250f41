// Package notification subscribes to domain events and mails the agency inbox.
// Delivery is best-effort: failures are logged and never retried.
package notification

import (
	"context"
	"time"

	"realty_portal_backend/internal/email"
	"realty_portal_backend/internal/events"
	"realty_portal_backend/platform/logger"
)

// Notifier turns domain events into outbound email.
type Notifier struct {
	sender        email.Sender
	notifyAddress string
	log           *logger.Logger
}

// New creates a Notifier that delivers to notifyAddress.
func New(sender email.Sender, notifyAddress string, log *logger.Logger) *Notifier {
	return &Notifier{
		sender:        sender,
		notifyAddress: notifyAddress,
		log:           log,
	}
}

// Subscribe registers the notifier's handlers on the event bus. It is a no-op
// when no sender or notify address is configured.
func (n *Notifier) Subscribe(bus events.Bus) {
	if n.sender == nil || n.notifyAddress == "" {
		n.log.Warn("email notifications disabled: sender or notify address not configured")
		return
	}

	bus.Subscribe(events.ContactMessageReceived{}.EventName(), events.HandlerFunc(n.handleContactMessage))
	bus.Subscribe(events.TaskDueSoon{}.EventName(), events.HandlerFunc(n.handleTaskDueSoon))
}

func (n *Notifier) handleContactMessage(ctx context.Context, event events.Event) error {
	msg, ok := event.(events.ContactMessageReceived)
	if !ok {
		return nil
	}

	err := n.sender.SendContactNotification(ctx, n.notifyAddress, email.ContactNotificationData{
		Name:    msg.Name,
		Email:   msg.Email,
		Phone:   msg.Phone,
		Message: msg.Message,
	})
	if err != nil {
		n.log.Error("failed to send contact notification", "leadId", msg.LeadID, "error", err)
		return nil
	}

	n.log.Info("contact notification sent", "leadId", msg.LeadID)
	return nil
}

func (n *Notifier) handleTaskDueSoon(ctx context.Context, event events.Event) error {
	task, ok := event.(events.TaskDueSoon)
	if !ok {
		return nil
	}

	err := n.sender.SendTaskReminder(ctx, n.notifyAddress, email.TaskReminderData{
		Title:   task.Title,
		DueDate: task.DueDate.Format(time.RFC3339),
	})
	if err != nil {
		n.log.Error("failed to send task reminder", "taskId", task.TaskID, "error", err)
		return nil
	}

	n.log.Info("task reminder sent", "taskId", task.TaskID)
	return nil
}
