// Package email delivers transactional mail for the CRM.
package email

import "context"

// Sender delivers notification emails to the agency inbox.
type Sender interface {
	SendContactNotification(ctx context.Context, toEmail string, data ContactNotificationData) error
	SendTaskReminder(ctx context.Context, toEmail string, data TaskReminderData) error
}

// ContactNotificationData describes a website contact submission.
type ContactNotificationData struct {
	Name     string
	Email    string
	Phone    string
	Message  string
	Property string
}

// TaskReminderData describes a task approaching its due date.
type TaskReminderData struct {
	Title       string
	Description string
	DueDate     string
	LeadName    string
}
