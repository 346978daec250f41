package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

const (
	subjectContactNotificationFmt = "New contact request from %s"
	subjectTaskReminderFmt        = "Reminder: %s"
)

// SMTPSender implements the Sender interface using a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

var _ Sender = (*SMTPSender)(nil)

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

// SendContactNotification mails a website contact submission to the agency inbox.
func (s *SMTPSender) SendContactNotification(ctx context.Context, toEmail string, data ContactNotificationData) error {
	subject := fmt.Sprintf(subjectContactNotificationFmt, data.Name)
	content, err := renderEmailTemplate("contact_notification.html", contactNotificationEmailData{
		baseEmailData: baseEmailData{
			Title:   "New contact request",
			Heading: "New contact request",
		},
		Name:     data.Name,
		Email:    data.Email,
		Phone:    data.Phone,
		Message:  data.Message,
		Property: data.Property,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subject, content)
}

// SendTaskReminder mails a due-date reminder to the agency inbox.
func (s *SMTPSender) SendTaskReminder(ctx context.Context, toEmail string, data TaskReminderData) error {
	subject := fmt.Sprintf(subjectTaskReminderFmt, data.Title)
	content, err := renderEmailTemplate("task_reminder.html", taskReminderEmailData{
		baseEmailData: baseEmailData{
			Title:   "Task reminder",
			Heading: "Task reminder",
		},
		TaskTitle:   data.Title,
		Description: data.Description,
		DueDate:     data.DueDate,
		LeadName:    data.LeadName,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subject, content)
}
