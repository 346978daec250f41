package email

import (
	"strings"
	"testing"
)

func TestRenderContactNotificationTemplate(t *testing.T) {
	html, err := renderEmailTemplate("contact_notification.html", contactNotificationEmailData{
		baseEmailData: baseEmailData{Title: "New contact request", Heading: "New contact request"},
		Name:          "Jane Buyer",
		Email:         "jane@example.com",
		Phone:         "+14155552671",
		Message:       "Interested in a viewing.",
		Property:      "12 Harbor View",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{`lang="en"`, "New contact request", "Jane Buyer", "jane@example.com", "+14155552671", "12 Harbor View", "Interested in a viewing."} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered email missing %q", want)
		}
	}
}

func TestRenderTaskReminderTemplateOmitsEmptyOptionals(t *testing.T) {
	html, err := renderEmailTemplate("task_reminder.html", taskReminderEmailData{
		baseEmailData: baseEmailData{Title: "Task reminder", Heading: "Task reminder"},
		TaskTitle:     "Call back the notary",
		DueDate:       "2026-09-01T10:00:00Z",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(html, "Call back the notary") {
		t.Error("rendered email missing task title")
	}
	if strings.Contains(html, "Lead</td>") {
		t.Error("rendered email should omit the lead row when no lead is linked")
	}
}
