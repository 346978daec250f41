package scheduler

import "testing"

func TestTaskReminderPayloadRoundTrip(t *testing.T) {
	task, err := NewTaskReminderTask(TaskReminderPayload{TaskID: 42})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Type() != TaskReminderDue {
		t.Errorf("task type = %q, want %q", task.Type(), TaskReminderDue)
	}

	payload, err := ParseTaskReminderPayload(task)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.TaskID != 42 {
		t.Errorf("taskId = %d, want 42", payload.TaskID)
	}
}
