// Package scheduler enqueues and processes delayed jobs backed by Redis.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskReminderDue = "tasks.reminder"

// TaskReminderPayload identifies the task a reminder was scheduled for.
type TaskReminderPayload struct {
	TaskID int64 `json:"taskId"`
}

func NewTaskReminderTask(payload TaskReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReminderDue, data), nil
}

func ParseTaskReminderPayload(task *asynq.Task) (TaskReminderPayload, error) {
	var payload TaskReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return TaskReminderPayload{}, err
	}
	return payload, nil
}
