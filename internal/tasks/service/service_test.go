package service

import (
	"context"
	"testing"
	"time"

	"realty_portal_backend/internal/tasks/repository"
	"realty_portal_backend/internal/tasks/transport"
	"realty_portal_backend/platform/apperr"
	"realty_portal_backend/platform/logger"
)

type fakeTaskRepo struct {
	tasks  map[int64]repository.Task
	nextID int64
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[int64]repository.Task), nextID: 1}
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id int64) (repository.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return repository.Task{}, apperr.NotFound("task not found")
	}
	return task, nil
}

func (f *fakeTaskRepo) List(_ context.Context, params repository.ListParams) ([]repository.Task, int, error) {
	tasks := make([]repository.Task, 0)
	for _, task := range f.tasks {
		if params.Done != nil && task.Done != *params.Done {
			continue
		}
		if params.LeadID != nil && (task.LeadID == nil || *task.LeadID != *params.LeadID) {
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, len(tasks), nil
}

func (f *fakeTaskRepo) Create(_ context.Context, params repository.CreateParams) (repository.Task, error) {
	task := repository.Task{
		ID:          f.nextID,
		Title:       params.Title,
		Description: params.Description,
		DueDate:     params.DueDate,
		LeadID:      params.LeadID,
	}
	f.tasks[task.ID] = task
	f.nextID++
	return task, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, params repository.UpdateParams) (repository.Task, error) {
	task, ok := f.tasks[params.ID]
	if !ok {
		return repository.Task{}, apperr.NotFound("task not found")
	}
	if params.Title != nil {
		task.Title = *params.Title
	}
	if params.Description != nil {
		task.Description = params.Description
	}
	if params.ClearDueDate {
		task.DueDate = nil
	} else if params.DueDate != nil {
		task.DueDate = params.DueDate
	}
	if params.Done != nil {
		task.Done = *params.Done
	}
	if params.LeadID != nil {
		task.LeadID = params.LeadID
	}
	f.tasks[params.ID] = task
	return task, nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.tasks[id]; !ok {
		return apperr.NotFound("task not found")
	}
	delete(f.tasks, id)
	return nil
}

var _ repository.Repository = (*fakeTaskRepo)(nil)

type recordingScheduler struct {
	calls []scheduledReminder
}

type scheduledReminder struct {
	taskID int64
	runAt  time.Time
}

func (s *recordingScheduler) ScheduleTaskReminder(_ context.Context, taskID int64, runAt time.Time) error {
	s.calls = append(s.calls, scheduledReminder{taskID: taskID, runAt: runAt})
	return nil
}

func strPtr(s string) *string { return &s }

func TestCreateSchedulesReminderBeforeDueDate(t *testing.T) {
	repo := newFakeTaskRepo()
	sched := &recordingScheduler{}
	svc := New(repo, sched, time.Hour, logger.New("test"))

	due := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	resp, err := svc.Create(context.Background(), transport.CreateTaskRequest{
		Title:   "Call Bob",
		DueDate: strPtr(due.Format(time.RFC3339)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.DueDate == nil || *resp.DueDate != due.Format(time.RFC3339) {
		t.Errorf("dueDate = %v, want %s", resp.DueDate, due.Format(time.RFC3339))
	}

	if len(sched.calls) != 1 {
		t.Fatalf("scheduled %d reminders, want 1", len(sched.calls))
	}
	wantRunAt := due.Add(-time.Hour)
	if !sched.calls[0].runAt.Equal(wantRunAt) {
		t.Errorf("runAt = %v, want %v", sched.calls[0].runAt, wantRunAt)
	}
}

func TestCreateWithoutDueDateSkipsReminder(t *testing.T) {
	sched := &recordingScheduler{}
	svc := New(newFakeTaskRepo(), sched, time.Hour, logger.New("test"))

	_, err := svc.Create(context.Background(), transport.CreateTaskRequest{Title: "File paperwork"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sched.calls) != 0 {
		t.Errorf("scheduled %d reminders, want 0", len(sched.calls))
	}
}

func TestCreateWithPastDueDateSkipsReminder(t *testing.T) {
	sched := &recordingScheduler{}
	svc := New(newFakeTaskRepo(), sched, time.Hour, logger.New("test"))

	past := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	_, err := svc.Create(context.Background(), transport.CreateTaskRequest{Title: "Old task", DueDate: strPtr(past)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sched.calls) != 0 {
		t.Errorf("scheduled %d reminders for a past due date, want 0", len(sched.calls))
	}
}

func TestCreateRejectsBadDueDate(t *testing.T) {
	svc := New(newFakeTaskRepo(), nil, time.Hour, logger.New("test"))

	_, err := svc.Create(context.Background(), transport.CreateTaskRequest{Title: "Call Bob", DueDate: strPtr("tomorrow")})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateRescheduleEnqueuesFreshReminder(t *testing.T) {
	repo := newFakeTaskRepo()
	sched := &recordingScheduler{}
	svc := New(repo, sched, time.Hour, logger.New("test"))
	ctx := context.Background()

	created, err := svc.Create(ctx, transport.CreateTaskRequest{
		Title:   "Call Bob",
		DueDate: strPtr(time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	newDue := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	_, err = svc.Update(ctx, created.ID, transport.UpdateTaskRequest{
		DueDate: strPtr(newDue.Format(time.RFC3339)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sched.calls) != 2 {
		t.Fatalf("scheduled %d reminders, want 2", len(sched.calls))
	}
	if !sched.calls[1].runAt.Equal(newDue.Add(-time.Hour)) {
		t.Errorf("rescheduled runAt = %v, want %v", sched.calls[1].runAt, newDue.Add(-time.Hour))
	}
}

func TestUpdateClearsDueDateWithEmptyString(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := New(repo, nil, time.Hour, logger.New("test"))
	ctx := context.Background()

	created, _ := svc.Create(ctx, transport.CreateTaskRequest{
		Title:   "Call Bob",
		DueDate: strPtr(time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)),
	})

	updated, err := svc.Update(ctx, created.ID, transport.UpdateTaskRequest{DueDate: strPtr("")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.DueDate != nil {
		t.Errorf("dueDate = %v, want nil after clearing", *updated.DueDate)
	}
}

func TestUpdateMarksDone(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := New(repo, nil, time.Hour, logger.New("test"))
	ctx := context.Background()

	created, _ := svc.Create(ctx, transport.CreateTaskRequest{Title: "Call Bob"})

	done := true
	updated, err := svc.Update(ctx, created.ID, transport.UpdateTaskRequest{Done: &done})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.Done {
		t.Error("task should be done")
	}
}

func TestDueWithinDropsStaleReminders(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := New(repo, nil, time.Hour, logger.New("test"))
	ctx := context.Background()

	soon := time.Now().Add(30 * time.Minute)
	far := time.Now().Add(10 * time.Hour)
	done := true

	dueSoon, _ := repo.Create(ctx, repository.CreateParams{Title: "Soon", DueDate: &soon})
	dueFar, _ := repo.Create(ctx, repository.CreateParams{Title: "Far", DueDate: &far})
	completed, _ := repo.Create(ctx, repository.CreateParams{Title: "Done", DueDate: &soon})
	_, _ = repo.Update(ctx, repository.UpdateParams{ID: completed.ID, Done: &done})

	if _, ok, _ := svc.DueWithin(ctx, dueSoon.ID, time.Hour); !ok {
		t.Error("task due within the window should report true")
	}
	if _, ok, _ := svc.DueWithin(ctx, dueFar.ID, time.Hour); ok {
		t.Error("task rescheduled further out should report false")
	}
	if _, ok, _ := svc.DueWithin(ctx, completed.ID, time.Hour); ok {
		t.Error("completed task should report false")
	}
}
