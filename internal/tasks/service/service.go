package service

import (
	"context"
	"strings"
	"time"

	"realty_portal_backend/internal/tasks/repository"
	"realty_portal_backend/internal/tasks/transport"
	"realty_portal_backend/platform/apperr"
	"realty_portal_backend/platform/logger"
)

// ReminderScheduler enqueues a due-date reminder for a task. Implementations
// may be nil-safe no-ops when no queue backend is configured.
type ReminderScheduler interface {
	ScheduleTaskReminder(ctx context.Context, taskID int64, runAt time.Time) error
}

// Service provides business logic for follow-up tasks.
type Service struct {
	repo         repository.Repository
	scheduler    ReminderScheduler
	reminderLead time.Duration
	log          *logger.Logger
}

// New creates a new tasks service. scheduler may be nil when reminders are disabled.
func New(repo repository.Repository, scheduler ReminderScheduler, reminderLead time.Duration, log *logger.Logger) *Service {
	return &Service{
		repo:         repo,
		scheduler:    scheduler,
		reminderLead: reminderLead,
		log:          log,
	}
}

// GetByID retrieves a task by ID.
func (s *Service) GetByID(ctx context.Context, id int64) (transport.TaskResponse, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.TaskResponse{}, err
	}
	return toResponse(task), nil
}

// List retrieves tasks with filters and pagination.
func (s *Service) List(ctx context.Context, req transport.ListTasksRequest) (transport.TaskListResponse, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	if pageSize > 200 {
		pageSize = 200
	}

	tasks, total, err := s.repo.List(ctx, repository.ListParams{
		Done:   req.Done,
		LeadID: req.LeadID,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		return transport.TaskListResponse{}, err
	}

	items := make([]transport.TaskResponse, len(tasks))
	for i, task := range tasks {
		items[i] = toResponse(task)
	}

	return transport.TaskListResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Create creates a task and schedules a reminder when it has a future due date.
func (s *Service) Create(ctx context.Context, req transport.CreateTaskRequest) (transport.TaskResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return transport.TaskResponse{}, apperr.Validation("task title is required")
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return transport.TaskResponse{}, err
	}

	task, err := s.repo.Create(ctx, repository.CreateParams{
		Title:       title,
		Description: req.Description,
		DueDate:     dueDate,
		LeadID:      req.LeadID,
	})
	if err != nil {
		return transport.TaskResponse{}, err
	}

	s.scheduleReminder(ctx, task)
	s.log.Info("task created", "id", task.ID, "title", task.Title)
	return toResponse(task), nil
}

// Update applies a partial update. Rescheduling the due date enqueues a fresh
// reminder; the worker re-checks the stored due date before notifying, so a
// stale reminder for the old date is dropped there.
func (s *Service) Update(ctx context.Context, id int64, req transport.UpdateTaskRequest) (transport.TaskResponse, error) {
	title := req.Title
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return transport.TaskResponse{}, apperr.Validation("task title is required")
		}
		title = &trimmed
	}

	var dueDate *time.Time
	clearDueDate := false
	if req.DueDate != nil {
		if strings.TrimSpace(*req.DueDate) == "" {
			clearDueDate = true
		} else {
			parsed, err := parseDueDate(req.DueDate)
			if err != nil {
				return transport.TaskResponse{}, err
			}
			dueDate = parsed
		}
	}

	task, err := s.repo.Update(ctx, repository.UpdateParams{
		ID:           id,
		Title:        title,
		Description:  req.Description,
		DueDate:      dueDate,
		ClearDueDate: clearDueDate,
		Done:         req.Done,
		LeadID:       req.LeadID,
	})
	if err != nil {
		return transport.TaskResponse{}, err
	}

	if dueDate != nil {
		s.scheduleReminder(ctx, task)
	}
	s.log.Info("task updated", "id", task.ID)
	return toResponse(task), nil
}

// Delete removes a task.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("task deleted", "id", id)
	return nil
}

// DueWithin reports the task if it is still open and due inside the window.
// Used by the reminder worker to drop stale reminders.
func (s *Service) DueWithin(ctx context.Context, id int64, window time.Duration) (transport.TaskResponse, bool, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.TaskResponse{}, false, err
	}

	if task.Done || task.DueDate == nil {
		return transport.TaskResponse{}, false, nil
	}
	if time.Until(*task.DueDate) > window {
		return transport.TaskResponse{}, false, nil
	}

	return toResponse(task), true, nil
}

func (s *Service) scheduleReminder(ctx context.Context, task repository.Task) {
	if s.scheduler == nil || task.DueDate == nil || task.Done {
		return
	}

	runAt := task.DueDate.Add(-s.reminderLead)
	if now := time.Now(); runAt.Before(now) {
		runAt = now
	}
	if task.DueDate.Before(time.Now()) {
		return
	}

	if err := s.scheduler.ScheduleTaskReminder(ctx, task.ID, runAt); err != nil {
		s.log.Error("failed to schedule task reminder", "taskId", task.ID, "error", err)
	}
}

func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, apperr.Validation("dueDate must be an RFC 3339 timestamp")
	}
	return &parsed, nil
}

func toResponse(task repository.Task) transport.TaskResponse {
	var dueDate *string
	if task.DueDate != nil {
		formatted := task.DueDate.UTC().Format(time.RFC3339)
		dueDate = &formatted
	}

	return transport.TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     dueDate,
		Done:        task.Done,
		LeadID:      task.LeadID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
