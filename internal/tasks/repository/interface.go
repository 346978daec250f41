package repository

import (
	"context"
	"time"
)

// Task represents a follow-up task, optionally linked to a lead.
type Task struct {
	ID          int64
	Title       string
	Description *string
	DueDate     *time.Time
	Done        bool
	LeadID      *int64
	CreatedAt   string
	UpdatedAt   string
}

// CreateParams contains fields for inserting a task.
type CreateParams struct {
	Title       string
	Description *string
	DueDate     *time.Time
	LeadID      *int64
}

// UpdateParams contains fields for a partial task update.
// Nil fields are left unchanged; ClearDueDate removes the due date.
type UpdateParams struct {
	ID           int64
	Title        *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	Done         *bool
	LeadID       *int64
}

// ListParams filters the task listing.
type ListParams struct {
	Done   *bool
	LeadID *int64
	Limit  int
	Offset int
}

// Repository defines storage operations for tasks.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Task, error)
	List(ctx context.Context, params ListParams) ([]Task, int, error)
	Create(ctx context.Context, params CreateParams) (Task, error)
	Update(ctx context.Context, params UpdateParams) (Task, error)
	Delete(ctx context.Context, id int64) error
}
