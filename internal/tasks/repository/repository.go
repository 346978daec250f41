package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"realty_portal_backend/platform/apperr"
)

const taskNotFoundMessage = "task not found"

const taskColumns = "id, title, description, due_date, done, lead_id, created_at, updated_at"

const listTasksQuery = `
	SELECT id, title, description, due_date, done, lead_id, created_at, updated_at
	FROM tasks
	WHERE ($1::boolean IS NULL OR done = $1)
		AND ($2::bigint IS NULL OR lead_id = $2)
	ORDER BY due_date ASC NULLS LAST, created_at DESC, id DESC
	LIMIT $3 OFFSET $4`

const countTasksQuery = `
	SELECT COUNT(*)
	FROM tasks
	WHERE ($1::boolean IS NULL OR done = $1)
		AND ($2::bigint IS NULL OR lead_id = $2)`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new tasks repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetByID retrieves a task by its ID.
func (r *Repo) GetByID(ctx context.Context, id int64) (Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Task{}, apperr.NotFound(taskNotFoundMessage)
		}
		return Task{}, fmt.Errorf("get task: %w", err)
	}

	return task, nil
}

// List retrieves tasks with filters and pagination.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Task, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, countTasksQuery, params.Done, params.LeadID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	rows, err := r.pool.Query(ctx, listTasksQuery, params.Done, params.LeadID, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	return tasks, total, rows.Err()
}

// Create inserts a new task.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Task, error) {
	query := `
		INSERT INTO tasks (title, description, due_date, lead_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + taskColumns

	task, err := scanTask(r.pool.QueryRow(ctx, query,
		params.Title, params.Description, params.DueDate, params.LeadID))
	if err != nil {
		return Task{}, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

// Update applies a partial update and returns the updated task.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Task, error) {
	query := `
		UPDATE tasks
		SET title = COALESCE($2, title),
			description = COALESCE($3, description),
			due_date = CASE WHEN $5 THEN NULL ELSE COALESCE($4, due_date) END,
			done = COALESCE($6, done),
			lead_id = COALESCE($7, lead_id),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + taskColumns

	task, err := scanTask(r.pool.QueryRow(ctx, query,
		params.ID, params.Title, params.Description, params.DueDate, params.ClearDueDate,
		params.Done, params.LeadID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Task{}, apperr.NotFound(taskNotFoundMessage)
		}
		return Task{}, fmt.Errorf("update task: %w", err)
	}

	return task, nil
}

// Delete removes a task.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(taskNotFoundMessage)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (Task, error) {
	var task Task
	var createdAt, updatedAt time.Time

	err := row.Scan(&task.ID, &task.Title, &task.Description, &task.DueDate,
		&task.Done, &task.LeadID, &createdAt, &updatedAt)
	if err != nil {
		return Task{}, err
	}

	task.CreatedAt = createdAt.Format(time.RFC3339)
	task.UpdatedAt = updatedAt.Format(time.RFC3339)
	return task, nil
}
