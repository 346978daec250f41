package transport

// CreateTaskRequest contains data for creating a task.
type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	DueDate     *string `json:"dueDate,omitempty"`
	LeadID      *int64  `json:"leadId,omitempty" validate:"omitempty,min=1"`
}

// UpdateTaskRequest contains data for a partial task update.
// Sending "dueDate": null is not distinguishable from omission with plain
// JSON binding, so clients clear the due date with an empty string.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	DueDate     *string `json:"dueDate,omitempty"`
	Done        *bool   `json:"done,omitempty"`
	LeadID      *int64  `json:"leadId,omitempty" validate:"omitempty,min=1"`
}

// ListTasksRequest filters and paginates the task listing.
type ListTasksRequest struct {
	Done     *bool  `form:"done"`
	LeadID   *int64 `form:"leadId"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// TaskResponse represents a task in API responses.
type TaskResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
	Done        bool    `json:"done"`
	LeadID      *int64  `json:"leadId,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// TaskListResponse wraps a paginated list of tasks.
type TaskListResponse struct {
	Items    []TaskResponse `json:"items"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}
