package transport

// CreateFunnelRequest contains data for creating a new sales funnel.
type CreateFunnelRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	IsDefault   *bool   `json:"isDefault,omitempty"`
}

// UpdateFunnelRequest contains data for a partial funnel update.
type UpdateFunnelRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// FunnelResponse represents a sales funnel in API responses.
type FunnelResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IsDefault   bool    `json:"isDefault"`
	StageCount  int     `json:"stageCount"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// SetDefaultResponse is returned by the set-default endpoint.
type SetDefaultResponse struct {
	Success bool `json:"success"`
}

// ReorderStagesRequest contains the full ordered id list for a funnel's stages.
type ReorderStagesRequest struct {
	StageIDs []int64 `json:"stageIds" validate:"required,min=1"`
}

// CreateStageRequest contains data for creating a new funnel stage.
// Position is accepted for wire compatibility but the server assigns the
// actual position (end of the funnel).
type CreateStageRequest struct {
	FunnelID    int64   `json:"funnelId" validate:"required"`
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Color       *string `json:"color,omitempty" validate:"omitempty,stagecolor"`
	Position    *int    `json:"position,omitempty" validate:"omitempty,min=0"`
}

// UpdateStageRequest contains data for a partial stage update.
type UpdateStageRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Color       *string `json:"color,omitempty" validate:"omitempty,stagecolor"`
}

// StageResponse represents a funnel stage in API responses.
type StageResponse struct {
	ID          int64   `json:"id"`
	FunnelID    int64   `json:"funnelId"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Color       string  `json:"color"`
	Position    int     `json:"position"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}
