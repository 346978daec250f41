package transport

// CreateLeadRequest contains data for creating a lead from the admin CRM.
type CreateLeadRequest struct {
	Name       string  `json:"name" validate:"required,min=1,max=200"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,max=40"`
	Budget     *int64  `json:"budget,omitempty" validate:"omitempty,min=0"`
	Notes      *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Status     *string `json:"status,omitempty" validate:"omitempty,oneof=new contacted visit proposal"`
	PropertyID *int64  `json:"propertyId,omitempty" validate:"omitempty,min=1"`
}

// UpdateLeadRequest contains data for a partial lead update.
type UpdateLeadRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,max=40"`
	Budget     *int64  `json:"budget,omitempty" validate:"omitempty,min=0"`
	Notes      *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Status     *string `json:"status,omitempty" validate:"omitempty,oneof=new contacted visit proposal"`
	PropertyID *int64  `json:"propertyId,omitempty" validate:"omitempty,min=1"`
}

// ListLeadsRequest filters and paginates the admin lead listing.
type ListLeadsRequest struct {
	Status   *string `form:"status"`
	FunnelID *int64  `form:"funnelId"`
	Page     int     `form:"page"`
	PageSize int     `form:"pageSize"`
}

// AssignFunnelRequest moves a lead to a funnel.
type AssignFunnelRequest struct {
	FunnelID *int64 `json:"funnelId"`
}

// AssignStageRequest moves a lead to a funnel stage.
type AssignStageRequest struct {
	StageID *int64 `json:"stageId"`
}

// ContactRequest is the public marketing-site contact form payload.
type ContactRequest struct {
	Name    string  `json:"name" validate:"required,min=1,max=200"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=40"`
	Message string  `json:"message" validate:"required,min=1,max=2000"`
	// PropertyID is set when the form was submitted from a listing detail page.
	PropertyID *int64 `json:"propertyId,omitempty" validate:"omitempty,min=1"`
}

// LeadResponse represents a lead in API responses.
type LeadResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Budget     *int64  `json:"budget,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	Source     string  `json:"source"`
	Status     string  `json:"status"`
	PropertyID *int64  `json:"propertyId,omitempty"`
	FunnelID   *int64  `json:"funnelId,omitempty"`
	StageID    *int64  `json:"stageId,omitempty"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

// LeadListResponse wraps a paginated list of leads.
type LeadListResponse struct {
	Items    []LeadResponse `json:"items"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}
