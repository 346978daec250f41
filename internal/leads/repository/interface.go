package repository

import "context"

// Lead is a prospective customer record, optionally attached to a funnel
// and a stage within that funnel.
type Lead struct {
	ID         int64   `db:"id"`
	Name       string  `db:"name"`
	Email      *string `db:"email"`
	Phone      *string `db:"phone"`
	Budget     *int64  `db:"budget"`
	Notes      *string `db:"notes"`
	Source     string  `db:"source"`
	Status     string  `db:"status"`
	PropertyID *int64  `db:"property_id"`
	FunnelID   *int64  `db:"funnel_id"`
	StageID    *int64  `db:"stage_id"`
	CreatedAt  string  `db:"created_at"`
	UpdatedAt  string  `db:"updated_at"`
}

// CreateParams contains parameters for creating a lead.
type CreateParams struct {
	Name       string
	Email      *string
	Phone      *string
	Budget     *int64
	Notes      *string
	Source     string
	Status     string
	PropertyID *int64
}

// UpdateParams contains parameters for a partial lead update.
type UpdateParams struct {
	ID         int64
	Name       *string
	Email      *string
	Phone      *string
	Budget     *int64
	Notes      *string
	Status     *string
	PropertyID *int64
}

// ListParams filters and paginates lead listings.
type ListParams struct {
	Status   *string
	FunnelID *int64
	Limit    int
	Offset   int
}

// Reader provides read operations for leads.
type Reader interface {
	GetByID(ctx context.Context, id int64) (Lead, error)
	List(ctx context.Context, params ListParams) ([]Lead, int, error)
	ListByFunnelStage(ctx context.Context, funnelID, stageID int64) ([]Lead, error)
}

// Writer provides write operations for leads.
type Writer interface {
	Create(ctx context.Context, params CreateParams) (Lead, error)
	Update(ctx context.Context, params UpdateParams) (Lead, error)
	Delete(ctx context.Context, id int64) error
	// AssignFunnel sets the lead's funnel and optionally clears its stage
	// (used when the funnel actually changes).
	AssignFunnel(ctx context.Context, id, funnelID int64, clearStage bool) (Lead, error)
	// SetStage sets the lead's stage and reconciles its funnel to the
	// stage's owning funnel so the pair never diverges.
	SetStage(ctx context.Context, id, stageID, funnelID int64) (Lead, error)
}

// Repository combines all lead repository operations.
type Repository interface {
	Reader
	Writer
}
