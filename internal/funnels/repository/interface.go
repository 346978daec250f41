package repository

import "context"

// SalesFunnel is a named pipeline of ordered stages through which leads progress.
type SalesFunnel struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	IsDefault   bool    `db:"is_default"`
	CreatedAt   string  `db:"created_at"`
	UpdatedAt   string  `db:"updated_at"`
}

// FunnelStage is one ordered step within a funnel. Ordering is by ascending
// Position; gaps are tolerated.
type FunnelStage struct {
	ID          int64   `db:"id"`
	FunnelID    int64   `db:"funnel_id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	Color       string  `db:"color"`
	Position    int     `db:"position"`
	CreatedAt   string  `db:"created_at"`
	UpdatedAt   string  `db:"updated_at"`
}

// CreateFunnelParams contains parameters for creating a funnel.
type CreateFunnelParams struct {
	Name        string
	Description *string
	IsDefault   bool
}

// UpdateFunnelParams contains parameters for a partial funnel update.
type UpdateFunnelParams struct {
	ID          int64
	Name        *string
	Description *string
}

// CreateStageParams contains parameters for creating a stage.
type CreateStageParams struct {
	FunnelID    int64
	Name        string
	Description *string
	Color       string
	Position    int
}

// UpdateStageParams contains parameters for a partial stage update.
type UpdateStageParams struct {
	ID          int64
	Name        *string
	Description *string
	Color       *string
}

// StagePlacement assigns a stage its new position during a reorder.
type StagePlacement struct {
	ID       int64
	Position int
}

// FunnelReader provides read operations for funnels.
type FunnelReader interface {
	GetFunnel(ctx context.Context, id int64) (SalesFunnel, error)
	ListFunnels(ctx context.Context) ([]SalesFunnel, error)
	CountFunnels(ctx context.Context) (int, error)
	// StageCounts returns the number of stages per funnel id.
	StageCounts(ctx context.Context) (map[int64]int, error)
}

// FunnelWriter provides write operations for funnels.
type FunnelWriter interface {
	// CreateFunnel inserts a funnel. When params.IsDefault is set, every other
	// funnel's default flag is cleared in the same transaction.
	CreateFunnel(ctx context.Context, params CreateFunnelParams) (SalesFunnel, error)
	UpdateFunnel(ctx context.Context, params UpdateFunnelParams) (SalesFunnel, error)
	// SetDefaultFunnel makes the given funnel the single default, clearing the
	// flag everywhere else in the same transaction.
	SetDefaultFunnel(ctx context.Context, id int64) error
	// DeleteFunnel removes a funnel, its stages, and nulls lead references,
	// all in one transaction.
	DeleteFunnel(ctx context.Context, id int64) error
}

// StageReader provides read operations for funnel stages.
type StageReader interface {
	GetStage(ctx context.Context, id int64) (FunnelStage, error)
	// ListStagesByFunnel returns the funnel's stages ordered by ascending
	// position, ties broken by id.
	ListStagesByFunnel(ctx context.Context, funnelID int64) ([]FunnelStage, error)
}

// StageWriter provides write operations for funnel stages.
type StageWriter interface {
	CreateStage(ctx context.Context, params CreateStageParams) (FunnelStage, error)
	UpdateStage(ctx context.Context, params UpdateStageParams) (FunnelStage, error)
	// DeleteStage removes a stage and nulls lead references to it in one
	// transaction. Sibling positions are not renumbered.
	DeleteStage(ctx context.Context, id int64) error
	// ApplyStageOrder rewrites stage positions in one transaction; either
	// every placement is applied or none is.
	ApplyStageOrder(ctx context.Context, funnelID int64, placements []StagePlacement) error
}

// Repository combines all funnel and stage repository operations.
type Repository interface {
	FunnelReader
	FunnelWriter
	StageReader
	StageWriter
}
