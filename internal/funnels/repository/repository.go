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

const (
	funnelNotFoundMessage = "sales funnel not found"
	stageNotFoundMessage  = "funnel stage not found"
)

const funnelColumns = "id, name, description, is_default, created_at, updated_at"
const stageColumns = "id, funnel_id, name, description, color, position, created_at, updated_at"

const listStagesByFunnelQuery = `
	SELECT id, funnel_id, name, description, color, position, created_at, updated_at
	FROM funnel_stages
	WHERE funnel_id = $1
	ORDER BY position ASC, id ASC`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new funnels repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetFunnel retrieves a funnel by its ID.
func (r *Repo) GetFunnel(ctx context.Context, id int64) (SalesFunnel, error) {
	query := `SELECT ` + funnelColumns + ` FROM sales_funnels WHERE id = $1`

	funnel, err := scanFunnel(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SalesFunnel{}, apperr.NotFound(funnelNotFoundMessage)
		}
		return SalesFunnel{}, fmt.Errorf("get funnel: %w", err)
	}

	return funnel, nil
}

// ListFunnels retrieves all funnels ordered by creation time.
func (r *Repo) ListFunnels(ctx context.Context) ([]SalesFunnel, error) {
	query := `SELECT ` + funnelColumns + ` FROM sales_funnels ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list funnels: %w", err)
	}
	defer rows.Close()

	funnels := make([]SalesFunnel, 0)
	for rows.Next() {
		funnel, err := scanFunnel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan funnel: %w", err)
		}
		funnels = append(funnels, funnel)
	}

	return funnels, rows.Err()
}

// CountFunnels returns the total number of funnels.
func (r *Repo) CountFunnels(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sales_funnels`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count funnels: %w", err)
	}
	return count, nil
}

// StageCounts returns the number of stages per funnel id.
func (r *Repo) StageCounts(ctx context.Context) (map[int64]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT funnel_id, COUNT(*) FROM funnel_stages GROUP BY funnel_id`)
	if err != nil {
		return nil, fmt.Errorf("count stages: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var funnelID int64
		var count int
		if err := rows.Scan(&funnelID, &count); err != nil {
			return nil, fmt.Errorf("scan stage count: %w", err)
		}
		counts[funnelID] = count
	}

	return counts, rows.Err()
}

// CreateFunnel inserts a funnel, clearing other default flags in the same
// transaction when the new funnel is the default.
func (r *Repo) CreateFunnel(ctx context.Context, params CreateFunnelParams) (SalesFunnel, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return SalesFunnel{}, fmt.Errorf("create funnel: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if params.IsDefault {
		if _, err := tx.Exec(ctx, `UPDATE sales_funnels SET is_default = false, updated_at = NOW() WHERE is_default`); err != nil {
			return SalesFunnel{}, fmt.Errorf("create funnel: clear default: %w", err)
		}
	}

	query := `
		INSERT INTO sales_funnels (name, description, is_default)
		VALUES ($1, $2, $3)
		RETURNING ` + funnelColumns

	funnel, err := scanFunnel(tx.QueryRow(ctx, query, params.Name, params.Description, params.IsDefault))
	if err != nil {
		return SalesFunnel{}, fmt.Errorf("create funnel: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return SalesFunnel{}, fmt.Errorf("create funnel: commit: %w", err)
	}

	return funnel, nil
}

// UpdateFunnel applies a partial update and returns the updated funnel.
func (r *Repo) UpdateFunnel(ctx context.Context, params UpdateFunnelParams) (SalesFunnel, error) {
	query := `
		UPDATE sales_funnels
		SET name = COALESCE($2, name),
			description = COALESCE($3, description),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + funnelColumns

	funnel, err := scanFunnel(r.pool.QueryRow(ctx, query, params.ID, params.Name, params.Description))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SalesFunnel{}, apperr.NotFound(funnelNotFoundMessage)
		}
		return SalesFunnel{}, fmt.Errorf("update funnel: %w", err)
	}

	return funnel, nil
}

// SetDefaultFunnel makes the given funnel the single default.
func (r *Repo) SetDefaultFunnel(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("set default funnel: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE sales_funnels SET is_default = false, updated_at = NOW() WHERE is_default AND id <> $1`, id); err != nil {
		return fmt.Errorf("set default funnel: clear: %w", err)
	}

	tag, err := tx.Exec(ctx, `UPDATE sales_funnels SET is_default = true, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("set default funnel: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(funnelNotFoundMessage)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("set default funnel: commit: %w", err)
	}

	return nil
}

// DeleteFunnel removes a funnel, its stages, and nulls lead references.
func (r *Repo) DeleteFunnel(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("delete funnel: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE leads SET funnel_id = NULL, stage_id = NULL, updated_at = NOW() WHERE funnel_id = $1`, id); err != nil {
		return fmt.Errorf("delete funnel: detach leads: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM funnel_stages WHERE funnel_id = $1`, id); err != nil {
		return fmt.Errorf("delete funnel: delete stages: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM sales_funnels WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete funnel: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(funnelNotFoundMessage)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("delete funnel: commit: %w", err)
	}

	return nil
}

// GetStage retrieves a stage by its ID.
func (r *Repo) GetStage(ctx context.Context, id int64) (FunnelStage, error) {
	query := `SELECT ` + stageColumns + ` FROM funnel_stages WHERE id = $1`

	stage, err := scanStage(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return FunnelStage{}, apperr.NotFound(stageNotFoundMessage)
		}
		return FunnelStage{}, fmt.Errorf("get stage: %w", err)
	}

	return stage, nil
}

// ListStagesByFunnel returns the funnel's stages ordered by position.
func (r *Repo) ListStagesByFunnel(ctx context.Context, funnelID int64) ([]FunnelStage, error) {
	rows, err := r.pool.Query(ctx, listStagesByFunnelQuery, funnelID)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	defer rows.Close()

	stages := make([]FunnelStage, 0)
	for rows.Next() {
		stage, err := scanStage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stage: %w", err)
		}
		stages = append(stages, stage)
	}

	return stages, rows.Err()
}

// CreateStage inserts a stage with the position assigned by the service.
func (r *Repo) CreateStage(ctx context.Context, params CreateStageParams) (FunnelStage, error) {
	query := `
		INSERT INTO funnel_stages (funnel_id, name, description, color, position)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + stageColumns

	stage, err := scanStage(r.pool.QueryRow(ctx, query,
		params.FunnelID, params.Name, params.Description, params.Color, params.Position))
	if err != nil {
		return FunnelStage{}, fmt.Errorf("create stage: %w", err)
	}

	return stage, nil
}

// UpdateStage applies a partial update and returns the updated stage.
func (r *Repo) UpdateStage(ctx context.Context, params UpdateStageParams) (FunnelStage, error) {
	query := `
		UPDATE funnel_stages
		SET name = COALESCE($2, name),
			description = COALESCE($3, description),
			color = COALESCE($4, color),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + stageColumns

	stage, err := scanStage(r.pool.QueryRow(ctx, query, params.ID, params.Name, params.Description, params.Color))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return FunnelStage{}, apperr.NotFound(stageNotFoundMessage)
		}
		return FunnelStage{}, fmt.Errorf("update stage: %w", err)
	}

	return stage, nil
}

// DeleteStage removes a stage and nulls lead references to it.
// Sibling positions are intentionally left untouched; ordering tolerates gaps.
func (r *Repo) DeleteStage(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("delete stage: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE leads SET stage_id = NULL, updated_at = NOW() WHERE stage_id = $1`, id); err != nil {
		return fmt.Errorf("delete stage: detach leads: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM funnel_stages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(stageNotFoundMessage)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("delete stage: commit: %w", err)
	}

	return nil
}

// ApplyStageOrder rewrites the positions of a funnel's stages in one
// transaction. Placements for stages outside the funnel affect nothing and
// roll the whole batch back.
func (r *Repo) ApplyStageOrder(ctx context.Context, funnelID int64, placements []StagePlacement) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("reorder stages: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, placement := range placements {
		tag, err := tx.Exec(ctx,
			`UPDATE funnel_stages SET position = $3, updated_at = NOW() WHERE id = $1 AND funnel_id = $2`,
			placement.ID, funnelID, placement.Position)
		if err != nil {
			return fmt.Errorf("reorder stages: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.Validation("stage does not belong to funnel")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("reorder stages: commit: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFunnel(row rowScanner) (SalesFunnel, error) {
	var funnel SalesFunnel
	var createdAt, updatedAt time.Time

	err := row.Scan(&funnel.ID, &funnel.Name, &funnel.Description, &funnel.IsDefault, &createdAt, &updatedAt)
	if err != nil {
		return SalesFunnel{}, err
	}

	funnel.CreatedAt = createdAt.Format(time.RFC3339)
	funnel.UpdatedAt = updatedAt.Format(time.RFC3339)
	return funnel, nil
}

func scanStage(row rowScanner) (FunnelStage, error) {
	var stage FunnelStage
	var createdAt, updatedAt time.Time

	err := row.Scan(&stage.ID, &stage.FunnelID, &stage.Name, &stage.Description, &stage.Color,
		&stage.Position, &createdAt, &updatedAt)
	if err != nil {
		return FunnelStage{}, err
	}

	stage.CreatedAt = createdAt.Format(time.RFC3339)
	stage.UpdatedAt = updatedAt.Format(time.RFC3339)
	return stage, nil
}
