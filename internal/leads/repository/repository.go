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

const leadNotFoundMessage = "lead not found"

const leadColumns = "id, name, email, phone, budget, notes, source, status, property_id, funnel_id, stage_id, created_at, updated_at"

const listLeadsQuery = `
	SELECT id, name, email, phone, budget, notes, source, status, property_id, funnel_id, stage_id, created_at, updated_at
	FROM leads
	WHERE ($1::text IS NULL OR status = $1)
		AND ($2::bigint IS NULL OR funnel_id = $2)
	ORDER BY created_at DESC, id DESC
	LIMIT $3 OFFSET $4`

const listLeadsByFunnelStageQuery = `
	SELECT id, name, email, phone, budget, notes, source, status, property_id, funnel_id, stage_id, created_at, updated_at
	FROM leads
	WHERE funnel_id = $1 AND stage_id = $2`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetByID retrieves a lead by its ID.
func (r *Repo) GetByID(ctx context.Context, id int64) (Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("get lead: %w", err)
	}

	return lead, nil
}

// List retrieves leads with status/funnel filters and pagination.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Lead, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM leads
		WHERE ($1::text IS NULL OR status = $1)
			AND ($2::bigint IS NULL OR funnel_id = $2)`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, params.Status, params.FunnelID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	rows, err := r.pool.Query(ctx, listLeadsQuery, params.Status, params.FunnelID, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads, err := scanLeads(rows)
	if err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

// ListByFunnelStage retrieves leads attached to the given funnel and stage.
func (r *Repo) ListByFunnelStage(ctx context.Context, funnelID, stageID int64) ([]Lead, error) {
	rows, err := r.pool.Query(ctx, listLeadsByFunnelStageQuery, funnelID, stageID)
	if err != nil {
		return nil, fmt.Errorf("list leads by stage: %w", err)
	}
	defer rows.Close()

	return scanLeads(rows)
}

// Create inserts a new lead.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Lead, error) {
	query := `
		INSERT INTO leads (name, email, phone, budget, notes, source, status, property_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query,
		params.Name, params.Email, params.Phone, params.Budget, params.Notes,
		params.Source, params.Status, params.PropertyID))
	if err != nil {
		return Lead{}, fmt.Errorf("create lead: %w", err)
	}

	return lead, nil
}

// Update applies a partial update and returns the updated lead.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Lead, error) {
	query := `
		UPDATE leads
		SET name = COALESCE($2, name),
			email = COALESCE($3, email),
			phone = COALESCE($4, phone),
			budget = COALESCE($5, budget),
			notes = COALESCE($6, notes),
			status = COALESCE($7, status),
			property_id = COALESCE($8, property_id),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query,
		params.ID, params.Name, params.Email, params.Phone, params.Budget,
		params.Notes, params.Status, params.PropertyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("update lead: %w", err)
	}

	return lead, nil
}

// Delete removes a lead.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(leadNotFoundMessage)
	}
	return nil
}

// AssignFunnel sets the lead's funnel, clearing the stage when requested.
func (r *Repo) AssignFunnel(ctx context.Context, id, funnelID int64, clearStage bool) (Lead, error) {
	query := `
		UPDATE leads
		SET funnel_id = $2,
			stage_id = CASE WHEN $3 THEN NULL ELSE stage_id END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id, funnelID, clearStage))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("assign lead funnel: %w", err)
	}

	return lead, nil
}

// SetStage sets the lead's stage and funnel together.
func (r *Repo) SetStage(ctx context.Context, id, stageID, funnelID int64) (Lead, error) {
	query := `
		UPDATE leads
		SET stage_id = $2, funnel_id = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id, stageID, funnelID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("set lead stage: %w", err)
	}

	return lead, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (Lead, error) {
	var lead Lead
	var createdAt, updatedAt time.Time

	err := row.Scan(&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.Budget, &lead.Notes,
		&lead.Source, &lead.Status, &lead.PropertyID, &lead.FunnelID, &lead.StageID,
		&createdAt, &updatedAt)
	if err != nil {
		return Lead{}, err
	}

	lead.CreatedAt = createdAt.Format(time.RFC3339)
	lead.UpdatedAt = updatedAt.Format(time.RFC3339)
	return lead, nil
}

func scanLeads(rows pgx.Rows) ([]Lead, error) {
	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}
