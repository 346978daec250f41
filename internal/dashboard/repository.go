// Package dashboard aggregates CRM metrics for the admin overview.
package dashboard

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StageCount holds the number of leads sitting in one funnel stage.
type StageCount struct {
	StageID   int64  `json:"stageId"`
	StageName string `json:"stageName"`
	Position  int    `json:"position"`
	Count     int    `json:"count"`
}

// Repository defines the aggregate queries behind the dashboard.
type Repository interface {
	CountLeads(ctx context.Context) (int, error)
	CountLeadsSince(ctx context.Context, days int) (int, error)
	CountPropertiesByStatus(ctx context.Context, status string) (int, error)
	CountProperties(ctx context.Context) (int, error)
	CountOpenTasks(ctx context.Context) (int, error)
	CountOverdueTasks(ctx context.Context) (int, error)
	LeadsPerStage(ctx context.Context, funnelID int64) ([]StageCount, error)
}

const leadsPerStageQuery = `
	SELECT fs.id, fs.name, fs.position, COUNT(l.id)
	FROM funnel_stages fs
	LEFT JOIN leads l ON l.stage_id = fs.id
	WHERE fs.funnel_id = $1
	GROUP BY fs.id, fs.name, fs.position
	ORDER BY fs.position ASC, fs.id ASC`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// NewRepo creates a new dashboard repository.
func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

func (r *Repo) CountLeads(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM leads`)
}

func (r *Repo) CountLeadsSince(ctx context.Context, days int) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM leads WHERE created_at >= NOW() - ($1 || ' days')::interval`, days).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count recent leads: %w", err)
	}
	return total, nil
}

func (r *Repo) CountProperties(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM properties`)
}

func (r *Repo) CountPropertiesByStatus(ctx context.Context, status string) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM properties WHERE status = $1`, status).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count properties by status: %w", err)
	}
	return total, nil
}

func (r *Repo) CountOpenTasks(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tasks WHERE done = FALSE`)
}

func (r *Repo) CountOverdueTasks(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tasks WHERE done = FALSE AND due_date IS NOT NULL AND due_date < NOW()`)
}

func (r *Repo) LeadsPerStage(ctx context.Context, funnelID int64) ([]StageCount, error) {
	rows, err := r.pool.Query(ctx, leadsPerStageQuery, funnelID)
	if err != nil {
		return nil, fmt.Errorf("leads per stage: %w", err)
	}
	defer rows.Close()

	counts := make([]StageCount, 0)
	for rows.Next() {
		var sc StageCount
		if err := rows.Scan(&sc.StageID, &sc.StageName, &sc.Position, &sc.Count); err != nil {
			return nil, fmt.Errorf("scan stage count: %w", err)
		}
		counts = append(counts, sc)
	}

	return counts, rows.Err()
}

func (r *Repo) count(ctx context.Context, query string) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("dashboard count: %w", err)
	}
	return total, nil
}
