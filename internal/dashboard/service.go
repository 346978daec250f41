package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"realty_portal_backend/platform/apperr"
	"realty_portal_backend/platform/logger"
)

const newLeadWindowDays = 7

// DefaultFunnelProvider resolves the default sales funnel for stage metrics.
type DefaultFunnelProvider interface {
	DefaultFunnelID(ctx context.Context) (int64, error)
}

// MetricsResponse is the admin dashboard payload.
type MetricsResponse struct {
	TotalLeads          int          `json:"totalLeads"`
	NewLeadsThisWeek    int          `json:"newLeadsThisWeek"`
	TotalProperties     int          `json:"totalProperties"`
	AvailableProperties int          `json:"availableProperties"`
	OpenTasks           int          `json:"openTasks"`
	OverdueTasks        int          `json:"overdueTasks"`
	FunnelID            *int64       `json:"funnelId,omitempty"`
	LeadsPerStage       []StageCount `json:"leadsPerStage"`
}

// Service computes dashboard metrics.
type Service struct {
	repo    Repository
	funnels DefaultFunnelProvider
	log     *logger.Logger
}

// NewService creates a new dashboard service.
func NewService(repo Repository, funnels DefaultFunnelProvider, log *logger.Logger) *Service {
	return &Service{repo: repo, funnels: funnels, log: log}
}

// Metrics gathers all dashboard aggregates. The per-stage breakdown uses the
// requested funnel, falling back to the default funnel when none is given.
// Counts run concurrently; the first failing query aborts the rest.
func (s *Service) Metrics(ctx context.Context, funnelID *int64) (MetricsResponse, error) {
	if funnelID == nil {
		defaultID, err := s.funnels.DefaultFunnelID(ctx)
		switch {
		case err == nil:
			funnelID = &defaultID
		case apperr.Is(err, apperr.KindNotFound):
			// No funnels configured yet; skip the per-stage breakdown.
		default:
			return MetricsResponse{}, err
		}
	}

	var resp MetricsResponse
	resp.FunnelID = funnelID
	resp.LeadsPerStage = make([]StageCount, 0)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := s.repo.CountLeads(gctx)
		resp.TotalLeads = total
		return err
	})
	g.Go(func() error {
		total, err := s.repo.CountLeadsSince(gctx, newLeadWindowDays)
		resp.NewLeadsThisWeek = total
		return err
	})
	g.Go(func() error {
		total, err := s.repo.CountProperties(gctx)
		resp.TotalProperties = total
		return err
	})
	g.Go(func() error {
		total, err := s.repo.CountPropertiesByStatus(gctx, "available")
		resp.AvailableProperties = total
		return err
	})
	g.Go(func() error {
		total, err := s.repo.CountOpenTasks(gctx)
		resp.OpenTasks = total
		return err
	})
	g.Go(func() error {
		total, err := s.repo.CountOverdueTasks(gctx)
		resp.OverdueTasks = total
		return err
	})
	if funnelID != nil {
		id := *funnelID
		g.Go(func() error {
			counts, err := s.repo.LeadsPerStage(gctx, id)
			if counts != nil {
				resp.LeadsPerStage = counts
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return MetricsResponse{}, err
	}

	return resp, nil
}
