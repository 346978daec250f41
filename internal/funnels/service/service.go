package service

import (
	"context"
	"strings"

	"realty_portal_backend/internal/funnels/repository"
	"realty_portal_backend/internal/funnels/transport"
	"realty_portal_backend/platform/apperr"
	"realty_portal_backend/platform/logger"
)

// defaultStageColor is the neutral gray applied when a stage is created
// without an explicit color.
const defaultStageColor = "#6B7280"

// Service provides business logic for sales funnels and their stages.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new funnels service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create creates a new funnel. The first funnel in the system always becomes
// the default regardless of the request flag, so the system never has leads
// without a fallback pipeline. When the request asks for default status, the
// previous default is cleared in the same transaction.
func (s *Service) Create(ctx context.Context, req transport.CreateFunnelRequest) (transport.FunnelResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return transport.FunnelResponse{}, apperr.Validation("funnel name is required")
	}

	isDefault := req.IsDefault != nil && *req.IsDefault

	count, err := s.repo.CountFunnels(ctx)
	if err != nil {
		return transport.FunnelResponse{}, err
	}
	if count == 0 {
		isDefault = true
	}

	funnel, err := s.repo.CreateFunnel(ctx, repository.CreateFunnelParams{
		Name:        name,
		Description: req.Description,
		IsDefault:   isDefault,
	})
	if err != nil {
		return transport.FunnelResponse{}, err
	}

	s.log.Info("funnel created", "id", funnel.ID, "name", funnel.Name, "isDefault", funnel.IsDefault)
	return toFunnelResponse(funnel, 0), nil
}

// List retrieves all funnels with their stage counts.
func (s *Service) List(ctx context.Context) ([]transport.FunnelResponse, error) {
	funnels, err := s.repo.ListFunnels(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.StageCounts(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]transport.FunnelResponse, len(funnels))
	for i, funnel := range funnels {
		responses[i] = toFunnelResponse(funnel, counts[funnel.ID])
	}
	return responses, nil
}

// GetByID retrieves a funnel by ID.
func (s *Service) GetByID(ctx context.Context, id int64) (transport.FunnelResponse, error) {
	funnel, err := s.repo.GetFunnel(ctx, id)
	if err != nil {
		return transport.FunnelResponse{}, err
	}

	counts, err := s.repo.StageCounts(ctx)
	if err != nil {
		return transport.FunnelResponse{}, err
	}

	return toFunnelResponse(funnel, counts[funnel.ID]), nil
}

// Update applies a partial update to a funnel.
func (s *Service) Update(ctx context.Context, id int64, req transport.UpdateFunnelRequest) (transport.FunnelResponse, error) {
	name := req.Name
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return transport.FunnelResponse{}, apperr.Validation("funnel name is required")
		}
		name = &trimmed
	}

	funnel, err := s.repo.UpdateFunnel(ctx, repository.UpdateFunnelParams{
		ID:          id,
		Name:        name,
		Description: req.Description,
	})
	if err != nil {
		return transport.FunnelResponse{}, err
	}

	counts, err := s.repo.StageCounts(ctx)
	if err != nil {
		return transport.FunnelResponse{}, err
	}

	s.log.Info("funnel updated", "id", funnel.ID)
	return toFunnelResponse(funnel, counts[funnel.ID]), nil
}

// SetDefault makes the given funnel the single default. Idempotent: setting
// the current default again leaves the state unchanged.
func (s *Service) SetDefault(ctx context.Context, id int64) error {
	if err := s.repo.SetDefaultFunnel(ctx, id); err != nil {
		return err
	}

	s.log.Info("default funnel set", "id", id)
	return nil
}

// Delete removes a funnel. The default funnel cannot be deleted. Lead
// references are nulled and the funnel's stages removed in one transaction.
func (s *Service) Delete(ctx context.Context, id int64) error {
	funnel, err := s.repo.GetFunnel(ctx, id)
	if err != nil {
		return err
	}
	if funnel.IsDefault {
		return apperr.Conflict("cannot delete default funnel")
	}

	if err := s.repo.DeleteFunnel(ctx, id); err != nil {
		return err
	}

	s.log.Info("funnel deleted", "id", id)
	return nil
}

// DefaultFunnelID returns the id of the current default funnel.
func (s *Service) DefaultFunnelID(ctx context.Context) (int64, error) {
	funnels, err := s.repo.ListFunnels(ctx)
	if err != nil {
		return 0, err
	}
	for _, funnel := range funnels {
		if funnel.IsDefault {
			return funnel.ID, nil
		}
	}
	return 0, apperr.NotFound("no default funnel configured")
}

// FunnelExists reports whether a funnel with the given id exists.
func (s *Service) FunnelExists(ctx context.Context, id int64) (bool, error) {
	_, err := s.repo.GetFunnel(ctx, id)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CreateStage creates a stage at the end of a funnel: its position is the
// funnel's current maximum position plus one (1 for an empty funnel).
func (s *Service) CreateStage(ctx context.Context, req transport.CreateStageRequest) (transport.StageResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return transport.StageResponse{}, apperr.Validation("stage name is required")
	}

	if _, err := s.repo.GetFunnel(ctx, req.FunnelID); err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return transport.StageResponse{}, apperr.Validation("funnel does not exist")
		}
		return transport.StageResponse{}, err
	}

	stages, err := s.repo.ListStagesByFunnel(ctx, req.FunnelID)
	if err != nil {
		return transport.StageResponse{}, err
	}
	maxPosition := 0
	for _, stage := range stages {
		if stage.Position > maxPosition {
			maxPosition = stage.Position
		}
	}

	color := defaultStageColor
	if req.Color != nil && *req.Color != "" {
		color = *req.Color
	}

	stage, err := s.repo.CreateStage(ctx, repository.CreateStageParams{
		FunnelID:    req.FunnelID,
		Name:        name,
		Description: req.Description,
		Color:       color,
		Position:    maxPosition + 1,
	})
	if err != nil {
		return transport.StageResponse{}, err
	}

	s.log.Info("stage created", "id", stage.ID, "funnelId", stage.FunnelID, "position", stage.Position)
	return toStageResponse(stage), nil
}

// ListStages retrieves a funnel's stages ordered by ascending position.
func (s *Service) ListStages(ctx context.Context, funnelID int64) ([]transport.StageResponse, error) {
	stages, err := s.repo.ListStagesByFunnel(ctx, funnelID)
	if err != nil {
		return nil, err
	}
	return toStageResponses(stages), nil
}

// UpdateStage applies a partial update to a stage.
func (s *Service) UpdateStage(ctx context.Context, id int64, req transport.UpdateStageRequest) (transport.StageResponse, error) {
	name := req.Name
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return transport.StageResponse{}, apperr.Validation("stage name is required")
		}
		name = &trimmed
	}

	stage, err := s.repo.UpdateStage(ctx, repository.UpdateStageParams{
		ID:          id,
		Name:        name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		return transport.StageResponse{}, err
	}

	s.log.Info("stage updated", "id", stage.ID)
	return toStageResponse(stage), nil
}

// DeleteStage removes a stage. Sibling positions are not renumbered and the
// ordering tolerates the resulting gap.
func (s *Service) DeleteStage(ctx context.Context, id int64) error {
	if err := s.repo.DeleteStage(ctx, id); err != nil {
		return err
	}

	s.log.Info("stage deleted", "id", id)
	return nil
}

// Reorder rewrites a funnel's stage positions to the 0-based index of each
// id in the submitted list. The list must be an exact permutation of the
// funnel's stage ids; anything else fails before a single write happens.
func (s *Service) Reorder(ctx context.Context, funnelID int64, stageIDs []int64) ([]transport.StageResponse, error) {
	if _, err := s.repo.GetFunnel(ctx, funnelID); err != nil {
		return nil, err
	}

	stages, err := s.repo.ListStagesByFunnel(ctx, funnelID)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]repository.FunnelStage, len(stages))
	for _, stage := range stages {
		byID[stage.ID] = stage
	}

	if len(stageIDs) != len(stages) {
		return nil, apperr.Validation("stage ids must be a permutation of the funnel's stages")
	}
	seen := make(map[int64]bool, len(stageIDs))
	for _, id := range stageIDs {
		if _, ok := byID[id]; !ok {
			return nil, apperr.Validation("stage does not belong to funnel")
		}
		if seen[id] {
			return nil, apperr.Validation("duplicate stage id in reorder list")
		}
		seen[id] = true
	}

	placements := make([]repository.StagePlacement, len(stageIDs))
	for index, id := range stageIDs {
		placements[index] = repository.StagePlacement{ID: id, Position: index}
	}

	if err := s.repo.ApplyStageOrder(ctx, funnelID, placements); err != nil {
		return nil, err
	}

	responses := make([]transport.StageResponse, len(stageIDs))
	for index, id := range stageIDs {
		stage := byID[id]
		stage.Position = index
		responses[index] = toStageResponse(stage)
	}

	s.log.Info("stages reordered", "funnelId", funnelID, "count", len(stageIDs))
	return responses, nil
}

// StageRef identifies a stage and its owning funnel for other modules.
type StageRef struct {
	ID       int64
	FunnelID int64
}

// GetStageRef resolves a stage id to its funnel for cross-module checks.
func (s *Service) GetStageRef(ctx context.Context, id int64) (StageRef, error) {
	stage, err := s.repo.GetStage(ctx, id)
	if err != nil {
		return StageRef{}, err
	}
	return StageRef{ID: stage.ID, FunnelID: stage.FunnelID}, nil
}

func toFunnelResponse(funnel repository.SalesFunnel, stageCount int) transport.FunnelResponse {
	return transport.FunnelResponse{
		ID:          funnel.ID,
		Name:        funnel.Name,
		Description: funnel.Description,
		IsDefault:   funnel.IsDefault,
		StageCount:  stageCount,
		CreatedAt:   funnel.CreatedAt,
		UpdatedAt:   funnel.UpdatedAt,
	}
}

func toStageResponse(stage repository.FunnelStage) transport.StageResponse {
	return transport.StageResponse{
		ID:          stage.ID,
		FunnelID:    stage.FunnelID,
		Name:        stage.Name,
		Description: stage.Description,
		Color:       stage.Color,
		Position:    stage.Position,
		CreatedAt:   stage.CreatedAt,
		UpdatedAt:   stage.UpdatedAt,
	}
}

func toStageResponses(stages []repository.FunnelStage) []transport.StageResponse {
	responses := make([]transport.StageResponse, len(stages))
	for i, stage := range stages {
		responses[i] = toStageResponse(stage)
	}
	return responses
}
