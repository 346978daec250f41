package service

import (
	"context"
	"strings"

	"realty_portal_backend/internal/events"
	"realty_portal_backend/internal/leads/ports"
	"realty_portal_backend/internal/leads/repository"
	"realty_portal_backend/internal/leads/transport"
	"realty_portal_backend/platform/apperr"
	"realty_portal_backend/platform/logger"
	"realty_portal_backend/platform/phone"
)

const (
	defaultStatus = "new"

	sourceManual  = "manual"
	sourceWebsite = "website"
)

// Service provides business logic for leads: CRUD, funnel/stage assignment,
// and the public contact-form intake.
type Service struct {
	repo    repository.Repository
	funnels ports.FunnelDirectory
	bus     events.Bus
	log     *logger.Logger
}

// New creates a new leads service.
func New(repo repository.Repository, funnels ports.FunnelDirectory, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, funnels: funnels, bus: bus, log: log}
}

// GetByID retrieves a lead by ID.
func (s *Service) GetByID(ctx context.Context, id int64) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return toResponse(lead), nil
}

// List retrieves leads with filters and pagination.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (transport.LeadListResponse, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	leads, total, err := s.repo.List(ctx, repository.ListParams{
		Status:   req.Status,
		FunnelID: req.FunnelID,
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	})
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	items := make([]transport.LeadResponse, len(leads))
	for i, lead := range leads {
		items[i] = toResponse(lead)
	}

	return transport.LeadListResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Create creates a lead from the admin CRM.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return transport.LeadResponse{}, apperr.Validation("lead name is required")
	}

	status := defaultStatus
	if req.Status != nil {
		status = *req.Status
	}

	lead, err := s.repo.Create(ctx, repository.CreateParams{
		Name:       name,
		Email:      req.Email,
		Phone:      normalizePhone(req.Phone),
		Budget:     req.Budget,
		Notes:      req.Notes,
		Source:     sourceManual,
		Status:     status,
		PropertyID: req.PropertyID,
	})
	if err != nil {
		return transport.LeadResponse{}, err
	}

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Name:      lead.Name,
		Source:    lead.Source,
	})

	s.log.Info("lead created", "id", lead.ID, "source", lead.Source)
	return toResponse(lead), nil
}

// CreateFromContact creates a lead from the public contact form and notifies
// the brokerage inbox through the event bus.
func (s *Service) CreateFromContact(ctx context.Context, req transport.ContactRequest) (transport.LeadResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return transport.LeadResponse{}, apperr.Validation("name is required")
	}

	message := strings.TrimSpace(req.Message)
	email := req.Email

	lead, err := s.repo.Create(ctx, repository.CreateParams{
		Name:       name,
		Email:      &email,
		Phone:      normalizePhone(req.Phone),
		Notes:      &message,
		Source:     sourceWebsite,
		Status:     defaultStatus,
		PropertyID: req.PropertyID,
	})
	if err != nil {
		return transport.LeadResponse{}, err
	}

	contactPhone := ""
	if lead.Phone != nil {
		contactPhone = *lead.Phone
	}
	s.bus.Publish(ctx, events.ContactMessageReceived{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Name:      lead.Name,
		Email:     email,
		Phone:     contactPhone,
		Message:   message,
	})
	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Name:      lead.Name,
		Source:    lead.Source,
	})

	s.log.Info("contact lead created", "id", lead.ID)
	return toResponse(lead), nil
}

// Update applies a partial update to a lead.
func (s *Service) Update(ctx context.Context, id int64, req transport.UpdateLeadRequest) (transport.LeadResponse, error) {
	name := req.Name
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return transport.LeadResponse{}, apperr.Validation("lead name is required")
		}
		name = &trimmed
	}

	lead, err := s.repo.Update(ctx, repository.UpdateParams{
		ID:         id,
		Name:       name,
		Email:      req.Email,
		Phone:      normalizePhone(req.Phone),
		Budget:     req.Budget,
		Notes:      req.Notes,
		Status:     req.Status,
		PropertyID: req.PropertyID,
	})
	if err != nil {
		return transport.LeadResponse{}, err
	}

	s.log.Info("lead updated", "id", lead.ID)
	return toResponse(lead), nil
}

// Delete removes a lead.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("lead deleted", "id", id)
	return nil
}

// AssignToFunnel moves a lead into a funnel. When the funnel actually
// changes, the lead's stage is cleared so it can never reference a stage
// from a different funnel.
func (s *Service) AssignToFunnel(ctx context.Context, leadID, funnelID int64) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, leadID)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	exists, err := s.funnels.FunnelExists(ctx, funnelID)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	if !exists {
		return transport.LeadResponse{}, apperr.NotFound("sales funnel not found")
	}

	clearStage := lead.FunnelID == nil || *lead.FunnelID != funnelID

	updated, err := s.repo.AssignFunnel(ctx, leadID, funnelID, clearStage)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	s.log.Info("lead assigned to funnel", "leadId", leadID, "funnelId", funnelID, "stageCleared", clearStage)
	return toResponse(updated), nil
}

// UpdateStage moves a lead to a stage. The lead's funnel is reconciled to
// the stage's owning funnel, keeping the pair consistent.
func (s *Service) UpdateStage(ctx context.Context, leadID, stageID int64) (transport.LeadResponse, error) {
	if _, err := s.repo.GetByID(ctx, leadID); err != nil {
		return transport.LeadResponse{}, err
	}

	ref, err := s.funnels.GetStageRef(ctx, stageID)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	updated, err := s.repo.SetStage(ctx, leadID, ref.ID, ref.FunnelID)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	s.bus.Publish(ctx, events.LeadStageChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
		FunnelID:  ref.FunnelID,
		StageID:   ref.ID,
	})

	s.log.Info("lead stage updated", "leadId", leadID, "stageId", stageID, "funnelId", ref.FunnelID)
	return toResponse(updated), nil
}

// ListByFunnelStage retrieves leads attached to the given funnel and stage.
func (s *Service) ListByFunnelStage(ctx context.Context, funnelID, stageID int64) ([]transport.LeadResponse, error) {
	leads, err := s.repo.ListByFunnelStage(ctx, funnelID, stageID)
	if err != nil {
		return nil, err
	}

	items := make([]transport.LeadResponse, len(leads))
	for i, lead := range leads {
		items[i] = toResponse(lead)
	}
	return items, nil
}

func normalizePhone(raw *string) *string {
	if raw == nil {
		return nil
	}
	normalized := phone.NormalizeE164(*raw)
	if normalized == "" {
		return nil
	}
	return &normalized
}

func toResponse(lead repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:         lead.ID,
		Name:       lead.Name,
		Email:      lead.Email,
		Phone:      lead.Phone,
		Budget:     lead.Budget,
		Notes:      lead.Notes,
		Source:     lead.Source,
		Status:     lead.Status,
		PropertyID: lead.PropertyID,
		FunnelID:   lead.FunnelID,
		StageID:    lead.StageID,
		CreatedAt:  lead.CreatedAt,
		UpdatedAt:  lead.UpdatedAt,
	}
}
