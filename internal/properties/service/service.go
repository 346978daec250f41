package service

import (
	"context"
	"strings"

	"realty_portal_backend/internal/properties/repository"
	"realty_portal_backend/internal/properties/transport"
	"realty_portal_backend/platform/apperr"
	"realty_portal_backend/platform/logger"
)

const defaultStatus = "available"

// Service provides business logic for property listings.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new properties service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// GetByID retrieves a property by ID.
func (s *Service) GetByID(ctx context.Context, id int64) (transport.PropertyResponse, error) {
	property, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.PropertyResponse{}, err
	}
	return toResponse(property), nil
}

// List retrieves properties with filters and pagination.
func (s *Service) List(ctx context.Context, req transport.ListPropertiesRequest) (transport.PropertyListResponse, error) {
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

	properties, total, err := s.repo.List(ctx, repository.ListParams{
		Type:     req.Type,
		Status:   req.Status,
		City:     req.City,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		Featured: req.Featured,
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	})
	if err != nil {
		return transport.PropertyListResponse{}, err
	}

	items := make([]transport.PropertyResponse, len(properties))
	for i, property := range properties {
		items[i] = toResponse(property)
	}

	return transport.PropertyListResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Create creates a property listing.
func (s *Service) Create(ctx context.Context, req transport.CreatePropertyRequest) (transport.PropertyResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return transport.PropertyResponse{}, apperr.Validation("property title is required")
	}

	status := defaultStatus
	if req.Status != nil {
		status = *req.Status
	}
	featured := req.Featured != nil && *req.Featured

	property, err := s.repo.Create(ctx, repository.CreateParams{
		Title:       title,
		Description: req.Description,
		Type:        req.Type,
		Status:      status,
		Price:       req.Price,
		Address:     req.Address,
		City:        req.City,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		AreaSqm:     req.AreaSqm,
		Featured:    featured,
	})
	if err != nil {
		return transport.PropertyResponse{}, err
	}

	s.log.Info("property created", "id", property.ID, "title", property.Title)
	return toResponse(property), nil
}

// Update applies a partial update to a property.
func (s *Service) Update(ctx context.Context, id int64, req transport.UpdatePropertyRequest) (transport.PropertyResponse, error) {
	title := req.Title
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return transport.PropertyResponse{}, apperr.Validation("property title is required")
		}
		title = &trimmed
	}

	property, err := s.repo.Update(ctx, repository.UpdateParams{
		ID:          id,
		Title:       title,
		Description: req.Description,
		Type:        req.Type,
		Status:      req.Status,
		Price:       req.Price,
		Address:     req.Address,
		City:        req.City,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		AreaSqm:     req.AreaSqm,
		Featured:    req.Featured,
	})
	if err != nil {
		return transport.PropertyResponse{}, err
	}

	s.log.Info("property updated", "id", property.ID)
	return toResponse(property), nil
}

// Delete removes a property listing.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("property deleted", "id", id)
	return nil
}

func toResponse(property repository.Property) transport.PropertyResponse {
	return transport.PropertyResponse{
		ID:          property.ID,
		Title:       property.Title,
		Description: property.Description,
		Type:        property.Type,
		Status:      property.Status,
		Price:       property.Price,
		Address:     property.Address,
		City:        property.City,
		Bedrooms:    property.Bedrooms,
		Bathrooms:   property.Bathrooms,
		AreaSqm:     property.AreaSqm,
		Featured:    property.Featured,
		CreatedAt:   property.CreatedAt,
		UpdatedAt:   property.UpdatedAt,
	}
}
