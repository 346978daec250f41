package websiteconfig

import (
	"context"
	"strings"

	"realty_portal_backend/platform/apperr"
	"realty_portal_backend/platform/logger"
)

const defaultAgencyName = "Realty Portal"

// Service provides business logic for website settings.
type Service struct {
	repo Repository
	log  *logger.Logger
}

// NewService creates a new website settings service.
func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Get returns the saved settings, or sensible defaults before the first save.
func (s *Service) Get(ctx context.Context) (ConfigResponse, error) {
	cfg, found, err := s.repo.Get(ctx)
	if err != nil {
		return ConfigResponse{}, err
	}
	if !found {
		return ConfigResponse{AgencyName: defaultAgencyName}, nil
	}
	return toResponse(cfg), nil
}

// Update replaces the settings with the submitted values.
func (s *Service) Update(ctx context.Context, req UpdateConfigRequest) (ConfigResponse, error) {
	agencyName := strings.TrimSpace(req.AgencyName)
	if agencyName == "" {
		return ConfigResponse{}, apperr.Validation("agency name is required")
	}

	cfg, err := s.repo.Upsert(ctx, UpsertParams{
		AgencyName:   agencyName,
		Tagline:      req.Tagline,
		AboutText:    req.AboutText,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
		FacebookURL:  req.FacebookURL,
		InstagramURL: req.InstagramURL,
		LinkedInURL:  req.LinkedInURL,
	})
	if err != nil {
		return ConfigResponse{}, err
	}

	s.log.Info("website config updated", "agencyName", cfg.AgencyName)
	return toResponse(cfg), nil
}

func toResponse(cfg WebsiteConfig) ConfigResponse {
	return ConfigResponse{
		AgencyName:   cfg.AgencyName,
		Tagline:      cfg.Tagline,
		AboutText:    cfg.AboutText,
		ContactEmail: cfg.ContactEmail,
		ContactPhone: cfg.ContactPhone,
		Address:      cfg.Address,
		FacebookURL:  cfg.FacebookURL,
		InstagramURL: cfg.InstagramURL,
		LinkedInURL:  cfg.LinkedInURL,
		UpdatedAt:    cfg.UpdatedAt,
	}
}
