package websiteconfig

import (
	"context"
	"testing"

	"realty_portal_backend/platform/apperr"
	"realty_portal_backend/platform/logger"
)

type fakeConfigRepo struct {
	stored *WebsiteConfig
}

func (f *fakeConfigRepo) Get(context.Context) (WebsiteConfig, bool, error) {
	if f.stored == nil {
		return WebsiteConfig{}, false, nil
	}
	return *f.stored, true, nil
}

func (f *fakeConfigRepo) Upsert(_ context.Context, params UpsertParams) (WebsiteConfig, error) {
	cfg := WebsiteConfig{
		AgencyName:   params.AgencyName,
		Tagline:      params.Tagline,
		AboutText:    params.AboutText,
		ContactEmail: params.ContactEmail,
		ContactPhone: params.ContactPhone,
		Address:      params.Address,
		FacebookURL:  params.FacebookURL,
		InstagramURL: params.InstagramURL,
		LinkedInURL:  params.LinkedInURL,
	}
	f.stored = &cfg
	return cfg, nil
}

var _ Repository = (*fakeConfigRepo)(nil)

func TestGetBeforeFirstSaveReturnsDefaults(t *testing.T) {
	svc := NewService(&fakeConfigRepo{}, logger.New("test"))

	resp, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AgencyName != defaultAgencyName {
		t.Errorf("agencyName = %q, want %q", resp.AgencyName, defaultAgencyName)
	}
}

func TestUpdateRoundTrips(t *testing.T) {
	repo := &fakeConfigRepo{}
	svc := NewService(repo, logger.New("test"))
	ctx := context.Background()

	tagline := "Homes along the canal"
	if _, err := svc.Update(ctx, UpdateConfigRequest{AgencyName: "  Canal Estates ", Tagline: &tagline}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AgencyName != "Canal Estates" {
		t.Errorf("agencyName = %q, want trimmed Canal Estates", resp.AgencyName)
	}
	if resp.Tagline == nil || *resp.Tagline != tagline {
		t.Errorf("tagline = %v, want %q", resp.Tagline, tagline)
	}
}

func TestUpdateRequiresAgencyName(t *testing.T) {
	svc := NewService(&fakeConfigRepo{}, logger.New("test"))

	_, err := svc.Update(context.Background(), UpdateConfigRequest{AgencyName: "   "})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
