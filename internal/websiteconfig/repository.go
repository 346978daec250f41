// Package websiteconfig provides the public website settings singleton.
package websiteconfig

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WebsiteConfig holds the marketing site settings. A single row is kept.
type WebsiteConfig struct {
	AgencyName   string
	Tagline      *string
	AboutText    *string
	ContactEmail *string
	ContactPhone *string
	Address      *string
	FacebookURL  *string
	InstagramURL *string
	LinkedInURL  *string
	UpdatedAt    string
}

// UpsertParams contains the full replacement settings.
type UpsertParams struct {
	AgencyName   string
	Tagline      *string
	AboutText    *string
	ContactEmail *string
	ContactPhone *string
	Address      *string
	FacebookURL  *string
	InstagramURL *string
	LinkedInURL  *string
}

// Repository defines storage operations for website settings.
type Repository interface {
	Get(ctx context.Context) (WebsiteConfig, bool, error)
	Upsert(ctx context.Context, params UpsertParams) (WebsiteConfig, error)
}

const websiteConfigColumns = "agency_name, tagline, about_text, contact_email, contact_phone, address, facebook_url, instagram_url, linkedin_url, updated_at"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// NewRepo creates a new website settings repository.
func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// Get retrieves the settings row. The second return value is false when no
// settings have been saved yet.
func (r *Repo) Get(ctx context.Context) (WebsiteConfig, bool, error) {
	query := `SELECT ` + websiteConfigColumns + ` FROM website_config WHERE id = 1`

	cfg, err := scanConfig(r.pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return WebsiteConfig{}, false, nil
		}
		return WebsiteConfig{}, false, fmt.Errorf("get website config: %w", err)
	}

	return cfg, true, nil
}

// Upsert replaces the settings row, creating it on first save.
func (r *Repo) Upsert(ctx context.Context, params UpsertParams) (WebsiteConfig, error) {
	query := `
		INSERT INTO website_config (id, agency_name, tagline, about_text, contact_email, contact_phone, address, facebook_url, instagram_url, linkedin_url)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			agency_name = EXCLUDED.agency_name,
			tagline = EXCLUDED.tagline,
			about_text = EXCLUDED.about_text,
			contact_email = EXCLUDED.contact_email,
			contact_phone = EXCLUDED.contact_phone,
			address = EXCLUDED.address,
			facebook_url = EXCLUDED.facebook_url,
			instagram_url = EXCLUDED.instagram_url,
			linkedin_url = EXCLUDED.linkedin_url,
			updated_at = NOW()
		RETURNING ` + websiteConfigColumns

	cfg, err := scanConfig(r.pool.QueryRow(ctx, query,
		params.AgencyName, params.Tagline, params.AboutText, params.ContactEmail,
		params.ContactPhone, params.Address, params.FacebookURL, params.InstagramURL, params.LinkedInURL))
	if err != nil {
		return WebsiteConfig{}, fmt.Errorf("upsert website config: %w", err)
	}

	return cfg, nil
}

func scanConfig(row pgx.Row) (WebsiteConfig, error) {
	var cfg WebsiteConfig
	var updatedAt time.Time

	err := row.Scan(&cfg.AgencyName, &cfg.Tagline, &cfg.AboutText, &cfg.ContactEmail,
		&cfg.ContactPhone, &cfg.Address, &cfg.FacebookURL, &cfg.InstagramURL,
		&cfg.LinkedInURL, &updatedAt)
	if err != nil {
		return WebsiteConfig{}, err
	}

	cfg.UpdatedAt = updatedAt.Format(time.RFC3339)
	return cfg, nil
}
