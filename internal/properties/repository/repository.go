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

const propertyNotFoundMessage = "property not found"

const propertyColumns = "id, title, description, type, status, price, address, city, bedrooms, bathrooms, area_sqm, featured, created_at, updated_at"

const listPropertiesQuery = `
	SELECT id, title, description, type, status, price, address, city, bedrooms, bathrooms, area_sqm, featured, created_at, updated_at
	FROM properties
	WHERE ($1::text IS NULL OR type = $1)
		AND ($2::text IS NULL OR status = $2)
		AND ($3::text IS NULL OR city ILIKE $3)
		AND ($4::bigint IS NULL OR price >= $4)
		AND ($5::bigint IS NULL OR price <= $5)
		AND ($6::boolean IS NULL OR featured = $6)
	ORDER BY featured DESC, created_at DESC, id DESC
	LIMIT $7 OFFSET $8`

const countPropertiesQuery = `
	SELECT COUNT(*)
	FROM properties
	WHERE ($1::text IS NULL OR type = $1)
		AND ($2::text IS NULL OR status = $2)
		AND ($3::text IS NULL OR city ILIKE $3)
		AND ($4::bigint IS NULL OR price >= $4)
		AND ($5::bigint IS NULL OR price <= $5)
		AND ($6::boolean IS NULL OR featured = $6)`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new properties repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetByID retrieves a property by its ID.
func (r *Repo) GetByID(ctx context.Context, id int64) (Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	property, err := scanProperty(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Property{}, apperr.NotFound(propertyNotFoundMessage)
		}
		return Property{}, fmt.Errorf("get property: %w", err)
	}

	return property, nil
}

// List retrieves properties with filters and pagination.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Property, int, error) {
	var cityParam any
	if params.City != nil {
		cityParam = "%" + *params.City + "%"
	}

	var total int
	if err := r.pool.QueryRow(ctx, countPropertiesQuery,
		params.Type, params.Status, cityParam, params.MinPrice, params.MaxPrice, params.Featured).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	rows, err := r.pool.Query(ctx, listPropertiesQuery,
		params.Type, params.Status, cityParam, params.MinPrice, params.MaxPrice, params.Featured,
		params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	properties := make([]Property, 0)
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan property: %w", err)
		}
		properties = append(properties, property)
	}

	return properties, total, rows.Err()
}

// Create inserts a new property.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Property, error) {
	query := `
		INSERT INTO properties (title, description, type, status, price, address, city, bedrooms, bathrooms, area_sqm, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + propertyColumns

	property, err := scanProperty(r.pool.QueryRow(ctx, query,
		params.Title, params.Description, params.Type, params.Status, params.Price,
		params.Address, params.City, params.Bedrooms, params.Bathrooms, params.AreaSqm, params.Featured))
	if err != nil {
		return Property{}, fmt.Errorf("create property: %w", err)
	}

	return property, nil
}

// Update applies a partial update and returns the updated property.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Property, error) {
	query := `
		UPDATE properties
		SET title = COALESCE($2, title),
			description = COALESCE($3, description),
			type = COALESCE($4, type),
			status = COALESCE($5, status),
			price = COALESCE($6, price),
			address = COALESCE($7, address),
			city = COALESCE($8, city),
			bedrooms = COALESCE($9, bedrooms),
			bathrooms = COALESCE($10, bathrooms),
			area_sqm = COALESCE($11, area_sqm),
			featured = COALESCE($12, featured),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + propertyColumns

	property, err := scanProperty(r.pool.QueryRow(ctx, query,
		params.ID, params.Title, params.Description, params.Type, params.Status, params.Price,
		params.Address, params.City, params.Bedrooms, params.Bathrooms, params.AreaSqm, params.Featured))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Property{}, apperr.NotFound(propertyNotFoundMessage)
		}
		return Property{}, fmt.Errorf("update property: %w", err)
	}

	return property, nil
}

// Delete removes a property. Leads referencing it keep their interest link
// cleared in the same transaction.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("delete property: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE leads SET property_id = NULL, updated_at = NOW() WHERE property_id = $1`, id); err != nil {
		return fmt.Errorf("delete property: detach leads: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(propertyNotFoundMessage)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("delete property: commit: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(row rowScanner) (Property, error) {
	var property Property
	var createdAt, updatedAt time.Time

	err := row.Scan(&property.ID, &property.Title, &property.Description, &property.Type,
		&property.Status, &property.Price, &property.Address, &property.City,
		&property.Bedrooms, &property.Bathrooms, &property.AreaSqm, &property.Featured,
		&createdAt, &updatedAt)
	if err != nil {
		return Property{}, err
	}

	property.CreatedAt = createdAt.Format(time.RFC3339)
	property.UpdatedAt = updatedAt.Format(time.RFC3339)
	return property, nil
}
