package repository

import "context"

// Property is a real-estate listing shown on the marketing site and managed
// from the admin.
type Property struct {
	ID          int64   `db:"id"`
	Title       string  `db:"title"`
	Description *string `db:"description"`
	Type        string  `db:"type"`
	Status      string  `db:"status"`
	Price       int64   `db:"price"`
	Address     *string `db:"address"`
	City        *string `db:"city"`
	Bedrooms    *int    `db:"bedrooms"`
	Bathrooms   *int    `db:"bathrooms"`
	AreaSqm     *int    `db:"area_sqm"`
	Featured    bool    `db:"featured"`
	CreatedAt   string  `db:"created_at"`
	UpdatedAt   string  `db:"updated_at"`
}

// CreateParams contains parameters for creating a property.
type CreateParams struct {
	Title       string
	Description *string
	Type        string
	Status      string
	Price       int64
	Address     *string
	City        *string
	Bedrooms    *int
	Bathrooms   *int
	AreaSqm     *int
	Featured    bool
}

// UpdateParams contains parameters for a partial property update.
type UpdateParams struct {
	ID          int64
	Title       *string
	Description *string
	Type        *string
	Status      *string
	Price       *int64
	Address     *string
	City        *string
	Bedrooms    *int
	Bathrooms   *int
	AreaSqm     *int
	Featured    *bool
}

// ListParams filters and paginates property listings.
type ListParams struct {
	Type     *string
	Status   *string
	City     *string
	MinPrice *int64
	MaxPrice *int64
	Featured *bool
	Limit    int
	Offset   int
}

// Reader provides read operations for properties.
type Reader interface {
	GetByID(ctx context.Context, id int64) (Property, error)
	List(ctx context.Context, params ListParams) ([]Property, int, error)
}

// Writer provides write operations for properties.
type Writer interface {
	Create(ctx context.Context, params CreateParams) (Property, error)
	Update(ctx context.Context, params UpdateParams) (Property, error)
	Delete(ctx context.Context, id int64) error
}

// Repository combines all property repository operations.
type Repository interface {
	Reader
	Writer
}
