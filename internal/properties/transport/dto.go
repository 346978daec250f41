package transport

// CreatePropertyRequest contains data for creating a property listing.
type CreatePropertyRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Type        string  `json:"type" validate:"required,oneof=house apartment condo land commercial"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=available reserved sold"`
	Price       int64   `json:"price" validate:"required,min=0"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=300"`
	City        *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Bedrooms    *int    `json:"bedrooms,omitempty" validate:"omitempty,min=0,max=50"`
	Bathrooms   *int    `json:"bathrooms,omitempty" validate:"omitempty,min=0,max=50"`
	AreaSqm     *int    `json:"areaSqm,omitempty" validate:"omitempty,min=0"`
	Featured    *bool   `json:"featured,omitempty"`
}

// UpdatePropertyRequest contains data for a partial property update.
type UpdatePropertyRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Type        *string `json:"type,omitempty" validate:"omitempty,oneof=house apartment condo land commercial"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=available reserved sold"`
	Price       *int64  `json:"price,omitempty" validate:"omitempty,min=0"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=300"`
	City        *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Bedrooms    *int    `json:"bedrooms,omitempty" validate:"omitempty,min=0,max=50"`
	Bathrooms   *int    `json:"bathrooms,omitempty" validate:"omitempty,min=0,max=50"`
	AreaSqm     *int    `json:"areaSqm,omitempty" validate:"omitempty,min=0"`
	Featured    *bool   `json:"featured,omitempty"`
}

// ListPropertiesRequest filters and paginates the property listing.
type ListPropertiesRequest struct {
	Type     *string `form:"type"`
	Status   *string `form:"status"`
	City     *string `form:"city"`
	MinPrice *int64  `form:"minPrice"`
	MaxPrice *int64  `form:"maxPrice"`
	Featured *bool   `form:"featured"`
	Page     int     `form:"page"`
	PageSize int     `form:"pageSize"`
}

// PropertyResponse represents a property in API responses.
type PropertyResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Type        string  `json:"type"`
	Status      string  `json:"status"`
	Price       int64   `json:"price"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	Bedrooms    *int    `json:"bedrooms,omitempty"`
	Bathrooms   *int    `json:"bathrooms,omitempty"`
	AreaSqm     *int    `json:"areaSqm,omitempty"`
	Featured    bool    `json:"featured"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// PropertyListResponse wraps a paginated list of properties.
type PropertyListResponse struct {
	Items    []PropertyResponse `json:"items"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
}
