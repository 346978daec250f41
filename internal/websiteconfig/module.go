package websiteconfig

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "realty_portal_backend/internal/http"
	"realty_portal_backend/platform/httpkit"
	"realty_portal_backend/platform/logger"
	"realty_portal_backend/platform/validator"
)

// UpdateConfigRequest contains the full replacement website settings.
type UpdateConfigRequest struct {
	AgencyName   string  `json:"agencyName" validate:"required,min=1,max=200"`
	Tagline      *string `json:"tagline,omitempty" validate:"omitempty,max=300"`
	AboutText    *string `json:"aboutText,omitempty" validate:"omitempty,max=10000"`
	ContactEmail *string `json:"contactEmail,omitempty" validate:"omitempty,email"`
	ContactPhone *string `json:"contactPhone,omitempty" validate:"omitempty,max=40"`
	Address      *string `json:"address,omitempty" validate:"omitempty,max=300"`
	FacebookURL  *string `json:"facebookUrl,omitempty" validate:"omitempty,url"`
	InstagramURL *string `json:"instagramUrl,omitempty" validate:"omitempty,url"`
	LinkedInURL  *string `json:"linkedinUrl,omitempty" validate:"omitempty,url"`
}

// ConfigResponse represents the website settings in API responses.
type ConfigResponse struct {
	AgencyName   string  `json:"agencyName"`
	Tagline      *string `json:"tagline,omitempty"`
	AboutText    *string `json:"aboutText,omitempty"`
	ContactEmail *string `json:"contactEmail,omitempty"`
	ContactPhone *string `json:"contactPhone,omitempty"`
	Address      *string `json:"address,omitempty"`
	FacebookURL  *string `json:"facebookUrl,omitempty"`
	InstagramURL *string `json:"instagramUrl,omitempty"`
	LinkedInURL  *string `json:"linkedinUrl,omitempty"`
	UpdatedAt    string  `json:"updatedAt,omitempty"`
}

// Module is the website settings module implementing http.Module.
type Module struct {
	service *Service
	val     *validator.Validator
}

// NewModule creates and initializes the website settings module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	return &Module{
		service: NewService(NewRepo(pool), log),
		val:     val,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "websiteconfig"
}

// RegisterRoutes mounts the settings routes. The read serves the public site.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.API.GET("/website-config", m.get)
	ctx.API.PUT("/website-config", m.update)
}

func (m *Module) get(c *gin.Context) {
	result, err := m.service.Get(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (m *Module) update(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := m.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := m.service.Update(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
