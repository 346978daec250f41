// Package leads provides the leads bounded context module: CRM lead
// management, funnel/stage assignment, and the public contact-form intake.
package leads

import (
	"realty_portal_backend/internal/events"
	apphttp "realty_portal_backend/internal/http"
	"realty_portal_backend/internal/leads/handler"
	"realty_portal_backend/internal/leads/ports"
	"realty_portal_backend/internal/leads/repository"
	"realty_portal_backend/internal/leads/service"
	"realty_portal_backend/platform/logger"
	"realty_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the leads module with all its dependencies.
// The FunnelDirectory is provided by an adapter over the funnels module.
func NewModule(pool *pgxpool.Pool, funnels ports.FunnelDirectory, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, funnels, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts lead routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	leadGroup := ctx.API.Group("/leads")
	leadGroup.GET("", m.handler.List)
	leadGroup.POST("", m.handler.Create)
	leadGroup.GET("/:id", m.handler.GetByID)
	leadGroup.PATCH("/:id", m.handler.Update)
	leadGroup.DELETE("/:id", m.handler.Delete)
	leadGroup.PATCH("/:id/funnel", m.handler.AssignFunnel)
	leadGroup.PATCH("/:id/stage", m.handler.AssignStage)

	// Kanban board: leads of one funnel stage. The :id segment is the funnel
	// id; it shares the parameter name with the stage CRUD routes because gin
	// requires consistent wildcard names on a path prefix.
	ctx.API.GET("/funnel-stages/:id/:stageId/leads", m.handler.ListByFunnelStage)

	// Public contact form, rate limited per IP.
	ctx.Public.POST("/contact", ctx.ContactRateLimiter.RateLimit(), m.handler.Contact)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
