// Package tasks provides the follow-up task bounded context module.
package tasks

import (
	"time"

	apphttp "realty_portal_backend/internal/http"
	"realty_portal_backend/internal/tasks/handler"
	"realty_portal_backend/internal/tasks/repository"
	"realty_portal_backend/internal/tasks/service"
	"realty_portal_backend/platform/logger"
	"realty_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the tasks bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the tasks module. scheduler may be nil
// when no reminder queue is configured.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger, scheduler service.ReminderScheduler, reminderLead time.Duration) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, scheduler, reminderLead, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "tasks"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts task routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.API.Group("/tasks")
	group.GET("", m.handler.List)
	group.GET("/:id", m.handler.GetByID)
	group.POST("", m.handler.Create)
	group.PATCH("/:id", m.handler.Update)
	group.DELETE("/:id", m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
