// Package funnels provides the sales funnel bounded context module.
// It owns funnels and their ordered stages: the exactly-one-default
// invariant, stage position assignment, and bulk reordering.
package funnels

import (
	"realty_portal_backend/internal/funnels/handler"
	"realty_portal_backend/internal/funnels/repository"
	"realty_portal_backend/internal/funnels/service"
	apphttp "realty_portal_backend/internal/http"
	"realty_portal_backend/platform/logger"
	"realty_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the funnels bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the funnels module with all its dependencies.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "funnels"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts funnel and stage routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	funnelGroup := ctx.API.Group("/sales-funnels")
	funnelGroup.GET("", m.handler.ListFunnels)
	funnelGroup.GET("/:id", m.handler.GetFunnel)
	funnelGroup.POST("", m.handler.CreateFunnel)
	funnelGroup.PATCH("/:id", m.handler.UpdateFunnel)
	funnelGroup.DELETE("/:id", m.handler.DeleteFunnel)
	funnelGroup.POST("/:id/set-default", m.handler.SetDefaultFunnel)
	funnelGroup.POST("/:id/reorder-stages", m.handler.ReorderStages)

	stageGroup := ctx.API.Group("/funnel-stages")
	stageGroup.GET("", m.handler.ListStages)
	stageGroup.POST("", m.handler.CreateStage)
	stageGroup.PATCH("/:id", m.handler.UpdateStage)
	stageGroup.DELETE("/:id", m.handler.DeleteStage)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
