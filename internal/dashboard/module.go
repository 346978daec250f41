package dashboard

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "realty_portal_backend/internal/http"
	"realty_portal_backend/platform/httpkit"
	"realty_portal_backend/platform/logger"
)

// Module is the dashboard module implementing http.Module.
type Module struct {
	service *Service
}

// NewModule creates and initializes the dashboard module.
func NewModule(pool *pgxpool.Pool, funnels DefaultFunnelProvider, log *logger.Logger) *Module {
	return &Module{
		service: NewService(NewRepo(pool), funnels, log),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "dashboard"
}

// RegisterRoutes mounts the dashboard routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.API.GET("/dashboard/metrics", m.metrics)
}

func (m *Module) metrics(c *gin.Context) {
	var funnelID *int64
	if raw := c.Query("funnelId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			httpkit.Error(c, http.StatusBadRequest, "funnelId must be a number", nil)
			return
		}
		funnelID = &id
	}

	result, err := m.service.Metrics(c.Request.Context(), funnelID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
