package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"realty_portal_backend/internal/funnels/service"
	"realty_portal_backend/internal/funnels/transport"
	"realty_portal_backend/platform/apperr"
	"realty_portal_backend/platform/httpkit"
	"realty_portal_backend/platform/validator"
)

// Handler handles HTTP requests for sales funnels and funnel stages.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidFunnelID  = "invalid funnel ID"
	msgInvalidStageID   = "invalid stage ID"
)

// New creates a new funnels handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ListFunnels retrieves all sales funnels.
// GET /api/sales-funnels
func (h *Handler) ListFunnels(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetFunnel retrieves a funnel by ID.
// GET /api/sales-funnels/:id
func (h *Handler) GetFunnel(c *gin.Context) {
	id, ok := parseID(c, "id", msgInvalidFunnelID)
	if !ok {
		return
	}

	result, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateFunnel creates a new sales funnel.
// POST /api/sales-funnels
func (h *Handler) CreateFunnel(c *gin.Context) {
	var req transport.CreateFunnelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// UpdateFunnel applies a partial update to a funnel.
// PATCH /api/sales-funnels/:id
func (h *Handler) UpdateFunnel(c *gin.Context) {
	id, ok := parseID(c, "id", msgInvalidFunnelID)
	if !ok {
		return
	}

	var req transport.UpdateFunnelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Update(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteFunnel removes a funnel.
// DELETE /api/sales-funnels/:id
func (h *Handler) DeleteFunnel(c *gin.Context) {
	id, ok := parseID(c, "id", msgInvalidFunnelID)
	if !ok {
		return
	}

	err := h.svc.Delete(c.Request.Context(), id)
	// The admin frontend expects 404 when the delete is blocked because the
	// funnel is the default; keep that wire contract.
	if apperr.Is(err, apperr.KindConflict) {
		httpkit.Error(c, http.StatusNotFound, err.Error(), nil)
		return
	}
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.NoContent(c)
}

// SetDefaultFunnel makes a funnel the single default.
// POST /api/sales-funnels/:id/set-default
func (h *Handler) SetDefaultFunnel(c *gin.Context) {
	id, ok := parseID(c, "id", msgInvalidFunnelID)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.SetDefault(c.Request.Context(), id)) {
		return
	}
	httpkit.OK(c, transport.SetDefaultResponse{Success: true})
}

// ReorderStages rewrites a funnel's stage positions from an ordered id list.
// POST /api/sales-funnels/:id/reorder-stages
func (h *Handler) ReorderStages(c *gin.Context) {
	id, ok := parseID(c, "id", msgInvalidFunnelID)
	if !ok {
		return
	}

	var req transport.ReorderStagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "stageIds must be an array of stage ids", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Reorder(c.Request.Context(), id, req.StageIDs)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListStages retrieves the stages of a funnel.
// GET /api/funnel-stages?funnelId=<id>
func (h *Handler) ListStages(c *gin.Context) {
	raw := c.Query("funnelId")
	if raw == "" {
		httpkit.Error(c, http.StatusBadRequest, "funnelId query parameter is required", nil)
		return
	}
	funnelID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidFunnelID, nil)
		return
	}

	result, err := h.svc.ListStages(c.Request.Context(), funnelID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateStage creates a stage at the end of a funnel.
// POST /api/funnel-stages
func (h *Handler) CreateStage(c *gin.Context) {
	var req transport.CreateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateStage(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// UpdateStage applies a partial update to a stage.
// PATCH /api/funnel-stages/:id
func (h *Handler) UpdateStage(c *gin.Context) {
	id, ok := parseID(c, "id", msgInvalidStageID)
	if !ok {
		return
	}

	var req transport.UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateStage(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteStage removes a stage.
// DELETE /api/funnel-stages/:id
func (h *Handler) DeleteStage(c *gin.Context) {
	id, ok := parseID(c, "id", msgInvalidStageID)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteStage(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}

func parseID(c *gin.Context, param, message string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id < 1 {
		httpkit.Error(c, http.StatusBadRequest, message, nil)
		return 0, false
	}
	return id, true
}
