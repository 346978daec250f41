package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"realty_portal_backend/internal/leads/service"
	"realty_portal_backend/internal/leads/transport"
	"realty_portal_backend/platform/httpkit"
	"realty_portal_backend/platform/validator"
)

// Handler handles HTTP requests for leads.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidLeadID    = "invalid lead ID"
)

// New creates a new leads handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List retrieves leads with filters and pagination.
// GET /api/leads
func (h *Handler) List(c *gin.Context) {
	var req transport.ListLeadsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetByID retrieves a lead by ID.
// GET /api/leads/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", msgInvalidLeadID)
	if !ok {
		return
	}

	result, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Create creates a new lead from the admin CRM.
// POST /api/leads
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateLeadRequest
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

// Update applies a partial update to a lead.
// PATCH /api/leads/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", msgInvalidLeadID)
	if !ok {
		return
	}

	var req transport.UpdateLeadRequest
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

// Delete removes a lead.
// DELETE /api/leads/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", msgInvalidLeadID)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}

// AssignFunnel moves a lead into a funnel.
// PATCH /api/leads/:id/funnel
func (h *Handler) AssignFunnel(c *gin.Context) {
	id, ok := parseID(c, "id", msgInvalidLeadID)
	if !ok {
		return
	}

	var req transport.AssignFunnelRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FunnelID == nil {
		httpkit.Error(c, http.StatusBadRequest, "funnelId must be a number", nil)
		return
	}

	result, err := h.svc.AssignToFunnel(c.Request.Context(), id, *req.FunnelID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// AssignStage moves a lead to a funnel stage.
// PATCH /api/leads/:id/stage
func (h *Handler) AssignStage(c *gin.Context) {
	id, ok := parseID(c, "id", msgInvalidLeadID)
	if !ok {
		return
	}

	var req transport.AssignStageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.StageID == nil {
		httpkit.Error(c, http.StatusBadRequest, "stageId must be a number", nil)
		return
	}

	result, err := h.svc.UpdateStage(c.Request.Context(), id, *req.StageID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListByFunnelStage retrieves the leads attached to a funnel stage.
// GET /api/funnel-stages/:id/:stageId/leads (:id is the funnel id)
func (h *Handler) ListByFunnelStage(c *gin.Context) {
	funnelID, ok := parseID(c, "id", "invalid funnel ID")
	if !ok {
		return
	}
	stageID, ok := parseID(c, "stageId", "invalid stage ID")
	if !ok {
		return
	}

	result, err := h.svc.ListByFunnelStage(c.Request.Context(), funnelID, stageID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Contact handles the public marketing-site contact form.
// POST /api/contact
func (h *Handler) Contact(c *gin.Context) {
	var req transport.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateFromContact(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

func parseID(c *gin.Context, param, message string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id < 1 {
		httpkit.Error(c, http.StatusBadRequest, message, nil)
		return 0, false
	}
	return id, true
}
