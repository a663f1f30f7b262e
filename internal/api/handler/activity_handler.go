package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/activity"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/dto"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/service"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/response"
)

// ActivityHandler exposes activity lifecycle endpoints.
type ActivityHandler struct {
	svc    service.ActivityService
	logger *zap.Logger
}

// NewActivityHandler creates an ActivityHandler.
func NewActivityHandler(svc service.ActivityService, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{svc: svc, logger: logger}
}

// Create POST /api/v1/sessions/:id/activities
func (h *ActivityHandler) Create(c *gin.Context) {
	var req dto.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40001, "invalid request body")
		return
	}

	act, err := h.svc.Create(c.Request.Context(), c.Param("id"), &req, currentUserID(c))
	if err != nil {
		h.handleActivityError(c, err)
		return
	}
	response.Created(c, act)
}

// Get GET /api/v1/activities/:id
func (h *ActivityHandler) Get(c *gin.Context) {
	act, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleActivityError(c, err)
		return
	}
	response.OK(c, act)
}

// ListBySession GET /api/v1/sessions/:id/activities
func (h *ActivityHandler) ListBySession(c *gin.Context) {
	activities, err := h.svc.ListBySession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleActivityError(c, err)
		return
	}
	response.OK(c, activities)
}

// UpdateConfig PUT /api/v1/activities/:id/config
func (h *ActivityHandler) UpdateConfig(c *gin.Context) {
	var req dto.UpdateActivityConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40001, "invalid request body")
		return
	}

	act, err := h.svc.UpdateConfig(c.Request.Context(), c.Param("id"), &req, currentUserID(c))
	if err != nil {
		h.handleActivityError(c, err)
		return
	}
	response.OK(c, act)
}

// UpdateStatus PATCH /api/v1/activities/:id/status
func (h *ActivityHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateActivityStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40001, "invalid request body")
		return
	}

	act, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), &req, currentUserID(c))
	if err != nil {
		h.handleActivityError(c, err)
		return
	}
	response.OK(c, act)
}

// CreateInitiative POST /api/v1/activities/:id/initiatives
func (h *ActivityHandler) CreateInitiative(c *gin.Context) {
	var req dto.CreateInitiativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40001, "invalid request body")
		return
	}

	initiative, err := h.svc.CreateInitiative(c.Request.Context(), c.Param("id"), &req, currentUserID(c))
	if err != nil {
		h.handleActivityError(c, err)
		return
	}
	response.Created(c, initiative)
}

// ListInitiatives GET /api/v1/activities/:id/initiatives
func (h *ActivityHandler) ListInitiatives(c *gin.Context) {
	initiatives, err := h.svc.ListInitiatives(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleActivityError(c, err)
		return
	}
	response.OK(c, initiatives)
}

func (h *ActivityHandler) handleActivityError(c *gin.Context, err error) {
	var verr *activity.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, 400, 40030, verr.Message, verr.Field)
	case errors.Is(err, service.ErrActivityNotFound):
		response.NotFound(c, 40430, "activity not found")
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 40420, "session not found")
	case errors.Is(err, service.ErrNotSessionOwner):
		response.Forbidden(c, 40321, "not the owner of this session")
	case errors.Is(err, service.ErrBadActivityTransition):
		response.Conflict(c, 40930, "invalid status transition")
	case errors.Is(err, service.ErrVotingNotConfigured):
		response.Conflict(c, 40931, "voting is not enabled for this activity")
	case errors.Is(err, service.ErrNotStocktake):
		response.Conflict(c, 40932, "activity does not take initiatives")
	case errors.Is(err, service.ErrInitiativeNotFound):
		response.NotFound(c, 40431, "initiative not found")
	default:
		h.logger.Error("activity handler error", zap.Error(err))
		response.InternalError(c)
	}
}
