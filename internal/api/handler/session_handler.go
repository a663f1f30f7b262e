package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/dto"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/service"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/response"
)

// SessionHandler exposes session lifecycle and join endpoints.
type SessionHandler struct {
	svc    service.SessionService
	logger *zap.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(svc service.SessionService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{svc: svc, logger: logger}
}

// Create POST /api/v1/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40001, "invalid request body")
		return
	}

	session, err := h.svc.Create(c.Request.Context(), &req, currentUserID(c))
	if err != nil {
		h.handleSessionError(c, err)
		return
	}
	response.Created(c, session)
}

// Get GET /api/v1/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	session, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		h.handleSessionError(c, err)
		return
	}
	response.OK(c, session)
}

// List GET /api/v1/sessions
func (h *SessionHandler) List(c *gin.Context) {
	sessions, err := h.svc.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.handleSessionError(c, err)
		return
	}
	response.OK(c, sessions)
}

// UpdateStatus PATCH /api/v1/sessions/:id/status
func (h *SessionHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateSessionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40001, "invalid request body")
		return
	}

	session, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), &req, currentUserID(c))
	if err != nil {
		h.handleSessionError(c, err)
		return
	}
	response.OK(c, session)
}

// Join POST /api/v1/join — public, rate limited.
func (h *SessionHandler) Join(c *gin.Context) {
	var req dto.JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40001, "invalid request body")
		return
	}

	joined, err := h.svc.Join(c.Request.Context(), &req)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}
	response.Created(c, joined)
}

// CreateGroup POST /api/v1/sessions/:id/groups
func (h *SessionHandler) CreateGroup(c *gin.Context) {
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40001, "invalid request body")
		return
	}

	group, err := h.svc.CreateGroup(c.Request.Context(), c.Param("id"), &req, currentUserID(c))
	if err != nil {
		h.handleSessionError(c, err)
		return
	}
	response.Created(c, group)
}

// ListGroups GET /api/v1/sessions/:id/groups
func (h *SessionHandler) ListGroups(c *gin.Context) {
	groups, err := h.svc.ListGroups(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleSessionError(c, err)
		return
	}
	response.OK(c, groups)
}

// ListParticipants GET /api/v1/sessions/:id/participants
func (h *SessionHandler) ListParticipants(c *gin.Context) {
	participants, err := h.svc.ListParticipants(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		h.handleSessionError(c, err)
		return
	}
	response.OK(c, participants)
}

func (h *SessionHandler) handleSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 40420, "session not found")
	case errors.Is(err, service.ErrSessionCapReached):
		response.Forbidden(c, 40320, "free plan session limit reached")
	case errors.Is(err, service.ErrNotSessionOwner):
		response.Forbidden(c, 40321, "not the owner of this session")
	case errors.Is(err, service.ErrBadSessionTransition):
		response.Conflict(c, 40920, "invalid status transition")
	case errors.Is(err, service.ErrSessionNotJoinable):
		response.Conflict(c, 40921, "session is not accepting participants")
	case errors.Is(err, service.ErrGroupNotFound):
		response.NotFound(c, 40421, "group not found")
	case errors.Is(err, service.ErrJoinCodeExhausted):
		h.logger.Error("join code space exhausted", zap.Error(err))
		response.InternalError(c)
	default:
		h.logger.Error("session handler error", zap.Error(err))
		response.InternalError(c)
	}
}
