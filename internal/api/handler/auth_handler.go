package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/dto"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/service"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/response"
)

// AuthHandler exposes account and token endpoints.
type AuthHandler struct {
	svc    service.AuthService
	logger *zap.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// Register POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40001, "invalid request body")
		return
	}

	tokens, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.Created(c, tokens)
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40001, "invalid request body")
		return
	}

	tokens, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.OK(c, tokens)
}

// Refresh POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40001, "invalid request body")
		return
	}

	tokens, err := h.svc.Refresh(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.OK(c, tokens)
}

// Logout POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), currentToken(c)); err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.OK(c, nil)
}

// Profile GET /api/v1/auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.svc.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.OK(c, user)
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, 40901, "email already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, 40110, "invalid email or password")
	case errors.Is(err, service.ErrInvalidToken):
		response.Unauthorized(c, 40102, "invalid or expired token")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 40410, "user not found")
	default:
		h.logger.Error("auth handler error", zap.Error(err))
		response.InternalError(c)
	}
}
