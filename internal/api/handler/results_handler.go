package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/service"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/response"
)

// ResultsHandler exposes aggregation endpoints.
type ResultsHandler struct {
	svc    service.ResultsService
	logger *zap.Logger
}

// NewResultsHandler creates a ResultsHandler.
func NewResultsHandler(svc service.ResultsService, logger *zap.Logger) *ResultsHandler {
	return &ResultsHandler{svc: svc, logger: logger}
}

// GetActivityResults GET /api/v1/activities/:id/results?view=leaderboard
func (h *ResultsHandler) GetActivityResults(c *gin.Context) {
	view := service.ResultsView(c.Query("view"))
	if view != service.ViewDefault && view != service.ViewLeaderboard {
		response.BadRequest(c, 40050, "unknown results view")
		return
	}

	results, err := h.svc.GetActivityResults(c.Request.Context(), c.Param("id"), view)
	if err != nil {
		h.handleResultsError(c, err)
		return
	}
	response.OK(c, results)
}

// GetSessionLeaderboard GET /api/v1/sessions/:id/leaderboard
func (h *ResultsHandler) GetSessionLeaderboard(c *gin.Context) {
	entries, err := h.svc.GetSessionLeaderboard(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleResultsError(c, err)
		return
	}
	response.OK(c, entries)
}

func (h *ResultsHandler) handleResultsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrActivityNotFound):
		response.NotFound(c, 40430, "activity not found")
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 40420, "session not found")
	default:
		h.logger.Error("results handler error", zap.Error(err))
		response.InternalError(c)
	}
}
