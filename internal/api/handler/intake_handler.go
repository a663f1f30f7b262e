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

// IntakeHandler exposes participant input endpoints: submissions,
// votes, and stocktake responses.
type IntakeHandler struct {
	svc    service.IntakeService
	logger *zap.Logger
}

// NewIntakeHandler creates an IntakeHandler.
func NewIntakeHandler(svc service.IntakeService, logger *zap.Logger) *IntakeHandler {
	return &IntakeHandler{svc: svc, logger: logger}
}

// CreateSubmission POST /api/v1/activities/:id/submissions
func (h *IntakeHandler) CreateSubmission(c *gin.Context) {
	var req dto.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40001, "invalid request body")
		return
	}

	participantID, sessionID := currentParticipant(c)
	submission, err := h.svc.CreateSubmission(c.Request.Context(), c.Param("id"), &req, participantID, sessionID)
	if err != nil {
		h.handleIntakeError(c, err)
		return
	}
	response.Created(c, submission)
}

// ListSubmissions GET /api/v1/activities/:id/submissions
func (h *IntakeHandler) ListSubmissions(c *gin.Context) {
	submissions, err := h.svc.ListSubmissions(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleIntakeError(c, err)
		return
	}
	response.OK(c, submissions)
}

// CastVote POST /api/v1/submissions/:id/votes
func (h *IntakeHandler) CastVote(c *gin.Context) {
	var req dto.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40001, "invalid request body")
		return
	}

	participantID, sessionID := currentParticipant(c)
	if err := h.svc.CastVote(c.Request.Context(), c.Param("id"), &req, participantID, sessionID); err != nil {
		h.handleIntakeError(c, err)
		return
	}
	response.Created(c, nil)
}

// CreateResponse POST /api/v1/initiatives/:id/responses
func (h *IntakeHandler) CreateResponse(c *gin.Context) {
	var req dto.CreateResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40001, "invalid request body")
		return
	}

	participantID, sessionID := currentParticipant(c)
	if err := h.svc.CreateResponse(c.Request.Context(), c.Param("id"), &req, participantID, sessionID); err != nil {
		h.handleIntakeError(c, err)
		return
	}
	response.Created(c, nil)
}

func (h *IntakeHandler) handleIntakeError(c *gin.Context, err error) {
	var verr *activity.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, 400, 40030, verr.Message, verr.Field)
	case errors.Is(err, service.ErrActivityNotFound):
		response.NotFound(c, 40430, "activity not found")
	case errors.Is(err, service.ErrSubmissionNotFound):
		response.NotFound(c, 40440, "submission not found")
	case errors.Is(err, service.ErrInitiativeNotFound):
		response.NotFound(c, 40431, "initiative not found")
	case errors.Is(err, service.ErrParticipantNotInSession):
		response.Forbidden(c, 40340, "participant does not belong to this session")
	case errors.Is(err, service.ErrActivityNotAccepting):
		response.Conflict(c, 40940, "activity is not accepting submissions")
	case errors.Is(err, service.ErrSubmissionTextBounds):
		response.BadRequest(c, 40040, "submission text must be between 1 and 4000 characters")
	case errors.Is(err, service.ErrSubmissionCapReached):
		response.Conflict(c, 40941, "submission limit reached for this activity")
	case errors.Is(err, service.ErrStocktakeNoFreeText):
		response.Conflict(c, 40942, "this activity does not take free-text submissions")
	case errors.Is(err, service.ErrResponsesNotTaken):
		response.Conflict(c, 40943, "this activity does not take structured responses")
	case errors.Is(err, service.ErrVoteValueRange):
		response.BadRequest(c, 40041, "vote value must be between 1 and 10")
	case errors.Is(err, service.ErrVotingClosed):
		response.Conflict(c, 40944, "activity is not open for voting")
	case errors.Is(err, service.ErrAlreadyVoted):
		response.Conflict(c, 40945, "already voted on this submission")
	default:
		h.logger.Error("intake handler error", zap.Error(err))
		response.InternalError(c)
	}
}
