package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/api/middleware"
)

// currentUserID returns the facilitator id set by the auth middleware.
func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserID)
}

// currentParticipant returns the participant and session ids from a
// participant token.
func currentParticipant(c *gin.Context) (participantID, sessionID string) {
	return c.GetString(middleware.CtxParticipantID), c.GetString(middleware.CtxSessionID)
}

// currentToken returns the raw bearer token.
func currentToken(c *gin.Context) string {
	return c.GetString(middleware.CtxToken)
}
