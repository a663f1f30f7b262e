package dto

import "time"

// ── Requests ──

// CreateSessionRequest creates a workshop session.
type CreateSessionRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

// UpdateSessionStatusRequest moves a session through its lifecycle.
type UpdateSessionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// JoinRequest lets a participant enter a session by code.
type JoinRequest struct {
	Code        string `json:"code" binding:"required,len=4"`
	DisplayName string `json:"display_name" binding:"max=100"`
	GroupID     string `json:"group_id"`
}

// CreateGroupRequest adds a group to a session.
type CreateGroupRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// ── Responses ──

// SessionResponse is the public view of a session.
type SessionResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Status        string    `json:"status"`
	JoinCode      string    `json:"join_code"`
	FacilitatorID string    `json:"facilitator_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// JoinResponse is returned to a participant who joined a session.
type JoinResponse struct {
	ParticipantToken string              `json:"participant_token"`
	Participant      ParticipantResponse `json:"participant"`
	Session          SessionResponse     `json:"session"`
}

// ParticipantResponse is the public view of a participant.
type ParticipantResponse struct {
	ID          string  `json:"id"`
	SessionID   string  `json:"session_id"`
	DisplayName *string `json:"display_name,omitempty"`
	GroupID     *string `json:"group_id,omitempty"`
}

// GroupResponse is the public view of a group.
type GroupResponse struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
}
