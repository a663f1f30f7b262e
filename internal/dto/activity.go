package dto

import (
	"encoding/json"
	"time"
)

// ── Requests ──

// CreateActivityRequest adds an activity to a session. Config is the
// raw per-type document; it is validated against the type's schema.
type CreateActivityRequest struct {
	Title    string          `json:"title" binding:"max=200"`
	Type     string          `json:"type" binding:"required"`
	Config   json.RawMessage `json:"config"`
	StartsAt *time.Time      `json:"starts_at"`
	EndsAt   *time.Time      `json:"ends_at"`
}

// UpdateActivityConfigRequest replaces an activity's config. The type
// itself is immutable.
type UpdateActivityConfigRequest struct {
	Config json.RawMessage `json:"config" binding:"required"`
}

// UpdateActivityStatusRequest moves an activity through its lifecycle.
type UpdateActivityStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateInitiativeRequest adds a stocktake initiative.
type CreateInitiativeRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	Position int    `json:"position"`
}

// CreateSubmissionRequest submits free text to an activity.
type CreateSubmissionRequest struct {
	Text string `json:"text" binding:"required"`
}

// CastVoteRequest rates a submission.
type CastVoteRequest struct {
	Value int `json:"value" binding:"required"`
}

// CreateResponseRequest is a structured stocktake response.
type CreateResponseRequest struct {
	Status  string `json:"status" binding:"required,max=20"`
	Comment string `json:"comment" binding:"max=2000"`
}

// ── Responses ──

// ActivityResponse is the public view of an activity.
type ActivityResponse struct {
	ID          string          `json:"id"`
	SessionID   string          `json:"session_id"`
	Title       string          `json:"title"`
	Type        string          `json:"type"`
	DisplayName string          `json:"display_name"`
	Status      string          `json:"status"`
	Config      json.RawMessage `json:"config"`
	StartsAt    *time.Time      `json:"starts_at,omitempty"`
	EndsAt      *time.Time      `json:"ends_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SubmissionResponse is the public view of a submission.
type SubmissionResponse struct {
	ID            string    `json:"id"`
	ActivityID    *string   `json:"activity_id,omitempty"`
	SessionID     *string   `json:"session_id,omitempty"`
	ParticipantID *string   `json:"participant_id,omitempty"`
	Text          string    `json:"text"`
	CreatedAt     time.Time `json:"created_at"`
}

// InitiativeResponse is the public view of a stocktake initiative.
type InitiativeResponse struct {
	ID         string `json:"id"`
	ActivityID string `json:"activity_id"`
	Title      string `json:"title"`
	Position   int    `json:"position"`
}
