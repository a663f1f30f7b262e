package model

import "time"

// Submission is a free-text idea — table submissions. At least one of
// ActivityID or SessionID is set (session-scoped intake has no activity).
type Submission struct {
	SubmissionID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"submission_id"`
	ActivityID    *string   `gorm:"type:uuid"                                      json:"activity_id,omitempty"`
	SessionID     *string   `gorm:"type:uuid"                                      json:"session_id,omitempty"`
	ParticipantID *string   `gorm:"type:uuid"                                      json:"participant_id,omitempty"`
	Text          string    `gorm:"type:varchar(4000);not null"                    json:"text"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName sets the table name.
func (Submission) TableName() string { return "submissions" }
