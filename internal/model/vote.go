package model

import "time"

// Vote is a 1-10 rating of a submission — table votes. Uniqueness per
// (participant, submission) is enforced by the store.
type Vote struct {
	VoteID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"vote_id"`
	SubmissionID  string    `gorm:"type:uuid;not null"                             json:"submission_id"`
	ParticipantID string    `gorm:"type:uuid;not null"                             json:"participant_id"`
	ActivityID    *string   `gorm:"type:uuid"                                      json:"activity_id,omitempty"`
	SessionID     *string   `gorm:"type:uuid"                                      json:"session_id,omitempty"`
	Value         int       `gorm:"not null"                                       json:"value"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName sets the table name.
func (Vote) TableName() string { return "votes" }
