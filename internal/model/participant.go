package model

import "time"

// Participant is a session attendee who joined via code — table participants.
type Participant struct {
	ParticipantID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"participant_id"`
	SessionID     string    `gorm:"type:uuid;not null"                             json:"session_id"`
	DisplayName   *string   `gorm:"type:varchar(100)"                              json:"display_name,omitempty"`
	GroupID       *string   `gorm:"type:uuid"                                      json:"group_id,omitempty"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	Group *Group `gorm:"foreignKey:GroupID;references:GroupID" json:"group,omitempty"`
}

// TableName sets the table name.
func (Participant) TableName() string { return "participants" }
