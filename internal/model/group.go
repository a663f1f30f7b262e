package model

import "time"

// Group is a cohort of participants inside a session — table groups.
type Group struct {
	GroupID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"group_id"`
	SessionID string    `gorm:"type:uuid;not null"                             json:"session_id"`
	Name      string    `gorm:"type:varchar(100);not null"                     json:"name"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName sets the table name.
func (Group) TableName() string { return "groups" }
