package model

import "time"

// Activity statuses.
const (
	ActivityStatusDraft  = "draft"
	ActivityStatusActive = "active"
	ActivityStatusVoting = "voting"
	ActivityStatusClosed = "closed"
)

// Activity is one facilitation exercise within a session — table activities.
// Type is immutable after creation; Config holds the validated,
// fully-defaulted per-type configuration.
type Activity struct {
	ActivityID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"activity_id"`
	SessionID  string     `gorm:"type:uuid;not null"                             json:"session_id"`
	Title      string     `gorm:"type:varchar(200);not null;default:''"          json:"title"`
	Type       string     `gorm:"type:varchar(20);not null"                      json:"type"`
	Status     string     `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"`
	Config     JSONB      `gorm:"type:jsonb;not null;default:'{}'"               json:"config"`
	StartsAt   *time.Time `json:"starts_at,omitempty"`
	EndsAt     *time.Time `json:"ends_at,omitempty"`
	BaseModel

	Session *Session `gorm:"foreignKey:SessionID;references:SessionID" json:"session,omitempty"`
}

// TableName sets the table name.
func (Activity) TableName() string { return "activities" }
