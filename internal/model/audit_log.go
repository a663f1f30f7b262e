package model

import "time"

// AuditLogEntry is an append-only record of administrative actions —
// table audit_log. Before/After hold entity snapshots; write-only from
// the application's point of view except for the admin listing.
type AuditLogEntry struct {
	ID         int64     `gorm:"primaryKey"                         json:"id"`
	ActorID    string    `gorm:"type:varchar(36);not null;index"    json:"actor_id"`
	Action     string    `gorm:"type:varchar(64);not null"          json:"action"`
	EntityType string    `gorm:"type:varchar(40);not null"          json:"entity_type"`
	EntityID   string    `gorm:"type:varchar(36);not null"          json:"entity_id"`
	Before     JSONB     `gorm:"type:jsonb"                         json:"before,omitempty"`
	After      JSONB     `gorm:"type:jsonb"                         json:"after,omitempty"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the table name.
func (AuditLogEntry) TableName() string { return "audit_log" }
