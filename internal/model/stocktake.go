package model

import "time"

// StocktakeInitiative is a fixed item participants respond to in a
// stocktake activity — table stocktake_initiatives.
type StocktakeInitiative struct {
	InitiativeID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"initiative_id"`
	ActivityID   string    `gorm:"type:uuid;not null"                             json:"activity_id"`
	Title        string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Position     int       `gorm:"not null;default:0"                             json:"position"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName sets the table name.
func (StocktakeInitiative) TableName() string { return "stocktake_initiatives" }

// StocktakeResponse is a structured participant response to an
// initiative — table stocktake_responses.
type StocktakeResponse struct {
	ResponseID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"response_id"`
	InitiativeID  string    `gorm:"type:uuid;not null"                             json:"initiative_id"`
	ParticipantID *string   `gorm:"type:uuid"                                      json:"participant_id,omitempty"`
	Status        string    `gorm:"type:varchar(20);not null"                      json:"status"`
	Comment       string    `gorm:"type:varchar(2000);not null;default:''"         json:"comment"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName sets the table name.
func (StocktakeResponse) TableName() string { return "stocktake_responses" }
