package model

// Session statuses.
const (
	SessionStatusDraft     = "draft"
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
	SessionStatusInactive  = "inactive"
)

// Session is a workshop instance — table sessions.
type Session struct {
	SessionID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"session_id"`
	Name          string `gorm:"type:varchar(200);not null"                     json:"name"`
	Status        string `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"`
	JoinCode      string `gorm:"type:char(4);not null;uniqueIndex"              json:"join_code"`
	FacilitatorID string `gorm:"type:uuid;not null"                             json:"facilitator_id"`
	BaseModel

	Facilitator *User `gorm:"foreignKey:FacilitatorID;references:UserID" json:"facilitator,omitempty"`
}

// TableName sets the table name.
func (Session) TableName() string { return "sessions" }
