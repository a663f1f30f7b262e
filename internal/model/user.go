package model

// Plan tiers.
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// Roles.
const (
	RoleFacilitator = "facilitator"
	RoleAdmin       = "admin"
)

// User is a facilitator (or admin) account — table users.
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"  json:"user_id"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"          json:"email"`
	Name         string `gorm:"type:varchar(100);not null"                      json:"name"`
	PasswordHash string `gorm:"type:varchar(255);not null"                      json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'facilitator'" json:"role"`
	Plan         string `gorm:"type:varchar(20);not null;default:'free'"        json:"plan"`
	BaseModel
}

// TableName sets the table name.
func (User) TableName() string { return "users" }
