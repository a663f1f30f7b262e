package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// ── PostgreSQL JSONB custom type ──

// JSONB stores raw JSON in a PostgreSQL JSONB column and serializes it
// verbatim in API responses.
type JSONB []byte

// Scan reads the JSONB column value.
func (j *JSONB) Scan(src interface{}) error {
	if src == nil {
		*j = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
	case string:
		*j = JSONB(v)
	default:
		return fmt.Errorf("JSONB.Scan: unsupported type %T", src)
	}
	return nil
}

// Value writes the JSONB column value.
func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return []byte(j), nil
}

// MarshalJSON emits the stored document as-is.
func (j JSONB) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON stores the incoming document as-is.
func (j *JSONB) UnmarshalJSON(data []byte) error {
	if j == nil {
		return errors.New("JSONB.UnmarshalJSON: nil receiver")
	}
	*j = append((*j)[0:0], data...)
	return nil
}

// BaseModel holds the audit timestamps shared by mutable entities.
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
