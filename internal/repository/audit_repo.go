package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/model"
)

// AuditRepository is the append-only audit-log interface. Entries are
// never updated or deleted.
type AuditRepository interface {
	Append(ctx context.Context, entry *model.AuditLogEntry) error
	List(ctx context.Context, offset, limit int) ([]model.AuditLogEntry, int64, error)
}

type auditRepo struct {
	db *gorm.DB
}

// NewAuditRepo creates the gorm-backed AuditRepository.
func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db: db}
}

func (r *auditRepo) Append(ctx context.Context, entry *model.AuditLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepo) List(ctx context.Context, offset, limit int) ([]model.AuditLogEntry, int64, error) {
	var entries []model.AuditLogEntry
	var total int64

	db := r.db.WithContext(ctx).Model(&model.AuditLogEntry{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
