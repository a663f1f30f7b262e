package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/model"
)

// SessionRepository is the session data-access interface.
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id string) (*model.Session, error)
	GetByJoinCode(ctx context.Context, code string) (*model.Session, error)
	ListByFacilitator(ctx context.Context, facilitatorID string) ([]model.Session, error)
	CountByFacilitator(ctx context.Context, facilitatorID string) (int64, error)
	Update(ctx context.Context, session *model.Session) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo creates the gorm-backed SessionRepository.
func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Where("session_id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) GetByJoinCode(ctx context.Context, code string) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Where("join_code = ?", code).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) ListByFacilitator(ctx context.Context, facilitatorID string) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Where("facilitator_id = ?", facilitatorID).
		Order("created_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) CountByFacilitator(ctx context.Context, facilitatorID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("facilitator_id = ?", facilitatorID).
		Where("status <> ?", model.SessionStatusInactive).
		Count(&total).Error
	return total, err
}

func (r *sessionRepo) Update(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *sessionRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Session{}).Count(&total).Error
	return total, err
}

func (r *sessionRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Select("status, count(*) as total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Total
	}
	return counts, nil
}
