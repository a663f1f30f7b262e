package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/model"
)

// ActivityRepository is the activity data-access interface.
type ActivityRepository interface {
	Create(ctx context.Context, activity *model.Activity) error
	GetByID(ctx context.Context, id string) (*model.Activity, error)
	ListBySession(ctx context.Context, sessionID string) ([]model.Activity, error)
	Update(ctx context.Context, activity *model.Activity) error
	Count(ctx context.Context) (int64, error)
}

type activityRepo struct {
	db *gorm.DB
}

// NewActivityRepo creates the gorm-backed ActivityRepository.
func NewActivityRepo(db *gorm.DB) ActivityRepository {
	return &activityRepo{db: db}
}

func (r *activityRepo) Create(ctx context.Context, activity *model.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepo) GetByID(ctx context.Context, id string) (*model.Activity, error) {
	var activity model.Activity
	err := r.db.WithContext(ctx).
		Where("activity_id = ?", id).
		First(&activity).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepo) ListBySession(ctx context.Context, sessionID string) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&activities).Error
	return activities, err
}

func (r *activityRepo) Update(ctx context.Context, activity *model.Activity) error {
	return r.db.WithContext(ctx).Save(activity).Error
}

func (r *activityRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Activity{}).Count(&total).Error
	return total, err
}
