package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/model"
)

// GroupRepository is the group data-access interface.
type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	GetByID(ctx context.Context, id string) (*model.Group, error)
	ListBySession(ctx context.Context, sessionID string) ([]model.Group, error)
}

type groupRepo struct {
	db *gorm.DB
}

// NewGroupRepo creates the gorm-backed GroupRepository.
func NewGroupRepo(db *gorm.DB) GroupRepository {
	return &groupRepo{db: db}
}

func (r *groupRepo) Create(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepo) GetByID(ctx context.Context, id string) (*model.Group, error) {
	var group model.Group
	err := r.db.WithContext(ctx).
		Where("group_id = ?", id).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepo) ListBySession(ctx context.Context, sessionID string) ([]model.Group, error) {
	var groups []model.Group
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&groups).Error
	return groups, err
}
