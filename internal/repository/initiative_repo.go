package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/model"
)

// InitiativeRepository is the stocktake-initiative data-access interface.
type InitiativeRepository interface {
	Create(ctx context.Context, initiative *model.StocktakeInitiative) error
	GetByID(ctx context.Context, id string) (*model.StocktakeInitiative, error)
	ListByActivity(ctx context.Context, activityID string) ([]model.StocktakeInitiative, error)
}

type initiativeRepo struct {
	db *gorm.DB
}

// NewInitiativeRepo creates the gorm-backed InitiativeRepository.
func NewInitiativeRepo(db *gorm.DB) InitiativeRepository {
	return &initiativeRepo{db: db}
}

func (r *initiativeRepo) Create(ctx context.Context, initiative *model.StocktakeInitiative) error {
	return r.db.WithContext(ctx).Create(initiative).Error
}

func (r *initiativeRepo) GetByID(ctx context.Context, id string) (*model.StocktakeInitiative, error) {
	var initiative model.StocktakeInitiative
	err := r.db.WithContext(ctx).
		Where("initiative_id = ?", id).
		First(&initiative).Error
	if err != nil {
		return nil, err
	}
	return &initiative, nil
}

func (r *initiativeRepo) ListByActivity(ctx context.Context, activityID string) ([]model.StocktakeInitiative, error) {
	var initiatives []model.StocktakeInitiative
	err := r.db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Order("position ASC, created_at ASC").
		Find(&initiatives).Error
	return initiatives, err
}
