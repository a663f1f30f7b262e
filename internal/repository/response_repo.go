package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/model"
)

// ResponseRepository is the stocktake-response data-access interface.
type ResponseRepository interface {
	Create(ctx context.Context, response *model.StocktakeResponse) error
	ListByActivity(ctx context.Context, activityID string) ([]model.StocktakeResponse, error)
}

type responseRepo struct {
	db *gorm.DB
}

// NewResponseRepo creates the gorm-backed ResponseRepository.
func NewResponseRepo(db *gorm.DB) ResponseRepository {
	return &responseRepo{db: db}
}

func (r *responseRepo) Create(ctx context.Context, response *model.StocktakeResponse) error {
	return r.db.WithContext(ctx).Create(response).Error
}

func (r *responseRepo) ListByActivity(ctx context.Context, activityID string) ([]model.StocktakeResponse, error) {
	var responses []model.StocktakeResponse
	err := r.db.WithContext(ctx).
		Where("initiative_id IN (?)",
			r.db.Model(&model.StocktakeInitiative{}).Select("initiative_id").Where("activity_id = ?", activityID),
		).
		Order("created_at ASC").
		Find(&responses).Error
	return responses, err
}
