package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/model"
)

// VoteRepository is the vote data-access interface.
type VoteRepository interface {
	Create(ctx context.Context, vote *model.Vote) error
	ListByActivity(ctx context.Context, activityID string) ([]model.Vote, error)
	ListBySession(ctx context.Context, sessionID string) ([]model.Vote, error)
	Count(ctx context.Context) (int64, error)
}

type voteRepo struct {
	db *gorm.DB
}

// NewVoteRepo creates the gorm-backed VoteRepository.
func NewVoteRepo(db *gorm.DB) VoteRepository {
	return &voteRepo{db: db}
}

func (r *voteRepo) Create(ctx context.Context, vote *model.Vote) error {
	return r.db.WithContext(ctx).Create(vote).Error
}

func (r *voteRepo) ListByActivity(ctx context.Context, activityID string) ([]model.Vote, error) {
	var votes []model.Vote
	err := r.db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Order("created_at ASC").
		Find(&votes).Error
	return votes, err
}

func (r *voteRepo) ListBySession(ctx context.Context, sessionID string) ([]model.Vote, error) {
	var votes []model.Vote
	err := r.db.WithContext(ctx).
		Where("session_id = ? OR activity_id IN (?)",
			sessionID,
			r.db.Model(&model.Activity{}).Select("activity_id").Where("session_id = ?", sessionID),
		).
		Order("created_at ASC").
		Find(&votes).Error
	return votes, err
}

func (r *voteRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Vote{}).Count(&total).Error
	return total, err
}
