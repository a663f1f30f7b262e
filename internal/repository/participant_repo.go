package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/model"
)

// ParticipantRepository is the participant data-access interface.
type ParticipantRepository interface {
	Create(ctx context.Context, participant *model.Participant) error
	GetByID(ctx context.Context, id string) (*model.Participant, error)
	ListBySession(ctx context.Context, sessionID string) ([]model.Participant, error)
	Count(ctx context.Context) (int64, error)
}

type participantRepo struct {
	db *gorm.DB
}

// NewParticipantRepo creates the gorm-backed ParticipantRepository.
func NewParticipantRepo(db *gorm.DB) ParticipantRepository {
	return &participantRepo{db: db}
}

func (r *participantRepo) Create(ctx context.Context, participant *model.Participant) error {
	return r.db.WithContext(ctx).Create(participant).Error
}

func (r *participantRepo) GetByID(ctx context.Context, id string) (*model.Participant, error) {
	var participant model.Participant
	err := r.db.WithContext(ctx).
		Preload("Group").
		Where("participant_id = ?", id).
		First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *participantRepo) ListBySession(ctx context.Context, sessionID string) ([]model.Participant, error) {
	var participants []model.Participant
	err := r.db.WithContext(ctx).
		Preload("Group").
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&participants).Error
	return participants, err
}

func (r *participantRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Participant{}).Count(&total).Error
	return total, err
}
