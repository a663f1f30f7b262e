package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/model"
)

// SubmissionRepository is the submission data-access interface.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *model.Submission) error
	GetByID(ctx context.Context, id string) (*model.Submission, error)
	ListByActivity(ctx context.Context, activityID string) ([]model.Submission, error)
	ListBySession(ctx context.Context, sessionID string) ([]model.Submission, error)
	CountByParticipant(ctx context.Context, activityID, participantID string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type submissionRepo struct {
	db *gorm.DB
}

// NewSubmissionRepo creates the gorm-backed SubmissionRepository.
func NewSubmissionRepo(db *gorm.DB) SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) Create(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	var submission model.Submission
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", id).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepo) ListByActivity(ctx context.Context, activityID string) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Order("created_at ASC").
		Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepo) ListBySession(ctx context.Context, sessionID string) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.db.WithContext(ctx).
		Where("session_id = ? OR activity_id IN (?)",
			sessionID,
			r.db.Model(&model.Activity{}).Select("activity_id").Where("session_id = ?", sessionID),
		).
		Order("created_at ASC").
		Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepo) CountByParticipant(ctx context.Context, activityID, participantID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Submission{}).
		Where("activity_id = ? AND participant_id = ?", activityID, participantID).
		Count(&total).Error
	return total, err
}

func (r *submissionRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Submission{}).Count(&total).Error
	return total, err
}
