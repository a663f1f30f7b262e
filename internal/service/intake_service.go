package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/activity"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/dto"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/model"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/repository"
)

// ── Intake business errors ──

var (
	ErrParticipantNotInSession = errors.New("participant does not belong to this session")
	ErrVoteValueRange          = errors.New("vote value must be between 1 and 10")
	ErrVotingClosed            = errors.New("activity is not open for voting")
	ErrAlreadyVoted            = errors.New("already voted on this submission")
	ErrSubmissionNotFound      = errors.New("submission not found")
)

// IntakeService handles participant input: free-text submissions, votes
// and structured stocktake responses. All type-specific behavior goes
// through the hook dispatcher; this service never branches on the tag.
type IntakeService interface {
	CreateSubmission(ctx context.Context, activityID string, req *dto.CreateSubmissionRequest, participantID, sessionID string) (*dto.SubmissionResponse, error)
	ListSubmissions(ctx context.Context, activityID string) ([]dto.SubmissionResponse, error)
	CastVote(ctx context.Context, submissionID string, req *dto.CastVoteRequest, participantID, sessionID string) error
	CreateResponse(ctx context.Context, initiativeID string, req *dto.CreateResponseRequest, participantID, sessionID string) error
}

type intakeService struct {
	repo     *repository.Repository
	dispatch *HookDispatcher
	logger   *zap.Logger
}

// NewIntakeService creates an IntakeService.
func NewIntakeService(repo *repository.Repository, dispatch *HookDispatcher, logger *zap.Logger) IntakeService {
	return &intakeService{repo: repo, dispatch: dispatch, logger: logger}
}

func (s *intakeService) CreateSubmission(ctx context.Context, activityID string, req *dto.CreateSubmissionRequest, participantID, sessionID string) (*dto.SubmissionResponse, error) {
	act, err := s.repo.Activity.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	if act.SessionID != sessionID {
		return nil, ErrParticipantNotInSession
	}

	hooks := s.dispatch.For(act.Type)
	if hooks == nil {
		// Write paths reject unknown types; accepting rows we cannot
		// aggregate would strand them.
		return nil, &activity.ValidationError{Field: "type", Message: "Unknown activity type"}
	}

	pid := participantID
	submission, err := hooks.SaveSubmission(ctx, SubmissionInput{
		Activity:      act,
		ParticipantID: &pid,
		Text:          req.Text,
	})
	if err != nil {
		return nil, err
	}

	resp := toSubmissionResponse(submission)
	return &resp, nil
}

func (s *intakeService) ListSubmissions(ctx context.Context, activityID string) ([]dto.SubmissionResponse, error) {
	submissions, err := s.repo.Submission.ListByActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		out = append(out, toSubmissionResponse(&submissions[i]))
	}
	return out, nil
}

func (s *intakeService) CastVote(ctx context.Context, submissionID string, req *dto.CastVoteRequest, participantID, sessionID string) error {
	if req.Value < 1 || req.Value > 10 {
		return ErrVoteValueRange
	}

	submission, err := s.repo.Submission.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		return err
	}

	if submission.ActivityID == nil {
		return ErrVotingClosed
	}
	act, err := s.repo.Activity.GetByID(ctx, *submission.ActivityID)
	if err != nil {
		return err
	}
	if act.SessionID != sessionID {
		return ErrParticipantNotInSession
	}
	if act.Status != model.ActivityStatusVoting {
		return ErrVotingClosed
	}

	cfg := activity.ParseStoredConfig(act.Type, act.Config)
	if !cfg.VotingEnabled {
		return ErrVotingClosed
	}

	vote := &model.Vote{
		SubmissionID:  submissionID,
		ParticipantID: participantID,
		ActivityID:    submission.ActivityID,
		SessionID:     &act.SessionID,
		Value:         req.Value,
	}
	if err := s.repo.Vote.Create(ctx, vote); err != nil {
		// One vote per (participant, submission) is a store constraint.
		if isUniqueViolation(err) {
			return ErrAlreadyVoted
		}
		s.logger.Error("create vote failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *intakeService) CreateResponse(ctx context.Context, initiativeID string, req *dto.CreateResponseRequest, participantID, sessionID string) error {
	initiative, err := s.repo.Initiative.GetByID(ctx, initiativeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInitiativeNotFound
		}
		return err
	}

	act, err := s.repo.Activity.GetByID(ctx, initiative.ActivityID)
	if err != nil {
		return err
	}
	if act.SessionID != sessionID {
		return ErrParticipantNotInSession
	}

	hooks := s.dispatch.For(act.Type)
	saver, ok := hooks.(ResponseSaver)
	if !ok {
		return ErrResponsesNotTaken
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		return &activity.ValidationError{Field: "status", Message: "status must not be empty"}
	}

	pid := participantID
	_, err = saver.SaveResponse(ctx, ResponseInput{
		Activity:      act,
		Initiative:    initiative,
		ParticipantID: &pid,
		Status:        status,
		Comment:       req.Comment,
	})
	return err
}

// isUniqueViolation matches the store's duplicate-key failure.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}

// ── Converters ──

func toSubmissionResponse(s *model.Submission) dto.SubmissionResponse {
	return dto.SubmissionResponse{
		ID:            s.SubmissionID,
		ActivityID:    s.ActivityID,
		SessionID:     s.SessionID,
		ParticipantID: s.ParticipantID,
		Text:          s.Text,
		CreatedAt:     s.CreatedAt,
	}
}
