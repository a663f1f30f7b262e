package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/dto"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/repository"
)

// ResultsService produces presentation-ready aggregation payloads.
type ResultsService interface {
	GetActivityResults(ctx context.Context, activityID string, view ResultsView) (*dto.ResultsPayload, error)
	GetSessionLeaderboard(ctx context.Context, sessionID string) ([]dto.LeaderboardEntry, error)
}

type resultsService struct {
	repo     *repository.Repository
	dispatch *HookDispatcher
	logger   *zap.Logger
}

// NewResultsService creates a ResultsService.
func NewResultsService(repo *repository.Repository, dispatch *HookDispatcher, logger *zap.Logger) ResultsService {
	return &resultsService{repo: repo, dispatch: dispatch, logger: logger}
}

func (s *resultsService) GetActivityResults(ctx context.Context, activityID string, view ResultsView) (*dto.ResultsPayload, error) {
	act, err := s.repo.Activity.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}

	hooks := s.dispatch.For(act.Type)
	if hooks == nil {
		// Unknown type tag, likely partially-migrated data. Read paths
		// degrade to an empty payload instead of failing the request.
		s.logger.Warn("no hooks for activity type",
			zap.String("activity_id", act.ActivityID),
			zap.String("type", act.Type),
		)
		return dto.EmptyResults(activityRef(act)), nil
	}

	return hooks.AggregateResults(ctx, act, view)
}

// GetSessionLeaderboard sums votes across every activity in the
// session, grouped by the submitting participant's group.
func (s *resultsService) GetSessionLeaderboard(ctx context.Context, sessionID string) ([]dto.LeaderboardEntry, error) {
	if _, err := s.repo.Session.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	submissions, err := s.repo.Submission.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	votes, err := s.repo.Vote.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	participants, err := s.repo.Participant.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	groups, err := s.repo.Group.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return buildGroupLeaderboard(submissions, votes, participants, groups), nil
}
