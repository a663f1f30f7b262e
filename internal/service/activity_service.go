package service

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/activity"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/dto"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/model"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/repository"
)

// ── Activity business errors ──

var (
	ErrActivityNotFound      = errors.New("activity not found")
	ErrBadActivityTransition = errors.New("invalid activity status transition")
	ErrVotingNotConfigured   = errors.New("voting is not enabled for this activity")
	ErrNotStocktake          = errors.New("activity is not a stocktake")
	ErrInitiativeNotFound    = errors.New("initiative not found")
)

// ActivityService owns the activity lifecycle: creation with config
// validation, status transitions, config updates, and initiatives.
type ActivityService interface {
	Create(ctx context.Context, sessionID string, req *dto.CreateActivityRequest, callerID string) (*dto.ActivityResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ActivityResponse, error)
	ListBySession(ctx context.Context, sessionID string) ([]dto.ActivityResponse, error)
	UpdateConfig(ctx context.Context, id string, req *dto.UpdateActivityConfigRequest, callerID string) (*dto.ActivityResponse, error)
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateActivityStatusRequest, callerID string) (*dto.ActivityResponse, error)
	CreateInitiative(ctx context.Context, activityID string, req *dto.CreateInitiativeRequest, callerID string) (*dto.InitiativeResponse, error)
	ListInitiatives(ctx context.Context, activityID string) ([]dto.InitiativeResponse, error)
}

type activityService struct {
	repo   *repository.Repository
	audit  AuditService
	logger *zap.Logger
}

// NewActivityService creates an ActivityService.
func NewActivityService(repo *repository.Repository, audit AuditService, logger *zap.Logger) ActivityService {
	return &activityService{repo: repo, audit: audit, logger: logger}
}

func (s *activityService) Create(ctx context.Context, sessionID string, req *dto.CreateActivityRequest, callerID string) (*dto.ActivityResponse, error) {
	session, err := s.repo.Session.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.FacilitatorID != callerID {
		return nil, ErrNotSessionOwner
	}

	cfg, verr := activity.ValidateConfig(req.Type, req.Config)
	if verr != nil {
		return nil, verr
	}

	normalized, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}

	act := &model.Activity{
		SessionID: sessionID,
		Title:     req.Title,
		Type:      req.Type,
		Status:    model.ActivityStatusDraft,
		Config:    model.JSONB(normalized),
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
	}
	if err := s.repo.Activity.Create(ctx, act); err != nil {
		s.logger.Error("create activity failed", zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, callerID, "activity.create", "activity", act.ActivityID, nil, act)

	resp := toActivityResponse(act)
	return &resp, nil
}

func (s *activityService) GetByID(ctx context.Context, id string) (*dto.ActivityResponse, error) {
	act, err := s.repo.Activity.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}

	resp := toActivityResponse(act)
	return &resp, nil
}

func (s *activityService) ListBySession(ctx context.Context, sessionID string) ([]dto.ActivityResponse, error) {
	activities, err := s.repo.Activity.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ActivityResponse, 0, len(activities))
	for i := range activities {
		out = append(out, toActivityResponse(&activities[i]))
	}
	return out, nil
}

func (s *activityService) UpdateConfig(ctx context.Context, id string, req *dto.UpdateActivityConfigRequest, callerID string) (*dto.ActivityResponse, error) {
	act, _, err := s.getOwnedActivity(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	// The type is immutable; the new document is validated against the
	// activity's existing type.
	cfg, verr := activity.ValidateConfig(act.Type, req.Config)
	if verr != nil {
		return nil, verr
	}

	normalized, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}

	before := *act
	act.Config = model.JSONB(normalized)
	if err := s.repo.Activity.Update(ctx, act); err != nil {
		s.logger.Error("update activity config failed", zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, callerID, "activity.config", "activity", act.ActivityID, &before, act)

	resp := toActivityResponse(act)
	return &resp, nil
}

// activityTransitions enumerates the allowed status moves.
var activityTransitions = map[string][]string{
	model.ActivityStatusDraft:  {model.ActivityStatusActive},
	model.ActivityStatusActive: {model.ActivityStatusVoting, model.ActivityStatusClosed},
	model.ActivityStatusVoting: {model.ActivityStatusClosed},
	model.ActivityStatusClosed: {},
}

func (s *activityService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateActivityStatusRequest, callerID string) (*dto.ActivityResponse, error) {
	act, _, err := s.getOwnedActivity(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range activityTransitions[act.Status] {
		if next == req.Status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrBadActivityTransition
	}

	// Voting status needs the configured flag, not the registry's
	// display capability; the two can diverge.
	if req.Status == model.ActivityStatusVoting {
		cfg := activity.ParseStoredConfig(act.Type, act.Config)
		if !cfg.VotingEnabled {
			return nil, ErrVotingNotConfigured
		}
	}

	before := *act
	act.Status = req.Status
	if err := s.repo.Activity.Update(ctx, act); err != nil {
		s.logger.Error("update activity status failed", zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, callerID, "activity.status", "activity", act.ActivityID, &before, act)

	resp := toActivityResponse(act)
	return &resp, nil
}

func (s *activityService) CreateInitiative(ctx context.Context, activityID string, req *dto.CreateInitiativeRequest, callerID string) (*dto.InitiativeResponse, error) {
	act, _, err := s.getOwnedActivity(ctx, activityID, callerID)
	if err != nil {
		return nil, err
	}
	if !activity.CapabilitiesFor(act.Type).UsesInitiatives {
		return nil, ErrNotStocktake
	}

	initiative := &model.StocktakeInitiative{
		ActivityID: activityID,
		Title:      req.Title,
		Position:   req.Position,
	}
	if err := s.repo.Initiative.Create(ctx, initiative); err != nil {
		return nil, err
	}

	return &dto.InitiativeResponse{
		ID:         initiative.InitiativeID,
		ActivityID: initiative.ActivityID,
		Title:      initiative.Title,
		Position:   initiative.Position,
	}, nil
}

func (s *activityService) ListInitiatives(ctx context.Context, activityID string) ([]dto.InitiativeResponse, error) {
	initiatives, err := s.repo.Initiative.ListByActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.InitiativeResponse, 0, len(initiatives))
	for _, ini := range initiatives {
		out = append(out, dto.InitiativeResponse{
			ID:         ini.InitiativeID,
			ActivityID: ini.ActivityID,
			Title:      ini.Title,
			Position:   ini.Position,
		})
	}
	return out, nil
}

// getOwnedActivity loads an activity and checks the caller owns its
// session.
func (s *activityService) getOwnedActivity(ctx context.Context, id, callerID string) (*model.Activity, *model.Session, error) {
	act, err := s.repo.Activity.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrActivityNotFound
		}
		return nil, nil, err
	}

	session, err := s.repo.Session.GetByID(ctx, act.SessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.FacilitatorID != callerID {
		return nil, nil, ErrNotSessionOwner
	}

	return act, session, nil
}

// ── Converters ──

func toActivityResponse(act *model.Activity) dto.ActivityResponse {
	return dto.ActivityResponse{
		ID:          act.ActivityID,
		SessionID:   act.SessionID,
		Title:       act.Title,
		Type:        act.Type,
		DisplayName: activity.DisplayName(act.Type),
		Status:      act.Status,
		Config:      json.RawMessage(act.Config),
		StartsAt:    act.StartsAt,
		EndsAt:      act.EndsAt,
		CreatedAt:   act.CreatedAt,
	}
}
