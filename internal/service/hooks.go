package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/activity"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/dto"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/model"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/repository"
)

// ── Intake business errors ──

var (
	ErrActivityNotAccepting = errors.New("activity is not accepting submissions")
	ErrSubmissionTextBounds = errors.New("submission text must be between 1 and 4000 characters")
	ErrSubmissionCapReached = errors.New("submission limit reached for this activity")
	ErrStocktakeNoFreeText  = errors.New("stocktake activities take structured responses, not free text")
	ErrResponsesNotTaken    = errors.New("this activity type does not take structured responses")
)

// ResultsView selects the ordering of an aggregation payload.
type ResultsView string

const (
	ViewDefault     ResultsView = ""
	ViewLeaderboard ResultsView = "leaderboard"
)

// SubmissionInput is the intake for a free-text submission.
type SubmissionInput struct {
	Activity      *model.Activity
	ParticipantID *string
	Text          string
}

// ResponseInput is the intake for a structured stocktake response.
type ResponseInput struct {
	Activity      *model.Activity
	Initiative    *model.StocktakeInitiative
	ParticipantID *string
	Status        string
	Comment       string
}

// Hooks are the per-type behaviors: how a type accepts submissions and
// how it aggregates its results. Callers never branch on the type tag
// directly; they go through the dispatcher.
type Hooks interface {
	SaveSubmission(ctx context.Context, in SubmissionInput) (*model.Submission, error)
	AggregateResults(ctx context.Context, act *model.Activity, view ResultsView) (*dto.ResultsPayload, error)
}

// ResponseSaver is implemented by types whose input is structured
// rather than free text (stocktake).
type ResponseSaver interface {
	SaveResponse(ctx context.Context, in ResponseInput) (*model.StocktakeResponse, error)
}

// HookDispatcher resolves a type tag to its hooks. Unknown tags resolve
// to nil; read callers must treat that as "no results available" and
// return an empty payload rather than an error.
type HookDispatcher struct {
	hooks map[activity.Type]Hooks
}

// NewHookDispatcher wires the per-type hook implementations.
func NewHookDispatcher(repo *repository.Repository, logger *zap.Logger) *HookDispatcher {
	voting := &votingHooks{repo: repo, logger: logger}
	return &HookDispatcher{
		hooks: map[activity.Type]Hooks{
			activity.TypeBrainstorm: voting,
			activity.TypeAssignment: voting,
			activity.TypeStocktake:  &stocktakeHooks{repo: repo, logger: logger},
		},
	}
}

// For returns the hooks for a type tag, or nil for unknown tags.
func (d *HookDispatcher) For(tag string) Hooks {
	t, ok := activity.ParseType(tag)
	if !ok {
		return nil
	}
	return d.hooks[t]
}

// activityRef builds the payload header for an activity.
func activityRef(act *model.Activity) dto.ActivityRef {
	return dto.ActivityRef{
		ID:        act.ActivityID,
		SessionID: act.SessionID,
		Type:      act.Type,
		Status:    act.Status,
		Title:     act.Title,
	}
}

// ── Brainstorm / assignment (vote-bearing types) ──

type votingHooks struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func (h *votingHooks) SaveSubmission(ctx context.Context, in SubmissionInput) (*model.Submission, error) {
	if in.Activity.Status != model.ActivityStatusActive {
		return nil, ErrActivityNotAccepting
	}

	text := strings.TrimSpace(in.Text)
	if len(text) < 1 || len(text) > 4000 {
		return nil, ErrSubmissionTextBounds
	}

	cfg := activity.ParseStoredConfig(in.Activity.Type, in.Activity.Config)
	if in.ParticipantID != nil {
		count, err := h.repo.Submission.CountByParticipant(ctx, in.Activity.ActivityID, *in.ParticipantID)
		if err != nil {
			return nil, err
		}
		if count >= int64(cfg.MaxSubmissions) {
			return nil, ErrSubmissionCapReached
		}
	}

	submission := &model.Submission{
		ActivityID:    &in.Activity.ActivityID,
		SessionID:     &in.Activity.SessionID,
		ParticipantID: in.ParticipantID,
		Text:          text,
	}
	if err := h.repo.Submission.Create(ctx, submission); err != nil {
		h.logger.Error("create submission failed", zap.Error(err))
		return nil, err
	}
	return submission, nil
}

func (h *votingHooks) AggregateResults(ctx context.Context, act *model.Activity, view ResultsView) (*dto.ResultsPayload, error) {
	submissions, err := h.repo.Submission.ListByActivity(ctx, act.ActivityID)
	if err != nil {
		return nil, err
	}
	votes, err := h.repo.Vote.ListByActivity(ctx, act.ActivityID)
	if err != nil {
		return nil, err
	}

	payload := dto.EmptyResults(activityRef(act))
	payload.Submissions = buildSubmissionResults(submissions, votes)

	if view == ViewLeaderboard {
		payload.Submissions = orderForLeaderboard(payload.Submissions)

		participants, err := h.repo.Participant.ListBySession(ctx, act.SessionID)
		if err != nil {
			return nil, err
		}
		groups, err := h.repo.Group.ListBySession(ctx, act.SessionID)
		if err != nil {
			return nil, err
		}
		payload.Leaderboard = buildGroupLeaderboard(submissions, votes, participants, groups)
	}

	return payload, nil
}

// ── Stocktake ──

type stocktakeHooks struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func (h *stocktakeHooks) SaveSubmission(ctx context.Context, in SubmissionInput) (*model.Submission, error) {
	return nil, ErrStocktakeNoFreeText
}

func (h *stocktakeHooks) SaveResponse(ctx context.Context, in ResponseInput) (*model.StocktakeResponse, error) {
	if in.Activity.Status != model.ActivityStatusActive {
		return nil, ErrActivityNotAccepting
	}

	response := &model.StocktakeResponse{
		InitiativeID:  in.Initiative.InitiativeID,
		ParticipantID: in.ParticipantID,
		Status:        in.Status,
		Comment:       in.Comment,
	}
	if err := h.repo.Response.Create(ctx, response); err != nil {
		h.logger.Error("create stocktake response failed", zap.Error(err))
		return nil, err
	}
	return response, nil
}

func (h *stocktakeHooks) AggregateResults(ctx context.Context, act *model.Activity, view ResultsView) (*dto.ResultsPayload, error) {
	initiatives, err := h.repo.Initiative.ListByActivity(ctx, act.ActivityID)
	if err != nil {
		return nil, err
	}
	responses, err := h.repo.Response.ListByActivity(ctx, act.ActivityID)
	if err != nil {
		return nil, err
	}

	payload := dto.EmptyResults(activityRef(act))
	payload.Initiatives = buildInitiativeResults(initiatives, responses)
	return payload, nil
}
