package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/activity"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/dto"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/model"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/repository"
)

func newTestActivityService(repo *repository.Repository) ActivityService {
	audit := NewAuditService(repo, zap.NewNop())
	return NewActivityService(repo, audit, zap.NewNop())
}

func seedSession(t *testing.T, mocks *testRepos, facilitatorID string) *model.Session {
	t.Helper()
	session := &model.Session{Name: "Workshop", Status: model.SessionStatusActive, JoinCode: "AB23", FacilitatorID: facilitatorID}
	if err := mocks.session.Create(context.Background(), session); err != nil {
		t.Fatal(err)
	}
	return session
}

func TestCreateActivityNormalizesConfig(t *testing.T) {
	repo, mocks := newTestRepos()
	svc := newTestActivityService(repo)
	session := seedSession(t, mocks, "f1")

	act, err := svc.Create(context.Background(), session.SessionID, &dto.CreateActivityRequest{
		Title:  "Ideas",
		Type:   "brainstorm",
		Config: json.RawMessage(`{"max_submissions": 3}`),
	}, "f1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	var cfg map[string]interface{}
	if err := json.Unmarshal(act.Config, &cfg); err != nil {
		t.Fatalf("stored config is not JSON: %v", err)
	}
	// Omitted fields land at their defaults in the stored document.
	if cfg["max_submissions"] != float64(3) {
		t.Errorf("max_submissions = %v, want 3", cfg["max_submissions"])
	}
	if cfg["voting_enabled"] != true {
		t.Errorf("voting_enabled = %v, want default true", cfg["voting_enabled"])
	}
	if cfg["points_budget"] != float64(100) {
		t.Errorf("points_budget = %v, want default 100", cfg["points_budget"])
	}
	if act.DisplayName != "Brainstorm" {
		t.Errorf("display name = %q, want Brainstorm", act.DisplayName)
	}
	if act.Status != model.ActivityStatusDraft {
		t.Errorf("status = %s, want draft", act.Status)
	}
}

func TestCreateActivityRejectsBadConfig(t *testing.T) {
	repo, mocks := newTestRepos()
	svc := newTestActivityService(repo)
	session := seedSession(t, mocks, "f1")

	_, err := svc.Create(context.Background(), session.SessionID, &dto.CreateActivityRequest{
		Type:   "brainstorm",
		Config: json.RawMessage(`{"max_submissions": 99}`),
	}, "f1")

	var verr *activity.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *activity.ValidationError", err)
	}
	if verr.Field != "max_submissions" {
		t.Errorf("field = %s, want max_submissions", verr.Field)
	}
}

func TestCreateActivityUnknownType(t *testing.T) {
	repo, mocks := newTestRepos()
	svc := newTestActivityService(repo)
	session := seedSession(t, mocks, "f1")

	_, err := svc.Create(context.Background(), session.SessionID, &dto.CreateActivityRequest{Type: "quiz"}, "f1")

	var verr *activity.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *activity.ValidationError", err)
	}
	if verr.Message != "Unknown activity type" {
		t.Errorf("message = %q", verr.Message)
	}
}

func TestUpdateConfigValidatesAgainstExistingType(t *testing.T) {
	repo, mocks := newTestRepos()
	svc := newTestActivityService(repo)
	session := seedSession(t, mocks, "f1")

	act, err := svc.Create(context.Background(), session.SessionID, &dto.CreateActivityRequest{
		Type: "stocktake",
	}, "f1")
	if err != nil {
		t.Fatal(err)
	}

	// time_limit_sec below the floor must be rejected, not clamped.
	_, err = svc.UpdateConfig(context.Background(), act.ID, &dto.UpdateActivityConfigRequest{
		Config: json.RawMessage(`{"time_limit_sec": 10}`),
	}, "f1")
	var verr *activity.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *activity.ValidationError", err)
	}

	updated, err := svc.UpdateConfig(context.Background(), act.ID, &dto.UpdateActivityConfigRequest{
		Config: json.RawMessage(`{"time_limit_sec": 120}`),
	}, "f1")
	if err != nil {
		t.Fatalf("valid update failed: %v", err)
	}
	var cfg map[string]interface{}
	json.Unmarshal(updated.Config, &cfg)
	if cfg["time_limit_sec"] != float64(120) {
		t.Errorf("time_limit_sec = %v, want 120", cfg["time_limit_sec"])
	}
	// Stocktake config only carries its own fields.
	if _, ok := cfg["voting_enabled"]; ok {
		t.Error("stocktake config should not carry voting_enabled")
	}
}

func TestActivityStatusTransitions(t *testing.T) {
	tests := []struct {
		from   string
		to     string
		wantOK bool
	}{
		{model.ActivityStatusDraft, model.ActivityStatusActive, true},
		{model.ActivityStatusDraft, model.ActivityStatusVoting, false},
		{model.ActivityStatusActive, model.ActivityStatusVoting, true},
		{model.ActivityStatusActive, model.ActivityStatusClosed, true},
		{model.ActivityStatusVoting, model.ActivityStatusClosed, true},
		{model.ActivityStatusVoting, model.ActivityStatusActive, false},
		{model.ActivityStatusClosed, model.ActivityStatusActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			repo, mocks := newTestRepos()
			svc := newTestActivityService(repo)
			session := seedSession(t, mocks, "f1")

			act := &model.Activity{
				SessionID: session.SessionID,
				Type:      "brainstorm",
				Status:    tt.from,
				Config:    model.JSONB(`{"voting_enabled": true, "max_submissions": 5, "points_budget": 100}`),
			}
			mocks.activity.Create(context.Background(), act)

			_, err := svc.UpdateStatus(context.Background(), act.ActivityID, &dto.UpdateActivityStatusRequest{Status: tt.to}, "f1")
			if tt.wantOK && err != nil {
				t.Errorf("transition %s->%s failed: %v", tt.from, tt.to, err)
			}
			if !tt.wantOK && !errors.Is(err, ErrBadActivityTransition) {
				t.Errorf("transition %s->%s: err = %v, want ErrBadActivityTransition", tt.from, tt.to, err)
			}
		})
	}
}

func TestVotingStatusNeedsConfiguredFlag(t *testing.T) {
	repo, mocks := newTestRepos()
	svc := newTestActivityService(repo)
	session := seedSession(t, mocks, "f1")

	act := &model.Activity{
		SessionID: session.SessionID,
		Type:      "assignment",
		Status:    model.ActivityStatusActive,
		Config:    model.JSONB(`{"voting_enabled": false, "prompts": ["a"]}`),
	}
	mocks.activity.Create(context.Background(), act)

	_, err := svc.UpdateStatus(context.Background(), act.ActivityID, &dto.UpdateActivityStatusRequest{Status: model.ActivityStatusVoting}, "f1")
	if !errors.Is(err, ErrVotingNotConfigured) {
		t.Errorf("err = %v, want ErrVotingNotConfigured", err)
	}

	// Flip the flag and the move is allowed even though the type's
	// registry capability says assignments don't vote by default.
	act.Config = model.JSONB(`{"voting_enabled": true, "prompts": ["a"]}`)
	mocks.activity.Update(context.Background(), act)
	if _, err := svc.UpdateStatus(context.Background(), act.ActivityID, &dto.UpdateActivityStatusRequest{Status: model.ActivityStatusVoting}, "f1"); err != nil {
		t.Errorf("voting with flag enabled failed: %v", err)
	}
}

func TestInitiativesOnlyForStocktake(t *testing.T) {
	repo, mocks := newTestRepos()
	svc := newTestActivityService(repo)
	session := seedSession(t, mocks, "f1")

	brainstorm := &model.Activity{SessionID: session.SessionID, Type: "brainstorm", Status: model.ActivityStatusDraft}
	mocks.activity.Create(context.Background(), brainstorm)

	_, err := svc.CreateInitiative(context.Background(), brainstorm.ActivityID, &dto.CreateInitiativeRequest{Title: "X"}, "f1")
	if !errors.Is(err, ErrNotStocktake) {
		t.Errorf("err = %v, want ErrNotStocktake", err)
	}

	stocktake := &model.Activity{SessionID: session.SessionID, Type: "stocktake", Status: model.ActivityStatusDraft}
	mocks.activity.Create(context.Background(), stocktake)

	ini, err := svc.CreateInitiative(context.Background(), stocktake.ActivityID, &dto.CreateInitiativeRequest{Title: "Migration", Position: 1}, "f1")
	if err != nil {
		t.Fatalf("CreateInitiative: %v", err)
	}
	if ini.Title != "Migration" || ini.Position != 1 {
		t.Errorf("initiative = %+v", ini)
	}
}
