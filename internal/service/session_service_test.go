package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/reachoutthueme/SessionFoundry-sub001/config"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/dto"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/model"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/repository"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/jwt"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:           "test-secret-test-secret",
			AccessTokenTTL:      15 * time.Minute,
			RefreshTokenTTL:     time.Hour,
			ParticipantTokenTTL: time.Hour,
			CacheTTL:            20 * time.Second,
		},
		Plan: config.PlanConfig{FreeSessionCap: 1},
	}
}

func newTestSessionService(repo *repository.Repository) SessionService {
	cfg := testConfig()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	audit := NewAuditService(repo, zap.NewNop())
	return NewSessionService(cfg, repo, jwtMgr, audit, zap.NewNop())
}

func seedFacilitator(t *testing.T, mocks *testRepos, plan string) *model.User {
	t.Helper()
	user := &model.User{Email: "f@example.com", Name: "Fac", Plan: plan, Role: model.RoleFacilitator}
	if err := mocks.user.Create(context.Background(), user); err != nil {
		t.Fatal(err)
	}
	return user
}

func TestCreateSessionGeneratesJoinCode(t *testing.T) {
	repo, mocks := newTestRepos()
	svc := newTestSessionService(repo)
	user := seedFacilitator(t, mocks, model.PlanFree)

	session, err := svc.Create(context.Background(), &dto.CreateSessionRequest{Name: "Kickoff"}, user.UserID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if session.Status != model.SessionStatusDraft {
		t.Errorf("status = %s, want draft", session.Status)
	}
	if len(session.JoinCode) != joinCodeLength {
		t.Fatalf("join code %q has wrong length", session.JoinCode)
	}
	for _, c := range session.JoinCode {
		if !strings.ContainsRune(joinCodeAlphabet, c) {
			t.Errorf("join code %q contains %q, outside the allowed alphabet", session.JoinCode, c)
		}
	}
}

func TestCreateSessionFreePlanCap(t *testing.T) {
	repo, mocks := newTestRepos()
	svc := newTestSessionService(repo)
	user := seedFacilitator(t, mocks, model.PlanFree)

	if _, err := svc.Create(context.Background(), &dto.CreateSessionRequest{Name: "First"}, user.UserID); err != nil {
		t.Fatalf("first session: %v", err)
	}
	_, err := svc.Create(context.Background(), &dto.CreateSessionRequest{Name: "Second"}, user.UserID)
	if !errors.Is(err, ErrSessionCapReached) {
		t.Errorf("err = %v, want ErrSessionCapReached", err)
	}
}

func TestCreateSessionCapIgnoresInactive(t *testing.T) {
	repo, mocks := newTestRepos()
	svc := newTestSessionService(repo)
	user := seedFacilitator(t, mocks, model.PlanFree)

	first, err := svc.Create(context.Background(), &dto.CreateSessionRequest{Name: "First"}, user.UserID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateStatus(context.Background(), first.ID, &dto.UpdateSessionStatusRequest{Status: model.SessionStatusInactive}, user.UserID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if _, err := svc.Create(context.Background(), &dto.CreateSessionRequest{Name: "Second"}, user.UserID); err != nil {
		t.Errorf("inactive sessions should not count toward the cap: %v", err)
	}
}

func TestCreateSessionProPlanUncapped(t *testing.T) {
	repo, mocks := newTestRepos()
	svc := newTestSessionService(repo)
	user := seedFacilitator(t, mocks, model.PlanPro)

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(context.Background(), &dto.CreateSessionRequest{Name: "S"}, user.UserID); err != nil {
			t.Fatalf("pro session %d: %v", i, err)
		}
	}
}

func TestSessionStatusTransitions(t *testing.T) {
	tests := []struct {
		from   string
		to     string
		wantOK bool
	}{
		{model.SessionStatusDraft, model.SessionStatusActive, true},
		{model.SessionStatusDraft, model.SessionStatusCompleted, false},
		{model.SessionStatusActive, model.SessionStatusCompleted, true},
		{model.SessionStatusActive, model.SessionStatusDraft, false},
		{model.SessionStatusCompleted, model.SessionStatusInactive, true},
		{model.SessionStatusCompleted, model.SessionStatusActive, false},
		{model.SessionStatusInactive, model.SessionStatusActive, false},
		{model.SessionStatusDraft, model.SessionStatusInactive, true},
		{model.SessionStatusActive, model.SessionStatusInactive, true},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			repo, mocks := newTestRepos()
			svc := newTestSessionService(repo)
			user := seedFacilitator(t, mocks, model.PlanPro)

			session := &model.Session{Name: "S", Status: tt.from, JoinCode: "AB23", FacilitatorID: user.UserID}
			mocks.session.Create(context.Background(), session)

			_, err := svc.UpdateStatus(context.Background(), session.SessionID, &dto.UpdateSessionStatusRequest{Status: tt.to}, user.UserID)
			if tt.wantOK && err != nil {
				t.Errorf("transition %s->%s failed: %v", tt.from, tt.to, err)
			}
			if !tt.wantOK && !errors.Is(err, ErrBadSessionTransition) {
				t.Errorf("transition %s->%s: err = %v, want ErrBadSessionTransition", tt.from, tt.to, err)
			}
		})
	}
}

func TestUpdateStatusRejectsNonOwner(t *testing.T) {
	repo, mocks := newTestRepos()
	svc := newTestSessionService(repo)
	user := seedFacilitator(t, mocks, model.PlanPro)

	session := &model.Session{Name: "S", Status: model.SessionStatusDraft, JoinCode: "AB23", FacilitatorID: user.UserID}
	mocks.session.Create(context.Background(), session)

	_, err := svc.UpdateStatus(context.Background(), session.SessionID, &dto.UpdateSessionStatusRequest{Status: model.SessionStatusActive}, "someone-else")
	if !errors.Is(err, ErrNotSessionOwner) {
		t.Errorf("err = %v, want ErrNotSessionOwner", err)
	}
}

func TestJoinRequiresActiveSession(t *testing.T) {
	repo, mocks := newTestRepos()
	svc := newTestSessionService(repo)

	session := &model.Session{Name: "S", Status: model.SessionStatusDraft, JoinCode: "AB23", FacilitatorID: "f1"}
	mocks.session.Create(context.Background(), session)

	_, err := svc.Join(context.Background(), &dto.JoinRequest{Code: "AB23"})
	if !errors.Is(err, ErrSessionNotJoinable) {
		t.Errorf("err = %v, want ErrSessionNotJoinable", err)
	}
}

func TestJoinIssuesParticipantToken(t *testing.T) {
	repo, mocks := newTestRepos()
	cfg := testConfig()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	audit := NewAuditService(repo, zap.NewNop())
	svc := NewSessionService(cfg, repo, jwtMgr, audit, zap.NewNop())

	session := &model.Session{Name: "S", Status: model.SessionStatusActive, JoinCode: "AB23", FacilitatorID: "f1"}
	mocks.session.Create(context.Background(), session)

	// Lower-case code entry still matches.
	joined, err := svc.Join(context.Background(), &dto.JoinRequest{Code: "ab23", DisplayName: "Ada"})
	if err != nil {
		t.Fatalf("Join: %v", err)
	}

	claims, err := jwtMgr.ParseToken(joined.ParticipantToken)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.TokenType != jwt.TokenTypeParticipant {
		t.Errorf("token type = %s, want participant", claims.TokenType)
	}
	if claims.SessionID != session.SessionID {
		t.Errorf("token session = %s, want %s", claims.SessionID, session.SessionID)
	}
	if joined.Participant.DisplayName == nil || *joined.Participant.DisplayName != "Ada" {
		t.Errorf("display name not kept: %+v", joined.Participant)
	}
}

func TestJoinRejectsForeignGroup(t *testing.T) {
	repo, mocks := newTestRepos()
	svc := newTestSessionService(repo)

	session := &model.Session{Name: "S", Status: model.SessionStatusActive, JoinCode: "AB23", FacilitatorID: "f1"}
	mocks.session.Create(context.Background(), session)
	other := &model.Group{GroupID: "g-other", SessionID: "another-session", Name: "Other"}
	mocks.group.Create(context.Background(), other)

	_, err := svc.Join(context.Background(), &dto.JoinRequest{Code: "AB23", GroupID: "g-other"})
	if !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("err = %v, want ErrGroupNotFound", err)
	}
}

func TestNormalizeJoinCode(t *testing.T) {
	if got := normalizeJoinCode("ab2x"); got != "AB2X" {
		t.Errorf("normalizeJoinCode = %q, want AB2X", got)
	}
	if got := normalizeJoinCode("AB2X"); got != "AB2X" {
		t.Errorf("already-upper code changed: %q", got)
	}
}
