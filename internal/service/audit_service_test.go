package service

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/dto"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/model"
)

func TestAuditRecordSnapshots(t *testing.T) {
	repo, mocks := newTestRepos()
	audit := NewAuditService(repo, zap.NewNop())

	before := &model.Session{SessionID: "s1", Status: model.SessionStatusDraft}
	after := &model.Session{SessionID: "s1", Status: model.SessionStatusActive}
	audit.Record(context.Background(), "u1", "session.status", "session", "s1", before, after)

	if len(mocks.audit.entries) != 1 {
		t.Fatalf("got %d entries", len(mocks.audit.entries))
	}
	entry := mocks.audit.entries[0]
	if entry.ActorID != "u1" || entry.Action != "session.status" {
		t.Errorf("entry = %+v", entry)
	}
	if !strings.Contains(string(entry.Before), `"draft"`) {
		t.Errorf("before snapshot missing old status: %s", entry.Before)
	}
	if !strings.Contains(string(entry.After), `"active"`) {
		t.Errorf("after snapshot missing new status: %s", entry.After)
	}
}

func TestAuditRecordNilBefore(t *testing.T) {
	repo, mocks := newTestRepos()
	audit := NewAuditService(repo, zap.NewNop())

	audit.Record(context.Background(), "u1", "session.create", "session", "s1", nil, &model.Session{SessionID: "s1"})

	if mocks.audit.entries[0].Before != nil {
		t.Errorf("before should be empty for creates, got %s", mocks.audit.entries[0].Before)
	}
}

func TestAuditListPaging(t *testing.T) {
	repo, _ := newTestRepos()
	audit := NewAuditService(repo, zap.NewNop())

	for i := 0; i < 5; i++ {
		audit.Record(context.Background(), "u1", "session.create", "session", "s", nil, nil)
	}

	entries, total, err := audit.List(context.Background(), &dto.AuditListRequest{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatal(err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(entries) != 2 {
		t.Errorf("page 2 has %d entries, want 2", len(entries))
	}
}

func TestAdminStats(t *testing.T) {
	repo, mocks := newTestRepos()
	svc := NewAdminService(repo, zap.NewNop())

	mocks.user.Create(context.Background(), &model.User{Email: "a@b.com"})
	mocks.session.Create(context.Background(), &model.Session{Status: model.SessionStatusActive})
	mocks.session.Create(context.Background(), &model.Session{Status: model.SessionStatusDraft})

	stats, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Users != 1 || stats.Sessions != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.SessionsByStatus[model.SessionStatusActive] != 1 {
		t.Errorf("by status = %+v", stats.SessionsByStatus)
	}
}
