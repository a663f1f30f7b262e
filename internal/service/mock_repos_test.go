package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/model"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/repository"
)

// In-memory repository mocks. IDs are assigned sequentially so tests
// can predict them; lookups that miss return gorm.ErrRecordNotFound
// exactly like the real layer.

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return fmt.Errorf("duplicate key value violates unique constraint")
		}
	}
	m.seq++
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

type mockSessionRepo struct {
	sessions map[string]*model.Session
	seq      int
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*model.Session)}
}

func (m *mockSessionRepo) Create(ctx context.Context, session *model.Session) error {
	m.seq++
	if session.SessionID == "" {
		session.SessionID = fmt.Sprintf("session-%d", m.seq)
	}
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockSessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (m *mockSessionRepo) GetByJoinCode(ctx context.Context, code string) (*model.Session, error) {
	for _, s := range m.sessions {
		if s.JoinCode == code {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) ListByFacilitator(ctx context.Context, facilitatorID string) ([]model.Session, error) {
	var out []model.Session
	for _, s := range m.sessions {
		if s.FacilitatorID == facilitatorID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockSessionRepo) CountByFacilitator(ctx context.Context, facilitatorID string) (int64, error) {
	var n int64
	for _, s := range m.sessions {
		if s.FacilitatorID == facilitatorID && s.Status != model.SessionStatusInactive {
			n++
		}
	}
	return n, nil
}

func (m *mockSessionRepo) Update(ctx context.Context, session *model.Session) error {
	if _, ok := m.sessions[session.SessionID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockSessionRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.sessions)), nil
}

func (m *mockSessionRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, s := range m.sessions {
		out[s.Status]++
	}
	return out, nil
}

type mockActivityRepo struct {
	activities map[string]*model.Activity
	order      []string
	seq        int
}

func newMockActivityRepo() *mockActivityRepo {
	return &mockActivityRepo{activities: make(map[string]*model.Activity)}
}

func (m *mockActivityRepo) Create(ctx context.Context, activity *model.Activity) error {
	m.seq++
	if activity.ActivityID == "" {
		activity.ActivityID = fmt.Sprintf("activity-%d", m.seq)
	}
	m.activities[activity.ActivityID] = activity
	m.order = append(m.order, activity.ActivityID)
	return nil
}

func (m *mockActivityRepo) GetByID(ctx context.Context, id string) (*model.Activity, error) {
	a, ok := m.activities[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (m *mockActivityRepo) ListBySession(ctx context.Context, sessionID string) ([]model.Activity, error) {
	var out []model.Activity
	for _, id := range m.order {
		if a := m.activities[id]; a.SessionID == sessionID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockActivityRepo) Update(ctx context.Context, activity *model.Activity) error {
	if _, ok := m.activities[activity.ActivityID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.activities[activity.ActivityID] = activity
	return nil
}

func (m *mockActivityRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.activities)), nil
}

type mockSubmissionRepo struct {
	submissions []*model.Submission
	seq         int
	failCreate  error
}

func newMockSubmissionRepo() *mockSubmissionRepo {
	return &mockSubmissionRepo{}
}

func (m *mockSubmissionRepo) Create(ctx context.Context, submission *model.Submission) error {
	if m.failCreate != nil {
		return m.failCreate
	}
	m.seq++
	if submission.SubmissionID == "" {
		submission.SubmissionID = fmt.Sprintf("submission-%d", m.seq)
	}
	m.submissions = append(m.submissions, submission)
	return nil
}

func (m *mockSubmissionRepo) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	for _, s := range m.submissions {
		if s.SubmissionID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubmissionRepo) ListByActivity(ctx context.Context, activityID string) ([]model.Submission, error) {
	var out []model.Submission
	for _, s := range m.submissions {
		if s.ActivityID != nil && *s.ActivityID == activityID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockSubmissionRepo) ListBySession(ctx context.Context, sessionID string) ([]model.Submission, error) {
	var out []model.Submission
	for _, s := range m.submissions {
		if s.SessionID != nil && *s.SessionID == sessionID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockSubmissionRepo) CountByParticipant(ctx context.Context, activityID, participantID string) (int64, error) {
	var n int64
	for _, s := range m.submissions {
		if s.ActivityID != nil && *s.ActivityID == activityID &&
			s.ParticipantID != nil && *s.ParticipantID == participantID {
			n++
		}
	}
	return n, nil
}

func (m *mockSubmissionRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.submissions)), nil
}

type mockVoteRepo struct {
	votes      []*model.Vote
	seq        int
	failCreate error
}

func newMockVoteRepo() *mockVoteRepo {
	return &mockVoteRepo{}
}

func (m *mockVoteRepo) Create(ctx context.Context, vote *model.Vote) error {
	if m.failCreate != nil {
		return m.failCreate
	}
	for _, v := range m.votes {
		if v.ParticipantID == vote.ParticipantID && v.SubmissionID == vote.SubmissionID {
			return fmt.Errorf("duplicate key value violates unique constraint %q", "uq_vote_per_participant")
		}
	}
	m.seq++
	if vote.VoteID == "" {
		vote.VoteID = fmt.Sprintf("vote-%d", m.seq)
	}
	m.votes = append(m.votes, vote)
	return nil
}

func (m *mockVoteRepo) ListByActivity(ctx context.Context, activityID string) ([]model.Vote, error) {
	var out []model.Vote
	for _, v := range m.votes {
		if v.ActivityID != nil && *v.ActivityID == activityID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (m *mockVoteRepo) ListBySession(ctx context.Context, sessionID string) ([]model.Vote, error) {
	var out []model.Vote
	for _, v := range m.votes {
		if v.SessionID != nil && *v.SessionID == sessionID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (m *mockVoteRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.votes)), nil
}

type mockParticipantRepo struct {
	participants []*model.Participant
	seq          int
}

func newMockParticipantRepo() *mockParticipantRepo {
	return &mockParticipantRepo{}
}

func (m *mockParticipantRepo) Create(ctx context.Context, participant *model.Participant) error {
	m.seq++
	if participant.ParticipantID == "" {
		participant.ParticipantID = fmt.Sprintf("participant-%d", m.seq)
	}
	m.participants = append(m.participants, participant)
	return nil
}

func (m *mockParticipantRepo) GetByID(ctx context.Context, id string) (*model.Participant, error) {
	for _, p := range m.participants {
		if p.ParticipantID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockParticipantRepo) ListBySession(ctx context.Context, sessionID string) ([]model.Participant, error) {
	var out []model.Participant
	for _, p := range m.participants {
		if p.SessionID == sessionID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockParticipantRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.participants)), nil
}

type mockGroupRepo struct {
	groups []*model.Group
	seq    int
}

func newMockGroupRepo() *mockGroupRepo {
	return &mockGroupRepo{}
}

func (m *mockGroupRepo) Create(ctx context.Context, group *model.Group) error {
	m.seq++
	if group.GroupID == "" {
		group.GroupID = fmt.Sprintf("group-%d", m.seq)
	}
	m.groups = append(m.groups, group)
	return nil
}

func (m *mockGroupRepo) GetByID(ctx context.Context, id string) (*model.Group, error) {
	for _, g := range m.groups {
		if g.GroupID == id {
			return g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupRepo) ListBySession(ctx context.Context, sessionID string) ([]model.Group, error) {
	var out []model.Group
	for _, g := range m.groups {
		if g.SessionID == sessionID {
			out = append(out, *g)
		}
	}
	return out, nil
}

type mockInitiativeRepo struct {
	initiatives []*model.StocktakeInitiative
	seq         int
}

func newMockInitiativeRepo() *mockInitiativeRepo {
	return &mockInitiativeRepo{}
}

func (m *mockInitiativeRepo) Create(ctx context.Context, initiative *model.StocktakeInitiative) error {
	m.seq++
	if initiative.InitiativeID == "" {
		initiative.InitiativeID = fmt.Sprintf("initiative-%d", m.seq)
	}
	m.initiatives = append(m.initiatives, initiative)
	return nil
}

func (m *mockInitiativeRepo) GetByID(ctx context.Context, id string) (*model.StocktakeInitiative, error) {
	for _, ini := range m.initiatives {
		if ini.InitiativeID == id {
			return ini, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInitiativeRepo) ListByActivity(ctx context.Context, activityID string) ([]model.StocktakeInitiative, error) {
	var out []model.StocktakeInitiative
	for _, ini := range m.initiatives {
		if ini.ActivityID == activityID {
			out = append(out, *ini)
		}
	}
	return out, nil
}

type mockResponseRepo struct {
	responses   []*model.StocktakeResponse
	initiatives *mockInitiativeRepo
	seq         int
}

func newMockResponseRepo(initiatives *mockInitiativeRepo) *mockResponseRepo {
	return &mockResponseRepo{initiatives: initiatives}
}

func (m *mockResponseRepo) Create(ctx context.Context, response *model.StocktakeResponse) error {
	m.seq++
	if response.ResponseID == "" {
		response.ResponseID = fmt.Sprintf("response-%d", m.seq)
	}
	m.responses = append(m.responses, response)
	return nil
}

func (m *mockResponseRepo) ListByActivity(ctx context.Context, activityID string) ([]model.StocktakeResponse, error) {
	inActivity := make(map[string]bool)
	for _, ini := range m.initiatives.initiatives {
		if ini.ActivityID == activityID {
			inActivity[ini.InitiativeID] = true
		}
	}
	var out []model.StocktakeResponse
	for _, r := range m.responses {
		if inActivity[r.InitiativeID] {
			out = append(out, *r)
		}
	}
	return out, nil
}

type mockAuditRepo struct {
	entries []*model.AuditLogEntry
}

func newMockAuditRepo() *mockAuditRepo {
	return &mockAuditRepo{}
}

func (m *mockAuditRepo) Append(ctx context.Context, entry *model.AuditLogEntry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditRepo) List(ctx context.Context, offset, limit int) ([]model.AuditLogEntry, int64, error) {
	total := int64(len(m.entries))
	if offset >= len(m.entries) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(m.entries) {
		end = len(m.entries)
	}
	out := make([]model.AuditLogEntry, 0, end-offset)
	for _, e := range m.entries[offset:end] {
		out = append(out, *e)
	}
	return out, total, nil
}

// testRepos bundles the mocks so tests can reach into individual stores.
type testRepos struct {
	user        *mockUserRepo
	session     *mockSessionRepo
	activity    *mockActivityRepo
	submission  *mockSubmissionRepo
	vote        *mockVoteRepo
	participant *mockParticipantRepo
	group       *mockGroupRepo
	initiative  *mockInitiativeRepo
	response    *mockResponseRepo
	audit       *mockAuditRepo
}

func newTestRepos() (*repository.Repository, *testRepos) {
	initiatives := newMockInitiativeRepo()
	mocks := &testRepos{
		user:        newMockUserRepo(),
		session:     newMockSessionRepo(),
		activity:    newMockActivityRepo(),
		submission:  newMockSubmissionRepo(),
		vote:        newMockVoteRepo(),
		participant: newMockParticipantRepo(),
		group:       newMockGroupRepo(),
		initiative:  initiatives,
		response:    newMockResponseRepo(initiatives),
		audit:       newMockAuditRepo(),
	}

	repo := &repository.Repository{
		User:        mocks.user,
		Session:     mocks.session,
		Activity:    mocks.activity,
		Submission:  mocks.submission,
		Vote:        mocks.vote,
		Participant: mocks.participant,
		Group:       mocks.group,
		Initiative:  mocks.initiative,
		Response:    mocks.response,
		Audit:       mocks.audit,
	}
	return repo, mocks
}

func strptr(s string) *string { return &s }
