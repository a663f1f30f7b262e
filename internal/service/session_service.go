package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/reachoutthueme/SessionFoundry-sub001/config"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/dto"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/model"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/repository"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/jwt"
)

// ── Session business errors ──

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionCapReached    = errors.New("free plan allows only one session")
	ErrNotSessionOwner      = errors.New("not the owner of this session")
	ErrBadSessionTransition = errors.New("invalid session status transition")
	ErrSessionNotJoinable   = errors.New("session is not accepting participants")
	ErrGroupNotFound        = errors.New("group not found")
	ErrJoinCodeExhausted    = errors.New("could not allocate a unique join code")
)

// Join codes use a human-readable alphabet with ambiguous glyphs
// (0/O, 1/I/L) removed.
const joinCodeAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"
const joinCodeLength = 4

// SessionService owns the session lifecycle and the participant join flow.
type SessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest, facilitatorID string) (*dto.SessionResponse, error)
	GetByID(ctx context.Context, id string, callerID string) (*dto.SessionResponse, error)
	List(ctx context.Context, facilitatorID string) ([]dto.SessionResponse, error)
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateSessionStatusRequest, callerID string) (*dto.SessionResponse, error)
	Join(ctx context.Context, req *dto.JoinRequest) (*dto.JoinResponse, error)
	CreateGroup(ctx context.Context, sessionID string, req *dto.CreateGroupRequest, callerID string) (*dto.GroupResponse, error)
	ListGroups(ctx context.Context, sessionID string) ([]dto.GroupResponse, error)
	ListParticipants(ctx context.Context, sessionID string, callerID string) ([]dto.ParticipantResponse, error)
}

type sessionService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	audit  AuditService
	logger *zap.Logger
}

// NewSessionService creates a SessionService.
func NewSessionService(cfg *config.Config, repo *repository.Repository, jwtMgr *jwt.Manager, audit AuditService, logger *zap.Logger) SessionService {
	return &sessionService{cfg: cfg, repo: repo, jwtMgr: jwtMgr, audit: audit, logger: logger}
}

func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest, facilitatorID string) (*dto.SessionResponse, error) {
	user, err := s.repo.User.GetByID(ctx, facilitatorID)
	if err != nil {
		return nil, err
	}

	// Free plan: one live session per facilitator.
	if user.Plan == model.PlanFree {
		count, err := s.repo.Session.CountByFacilitator(ctx, facilitatorID)
		if err != nil {
			return nil, err
		}
		if count >= int64(s.cfg.Plan.FreeSessionCap) {
			return nil, ErrSessionCapReached
		}
	}

	code, err := s.allocateJoinCode(ctx)
	if err != nil {
		return nil, err
	}

	session := &model.Session{
		Name:          req.Name,
		Status:        model.SessionStatusDraft,
		JoinCode:      code,
		FacilitatorID: facilitatorID,
	}
	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.logger.Error("create session failed", zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, facilitatorID, "session.create", "session", session.SessionID, nil, session)

	resp := toSessionResponse(session)
	return &resp, nil
}

// allocateJoinCode draws random codes until one is unused.
func (s *sessionService) allocateJoinCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code, err := randomJoinCode()
		if err != nil {
			return "", err
		}
		_, err = s.repo.Session.GetByJoinCode(ctx, code)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
		// Collision, draw again.
	}
	return "", ErrJoinCodeExhausted
}

func randomJoinCode() (string, error) {
	buf := make([]byte, joinCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate join code: %w", err)
	}
	code := make([]byte, joinCodeLength)
	for i, b := range buf {
		code[i] = joinCodeAlphabet[int(b)%len(joinCodeAlphabet)]
	}
	return string(code), nil
}

func (s *sessionService) GetByID(ctx context.Context, id string, callerID string) (*dto.SessionResponse, error) {
	session, err := s.repo.Session.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.FacilitatorID != callerID {
		return nil, ErrNotSessionOwner
	}

	resp := toSessionResponse(session)
	return &resp, nil
}

func (s *sessionService) List(ctx context.Context, facilitatorID string) ([]dto.SessionResponse, error) {
	sessions, err := s.repo.Session.ListByFacilitator(ctx, facilitatorID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, toSessionResponse(&sessions[i]))
	}
	return out, nil
}

// sessionTransitions enumerates the allowed status moves. Inactive is
// reachable from anywhere and terminal.
var sessionTransitions = map[string][]string{
	model.SessionStatusDraft:     {model.SessionStatusActive, model.SessionStatusInactive},
	model.SessionStatusActive:    {model.SessionStatusCompleted, model.SessionStatusInactive},
	model.SessionStatusCompleted: {model.SessionStatusInactive},
	model.SessionStatusInactive:  {},
}

func (s *sessionService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateSessionStatusRequest, callerID string) (*dto.SessionResponse, error) {
	session, err := s.repo.Session.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.FacilitatorID != callerID {
		return nil, ErrNotSessionOwner
	}

	allowed := false
	for _, next := range sessionTransitions[session.Status] {
		if next == req.Status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrBadSessionTransition
	}

	before := *session
	session.Status = req.Status
	if err := s.repo.Session.Update(ctx, session); err != nil {
		s.logger.Error("update session status failed", zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, callerID, "session.status", "session", session.SessionID, &before, session)

	resp := toSessionResponse(session)
	return &resp, nil
}

func (s *sessionService) Join(ctx context.Context, req *dto.JoinRequest) (*dto.JoinResponse, error) {
	session, err := s.repo.Session.GetByJoinCode(ctx, normalizeJoinCode(req.Code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.Status != model.SessionStatusActive {
		return nil, ErrSessionNotJoinable
	}

	participant := &model.Participant{SessionID: session.SessionID}
	if req.DisplayName != "" {
		name := req.DisplayName
		participant.DisplayName = &name
	}
	if req.GroupID != "" {
		group, err := s.repo.Group.GetByID(ctx, req.GroupID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrGroupNotFound
			}
			return nil, err
		}
		if group.SessionID != session.SessionID {
			return nil, ErrGroupNotFound
		}
		participant.GroupID = &group.GroupID
	}

	if err := s.repo.Participant.Create(ctx, participant); err != nil {
		s.logger.Error("create participant failed", zap.Error(err))
		return nil, err
	}

	token, err := s.jwtMgr.GenerateParticipantToken(participant.ParticipantID, session.SessionID)
	if err != nil {
		return nil, err
	}

	return &dto.JoinResponse{
		ParticipantToken: token,
		Participant:      toParticipantResponse(participant),
		Session:          toSessionResponse(session),
	}, nil
}

func (s *sessionService) CreateGroup(ctx context.Context, sessionID string, req *dto.CreateGroupRequest, callerID string) (*dto.GroupResponse, error) {
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

	group := &model.Group{SessionID: sessionID, Name: req.Name}
	if err := s.repo.Group.Create(ctx, group); err != nil {
		return nil, err
	}

	return &dto.GroupResponse{ID: group.GroupID, SessionID: group.SessionID, Name: group.Name}, nil
}

func (s *sessionService) ListGroups(ctx context.Context, sessionID string) ([]dto.GroupResponse, error) {
	groups, err := s.repo.Group.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.GroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, dto.GroupResponse{ID: g.GroupID, SessionID: g.SessionID, Name: g.Name})
	}
	return out, nil
}

func (s *sessionService) ListParticipants(ctx context.Context, sessionID string, callerID string) ([]dto.ParticipantResponse, error) {
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

	participants, err := s.repo.Participant.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ParticipantResponse, 0, len(participants))
	for i := range participants {
		out = append(out, toParticipantResponse(&participants[i]))
	}
	return out, nil
}

// ── Converters ──

func toSessionResponse(session *model.Session) dto.SessionResponse {
	return dto.SessionResponse{
		ID:            session.SessionID,
		Name:          session.Name,
		Status:        session.Status,
		JoinCode:      session.JoinCode,
		FacilitatorID: session.FacilitatorID,
		CreatedAt:     session.CreatedAt,
	}
}

func toParticipantResponse(p *model.Participant) dto.ParticipantResponse {
	return dto.ParticipantResponse{
		ID:          p.ParticipantID,
		SessionID:   p.SessionID,
		DisplayName: p.DisplayName,
		GroupID:     p.GroupID,
	}
}

// normalizeJoinCode upper-cases a typed code so o/0 confusion aside,
// lower-case entry still matches.
func normalizeJoinCode(code string) string {
	out := make([]byte, 0, len(code))
	for i := 0; i < len(code); i++ {
		c := code[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}
