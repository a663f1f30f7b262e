package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/dto"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/model"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/repository"
)

// AuditService appends administrative actions to the audit trail.
// Recording is best effort: a failed append is logged, never surfaced
// to the caller, so audit problems cannot fail user-facing writes.
type AuditService interface {
	Record(ctx context.Context, actorID, action, entityType, entityID string, before, after interface{})
	List(ctx context.Context, req *dto.AuditListRequest) ([]model.AuditLogEntry, int64, error)
}

type auditService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAuditService creates an AuditService.
func NewAuditService(repo *repository.Repository, logger *zap.Logger) AuditService {
	return &auditService{repo: repo, logger: logger}
}

func (s *auditService) Record(ctx context.Context, actorID, action, entityType, entityID string, before, after interface{}) {
	entry := &model.AuditLogEntry{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Before:     snapshot(before),
		After:      snapshot(after),
	}

	if err := s.repo.Audit.Append(ctx, entry); err != nil {
		s.logger.Error("audit append failed",
			zap.String("action", action),
			zap.String("entity_id", entityID),
			zap.Error(err),
		)
	}
}

func (s *auditService) List(ctx context.Context, req *dto.AuditListRequest) ([]model.AuditLogEntry, int64, error) {
	offset := (req.Page - 1) * req.PageSize
	return s.repo.Audit.List(ctx, offset, req.PageSize)
}

// snapshot serializes an entity state; nil or unserializable values
// become empty snapshots.
func snapshot(v interface{}) model.JSONB {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return model.JSONB(data)
}
