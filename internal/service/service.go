package service

import (
	"go.uber.org/zap"

	"github.com/reachoutthueme/SessionFoundry-sub001/config"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/repository"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/authcache"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/jwt"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/redis"
)

// Service aggregates all business services.
type Service struct {
	Auth     AuthService
	Session  SessionService
	Activity ActivityService
	Intake   IntakeService
	Results  ResultsService
	Export   ExportService
	Audit    AuditService
	Admin    AdminService
}

// NewService wires the service layer. rdb may be nil when redis is
// unavailable; dependents degrade accordingly.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	cache *authcache.Cache,
	logger *zap.Logger,
) *Service {
	dispatch := NewHookDispatcher(repo, logger)
	audit := NewAuditService(repo, logger)

	return &Service{
		Auth:     NewAuthService(repo, jwtMgr, rdb, cache, &cfg.Auth, logger),
		Session:  NewSessionService(cfg, repo, jwtMgr, audit, logger),
		Activity: NewActivityService(repo, audit, logger),
		Intake:   NewIntakeService(repo, dispatch, logger),
		Results:  NewResultsService(repo, dispatch, logger),
		Export:   NewExportService(repo, logger),
		Audit:    audit,
		Admin:    NewAdminService(repo, logger),
	}
}
