package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/dto"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/repository"
)

// AdminService backs the admin dashboard.
type AdminService interface {
	GetStats(ctx context.Context) (*dto.AdminStatsResponse, error)
}

type adminService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAdminService creates an AdminService.
func NewAdminService(repo *repository.Repository, logger *zap.Logger) AdminService {
	return &adminService{repo: repo, logger: logger}
}

func (s *adminService) GetStats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	stats := &dto.AdminStatsResponse{}

	var err error
	if stats.Users, err = s.repo.User.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Sessions, err = s.repo.Session.Count(ctx); err != nil {
		return nil, err
	}
	if stats.SessionsByStatus, err = s.repo.Session.CountByStatus(ctx); err != nil {
		return nil, err
	}
	if stats.Activities, err = s.repo.Activity.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Submissions, err = s.repo.Submission.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Votes, err = s.repo.Vote.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Participants, err = s.repo.Participant.Count(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}
