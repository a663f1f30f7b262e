package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/reachoutthueme/SessionFoundry-sub001/config"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/dto"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/model"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/repository"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/authcache"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/jwt"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/redis"
)

// ── Auth business errors ──

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService handles facilitator accounts and token lifecycle.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, accessToken string) error
	GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authService struct {
	repo    *repository.Repository
	jwtMgr  *jwt.Manager
	rdb     *redis.Client
	cache   *authcache.Cache
	authCfg *config.AuthConfig
	logger  *zap.Logger
}

// NewAuthService creates an AuthService. rdb may be nil, in which case
// logout cannot blacklist tokens and only drops the local cache entry.
func NewAuthService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	cache *authcache.Cache,
	authCfg *config.AuthConfig,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:    repo,
		jwtMgr:  jwtMgr,
		rdb:     rdb,
		cache:   cache,
		authCfg: authCfg,
		logger:  logger,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         model.RoleFacilitator,
		Plan:         model.PlanFree,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		// Concurrent register on the same email hits the unique index.
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("create user failed", zap.Error(err))
		return nil, err
	}

	return s.issueTokens(user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.User.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

func (s *authService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil || claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrInvalidToken
	}

	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, req.RefreshToken)
		if err != nil {
			s.logger.Warn("blacklist lookup failed", zap.Error(err))
		} else if blacklisted {
			return nil, ErrInvalidToken
		}
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	// Rotate: the used refresh token is retired.
	if s.rdb != nil {
		ttl := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time)
		if err := s.rdb.BlacklistToken(ctx, req.RefreshToken, ttl); err != nil {
			s.logger.Warn("blacklist refresh token failed", zap.Error(err))
		}
	}

	return s.issueTokens(user)
}

// Logout blacklists the presented access token for its remaining
// lifetime and drops the auth cache entry immediately.
func (s *authService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtMgr.ParseToken(accessToken)
	if err != nil {
		return ErrInvalidToken
	}

	s.cache.Invalidate(accessToken)

	if s.rdb != nil {
		ttl := s.authCfg.AccessTokenTTL
		if claims.ExpiresAt != nil {
			ttl = claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time)
		}
		if err := s.rdb.BlacklistToken(ctx, accessToken, ttl); err != nil {
			s.logger.Warn("blacklist access token failed", zap.Error(err))
		}
	}
	return nil
}

func (s *authService) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) issueTokens(user *model.User) (*dto.TokenResponse, error) {
	access, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(s.authCfg.AccessTokenTTL.Seconds()),
		User:         toUserResponse(user),
	}, nil
}

// ── Converters ──

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    u.UserID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
		Plan:  u.Plan,
	}
}
