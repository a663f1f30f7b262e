package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/reachoutthueme/SessionFoundry-sub001/config"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Token types carried in Claims.TokenType.
const (
	TokenTypeAccess      = "access"
	TokenTypeRefresh     = "refresh"
	TokenTypeParticipant = "participant"
)

// Claims are the custom JWT claims. Facilitator tokens carry UserID/Role;
// participant tokens carry ParticipantID/SessionID.
type Claims struct {
	UserID        string `json:"user_id,omitempty"`
	Role          string `json:"role,omitempty"`
	ParticipantID string `json:"participant_id,omitempty"`
	SessionID     string `json:"session_id,omitempty"`
	TokenType     string `json:"token_type"`
	jwtv5.RegisteredClaims
}

// Manager signs and verifies the application's tokens.
type Manager struct {
	secret              []byte
	accessTokenTTL      time.Duration
	refreshTokenTTL     time.Duration
	participantTokenTTL time.Duration
}

// NewManager creates a token manager from auth configuration.
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret:              []byte(cfg.JWTSecret),
		accessTokenTTL:      cfg.AccessTokenTTL,
		refreshTokenTTL:     cfg.RefreshTokenTTL,
		participantTokenTTL: cfg.ParticipantTokenTTL,
	}
}

// GenerateAccessToken issues a facilitator access token.
func (m *Manager) GenerateAccessToken(userID, role string) (string, error) {
	return m.sign(Claims{
		UserID:    userID,
		Role:      role,
		TokenType: TokenTypeAccess,
	}, m.accessTokenTTL)
}

// GenerateRefreshToken issues a facilitator refresh token.
func (m *Manager) GenerateRefreshToken(userID, role string) (string, error) {
	return m.sign(Claims{
		UserID:    userID,
		Role:      role,
		TokenType: TokenTypeRefresh,
	}, m.refreshTokenTTL)
}

// GenerateParticipantToken issues a participant token scoped to one session.
func (m *Manager) GenerateParticipantToken(participantID, sessionID string) (string, error) {
	return m.sign(Claims{
		ParticipantID: participantID,
		SessionID:     sessionID,
		TokenType:     TokenTypeParticipant,
	}, m.participantTokenTTL)
}

func (m *Manager) sign(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwtv5.RegisteredClaims{
		ID:        uuid.New().String(),
		IssuedAt:  jwtv5.NewNumericDate(now),
		ExpiresAt: jwtv5.NewNumericDate(now.Add(ttl)),
		Issuer:    "sessionfoundry",
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken verifies a token and returns its claims.
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
