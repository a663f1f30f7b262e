package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/authcache"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/jwt"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/redis"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/response"
)

// Context keys set by the auth middleware.
const (
	CtxUserID        = "user_id"
	CtxRole          = "role"
	CtxParticipantID = "participant_id"
	CtxSessionID     = "session_id"
	CtxTokenType     = "token_type"
	CtxToken         = "token"
)

// JWTAuth verifies the bearer token and stores its claims in the gin
// context. Verified claims are cached for a short TTL keyed by the raw
// token; the blacklist is still consulted on every request so logout
// takes effect within the blacklist's reach. A nil redis client skips
// the blacklist check.
func JWTAuth(jwtMgr *jwt.Manager, cache *authcache.Cache, rdb *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		if token == "" {
			response.Unauthorized(c, 40101, "missing bearer token")
			c.Abort()
			return
		}

		if rdb != nil {
			blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), token)
			if err != nil {
				// Degrade open: redis being down must not lock everyone out.
				logger.Warn("blacklist lookup failed", zap.Error(err))
			} else if blacklisted {
				response.Unauthorized(c, 40103, "token revoked")
				c.Abort()
				return
			}
		}

		claims, ok := cache.Get(token)
		if !ok {
			var err error
			claims, err = jwtMgr.ParseToken(token)
			if err != nil {
				response.Unauthorized(c, 40102, "invalid or expired token")
				c.Abort()
				return
			}
			cache.Put(token, claims)
		}

		if claims.TokenType == jwt.TokenTypeRefresh {
			// Refresh tokens only redeem at /auth/refresh.
			response.Unauthorized(c, 40102, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(CtxToken, token)
		c.Set(CtxTokenType, claims.TokenType)
		switch claims.TokenType {
		case jwt.TokenTypeAccess:
			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRole, claims.Role)
		case jwt.TokenTypeParticipant:
			c.Set(CtxParticipantID, claims.ParticipantID)
			c.Set(CtxSessionID, claims.SessionID)
		}

		c.Next()
	}
}

// FacilitatorAuth requires a facilitator access token. Runs after JWTAuth.
func FacilitatorAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxTokenType) != jwt.TokenTypeAccess {
			response.Forbidden(c, 40301, "facilitator token required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// ParticipantAuth requires a participant token. Runs after JWTAuth.
func ParticipantAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxTokenType) != jwt.TokenTypeParticipant {
			response.Forbidden(c, 40302, "participant token required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RoleAuth requires one of the given roles. Runs after JWTAuth.
func RoleAuth(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		response.Forbidden(c, 40303, "insufficient permissions")
		c.Abort()
	}
}

func extractBearer(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
