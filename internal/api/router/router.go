package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/reachoutthueme/SessionFoundry-sub001/config"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/api/handler"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/api/middleware"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/model"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/authcache"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/jwt"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/ratelimit"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/redis"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// Setup builds the gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	jwtMgr *jwt.Manager,
	cache *authcache.Cache,
	limiter *ratelimit.Limiter,
	rdb *redis.Client,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.Server.CORS.AllowOrigins),
		middleware.BodyLimit(maxBodyBytes),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	// Public endpoints.
	v1.POST("/auth/register", h.Auth.Register)
	v1.POST("/auth/login", h.Auth.Login)
	v1.POST("/auth/refresh", h.Auth.Refresh)
	v1.POST("/join",
		middleware.RateLimit(limiter, cfg.Limits.JoinRequests, cfg.Limits.JoinWindow),
		h.Session.Join,
	)

	authed := v1.Group("", middleware.JWTAuth(jwtMgr, cache, rdb, logger))

	// Endpoints shared by facilitators and participants.
	authed.POST("/auth/logout", h.Auth.Logout)
	authed.GET("/activities/:id", h.Activity.Get)
	authed.GET("/activities/:id/submissions", h.Intake.ListSubmissions)
	authed.GET("/activities/:id/initiatives", h.Activity.ListInitiatives)
	authed.GET("/activities/:id/results", h.Results.GetActivityResults)
	authed.GET("/sessions/:id/leaderboard", h.Results.GetSessionLeaderboard)
	authed.GET("/sessions/:id/groups", h.Session.ListGroups)

	// Facilitator endpoints.
	fac := authed.Group("", middleware.FacilitatorAuth())
	{
		fac.GET("/auth/profile", h.Auth.Profile)

		fac.POST("/sessions", h.Session.Create)
		fac.GET("/sessions", h.Session.List)
		fac.GET("/sessions/:id", h.Session.Get)
		fac.PATCH("/sessions/:id/status", h.Session.UpdateStatus)
		fac.POST("/sessions/:id/groups", h.Session.CreateGroup)
		fac.GET("/sessions/:id/participants", h.Session.ListParticipants)

		fac.POST("/sessions/:id/activities", h.Activity.Create)
		fac.GET("/sessions/:id/activities", h.Activity.ListBySession)
		fac.PUT("/activities/:id/config", h.Activity.UpdateConfig)
		fac.PATCH("/activities/:id/status", h.Activity.UpdateStatus)
		fac.POST("/activities/:id/initiatives", h.Activity.CreateInitiative)

		fac.GET("/sessions/:id/export/csv", h.Export.ExportCSV)
		fac.GET("/sessions/:id/export/xlsx", h.Export.ExportXLSX)
		fac.GET("/sessions/:id/export/agenda.ics", h.Export.ExportAgendaICS)
	}

	// Participant endpoints.
	part := authed.Group("", middleware.ParticipantAuth())
	{
		part.POST("/activities/:id/submissions", h.Intake.CreateSubmission)
		part.POST("/submissions/:id/votes",
			middleware.RateLimit(limiter, cfg.Limits.VoteRequests, cfg.Limits.VoteWindow),
			h.Intake.CastVote,
		)
		part.POST("/initiatives/:id/responses", h.Intake.CreateResponse)
	}

	// Admin endpoints.
	admin := authed.Group("/admin", middleware.RoleAuth(model.RoleAdmin))
	{
		admin.GET("/stats", h.Admin.Stats)
		admin.GET("/audit", h.Admin.AuditLog)
	}

	return r
}
