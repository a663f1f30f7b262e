package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/dto"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/service"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/response"
)

// AdminHandler exposes the admin dashboard and audit log.
type AdminHandler struct {
	svc    service.AdminService
	audit  service.AuditService
	logger *zap.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(svc service.AdminService, audit service.AuditService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, audit: audit, logger: logger}
}

// Stats GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.svc.GetStats(c.Request.Context())
	if err != nil {
		h.logger.Error("admin stats failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, stats)
}

// AuditLog GET /api/v1/admin/audit
func (h *AdminHandler) AuditLog(c *gin.Context) {
	var req dto.AuditListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 40001, "invalid query parameters")
		return
	}

	entries, total, err := h.audit.List(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("audit list failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OKPage(c, entries, total, req.Page, req.PageSize)
}
