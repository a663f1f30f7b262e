package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/service"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/response"
)

// ExportHandler streams session exports as file downloads.
type ExportHandler struct {
	svc    service.ExportService
	logger *zap.Logger
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(svc service.ExportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{svc: svc, logger: logger}
}

// ExportCSV GET /api/v1/sessions/:id/export/csv
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	data, filename, err := h.svc.ExportSessionCSV(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ExportXLSX GET /api/v1/sessions/:id/export/xlsx
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	buf, filename, err := h.svc.ExportSessionXLSX(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ExportAgendaICS GET /api/v1/sessions/:id/export/agenda.ics
func (h *ExportHandler) ExportAgendaICS(c *gin.Context) {
	data, filename, err := h.svc.ExportSessionAgendaICS(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 40420, "session not found")
	case errors.Is(err, service.ErrNotSessionOwner):
		response.Forbidden(c, 40321, "not the owner of this session")
	case errors.Is(err, service.ErrExportGenerateFail):
		h.logger.Error("export generation failed", zap.Error(err))
		response.InternalError(c)
	default:
		h.logger.Error("export handler error", zap.Error(err))
		response.InternalError(c)
	}
}
