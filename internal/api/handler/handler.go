package handler

import (
	"go.uber.org/zap"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/service"
)

// Handler aggregates all HTTP handlers.
type Handler struct {
	Auth     *AuthHandler
	Session  *SessionHandler
	Activity *ActivityHandler
	Intake   *IntakeHandler
	Results  *ResultsHandler
	Export   *ExportHandler
	Admin    *AdminHandler
}

// NewHandler wires the handler layer.
func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth, logger),
		Session:  NewSessionHandler(svc.Session, logger),
		Activity: NewActivityHandler(svc.Activity, logger),
		Intake:   NewIntakeHandler(svc.Intake, logger),
		Results:  NewResultsHandler(svc.Results, logger),
		Export:   NewExportHandler(svc.Export, logger),
		Admin:    NewAdminHandler(svc.Admin, svc.Audit, logger),
	}
}
