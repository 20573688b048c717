package handler

import "asso-portal/internal/service"

// Handler aggregates every HTTP handler group.
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Event        *EventHandler
	Registration *RegistrationHandler
	Catalog      *CatalogHandler
	Order        *OrderHandler
	Page         *PageHandler
	Setting      *SettingHandler
	Media        *MediaHandler
	SumUp        *SumUpHandler
	Export       *ExportHandler
}

// NewHandler wires every handler group to its service.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth, svc.User),
		User:         NewUserHandler(svc.User),
		Event:        NewEventHandler(svc.Event),
		Registration: NewRegistrationHandler(svc.Registration),
		Catalog:      NewCatalogHandler(svc.Catalog),
		Order:        NewOrderHandler(svc.Order),
		Page:         NewPageHandler(svc.Page),
		Setting:      NewSettingHandler(svc.Settings),
		Media:        NewMediaHandler(svc.Media),
		SumUp:        NewSumUpHandler(svc.SumUp),
		Export:       NewExportHandler(svc.Export),
	}
}
