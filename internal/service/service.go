package service

import (
	"go.uber.org/zap"

	"asso-portal/config"
	"asso-portal/internal/repository"
	"asso-portal/pkg/jwt"
	"asso-portal/pkg/redis"
)

// Service aggregates every business service behind one entry point.
type Service struct {
	Auth         AuthService
	User         UserService
	Event        EventService
	Registration RegistrationService
	Catalog      CatalogService
	Order        OrderService
	Page         PageService
	Settings     SettingsService
	Media        MediaService
	SumUp        SumUpService
	Export       ExportService
}

// NewService wires the service aggregate.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	sumupClient SumUpAPI,
	logger *zap.Logger,
) *Service {
	settings := NewSettingsService(repo, cfg.Settings.CacheTTL, logger)
	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, settings, logger),
		User:         NewUserService(repo, logger),
		Event:        NewEventService(repo, cfg.Server.BaseURL, logger),
		Registration: NewRegistrationService(repo, settings, logger),
		Catalog:      NewCatalogService(repo, logger),
		Order:        NewOrderService(repo, settings, logger),
		Page:         NewPageService(repo, logger),
		Settings:     settings,
		Media:        NewMediaService(repo, &cfg.Upload, logger),
		SumUp:        NewSumUpService(sumupClient, repo, logger),
		Export:       NewExportService(repo, logger),
	}
}
