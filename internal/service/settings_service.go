package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"asso-portal/internal/dto"
	"asso-portal/internal/model"
	"asso-portal/internal/repository"
)

// ── Settings business errors ──

var ErrSettingNotFound = errors.New("setting not found")

// SettingsService reads and writes site settings. Reads go through a
// short-lived in-process cache; every write invalidates the whole cache so
// the next read observes the new values.
type SettingsService interface {
	Get(ctx context.Context, key string) (*dto.SettingResponse, error)
	List(ctx context.Context) ([]dto.SettingResponse, error)
	ListByGroup(ctx context.Context, group string) ([]dto.SettingResponse, error)
	Update(ctx context.Context, key, value string) error
	UpdateMany(ctx context.Context, values map[string]string) error

	// Feature flags, read through the cache. A missing key counts as
	// disabled for maintenance and as enabled for the others.
	IsMaintenanceMode(ctx context.Context) bool
	IsOrdersEnabled(ctx context.Context) bool
	IsRegistrationsEnabled(ctx context.Context) bool
	IsRegistrationOpen(ctx context.Context) bool
}

type settingsService struct {
	repo   *repository.Repository
	logger *zap.Logger
	ttl    time.Duration

	mu        sync.RWMutex
	cache     map[string]model.Setting
	expiresAt time.Time
}

// NewSettingsService creates a SettingsService with the given cache TTL.
func NewSettingsService(repo *repository.Repository, ttl time.Duration, logger *zap.Logger) SettingsService {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &settingsService{repo: repo, logger: logger, ttl: ttl}
}

// snapshot returns the cached settings map, reloading it from the database
// when the cache is cold or expired.
func (s *settingsService) snapshot(ctx context.Context) (map[string]model.Setting, error) {
	s.mu.RLock()
	if s.cache != nil && time.Now().Before(s.expiresAt) {
		cached := s.cache
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cache != nil && time.Now().Before(s.expiresAt) {
		return s.cache, nil
	}

	settings, err := s.repo.Setting.List(ctx)
	if err != nil {
		s.logger.Error("failed to load settings", zap.Error(err))
		return nil, err
	}
	fresh := make(map[string]model.Setting, len(settings))
	for _, setting := range settings {
		fresh[setting.Key] = setting
	}
	s.cache = fresh
	s.expiresAt = time.Now().Add(s.ttl)
	return fresh, nil
}

func (s *settingsService) invalidate() {
	s.mu.Lock()
	s.cache = nil
	s.mu.Unlock()
}

func toSettingResponse(setting *model.Setting) dto.SettingResponse {
	return dto.SettingResponse{
		Key:       setting.Key,
		Value:     setting.Value,
		Label:     setting.Label,
		Group:     setting.Group,
		Type:      setting.Type,
		UpdatedAt: setting.UpdatedAt.Format(time.RFC3339),
	}
}

// ────────────────────── Reads ──────────────────────

func (s *settingsService) Get(ctx context.Context, key string) (*dto.SettingResponse, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	setting, ok := snap[key]
	if !ok {
		return nil, ErrSettingNotFound
	}
	resp := toSettingResponse(&setting)
	return &resp, nil
}

func (s *settingsService) List(ctx context.Context) ([]dto.SettingResponse, error) {
	settings, err := s.repo.Setting.List(ctx)
	if err != nil {
		s.logger.Error("failed to list settings", zap.Error(err))
		return nil, err
	}
	out := make([]dto.SettingResponse, 0, len(settings))
	for i := range settings {
		out = append(out, toSettingResponse(&settings[i]))
	}
	return out, nil
}

func (s *settingsService) ListByGroup(ctx context.Context, group string) ([]dto.SettingResponse, error) {
	settings, err := s.repo.Setting.ListByGroup(ctx, group)
	if err != nil {
		s.logger.Error("failed to list settings by group", zap.String("group", group), zap.Error(err))
		return nil, err
	}
	out := make([]dto.SettingResponse, 0, len(settings))
	for i := range settings {
		out = append(out, toSettingResponse(&settings[i]))
	}
	return out, nil
}

// ────────────────────── Writes ──────────────────────

func (s *settingsService) Update(ctx context.Context, key, value string) error {
	if err := s.repo.Setting.Upsert(ctx, key, value); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSettingNotFound
		}
		s.logger.Error("failed to update setting", zap.String("key", key), zap.Error(err))
		return err
	}
	s.invalidate()
	return nil
}

func (s *settingsService) UpdateMany(ctx context.Context, values map[string]string) error {
	// Invalidate even when the write fails so the cache can never outlive
	// a batch whose fate we do not know.
	defer s.invalidate()

	if err := s.repo.Setting.UpsertMany(ctx, values); err != nil {
		s.logger.Error("failed to update settings", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Feature flags ──────────────────────

// flag reads a boolean setting; missing keys or load failures fall back to
// the given default so a broken settings table never locks everyone out.
func (s *settingsService) flag(ctx context.Context, key string, fallback bool) bool {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return fallback
	}
	setting, ok := snap[key]
	if !ok {
		return fallback
	}
	return setting.Value == "true"
}

func (s *settingsService) IsMaintenanceMode(ctx context.Context) bool {
	return s.flag(ctx, model.SettingMaintenanceMode, false)
}

func (s *settingsService) IsOrdersEnabled(ctx context.Context) bool {
	return s.flag(ctx, model.SettingOrdersEnabled, true)
}

func (s *settingsService) IsRegistrationsEnabled(ctx context.Context) bool {
	return s.flag(ctx, model.SettingRegistrationsEnabled, true)
}

func (s *settingsService) IsRegistrationOpen(ctx context.Context) bool {
	return s.flag(ctx, model.SettingRegistrationOpen, true)
}
