package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"asso-portal/internal/dto"
	"asso-portal/internal/model"
	"asso-portal/internal/repository"
)

// ── Registration business errors ──

var (
	ErrRegistrationNotFound  = errors.New("registration not found")
	ErrAlreadyRegistered     = errors.New("already registered for this event")
	ErrEventNotOpen          = errors.New("event is not open for registration")
	ErrEventPassed           = errors.New("event has already taken place")
	ErrRegistrationsDisabled = errors.New("event registrations are disabled")
)

// RegistrationService manages event registrations. Members register for
// published future events and may withdraw until the event starts; admins
// can remove any registration at any time.
type RegistrationService interface {
	Register(ctx context.Context, userID, eventID string) (*dto.RegistrationResponse, error)
	Unregister(ctx context.Context, userID, eventID string) error
	Status(ctx context.Context, userID, eventID string) (*dto.RegistrationStatusResponse, error)
	ListByEvent(ctx context.Context, eventID string) ([]dto.RegistrationResponse, error)
	ListByUser(ctx context.Context, userID string) ([]dto.RegistrationResponse, error)
	Remove(ctx context.Context, registrationID string) error
}

type registrationService struct {
	repo     *repository.Repository
	settings SettingsService
	logger   *zap.Logger
}

// NewRegistrationService creates a RegistrationService.
func NewRegistrationService(repo *repository.Repository, settings SettingsService, logger *zap.Logger) RegistrationService {
	return &registrationService{repo: repo, settings: settings, logger: logger}
}

func toRegistrationResponse(reg *model.EventRegistration) dto.RegistrationResponse {
	resp := dto.RegistrationResponse{
		ID:           reg.ID,
		EventID:      reg.EventID,
		RegisteredAt: reg.CreatedAt.Format(time.RFC3339),
	}
	if reg.User != nil {
		user := toUserResponse(reg.User)
		resp.User = &user
	}
	if reg.Event != nil {
		resp.Event = &dto.EventResponse{
			ID:          reg.Event.ID,
			Title:       reg.Event.Title,
			Description: reg.Event.Description,
			Date:        reg.Event.Date,
			Location:    reg.Event.Location,
			Image:       reg.Event.Image,
			IsPublished: reg.Event.IsPublished,
		}
	}
	return resp
}

// ────────────────────── Member actions ──────────────────────

func (s *registrationService) Register(ctx context.Context, userID, eventID string) (*dto.RegistrationResponse, error) {
	if !s.settings.IsRegistrationsEnabled(ctx) {
		return nil, ErrRegistrationsDisabled
	}

	event, err := s.repo.Event.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("failed to look up event", zap.Error(err))
		return nil, err
	}
	if !event.IsPublished {
		return nil, ErrEventNotOpen
	}
	if event.Date.Before(time.Now()) {
		return nil, ErrEventPassed
	}

	if _, err := s.repo.Registration.GetByUserAndEvent(ctx, userID, eventID); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("failed to look up registration", zap.Error(err))
		return nil, err
	}

	reg := &model.EventRegistration{UserID: userID, EventID: eventID}
	if err := s.repo.Registration.Create(ctx, reg); err != nil {
		// The unique pair index closes the race between the check above
		// and this insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyRegistered
		}
		s.logger.Error("failed to create registration", zap.Error(err))
		return nil, err
	}

	s.logger.Info("event registration",
		zap.String("user_id", userID), zap.String("event_id", eventID))
	resp := toRegistrationResponse(reg)
	return &resp, nil
}

func (s *registrationService) Unregister(ctx context.Context, userID, eventID string) error {
	reg, err := s.repo.Registration.GetByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRegistrationNotFound
		}
		s.logger.Error("failed to look up registration", zap.Error(err))
		return err
	}

	event, err := s.repo.Event.GetByID(ctx, eventID)
	if err != nil {
		s.logger.Error("failed to look up event", zap.Error(err))
		return err
	}
	// Members can withdraw until the event starts, not after.
	if event.Date.Before(time.Now()) {
		return ErrEventPassed
	}

	return s.repo.Registration.Delete(ctx, reg.ID)
}

func (s *registrationService) Status(ctx context.Context, userID, eventID string) (*dto.RegistrationStatusResponse, error) {
	_, err := s.repo.Registration.GetByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.RegistrationStatusResponse{IsRegistered: false}, nil
		}
		s.logger.Error("failed to look up registration", zap.Error(err))
		return nil, err
	}
	return &dto.RegistrationStatusResponse{IsRegistered: true}, nil
}

func (s *registrationService) ListByUser(ctx context.Context, userID string) ([]dto.RegistrationResponse, error) {
	regs, err := s.repo.Registration.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list registrations", zap.Error(err))
		return nil, err
	}
	out := make([]dto.RegistrationResponse, 0, len(regs))
	for i := range regs {
		out = append(out, toRegistrationResponse(&regs[i]))
	}
	return out, nil
}

// ────────────────────── Admin actions ──────────────────────

func (s *registrationService) ListByEvent(ctx context.Context, eventID string) ([]dto.RegistrationResponse, error) {
	regs, err := s.repo.Registration.ListByEvent(ctx, eventID)
	if err != nil {
		s.logger.Error("failed to list registrations", zap.Error(err))
		return nil, err
	}
	out := make([]dto.RegistrationResponse, 0, len(regs))
	for i := range regs {
		out = append(out, toRegistrationResponse(&regs[i]))
	}
	return out, nil
}

// Remove deletes a registration regardless of the event date; the back
// office uses it to clean up no-shows after the fact.
func (s *registrationService) Remove(ctx context.Context, registrationID string) error {
	if _, err := s.repo.Registration.GetByID(ctx, registrationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRegistrationNotFound
		}
		s.logger.Error("failed to look up registration", zap.Error(err))
		return err
	}
	return s.repo.Registration.Delete(ctx, registrationID)
}
