package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"asso-portal/internal/model"
)

func setupTestRegistrationService() (RegistrationService, *mocks) {
	repo, m := newTestRepository()
	logger := zap.NewNop()
	settings := NewSettingsService(repo, time.Minute, logger)
	svc := NewRegistrationService(repo, settings, logger)
	return svc, m
}

func seedEvent(m *mocks, id string, date time.Time, published bool) *model.Event {
	event := &model.Event{
		ID:          id,
		Title:       "Soirée",
		Description: "desc",
		Date:        date,
		Location:    "Campus",
		IsPublished: published,
	}
	m.events.events[id] = event
	return event
}

func TestRegistrationService_Register_Success(t *testing.T) {
	svc, m := setupTestRegistrationService()
	seedEvent(m, "event-1", time.Now().Add(48*time.Hour), true)

	reg, err := svc.Register(context.Background(), "user-1", "event-1")
	if err != nil {
		t.Fatalf("Register should succeed: %v", err)
	}
	if reg.EventID != "event-1" {
		t.Errorf("unexpected registration: %+v", reg)
	}

	status, err := svc.Status(context.Background(), "user-1", "event-1")
	if err != nil || !status.IsRegistered {
		t.Errorf("expected registered status, got %+v err %v", status, err)
	}
}

func TestRegistrationService_Register_Duplicate(t *testing.T) {
	svc, m := setupTestRegistrationService()
	seedEvent(m, "event-1", time.Now().Add(48*time.Hour), true)

	if _, err := svc.Register(context.Background(), "user-1", "event-1"); err != nil {
		t.Fatalf("first registration should succeed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "user-1", "event-1"); !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestRegistrationService_Register_Unpublished(t *testing.T) {
	svc, m := setupTestRegistrationService()
	seedEvent(m, "event-1", time.Now().Add(48*time.Hour), false)

	if _, err := svc.Register(context.Background(), "user-1", "event-1"); !errors.Is(err, ErrEventNotOpen) {
		t.Errorf("expected ErrEventNotOpen, got %v", err)
	}
}

func TestRegistrationService_Register_PastEvent(t *testing.T) {
	svc, m := setupTestRegistrationService()
	seedEvent(m, "event-1", time.Now().Add(-time.Hour), true)

	if _, err := svc.Register(context.Background(), "user-1", "event-1"); !errors.Is(err, ErrEventPassed) {
		t.Errorf("expected ErrEventPassed, got %v", err)
	}
}

func TestRegistrationService_Register_Disabled(t *testing.T) {
	svc, m := setupTestRegistrationService()
	seedEvent(m, "event-1", time.Now().Add(48*time.Hour), true)
	m.settings.set(model.SettingRegistrationsEnabled, "false")

	if _, err := svc.Register(context.Background(), "user-1", "event-1"); !errors.Is(err, ErrRegistrationsDisabled) {
		t.Errorf("expected ErrRegistrationsDisabled, got %v", err)
	}
}

func TestRegistrationService_Unregister_FutureOnly(t *testing.T) {
	svc, m := setupTestRegistrationService()
	event := seedEvent(m, "event-1", time.Now().Add(48*time.Hour), true)

	if _, err := svc.Register(context.Background(), "user-1", "event-1"); err != nil {
		t.Fatalf("Register should succeed: %v", err)
	}
	if err := svc.Unregister(context.Background(), "user-1", "event-1"); err != nil {
		t.Fatalf("Unregister before the event should succeed: %v", err)
	}

	// Register again, then move the event into the past.
	if _, err := svc.Register(context.Background(), "user-1", "event-1"); err != nil {
		t.Fatalf("Register should succeed: %v", err)
	}
	event.Date = time.Now().Add(-time.Hour)
	if err := svc.Unregister(context.Background(), "user-1", "event-1"); !errors.Is(err, ErrEventPassed) {
		t.Errorf("expected ErrEventPassed after the event, got %v", err)
	}
}

func TestRegistrationService_AdminRemove_IgnoresDate(t *testing.T) {
	svc, m := setupTestRegistrationService()
	event := seedEvent(m, "event-1", time.Now().Add(48*time.Hour), true)

	reg, err := svc.Register(context.Background(), "user-1", "event-1")
	if err != nil {
		t.Fatalf("Register should succeed: %v", err)
	}
	event.Date = time.Now().Add(-time.Hour)

	if err := svc.Remove(context.Background(), reg.ID); err != nil {
		t.Fatalf("admin removal must work after the event: %v", err)
	}
	if err := svc.Remove(context.Background(), reg.ID); !errors.Is(err, ErrRegistrationNotFound) {
		t.Errorf("expected ErrRegistrationNotFound, got %v", err)
	}
}
