package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"asso-portal/internal/dto"
	"asso-portal/internal/model"
)

func setupTestEventService() (EventService, *mocks) {
	repo, m := newTestRepository()
	svc := NewEventService(repo, "https://asso.example.org", zap.NewNop())
	return svc, m
}

func TestEventService_Delete_BlockedByRegistrations(t *testing.T) {
	svc, m := setupTestEventService()
	seedEvent(m, "event-1", time.Now().Add(48*time.Hour), true)
	m.registrations.registrations["reg-1"] = &model.EventRegistration{
		ID: "reg-1", UserID: "user-1", EventID: "event-1",
	}

	if err := svc.Delete(context.Background(), "event-1"); !errors.Is(err, ErrEventHasRegistration) {
		t.Errorf("expected ErrEventHasRegistration, got %v", err)
	}

	delete(m.registrations.registrations, "reg-1")
	if err := svc.Delete(context.Background(), "event-1"); err != nil {
		t.Errorf("delete without registrations should succeed: %v", err)
	}
}

func TestEventService_Get_CountsRegistrations(t *testing.T) {
	svc, m := setupTestEventService()
	seedEvent(m, "event-1", time.Now().Add(48*time.Hour), true)
	m.registrations.registrations["reg-1"] = &model.EventRegistration{ID: "reg-1", UserID: "a", EventID: "event-1"}
	m.registrations.registrations["reg-2"] = &model.EventRegistration{ID: "reg-2", UserID: "b", EventID: "event-1"}

	event, err := svc.Get(context.Background(), "event-1")
	if err != nil {
		t.Fatalf("Get should succeed: %v", err)
	}
	if event.RegistrationCount != 2 {
		t.Errorf("expected 2 registrations, got %d", event.RegistrationCount)
	}
}

func TestEventService_Photos(t *testing.T) {
	svc, m := setupTestEventService()
	seedEvent(m, "event-1", time.Now().Add(48*time.Hour), true)

	photo, err := svc.AddPhoto(context.Background(), "event-1", &dto.AddPhotoRequest{
		URL: "https://cdn.example.org/p.jpg",
	})
	if err != nil {
		t.Fatalf("AddPhoto should succeed: %v", err)
	}
	if err := svc.DeletePhoto(context.Background(), photo.ID); err != nil {
		t.Fatalf("DeletePhoto should succeed: %v", err)
	}
	if err := svc.DeletePhoto(context.Background(), photo.ID); !errors.Is(err, ErrPhotoNotFound) {
		t.Errorf("expected ErrPhotoNotFound, got %v", err)
	}
	if _, err := svc.AddPhoto(context.Background(), "ghost", &dto.AddPhotoRequest{URL: "https://x/y.jpg"}); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}

func TestEventService_CalendarFeed(t *testing.T) {
	svc, m := setupTestEventService()
	upcoming := seedEvent(m, "event-1", time.Now().Add(72*time.Hour), true)
	upcoming.Title = "Tournoi"
	upcoming.Location = "Gymnase"
	// Past and unpublished events stay out of the feed.
	seedEvent(m, "event-2", time.Now().Add(-72*time.Hour), true)
	hidden := seedEvent(m, "event-3", time.Now().Add(96*time.Hour), false)
	hidden.Title = "Secret"

	feed, err := svc.CalendarFeed(context.Background())
	if err != nil {
		t.Fatalf("CalendarFeed should succeed: %v", err)
	}
	if !strings.Contains(feed, "BEGIN:VCALENDAR") || !strings.Contains(feed, "END:VCALENDAR") {
		t.Error("feed is not a calendar")
	}
	if !strings.Contains(feed, "SUMMARY:Tournoi") {
		t.Error("expected the upcoming event in the feed")
	}
	if !strings.Contains(feed, "LOCATION:Gymnase") {
		t.Error("expected the event location in the feed")
	}
	if strings.Contains(feed, "Secret") {
		t.Error("unpublished events must not leak into the feed")
	}
	if strings.Count(feed, "BEGIN:VEVENT") != 1 {
		t.Errorf("expected exactly one event, got %d", strings.Count(feed, "BEGIN:VEVENT"))
	}
}
