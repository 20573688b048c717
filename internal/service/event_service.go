package service

import (
	"context"
	"errors"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"asso-portal/internal/dto"
	"asso-portal/internal/model"
	"asso-portal/internal/repository"
)

// ── Event business errors ──

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrEventHasRegistration = errors.New("event still has registrations")
	ErrPhotoNotFound        = errors.New("photo not found")
)

// EventService manages events, their photo galleries and the public
// calendar feed.
type EventService interface {
	Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	Get(ctx context.Context, id string) (*dto.EventResponse, error)
	Update(ctx context.Context, id string, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page *dto.PaginationRequest) ([]dto.EventResponse, int64, error)
	ListPublished(ctx context.Context) ([]dto.EventResponse, error)
	SetPublished(ctx context.Context, id string, published bool) error
	AddPhoto(ctx context.Context, eventID string, req *dto.AddPhotoRequest) (*dto.PhotoResponse, error)
	DeletePhoto(ctx context.Context, photoID string) error
	// CalendarFeed renders the published upcoming events as an iCalendar
	// document for subscription from external calendar apps.
	CalendarFeed(ctx context.Context) (string, error)
}

type eventService struct {
	repo    *repository.Repository
	baseURL string
	logger  *zap.Logger
}

// NewEventService creates an EventService. baseURL scopes the calendar
// feed's event UIDs to this deployment.
func NewEventService(repo *repository.Repository, baseURL string, logger *zap.Logger) EventService {
	return &eventService{repo: repo, baseURL: baseURL, logger: logger}
}

func (s *eventService) toResponse(ctx context.Context, event *model.Event) dto.EventResponse {
	count, err := s.repo.Registration.CountByEvent(ctx, event.ID)
	if err != nil {
		s.logger.Warn("failed to count registrations", zap.String("event_id", event.ID), zap.Error(err))
	}
	photos := make([]dto.PhotoResponse, 0, len(event.Photos))
	for i := range event.Photos {
		photos = append(photos, dto.PhotoResponse{
			ID:      event.Photos[i].ID,
			URL:     event.Photos[i].URL,
			Caption: event.Photos[i].Caption,
		})
	}
	return dto.EventResponse{
		ID:                event.ID,
		Title:             event.Title,
		Description:       event.Description,
		Date:              event.Date,
		Location:          event.Location,
		Image:             event.Image,
		PaymentLink:       event.PaymentLink,
		IsPublished:       event.IsPublished,
		RegistrationCount: count,
		Photos:            photos,
		CreatedAt:         event.CreatedAt.Format(time.RFC3339),
	}
}

func (s *eventService) getEvent(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("failed to look up event", zap.Error(err))
		return nil, err
	}
	return event, nil
}

// ────────────────────── CRUD ──────────────────────

func (s *eventService) Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	event := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		Image:       req.Image,
		PaymentLink: req.PaymentLink,
		IsPublished: req.IsPublished,
	}
	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.logger.Error("failed to create event", zap.Error(err))
		return nil, err
	}
	resp := s.toResponse(ctx, event)
	return &resp, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*dto.EventResponse, error) {
	event, err := s.getEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(ctx, event)
	return &resp, nil
}

func (s *eventService) Update(ctx context.Context, id string, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	event, err := s.getEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	event.Title = req.Title
	event.Description = req.Description
	event.Date = req.Date
	event.Location = req.Location
	event.Image = req.Image
	event.PaymentLink = req.PaymentLink
	event.IsPublished = req.IsPublished
	if err := s.repo.Event.Update(ctx, event); err != nil {
		s.logger.Error("failed to update event", zap.Error(err))
		return nil, err
	}
	resp := s.toResponse(ctx, event)
	return &resp, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	if _, err := s.getEvent(ctx, id); err != nil {
		return err
	}
	count, err := s.repo.Registration.CountByEvent(ctx, id)
	if err != nil {
		s.logger.Error("failed to count registrations", zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrEventHasRegistration
	}
	if err := s.repo.Event.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete event", zap.Error(err))
		return err
	}
	return nil
}

func (s *eventService) List(ctx context.Context, page *dto.PaginationRequest) ([]dto.EventResponse, int64, error) {
	events, total, err := s.repo.Event.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("failed to list events", zap.Error(err))
		return nil, 0, err
	}
	out := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, s.toResponse(ctx, &events[i]))
	}
	return out, total, nil
}

func (s *eventService) ListPublished(ctx context.Context) ([]dto.EventResponse, error) {
	events, err := s.repo.Event.ListPublished(ctx)
	if err != nil {
		s.logger.Error("failed to list published events", zap.Error(err))
		return nil, err
	}
	out := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, s.toResponse(ctx, &events[i]))
	}
	return out, nil
}

func (s *eventService) SetPublished(ctx context.Context, id string, published bool) error {
	event, err := s.getEvent(ctx, id)
	if err != nil {
		return err
	}
	event.IsPublished = published
	if err := s.repo.Event.Update(ctx, event); err != nil {
		s.logger.Error("failed to toggle publication", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Photos ──────────────────────

func (s *eventService) AddPhoto(ctx context.Context, eventID string, req *dto.AddPhotoRequest) (*dto.PhotoResponse, error) {
	if _, err := s.getEvent(ctx, eventID); err != nil {
		return nil, err
	}
	photo := &model.EventPhoto{
		EventID: eventID,
		URL:     req.URL,
		Caption: req.Caption,
	}
	if err := s.repo.Event.AddPhoto(ctx, photo); err != nil {
		s.logger.Error("failed to add photo", zap.Error(err))
		return nil, err
	}
	return &dto.PhotoResponse{ID: photo.ID, URL: photo.URL, Caption: photo.Caption}, nil
}

func (s *eventService) DeletePhoto(ctx context.Context, photoID string) error {
	if _, err := s.repo.Event.GetPhoto(ctx, photoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPhotoNotFound
		}
		s.logger.Error("failed to look up photo", zap.Error(err))
		return err
	}
	if err := s.repo.Event.DeletePhoto(ctx, photoID); err != nil {
		s.logger.Error("failed to delete photo", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Calendar feed ──────────────────────

func (s *eventService) CalendarFeed(ctx context.Context) (string, error) {
	events, err := s.repo.Event.ListPublishedUpcoming(ctx, time.Now())
	if err != nil {
		s.logger.Error("failed to list upcoming events", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//asso-portal//events//FR")

	for i := range events {
		event := &events[i]
		entry := cal.AddEvent(event.ID + "@" + s.baseURL)
		entry.SetDtStampTime(event.CreatedAt)
		entry.SetStartAt(event.Date)
		// Events carry no explicit duration; block off two hours.
		entry.SetEndAt(event.Date.Add(2 * time.Hour))
		entry.SetSummary(event.Title)
		entry.SetLocation(event.Location)
		entry.SetDescription(event.Description)
	}

	return cal.Serialize(), nil
}
