package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"asso-portal/internal/model"
)

// EventRepository is the events data-access interface.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]model.Event, int64, error)
	ListPublished(ctx context.Context) ([]model.Event, error)
	ListPublishedUpcoming(ctx context.Context, now time.Time) ([]model.Event, error)
	AddPhoto(ctx context.Context, photo *model.EventPhoto) error
	GetPhoto(ctx context.Context, id string) (*model.EventPhoto, error)
	DeletePhoto(ctx context.Context, id string) error
}

type eventRepo struct {
	db *gorm.DB
}

// NewEventRepo creates the GORM-backed EventRepository.
func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Preload("Photos").
		Where("id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) Update(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Event{}, "id = ?", id).Error
}

func (r *eventRepo) List(ctx context.Context, offset, limit int) ([]model.Event, int64, error) {
	var events []model.Event
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Event{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("date DESC").
		Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (r *eventRepo) ListPublished(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("date ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepo) ListPublishedUpcoming(ctx context.Context, now time.Time) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("is_published = ? AND date >= ?", true, now).
		Order("date ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepo) AddPhoto(ctx context.Context, photo *model.EventPhoto) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *eventRepo) GetPhoto(ctx context.Context, id string) (*model.EventPhoto, error) {
	var photo model.EventPhoto
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&photo).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *eventRepo) DeletePhoto(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.EventPhoto{}, "id = ?", id).Error
}
