package repository

import (
	"context"

	"gorm.io/gorm"

	"asso-portal/internal/model"
)

// RegistrationRepository is the event-registrations data-access interface.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *model.EventRegistration) error
	GetByID(ctx context.Context, id string) (*model.EventRegistration, error)
	GetByUserAndEvent(ctx context.Context, userID, eventID string) (*model.EventRegistration, error)
	Delete(ctx context.Context, id string) error
	ListByEvent(ctx context.Context, eventID string) ([]model.EventRegistration, error)
	ListByUser(ctx context.Context, userID string) ([]model.EventRegistration, error)
	CountByEvent(ctx context.Context, eventID string) (int64, error)
}

type registrationRepo struct {
	db *gorm.DB
}

// NewRegistrationRepo creates the GORM-backed RegistrationRepository.
func NewRegistrationRepo(db *gorm.DB) RegistrationRepository {
	return &registrationRepo{db: db}
}

func (r *registrationRepo) Create(ctx context.Context, reg *model.EventRegistration) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *registrationRepo) GetByID(ctx context.Context, id string) (*model.EventRegistration, error) {
	var reg model.EventRegistration
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("id = ?", id).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepo) GetByUserAndEvent(ctx context.Context, userID, eventID string) (*model.EventRegistration, error) {
	var reg model.EventRegistration
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.EventRegistration{}, "id = ?", id).Error
}

func (r *registrationRepo) ListByEvent(ctx context.Context, eventID string) ([]model.EventRegistration, error) {
	var regs []model.EventRegistration
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *registrationRepo) ListByUser(ctx context.Context, userID string) ([]model.EventRegistration, error) {
	var regs []model.EventRegistration
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *registrationRepo) CountByEvent(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.EventRegistration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}
