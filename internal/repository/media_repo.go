package repository

import (
	"context"

	"gorm.io/gorm"

	"asso-portal/internal/model"
)

// MediaRepository is the media-library data-access interface.
type MediaRepository interface {
	Create(ctx context.Context, media *model.Media) error
	GetByID(ctx context.Context, id string) (*model.Media, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]model.Media, int64, error)
	UpdateAlt(ctx context.Context, id, alt string) error
}

type mediaRepo struct {
	db *gorm.DB
}

// NewMediaRepo creates the GORM-backed MediaRepository.
func NewMediaRepo(db *gorm.DB) MediaRepository {
	return &mediaRepo{db: db}
}

func (r *mediaRepo) Create(ctx context.Context, media *model.Media) error {
	return r.db.WithContext(ctx).Create(media).Error
}

func (r *mediaRepo) GetByID(ctx context.Context, id string) (*model.Media, error) {
	var media model.Media
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&media).Error
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *mediaRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Media{}, "id = ?", id).Error
}

func (r *mediaRepo) List(ctx context.Context, offset, limit int) ([]model.Media, int64, error) {
	var items []model.Media
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Media{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *mediaRepo) UpdateAlt(ctx context.Context, id, alt string) error {
	return r.db.WithContext(ctx).Model(&model.Media{}).
		Where("id = ?", id).
		Update("alt", alt).Error
}
