package repository

import (
	"context"

	"gorm.io/gorm"

	"asso-portal/internal/model"
)

// PageRepository is the content-pages data-access interface.
type PageRepository interface {
	Create(ctx context.Context, page *model.Page) error
	GetByID(ctx context.Context, id string) (*model.Page, error)
	GetBySlug(ctx context.Context, slug string) (*model.Page, error)
	Update(ctx context.Context, page *model.Page) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Page, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
}

type pageRepo struct {
	db *gorm.DB
}

// NewPageRepo creates the GORM-backed PageRepository.
func NewPageRepo(db *gorm.DB) PageRepository {
	return &pageRepo{db: db}
}

func (r *pageRepo) Create(ctx context.Context, page *model.Page) error {
	return r.db.WithContext(ctx).Create(page).Error
}

func (r *pageRepo) GetByID(ctx context.Context, id string) (*model.Page, error) {
	var page model.Page
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&page).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *pageRepo) GetBySlug(ctx context.Context, slug string) (*model.Page, error) {
	var page model.Page
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&page).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *pageRepo) Update(ctx context.Context, page *model.Page) error {
	return r.db.WithContext(ctx).Save(page).Error
}

func (r *pageRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Page{}, "id = ?", id).Error
}

func (r *pageRepo) List(ctx context.Context) ([]model.Page, error) {
	var pages []model.Page
	err := r.db.WithContext(ctx).Order("slug ASC").Find(&pages).Error
	if err != nil {
		return nil, err
	}
	return pages, nil
}

// SlugExists reports whether another page already uses the slug.
func (r *pageRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&model.Page{}).Where("slug = ?", slug)
	if excludeID != "" {
		db = db.Where("id <> ?", excludeID)
	}
	if err := db.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
