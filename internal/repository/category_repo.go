package repository

import (
	"context"

	"gorm.io/gorm"

	"asso-portal/internal/model"
)

// CategoryRepository is the product-categories data-access interface.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.ProductCategory) error
	GetByID(ctx context.Context, id string) (*model.ProductCategory, error)
	Update(ctx context.Context, category *model.ProductCategory) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.ProductCategory, error)
	ListActive(ctx context.Context) ([]model.ProductCategory, error)
	CountProducts(ctx context.Context, id string) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

type categoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepo creates the GORM-backed CategoryRepository.
func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, category *model.ProductCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (*model.ProductCategory, error) {
	var category model.ProductCategory
	err := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, name ASC")
		}).
		Where("id = ?", id).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) Update(ctx context.Context, category *model.ProductCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.ProductCategory{}, "id = ?", id).Error
}

func (r *categoryRepo) List(ctx context.Context) ([]model.ProductCategory, error) {
	var categories []model.ProductCategory
	err := r.db.WithContext(ctx).
		Order("display_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// ListActive returns active categories with their active products, ordered
// for the public menu.
func (r *categoryRepo) ListActive(ctx context.Context) ([]model.ProductCategory, error) {
	var categories []model.ProductCategory
	err := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("display_order ASC, name ASC")
		}).
		Where("is_active = ?", true).
		Order("display_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepo) CountProducts(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("category_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *categoryRepo) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ProductCategory{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}
