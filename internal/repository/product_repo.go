package repository

import (
	"context"

	"gorm.io/gorm"

	"asso-portal/internal/model"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	CategoryID  *string
	IsActive    *bool
	IsAvailable *bool
}

// CatalogStats are the admin dashboard counters for the cafeteria catalog.
type CatalogStats struct {
	TotalProducts     int64 `json:"total_products"`
	AvailableProducts int64 `json:"available_products"`
	OutOfStock        int64 `json:"out_of_stock"`
	LowStock          int64 `json:"low_stock"`
	Categories        int64 `json:"categories"`
}

// ProductRepository is the products data-access interface.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id string) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	ListAvailable(ctx context.Context) ([]model.Product, error)
	Stats(ctx context.Context) (*CatalogStats, error)
}

type productRepo struct {
	db *gorm.DB
}

// NewProductRepo creates the GORM-backed ProductRepository.
func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) List(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	db := r.db.WithContext(ctx).Preload("Category")

	if filter.CategoryID != nil {
		db = db.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IsAvailable != nil {
		db = db.Where("is_available = ?", *filter.IsAvailable)
	}

	var products []model.Product
	err := db.Order("display_order ASC, name ASC").Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ListAvailable returns products a member can actually order: active,
// available and in stock.
func (r *productRepo) ListAvailable(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("is_active = ? AND is_available = ? AND stock > 0", true, true).
		Order("display_order ASC, name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

const lowStockThreshold = 5

func (r *productRepo) Stats(ctx context.Context) (*CatalogStats, error) {
	stats := &CatalogStats{}
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Product{}).
		Where("is_active = ?", true).
		Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Product{}).
		Where("is_active = ? AND is_available = ? AND stock > 0", true, true).
		Count(&stats.AvailableProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Product{}).
		Where("is_active = ? AND stock = 0", true).
		Count(&stats.OutOfStock).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Product{}).
		Where("is_active = ? AND stock > 0 AND stock <= ?", true, lowStockThreshold).
		Count(&stats.LowStock).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.ProductCategory{}).
		Where("is_active = ?", true).
		Count(&stats.Categories).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
