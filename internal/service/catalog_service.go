package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"asso-portal/internal/dto"
	"asso-portal/internal/model"
	"asso-portal/internal/repository"
)

// ── Catalog business errors ──

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryHasProducts = errors.New("category still has products")
	ErrProductNotFound     = errors.New("product not found")
	ErrNegativeStock       = errors.New("stock cannot go negative")
)

// CatalogService manages the cafeteria's categories and products.
type CatalogService interface {
	CreateCategory(ctx context.Context, req *dto.CategoryRequest) (*model.ProductCategory, error)
	UpdateCategory(ctx context.Context, id string, req *dto.CategoryRequest) (*model.ProductCategory, error)
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]model.ProductCategory, error)
	// Menu is the public cafeteria menu: active categories with their
	// active products, in display order.
	Menu(ctx context.Context) ([]model.ProductCategory, error)

	CreateProduct(ctx context.Context, req *dto.ProductRequest) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, req *dto.ProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context, req *dto.ProductListRequest) ([]model.Product, error)
	// ListAvailableProducts are the products a member can order right now:
	// active, available and in stock.
	ListAvailableProducts(ctx context.Context) ([]model.Product, error)
	SetStock(ctx context.Context, id string, stock int) (*model.Product, error)
	AdjustStock(ctx context.Context, id string, delta int) (*model.Product, error)
	SetAvailability(ctx context.Context, id string, available bool) error
	Stats(ctx context.Context) (*repository.CatalogStats, error)
}

type catalogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(repo *repository.Repository, logger *zap.Logger) CatalogService {
	return &catalogService{repo: repo, logger: logger}
}

// ────────────────────── Categories ──────────────────────

func (s *catalogService) CreateCategory(ctx context.Context, req *dto.CategoryRequest) (*model.ProductCategory, error) {
	category := &model.ProductCategory{
		Name:         req.Name,
		Description:  req.Description,
		Image:        req.Image,
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if err := s.repo.Category.Create(ctx, category); err != nil {
		s.logger.Error("failed to create category", zap.Error(err))
		return nil, err
	}
	return category, nil
}

func (s *catalogService) getCategory(ctx context.Context, id string) (*model.ProductCategory, error) {
	category, err := s.repo.Category.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		s.logger.Error("failed to look up category", zap.Error(err))
		return nil, err
	}
	return category, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id string, req *dto.CategoryRequest) (*model.ProductCategory, error) {
	category, err := s.getCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Name = req.Name
	category.Description = req.Description
	category.Image = req.Image
	category.DisplayOrder = req.DisplayOrder
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if err := s.repo.Category.Update(ctx, category); err != nil {
		s.logger.Error("failed to update category", zap.Error(err))
		return nil, err
	}
	return category, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.getCategory(ctx, id); err != nil {
		return err
	}
	count, err := s.repo.Category.CountProducts(ctx, id)
	if err != nil {
		s.logger.Error("failed to count category products", zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrCategoryHasProducts
	}
	return s.repo.Category.Delete(ctx, id)
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.ProductCategory, error) {
	return s.repo.Category.List(ctx)
}

func (s *catalogService) Menu(ctx context.Context) ([]model.ProductCategory, error) {
	return s.repo.Category.ListActive(ctx)
}

// ────────────────────── Products ──────────────────────

func (s *catalogService) CreateProduct(ctx context.Context, req *dto.ProductRequest) (*model.Product, error) {
	if req.CategoryID != nil {
		if _, err := s.getCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}
	product := &model.Product{
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Description:  req.Description,
		Image:        req.Image,
		Price:        req.Price,
		CostPrice:    req.CostPrice,
		Stock:        req.Stock,
		DisplayOrder: req.DisplayOrder,
		IsAvailable:  req.Stock > 0,
		IsActive:     true,
	}
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if err := s.repo.Product.Create(ctx, product); err != nil {
		s.logger.Error("failed to create product", zap.Error(err))
		return nil, err
	}
	return product, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.repo.Product.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		s.logger.Error("failed to look up product", zap.Error(err))
		return nil, err
	}
	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id string, req *dto.ProductRequest) (*model.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if _, err := s.getCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}
	product.CategoryID = req.CategoryID
	product.Name = req.Name
	product.Description = req.Description
	product.Image = req.Image
	product.Price = req.Price
	product.CostPrice = req.CostPrice
	product.Stock = req.Stock
	product.DisplayOrder = req.DisplayOrder
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if err := s.repo.Product.Update(ctx, product); err != nil {
		s.logger.Error("failed to update product", zap.Error(err))
		return nil, err
	}
	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.repo.Product.Delete(ctx, id)
}

func (s *catalogService) ListProducts(ctx context.Context, req *dto.ProductListRequest) ([]model.Product, error) {
	return s.repo.Product.List(ctx, repository.ProductFilter{
		CategoryID:  req.CategoryID,
		IsActive:    req.IsActive,
		IsAvailable: req.IsAvailable,
	})
}

func (s *catalogService) ListAvailableProducts(ctx context.Context) ([]model.Product, error) {
	return s.repo.Product.ListAvailable(ctx)
}

// ────────────────────── Stock ──────────────────────

// SetStock overwrites the stock level. Availability follows the new level:
// a restock from zero re-enables the product, a set to zero disables it.
func (s *catalogService) SetStock(ctx context.Context, id string, stock int) (*model.Product, error) {
	if stock < 0 {
		return nil, ErrNegativeStock
	}
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Stock = stock
	product.IsAvailable = stock > 0
	if err := s.repo.Product.Update(ctx, product); err != nil {
		s.logger.Error("failed to set stock", zap.Error(err))
		return nil, err
	}
	s.logger.Info("stock set", zap.String("product_id", id), zap.Int("stock", stock))
	return product, nil
}

// AdjustStock shifts the stock by a signed delta. A delta that would take
// the level below zero is rejected outright.
func (s *catalogService) AdjustStock(ctx context.Context, id string, delta int) (*model.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	next := product.Stock + delta
	if next < 0 {
		return nil, ErrNegativeStock
	}
	return s.SetStock(ctx, id, next)
}

func (s *catalogService) SetAvailability(ctx context.Context, id string, available bool) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	product.IsAvailable = available
	if err := s.repo.Product.Update(ctx, product); err != nil {
		s.logger.Error("failed to toggle availability", zap.Error(err))
		return err
	}
	return nil
}

func (s *catalogService) Stats(ctx context.Context) (*repository.CatalogStats, error) {
	stats, err := s.repo.Product.Stats(ctx)
	if err != nil {
		s.logger.Error("failed to compute catalog stats", zap.Error(err))
		return nil, err
	}
	return stats, nil
}
