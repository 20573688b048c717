package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"asso-portal/internal/dto"
	"asso-portal/internal/model"
)

func setupTestCatalogService() (CatalogService, *mocks) {
	repo, m := newTestRepository()
	svc := NewCatalogService(repo, zap.NewNop())
	return svc, m
}

func TestCatalogService_DeleteCategory_Guarded(t *testing.T) {
	svc, m := setupTestCatalogService()
	m.categories.categories["cat-1"] = &model.ProductCategory{ID: "cat-1", Name: "Boissons", IsActive: true}
	catID := "cat-1"
	m.products.products["prod-1"] = &model.Product{
		ID: "prod-1", Name: "Coffee", CategoryID: &catID,
		Price: decimal.NewFromFloat(1.5), IsActive: true,
	}

	if err := svc.DeleteCategory(context.Background(), "cat-1"); !errors.Is(err, ErrCategoryHasProducts) {
		t.Errorf("expected ErrCategoryHasProducts, got %v", err)
	}

	delete(m.products.products, "prod-1")
	if err := svc.DeleteCategory(context.Background(), "cat-1"); err != nil {
		t.Errorf("empty category should delete: %v", err)
	}
}

func TestCatalogService_SetStock_DrivesAvailability(t *testing.T) {
	svc, m := setupTestCatalogService()
	m.products.products["prod-1"] = &model.Product{
		ID: "prod-1", Name: "Coffee", Price: decimal.NewFromFloat(1.5),
		Stock: 0, IsAvailable: false, IsActive: true,
	}

	product, err := svc.SetStock(context.Background(), "prod-1", 8)
	if err != nil {
		t.Fatalf("SetStock should succeed: %v", err)
	}
	if !product.IsAvailable {
		t.Error("restock must re-enable the product")
	}

	product, err = svc.SetStock(context.Background(), "prod-1", 0)
	if err != nil {
		t.Fatalf("SetStock to zero should succeed: %v", err)
	}
	if product.IsAvailable {
		t.Error("zero stock must disable the product")
	}

	if _, err := svc.SetStock(context.Background(), "prod-1", -1); !errors.Is(err, ErrNegativeStock) {
		t.Errorf("expected ErrNegativeStock, got %v", err)
	}
}

func TestCatalogService_AdjustStock(t *testing.T) {
	svc, m := setupTestCatalogService()
	m.products.products["prod-1"] = &model.Product{
		ID: "prod-1", Name: "Coffee", Price: decimal.NewFromFloat(1.5),
		Stock: 4, IsAvailable: true, IsActive: true,
	}

	product, err := svc.AdjustStock(context.Background(), "prod-1", -3)
	if err != nil {
		t.Fatalf("AdjustStock should succeed: %v", err)
	}
	if product.Stock != 1 {
		t.Errorf("expected stock 1, got %d", product.Stock)
	}

	if _, err := svc.AdjustStock(context.Background(), "prod-1", -2); !errors.Is(err, ErrNegativeStock) {
		t.Errorf("expected ErrNegativeStock, got %v", err)
	}
	if got := m.products.products["prod-1"].Stock; got != 1 {
		t.Errorf("refused adjustment must not change stock, got %d", got)
	}
}

func TestCatalogService_ListAvailableProducts(t *testing.T) {
	svc, m := setupTestCatalogService()
	m.products.products["a"] = &model.Product{ID: "a", Name: "Café", Stock: 3, IsActive: true, IsAvailable: true}
	m.products.products["b"] = &model.Product{ID: "b", Name: "Thé", Stock: 0, IsActive: true, IsAvailable: true}
	m.products.products["c"] = &model.Product{ID: "c", Name: "Jus", Stock: 5, IsActive: true, IsAvailable: false}
	m.products.products["d"] = &model.Product{ID: "d", Name: "Soda", Stock: 5, IsActive: false, IsAvailable: true}

	products, err := svc.ListAvailableProducts(context.Background())
	if err != nil {
		t.Fatalf("ListAvailableProducts should succeed: %v", err)
	}
	if len(products) != 1 || products[0].ID != "a" {
		t.Errorf("expected only the active, available and stocked product, got %+v", products)
	}
}

func TestCatalogService_CreateProduct_UnknownCategory(t *testing.T) {
	svc, _ := setupTestCatalogService()
	ghost := "ghost"

	_, err := svc.CreateProduct(context.Background(), &dto.ProductRequest{
		Name: "Coffee", Price: decimal.NewFromFloat(1.5), CategoryID: &ghost,
	})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCatalogService_Stats(t *testing.T) {
	svc, m := setupTestCatalogService()
	m.products.products["a"] = &model.Product{ID: "a", Stock: 0, IsActive: true, IsAvailable: false}
	m.products.products["b"] = &model.Product{ID: "b", Stock: 3, IsActive: true, IsAvailable: true}
	m.products.products["c"] = &model.Product{ID: "c", Stock: 50, IsActive: true, IsAvailable: true}
	m.products.products["d"] = &model.Product{ID: "d", Stock: 9, IsActive: false, IsAvailable: false}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats should succeed: %v", err)
	}
	if stats.TotalProducts != 3 {
		t.Errorf("inactive products must not count, got %d", stats.TotalProducts)
	}
	if stats.OutOfStock != 1 || stats.LowStock != 1 {
		t.Errorf("unexpected stock counters: %+v", stats)
	}
}
