//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"asso-portal/internal/model"
	"asso-portal/internal/repository"
	pkgerrors "asso-portal/pkg/errors"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=asso password=asso_password dbname=asso_portal_test sslmode=disable TimeZone=Europe/Paris"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot connect to the test database: %v\n", err)
		os.Exit(1)
	}

	err = testDB.AutoMigrate(
		&model.User{},
		&model.Event{},
		&model.EventPhoto{},
		&model.EventRegistration{},
		&model.ProductCategory{},
		&model.Product{},
		&model.CafeteriaOrder{},
		&model.OrderItem{},
		&model.Page{},
		&model.Setting{},
		&model.Media{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate failed: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// setupTestData creates a user and a stocked product, returning a cleanup
// function that removes everything the test created.
func setupTestData(t *testing.T) (user *model.User, product *model.Product, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	user = &model.User{
		Name:         "Test Member",
		Email:        fmt.Sprintf("member%d@example.org", time.Now().UnixNano()),
		PasswordHash: "$2a$10$placeholder",
		Role:         model.RoleMember,
		IsActive:     true,
	}
	if err := testDB.WithContext(ctx).Create(user).Error; err != nil {
		t.Fatalf("creating user failed: %v", err)
	}

	product = &model.Product{
		Name:        fmt.Sprintf("Café-%d", time.Now().UnixNano()),
		Price:       decimal.RequireFromString("1.20"),
		Stock:       3,
		IsAvailable: true,
		IsActive:    true,
	}
	if err := testDB.WithContext(ctx).Create(product).Error; err != nil {
		t.Fatalf("creating product failed: %v", err)
	}

	cleanup = func() {
		testDB.Where("product_id = ?", product.ID).Delete(&model.OrderItem{})
		testDB.Where("user_id = ?", user.ID).Delete(&model.CafeteriaOrder{})
		testDB.Where("id = ?", product.ID).Delete(&model.Product{})
		testDB.Where("user_id = ?", user.ID).Delete(&model.EventRegistration{})
		testDB.Where("id = ?", user.ID).Delete(&model.User{})
	}
	return
}

func currentStock(t *testing.T, productID string) int {
	t.Helper()
	var p model.Product
	if err := testDB.First(&p, "id = ?", productID).Error; err != nil {
		t.Fatalf("loading product failed: %v", err)
	}
	return p.Stock
}

// ═══════════════════════════════════════════════════════════
// Test: Transactional Stock Decrement
// ═══════════════════════════════════════════════════════════

func TestOrderRepo_CreateWithStock_Decrements(t *testing.T) {
	user, product, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	order := &model.CafeteriaOrder{
		UserID: user.ID,
		Total:  decimal.RequireFromString("2.40"),
		Status: model.OrderStatusPending,
		Items: []model.OrderItem{
			{ProductID: product.ID, Quantity: 2, Price: product.Price},
		},
	}
	if err := repo.Order.CreateWithStock(ctx, order); err != nil {
		t.Fatalf("CreateWithStock failed: %v", err)
	}
	if order.ID == "" {
		t.Fatal("expected the order id to be populated")
	}
	if got := currentStock(t, product.ID); got != 1 {
		t.Errorf("expected stock 1 after ordering 2 of 3, got %d", got)
	}
}

func TestOrderRepo_CreateWithStock_InsufficientRollsBack(t *testing.T) {
	user, product, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	order := &model.CafeteriaOrder{
		UserID: user.ID,
		Total:  decimal.RequireFromString("6.00"),
		Status: model.OrderStatusPending,
		Items: []model.OrderItem{
			{ProductID: product.ID, Quantity: 5, Price: product.Price},
		},
	}
	err := repo.Order.CreateWithStock(ctx, order)
	if !errors.Is(err, pkgerrors.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if got := currentStock(t, product.ID); got != 3 {
		t.Errorf("expected stock untouched at 3, got %d", got)
	}

	var count int64
	testDB.Model(&model.CafeteriaOrder{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected no order row after rollback, found %d", count)
	}
}

func TestOrderRepo_CancelWithRestock(t *testing.T) {
	user, product, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	order := &model.CafeteriaOrder{
		UserID: user.ID,
		Total:  decimal.RequireFromString("2.40"),
		Status: model.OrderStatusPending,
		Items: []model.OrderItem{
			{ProductID: product.ID, Quantity: 2, Price: product.Price},
		},
	}
	if err := repo.Order.CreateWithStock(ctx, order); err != nil {
		t.Fatalf("CreateWithStock failed: %v", err)
	}

	placed, err := repo.Order.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if err := repo.Order.CancelWithRestock(ctx, placed); err != nil {
		t.Fatalf("CancelWithRestock failed: %v", err)
	}

	if got := currentStock(t, product.ID); got != 3 {
		t.Errorf("expected stock restored to 3, got %d", got)
	}
	cancelled, err := repo.Order.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetByID after cancel failed: %v", err)
	}
	if cancelled.Status != model.OrderStatusCancelled {
		t.Errorf("expected status CANCELLED, got %s", cancelled.Status)
	}
}

func TestOrderRepo_CancelWithRestock_OnlyOnce(t *testing.T) {
	user, product, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	order := &model.CafeteriaOrder{
		UserID: user.ID,
		Total:  decimal.RequireFromString("2.40"),
		Status: model.OrderStatusPending,
		Items: []model.OrderItem{
			{ProductID: product.ID, Quantity: 2, Price: product.Price},
		},
	}
	if err := repo.Order.CreateWithStock(ctx, order); err != nil {
		t.Fatalf("CreateWithStock failed: %v", err)
	}

	// Two callers holding the same PENDING snapshot: only the first cancel
	// may restock, the second must bounce off the conditional update.
	placed, err := repo.Order.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if err := repo.Order.CancelWithRestock(ctx, placed); err != nil {
		t.Fatalf("first cancel failed: %v", err)
	}
	if err := repo.Order.CancelWithRestock(ctx, placed); !errors.Is(err, pkgerrors.ErrOrderNotCancellable) {
		t.Fatalf("expected ErrOrderNotCancellable on the second cancel, got %v", err)
	}

	if got := currentStock(t, product.ID); got != 3 {
		t.Errorf("expected stock restored exactly once to 3, got %d", got)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Registration Uniqueness
// ═══════════════════════════════════════════════════════════

func TestRegistrationRepo_UniquePair(t *testing.T) {
	user, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	event := &model.Event{
		Title:       "Tournoi",
		Description: "Tournoi annuel",
		Date:        time.Now().Add(72 * time.Hour),
		Location:    "Gymnase",
		IsPublished: true,
	}
	if err := testDB.WithContext(ctx).Create(event).Error; err != nil {
		t.Fatalf("creating event failed: %v", err)
	}
	defer func() {
		testDB.Where("event_id = ?", event.ID).Delete(&model.EventRegistration{})
		testDB.Where("id = ?", event.ID).Delete(&model.Event{})
	}()

	first := &model.EventRegistration{UserID: user.ID, EventID: event.ID}
	if err := repo.Registration.Create(ctx, first); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	dup := &model.EventRegistration{UserID: user.ID, EventID: event.ID}
	// The service maps this sentinel to the already-registered error, so
	// the translated duplicate-key value is part of the contract.
	if err := repo.Registration.Create(ctx, dup); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey for the duplicate registration, got %v", err)
	}

	count, err := repo.Registration.CountByEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("CountByEvent failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 registration, got %d", count)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Settings Upsert
// ═══════════════════════════════════════════════════════════

func TestSettingRepo_Upsert(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	key := fmt.Sprintf("test_key_%d", time.Now().UnixNano())
	defer testDB.Where("key = ?", key).Delete(&model.Setting{})

	if err := repo.Setting.Upsert(ctx, key, "first"); err != nil {
		t.Fatalf("insert upsert failed: %v", err)
	}
	if err := repo.Setting.Upsert(ctx, key, "second"); err != nil {
		t.Fatalf("update upsert failed: %v", err)
	}

	setting, err := repo.Setting.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if setting.Value != "second" {
		t.Errorf("expected value %q, got %q", "second", setting.Value)
	}
}
