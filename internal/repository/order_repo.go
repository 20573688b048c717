package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"asso-portal/internal/model"
	pkgerrors "asso-portal/pkg/errors"
)

// OrderRepository is the cafeteria-orders data-access interface.
type OrderRepository interface {
	// CreateWithStock inserts the order with its items and decrements the
	// stock of every referenced product in one transaction. A product whose
	// stock no longer covers its line aborts the whole transaction with
	// pkg/errors.ErrInsufficientStock: no order row, no partial decrement.
	CreateWithStock(ctx context.Context, order *model.CafeteriaOrder) error
	// CancelWithRestock marks the order CANCELLED and gives every ordered
	// quantity back to its product, in one transaction. The status update
	// only matches a PENDING row; anything else aborts with
	// pkg/errors.ErrOrderNotCancellable so concurrent cancels cannot
	// restock the same order twice.
	CancelWithRestock(ctx context.Context, order *model.CafeteriaOrder) error
	GetByID(ctx context.Context, id string) (*model.CafeteriaOrder, error)
	UpdateStatus(ctx context.Context, id, status string) error
	List(ctx context.Context, offset, limit int) ([]model.CafeteriaOrder, int64, error)
	ListByUser(ctx context.Context, userID string) ([]model.CafeteriaOrder, error)
	ListByStatusBetween(ctx context.Context, status string, from, to time.Time) ([]model.CafeteriaOrder, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]model.CafeteriaOrder, error)
}

type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepo creates the GORM-backed OrderRepository.
func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) CreateWithStock(ctx context.Context, order *model.CafeteriaOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		// Conditional decrement: zero rows affected means the stock check
		// failed inside the transaction, which closes the race between
		// validation and decrement under concurrent checkouts.
		for _, item := range order.Items {
			res := tx.Model(&model.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return pkgerrors.ErrInsufficientStock
			}
		}

		return nil
	})
}

func (r *orderRepo) CancelWithRestock(ctx context.Context, order *model.CafeteriaOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Conditional on PENDING: zero rows affected means someone else
		// already moved the order on, and restocking again would inflate
		// the stock.
		res := tx.Model(&model.CafeteriaOrder{}).
			Where("id = ? AND status = ?", order.ID, model.OrderStatusPending).
			Update("status", model.OrderStatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return pkgerrors.ErrOrderNotCancellable
		}

		for _, item := range order.Items {
			if err := tx.Model(&model.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (*model.CafeteriaOrder, error) {
	var order model.CafeteriaOrder
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Items.Product").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).Model(&model.CafeteriaOrder{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *orderRepo) List(ctx context.Context, offset, limit int) ([]model.CafeteriaOrder, int64, error) {
	var orders []model.CafeteriaOrder
	var total int64

	db := r.db.WithContext(ctx).Model(&model.CafeteriaOrder{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("User").
		Preload("Items.Product").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID string) ([]model.CafeteriaOrder, error) {
	var orders []model.CafeteriaOrder
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepo) ListByStatusBetween(ctx context.Context, status string, from, to time.Time) ([]model.CafeteriaOrder, error) {
	var orders []model.CafeteriaOrder
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Where("status = ? AND created_at BETWEEN ? AND ?", status, from, to).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepo) ListBetween(ctx context.Context, from, to time.Time) ([]model.CafeteriaOrder, error) {
	var orders []model.CafeteriaOrder
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Items.Product").
		Where("created_at BETWEEN ? AND ?", from, to).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
