package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"asso-portal/internal/dto"
	"asso-portal/internal/model"
	"asso-portal/internal/repository"
	pkgerrors "asso-portal/pkg/errors"
)

// ── Order business errors ──

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrdersDisabled      = errors.New("cafeteria ordering is disabled")
	ErrProductUnavailable  = errors.New("product is unavailable")
	ErrNotOrderOwner       = errors.New("order belongs to another member")
	ErrInvalidStatusChange = errors.New("invalid order status transition")

	// Transactional checks surfaced from the repository layer.
	ErrInsufficientStock   = pkgerrors.ErrInsufficientStock
	ErrOrderNotCancellable = pkgerrors.ErrOrderNotCancellable
)

// OrderService handles cafeteria orders: member carts, the admin
// point-of-sale counter and the preparation workflow.
type OrderService interface {
	Create(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*dto.OrderResponse, error)
	// CreatePOS records a counter sale. The order is attributed to the
	// acting admin and created directly in DELIVERED state.
	CreatePOS(ctx context.Context, adminID string, req *dto.CreatePOSOrderRequest) (*dto.OrderResponse, error)
	Get(ctx context.Context, id, callerID string, isAdmin bool) (*dto.OrderResponse, error)
	Cancel(ctx context.Context, id, callerID string, isAdmin bool) error
	UpdateStatus(ctx context.Context, id, status string) (*dto.OrderResponse, error)
	List(ctx context.Context, page *dto.PaginationRequest) ([]dto.OrderResponse, int64, error)
	ListMine(ctx context.Context, userID string) ([]dto.OrderResponse, error)
}

type orderService struct {
	repo     *repository.Repository
	settings SettingsService
	logger   *zap.Logger
}

// NewOrderService creates an OrderService.
func NewOrderService(repo *repository.Repository, settings SettingsService, logger *zap.Logger) OrderService {
	return &orderService{repo: repo, settings: settings, logger: logger}
}

func toOrderResponse(order *model.CafeteriaOrder) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for i := range order.Items {
		item := dto.OrderItemResponse{
			ID:        order.Items[i].ID,
			ProductID: order.Items[i].ProductID,
			Quantity:  order.Items[i].Quantity,
			Price:     order.Items[i].Price,
		}
		if order.Items[i].Product != nil {
			item.ProductName = order.Items[i].Product.Name
		}
		items = append(items, item)
	}
	resp := dto.OrderResponse{
		ID:            order.ID,
		Total:         order.Total,
		Status:        order.Status,
		Notes:         order.Notes,
		PaymentMethod: order.PaymentMethod,
		CustomerName:  order.CustomerName,
		Items:         items,
		CreatedAt:     order.CreatedAt.Format(time.RFC3339),
	}
	if order.User != nil {
		user := toUserResponse(order.User)
		resp.User = &user
	}
	return resp
}

// buildItems resolves the cart lines against the catalog. Prices are
// snapshotted from the current product price; the client never sends one.
func (s *orderService) buildItems(ctx context.Context, lines []dto.OrderItemRequest) ([]model.OrderItem, decimal.Decimal, error) {
	items := make([]model.OrderItem, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		product, err := s.repo.Product.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, decimal.Zero, ErrProductNotFound
			}
			s.logger.Error("failed to look up product", zap.Error(err))
			return nil, decimal.Zero, err
		}
		if !product.IsActive || !product.IsAvailable {
			return nil, decimal.Zero, ErrProductUnavailable
		}
		items = append(items, model.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return items, total, nil
}

// ────────────────────── Create ──────────────────────

func (s *orderService) Create(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if !s.settings.IsOrdersEnabled(ctx) {
		return nil, ErrOrdersDisabled
	}

	items, total, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	order := &model.CafeteriaOrder{
		UserID: userID,
		Total:  total,
		Status: model.OrderStatusPending,
		Notes:  req.Notes,
		Items:  items,
	}
	if err := s.repo.Order.CreateWithStock(ctx, order); err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			return nil, ErrInsufficientStock
		}
		s.logger.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("user_id", userID),
		zap.String("total", total.String()))
	resp := toOrderResponse(order)
	return &resp, nil
}

// CreatePOS skips the ordering flag: the counter keeps selling even when
// member self-ordering is switched off.
func (s *orderService) CreatePOS(ctx context.Context, adminID string, req *dto.CreatePOSOrderRequest) (*dto.OrderResponse, error) {
	items, total, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	order := &model.CafeteriaOrder{
		UserID:        adminID,
		Total:         total,
		Status:        model.OrderStatusDelivered,
		Notes:         req.Notes,
		PaymentMethod: &req.PaymentMethod,
		CustomerName:  req.CustomerName,
		Items:         items,
	}
	if err := s.repo.Order.CreateWithStock(ctx, order); err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			return nil, ErrInsufficientStock
		}
		s.logger.Error("failed to create pos order", zap.Error(err))
		return nil, err
	}

	s.logger.Info("pos sale recorded",
		zap.String("order_id", order.ID),
		zap.String("payment_method", req.PaymentMethod),
		zap.String("total", total.String()))
	resp := toOrderResponse(order)
	return &resp, nil
}

// ────────────────────── Read ──────────────────────

func (s *orderService) getOrder(ctx context.Context, id string) (*model.CafeteriaOrder, error) {
	order, err := s.repo.Order.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		s.logger.Error("failed to look up order", zap.Error(err))
		return nil, err
	}
	return order, nil
}

func (s *orderService) Get(ctx context.Context, id, callerID string, isAdmin bool) (*dto.OrderResponse, error) {
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != callerID {
		return nil, ErrNotOrderOwner
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

func (s *orderService) List(ctx context.Context, page *dto.PaginationRequest) ([]dto.OrderResponse, int64, error) {
	orders, total, err := s.repo.Order.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("failed to list orders", zap.Error(err))
		return nil, 0, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	return out, total, nil
}

func (s *orderService) ListMine(ctx context.Context, userID string) ([]dto.OrderResponse, error) {
	orders, err := s.repo.Order.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list member orders", zap.Error(err))
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	return out, nil
}

// ────────────────────── Lifecycle ──────────────────────

// Cancel voids a PENDING order and returns its quantities to stock.
// Members can only cancel their own orders; admins can cancel any.
func (s *orderService) Cancel(ctx context.Context, id, callerID string, isAdmin bool) error {
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && order.UserID != callerID {
		return ErrNotOrderOwner
	}
	if order.Status != model.OrderStatusPending {
		return ErrOrderNotCancellable
	}

	if err := s.repo.Order.CancelWithRestock(ctx, order); err != nil {
		if errors.Is(err, ErrOrderNotCancellable) {
			// The status moved between our read and the transaction.
			return ErrOrderNotCancellable
		}
		s.logger.Error("failed to cancel order", zap.Error(err))
		return err
	}
	s.logger.Info("order cancelled", zap.String("order_id", id))
	return nil
}

// UpdateStatus moves an order one step along the preparation chain.
// Cancellation goes through Cancel so stock is restored.
func (s *orderService) UpdateStatus(ctx context.Context, id, status string) (*dto.OrderResponse, error) {
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if status == model.OrderStatusCancelled {
		if order.Status != model.OrderStatusPending {
			return nil, ErrOrderNotCancellable
		}
		if err := s.repo.Order.CancelWithRestock(ctx, order); err != nil {
			if errors.Is(err, ErrOrderNotCancellable) {
				return nil, ErrOrderNotCancellable
			}
			s.logger.Error("failed to cancel order", zap.Error(err))
			return nil, err
		}
		order.Status = model.OrderStatusCancelled
		resp := toOrderResponse(order)
		return &resp, nil
	}

	if model.NextOrderStatus(order.Status) != status {
		return nil, ErrInvalidStatusChange
	}
	if err := s.repo.Order.UpdateStatus(ctx, id, status); err != nil {
		s.logger.Error("failed to update order status", zap.Error(err))
		return nil, err
	}
	order.Status = status
	resp := toOrderResponse(order)
	return &resp, nil
}
