package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"asso-portal/internal/dto"
	"asso-portal/internal/service"
	"asso-portal/pkg/response"
)

// OrderHandler serves member cafeteria orders and the admin point of sale.
type OrderHandler struct {
	orderSvc service.OrderService
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(orderSvc service.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// CreateOrder handles POST /api/v1/orders.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	order, err := h.orderSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleOrderError(c, err)
		return
	}
	response.Created(c, order)
}

// ListMyOrders handles GET /api/v1/orders.
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	orders, err := h.orderSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.handleOrderError(c, err)
		return
	}
	response.OK(c, orders)
}

// GetOrder handles GET /api/v1/orders/:id.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	order, err := h.orderSvc.Get(c.Request.Context(), c.Param("id"), userID, CallerIsAdmin(c))
	if err != nil {
		h.handleOrderError(c, err)
		return
	}
	response.OK(c, order)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
//
// Members may only cancel their own pending orders; stock is restored.
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.orderSvc.Cancel(c.Request.Context(), c.Param("id"), userID, CallerIsAdmin(c)); err != nil {
		h.handleOrderError(c, err)
		return
	}
	response.OK(c, nil)
}

// ── Admin ──

// ListOrders handles GET /api/v1/admin/orders.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "invalid pagination parameters")
		return
	}

	orders, total, err := h.orderSvc.List(c.Request.Context(), &page)
	if err != nil {
		h.handleOrderError(c, err)
		return
	}
	response.OKPage(c, orders, total, page.GetPage(), page.GetPageSize())
}

// UpdateOrderStatus handles PUT /api/v1/admin/orders/:id/status.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	order, err := h.orderSvc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.handleOrderError(c, err)
		return
	}
	response.OK(c, order)
}

// CreatePOSOrder handles POST /api/v1/admin/pos/orders.
//
// Counter sales are recorded as delivered immediately and work even while
// member ordering is switched off.
func (h *OrderHandler) CreatePOSOrder(c *gin.Context) {
	adminID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePOSOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	order, err := h.orderSvc.CreatePOS(c.Request.Context(), adminID, &req)
	if err != nil {
		h.handleOrderError(c, err)
		return
	}
	response.Created(c, order)
}

func (h *OrderHandler) handleOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		response.NotFound(c, 15001, "order not found")
	case errors.Is(err, service.ErrOrdersDisabled):
		response.Forbidden(c, 15002, "cafeteria ordering is currently disabled")
	case errors.Is(err, service.ErrProductNotFound):
		response.NotFound(c, 14003, "product not found")
	case errors.Is(err, service.ErrProductUnavailable):
		response.Conflict(c, 15003, "a product in the cart is unavailable")
	case errors.Is(err, service.ErrInsufficientStock):
		response.Conflict(c, 15004, "insufficient stock for a product in the cart")
	case errors.Is(err, service.ErrNotOrderOwner):
		response.Forbidden(c, 15005, "order belongs to another member")
	case errors.Is(err, service.ErrOrderNotCancellable):
		response.Conflict(c, 15006, "order can no longer be cancelled")
	case errors.Is(err, service.ErrInvalidStatusChange):
		response.BadRequest(c, 15007, "invalid order status transition")
	default:
		response.InternalError(c)
	}
}
