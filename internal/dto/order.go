package dto

import "github.com/shopspring/decimal"

// ── Order DTOs ──

// OrderItemRequest is one line of a cart.
type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity"   binding:"required,min=1"`
}

// CreateOrderRequest places a member cafeteria order.
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes *string            `json:"notes" binding:"omitempty,max=500"`
}

// CreatePOSOrderRequest places a point-of-sale order at the counter.
type CreatePOSOrderRequest struct {
	Items         []OrderItemRequest `json:"items"          binding:"required,min=1,dive"`
	PaymentMethod string             `json:"payment_method" binding:"required,oneof=CASH CARD SUMUP"`
	CustomerName  *string            `json:"customer_name"  binding:"omitempty,max=100"`
	Notes         *string            `json:"notes"          binding:"omitempty,max=500"`
}

// UpdateOrderStatusRequest advances an order along its lifecycle.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=CONFIRMED PREPARING READY DELIVERED CANCELLED"`
}

// OrderItemResponse is one line of a placed order.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// OrderResponse is a placed order.
type OrderResponse struct {
	ID            string              `json:"id"`
	User          *UserResponse       `json:"user,omitempty"`
	Total         decimal.Decimal     `json:"total"`
	Status        string              `json:"status"`
	Notes         *string             `json:"notes,omitempty"`
	PaymentMethod *string             `json:"payment_method,omitempty"`
	CustomerName  *string             `json:"customer_name,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     string              `json:"created_at"`
}
