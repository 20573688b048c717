package dto

import "github.com/shopspring/decimal"

// ── Category DTOs ──

// CategoryRequest creates or fully updates a product category.
type CategoryRequest struct {
	Name         string  `json:"name"          binding:"required,min=1,max=100"`
	Description  *string `json:"description"`
	Image        *string `json:"image"         binding:"omitempty,url"`
	DisplayOrder int     `json:"display_order" binding:"omitempty,min=0"`
	IsActive     *bool   `json:"is_active"`
}

// ── Product DTOs ──

// ProductRequest creates or fully updates a product.
type ProductRequest struct {
	Name         string           `json:"name"          binding:"required,min=1,max=100"`
	Description  *string          `json:"description"`
	Image        *string          `json:"image"         binding:"omitempty,url"`
	Price        decimal.Decimal  `json:"price"         binding:"required"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	CategoryID   *string          `json:"category_id"   binding:"omitempty,uuid"`
	Stock        int              `json:"stock"         binding:"omitempty,min=0"`
	DisplayOrder int              `json:"display_order" binding:"omitempty,min=0"`
	IsAvailable  *bool            `json:"is_available"`
	IsActive     *bool            `json:"is_active"`
}

// SetStockRequest overwrites a product's stock.
type SetStockRequest struct {
	Stock *int `json:"stock" binding:"required,min=0"`
}

// SetAvailabilityRequest toggles a product on or off the menu.
type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// AdjustStockRequest shifts a product's stock by a signed delta.
type AdjustStockRequest struct {
	Adjustment int     `json:"adjustment" binding:"required"`
	Reason     *string `json:"reason"`
}

// ProductListRequest filters the admin product listing.
type ProductListRequest struct {
	CategoryID  *string `form:"category_id"  binding:"omitempty,uuid"`
	IsActive    *bool   `form:"is_active"`
	IsAvailable *bool   `form:"is_available"`
}
