package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"asso-portal/internal/dto"
	"asso-portal/internal/service"
	"asso-portal/pkg/response"
)

// CatalogHandler serves the cafeteria menu and the admin catalog.
type CatalogHandler struct {
	catalogSvc service.CatalogService
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// Menu handles GET /api/v1/cafeteria/menu.
func (h *CatalogHandler) Menu(c *gin.Context) {
	menu, err := h.catalogSvc.Menu(c.Request.Context())
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, menu)
}

// ListAvailableProducts handles GET /api/v1/cafeteria/products: the flat
// list of products that can be ordered right now.
func (h *CatalogHandler) ListAvailableProducts(c *gin.Context) {
	products, err := h.catalogSvc.ListAvailableProducts(c.Request.Context())
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, products)
}

// ── Categories ──

// ListCategories handles GET /api/v1/admin/categories.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogSvc.ListCategories(c.Request.Context())
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, categories)
}

// CreateCategory handles POST /api/v1/admin/categories.
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	category, err := h.catalogSvc.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.Created(c, category)
}

// UpdateCategory handles PUT /api/v1/admin/categories/:id.
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	category, err := h.catalogSvc.UpdateCategory(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, category)
}

// DeleteCategory handles DELETE /api/v1/admin/categories/:id.
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if err := h.catalogSvc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, nil)
}

// ── Products ──

// ListProducts handles GET /api/v1/admin/products.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var req dto.ProductListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid filter parameters")
		return
	}

	products, err := h.catalogSvc.ListProducts(c.Request.Context(), &req)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, products)
}

// GetProduct handles GET /api/v1/admin/products/:id.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogSvc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, product)
}

// CreateProduct handles POST /api/v1/admin/products.
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	product, err := h.catalogSvc.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.Created(c, product)
}

// UpdateProduct handles PUT /api/v1/admin/products/:id.
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	product, err := h.catalogSvc.UpdateProduct(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, product)
}

// DeleteProduct handles DELETE /api/v1/admin/products/:id.
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalogSvc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, nil)
}

// SetStock handles PUT /api/v1/admin/products/:id/stock.
func (h *CatalogHandler) SetStock(c *gin.Context) {
	var req dto.SetStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	product, err := h.catalogSvc.SetStock(c.Request.Context(), c.Param("id"), *req.Stock)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, product)
}

// AdjustStock handles POST /api/v1/admin/products/:id/stock/adjust.
func (h *CatalogHandler) AdjustStock(c *gin.Context) {
	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	product, err := h.catalogSvc.AdjustStock(c.Request.Context(), c.Param("id"), req.Adjustment)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, product)
}

// SetAvailability handles PUT /api/v1/admin/products/:id/availability.
func (h *CatalogHandler) SetAvailability(c *gin.Context) {
	var req dto.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	if err := h.catalogSvc.SetAvailability(c.Request.Context(), c.Param("id"), *req.IsAvailable); err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, nil)
}

// Stats handles GET /api/v1/admin/catalog/stats.
func (h *CatalogHandler) Stats(c *gin.Context) {
	stats, err := h.catalogSvc.Stats(c.Request.Context())
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, stats)
}

func (h *CatalogHandler) handleCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		response.NotFound(c, 14001, "category not found")
	case errors.Is(err, service.ErrCategoryHasProducts):
		response.Conflict(c, 14002, "category still has products")
	case errors.Is(err, service.ErrProductNotFound):
		response.NotFound(c, 14003, "product not found")
	case errors.Is(err, service.ErrNegativeStock):
		response.BadRequest(c, 14004, "stock cannot go negative")
	default:
		response.InternalError(c)
	}
}
