package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"asso-portal/internal/dto"
	"asso-portal/internal/service"
	"asso-portal/pkg/response"
)

// PageHandler serves public CMS pages and their admin back office.
type PageHandler struct {
	pageSvc service.PageService
}

// NewPageHandler creates a PageHandler.
func NewPageHandler(pageSvc service.PageService) *PageHandler {
	return &PageHandler{pageSvc: pageSvc}
}

// GetPublishedPage handles GET /api/v1/pages/:slug.
func (h *PageHandler) GetPublishedPage(c *gin.Context) {
	page, err := h.pageSvc.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.handlePageError(c, err)
		return
	}
	response.OK(c, page)
}

// ── Admin ──

// ListPages handles GET /api/v1/admin/pages.
func (h *PageHandler) ListPages(c *gin.Context) {
	pages, err := h.pageSvc.List(c.Request.Context())
	if err != nil {
		h.handlePageError(c, err)
		return
	}
	response.OK(c, pages)
}

// GetPage handles GET /api/v1/admin/pages/:id.
func (h *PageHandler) GetPage(c *gin.Context) {
	page, err := h.pageSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handlePageError(c, err)
		return
	}
	response.OK(c, page)
}

// CreatePage handles POST /api/v1/admin/pages.
func (h *PageHandler) CreatePage(c *gin.Context) {
	var req dto.PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	page, err := h.pageSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handlePageError(c, err)
		return
	}
	response.Created(c, page)
}

// UpdatePage handles PUT /api/v1/admin/pages/:id.
func (h *PageHandler) UpdatePage(c *gin.Context) {
	var req dto.PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	page, err := h.pageSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handlePageError(c, err)
		return
	}
	response.OK(c, page)
}

// DeletePage handles DELETE /api/v1/admin/pages/:id.
func (h *PageHandler) DeletePage(c *gin.Context) {
	if err := h.pageSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handlePageError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *PageHandler) handlePageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPageNotFound):
		response.NotFound(c, 16001, "page not found")
	case errors.Is(err, service.ErrSlugTaken):
		response.Conflict(c, 16002, "slug is already in use")
	case errors.Is(err, service.ErrInvalidSlug):
		response.BadRequest(c, 16003, "slug must contain only lowercase letters, digits and hyphens")
	case errors.Is(err, service.ErrSystemPage):
		response.Forbidden(c, 16004, "system pages cannot be deleted or renamed")
	default:
		response.InternalError(c)
	}
}
