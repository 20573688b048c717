package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"asso-portal/internal/dto"
	"asso-portal/internal/service"
	"asso-portal/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler streams back-office Excel reports.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportOrders handles GET /api/v1/admin/export/orders.
func (h *ExportHandler) ExportOrders(c *gin.Context) {
	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "from and to dates are required (YYYY-MM-DD)")
		return
	}

	buf, fileName, err := h.exportSvc.ExportOrders(c.Request.Context(), req.From, req.To)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoOrders):
		response.NotFound(c, 19003, "no orders in the requested period")
	default:
		response.InternalError(c)
	}
}
