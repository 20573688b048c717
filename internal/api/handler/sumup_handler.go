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

// SumUpHandler exposes card payment statistics to the admin dashboard.
type SumUpHandler struct {
	sumupSvc service.SumUpService
}

// NewSumUpHandler creates a SumUpHandler.
func NewSumUpHandler(sumupSvc service.SumUpService) *SumUpHandler {
	return &SumUpHandler{sumupSvc: sumupSvc}
}

// MerchantProfile handles GET /api/v1/admin/sumup/profile.
func (h *SumUpHandler) MerchantProfile(c *gin.Context) {
	profile, err := h.sumupSvc.MerchantProfile(c.Request.Context())
	if err != nil {
		h.handleSumUpError(c, err)
		return
	}
	response.OK(c, profile)
}

// ListTransactions handles GET /api/v1/admin/sumup/transactions.
func (h *SumUpHandler) ListTransactions(c *gin.Context) {
	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "from and to dates are required (YYYY-MM-DD)")
		return
	}

	transactions, err := h.sumupSvc.Transactions(c.Request.Context(), req.From, req.To)
	if err != nil {
		h.handleSumUpError(c, err)
		return
	}
	response.OK(c, transactions)
}

// PeriodStats handles GET /api/v1/admin/sumup/stats.
func (h *SumUpHandler) PeriodStats(c *gin.Context) {
	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "from and to dates are required (YYYY-MM-DD)")
		return
	}

	stats, err := h.sumupSvc.PeriodStats(c.Request.Context(), req.From, req.To)
	if err != nil {
		h.handleSumUpError(c, err)
		return
	}
	response.OK(c, stats)
}

// RangeStats handles GET /api/v1/admin/sumup/stats/:range.
//
// Accepts the named ranges today, week, month and year.
func (h *SumUpHandler) RangeStats(c *gin.Context) {
	stats, err := h.sumupSvc.RangeStats(c.Request.Context(), c.Param("range"))
	if err != nil {
		h.handleSumUpError(c, err)
		return
	}
	response.OK(c, stats)
}

// ListPayouts handles GET /api/v1/admin/sumup/payouts.
func (h *SumUpHandler) ListPayouts(c *gin.Context) {
	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "from and to dates are required (YYYY-MM-DD)")
		return
	}

	payouts, err := h.sumupSvc.Payouts(c.Request.Context(), req.From, req.To)
	if err != nil {
		h.handleSumUpError(c, err)
		return
	}
	response.OK(c, payouts)
}

// ExportCSV handles GET /api/v1/admin/sumup/transactions/export.
//
// Streams the period's transactions as a semicolon-separated CSV download.
func (h *SumUpHandler) ExportCSV(c *gin.Context) {
	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "from and to dates are required (YYYY-MM-DD)")
		return
	}

	csvData, err := h.sumupSvc.ExportCSV(c.Request.Context(), req.From, req.To)
	if err != nil {
		h.handleSumUpError(c, err)
		return
	}

	fileName := fmt.Sprintf("transactions_%s_%s.csv", req.From, req.To)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", csvData)
}

// ProfitStats handles GET /api/v1/admin/stats/profit.
func (h *SumUpHandler) ProfitStats(c *gin.Context) {
	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "from and to dates are required (YYYY-MM-DD)")
		return
	}

	stats, err := h.sumupSvc.ProfitStats(c.Request.Context(), req.From, req.To)
	if err != nil {
		h.handleSumUpError(c, err)
		return
	}
	response.OK(c, stats)
}

func (h *SumUpHandler) handleSumUpError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSumUpNotConfigured):
		response.ServiceUnavailable(c, 19001, "payment provider is not configured")
	case errors.Is(err, service.ErrInvalidStatsRange):
		response.BadRequest(c, 19002, "unknown statistics range")
	default:
		response.InternalError(c)
	}
}
