package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"asso-portal/internal/repository"
)

// ── Export business errors ──

var ErrExportNoOrders = errors.New("no orders in the requested period")

// ExportService renders back-office reports as Excel workbooks. The buffer
// is returned to the handler, which sets the download headers.
type ExportService interface {
	// ExportOrders writes every order in [from, to] as one row per order
	// item, with a totals row at the bottom. Returns the workbook and the
	// suggested file name.
	ExportOrders(ctx context.Context, from, to string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportOrders(ctx context.Context, from, to string) (*bytes.Buffer, string, error) {
	fromDate, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, "", err
	}
	toDate, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, "", err
	}
	toDate = toDate.AddDate(0, 0, 1)

	orders, err := s.repo.Order.ListBetween(ctx, fromDate, toDate)
	if err != nil {
		s.logger.Error("failed to list orders for export", zap.Error(err))
		return nil, "", err
	}
	if len(orders) == 0 {
		return nil, "", ErrExportNoOrders
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Orders"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Order", "Member", "Status", "Payment",
		"Product", "Quantity", "Unit price", "Line total"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	row := 2
	grandTotal := decimal.Zero
	for i := range orders {
		order := &orders[i]
		memberName := ""
		if order.User != nil {
			memberName = order.User.Name
		}
		if order.CustomerName != nil && *order.CustomerName != "" {
			memberName = *order.CustomerName
		}
		payment := ""
		if order.PaymentMethod != nil {
			payment = *order.PaymentMethod
		}

		for _, item := range order.Items {
			productName := item.ProductID
			if item.Product != nil {
				productName = item.Product.Name
			}
			lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))

			values := []any{
				order.CreatedAt.Format("2006-01-02 15:04"),
				order.ID,
				memberName,
				order.Status,
				payment,
				productName,
				item.Quantity,
				item.Price.InexactFloat64(),
				lineTotal.InexactFloat64(),
			}
			for col, value := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				f.SetCellValue(sheet, cell, value)
			}
			row++
		}
		grandTotal = grandTotal.Add(order.Total)
	}

	totalLabelCell, _ := excelize.CoordinatesToCellName(len(headers)-1, row)
	totalValueCell, _ := excelize.CoordinatesToCellName(len(headers), row)
	f.SetCellValue(sheet, totalLabelCell, "Total")
	f.SetCellValue(sheet, totalValueCell, grandTotal.InexactFloat64())

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("failed to generate workbook", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("orders_%s_%s.xlsx", from, to)
	return buf, filename, nil
}
