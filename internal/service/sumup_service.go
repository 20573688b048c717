package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"asso-portal/internal/dto"
	"asso-portal/internal/model"
	"asso-portal/internal/repository"
	"asso-portal/internal/sumup"
)

// ── Payment stats business errors ──

var (
	ErrSumUpNotConfigured = errors.New("payment provider credentials are not configured")
	ErrInvalidStatsRange  = errors.New("unknown stats range")
)

// estimatedFeeRate approximates the card fee the provider withholds per
// successful transaction.
var estimatedFeeRate = decimal.NewFromFloat(0.0175)

// SumUpAPI is the slice of the provider client the service depends on.
type SumUpAPI interface {
	IsConfigured() bool
	GetMerchantProfile(ctx context.Context) (*sumup.MerchantProfile, error)
	GetTransactions(ctx context.Context, filter sumup.TransactionFilter) ([]sumup.Transaction, error)
	GetPayouts(ctx context.Context, startDate, endDate string) ([]sumup.Payout, error)
}

// SumUpService exposes card revenue figures to the admin dashboard.
type SumUpService interface {
	MerchantProfile(ctx context.Context) (*sumup.MerchantProfile, error)
	Transactions(ctx context.Context, from, to string) ([]sumup.Transaction, error)
	PeriodStats(ctx context.Context, from, to string) (*dto.PeriodStatsResponse, error)
	// RangeStats resolves a named convenience range (today, week, month,
	// year) against the current date.
	RangeStats(ctx context.Context, name string) (*dto.PeriodStatsResponse, error)
	Payouts(ctx context.Context, from, to string) ([]sumup.Payout, error)
	// ExportCSV renders the period's transactions as a semicolon-separated
	// account journal.
	ExportCSV(ctx context.Context, from, to string) ([]byte, error)
	// ProfitStats computes margin from delivered cafeteria orders using
	// the recorded cost prices, independent of the provider.
	ProfitStats(ctx context.Context, from, to string) (*dto.ProfitStatsResponse, error)
}

type sumupService struct {
	client SumUpAPI
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSumUpService creates a SumUpService.
func NewSumUpService(client SumUpAPI, repo *repository.Repository, logger *zap.Logger) SumUpService {
	return &sumupService{client: client, repo: repo, logger: logger}
}

func (s *sumupService) requireConfigured() error {
	if !s.client.IsConfigured() {
		return ErrSumUpNotConfigured
	}
	return nil
}

func (s *sumupService) MerchantProfile(ctx context.Context) (*sumup.MerchantProfile, error) {
	if err := s.requireConfigured(); err != nil {
		return nil, err
	}
	profile, err := s.client.GetMerchantProfile(ctx)
	if err != nil {
		s.logger.Error("failed to fetch merchant profile", zap.Error(err))
		return nil, err
	}
	return profile, nil
}

func (s *sumupService) Transactions(ctx context.Context, from, to string) ([]sumup.Transaction, error) {
	if err := s.requireConfigured(); err != nil {
		return nil, err
	}
	txs, err := s.client.GetTransactions(ctx, sumup.TransactionFilter{StartDate: from, EndDate: to})
	if err != nil {
		s.logger.Error("failed to fetch transactions", zap.Error(err))
		return nil, err
	}
	return txs, nil
}

func (s *sumupService) Payouts(ctx context.Context, from, to string) ([]sumup.Payout, error) {
	if err := s.requireConfigured(); err != nil {
		return nil, err
	}
	payouts, err := s.client.GetPayouts(ctx, from, to)
	if err != nil {
		s.logger.Error("failed to fetch payouts", zap.Error(err))
		return nil, err
	}
	return payouts, nil
}

// ────────────────────── Period stats ──────────────────────

func (s *sumupService) PeriodStats(ctx context.Context, from, to string) (*dto.PeriodStatsResponse, error) {
	txs, err := s.Transactions(ctx, from, to)
	if err != nil {
		return nil, err
	}

	stats := &dto.PeriodStatsResponse{From: from, To: to}
	daily := make(map[string]*dto.DailyStatsResponse)

	for _, tx := range txs {
		day := tx.Timestamp
		if len(day) >= 10 {
			day = day[:10]
		}
		bucket, ok := daily[day]
		if !ok {
			bucket = &dto.DailyStatsResponse{Date: day}
			daily[day] = bucket
		}

		stats.TotalTransactions++
		bucket.TransactionCount++

		amount := decimal.NewFromFloat(tx.Amount)
		switch tx.Status {
		case sumup.StatusSuccessful:
			stats.SuccessfulTransactions++
			stats.TotalRevenue = stats.TotalRevenue.Add(amount)
			bucket.SuccessfulCount++
			bucket.TotalAmount = bucket.TotalAmount.Add(amount)
			bucket.Fees = bucket.Fees.Add(amount.Mul(estimatedFeeRate))
		case sumup.StatusFailed, sumup.StatusCancelled:
			stats.FailedTransactions++
			bucket.FailedCount++
		}
	}

	stats.TotalFees = stats.TotalRevenue.Mul(estimatedFeeRate).Round(2)
	stats.NetRevenue = stats.TotalRevenue.Sub(stats.TotalFees)
	if stats.SuccessfulTransactions > 0 {
		stats.AvgTransactionAmount = stats.TotalRevenue.
			Div(decimal.NewFromInt(int64(stats.SuccessfulTransactions))).Round(2)
	}

	stats.DailyBreakdown = make([]dto.DailyStatsResponse, 0, len(daily))
	for _, bucket := range daily {
		if bucket.SuccessfulCount > 0 {
			bucket.AvgTransaction = bucket.TotalAmount.
				Div(decimal.NewFromInt(int64(bucket.SuccessfulCount))).Round(2)
		}
		bucket.Fees = bucket.Fees.Round(2)
		stats.DailyBreakdown = append(stats.DailyBreakdown, *bucket)
	}
	sort.Slice(stats.DailyBreakdown, func(i, j int) bool {
		return stats.DailyBreakdown[i].Date < stats.DailyBreakdown[j].Date
	})

	return stats, nil
}

func (s *sumupService) RangeStats(ctx context.Context, name string) (*dto.PeriodStatsResponse, error) {
	now := time.Now()
	today := now.Format("2006-01-02")

	var from string
	switch name {
	case "today":
		from = today
	case "week":
		from = now.AddDate(0, 0, -7).Format("2006-01-02")
	case "month":
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	case "year":
		from = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	default:
		return nil, ErrInvalidStatsRange
	}
	return s.PeriodStats(ctx, from, today)
}

// ────────────────────── CSV export ──────────────────────

func (s *sumupService) ExportCSV(ctx context.Context, from, to string) ([]byte, error) {
	txs, err := s.Transactions(ctx, from, to)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	header := []string{"Date", "Heure", "Code Transaction", "Type", "Statut",
		"Montant", "Devise", "Mode de paiement", "Carte", "Description"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, tx := range txs {
		ts, err := time.Parse(time.RFC3339, tx.Timestamp)
		if err != nil {
			ts = time.Time{}
		}
		kind := tx.Type
		if kind == "" {
			kind = tx.PaymentType
		}
		card := ""
		if tx.Card != nil {
			card = "****" + tx.Card.Last4Digits
		}
		amount := strings.ReplaceAll(decimal.NewFromFloat(tx.Amount).StringFixed(2), ".", ",")

		record := []string{
			ts.Format("02/01/2006"),
			ts.Format("15:04:05"),
			tx.TransactionCode,
			kind,
			tx.Status,
			amount,
			tx.Currency,
			tx.PaymentType,
			card,
			tx.ProductSummary,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ────────────────────── Profit ──────────────────────

func (s *sumupService) ProfitStats(ctx context.Context, from, to string) (*dto.ProfitStatsResponse, error) {
	fromDate, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, err
	}
	toDate, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, err
	}
	// Inclusive upper bound: the whole of the last day.
	toDate = toDate.AddDate(0, 0, 1)

	orders, err := s.repo.Order.ListByStatusBetween(ctx, model.OrderStatusDelivered, fromDate, toDate)
	if err != nil {
		s.logger.Error("failed to list delivered orders", zap.Error(err))
		return nil, err
	}

	stats := &dto.ProfitStatsResponse{From: from, To: to, OrderCount: len(orders)}
	for i := range orders {
		stats.Revenue = stats.Revenue.Add(orders[i].Total)
		for _, item := range orders[i].Items {
			if item.Product == nil || item.Product.CostPrice == nil {
				continue
			}
			cost := item.Product.CostPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			stats.Cost = stats.Cost.Add(cost)
		}
	}
	stats.Profit = stats.Revenue.Sub(stats.Cost)
	if stats.Revenue.IsPositive() {
		stats.MarginRatio = stats.Profit.Div(stats.Revenue).Round(4)
	}
	return stats, nil
}
