package dto

import "github.com/shopspring/decimal"

// ── Payment statistics DTOs ──

// DailyStatsResponse is the per-day breakdown inside a period stats response.
type DailyStatsResponse struct {
	Date             string          `json:"date"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	TransactionCount int             `json:"transaction_count"`
	SuccessfulCount  int             `json:"successful_count"`
	FailedCount      int             `json:"failed_count"`
	AvgTransaction   decimal.Decimal `json:"avg_transaction"`
	Fees             decimal.Decimal `json:"fees"`
}

// PeriodStatsResponse aggregates card transactions over a date range.
type PeriodStatsResponse struct {
	From                   string               `json:"from"`
	To                     string               `json:"to"`
	TotalRevenue           decimal.Decimal      `json:"total_revenue"`
	TotalTransactions      int                  `json:"total_transactions"`
	SuccessfulTransactions int                  `json:"successful_transactions"`
	FailedTransactions     int                  `json:"failed_transactions"`
	AvgTransactionAmount   decimal.Decimal      `json:"avg_transaction_amount"`
	TotalFees              decimal.Decimal      `json:"total_fees"`
	NetRevenue             decimal.Decimal      `json:"net_revenue"`
	DailyBreakdown         []DailyStatsResponse `json:"daily_breakdown"`
}

// ProfitStatsResponse combines delivered-order revenue with recorded
// cost prices over a period.
type ProfitStatsResponse struct {
	From        string          `json:"from"`
	To          string          `json:"to"`
	Revenue     decimal.Decimal `json:"revenue"`
	Cost        decimal.Decimal `json:"cost"`
	Profit      decimal.Decimal `json:"profit"`
	OrderCount  int             `json:"order_count"`
	MarginRatio decimal.Decimal `json:"margin_ratio"`
}
