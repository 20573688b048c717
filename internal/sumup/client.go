// Package sumup is a minimal client for the SumUp merchant API.
// It only covers the read endpoints the back office needs: merchant
// profile, transaction history and payouts.
package sumup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.sumup.com"

// ErrNotConfigured is returned when the API key or merchant code is missing.
var ErrNotConfigured = errors.New("sumup: api key or merchant code not configured")

// APIError carries the HTTP status and body of a failed SumUp call.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sumup: api error %d: %s", e.StatusCode, e.Body)
}

// Transaction is one card transaction as reported by SumUp.
type Transaction struct {
	ID              string  `json:"id"`
	TransactionCode string  `json:"transaction_code"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	Timestamp       string  `json:"timestamp"`
	Status          string  `json:"status"`
	PaymentType     string  `json:"payment_type"`
	Type            string  `json:"type"`
	ProductSummary  string  `json:"product_summary"`
	MerchantCode    string  `json:"merchant_code"`
	Card            *Card   `json:"card,omitempty"`
}

// Card holds the partial card details attached to a transaction.
type Card struct {
	Last4Digits string `json:"last_4_digits"`
	Type        string `json:"type"`
}

// Transaction statuses.
const (
	StatusSuccessful = "SUCCESSFUL"
	StatusFailed     = "FAILED"
	StatusCancelled  = "CANCELLED"
	StatusPending    = "PENDING"
)

// Payout is one settlement from SumUp to the merchant's bank account.
type Payout struct {
	ID              int64   `json:"id"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	Date            string  `json:"date"`
	Fee             float64 `json:"fee"`
	Reference       string  `json:"reference"`
	Status          string  `json:"status"`
	TransactionCode string  `json:"transaction_code"`
	Type            string  `json:"type"`
}

// MerchantProfile describes the merchant account behind the API key.
type MerchantProfile struct {
	MerchantCode string `json:"merchant_code"`
	CompanyName  string `json:"company_name"`
	Country      string `json:"country"`
	Locale       string `json:"locale"`
	Currency     string `json:"currency"`
	Address      struct {
		City       string `json:"city"`
		Country    string `json:"country"`
		Line1      string `json:"line1"`
		PostalCode string `json:"postal_code"`
	} `json:"address"`
}

// TransactionFilter narrows a transaction history query.
type TransactionFilter struct {
	StartDate string // YYYY-MM-DD, inclusive
	EndDate   string // YYYY-MM-DD, inclusive
	Statuses  []string
	Limit     int
}

type transactionsResponse struct {
	Items []Transaction `json:"items"`
}

// Client talks to the SumUp REST API with a bearer API key.
type Client struct {
	apiKey       string
	merchantCode string
	baseURL      string
	httpClient   *http.Client
}

// NewClient builds a client. baseURL may be empty to use the production API.
func NewClient(apiKey, merchantCode, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:       apiKey,
		merchantCode: merchantCode,
		baseURL:      baseURL,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
	}
}

// IsConfigured reports whether both credentials are present.
func (c *Client) IsConfigured() bool {
	return c.apiKey != "" && c.merchantCode != ""
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	if c.apiKey == "" {
		return ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("sumup: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sumup: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("sumup: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("sumup: decode response: %w", err)
	}
	return nil
}

// GetMerchantProfile fetches the merchant account profile.
func (c *Client) GetMerchantProfile(ctx context.Context) (*MerchantProfile, error) {
	var profile MerchantProfile
	if err := c.get(ctx, "/v0.1/me", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetTransactions fetches the transaction history for the filter. It tries
// the per-merchant v2.1 endpoint first and falls back to the legacy v0.1
// endpoint, which older accounts still rely on.
func (c *Client) GetTransactions(ctx context.Context, filter TransactionFilter) ([]Transaction, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	params := url.Values{}
	if filter.StartDate != "" {
		params.Add("oldest_time", filter.StartDate+"T00:00:00Z")
	}
	if filter.EndDate != "" {
		params.Add("newest_time", filter.EndDate+"T23:59:59Z")
	}
	for _, s := range filter.Statuses {
		params.Add("statuses", s)
	}
	if filter.Limit > 0 {
		params.Add("limit", strconv.Itoa(filter.Limit))
	} else {
		params.Add("limit", "1000")
	}
	query := "?" + params.Encode()

	var resp transactionsResponse
	err := c.get(ctx, "/v2.1/merchants/"+c.merchantCode+"/transactions/history"+query, &resp)
	if err == nil {
		return resp.Items, nil
	}

	resp.Items = nil
	if fbErr := c.get(ctx, "/v0.1/me/transactions/history"+query, &resp); fbErr != nil {
		return nil, fmt.Errorf("sumup: transactions history: %w (fallback: %v)", err, fbErr)
	}
	return resp.Items, nil
}

// GetPayouts fetches settlements between two dates (YYYY-MM-DD, inclusive).
// Like GetTransactions it prefers the newer per-merchant endpoint.
func (c *Client) GetPayouts(ctx context.Context, startDate, endDate string) ([]Payout, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}
	if startDate == "" || endDate == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Add("start_date", startDate)
	params.Add("end_date", endDate)
	params.Add("format", "json")
	query := "?" + params.Encode()

	var payouts []Payout
	err := c.get(ctx, "/v1.0/merchants/"+c.merchantCode+"/payouts"+query, &payouts)
	if err == nil {
		return payouts, nil
	}

	payouts = nil
	if fbErr := c.get(ctx, "/v0.1/me/financials/payouts"+query, &payouts); fbErr != nil {
		return nil, fmt.Errorf("sumup: payouts: %w (fallback: %v)", err, fbErr)
	}
	return payouts, nil
}
