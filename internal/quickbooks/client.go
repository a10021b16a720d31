// Package quickbooks is a minimal client for the QuickBooks accounting API:
// creating ledger accounts for matters and pulling the profit and loss report.
package quickbooks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Tebogokaulela455/kaulela-backend/internal/config"
)

type Client struct {
	baseURL     string
	realmID     string
	bearerToken string
	httpClient  *http.Client
}

func New(cfg config.QuickBooks) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		realmID:     cfg.RealmID,
		bearerToken: cfg.BearerToken,
		httpClient:  &http.Client{Timeout: 20 * time.Second},
	}
}

// LedgerAccount is the subset of a QuickBooks account this service uses.
type LedgerAccount struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}

type accountEnvelope struct {
	Account LedgerAccount `json:"Account"`
}

// ProfitAndLoss is the raw report payload, passed through to the caller.
type ProfitAndLoss struct {
	Header  json.RawMessage `json:"Header"`
	Columns json.RawMessage `json:"Columns"`
	Rows    json.RawMessage `json:"Rows"`
}

// CreateLedgerAccount opens an income account for a matter.
func (c *Client) CreateLedgerAccount(ctx context.Context, name string) (*LedgerAccount, error) {
	const op = "quickbooks.CreateLedgerAccount"

	payload, err := json.Marshal(map[string]string{
		"Name":        name,
		"AccountType": "Income",
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	endpoint := fmt.Sprintf("%s/v3/company/%s/account", c.baseURL, c.realmID)
	var envelope accountEnvelope
	if err := c.do(ctx, http.MethodPost, endpoint, payload, &envelope); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &envelope.Account, nil
}

// GetProfitAndLoss fetches the profit and loss report for the given period.
func (c *Client) GetProfitAndLoss(ctx context.Context, startDate, endDate string) (*ProfitAndLoss, error) {
	const op = "quickbooks.GetProfitAndLoss"

	query := url.Values{}
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)
	endpoint := fmt.Sprintf("%s/v3/company/%s/reports/ProfitAndLoss?%s", c.baseURL, c.realmID, query.Encode())

	var report ProfitAndLoss
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &report); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &report, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte, result any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("quickbooks returned %d: %s", resp.StatusCode, string(data))
	}
	return json.NewDecoder(resp.Body).Decode(result)
}
