// Package searchworks looks up company registration records in the CIPC
// registry through the SearchWorks API.
package searchworks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Tebogokaulela455/kaulela-backend/internal/config"
	"github.com/Tebogokaulela455/kaulela-backend/internal/models"
)

type Client struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

func New(cfg config.SearchWorks) *Client {
	return &Client{
		apiURL:     cfg.APIURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type searchResponse struct {
	Results []models.Company `json:"results"`
}

// SearchCompany queries the registry by company name or registration number.
func (c *Client) SearchCompany(ctx context.Context, query string) ([]models.Company, error) {
	const op = "searchworks.SearchCompany"

	params := url.Values{}
	params.Set("query", query)
	endpoint := fmt.Sprintf("%s/cipc/companies?%s", c.apiURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%s: registry returned %d: %s", op, resp.StatusCode, string(data))
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payload.Results, nil
}
