// Package sms sends text messages through a Twilio-compatible REST gateway.
package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Tebogokaulela455/kaulela-backend/internal/config"
)

type Client struct {
	apiURL     string
	accountSID string
	authToken  string
	fromNumber string
	httpClient *http.Client
}

func New(cfg config.SMS) *Client {
	return &Client{
		apiURL:     cfg.APIURL,
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		fromNumber: cfg.FromNumber,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Send delivers one message to the given phone number.
func (c *Client) Send(ctx context.Context, to, body string) error {
	const op = "sms.Send"

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.fromNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.apiURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s: gateway returned %d: %s", op, resp.StatusCode, string(payload))
	}
	return nil
}
