package payfast

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrInvalidNotification reports that the gateway did not confirm an ITN
// payload during the server-to-server validation callback.
var ErrInvalidNotification = errors.New("payfast: gateway reports notification invalid")

// Client performs the server-to-server confirmation call for inbound ITNs.
type Client struct {
	validateURL string
	httpClient  *http.Client
}

// NewClient creates a gateway client. The timeout bounds the validation call;
// a timeout surfaces as an error (retryable by the gateway), never as a
// silent success.
func NewClient(sandbox bool, timeout time.Duration) *Client {
	validateURL := liveValidateURL
	if sandbox {
		validateURL = sandboxValidateURL
	}
	return &Client{
		validateURL: validateURL,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// ValidateNotification posts the received ITN payload back to the gateway and
// checks for its "VALID" confirmation.
func (c *Client) ValidateNotification(ctx context.Context, n *Notification) error {
	const op = "payfast.ValidateNotification"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.validateURL,
		strings.NewReader(n.Encode()))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %s", op, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(body)), "VALID") {
		return fmt.Errorf("%s: %w", op, ErrInvalidNotification)
	}
	return nil
}
