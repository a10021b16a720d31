package payfast

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	return &Client{
		validateURL: serverURL,
		httpClient:  &http.Client{Timeout: 2 * time.Second},
	}
}

func TestValidateNotification(t *testing.T) {
	n, err := ParseNotification([]byte(buildITNBody(sampleITNFields(), "jt7NOE43FZPn")))
	require.NoError(t, err)

	t.Run("gateway confirms", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
			body, _ := io.ReadAll(r.Body)
			assert.Equal(t, n.Encode(), string(body))
			_, _ = w.Write([]byte("VALID"))
		}))
		defer srv.Close()

		err := newTestClient(srv.URL).ValidateNotification(context.Background(), n)
		assert.NoError(t, err)
	})

	t.Run("gateway rejects", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("INVALID"))
		}))
		defer srv.Close()

		err := newTestClient(srv.URL).ValidateNotification(context.Background(), n)
		assert.ErrorIs(t, err, ErrInvalidNotification)
	})

	t.Run("unexpected status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		err := newTestClient(srv.URL).ValidateNotification(context.Background(), n)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidNotification)
	})

	t.Run("timeout is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte("VALID"))
		}))
		defer srv.Close()

		client := &Client{validateURL: srv.URL, httpClient: &http.Client{Timeout: 50 * time.Millisecond}}
		err := client.ValidateNotification(context.Background(), n)
		assert.Error(t, err)
	})
}

func TestNewClient_EndpointSelection(t *testing.T) {
	assert.Equal(t, sandboxValidateURL, NewClient(true, time.Second).validateURL)
	assert.Equal(t, liveValidateURL, NewClient(false, time.Second).validateURL)
}
