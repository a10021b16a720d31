package login

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Tebogokaulela455/kaulela-backend/internal/http/response"
	"github.com/Tebogokaulela455/kaulela-backend/internal/services/auth"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Login(ctx context.Context, email, rawPassword string) (string, string, error) {
	args := m.Called(ctx, email, rawPassword)
	return args.String(0), args.String(1), args.Error(2)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServeHTTP_Success(t *testing.T) {
	svc := new(mockService)
	svc.On("Login", mock.Anything, "firm@example.com", "s3cret").Return("token-123", "firm", nil)

	h := New(discardLogger(), svc)

	rec := post(h, `{"email": "firm@example.com", "password": "s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	assert.Equal(t, "token-123", data["token"])
	assert.Equal(t, "firm", data["role"])
}

func TestServeHTTP_InvalidCredentials(t *testing.T) {
	svc := new(mockService)
	svc.On("Login", mock.Anything, "firm@example.com", "wrong").
		Return("", "", auth.ErrInvalidCredentials)

	h := New(discardLogger(), svc)

	rec := post(h, `{"email": "firm@example.com", "password": "wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServeHTTP_StorageFailure(t *testing.T) {
	svc := new(mockService)
	svc.On("Login", mock.Anything, "firm@example.com", "s3cret").
		Return("", "", assert.AnError)

	h := New(discardLogger(), svc)

	rec := post(h, `{"email": "firm@example.com", "password": "s3cret"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServeHTTP_ValidationFailure(t *testing.T) {
	h := New(discardLogger(), new(mockService))

	rec := post(h, `{"email": "not-an-email", "password": ""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestServeHTTP_InvalidJSON(t *testing.T) {
	h := New(discardLogger(), new(mockService))

	rec := post(h, "not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
