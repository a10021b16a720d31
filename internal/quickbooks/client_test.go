package quickbooks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tebogokaulela455/kaulela-backend/internal/config"
)

func TestCreateLedgerAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/company/realm42/account", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Matter 2024-001", payload["Name"])
		assert.Equal(t, "Income", payload["AccountType"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Account":{"Id":"77","Name":"Matter 2024-001"}}`))
	}))
	defer server.Close()

	client := New(config.QuickBooks{BaseURL: server.URL, RealmID: "realm42", BearerToken: "secret"})

	account, err := client.CreateLedgerAccount(context.Background(), "Matter 2024-001")
	require.NoError(t, err)
	assert.Equal(t, "77", account.ID)
	assert.Equal(t, "Matter 2024-001", account.Name)
}

func TestGetProfitAndLoss(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/company/realm42/reports/ProfitAndLoss", r.URL.Path)
		assert.Equal(t, "2026-01-01", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2026-01-31", r.URL.Query().Get("end_date"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Header":{"ReportName":"ProfitAndLoss"},"Columns":{},"Rows":{}}`))
	}))
	defer server.Close()

	client := New(config.QuickBooks{BaseURL: server.URL, RealmID: "realm42", BearerToken: "secret"})

	report, err := client.GetProfitAndLoss(context.Background(), "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	assert.Contains(t, string(report.Header), "ProfitAndLoss")
}

func TestDo_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"Fault":{}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := New(config.QuickBooks{BaseURL: server.URL, RealmID: "realm42", BearerToken: "expired"})

	_, err := client.CreateLedgerAccount(context.Background(), "Matter X")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
