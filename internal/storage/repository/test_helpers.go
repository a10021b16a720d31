package repository

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testSchema = `
    CREATE EXTENSION IF NOT EXISTS "pgcrypto";

    CREATE TABLE accounts (
        uid UUID PRIMARY KEY DEFAULT gen_random_uuid(),
        firm_name TEXT NOT NULL,
        email TEXT NOT NULL UNIQUE,
        phone TEXT NOT NULL DEFAULT '',
        password_hash TEXT NOT NULL,
        role TEXT NOT NULL DEFAULT 'firm',
        subscription_status TEXT NOT NULL DEFAULT 'pending',
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    );

    CREATE TABLE payments (
        id SERIAL PRIMARY KEY,
        m_payment_id UUID NOT NULL UNIQUE,
        account_uid UUID NOT NULL REFERENCES accounts(uid),
        amount_cents BIGINT NOT NULL,
        item_name TEXT NOT NULL,
        status TEXT NOT NULL DEFAULT 'created',
        pf_payment_id TEXT,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        completed_at TIMESTAMPTZ
    );

    CREATE TABLE matters (
        id SERIAL PRIMARY KEY,
        account_uid UUID NOT NULL REFERENCES accounts(uid),
        title TEXT NOT NULL,
        client_name TEXT NOT NULL,
        description TEXT NOT NULL DEFAULT '',
        ledger_ref TEXT,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    );
`

// setupTestDatabase starts a disposable PostgreSQL container with the Kaulela
// schema and returns a connected Storage.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForAll(
			wait.ForListeningPort(nat.Port("5432/tcp")),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(3*time.Minute)),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	_, err = storage.DB.Exec(testSchema)
	require.NoError(t, err, "failed to create tables")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		_ = pgContainer.Terminate(ctx)
	}

	return storage, cleanup
}

// TestDataFactory creates rows for integration tests.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory creates a factory over the test storage.
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateAccount inserts a test account and returns its UID.
func (f *TestDataFactory) CreateAccount(t *testing.T, firmName, email, status string) string {
	var uid string
	err := f.storage.DB.QueryRow(`INSERT INTO accounts (firm_name, email, phone, password_hash, subscription_status)
		VALUES ($1, $2, $3, $4, $5) RETURNING uid`,
		firmName, email, "+27820000000", "hashedpassword", status).Scan(&uid)
	require.NoError(t, err)
	return uid
}

// CreatePayment inserts a test payment attempt and returns its reference.
func (f *TestDataFactory) CreatePayment(t *testing.T, accountUID string, amountCents int64, status string) string {
	mPaymentID := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO payments (m_payment_id, account_uid, amount_cents, item_name, status)
		VALUES ($1, $2, $3, $4, $5)`,
		mPaymentID, accountUID, amountCents, "Kaulela System Monthly Subscription", status)
	require.NoError(t, err)
	return mPaymentID
}

// AccountStatus reads the subscription status of an account directly.
func (f *TestDataFactory) AccountStatus(t *testing.T, accountUID string) string {
	var status string
	err := f.storage.DB.QueryRow(`SELECT subscription_status FROM accounts WHERE uid = $1`, accountUID).Scan(&status)
	require.NoError(t, err)
	return status
}

// PaymentStatus reads the status of a payment attempt directly.
func (f *TestDataFactory) PaymentStatus(t *testing.T, mPaymentID string) string {
	var status string
	err := f.storage.DB.QueryRow(`SELECT status FROM payments WHERE m_payment_id = $1`, mPaymentID).Scan(&status)
	require.NoError(t, err)
	return status
}
