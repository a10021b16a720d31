package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Tebogokaulela455/kaulela-backend/internal/models"
)

// RegisterAccountWithPayment inserts the account (status pending) and its
// first payment attempt in one transaction, so a crash cannot leave an
// account without a traceable payment reference. Returns the new account UID.
func (s *Storage) RegisterAccountWithPayment(ctx context.Context, account models.Account, payment models.Payment) (string, error) {
	const op = "storage.RegisterAccountWithPayment"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var newUID string
	query := `INSERT INTO accounts (firm_name, email, phone, password_hash, role, subscription_status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid;`
	if err := tx.QueryRowContext(ctx, query,
		account.FirmName, account.Email, account.Phone, account.PasswordHash,
		account.Role, account.SubscriptionStatus).Scan(&newUID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", fmt.Errorf("%s: %w", op, ErrAccountExists)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO payments (m_payment_id, account_uid, amount_cents, item_name, status)
			 VALUES ($1, $2, $3, $4, $5);`
	if _, err := tx.ExecContext(ctx, query,
		payment.MPaymentID, newUID, payment.AmountCents, payment.ItemName,
		models.PaymentCreated); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetAccountByEmail returns the account registered under an email address.
func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	const op = "storage.GetAccountByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, firm_name, email, phone, password_hash, role,
			      subscription_status, created_at
			  FROM accounts
			  WHERE email = $1`
	a := &models.Account{}
	row := s.DB.QueryRowContext(ctx, query, email)
	if err := row.Scan(&a.UID, &a.FirmName, &a.Email, &a.Phone, &a.PasswordHash,
		&a.Role, &a.SubscriptionStatus, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// GetAccount returns the account with the given UID.
func (s *Storage) GetAccount(ctx context.Context, accountUID string) (*models.Account, error) {
	const op = "storage.GetAccount"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, firm_name, email, phone, password_hash, role,
			      subscription_status, created_at
			  FROM accounts
			  WHERE uid = $1`
	a := &models.Account{}
	row := s.DB.QueryRowContext(ctx, query, accountUID)
	if err := row.Scan(&a.UID, &a.FirmName, &a.Email, &a.Phone, &a.PasswordHash,
		&a.Role, &a.SubscriptionStatus, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// ActivateSubscription sets the account status to active. The update is a
// single conditional row write, so replayed notifications and concurrent
// deliveries cannot double-apply anything.
func (s *Storage) ActivateSubscription(ctx context.Context, accountUID string) error {
	const op = "storage.ActivateSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE accounts
			  SET subscription_status = $1
			  WHERE uid = $2`
	res, err := s.DB.ExecContext(ctx, query, models.SubscriptionActive, accountUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// CancelSubscription sets the account status to cancelled.
func (s *Storage) CancelSubscription(ctx context.Context, accountUID string) error {
	const op = "storage.CancelSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE accounts
			  SET subscription_status = $1
			  WHERE uid = $2`
	res, err := s.DB.ExecContext(ctx, query, models.SubscriptionCancelled, accountUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// CancelStalePendingAccounts cancels pending accounts created before the
// cutoff that never produced a completed payment. Returns the number of
// accounts swept.
func (s *Storage) CancelStalePendingAccounts(ctx context.Context, cutoff time.Time) (int64, error) {
	const op = "storage.CancelStalePendingAccounts"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE accounts
			  SET subscription_status = $1
			  WHERE subscription_status = $2
			    AND created_at < $3
			    AND NOT EXISTS (
			        SELECT 1 FROM payments p
			        WHERE p.account_uid = accounts.uid AND p.status = $4
			    )`
	res, err := s.DB.ExecContext(ctx, query,
		models.SubscriptionCancelled, models.SubscriptionPending, cutoff, models.PaymentComplete)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
