package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Tebogokaulela455/kaulela-backend/internal/models"
)

// FindPaymentByReference resolves an m_payment_id to the stored attempt.
func (s *Storage) FindPaymentByReference(ctx context.Context, mPaymentID string) (*models.Payment, error) {
	const op = "storage.FindPaymentByReference"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, m_payment_id, account_uid, amount_cents, item_name,
			      status, COALESCE(pf_payment_id, ''), created_at, completed_at
			  FROM payments
			  WHERE m_payment_id = $1`
	p := &models.Payment{}
	var completedAt sql.NullTime
	row := s.DB.QueryRowContext(ctx, query, mPaymentID)
	if err := row.Scan(&p.ID, &p.MPaymentID, &p.AccountUID, &p.AmountCents,
		&p.ItemName, &p.Status, &p.PFPaymentID, &p.CreatedAt, &completedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if completedAt.Valid {
		p.CompletedAt = &completedAt.Time
	}
	return p, nil
}

// CreatePayment records a new checkout attempt for an existing account.
func (s *Storage) CreatePayment(ctx context.Context, payment models.Payment) error {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (m_payment_id, account_uid, amount_cents, item_name, status)
			  VALUES ($1, $2, $3, $4, $5)`
	_, err := s.DB.ExecContext(ctx, query,
		payment.MPaymentID, payment.AccountUID, payment.AmountCents,
		payment.ItemName, payment.Status)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CompletePayment marks a payment attempt complete and records the gateway's
// payment id. The write is an unconditional set, so replaying the same
// notification is harmless.
func (s *Storage) CompletePayment(ctx context.Context, mPaymentID, pfPaymentID string) error {
	const op = "storage.CompletePayment"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payments
			  SET status = $1,
			      pf_payment_id = $2,
			      completed_at = COALESCE(completed_at, NOW())
			  WHERE m_payment_id = $3`
	res, err := s.DB.ExecContext(ctx, query, models.PaymentComplete, pfPaymentID, mPaymentID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// FailPayment marks a payment attempt failed (e.g. a CANCELLED notification).
func (s *Storage) FailPayment(ctx context.Context, mPaymentID string) error {
	const op = "storage.FailPayment"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payments
			  SET status = $1
			  WHERE m_payment_id = $2`
	res, err := s.DB.ExecContext(ctx, query, models.PaymentFailed, mPaymentID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
