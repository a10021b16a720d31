package repository

import (
	"context"
	"fmt"

	"github.com/Tebogokaulela455/kaulela-backend/internal/models"
)

// CreateMatter inserts a new matter and returns its ID.
func (s *Storage) CreateMatter(ctx context.Context, matter models.Matter) (int, error) {
	const op = "storage.CreateMatter"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO matters (account_uid, title, client_name, description)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		matter.AccountUID, matter.Title, matter.ClientName, matter.Description).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// SetMatterLedgerRef records the accounting ledger account opened for a matter.
func (s *Storage) SetMatterLedgerRef(ctx context.Context, matterID int, ledgerRef string) error {
	const op = "storage.SetMatterLedgerRef"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE matters
			  SET ledger_ref = $1
			  WHERE id = $2`
	if _, err := s.DB.ExecContext(ctx, query, ledgerRef, matterID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListMattersByAccount returns the matters of one firm, newest first.
func (s *Storage) ListMattersByAccount(ctx context.Context, accountUID string) ([]*models.Matter, error) {
	const op = "storage.ListMattersByAccount"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, account_uid, title, client_name, description,
			      COALESCE(ledger_ref, ''), created_at
			  FROM matters
			  WHERE account_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, accountUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Matter
	for rows.Next() {
		var m models.Matter
		if err := rows.Scan(&m.ID, &m.AccountUID, &m.Title, &m.ClientName,
			&m.Description, &m.LedgerRef, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
