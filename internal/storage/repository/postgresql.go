// Package repository implements the PostgreSQL data store for accounts,
// payment attempts and matters.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Registers the pgx driver for database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Sentinel errors reported to the service layer so handlers can distinguish
// client errors (duplicate, unknown) from storage failures.
var (
	ErrAccountExists = errors.New("account already exists")
	ErrNotFound      = errors.New("not found")
)

// Storage wraps the PostgreSQL connection and implements the repositories.
type Storage struct {
	DB *sql.DB
}

// New opens the PostgreSQL connection and verifies it with a ping.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady verifies that the schema has been migrated.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'accounts'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table accounts missing or query error: %w", err)
	}
	return nil
}
