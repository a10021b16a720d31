package models

import "time"

// Matter is a legal matter opened by a firm.
type Matter struct {
	ID          int
	AccountUID  string
	Title       string
	ClientName  string
	Description string
	LedgerRef   string // accounting ledger account opened for this matter
	CreatedAt   time.Time
}

// DummyMatter receives matter data from a JSON request before validation.
type DummyMatter struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	ClientName  string `json:"client_name" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}
