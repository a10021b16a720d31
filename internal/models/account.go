// Package models contains the domain structures of the Kaulela backend.
package models

import "time"

// Subscription status values of an account. Status starts as pending at
// registration and is moved only by the ITN handler or the explicit
// cancellation endpoint. Accounts are never deleted.
const (
	SubscriptionPending   = "pending"
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
)

// Account represents a registered law firm.
type Account struct {
	UID                string
	FirmName           string
	Email              string
	Phone              string
	PasswordHash       string
	Role               string
	SubscriptionStatus string
	CreatedAt          time.Time
}
