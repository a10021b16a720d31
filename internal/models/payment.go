package models

import "time"

// Payment attempt status values.
const (
	PaymentCreated  = "created"
	PaymentComplete = "complete"
	PaymentFailed   = "failed"
)

// Payment is one checkout attempt. MPaymentID is the reference sent to the
// gateway as m_payment_id; it is unique per attempt and resolves back to
// exactly one account.
type Payment struct {
	ID          int
	MPaymentID  string
	AccountUID  string
	AmountCents int64
	ItemName    string
	Status      string
	PFPaymentID string
	CreatedAt   time.Time
	CompletedAt *time.Time
}
