package models

// SMSEvent is the message published to the notification queue and consumed by
// the SMS sender worker.
type SMSEvent struct {
	AccountUID string `json:"account_uid"`
	Phone      string `json:"phone"`
	Body       string `json:"body"`
}
