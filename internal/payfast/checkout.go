package payfast

import (
	"errors"
)

// Gateway endpoints. The sandbox/production switch is always explicit; the
// assembler never silently defaults to the live endpoint.
const (
	SandboxProcessURL  = "https://sandbox.payfast.co.za/eng/process"
	LiveProcessURL     = "https://www.payfast.co.za/eng/process"
	sandboxValidateURL = "https://sandbox.payfast.co.za/eng/query/validate"
	liveValidateURL    = "https://www.payfast.co.za/eng/query/validate"
)

// ITN payment_status tokens defined by the gateway.
const (
	StatusComplete  = "COMPLETE"
	StatusCancelled = "CANCELLED"
)

// FrequencyMonthly is the gateway code for a monthly recurring cycle.
const FrequencyMonthly = "3"

// ErrMissingMerchantCredentials is returned when a live checkout is requested
// without both merchant id and merchant key configured.
var ErrMissingMerchantCredentials = errors.New("payfast: production checkout requires merchant_id and merchant_key")

// CheckoutParams carries everything needed to assemble a payment-initiation
// payload. All numeric fields are pre-stringified by the caller.
type CheckoutParams struct {
	MerchantID  string
	MerchantKey string
	Passphrase  string

	ReturnURL string
	CancelURL string
	NotifyURL string

	NameFirst    string
	EmailAddress string

	// PaymentID is the m_payment_id: unique per attempt and resolvable back
	// to exactly one account. Never derived from a timestamp.
	PaymentID string
	Amount    string // fixed-point decimal with exactly two fraction digits
	ItemName  string

	// Recurring adds subscription_type=1 and the frequency code.
	Recurring bool
	Frequency string

	Sandbox bool
}

// Checkout is the assembled, signed payload plus the endpoint to submit it to.
type Checkout struct {
	Fields     []Field
	ProcessURL string
}

// BuildCheckout populates the field set in the gateway-mandated order, signs
// it and appends the signature field. Construction is pure: the caller is
// responsible for persisting the pending account and payment attempt first.
func BuildCheckout(p CheckoutParams) (*Checkout, error) {
	if !p.Sandbox && (p.MerchantID == "" || p.MerchantKey == "") {
		return nil, ErrMissingMerchantCredentials
	}

	fields := []Field{
		{"merchant_id", p.MerchantID},
		{"merchant_key", p.MerchantKey},
		{"return_url", p.ReturnURL},
		{"cancel_url", p.CancelURL},
		{"notify_url", p.NotifyURL},
		{"name_first", p.NameFirst},
		{"email_address", p.EmailAddress},
		{"m_payment_id", p.PaymentID},
		{"amount", p.Amount},
		{"item_name", p.ItemName},
	}
	if p.Recurring {
		fields = append(fields,
			Field{"subscription_type", "1"},
			Field{"frequency", p.Frequency},
		)
	}

	signature := Sign(fields, p.Passphrase)
	fields = append(fields, Field{"signature", signature})

	processURL := LiveProcessURL
	if p.Sandbox {
		processURL = SandboxProcessURL
	}

	return &Checkout{
		Fields:     fields,
		ProcessURL: processURL,
	}, nil
}

// Map returns the payload as a plain map for JSON serialization. Order only
// matters for signing, which has already happened over Fields.
func (c *Checkout) Map() map[string]string {
	m := make(map[string]string, len(c.Fields))
	for _, f := range c.Fields {
		if f.Value == "" {
			continue
		}
		m[f.Key] = f.Value
	}
	return m
}
