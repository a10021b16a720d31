package payfast

import (
	"crypto/hmac"
	"fmt"
	"net/url"
	"strings"
)

// Notification is a parsed ITN callback body. The gateway signs the fields in
// the order it sent them, so the parser keeps that order instead of going
// through http.Request.ParseForm (which would lose it).
type Notification struct {
	Fields []Field
	values map[string]string
}

// ParseNotification decodes an application/x-www-form-urlencoded ITN body
// preserving field order.
func ParseNotification(body []byte) (*Notification, error) {
	const op = "payfast.ParseNotification"

	n := &Notification{values: make(map[string]string)}
	for _, pair := range strings.Split(string(body), "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("%s: bad key %q: %w", op, rawKey, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("%s: bad value for %q: %w", op, key, err)
		}
		n.Fields = append(n.Fields, Field{Key: key, Value: value})
		n.values[key] = value
	}
	if len(n.Fields) == 0 {
		return nil, fmt.Errorf("%s: empty body", op)
	}
	return n, nil
}

// Get returns the value of a field, or "" when absent.
func (n *Notification) Get(key string) string {
	return n.values[key]
}

// PaymentID returns m_payment_id, the reference minted at checkout.
func (n *Notification) PaymentID() string { return n.values["m_payment_id"] }

// PaymentStatus returns the gateway status token, e.g. "COMPLETE".
func (n *Notification) PaymentStatus() string { return n.values["payment_status"] }

// PFPaymentID returns the gateway's own payment identifier.
func (n *Notification) PFPaymentID() string { return n.values["pf_payment_id"] }

// AmountGross returns the claimed gross amount string.
func (n *Notification) AmountGross() string { return n.values["amount_gross"] }

// VerifySignature recomputes the signature over the received fields (minus
// the signature field itself, in received order) and compares it with the
// signature the gateway sent.
func (n *Notification) VerifySignature(passphrase string) bool {
	received := n.values["signature"]
	if received == "" {
		return false
	}
	signed := make([]Field, 0, len(n.Fields))
	for _, f := range n.Fields {
		if f.Key == "signature" {
			continue
		}
		signed = append(signed, f)
	}
	expected := Sign(signed, passphrase)
	return hmac.Equal([]byte(expected), []byte(received))
}

// Encode re-renders the notification body in its original order, for the
// server-to-server validation callback.
func (n *Notification) Encode() string {
	var b strings.Builder
	for _, f := range n.Fields {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(f.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(f.Value))
	}
	return b.String()
}
