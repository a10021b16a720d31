// Package payfast implements the PayFast signing scheme, the checkout payload
// assembler and the ITN (Instant Transaction Notification) parsing and
// verification used by the payment flow.
package payfast

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"
)

// Field is one ordered key/value pair of a gateway payload. PayFast signatures
// are order-sensitive, so payloads are slices of Field, never Go maps.
type Field struct {
	Key   string
	Value string
}

// signatureString renders the canonical string the gateway signs.
//
// Fields with an empty value are omitted entirely; this is a quirk of the
// PayFast protocol and must be preserved for compatibility. Values are
// query-escaped with "+" for spaces, joined with "&" in caller order, and the
// passphrase (when set) is appended as a final escaped field.
func signatureString(fields []Field, passphrase string) string {
	var b strings.Builder
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(f.Key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(f.Value))
	}
	if passphrase != "" {
		b.WriteString("&passphrase=")
		b.WriteString(url.QueryEscape(passphrase))
	}
	return b.String()
}

// Sign returns the lowercase hex MD5 digest of the canonical payload string.
//
// MD5 is mandated by the gateway's legacy protocol; it is not a security
// choice of this codebase. Sign is a pure function: identical fields and
// passphrase always produce an identical digest.
func Sign(fields []Field, passphrase string) string {
	sum := md5.Sum([]byte(signatureString(fields, passphrase)))
	return hex.EncodeToString(sum[:])
}
