package payfast

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildITNBody renders an ITN body the way the gateway would: fields in wire
// order with a trailing signature computed over them.
func buildITNBody(fields []Field, passphrase string) string {
	signed := append(append([]Field{}, fields...), Field{"signature", Sign(fields, passphrase)})
	var parts []string
	for _, f := range signed {
		parts = append(parts, url.QueryEscape(f.Key)+"="+url.QueryEscape(f.Value))
	}
	return strings.Join(parts, "&")
}

func sampleITNFields() []Field {
	return []Field{
		{"m_payment_id", "7e12b0a8-8d3d-4f3a-9f6e-3a1a1c2b3d4e"},
		{"pf_payment_id", "1089250"},
		{"payment_status", "COMPLETE"},
		{"item_name", "Kaulela System Monthly Subscription"},
		{"amount_gross", "450.00"},
		{"amount_fee", "-10.35"},
		{"amount_net", "439.65"},
		{"name_first", "Kaulela Legal"},
		{"email_address", "firm@example.com"},
		{"merchant_id", "10000100"},
	}
}

func TestParseNotification_PreservesOrder(t *testing.T) {
	body := buildITNBody(sampleITNFields(), "jt7NOE43FZPn")

	n, err := ParseNotification([]byte(body))
	require.NoError(t, err)

	assert.Equal(t, "m_payment_id", n.Fields[0].Key)
	assert.Equal(t, "signature", n.Fields[len(n.Fields)-1].Key)
	assert.Equal(t, "7e12b0a8-8d3d-4f3a-9f6e-3a1a1c2b3d4e", n.PaymentID())
	assert.Equal(t, StatusComplete, n.PaymentStatus())
	assert.Equal(t, "1089250", n.PFPaymentID())
	assert.Equal(t, "450.00", n.AmountGross())
	assert.Equal(t, "Kaulela Legal", n.Get("name_first"))
}

func TestParseNotification_DecodesFormEncoding(t *testing.T) {
	n, err := ParseNotification([]byte("name_first=hello+world&item_name=Test%20Item"))
	require.NoError(t, err)

	assert.Equal(t, "hello world", n.Get("name_first"))
	assert.Equal(t, "Test Item", n.Get("item_name"))
}

func TestParseNotification_Errors(t *testing.T) {
	_, err := ParseNotification([]byte(""))
	assert.Error(t, err)

	_, err = ParseNotification([]byte("a=%zz"))
	assert.Error(t, err)
}

func TestVerifySignature(t *testing.T) {
	passphrase := "jt7NOE43FZPn"

	t.Run("valid signature", func(t *testing.T) {
		n, err := ParseNotification([]byte(buildITNBody(sampleITNFields(), passphrase)))
		require.NoError(t, err)
		assert.True(t, n.VerifySignature(passphrase))
	})

	t.Run("tampered amount", func(t *testing.T) {
		body := buildITNBody(sampleITNFields(), passphrase)
		body = strings.Replace(body, "amount_gross=450.00", "amount_gross=1.00", 1)
		n, err := ParseNotification([]byte(body))
		require.NoError(t, err)
		assert.False(t, n.VerifySignature(passphrase))
	})

	t.Run("wrong passphrase", func(t *testing.T) {
		n, err := ParseNotification([]byte(buildITNBody(sampleITNFields(), passphrase)))
		require.NoError(t, err)
		assert.False(t, n.VerifySignature("other-passphrase"))
	})

	t.Run("missing signature field", func(t *testing.T) {
		n, err := ParseNotification([]byte("m_payment_id=abc&payment_status=COMPLETE"))
		require.NoError(t, err)
		assert.False(t, n.VerifySignature(passphrase))
	})

	t.Run("reordered fields invalidate signature", func(t *testing.T) {
		fields := sampleITNFields()
		reordered := append([]Field{fields[1], fields[0]}, fields[2:]...)
		body := buildITNBody(fields, passphrase)
		n, err := ParseNotification([]byte(body))
		require.NoError(t, err)
		require.True(t, n.VerifySignature(passphrase))

		// Same fields, different wire order: the digest must differ.
		assert.NotEqual(t, Sign(fields, passphrase), Sign(reordered, passphrase))
	})
}

func TestNotificationEncode_RoundTrip(t *testing.T) {
	body := buildITNBody(sampleITNFields(), "jt7NOE43FZPn")

	n, err := ParseNotification([]byte(body))
	require.NoError(t, err)

	reparsed, err := ParseNotification([]byte(n.Encode()))
	require.NoError(t, err)
	assert.Equal(t, n.Fields, reparsed.Fields)
	assert.True(t, reparsed.VerifySignature("jt7NOE43FZPn"))
}
