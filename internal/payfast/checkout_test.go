package payfast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCheckoutParams() CheckoutParams {
	return CheckoutParams{
		MerchantID:   "10000100",
		MerchantKey:  "46f0cd694581a",
		Passphrase:   "jt7NOE43FZPn",
		ReturnURL:    "https://app.kaulela.co.za/success",
		CancelURL:    "https://app.kaulela.co.za/cancel",
		NotifyURL:    "https://api.kaulela.co.za/api/v1/payfast/notify",
		NameFirst:    "Kaulela Legal",
		EmailAddress: "firm@example.com",
		PaymentID:    "7e12b0a8-8d3d-4f3a-9f6e-3a1a1c2b3d4e",
		Amount:       "450.00",
		ItemName:     "Kaulela System Monthly Subscription",
		Recurring:    true,
		Frequency:    FrequencyMonthly,
		Sandbox:      true,
	}
}

func TestBuildCheckout_FieldOrderAndSignature(t *testing.T) {
	checkout, err := BuildCheckout(testCheckoutParams())
	require.NoError(t, err)

	wantOrder := []string{
		"merchant_id", "merchant_key", "return_url", "cancel_url", "notify_url",
		"name_first", "email_address", "m_payment_id", "amount", "item_name",
		"subscription_type", "frequency", "signature",
	}
	gotOrder := make([]string, 0, len(checkout.Fields))
	for _, f := range checkout.Fields {
		gotOrder = append(gotOrder, f.Key)
	}
	assert.Equal(t, wantOrder, gotOrder)

	// Signature must cover every field before it, in that order.
	signature := checkout.Fields[len(checkout.Fields)-1]
	assert.Equal(t, "signature", signature.Key)
	assert.Equal(t, Sign(checkout.Fields[:len(checkout.Fields)-1], "jt7NOE43FZPn"), signature.Value)
}

func TestBuildCheckout_EndpointSelection(t *testing.T) {
	params := testCheckoutParams()

	checkout, err := BuildCheckout(params)
	require.NoError(t, err)
	assert.Equal(t, SandboxProcessURL, checkout.ProcessURL)

	params.Sandbox = false
	checkout, err = BuildCheckout(params)
	require.NoError(t, err)
	assert.Equal(t, LiveProcessURL, checkout.ProcessURL)
}

func TestBuildCheckout_ProductionRequiresCredentials(t *testing.T) {
	params := testCheckoutParams()
	params.Sandbox = false
	params.MerchantKey = ""

	_, err := BuildCheckout(params)
	assert.ErrorIs(t, err, ErrMissingMerchantCredentials)

	params.MerchantKey = "46f0cd694581a"
	params.MerchantID = ""
	_, err = BuildCheckout(params)
	assert.ErrorIs(t, err, ErrMissingMerchantCredentials)
}

func TestBuildCheckout_OneTimePaymentHasNoRecurrenceFields(t *testing.T) {
	params := testCheckoutParams()
	params.Recurring = false

	checkout, err := BuildCheckout(params)
	require.NoError(t, err)

	m := checkout.Map()
	assert.NotContains(t, m, "subscription_type")
	assert.NotContains(t, m, "frequency")
	assert.Contains(t, m, "signature")
}
