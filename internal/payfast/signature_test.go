package payfast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSign_Deterministic(t *testing.T) {
	fields := []Field{
		{"merchant_id", "10000100"},
		{"amount", "450.00"},
		{"item_name", "Kaulela System Monthly Subscription"},
	}

	first := Sign(fields, "secret")
	for range 5 {
		assert.Equal(t, first, Sign(fields, "secret"))
	}
}

func TestSign_ReferenceVector(t *testing.T) {
	// Gateway test credentials and passphrase from the PayFast sandbox docs.
	fields := []Field{
		{"merchant_id", "10000100"},
		{"merchant_key", "46f0cd694581a"},
		{"amount", "200.00"},
		{"item_name", "Test"},
	}

	assert.Equal(t,
		"merchant_id=10000100&merchant_key=46f0cd694581a&amount=200.00&item_name=Test&passphrase=jt7NOE43FZPn",
		signatureString(fields, "jt7NOE43FZPn"))
	assert.Equal(t, "f1bb40d06e2b33ab9ce282abde8487b9", Sign(fields, "jt7NOE43FZPn"))
}

func TestSign_EmptyValuesAreExcluded(t *testing.T) {
	withEmpty := []Field{{"a", "1"}, {"b", ""}, {"c", "2"}}
	withoutEmpty := []Field{{"a", "1"}, {"c", "2"}}

	assert.Equal(t, "a=1&c=2", signatureString(withEmpty, ""))
	assert.Equal(t, Sign(withoutEmpty, ""), Sign(withEmpty, ""))
	assert.Equal(t, "b3f8c3a58418985ddc989cdd784ffa9c", Sign(withEmpty, ""))
}

func TestSign_SpaceEncodedAsPlus(t *testing.T) {
	fields := []Field{{"name_first", "hello world"}}

	assert.Equal(t, "name_first=hello+world", signatureString(fields, ""))
	assert.NotContains(t, signatureString(fields, ""), "%20")
}

func TestSign_OrderSensitive(t *testing.T) {
	ab := []Field{{"a", "1"}, {"b", "2"}}
	ba := []Field{{"b", "2"}, {"a", "1"}}

	assert.NotEqual(t, Sign(ab, ""), Sign(ba, ""))
}

func TestSign_PassphraseChangesDigest(t *testing.T) {
	fields := []Field{{"merchant_id", "10000100"}}

	assert.NotEqual(t, Sign(fields, ""), Sign(fields, "jt7NOE43FZPn"))
}
