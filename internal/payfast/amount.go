package payfast

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAmount converts a gateway amount string ("450.00", "450.0", "450")
// to integer cents. Amounts are stored as cents so the ITN cross-check is
// insensitive to formatting differences.
func ParseAmount(s string) (int64, error) {
	const op = "payfast.ParseAmount"
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%s: empty amount", op)
	}

	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > 2 {
		return 0, fmt.Errorf("%s: too many fraction digits in %q", op, s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	rands, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if rands < 0 || strings.HasPrefix(whole, "-") {
		return 0, fmt.Errorf("%s: negative amount %q", op, s)
	}
	return rands*100 + cents, nil
}

// FormatAmount renders cents as the two-fraction-digit string the gateway
// requires, e.g. 45000 -> "450.00".
func FormatAmount(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
