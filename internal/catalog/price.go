package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice converts a stored price string to a decimal amount. Prices are
// stored for display and may carry a currency glyph or thousands separators
// ("$45", "$1,299.99"). Everything that is not a digit or a decimal point is
// stripped before parsing. Unparseable input degrades to zero instead of
// failing, so one bad document cannot break filtering or totals.
func ParsePrice(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}
