// Package format holds the money and date display helpers shared by
// messages and reports.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Currency renders an amount with thousands separators and the currency
// label, e.g. "1,200,000 IQD". Fractional digits are kept only when present,
// capped at two.
func Currency(amount decimal.Decimal, currency string) string {
	s := amount.StringFixed(2)
	s = strings.TrimSuffix(s, ".00")

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteString(fracPart)
	b.WriteByte(' ')
	b.WriteString(currency)
	return b.String()
}

// Date renders a calendar date for display.
func Date(t time.Time) string {
	return t.Format("2006-01-02")
}
