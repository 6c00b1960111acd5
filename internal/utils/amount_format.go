package utils

import (
	"strings"

	"github.com/SscSPs/funds_flow_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatWithCurrencySymbol formats an amount for display: currency symbol,
// thousands grouping, and the currency's display precision with half-up
// rounding.
// Example: 1234.5 with GBP returns "£1,234.50"
// Example: 1234.5 with JPY (precision 0) returns "¥1,235"
func FormatWithCurrencySymbol(amount decimal.Decimal, currency domain.Currency) string {
	rounded := amount.Round(int32(currency.Precision))
	fixed := rounded.StringFixed(int32(currency.Precision))

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart := fixed
	fracPart := ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i:]
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(currency.Symbol)
	b.WriteString(groupThousands(intPart))
	b.WriteString(fracPart)
	return b.String()
}

// FormatEditable renders an amount the way it re-enters the input field on a
// currency-side swap: whole values lose trailing zeros ("100", not
// "100.00"), fractional values use a fixed two-decimal form.
func FormatEditable(amount decimal.Decimal) string {
	if amount.IsZero() {
		return ""
	}
	if amount.Equal(amount.Truncate(0)) {
		return amount.Truncate(0).String()
	}
	return amount.StringFixed(2)
}

// ParseAmountInput parses a raw typed amount string as a non-negative
// decimal. Partial or malformed input (trailing separator, stray
// characters) is treated as the longest valid numeric prefix; there is no
// user-visible error state for a half-typed number. Grouping commas are
// ignored. Returns the parsed value and the accepted prefix.
func ParseAmountInput(raw string) (decimal.Decimal, string) {
	var b strings.Builder
	seenDot := false
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ',':
			// grouping separator, skip
		case r == '.' && !seenDot:
			seenDot = true
			b.WriteRune(r)
		default:
			goto done
		}
	}
done:
	accepted := b.String()
	numeric := strings.TrimSuffix(accepted, ".")
	if numeric == "" {
		return decimal.Zero, accepted
	}
	value, err := decimal.NewFromString(numeric)
	if err != nil || value.IsNegative() {
		return decimal.Zero, ""
	}
	return value, accepted
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	first := n % 3
	if first > 0 {
		b.WriteString(digits[:first])
	}
	for i := first; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
