package utils_test

import (
	"testing"

	"github.com/SscSPs/funds_flow_app/internal/core/domain"
	"github.com/SscSPs/funds_flow_app/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCurrency(t *testing.T, code string) domain.Currency {
	t.Helper()
	c, ok := domain.CurrencyByCode(code)
	require.True(t, ok)
	return c
}

func TestFormatWithCurrencySymbol(t *testing.T) {
	gbp := mustCurrency(t, "GBP")
	jpy := mustCurrency(t, "JPY")

	tests := []struct {
		name     string
		amount   decimal.Decimal
		currency domain.Currency
		want     string
	}{
		{"plain", decimal.NewFromFloat(1234.5), gbp, "£1,234.50"},
		{"zero", decimal.Zero, gbp, "£0.00"},
		{"grouping", decimal.NewFromInt(1000000), gbp, "£1,000,000.00"},
		{"negative", decimal.NewFromFloat(-42.1), gbp, "-£42.10"},
		{"half up rounding", decimal.NewFromFloat(0.005), gbp, "£0.01"},
		{"zero precision", decimal.NewFromFloat(1234.5), jpy, "¥1,235"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.FormatWithCurrencySymbol(tt.amount, tt.currency))
		})
	}
}

func TestFormatEditable(t *testing.T) {
	assert.Equal(t, "", utils.FormatEditable(decimal.Zero))
	assert.Equal(t, "100", utils.FormatEditable(decimal.NewFromInt(100)))
	assert.Equal(t, "80.50", utils.FormatEditable(decimal.NewFromFloat(80.5)))
}

func TestParseAmountInput(t *testing.T) {
	tests := []struct {
		raw          string
		wantValue    string
		wantAccepted string
	}{
		{"", "0", ""},
		{"100", "100", "100"},
		{"1,234.56", "1234.56", "1,234.56"},
		{"12.", "12", "12."},        // trailing separator is a valid prefix
		{"12.3.4", "12.3", "12.3"},  // second dot truncates
		{"12a3", "12", "12"},        // stray character truncates
		{".", "0", "."},             // lone separator parses as zero
		{"abc", "0", ""},            // nothing numeric at all
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			value, accepted := utils.ParseAmountInput(tt.raw)
			assert.Equal(t, tt.wantValue, value.String())
			assert.Equal(t, tt.wantAccepted, accepted)
		})
	}
}
