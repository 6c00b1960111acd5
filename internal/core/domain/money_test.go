package domain_test

import (
	"testing"

	"github.com/SscSPs/funds_flow_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyArithmeticRequiresMatchingCurrency(t *testing.T) {
	a := domain.NewMoney(decimal.NewFromInt(10), "USD")
	b := domain.NewMoney(decimal.NewFromInt(3), "USD")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount.Equal(decimal.NewFromInt(13)))

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount.Equal(decimal.NewFromInt(7)))

	other := domain.NewMoney(decimal.NewFromInt(1), "GBP")
	_, err = a.Add(other)
	assert.Error(t, err)
	_, err = a.Sub(other)
	assert.Error(t, err)
}

func TestMoneyConvertKeepsFullPrecision(t *testing.T) {
	m := domain.NewMoney(decimal.NewFromInt(100), "GBP")
	converted := m.Convert(decimal.NewFromFloat(1.2653), "USD")

	assert.Equal(t, "USD", converted.CurrencyCode)
	assert.Equal(t, "126.53", converted.Amount.String())

	// A tenth of a cent survives until an explicit rounding step.
	fine := domain.NewMoney(decimal.NewFromFloat(0.333), "USD")
	assert.Equal(t, "0.333", fine.Amount.String())
	assert.Equal(t, "0.33", fine.RoundToCurrency().Amount.String())
}

func TestMoneyRoundToCurrencyUsesRegistryPrecision(t *testing.T) {
	jpy := domain.NewMoney(decimal.NewFromFloat(1234.6), "JPY")
	assert.Equal(t, "1235", jpy.RoundToCurrency().Amount.String())

	usd := domain.NewMoney(decimal.NewFromFloat(79.395), "USD")
	assert.Equal(t, "79.4", usd.RoundToCurrency().Amount.String())
}

func TestMoneyNeg(t *testing.T) {
	m := domain.NewMoney(decimal.NewFromFloat(12.5), "USD")
	assert.True(t, m.Neg().IsNegative())
	assert.False(t, m.IsNegative())
	assert.True(t, domain.ZeroMoney("USD").Amount.IsZero())
}
