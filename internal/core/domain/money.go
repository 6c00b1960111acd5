package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an immutable amount tagged with a currency code. All arithmetic
// returns a new Money; the stored amount keeps full decimal precision and is
// only rounded to currency precision at display or ledger-write time.
type Money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

// NewMoney builds a Money value.
func NewMoney(amount decimal.Decimal, currencyCode string) Money {
	return Money{Amount: amount, CurrencyCode: currencyCode}
}

// ZeroMoney returns a zero amount in the given currency.
func ZeroMoney(currencyCode string) Money {
	return Money{Amount: decimal.Zero, CurrencyCode: currencyCode}
}

// Add returns m + other. Both sides must share a currency.
func (m Money) Add(other Money) (Money, error) {
	if m.CurrencyCode != other.CurrencyCode {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.CurrencyCode, other.CurrencyCode)
	}
	return Money{Amount: m.Amount.Add(other.Amount), CurrencyCode: m.CurrencyCode}, nil
}

// Sub returns m - other. Both sides must share a currency.
func (m Money) Sub(other Money) (Money, error) {
	if m.CurrencyCode != other.CurrencyCode {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.CurrencyCode, other.CurrencyCode)
	}
	return Money{Amount: m.Amount.Sub(other.Amount), CurrencyCode: m.CurrencyCode}, nil
}

// Convert applies a rate to produce an amount in the quote currency.
func (m Money) Convert(rate decimal.Decimal, quoteCurrency string) Money {
	return Money{Amount: m.Amount.Mul(rate), CurrencyCode: quoteCurrency}
}

// Neg returns the negated amount, for signed display deltas.
func (m Money) Neg() Money {
	return Money{Amount: m.Amount.Neg(), CurrencyCode: m.CurrencyCode}
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// RoundToCurrency rounds half-up to the currency's display precision.
// Unknown codes round to two decimal places.
func (m Money) RoundToCurrency() Money {
	precision := int32(2)
	if c, ok := CurrencyByCode(m.CurrencyCode); ok {
		precision = int32(c.Precision)
	}
	return Money{Amount: m.Amount.Round(precision), CurrencyCode: m.CurrencyCode}
}
