package domain

import "github.com/shopspring/decimal"

// OperationKind distinguishes the two money-movement flows.
type OperationKind string

const (
	Deposit    OperationKind = "DEPOSIT"
	Withdrawal OperationKind = "WITHDRAWAL"
)

// FeeResult is the outcome of one fee evaluation. Produced fresh per
// evaluation and never cached: its correctness depends on the freshest
// available rate.
type FeeResult struct {
	IsFree       bool            `json:"isFree"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	Degraded     bool            `json:"degraded"` // converted via fallback, or left at face value
}

// FreeFee returns the zero fee in the given currency.
func FreeFee(currencyCode string) FeeResult {
	return FeeResult{IsFree: true, Amount: decimal.Zero, CurrencyCode: currencyCode}
}
