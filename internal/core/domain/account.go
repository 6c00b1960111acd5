package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a stored balance in a single storage currency. The currency is
// fixed at creation; entry sessions read it to pick their secondary side.
type Account struct {
	AccountID    string          `json:"accountID"` // UUID
	Name         string          `json:"name"`
	CurrencyCode string          `json:"currencyCode"` // storage currency
	Balance      decimal.Decimal `json:"balance"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}

// ActivityRecord is the immutable record appended for every applied ledger
// effect. Amount carries the signed storage-currency delta; DisplayAmount
// carries the signed amount as the user entered it.
type ActivityRecord struct {
	RecordID        string          `json:"recordID"` // UUID
	AccountID       string          `json:"accountID"`
	Operation       OperationKind   `json:"operation"`
	Counterparty    string          `json:"counterparty"`
	Amount          decimal.Decimal `json:"amount"` // signed, storage currency
	CurrencyCode    string          `json:"currencyCode"`
	DisplayAmount   decimal.Decimal `json:"displayAmount"` // signed, display currency
	DisplayCurrency string          `json:"displayCurrency"`
	FeeAmount       decimal.Decimal `json:"feeAmount"`
	FeeCurrency     string          `json:"feeCurrency"`
	OccurredAt      time.Time       `json:"occurredAt"`
}
