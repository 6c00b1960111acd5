package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConfirmationSnapshot is the frozen output of a settled entry session.
// It is immutable once produced: the live session may keep changing, but a
// snapshot handed to the ledger never re-reads the rate cache. Token is
// single-use; replaying it is a hard failure.
type ConfirmationSnapshot struct {
	Token           string          `json:"token"` // single-use UUID
	Operation       OperationKind   `json:"operation"`
	AccountID       string          `json:"accountID"`
	Counterparty    string          `json:"counterparty"`
	PrimaryAmount   Money           `json:"primaryAmount"`
	SecondaryAmount Money           `json:"secondaryAmount"`
	Fee             FeeResult       `json:"fee"`
	AppliedRate     decimal.Decimal `json:"appliedRate"` // primary -> secondary, frozen at settle
	RateDegraded    bool            `json:"rateDegraded"`
	FrozenAt        time.Time       `json:"frozenAt"`
}

// LedgerEffect is the applied outcome of a confirmed snapshot: one signed
// balance delta plus one immutable activity record.
type LedgerEffect struct {
	BalanceDelta Money          `json:"balanceDelta"`
	Record       ActivityRecord `json:"record"`
}
