package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartEntrySessionRequest opens a new amount-entry session against a
// selected account. The account's currency becomes the secondary side.
type StartEntrySessionRequest struct {
	Operation string `json:"operation" binding:"required,oneof=DEPOSIT WITHDRAWAL"`
	AccountID string `json:"accountID" binding:"required,uuid"`
}

// KeystrokeRequest carries the raw digits as typed. Empty means the user
// cleared the field.
type KeystrokeRequest struct {
	RawInput string `json:"rawInput"`
}

// ChangeAccountRequest switches the session to a different account.
type ChangeAccountRequest struct {
	AccountID string `json:"accountID" binding:"required,uuid"`
}

// SideView is one side of the dual-currency display.
type SideView struct {
	CurrencyCode string          `json:"currencyCode"`
	Amount       decimal.Decimal `json:"amount"`
	Formatted    string          `json:"formatted"` // symbol + grouped decimal
}

// FeeSummary is the fee line shown under the amount display.
type FeeSummary struct {
	IsFree       bool            `json:"isFree"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	Formatted    string          `json:"formatted"`
	Degraded     bool            `json:"degraded"`
}

// EntrySessionView is the live state of an entry session as rendered to
// the client after every event.
type EntrySessionView struct {
	SessionID       string          `json:"sessionID"`
	Operation       string          `json:"operation"`
	State           string          `json:"state"`
	ActiveSide      string          `json:"activeSide"`
	AccountID       string          `json:"accountID"`
	RawInput        string          `json:"rawInput"`
	Primary         SideView        `json:"primary"`
	Secondary       SideView        `json:"secondary"`
	AppliedRate     decimal.Decimal `json:"appliedRate"`
	RateDegraded    bool            `json:"rateDegraded"`    // fallback table value in use
	RateStale       bool            `json:"rateStale"`       // cached value past the staleness threshold
	RateUnavailable bool            `json:"rateUnavailable"` // no rate at all; counter side cannot be shown
	Fee             FeeSummary      `json:"fee"`
	LimitExceeded   bool            `json:"limitExceeded"`
	LimitMessageKey string          `json:"limitMessageKey,omitempty"`
}

// ConfirmationResult is returned after a settled session is confirmed and
// its snapshot is applied to the ledger.
type ConfirmationResult struct {
	Token        string           `json:"token"`
	BalanceDelta SideView         `json:"balanceDelta"`
	Record       ActivityResponse `json:"record"`
}

// ActivityResponse mirrors domain.ActivityRecord for API responses.
type ActivityResponse struct {
	RecordID        string          `json:"recordID"`
	AccountID       string          `json:"accountID"`
	Operation       string          `json:"operation"`
	Counterparty    string          `json:"counterparty"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currencyCode"`
	DisplayAmount   decimal.Decimal `json:"displayAmount"`
	DisplayCurrency string          `json:"displayCurrency"`
	FeeAmount       decimal.Decimal `json:"feeAmount"`
	FeeCurrency     string          `json:"feeCurrency"`
	OccurredAt      time.Time       `json:"occurredAt"`
}
