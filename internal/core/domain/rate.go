package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a cached bid rate for a currency pair. Only the canonical
// direction of a pair is ever stored; the reciprocal is derived on read so
// the two directions cannot drift apart.
type ExchangeRate struct {
	BaseCurrency  string          `json:"baseCurrency"`
	QuoteCurrency string          `json:"quoteCurrency"`
	Rate          decimal.Decimal `json:"rate"` // invariant: > 0
	FetchedAt     time.Time       `json:"fetchedAt"`
}

// RateQuote is what rate-cache reads hand to callers: the rate plus enough
// provenance for the caller to mark the value as approximate or stale.
type RateQuote struct {
	Rate      decimal.Decimal `json:"rate"`
	FetchedAt time.Time       `json:"fetchedAt"`
	Degraded  bool            `json:"degraded"` // from the static bootstrap table, not a live fetch
	Stale     bool            `json:"stale"`    // older than the staleness threshold
}
