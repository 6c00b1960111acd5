package dto

import (
	"time"

	"github.com/SscSPs/funds_flow_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateResponse defines the structure for API responses containing a rate
// quote. Degraded marks bootstrap-table values so clients can render them
// as approximate.
type RateResponse struct {
	BaseCurrency  string          `json:"baseCurrency"`
	QuoteCurrency string          `json:"quoteCurrency"`
	Rate          decimal.Decimal `json:"rate"`
	FetchedAt     time.Time       `json:"fetchedAt"`
	Degraded      bool            `json:"degraded"`
	Stale         bool            `json:"stale"`
}

// ToRateResponse converts a domain.RateQuote to RateResponse DTO
func ToRateResponse(base, quote string, q domain.RateQuote) RateResponse {
	return RateResponse{
		BaseCurrency:  base,
		QuoteCurrency: quote,
		Rate:          q.Rate,
		FetchedAt:     q.FetchedAt,
		Degraded:      q.Degraded,
		Stale:         q.Stale,
	}
}
