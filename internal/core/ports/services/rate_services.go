package services

import (
	"context"

	"github.com/SscSPs/funds_flow_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateSource is the external rate-fetch collaborator behind the cache.
// Implementations live in adapters; failures are recoverable by design.
type RateSource interface {
	// FetchRate returns the live bid rate base -> quote.
	FetchRate(ctx context.Context, base, quote string) (decimal.Decimal, error)
}

// RateCacheFacade is the process-wide rate cache contract.
type RateCacheFacade interface {
	// GetCachedRate is synchronous and non-blocking: it returns whatever is
	// cached (possibly stale), a degraded bootstrap value if nothing was
	// ever fetched, or absent when neither covers the pair.
	GetCachedRate(base, quote string) (domain.RateQuote, bool)

	// FetchRate fetches a live rate, storing it (and making the reciprocal
	// derivable) on success. Concurrent fetches for the same pair share one
	// in-flight request. On failure any existing cache entry is untouched
	// and apperrors.ErrRateUnavailable is returned.
	FetchRate(ctx context.Context, base, quote string) (domain.RateQuote, error)

	// Convert computes amount in the quote currency, preferring the cached
	// rate, fetching when absent, and degrading to the bootstrap table when
	// the fetch fails.
	Convert(ctx context.Context, amount domain.Money, quoteCurrency string) (domain.Money, domain.RateQuote, error)
}

// FeePolicyFacade evaluates the cross-currency friction fee. Pure: equal
// inputs and rate state always yield an equal result, and results are never
// cached across evaluations.
type FeePolicyFacade interface {
	CalculateFee(ctx context.Context, operation domain.OperationKind, instrumentCurrency, referenceCurrency string) domain.FeeResult
}
