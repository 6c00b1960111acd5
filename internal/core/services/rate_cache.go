package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/funds_flow_app/internal/apperrors"
	"github.com/SscSPs/funds_flow_app/internal/core/domain"
	portssvc "github.com/SscSPs/funds_flow_app/internal/core/ports/services"
	"github.com/SscSPs/funds_flow_app/internal/middleware"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// bootstrapRates is the static fallback table, keyed by canonical pair.
// Approximate by construction; quotes served from it are flagged Degraded
// so every consumer (reconciler, fee policy, display) marks them the same
// way. Used only when nothing is cached and the live fetch fails.
var bootstrapRates = map[string]decimal.Decimal{
	"EUR/GBP":  decimal.NewFromFloat(0.85),
	"EUR/USD":  decimal.NewFromFloat(1.08),
	"GBP/USD":  decimal.NewFromFloat(1.27),
	"INR/USD":  decimal.NewFromFloat(0.012),
	"JPY/USD":  decimal.NewFromFloat(0.0067),
	"NGN/USD":  decimal.NewFromFloat(0.00065),
	"USD/USDC": decimal.NewFromFloat(1),
	"USD/USDT": decimal.NewFromFloat(1),
}

// RateCache is the process-wide cache of last-known bid rates. Entries are
// stored under one canonical direction per pair and the reciprocal is
// derived on read, so rate(A->B) * rate(B->A) == 1 within decimal division
// tolerance. Writes are last-fetch-wins per pair; entries never expire on a
// timer, but every read exposes FetchedAt and a Stale flag so callers can
// refresh in the background without blocking the value already shown.
type RateCache struct {
	source     portssvc.RateSource
	staleAfter time.Duration

	mu      sync.RWMutex
	entries map[string]domain.ExchangeRate

	group singleflight.Group
}

// NewRateCache creates a RateCache over the given source. staleAfter is the
// age past which reads are flagged stale.
func NewRateCache(source portssvc.RateSource, staleAfter time.Duration) *RateCache {
	return &RateCache{
		source:     source,
		staleAfter: staleAfter,
		entries:    make(map[string]domain.ExchangeRate),
	}
}

var _ portssvc.RateCacheFacade = (*RateCache)(nil)

// canonicalPair orders a pair lexicographically so both directions share one
// cache entry. Returns the key and whether (base, quote) is inverted
// relative to the stored direction.
func canonicalPair(base, quote string) (string, bool) {
	if base <= quote {
		return base + "/" + quote, false
	}
	return quote + "/" + base, true
}

func quoteFromEntry(entry domain.ExchangeRate, inverted bool, staleAfter time.Duration) domain.RateQuote {
	rate := entry.Rate
	if inverted {
		rate = decimal.NewFromInt(1).Div(entry.Rate)
	}
	return domain.RateQuote{
		Rate:      rate,
		FetchedAt: entry.FetchedAt,
		Stale:     time.Since(entry.FetchedAt) > staleAfter,
	}
}

// GetCachedRate returns the cached rate for a pair without blocking. Falls
// back to the bootstrap table (flagged Degraded) when nothing was ever
// fetched; reports absent when neither covers the pair.
func (c *RateCache) GetCachedRate(base, quote string) (domain.RateQuote, bool) {
	if base == quote {
		return domain.RateQuote{Rate: decimal.NewFromInt(1), FetchedAt: time.Now()}, true
	}

	key, inverted := canonicalPair(base, quote)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return quoteFromEntry(entry, inverted, c.staleAfter), true
	}

	if fallback, ok := bootstrapRates[key]; ok {
		rate := fallback
		if inverted {
			rate = decimal.NewFromInt(1).Div(fallback)
		}
		return domain.RateQuote{Rate: rate, Degraded: true}, true
	}

	return domain.RateQuote{}, false
}

// FetchRate fetches a live rate for the pair. Concurrent fetches for the
// same pair are coalesced into a single in-flight request; the cache entry
// is only ever replaced by a successful fetch.
func (c *RateCache) FetchRate(ctx context.Context, base, quote string) (domain.RateQuote, error) {
	if base == quote {
		return domain.RateQuote{Rate: decimal.NewFromInt(1), FetchedAt: time.Now()}, nil
	}

	key, inverted := canonicalPair(base, quote)

	// The in-flight fetch is shared across callers via singleflight, so one
	// caller's cancellation must not fail the rest.
	fetchCtx := context.WithoutCancel(ctx)

	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		cbase, cquote := base, quote
		if inverted {
			cbase, cquote = quote, base
		}
		rate, err := c.source.FetchRate(fetchCtx, cbase, cquote)
		if err != nil {
			return nil, err
		}
		if rate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("source returned non-positive rate %s for %s", rate.String(), key)
		}
		entry := domain.ExchangeRate{
			BaseCurrency:  cbase,
			QuoteCurrency: cquote,
			Rate:          rate,
			FetchedAt:     time.Now(),
		}
		c.mu.Lock()
		c.entries[key] = entry
		c.mu.Unlock()
		return entry, nil
	})
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Rate fetch failed",
			slog.String("base", base), slog.String("quote", quote), slog.String("error", err.Error()))
		return domain.RateQuote{}, fmt.Errorf("%w: %s/%s: %s", apperrors.ErrRateUnavailable, base, quote, err.Error())
	}

	return quoteFromEntry(result.(domain.ExchangeRate), inverted, c.staleAfter), nil
}

// Convert computes amount in the quote currency. Prefers the cached rate,
// fetches when nothing is cached, and degrades to the bootstrap table when
// the fetch fails. The returned quote carries the provenance flags.
func (c *RateCache) Convert(ctx context.Context, amount domain.Money, quoteCurrency string) (domain.Money, domain.RateQuote, error) {
	if amount.CurrencyCode == quoteCurrency {
		return amount, domain.RateQuote{Rate: decimal.NewFromInt(1), FetchedAt: time.Now()}, nil
	}

	key, _ := canonicalPair(amount.CurrencyCode, quoteCurrency)

	c.mu.RLock()
	_, cached := c.entries[key]
	c.mu.RUnlock()

	var quote domain.RateQuote
	if cached {
		quote, _ = c.GetCachedRate(amount.CurrencyCode, quoteCurrency)
	} else {
		fetched, err := c.FetchRate(ctx, amount.CurrencyCode, quoteCurrency)
		if err == nil {
			quote = fetched
		} else {
			// Degraded path: bootstrap table, visibly flagged.
			fallback, ok := c.GetCachedRate(amount.CurrencyCode, quoteCurrency)
			if !ok {
				return domain.Money{}, domain.RateQuote{}, err
			}
			quote = fallback
		}
	}

	return amount.Convert(quote.Rate, quoteCurrency), quote, nil
}
