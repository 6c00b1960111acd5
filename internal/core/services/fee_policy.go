package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/funds_flow_app/internal/apperrors"
	"github.com/SscSPs/funds_flow_app/internal/core/domain"
	portssvc "github.com/SscSPs/funds_flow_app/internal/core/ports/services"
	"github.com/SscSPs/funds_flow_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// FeePolicy computes the currency-mismatch friction fee. The fee magnitude
// is a fixed amount denominated in the flow's reference currency, not a
// percentage. A fee applies only when the instrument currency differs from
// the reference currency; the same-currency case is always free.
//
// For withdrawals the fee is expressed in the instrument (payout-side)
// currency via a rate conversion, since that is the side the user reads it
// against; the ledger converts it back to the storage currency at apply
// time using the frozen snapshot rate. For deposits it stays in reference
// currency units, which the credited storage side absorbs directly.
type FeePolicy struct {
	rates     portssvc.RateCacheFacade
	feeAmount decimal.Decimal
}

// NewFeePolicy creates a FeePolicy with the configured fixed fee amount.
func NewFeePolicy(rates portssvc.RateCacheFacade, feeAmount decimal.Decimal) *FeePolicy {
	return &FeePolicy{rates: rates, feeAmount: feeAmount}
}

var _ portssvc.FeePolicyFacade = (*FeePolicy)(nil)

// CalculateFee evaluates the fee for one operation. It never errors and
// never blocks the flow: when no rate and no fallback exists for the
// conversion pair, the fee is applied in reference currency units at face
// value, flagged degraded rather than silently dropped.
func (p *FeePolicy) CalculateFee(ctx context.Context, operation domain.OperationKind, instrumentCurrency, referenceCurrency string) domain.FeeResult {
	if instrumentCurrency == referenceCurrency {
		return domain.FreeFee(referenceCurrency)
	}

	if operation == domain.Deposit {
		return domain.FeeResult{Amount: p.feeAmount, CurrencyCode: referenceCurrency}
	}

	converted, quote, err := p.rates.Convert(ctx, domain.NewMoney(p.feeAmount, referenceCurrency), instrumentCurrency)
	if err != nil {
		if !errors.Is(err, apperrors.ErrRateUnavailable) {
			middleware.GetLoggerFromCtx(ctx).Warn("Fee conversion failed",
				slog.String("instrument", instrumentCurrency), slog.String("reference", referenceCurrency),
				slog.String("error", err.Error()))
		}
		// Face value in reference currency, never dropped.
		return domain.FeeResult{Amount: p.feeAmount, CurrencyCode: referenceCurrency, Degraded: true}
	}

	return domain.FeeResult{
		Amount:       converted.Amount,
		CurrencyCode: instrumentCurrency,
		Degraded:     quote.Degraded,
	}
}
