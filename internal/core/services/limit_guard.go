package services

import (
	"github.com/SscSPs/funds_flow_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LimitGuard enforces the configurable per-operation ceiling, denominated
// in a canonical limit currency. It compares the current transaction amount
// only; rolling-period accumulation is out of scope here.
type LimitGuard struct {
	limitCurrency string
	ceilings      map[domain.OperationKind]decimal.Decimal
}

// NewLimitGuard creates a guard with per-operation ceilings.
func NewLimitGuard(limitCurrency string, depositCeiling, withdrawalCeiling decimal.Decimal) *LimitGuard {
	return &LimitGuard{
		limitCurrency: limitCurrency,
		ceilings: map[domain.OperationKind]decimal.Decimal{
			domain.Deposit:    depositCeiling,
			domain.Withdrawal: withdrawalCeiling,
		},
	}
}

// LimitCurrency returns the currency ceilings are denominated in.
func (g *LimitGuard) LimitCurrency() string {
	return g.limitCurrency
}

// Exceeds reports whether the amount, already expressed in the limit
// currency, is above the ceiling for the operation. Operations without a
// configured ceiling are unbounded.
func (g *LimitGuard) Exceeds(operation domain.OperationKind, amountInLimitCurrency decimal.Decimal) bool {
	ceiling, ok := g.ceilings[operation]
	if !ok || ceiling.IsZero() {
		return false
	}
	return amountInLimitCurrency.GreaterThan(ceiling)
}
