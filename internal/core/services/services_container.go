package services

import (
	portsrepo "github.com/SscSPs/funds_flow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/funds_flow_app/internal/core/ports/services"
	"github.com/SscSPs/funds_flow_app/internal/platform/config"
)

// NewServiceContainer wires the full service graph from repositories, the
// rate source, and configuration.
func NewServiceContainer(
	cfg *config.Config,
	accountRepo portsrepo.AccountRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryWithTx,
	rateSource portssvc.RateSource,
) *portssvc.ServiceContainer {
	rateCache := NewRateCache(rateSource, cfg.RateStaleAfter)
	feePolicy := NewFeePolicy(rateCache, cfg.CrossCurrencyFee)
	limitGuard := NewLimitGuard(cfg.LimitCurrency, cfg.DepositCeiling, cfg.WithdrawalCeiling)
	ledgerSvc := NewLedgerService(ledgerRepo, accountRepo)

	return &portssvc.ServiceContainer{
		Account:      NewAccountService(accountRepo, ledgerRepo),
		RateCache:    rateCache,
		FeePolicy:    feePolicy,
		Ledger:       ledgerSvc,
		EntrySession: NewEntrySessionService(rateCache, feePolicy, limitGuard, ledgerSvc, accountRepo, cfg.ReferenceCurrency),
	}
}
