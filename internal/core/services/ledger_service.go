package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/funds_flow_app/internal/apperrors"
	"github.com/SscSPs/funds_flow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/funds_flow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/funds_flow_app/internal/core/ports/services"
	"github.com/SscSPs/funds_flow_app/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ledgerService applies confirmed snapshots to stored balances. Every Apply
// is one database transaction: claim the confirmation token, lock and adjust
// the account balance, append the activity record. The token claim is the
// exactly-once gate; a replayed token aborts before any balance change.
type ledgerService struct {
	ledgerRepo  portsrepo.LedgerRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewLedgerService creates the ledger effect applier.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryWithTx, accountRepo portsrepo.AccountRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo, accountRepo: accountRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// feeInStorage expresses the snapshot fee in the account's storage currency
// using only data frozen in the snapshot. The fee was computed against the
// same rate the snapshot froze, so no cache read happens here.
func feeInStorage(snapshot domain.ConfirmationSnapshot) decimal.Decimal {
	if snapshot.Fee.IsFree || snapshot.Fee.Amount.IsZero() {
		return decimal.Zero
	}

	storageCcy := snapshot.SecondaryAmount.CurrencyCode
	switch snapshot.Fee.CurrencyCode {
	case storageCcy:
		return snapshot.Fee.Amount
	case snapshot.PrimaryAmount.CurrencyCode:
		if snapshot.AppliedRate.IsPositive() {
			return snapshot.Fee.Amount.Mul(snapshot.AppliedRate)
		}
	}
	// No frozen rate covers the fee currency; apply face value rather than
	// dropping the fee.
	return snapshot.Fee.Amount
}

// Apply executes the snapshot exactly once.
//
// Deposits credit the storage-side amount net of the fee, clamped at zero so
// a fee larger than a tiny deposit never drives the credit negative.
// Withdrawals deduct the storage-side amount plus the fee and fail with
// ErrInsufficientBalance when the balance cannot cover it.
func (s *ledgerService) Apply(ctx context.Context, snapshot domain.ConfirmationSnapshot) (*domain.LedgerEffect, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	now := time.Now().UTC()

	if err := s.ledgerRepo.InsertConfirmationInTx(ctx, tx, snapshot.Token, now); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, snapshot.AccountID)
	if err != nil {
		return nil, err
	}

	feeStorage := feeInStorage(snapshot)
	storageCcy := account.CurrencyCode

	var delta decimal.Decimal
	switch snapshot.Operation {
	case domain.Deposit:
		delta = snapshot.SecondaryAmount.Amount.Sub(feeStorage)
		if delta.IsNegative() {
			delta = decimal.Zero
		}
	case domain.Withdrawal:
		delta = snapshot.SecondaryAmount.Amount.Add(feeStorage).Neg()
	default:
		return nil, fmt.Errorf("%w: unknown operation '%s'", apperrors.ErrValidation, snapshot.Operation)
	}

	// Round at the ledger boundary only; the snapshot keeps full precision.
	delta = domain.NewMoney(delta, storageCcy).RoundToCurrency().Amount

	newBalance := account.Balance.Add(delta)
	if newBalance.IsNegative() {
		return nil, fmt.Errorf("%w: account %s balance %s cannot cover %s",
			apperrors.ErrInsufficientBalance, account.AccountID, account.Balance.String(), delta.Abs().String())
	}

	if err := s.accountRepo.UpdateBalanceInTx(ctx, tx, account.AccountID, newBalance, now); err != nil {
		return nil, err
	}

	// The display amount carries the operation's sign like the storage-side
	// delta does.
	displayAmount := snapshot.PrimaryAmount.Amount
	if snapshot.Operation == domain.Withdrawal {
		displayAmount = displayAmount.Neg()
	}

	record := domain.ActivityRecord{
		RecordID:        uuid.NewString(),
		AccountID:       account.AccountID,
		Operation:       snapshot.Operation,
		Counterparty:    snapshot.Counterparty,
		Amount:          delta,
		CurrencyCode:    storageCcy,
		DisplayAmount:   displayAmount,
		DisplayCurrency: snapshot.PrimaryAmount.CurrencyCode,
		FeeAmount:       snapshot.Fee.Amount,
		FeeCurrency:     snapshot.Fee.CurrencyCode,
		OccurredAt:      now,
	}
	if err := s.ledgerRepo.SaveActivityInTx(ctx, tx, record); err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit ledger effect: %w", err)
	}

	logger.Info("Ledger effect applied",
		slog.String("token", snapshot.Token),
		slog.String("account_id", account.AccountID),
		slog.String("operation", string(snapshot.Operation)),
		slog.String("delta", delta.String()))

	return &domain.LedgerEffect{
		BalanceDelta: domain.NewMoney(delta, storageCcy),
		Record:       record,
	}, nil
}
