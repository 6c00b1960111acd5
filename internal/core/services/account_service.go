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
	"github.com/SscSPs/funds_flow_app/internal/dto"
	"github.com/SscSPs/funds_flow_app/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepository
}

// NewAccountService creates the account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo, ledgerRepo: ledgerRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a zero-balance account in a supported currency.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.IsSupportedCurrency(req.CurrencyCode) {
		return nil, fmt.Errorf("%w: unsupported currency '%s'", apperrors.ErrValidation, req.CurrencyCode)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		Name:         req.Name,
		CurrencyCode: req.CurrencyCode,
		Balance:      decimal.Zero,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Account created",
		slog.String("account_id", account.AccountID),
		slog.String("currency", account.CurrencyCode))
	return &account, nil
}

// GetAccountByID fetches a single account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// ListAccounts returns a page of accounts.
func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.accountRepo.ListAccounts(ctx, limit, offset)
}

// ListActivity returns the account's activity feed, newest first.
func (s *accountService) ListActivity(ctx context.Context, accountID string, limit int) ([]domain.ActivityRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.ListActivityByAccount(ctx, accountID, limit)
}
