package services

import (
	"context"

	"github.com/SscSPs/funds_flow_app/internal/core/domain"
	"github.com/SscSPs/funds_flow_app/internal/dto"
)

// LedgerSvcFacade applies confirmed snapshots to stored balances.
type LedgerSvcFacade interface {
	// Apply executes the snapshot exactly once: balance delta plus one
	// immutable activity record. Replaying the snapshot token returns
	// apperrors.ErrDuplicateConfirmation and changes nothing.
	Apply(ctx context.Context, snapshot domain.ConfirmationSnapshot) (*domain.LedgerEffect, error)
}

// AccountSvcFacade exposes account reads and creation plus activity listing.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
	ListActivity(ctx context.Context, accountID string, limit int) ([]domain.ActivityRecord, error)
}
