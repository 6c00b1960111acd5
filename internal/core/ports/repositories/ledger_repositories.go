package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/funds_flow_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// LedgerRepository persists activity records and single-use confirmation
// tokens. Both writes happen inside the same transaction as the balance
// update so an effect is either fully applied or not at all.
type LedgerRepository interface {
	// SaveActivityInTx appends one immutable activity record.
	SaveActivityInTx(ctx context.Context, tx pgx.Tx, record domain.ActivityRecord) error

	// InsertConfirmationInTx claims a confirmation token. A token that was
	// already claimed returns apperrors.ErrDuplicateConfirmation.
	InsertConfirmationInTx(ctx context.Context, tx pgx.Tx, token string, now time.Time) error

	// ListActivityByAccount returns the newest records first.
	ListActivityByAccount(ctx context.Context, accountID string, limit int) ([]domain.ActivityRecord, error)
}

// LedgerRepositoryWithTx extends LedgerRepository with transaction control.
type LedgerRepositoryWithTx interface {
	LedgerRepository
	TransactionManager
}
