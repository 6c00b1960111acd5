package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/funds_flow_app/internal/apperrors"
	"github.com/SscSPs/funds_flow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/funds_flow_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

type ledgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new repository for activity records and
// confirmation tokens.
func NewLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryWithTx {
	return &ledgerRepository{pool: pool}
}

// Begin starts a new database transaction.
func (r *ledgerRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

// Commit commits a transaction.
func (r *ledgerRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return tx.Commit(ctx)
}

// Rollback rolls back a transaction. Safe to call after commit.
func (r *ledgerRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	err := tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

// InsertConfirmationInTx claims a confirmation token. The primary key on
// token makes the claim atomic; a replay surfaces as a unique violation.
func (r *ledgerRepository) InsertConfirmationInTx(ctx context.Context, tx pgx.Tx, token string, now time.Time) error {
	query := `INSERT INTO confirmations (token, applied_at) VALUES ($1, $2);`
	_, err := tx.Exec(ctx, query, token, now)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: token %s", apperrors.ErrDuplicateConfirmation, token)
		}
		return fmt.Errorf("failed to insert confirmation %s: %w", token, err)
	}
	return nil
}

// SaveActivityInTx appends one immutable activity record.
func (r *ledgerRepository) SaveActivityInTx(ctx context.Context, tx pgx.Tx, record domain.ActivityRecord) error {
	query := `
		INSERT INTO activity_records (record_id, account_id, operation, counterparty, amount, currency_code, display_amount, display_currency, fee_amount, fee_currency, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		record.RecordID,
		record.AccountID,
		string(record.Operation),
		record.Counterparty,
		record.Amount,
		record.CurrencyCode,
		record.DisplayAmount,
		record.DisplayCurrency,
		record.FeeAmount,
		record.FeeCurrency,
		record.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save activity record %s: %w", record.RecordID, err)
	}
	return nil
}

// ListActivityByAccount returns the newest records first.
func (r *ledgerRepository) ListActivityByAccount(ctx context.Context, accountID string, limit int) ([]domain.ActivityRecord, error) {
	query := `
		SELECT record_id, account_id, operation, counterparty, amount, currency_code, display_amount, display_currency, fee_amount, fee_currency, occurred_at
		FROM activity_records
		WHERE account_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2;
	`
	rows, err := r.pool.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var records []domain.ActivityRecord
	for rows.Next() {
		var rec domain.ActivityRecord
		var operation string
		err := rows.Scan(
			&rec.RecordID,
			&rec.AccountID,
			&operation,
			&rec.Counterparty,
			&rec.Amount,
			&rec.CurrencyCode,
			&rec.DisplayAmount,
			&rec.DisplayCurrency,
			&rec.FeeAmount,
			&rec.FeeCurrency,
			&rec.OccurredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		rec.Operation = domain.OperationKind(operation)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating activity rows: %w", err)
	}
	return records, nil
}
