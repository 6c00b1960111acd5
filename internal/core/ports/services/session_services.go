package services

import (
	"context"

	"github.com/SscSPs/funds_flow_app/internal/dto"
)

// EntrySessionSvcFacade drives amount-entry sessions. Each session is owned
// by one screen; events mutate it and return the refreshed view.
type EntrySessionSvcFacade interface {
	// StartSession creates a session for an operation against an account.
	StartSession(ctx context.Context, operation string, accountID string) (*dto.EntrySessionView, error)

	// GetSession returns the live view of a session.
	GetSession(ctx context.Context, sessionID string) (*dto.EntrySessionView, error)

	// Keystroke applies a raw input change on the active side. The echo is
	// synchronous; the counter-side conversion settles asynchronously.
	Keystroke(ctx context.Context, sessionID string, rawInput string) (*dto.EntrySessionView, error)

	// Swap switches the active currency side, preserving the numeric value.
	Swap(ctx context.Context, sessionID string) (*dto.EntrySessionView, error)

	// ChangeAccount re-targets the session at a different account.
	ChangeAccount(ctx context.Context, sessionID string, accountID string) (*dto.EntrySessionView, error)

	// Confirm freezes a settled session into a snapshot and applies it to
	// the ledger. Only permitted from the settled state.
	Confirm(ctx context.Context, sessionID string) (*dto.ConfirmationResult, error)

	// Dismiss cancels any in-flight conversion and discards the session.
	Dismiss(ctx context.Context, sessionID string) error
}
