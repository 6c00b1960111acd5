package services

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/funds_flow_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Side identifies which half of the dual-currency display owns the raw input.
type Side string

const (
	SidePrimary   Side = "PRIMARY"
	SideSecondary Side = "SECONDARY"
)

// SessionState is the reconciler state machine.
//
// IDLE -> ENTERING -> CONVERTING -> SETTLED | OVER_LIMIT -> CONFIRMING
//
// Keystrokes echo synchronously on the active side; the counter side is
// recomputed asynchronously and lands only if its sequence number is still
// current. A later keystroke supersedes any in-flight conversion by
// sequence, not by completion order. CONFIRMING marks the session as
// claimed by an in-flight ledger apply; it returns to SETTLED only if the
// apply fails.
type SessionState string

const (
	StateIdle       SessionState = "IDLE"
	StateEntering   SessionState = "ENTERING"
	StateConverting SessionState = "CONVERTING"
	StateSettled    SessionState = "SETTLED"
	StateOverLimit  SessionState = "OVER_LIMIT"
	StateConfirming SessionState = "CONFIRMING"
)

// entrySession is the live state of one in-progress amount entry. It is
// owned exclusively by its screen session; the mutex only orders the
// synchronous event handlers against asynchronous conversion completions.
type entrySession struct {
	mu sync.Mutex

	sessionID    string
	operation    domain.OperationKind
	accountID    string
	accountName  string
	state        SessionState
	activeSide   Side
	primaryCcy   string // user's reference/display currency
	secondaryCcy string // selected account's storage currency

	rawInput        string
	primaryAmount   decimal.Decimal
	secondaryAmount decimal.Decimal

	appliedRate     decimal.Decimal // primary -> secondary
	rateDegraded    bool
	rateStale       bool
	rateUnavailable bool // no live, cached, or fallback rate at all
	fee             domain.FeeResult
	limitHit        bool

	// seq is the monotonic conversion sequence; only the completion
	// carrying the current value may mutate the session.
	seq              uint64
	cancelConversion context.CancelFunc
}

func (s *entrySession) activeCurrency() string {
	if s.activeSide == SidePrimary {
		return s.primaryCcy
	}
	return s.secondaryCcy
}

func (s *entrySession) inactiveCurrency() string {
	if s.activeSide == SidePrimary {
		return s.secondaryCcy
	}
	return s.primaryCcy
}

func (s *entrySession) activeAmount() decimal.Decimal {
	if s.activeSide == SidePrimary {
		return s.primaryAmount
	}
	return s.secondaryAmount
}

func (s *entrySession) setActiveAmount(v decimal.Decimal) {
	if s.activeSide == SidePrimary {
		s.primaryAmount = v
	} else {
		s.secondaryAmount = v
	}
}

func (s *entrySession) setInactiveAmount(v decimal.Decimal) {
	if s.activeSide == SidePrimary {
		s.secondaryAmount = v
	} else {
		s.primaryAmount = v
	}
}

// supersedeLocked invalidates any in-flight conversion and returns the
// sequence number a new conversion must carry to land.
func (s *entrySession) supersedeLocked() uint64 {
	s.seq++
	if s.cancelConversion != nil {
		s.cancelConversion()
		s.cancelConversion = nil
	}
	return s.seq
}

// snapshotLocked freezes the settled state for confirmation. The snapshot
// keeps its own applied rate; the ledger never re-reads the cache.
func (s *entrySession) snapshotLocked(token string, frozenAt time.Time) domain.ConfirmationSnapshot {
	return domain.ConfirmationSnapshot{
		Token:           token,
		Operation:       s.operation,
		AccountID:       s.accountID,
		Counterparty:    s.accountName,
		PrimaryAmount:   domain.NewMoney(s.primaryAmount, s.primaryCcy),
		SecondaryAmount: domain.NewMoney(s.secondaryAmount, s.secondaryCcy),
		Fee:             s.fee,
		AppliedRate:     s.appliedRate,
		RateDegraded:    s.rateDegraded,
		FrozenAt:        frozenAt,
	}
}
