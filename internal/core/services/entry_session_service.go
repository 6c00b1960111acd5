package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/funds_flow_app/internal/apperrors"
	"github.com/SscSPs/funds_flow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/funds_flow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/funds_flow_app/internal/core/ports/services"
	"github.com/SscSPs/funds_flow_app/internal/dto"
	"github.com/SscSPs/funds_flow_app/internal/middleware"
	"github.com/SscSPs/funds_flow_app/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const limitMessageKey = "amount_entry.limit_exceeded"

// entrySessionService drives entry sessions. All collaborators are injected
// so the reconciler is independently testable; nothing here reaches for
// shared singletons.
type entrySessionService struct {
	rates             portssvc.RateCacheFacade
	fees              portssvc.FeePolicyFacade
	limits            *LimitGuard
	ledger            portssvc.LedgerSvcFacade
	accountRepo       portsrepo.AccountReader
	referenceCurrency string

	mu       sync.RWMutex
	sessions map[string]*entrySession
}

// NewEntrySessionService creates the entry session service. The reference
// currency is the user-facing display currency that forms the primary side
// of every session.
func NewEntrySessionService(
	rates portssvc.RateCacheFacade,
	fees portssvc.FeePolicyFacade,
	limits *LimitGuard,
	ledger portssvc.LedgerSvcFacade,
	accountRepo portsrepo.AccountReader,
	referenceCurrency string,
) portssvc.EntrySessionSvcFacade {
	return &entrySessionService{
		rates:             rates,
		fees:              fees,
		limits:            limits,
		ledger:            ledger,
		accountRepo:       accountRepo,
		referenceCurrency: referenceCurrency,
		sessions:          make(map[string]*entrySession),
	}
}

var _ portssvc.EntrySessionSvcFacade = (*entrySessionService)(nil)

func (svc *entrySessionService) lookup(sessionID string) (*entrySession, error) {
	svc.mu.RLock()
	sess, ok := svc.sessions[sessionID]
	svc.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: entry session %s", apperrors.ErrNotFound, sessionID)
	}
	return sess, nil
}

// StartSession mounts a new amount-entry session against the account.
func (svc *entrySessionService) StartSession(ctx context.Context, operation string, accountID string) (*dto.EntrySessionView, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	op := domain.OperationKind(operation)
	if op != domain.Deposit && op != domain.Withdrawal {
		return nil, fmt.Errorf("%w: unknown operation '%s'", apperrors.ErrValidation, operation)
	}

	account, err := svc.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, accountID)
	}
	if !domain.IsSupportedCurrency(account.CurrencyCode) {
		return nil, fmt.Errorf("%w: unsupported account currency '%s'", apperrors.ErrValidation, account.CurrencyCode)
	}

	sess := &entrySession{
		sessionID:    uuid.NewString(),
		operation:    op,
		accountID:    account.AccountID,
		accountName:  account.Name,
		state:        StateIdle,
		activeSide:   SidePrimary,
		primaryCcy:   svc.referenceCurrency,
		secondaryCcy: account.CurrencyCode,
		appliedRate:  decimal.Zero,
	}

	svc.mu.Lock()
	svc.sessions[sess.sessionID] = sess
	svc.mu.Unlock()

	logger.Info("Entry session started",
		slog.String("session_id", sess.sessionID),
		slog.String("operation", operation),
		slog.String("account_id", accountID))

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return svc.viewLocked(sess), nil
}

// GetSession returns the live view of a session.
func (svc *entrySessionService) GetSession(ctx context.Context, sessionID string) (*dto.EntrySessionView, error) {
	sess, err := svc.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return svc.viewLocked(sess), nil
}

// Keystroke applies a raw input edit on the active side. The active side is
// echoed synchronously; the counter side settles asynchronously under the
// session's current sequence number. While over the limit, edits that would
// increase the amount are rejected and the previous value stands; edits
// that decrease it pass through.
func (svc *entrySessionService) Keystroke(ctx context.Context, sessionID string, rawInput string) (*dto.EntrySessionView, error) {
	sess, err := svc.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	parsed, accepted := utils.ParseAmountInput(rawInput)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.limitHit && parsed.GreaterThan(sess.activeAmount()) {
		return svc.viewLocked(sess), nil
	}

	sess.rawInput = accepted
	sess.setActiveAmount(parsed)
	sess.state = StateEntering
	svc.startConversionLocked(ctx, sess)

	return svc.viewLocked(sess), nil
}

// Swap switches the active currency side, re-deriving the raw input from
// the newly active side so the typed value round-trips faithfully. Any
// in-flight conversion is superseded and a fresh one starts from the new
// active side.
func (svc *entrySessionService) Swap(ctx context.Context, sessionID string) (*dto.EntrySessionView, error) {
	sess, err := svc.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.activeSide == SidePrimary {
		sess.activeSide = SideSecondary
	} else {
		sess.activeSide = SidePrimary
	}

	if sess.state == StateIdle {
		return svc.viewLocked(sess), nil
	}

	sess.rawInput = utils.FormatEditable(sess.activeAmount())
	sess.state = StateEntering
	svc.startConversionLocked(ctx, sess)

	return svc.viewLocked(sess), nil
}

// ChangeAccount re-targets the session: the secondary side takes the new
// account's currency with a zeroed amount, the primary side stays active
// and keeps its typed value, and the session re-enters ENTERING.
func (svc *entrySessionService) ChangeAccount(ctx context.Context, sessionID string, accountID string) (*dto.EntrySessionView, error) {
	sess, err := svc.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	account, err := svc.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !domain.IsSupportedCurrency(account.CurrencyCode) {
		return nil, fmt.Errorf("%w: unsupported account currency '%s'", apperrors.ErrValidation, account.CurrencyCode)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.accountID = account.AccountID
	sess.accountName = account.Name
	sess.secondaryCcy = account.CurrencyCode
	sess.secondaryAmount = decimal.Zero
	sess.activeSide = SidePrimary
	sess.rawInput = utils.FormatEditable(sess.primaryAmount)
	sess.state = StateEntering
	svc.startConversionLocked(ctx, sess)

	return svc.viewLocked(sess), nil
}

// Confirm freezes the settled session into a single-use snapshot and hands
// it to the ledger. Confirmation is rejected mid-conversion and while over
// the limit.
func (svc *entrySessionService) Confirm(ctx context.Context, sessionID string) (*dto.ConfirmationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sess, err := svc.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	// Claiming the session under its lock makes CONFIRMING exclusive: a
	// racing confirm sees the claim and is rejected, so only one snapshot
	// token can ever reach the ledger.
	sess.mu.Lock()
	if sess.state != StateSettled {
		state := sess.state
		sess.mu.Unlock()
		return nil, fmt.Errorf("%w: state is %s", apperrors.ErrNotSettled, state)
	}
	sess.state = StateConfirming
	snapshot := sess.snapshotLocked(uuid.NewString(), time.Now().UTC())
	sess.mu.Unlock()

	effect, err := svc.ledger.Apply(ctx, snapshot)
	if err != nil {
		// Release the claim so the user can retry, unless a keystroke
		// already moved the session on.
		sess.mu.Lock()
		if sess.state == StateConfirming {
			sess.state = StateSettled
		}
		sess.mu.Unlock()
		return nil, err
	}

	// The session is spent: a second confirm must not mint a fresh token.
	svc.mu.Lock()
	delete(svc.sessions, sessionID)
	svc.mu.Unlock()

	logger.Info("Entry session confirmed",
		slog.String("session_id", sessionID),
		slog.String("token", snapshot.Token),
		slog.String("account_id", snapshot.AccountID))

	return &dto.ConfirmationResult{
		Token:        snapshot.Token,
		BalanceDelta: sideView(effect.BalanceDelta.Amount, effect.BalanceDelta.CurrencyCode),
		Record:       dto.ToActivityResponse(effect.Record),
	}, nil
}

// Dismiss cancels any in-flight conversion and discards the session.
func (svc *entrySessionService) Dismiss(ctx context.Context, sessionID string) error {
	sess, err := svc.lookup(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	sess.supersedeLocked()
	sess.mu.Unlock()

	svc.mu.Lock()
	delete(svc.sessions, sessionID)
	svc.mu.Unlock()

	middleware.GetLoggerFromCtx(ctx).Info("Entry session dismissed", slog.String("session_id", sessionID))
	return nil
}

// startConversionLocked kicks off the asynchronous counter-side conversion
// for the session's current active amount. Called with the session lock
// held. The goroutine recomputes the counter amount, fee, and limit flag,
// then lands the result only if its sequence is still current.
func (svc *entrySessionService) startConversionLocked(ctx context.Context, sess *entrySession) {
	seq := sess.supersedeLocked()

	cctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	sess.cancelConversion = cancel
	sess.state = StateConverting

	amount := domain.NewMoney(sess.activeAmount(), sess.activeCurrency())
	target := sess.inactiveCurrency()
	activeSide := sess.activeSide
	operation := sess.operation
	primaryCcy := sess.primaryCcy
	secondaryCcy := sess.secondaryCcy

	go func() {
		converted, quote, convErr := svc.rates.Convert(cctx, amount, target)

		fee := svc.fees.CalculateFee(cctx, operation, primaryCcy, secondaryCcy)

		// Limit check runs against the primary-side amount expressed in the
		// canonical limit currency.
		primaryValue := amount.Amount
		if activeSide == SideSecondary {
			primaryValue = converted.Amount
		}
		limitHit := false
		if convErr == nil {
			inLimitCcy, _, limitErr := svc.rates.Convert(cctx, domain.NewMoney(primaryValue, primaryCcy), svc.limits.LimitCurrency())
			if limitErr == nil {
				limitHit = svc.limits.Exceeds(operation, inLimitCcy.Amount)
			}
		}

		svc.finishConversion(sess, seq, converted, quote, fee, limitHit, convErr)
	}()
}

// finishConversion lands an asynchronous conversion result. Results whose
// sequence was superseded by a later keystroke are discarded regardless of
// completion order.
func (svc *entrySessionService) finishConversion(sess *entrySession, seq uint64, converted domain.Money, quote domain.RateQuote, fee domain.FeeResult, limitHit bool, convErr error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if seq != sess.seq {
		return
	}

	if convErr != nil {
		// No live, cached, or fallback rate: the counter side cannot be
		// shown and the sides are not mutually consistent, so the session
		// must not settle. Entry itself is never blocked.
		sess.setInactiveAmount(decimal.Zero)
		sess.appliedRate = decimal.Zero
		sess.rateUnavailable = true
		sess.rateDegraded = false
		sess.rateStale = false
		sess.fee = fee
		sess.limitHit = false
		sess.state = StateEntering
		return
	}

	sess.setInactiveAmount(converted.Amount)
	if sess.activeSide == SidePrimary {
		sess.appliedRate = quote.Rate
	} else if quote.Rate.IsPositive() {
		sess.appliedRate = decimal.NewFromInt(1).Div(quote.Rate)
	}
	sess.rateUnavailable = false
	sess.rateDegraded = quote.Degraded
	sess.rateStale = quote.Stale

	sess.fee = fee
	sess.limitHit = limitHit
	if limitHit {
		sess.state = StateOverLimit
	} else {
		sess.state = StateSettled
	}
}

func sideView(amount decimal.Decimal, currencyCode string) dto.SideView {
	formatted := ""
	if c, ok := domain.CurrencyByCode(currencyCode); ok {
		formatted = utils.FormatWithCurrencySymbol(amount, c)
	}
	return dto.SideView{CurrencyCode: currencyCode, Amount: amount, Formatted: formatted}
}

// viewLocked renders the session for the client. Called with the session
// lock held.
func (svc *entrySessionService) viewLocked(sess *entrySession) *dto.EntrySessionView {
	view := &dto.EntrySessionView{
		SessionID:       sess.sessionID,
		Operation:       string(sess.operation),
		State:           string(sess.state),
		ActiveSide:      string(sess.activeSide),
		AccountID:       sess.accountID,
		RawInput:        sess.rawInput,
		Primary:         sideView(sess.primaryAmount, sess.primaryCcy),
		Secondary:       sideView(sess.secondaryAmount, sess.secondaryCcy),
		AppliedRate:     sess.appliedRate,
		RateDegraded:    sess.rateDegraded,
		RateStale:       sess.rateStale,
		RateUnavailable: sess.rateUnavailable,
		Fee: dto.FeeSummary{
			IsFree:       sess.fee.IsFree,
			Amount:       sess.fee.Amount,
			CurrencyCode: sess.fee.CurrencyCode,
			Degraded:     sess.fee.Degraded,
		},
		LimitExceeded: sess.limitHit,
	}
	if !sess.fee.IsFree && sess.fee.CurrencyCode != "" {
		if c, ok := domain.CurrencyByCode(sess.fee.CurrencyCode); ok {
			view.Fee.Formatted = utils.FormatWithCurrencySymbol(sess.fee.Amount, c)
		}
	}
	if sess.limitHit {
		view.LimitMessageKey = limitMessageKey
	}
	return view
}
