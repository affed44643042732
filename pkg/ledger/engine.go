// Package ledger implements the savings, business registry, investment,
// dividend and platform statistics ledgers.
//
// All state lives in one Engine. Every mutation is planned against the
// current state, committed to the journal store and only then applied, so a
// rejected or failed command leaves the ledger unchanged. Mutations are
// serialized by a single write lock; queries share a read lock and always see
// a consistent snapshot.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chris/polyfunds-ledger/pkg/events"
	"github.com/chris/polyfunds-ledger/pkg/models"
	"github.com/chris/polyfunds-ledger/pkg/scheduler"
	"github.com/chris/polyfunds-ledger/pkg/storage"
	"github.com/chris/polyfunds-ledger/pkg/units"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
)

const (
	MinTokenSupply          = 1000
	MaxTokenSupply          = 1_000_000
	MaxInvestmentPercentage = 25
	PlatformFeePercent      = 3
	InvestorSharePercent    = 70
	YieldRateBps            = 500
	SecondsPerYear          = 365 * 24 * 60 * 60
)

// DefaultMinTokenPrice is 0.001 ether.
var DefaultMinTokenPrice = units.MustEther("0.001")

const ledgerGSI1PK = "LEDGER_ENTRIES"

const journalPageSize = 500

// Config holds the platform settings fixed at construction. The fee
// recipient starts as the admin and only changes through SetFeeRecipient.
type Config struct {
	Admin         common.Address
	MinTokenPrice *uint256.Int
}

// Engine is the single-writer ledger.
type Engine struct {
	mu sync.RWMutex
	// publishMu is taken before mu is released so that committed events
	// reach subscribers in sequence order.
	publishMu sync.Mutex

	store storage.JournalStore
	state *state
	seq   uint64

	// replaying is set while Restore re-applies committed commands, which
	// were authorized under the configuration in force when they ran.
	replaying bool

	admin         common.Address
	minTokenPrice *uint256.Int

	publisher events.Publisher
	payouts   scheduler.Scheduler
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithPublisher sets the subscriber fan-out for committed events. Events are
// published one at a time in sequence order; a publisher must not call back
// into the engine.
func WithPublisher(p events.Publisher) Option {
	return func(e *Engine) { e.publisher = p }
}

// WithPayoutScheduler sets where pending payouts are enqueued after commit.
func WithPayoutScheduler(s scheduler.Scheduler) Option {
	return func(e *Engine) { e.payouts = s }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an empty Engine. Call Restore to load committed history.
func New(cfg Config, store storage.JournalStore, opts ...Option) (*Engine, error) {
	if cfg.Admin == (common.Address{}) {
		return nil, fmt.Errorf("admin address is required: %w", ErrInvalidAddress)
	}
	if cfg.MinTokenPrice == nil {
		cfg.MinTokenPrice = DefaultMinTokenPrice
	}

	e := &Engine{
		store:         store,
		state:         newState(cfg.Admin),
		admin:         cfg.Admin,
		minTokenPrice: cfg.MinTokenPrice.Clone(),
		publisher:     events.LogPublisher{},
		payouts:       scheduler.NoOpScheduler{},
		logger:        slog.Default(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Admin returns the platform admin address.
func (e *Engine) Admin() common.Address {
	return e.admin
}

// Seq returns the sequence number of the last applied command.
func (e *Engine) Seq() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.seq
}

// plan is the validated outcome of a command. apply mutates the engine state
// and must not fail.
type plan struct {
	event   models.Event
	entries []models.LedgerEntry
	apply   func()
}

// execute runs one command as a single logical transaction.
func (e *Engine) execute(ctx context.Context, cmd models.Command) (*models.Event, error) {
	e.mu.Lock()

	now := e.now().UTC()
	p, err := e.plan(cmd, now)
	if err != nil {
		e.mu.Unlock()
		return nil, err
	}

	seq := e.seq + 1
	entry := newJournalEntry(seq, cmd, p, now)
	if err := e.store.Append(ctx, entry); err != nil {
		if errors.Is(err, storage.ErrSequenceConflict) {
			// Another writer committed first; catch up so the next command can succeed.
			if rerr := e.restore(ctx); rerr != nil {
				e.logger.ErrorContext(ctx, "failed to catch up after sequence conflict", slog.Any("error", rerr))
			}
		}
		e.mu.Unlock()
		if errors.Is(err, storage.ErrPayeeRejected) {
			return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
		}
		return nil, fmt.Errorf("failed to commit %s: %w", cmd.Type, err)
	}

	p.apply()
	e.seq = seq
	e.state.events = append(e.state.events, entry.Event)
	e.publishMu.Lock()
	e.mu.Unlock()

	e.afterCommit(ctx, entry)
	e.publishMu.Unlock()
	return &entry.Event, nil
}

// afterCommit hands payouts and the event to the async rails. Failures are
// logged and never undo the commit.
func (e *Engine) afterCommit(ctx context.Context, entry *models.JournalEntry) {
	for _, le := range entry.Entries {
		if !le.IsPayout() {
			continue
		}
		if err := e.payouts.SchedulePayout(ctx, le); err != nil {
			e.logger.ErrorContext(ctx, "CRITICAL: failed to schedule payout",
				slog.String("entry_id", le.EntryID),
				slog.Uint64("seq", entry.Seq),
				slog.Any("error", err),
			)
		}
	}
	if err := e.publisher.Publish(ctx, entry.Event); err != nil {
		e.logger.WarnContext(ctx, "failed to publish ledger event",
			slog.Uint64("seq", entry.Seq),
			slog.String("type", string(entry.Event.Type)),
			slog.Any("error", err),
		)
	}
}

func newJournalEntry(seq uint64, cmd models.Command, p *plan, now time.Time) *models.JournalEntry {
	event := p.event
	event.ID = uuid.New().String()
	event.Seq = seq
	event.Timestamp = now

	entries := make([]models.LedgerEntry, len(p.entries))
	for i, le := range p.entries {
		le.EntryID = uuid.New().String()
		le.Seq = seq
		le.Timestamp = now
		le.GSI1PK = ledgerGSI1PK
		if le.IsPayout() {
			le.Status = models.PENDING
		}
		entries[i] = le
	}

	return &models.JournalEntry{
		Seq:       seq,
		Command:   cmd,
		Event:     event,
		Entries:   entries,
		Timestamp: now,
		GSI1PK:    "JOURNAL",
	}
}

// Restore replays committed journal entries that are newer than the engine
// state, using their recorded timestamps.
func (e *Engine) Restore(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.restore(ctx)
}

// restore is Restore for callers holding mu.
func (e *Engine) restore(ctx context.Context) error {
	e.replaying = true
	defer func() { e.replaying = false }()

	for {
		page, err := e.store.ListJournal(ctx, e.seq, journalPageSize)
		if err != nil {
			return fmt.Errorf("failed to list journal after %d: %w", e.seq, err)
		}
		for _, entry := range page {
			p, err := e.plan(entry.Command, entry.Timestamp)
			if err != nil {
				return fmt.Errorf("failed to replay journal entry %d: %w", entry.Seq, err)
			}
			p.apply()
			e.seq = entry.Seq
			e.state.events = append(e.state.events, entry.Event)
		}
		if len(page) < journalPageSize {
			return nil
		}
	}
}

// plan dispatches a command to its planner.
func (e *Engine) plan(cmd models.Command, now time.Time) (*plan, error) {
	caller := common.HexToAddress(cmd.Caller)
	switch cmd.Type {
	case models.CommandDeposit:
		return e.planDeposit(caller, parseAmount(cmd.Amount), now)
	case models.CommandWithdraw:
		return e.planWithdraw(caller, parseAmount(cmd.Amount), now)
	case models.CommandClaimYield:
		return e.planClaimYield(caller, now)
	case models.CommandFundPool:
		return e.planFundPool(caller, parseAmount(cmd.Amount))
	case models.CommandEmergencyWithdraw:
		return e.planEmergencyWithdraw(caller)
	case models.CommandCreateBusiness:
		return e.planCreateBusiness(caller, businessParamsFromCommand(cmd), now)
	case models.CommandVerifyBusiness:
		return e.planVerifyBusiness(caller, cmd.BusinessID, cmd.Verified)
	case models.CommandDeactivateBusiness:
		return e.planDeactivateBusiness(caller, cmd.BusinessID)
	case models.CommandUpdateBusinessMetrics:
		return e.planUpdateBusinessMetrics(caller, cmd.BusinessID, parseAmount(cmd.MonthlyRevenue), cmd.ProfitMargin)
	case models.CommandInvest:
		return e.planInvest(caller, cmd.BusinessID, cmd.TokenAmount, parseAmount(cmd.Amount), now)
	case models.CommandSetFeeRecipient:
		return e.planSetFeeRecipient(caller, common.HexToAddress(cmd.Recipient))
	case models.CommandDistributeDividends:
		return e.planDistributeDividends(caller, cmd.BusinessID, parseAmount(cmd.Amount), now)
	case models.CommandClaimDividends:
		return e.planClaimDividends(caller, cmd.BusinessID)
	default:
		return nil, fmt.Errorf("unknown command type %q", cmd.Type)
	}
}

// parseAmount decodes a journaled amount. Commands are built by the engine
// itself, so an empty or malformed value decodes to zero and fails validation.
func parseAmount(s string) *uint256.Int {
	if s == "" {
		return new(uint256.Int)
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return new(uint256.Int)
	}
	return v
}

func amountString(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}

// mulDiv returns x*y/d with a 512-bit intermediate, reporting overflow of the result.
func mulDiv(x, y, d *uint256.Int) (*uint256.Int, bool) {
	return new(uint256.Int).MulDivOverflow(x, y, d)
}

func debit(account string, amount *uint256.Int, description string) models.LedgerEntry {
	return models.LedgerEntry{AccountID: account, Debit: amount.Dec(), Description: description}
}

func credit(account string, amount *uint256.Int, description string) models.LedgerEntry {
	return models.LedgerEntry{AccountID: account, Credit: amount.Dec(), Description: description}
}

func (e *Engine) isAdmin(caller common.Address) bool {
	return e.replaying || caller == e.admin
}

func businessRef(id uint64) *uint64 {
	return &id
}
