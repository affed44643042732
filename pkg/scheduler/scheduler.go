package scheduler

import (
	"context"

	"github.com/chris/polyfunds-ledger/pkg/models"
)

// Scheduler defines the interface for a component that schedules a payout for later settlement.
type Scheduler interface {
	// SchedulePayout enqueues a pending payout entry for asynchronous settlement.
	SchedulePayout(ctx context.Context, entry models.LedgerEntry) error
}

// PayoutMessage is the queue body describing one payout to settle.
type PayoutMessage struct {
	EntryID   string `json:"entry_id"`
	Seq       uint64 `json:"seq"`
	AccountID string `json:"account_id"`
	Amount    string `json:"amount"`
}

// NewPayoutMessage builds the queue body of a payout entry.
func NewPayoutMessage(entry models.LedgerEntry) PayoutMessage {
	return PayoutMessage{
		EntryID:   entry.EntryID,
		Seq:       entry.Seq,
		AccountID: entry.AccountID,
		Amount:    entry.Credit,
	}
}
