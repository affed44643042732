package storage

import (
	"context"
	"time"

	"github.com/chris/polyfunds-ledger/pkg/models"
)

// SettlementStore defines the privileged interface used by the payout settlement workers.
type SettlementStore interface {
	// SettlePayout marks a pending payout entry as settled.
	// It returns false without error when the entry was already settled.
	SettlePayout(ctx context.Context, entryID string) (bool, error)

	// GetStalePayouts retrieves payouts that have been pending for longer than maxAge.
	GetStalePayouts(ctx context.Context, maxAge time.Duration) ([]models.LedgerEntry, error)
}
