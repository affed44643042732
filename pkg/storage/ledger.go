package storage

import (
	"context"

	"github.com/chris/polyfunds-ledger/pkg/models"
)

// LedgerReader defines the interface for reading ledger data.
type LedgerReader interface {
	// ListLedgerEntries retrieves the most recent ledger entries.
	ListLedgerEntries(ctx context.Context, limit int32) ([]models.LedgerEntry, error)

	// ListLedgerEntriesByAccount retrieves the most recent ledger entries of one account.
	ListLedgerEntriesByAccount(ctx context.Context, accountID string, limit int32) ([]models.LedgerEntry, error)
}
