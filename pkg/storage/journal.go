package storage

import (
	"context"

	"github.com/chris/polyfunds-ledger/pkg/models"
)

// JournalWriter persists committed commands.
type JournalWriter interface {
	// Append atomically stores the journal entry, its ledger entries and the
	// payout wallet credits. Either everything is written or nothing is.
	Append(ctx context.Context, entry *models.JournalEntry) error
}

// JournalReader reads the journal back in sequence order.
type JournalReader interface {
	// ListJournal returns up to limit entries with a sequence greater than afterSeq.
	ListJournal(ctx context.Context, afterSeq uint64, limit int32) ([]models.JournalEntry, error)
}

// JournalStore combines the reader and writer interfaces.
type JournalStore interface {
	JournalReader
	JournalWriter
}
