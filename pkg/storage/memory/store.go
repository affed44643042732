// Package memory is an in-process implementation of the storage interfaces.
// It keeps the same atomicity and rejection rules as the DynamoDB store and is
// used for local runs and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/chris/polyfunds-ledger/pkg/models"
	"github.com/chris/polyfunds-ledger/pkg/storage"
	"github.com/holiman/uint256"
)

// Store implements storage.Storage in memory.
type Store struct {
	mu          sync.RWMutex
	journal     map[uint64]models.JournalEntry
	entries     map[string]*models.LedgerEntry
	entryOrder  []string
	wallets     map[string]*models.Wallet
	connections map[string]struct{}
	now         func() time.Time
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		journal:     make(map[uint64]models.JournalEntry),
		entries:     make(map[string]*models.LedgerEntry),
		wallets:     make(map[string]*models.Wallet),
		connections: make(map[string]struct{}),
		now:         time.Now,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

// Append stores the journal entry, its ledger entries and the payout credits in one step.
func (s *Store) Append(ctx context.Context, entry *models.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.journal[entry.Seq]; exists {
		return storage.ErrSequenceConflict
	}

	// Validate every payout before writing anything.
	credits := make(map[string]*uint256.Int)
	for _, e := range entry.Entries {
		if !e.IsPayout() {
			continue
		}
		if w, ok := s.wallets[e.AccountID]; ok && w.Frozen {
			return fmt.Errorf("wallet %s is frozen: %w", e.AccountID, storage.ErrPayeeRejected)
		}
		amount, err := uint256.FromDecimal(e.Credit)
		if err != nil {
			return fmt.Errorf("failed to parse credit of entry %s: %w", e.EntryID, err)
		}
		if sum, ok := credits[e.AccountID]; ok {
			sum.Add(sum, amount)
		} else {
			credits[e.AccountID] = amount
		}
	}

	stored := *entry
	stored.Entries = append([]models.LedgerEntry(nil), entry.Entries...)
	s.journal[entry.Seq] = stored

	for i := range entry.Entries {
		e := entry.Entries[i]
		s.entries[e.EntryID] = &e
		s.entryOrder = append(s.entryOrder, e.EntryID)
	}

	for address, amount := range credits {
		w, ok := s.wallets[address]
		if !ok {
			w = &models.Wallet{Address: address, Received: "0"}
			s.wallets[address] = w
		}
		received, err := uint256.FromDecimal(w.Received)
		if err != nil {
			received = new(uint256.Int)
		}
		w.Received = received.Add(received, amount).Dec()
		w.Version++
		w.UpdatedAt = entry.Timestamp
	}

	return nil
}

// ListJournal returns up to limit entries after afterSeq in sequence order.
// A non-positive limit returns everything.
func (s *Store) ListJournal(ctx context.Context, afterSeq uint64, limit int32) ([]models.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seqs := make([]uint64, 0, len(s.journal))
	for seq := range s.journal {
		if seq > afterSeq {
			seqs = append(seqs, seq)
		}
	}
	sort.Slice(seqs, func(i, j int) bool { return seqs[i] < seqs[j] })

	if limit > 0 && len(seqs) > int(limit) {
		seqs = seqs[:limit]
	}

	out := make([]models.JournalEntry, 0, len(seqs))
	for _, seq := range seqs {
		out = append(out, s.journal[seq])
	}
	return out, nil
}

// ListLedgerEntries returns the most recent ledger entries, newest first.
func (s *Store) ListLedgerEntries(ctx context.Context, limit int32) ([]models.LedgerEntry, error) {
	return s.listEntries(limit, func(*models.LedgerEntry) bool { return true }), nil
}

// ListLedgerEntriesByAccount returns the most recent ledger entries of one account, newest first.
func (s *Store) ListLedgerEntriesByAccount(ctx context.Context, accountID string, limit int32) ([]models.LedgerEntry, error) {
	return s.listEntries(limit, func(e *models.LedgerEntry) bool { return e.AccountID == accountID }), nil
}

func (s *Store) listEntries(limit int32, keep func(*models.LedgerEntry) bool) []models.LedgerEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.LedgerEntry{}
	for i := len(s.entryOrder) - 1; i >= 0; i-- {
		e := s.entries[s.entryOrder[i]]
		if !keep(e) {
			continue
		}
		out = append(out, *e)
		if limit > 0 && len(out) == int(limit) {
			break
		}
	}
	return out
}

// GetWallet returns the payout wallet of an address.
func (s *Store) GetWallet(ctx context.Context, address string) (*models.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.wallets[address]
	if !ok {
		return nil, fmt.Errorf("wallet %s: %w", address, storage.ErrNotFound)
	}
	c := *w
	return &c, nil
}

// SetWalletFrozen blocks or unblocks payouts to an address, creating the wallet if needed.
func (s *Store) SetWalletFrozen(ctx context.Context, address string, frozen bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.wallets[address]
	if !ok {
		w = &models.Wallet{Address: address, Received: "0"}
		s.wallets[address] = w
	}
	w.Frozen = frozen
	w.Version++
	w.UpdatedAt = s.now()
	return nil
}

// SettlePayout marks a pending payout as settled.
func (s *Store) SettlePayout(ctx context.Context, entryID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[entryID]
	if !ok || !e.IsPayout() {
		return false, fmt.Errorf("payout %s: %w", entryID, storage.ErrNotFound)
	}
	if e.Status == models.SETTLED {
		return false, nil
	}
	e.Status = models.SETTLED
	return true, nil
}

// GetStalePayouts returns payouts that have been pending for longer than maxAge.
func (s *Store) GetStalePayouts(ctx context.Context, maxAge time.Duration) ([]models.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := s.now().Add(-maxAge)
	out := []models.LedgerEntry{}
	for _, id := range s.entryOrder {
		e := s.entries[id]
		if e.IsPayout() && e.Status == models.PENDING && e.Timestamp.Before(cutoff) {
			out = append(out, *e)
		}
	}
	return out, nil
}

// AddConnection stores a WebSocket connection id.
func (s *Store) AddConnection(ctx context.Context, connectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connections[connectionID] = struct{}{}
	return nil
}

// RemoveConnection deletes a WebSocket connection id.
func (s *Store) RemoveConnection(ctx context.Context, connectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.connections, connectionID)
	return nil
}

// GetAllConnections returns every stored connection id.
func (s *Store) GetAllConnections(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.connections))
	for id := range s.connections {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
