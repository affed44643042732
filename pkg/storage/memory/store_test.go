package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/chris/polyfunds-ledger/pkg/models"
	"github.com/chris/polyfunds-ledger/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payoutJournal(seq uint64, payee, amount string, ts time.Time) *models.JournalEntry {
	return &models.JournalEntry{
		Seq:       seq,
		Command:   models.Command{Type: models.CommandWithdraw, Caller: payee, Amount: amount},
		Event:     models.Event{ID: "evt", Seq: seq, Type: models.EventWithdrawn, Account: payee, Timestamp: ts},
		Timestamp: ts,
		Entries: []models.LedgerEntry{
			{EntryID: fmt.Sprintf("debit-%d", seq), Seq: seq, AccountID: models.PoolAccount, Debit: amount, Timestamp: ts},
			{EntryID: fmt.Sprintf("credit-%d", seq), Seq: seq, AccountID: payee, Credit: amount, Status: models.PENDING, Timestamp: ts},
		},
	}
}

func TestAppend(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Append(ctx, payoutJournal(1, "0xabc", "100", now)))

		w, err := s.GetWallet(ctx, "0xabc")
		require.NoError(t, err)
		assert.Equal(t, "100", w.Received)

		require.NoError(t, s.Append(ctx, payoutJournal(2, "0xabc", "50", now)))
		w, err = s.GetWallet(ctx, "0xabc")
		require.NoError(t, err)
		assert.Equal(t, "150", w.Received)
		assert.Equal(t, int64(2), w.Version)
	})

	t.Run("Sequence Conflict", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Append(ctx, payoutJournal(1, "0xabc", "100", now)))
		err := s.Append(ctx, payoutJournal(1, "0xdef", "100", now))
		assert.ErrorIs(t, err, storage.ErrSequenceConflict)

		_, err = s.GetWallet(ctx, "0xdef")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Frozen Payee Rejects Everything", func(t *testing.T) {
		s := New()
		require.NoError(t, s.SetWalletFrozen(ctx, "0xabc", true))

		err := s.Append(ctx, payoutJournal(1, "0xabc", "100", now))
		assert.ErrorIs(t, err, storage.ErrPayeeRejected)

		journal, err := s.ListJournal(ctx, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, journal)
		entries, err := s.ListLedgerEntries(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, entries)
		w, err := s.GetWallet(ctx, "0xabc")
		require.NoError(t, err)
		assert.Equal(t, "0", w.Received)
	})
}

func TestListJournal(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Now()
	for seq := uint64(1); seq <= 5; seq++ {
		require.NoError(t, s.Append(ctx, &models.JournalEntry{Seq: seq, Timestamp: now}))
	}

	all, err := s.ListJournal(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, uint64(1), all[0].Seq)
	assert.Equal(t, uint64(5), all[4].Seq)

	page, err := s.ListJournal(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, uint64(3), page[0].Seq)
	assert.Equal(t, uint64(4), page[1].Seq)
}

func TestLedgerEntries(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Now()
	require.NoError(t, s.Append(ctx, payoutJournal(1, "0xabc", "100", now)))
	require.NoError(t, s.Append(ctx, payoutJournal(2, "0xdef", "200", now)))

	entries, err := s.ListLedgerEntries(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "credit-2", entries[0].EntryID)

	byAccount, err := s.ListLedgerEntriesByAccount(ctx, "0xabc", 10)
	require.NoError(t, err)
	require.Len(t, byAccount, 1)
	assert.Equal(t, "100", byAccount[0].Credit)
}

func TestSettlement(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Append(ctx, payoutJournal(1, "0xold", "100", now.Add(-time.Hour))))
	require.NoError(t, s.Append(ctx, payoutJournal(2, "0xnew", "100", now.Add(-time.Minute))))

	stale, err := s.GetStalePayouts(ctx, 20*time.Minute)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, "credit-1", stale[0].EntryID)

	t.Run("Settles Once", func(t *testing.T) {
		settled, err := s.SettlePayout(ctx, "credit-1")
		require.NoError(t, err)
		assert.True(t, settled)

		settled, err = s.SettlePayout(ctx, "credit-1")
		require.NoError(t, err)
		assert.False(t, settled)

		stale, err := s.GetStalePayouts(ctx, 20*time.Minute)
		require.NoError(t, err)
		assert.Empty(t, stale)
	})

	t.Run("Not A Payout", func(t *testing.T) {
		_, err := s.SettlePayout(ctx, "debit-1")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestConnections(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.AddConnection(ctx, "b"))
	require.NoError(t, s.AddConnection(ctx, "a"))
	require.NoError(t, s.RemoveConnection(ctx, "b"))

	ids, err := s.GetAllConnections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids)
}
