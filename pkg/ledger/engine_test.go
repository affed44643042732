package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/chris/polyfunds-ledger/pkg/events"
	"github.com/chris/polyfunds-ledger/pkg/models"
	"github.com/chris/polyfunds-ledger/pkg/storage"
	"github.com/chris/polyfunds-ledger/pkg/storage/memory"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishOrder(t *testing.T) {
	ctx := context.Background()

	var (
		mu        sync.Mutex
		published []uint64
	)
	started := make(chan struct{})
	release := make(chan struct{})

	slowFirst := events.PublisherFunc(func(ctx context.Context, ev models.Event) error {
		if ev.Seq == 1 {
			close(started)
			<-release
		}
		mu.Lock()
		published = append(published, ev.Seq)
		mu.Unlock()
		return nil
	})

	clock := newTestClock()
	opts := append(quietOptions(clock), WithPublisher(slowFirst))
	e, err := New(Config{Admin: admin}, memory.New(), opts...)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := e.Deposit(ctx, alice, ether("1"))
		assert.NoError(t, err)
	}()

	<-started
	go func() {
		defer wg.Done()
		_, err := e.Deposit(ctx, bob, ether("2"))
		assert.NoError(t, err)
	}()

	// Give the second deposit time to commit before the first publish finishes.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, []uint64{1, 2}, published)
}

func TestSequenceConflict(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	clock := newTestClock()

	first, err := New(Config{Admin: admin}, store, quietOptions(clock)...)
	require.NoError(t, err)
	second, err := New(Config{Admin: admin}, store, quietOptions(clock)...)
	require.NoError(t, err)

	_, err = first.Deposit(ctx, alice, ether("1"))
	require.NoError(t, err)

	t.Run("Conflict Is Surfaced", func(t *testing.T) {
		_, err := second.Deposit(ctx, bob, ether("2"))
		assert.ErrorIs(t, err, storage.ErrSequenceConflict)
	})

	t.Run("Engine Catches Up", func(t *testing.T) {
		assert.Equal(t, uint64(1), second.Seq())

		_, err := second.Deposit(ctx, bob, ether("2"))
		require.NoError(t, err)
		assert.Equal(t, uint64(2), second.Seq())

		acct, err := second.SavingsAccount(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, ether("1"), acct.Principal)
	})
}

func TestSeedFeeRecipient(t *testing.T) {
	ctx := context.Background()
	treasury := common.HexToAddress("0x00000000000000000000000000000000000000f1")
	other := common.HexToAddress("0x00000000000000000000000000000000000000f2")

	t.Run("Defaults To Admin", func(t *testing.T) {
		e, _, _ := newTestEngine(t)
		assert.Equal(t, admin, e.FeeRecipient(ctx))
	})

	t.Run("Journaled On Empty Ledger", func(t *testing.T) {
		e, _, _ := newTestEngine(t)

		changed, err := e.SeedFeeRecipient(ctx, treasury)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, treasury, e.FeeRecipient(ctx))
		assert.Equal(t, uint64(1), e.Seq())
	})

	t.Run("Ignored Once Journal Exists", func(t *testing.T) {
		e, store, clock := newTestEngine(t)
		_, err := e.SeedFeeRecipient(ctx, treasury)
		require.NoError(t, err)

		restarted, err := New(Config{Admin: admin}, store, quietOptions(clock)...)
		require.NoError(t, err)
		require.NoError(t, restarted.Restore(ctx))

		changed, err := restarted.SeedFeeRecipient(ctx, other)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, treasury, restarted.FeeRecipient(ctx))
	})

	t.Run("Zero Address Ignored", func(t *testing.T) {
		e, _, _ := newTestEngine(t)

		changed, err := e.SeedFeeRecipient(ctx, common.Address{})
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, uint64(0), e.Seq())
	})
}
