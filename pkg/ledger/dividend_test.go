package ledger

import (
	"context"
	"testing"

	"github.com/chris/polyfunds-ledger/pkg/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistributeDividends(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newTestEngine(t)
	id := createVerified(t, e, defaultParams())
	buy(t, e, alice, id, 2000)
	buy(t, e, bob, id, 2500)

	t.Run("Validation", func(t *testing.T) {
		_, err := e.DistributeDividends(ctx, owner, 7, ether("1"))
		assert.ErrorIs(t, err, ErrBusinessNotFound)

		_, err = e.DistributeDividends(ctx, alice, id, ether("1"))
		assert.ErrorIs(t, err, ErrNotBusinessOwner)

		_, err = e.DistributeDividends(ctx, owner, id, new(uint256.Int))
		assert.ErrorIs(t, err, ErrMustSendEthForDividends)
	})

	t.Run("Pro Rata Over Full Supply", func(t *testing.T) {
		ev, err := e.DistributeDividends(ctx, owner, id, ether("5"))
		require.NoError(t, err)
		assert.Equal(t, models.EventDividendDistributed, ev.Type)
		assert.Equal(t, "2", ev.Data["holders"])
		assert.Equal(t, ether("2.25").Dec(), ev.Data["allocated"])

		a, err := e.ClaimableDividends(ctx, alice, id)
		require.NoError(t, err)
		assert.Equal(t, ether("1"), a)
		b, err := e.ClaimableDividends(ctx, bob, id)
		require.NoError(t, err)
		assert.Equal(t, ether("1.25"), b)

		c, err := e.ClaimableDividends(ctx, carol, id)
		require.NoError(t, err)
		assert.True(t, c.IsZero())

		info, err := e.GetBusinessInfo(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, ether("5"), info.TotalDividendsPaid)

		history, err := e.DividendHistory(ctx, id)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, uint64(10_000), history[0].TokenSupply)
	})

	t.Run("Distributions Accumulate", func(t *testing.T) {
		_, err := e.DistributeDividends(ctx, owner, id, ether("1"))
		require.NoError(t, err)

		a, err := e.ClaimableDividends(ctx, alice, id)
		require.NoError(t, err)
		assert.Equal(t, ether("1.2"), a)
	})
}

func TestDistributeUsesFullSupplyForLargeHolders(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newTestEngine(t)
	id := createVerified(t, e, defaultParams())

	// Holdings above the purchase cap can only be set up directly.
	for investor, tokens := range map[common.Address]uint64{alice: 2000, bob: 3000} {
		e.state.putInvestment(&models.Investment{
			BusinessID:            id,
			Investor:              investor,
			TokenAmount:           tokens,
			InvestedAmount:        new(uint256.Int),
			ClaimableDividends:    new(uint256.Int),
			TotalDividendsClaimed: new(uint256.Int),
		})
	}

	_, err := e.DistributeDividends(ctx, owner, id, ether("5"))
	require.NoError(t, err)

	a, _ := e.ClaimableDividends(ctx, alice, id)
	b, _ := e.ClaimableDividends(ctx, bob, id)
	assert.Equal(t, ether("1"), a)
	assert.Equal(t, ether("1.5"), b)
}

func TestClaimDividends(t *testing.T) {
	ctx := context.Background()
	e, store, _ := newTestEngine(t)
	id := createVerified(t, e, defaultParams())
	buy(t, e, alice, id, 2000)
	buy(t, e, bob, id, 2000)
	_, err := e.DistributeDividends(ctx, owner, id, ether("5"))
	require.NoError(t, err)

	_, err = e.ClaimDividends(ctx, alice, 3)
	assert.ErrorIs(t, err, ErrBusinessNotFound)

	_, err = e.ClaimDividends(ctx, carol, id)
	assert.ErrorIs(t, err, ErrNoDividendsToClaim)

	ev, err := e.ClaimDividends(ctx, alice, id)
	require.NoError(t, err)
	assert.Equal(t, models.EventDividendsClaimed, ev.Type)
	assert.Equal(t, ether("1").Dec(), ev.Data["amount"])

	_, err = e.ClaimDividends(ctx, alice, id)
	assert.ErrorIs(t, err, ErrNoDividendsToClaim)

	invs, err := e.GetUserInvestments(ctx, alice)
	require.NoError(t, err)
	require.Len(t, invs, 1)
	assert.True(t, invs[0].ClaimableDividends.IsZero())
	assert.Equal(t, ether("1"), invs[0].TotalDividendsClaimed)

	w, err := store.GetWallet(ctx, alice.Hex())
	require.NoError(t, err)
	assert.Equal(t, ether("1").Dec(), w.Received)

	stats, err := e.PlatformStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, ether("4"), stats.ContractBalance)

	t.Run("Deactivation Keeps Pending Claims", func(t *testing.T) {
		_, err := e.DeactivateBusiness(ctx, admin, id)
		require.NoError(t, err)
		c, err := e.ClaimableDividends(ctx, bob, id)
		require.NoError(t, err)
		assert.Equal(t, ether("1"), c)
	})

	t.Run("Pool Shortfall", func(t *testing.T) {
		_, err := e.EmergencyWithdraw(ctx, admin)
		require.NoError(t, err)
		assert.NotEmpty(t, e.CheckInvariants(ctx))

		_, err = e.ClaimDividends(ctx, bob, id)
		assert.ErrorIs(t, err, ErrInsufficientPoolFunds)

		_, err = e.FundPool(ctx, carol, ether("1"))
		require.NoError(t, err)
		_, err = e.ClaimDividends(ctx, bob, id)
		require.NoError(t, err)
	})
}

func TestCalculatePotentialDividend(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newTestEngine(t)
	id := createVerified(t, e, defaultParams())

	got, err := e.CalculatePotentialDividend(ctx, id, 1000)
	require.NoError(t, err)
	assert.Equal(t, ether("16.8"), got)

	_, err = e.CalculatePotentialDividend(ctx, 5, 1000)
	assert.ErrorIs(t, err, ErrBusinessNotFound)

	t.Run("Zero Revenue Or Margin", func(t *testing.T) {
		_, err := e.UpdateBusinessMetrics(ctx, owner, id, new(uint256.Int), 20)
		require.NoError(t, err)
		got, err := e.CalculatePotentialDividend(ctx, id, 1000)
		require.NoError(t, err)
		assert.True(t, got.IsZero())

		_, err = e.UpdateBusinessMetrics(ctx, owner, id, ether("100"), 0)
		require.NoError(t, err)
		got, err = e.CalculatePotentialDividend(ctx, id, 1000)
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	})

	t.Run("Truncates At Each Step", func(t *testing.T) {
		// 7*33/100 = 2, *12 = 24, *70/100 = 16, /1000 = 0
		got, err := potentialDividend(uint256.NewInt(7), 33, 1000, 500)
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	})
}
