package ledger

import (
	"context"
	"testing"

	"github.com/chris/polyfunds-ledger/pkg/models"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBusiness(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(p *BusinessParams)
		wantErr error
	}{
		{"Empty Name", func(p *BusinessParams) { p.Name = "" }, ErrBusinessNameRequired},
		{"Name Checked Before Description", func(p *BusinessParams) { p.Name = ""; p.Description = "" }, ErrBusinessNameRequired},
		{"Empty Description", func(p *BusinessParams) { p.Description = "" }, ErrDescriptionRequired},
		{"Empty Category", func(p *BusinessParams) { p.Category = "" }, ErrCategoryRequired},
		{"Supply Too Small", func(p *BusinessParams) { p.TokenSupply = 999 }, ErrInvalidTokenSupply},
		{"Supply Too Large", func(p *BusinessParams) { p.TokenSupply = 1_000_001 }, ErrInvalidTokenSupply},
		{"Supply Checked Before Price", func(p *BusinessParams) { p.TokenSupply = 1; p.TokenPrice = new(uint256.Int) }, ErrInvalidTokenSupply},
		{"Price Too Low", func(p *BusinessParams) { p.TokenPrice = ether("0.0009") }, ErrTokenPriceTooLow},
		{"Margin Too High", func(p *BusinessParams) { p.ProfitMargin = 101 }, ErrInvalidProfitMargin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, _ := newTestEngine(t)
			params := defaultParams()
			tt.mutate(&params)

			_, err := e.CreateBusiness(ctx, owner, params)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsValidation(err))
			list, _ := e.ListBusinesses(ctx)
			assert.Empty(t, list)
		})
	}

	t.Run("Boundaries Accepted", func(t *testing.T) {
		e, _, _ := newTestEngine(t)
		for _, p := range []BusinessParams{
			func() BusinessParams { p := defaultParams(); p.TokenSupply = MinTokenSupply; return p }(),
			func() BusinessParams { p := defaultParams(); p.TokenSupply = MaxTokenSupply; return p }(),
			func() BusinessParams { p := defaultParams(); p.ProfitMargin = 0; p.MonthlyRevenue = nil; return p }(),
			func() BusinessParams { p := defaultParams(); p.ProfitMargin = 100; return p }(),
		} {
			_, err := e.CreateBusiness(ctx, owner, p)
			assert.NoError(t, err)
		}
	})

	t.Run("Success", func(t *testing.T) {
		e, _, clock := newTestEngine(t)
		ev, err := e.CreateBusiness(ctx, owner, defaultParams())
		require.NoError(t, err)
		assert.Equal(t, models.EventBusinessCreated, ev.Type)
		require.NotNil(t, ev.BusinessID)
		assert.Equal(t, uint64(0), *ev.BusinessID)

		ev2, err := e.CreateBusiness(ctx, owner, defaultParams())
		require.NoError(t, err)
		assert.Equal(t, uint64(1), *ev2.BusinessID)

		b, err := e.GetBusinessInfo(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, owner, b.Owner)
		assert.Equal(t, uint64(10_000), b.AvailableTokens)
		assert.False(t, b.Verified)
		assert.True(t, b.Active)
		assert.True(t, b.TotalRaised.IsZero())
		assert.Equal(t, clock.Now(), b.CreatedAt)

		ids, err := e.GetOwnerBusinesses(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, []uint64{0, 1}, ids)
	})
}

func TestConfiguredMinTokenPrice(t *testing.T) {
	clock := newTestClock()
	e, err := New(Config{Admin: admin, MinTokenPrice: ether("0.01")}, nil, quietOptions(clock)...)
	require.NoError(t, err)

	params := defaultParams()
	params.TokenPrice = ether("0.005")
	_, err = e.CreateBusiness(context.Background(), owner, params)
	assert.ErrorIs(t, err, ErrTokenPriceTooLow)
}

func TestVerifyAndDeactivate(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newTestEngine(t)
	ev, err := e.CreateBusiness(ctx, owner, defaultParams())
	require.NoError(t, err)
	id := *ev.BusinessID

	t.Run("Not Admin", func(t *testing.T) {
		_, err := e.VerifyBusiness(ctx, owner, id, true)
		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.True(t, IsAuthorization(err))
		assert.False(t, IsValidation(err))

		_, err = e.DeactivateBusiness(ctx, alice, id)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("Unknown Business", func(t *testing.T) {
		_, err := e.VerifyBusiness(ctx, admin, 42, true)
		assert.ErrorIs(t, err, ErrBusinessNotFound)
		_, err = e.DeactivateBusiness(ctx, admin, 42)
		assert.ErrorIs(t, err, ErrBusinessNotFound)
	})

	t.Run("Verify Toggles", func(t *testing.T) {
		ev, err := e.VerifyBusiness(ctx, admin, id, true)
		require.NoError(t, err)
		assert.Equal(t, models.EventBusinessVerified, ev.Type)
		assert.Equal(t, "true", ev.Data["verified"])

		b, _ := e.GetBusinessInfo(ctx, id)
		assert.True(t, b.Verified)

		_, err = e.VerifyBusiness(ctx, admin, id, false)
		require.NoError(t, err)
		b, _ = e.GetBusinessInfo(ctx, id)
		assert.False(t, b.Verified)
	})

	t.Run("Deactivated Business Is Still Readable", func(t *testing.T) {
		_, err := e.DeactivateBusiness(ctx, admin, id)
		require.NoError(t, err)

		b, err := e.GetBusinessInfo(ctx, id)
		require.NoError(t, err)
		assert.False(t, b.Active)
		assert.Equal(t, "Lagos Bakery", b.Name)
	})
}

func TestUpdateBusinessMetrics(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newTestEngine(t)
	ev, err := e.CreateBusiness(ctx, owner, defaultParams())
	require.NoError(t, err)
	id := *ev.BusinessID

	_, err = e.UpdateBusinessMetrics(ctx, owner, 9, ether("1"), 10)
	assert.ErrorIs(t, err, ErrBusinessNotFound)

	_, err = e.UpdateBusinessMetrics(ctx, alice, id, ether("1"), 10)
	assert.ErrorIs(t, err, ErrNotBusinessOwner)

	_, err = e.UpdateBusinessMetrics(ctx, owner, id, ether("1"), 101)
	assert.ErrorIs(t, err, ErrInvalidProfitMargin)

	up, err := e.UpdateBusinessMetrics(ctx, owner, id, ether("250"), 35)
	require.NoError(t, err)
	assert.Equal(t, models.EventBusinessUpdated, up.Type)

	b, err := e.GetBusinessInfo(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, ether("250"), b.MonthlyRevenue)
	assert.Equal(t, uint64(35), b.ProfitMargin)
}

func TestGetOwnerBusinessesUnknownOwner(t *testing.T) {
	e, _, _ := newTestEngine(t)
	ids, err := e.GetOwnerBusinesses(context.Background(), alice)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = e.GetBusinessInfo(context.Background(), 0)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestBusinessCopiesAreDetached(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newTestEngine(t)
	_, err := e.CreateBusiness(ctx, owner, defaultParams())
	require.NoError(t, err)

	b, err := e.GetBusinessInfo(ctx, 0)
	require.NoError(t, err)
	b.TokenPrice.SetUint64(1)
	b.AvailableTokens = 0

	again, err := e.GetBusinessInfo(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, ether("0.001"), again.TokenPrice)
	assert.Equal(t, uint64(10_000), again.AvailableTokens)
}
