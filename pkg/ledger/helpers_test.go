package ledger

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/chris/polyfunds-ledger/pkg/events"
	"github.com/chris/polyfunds-ledger/pkg/storage/memory"
	"github.com/chris/polyfunds-ledger/pkg/units"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

var (
	admin = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	owner = common.HexToAddress("0x00000000000000000000000000000000000000b1")
	alice = common.HexToAddress("0x00000000000000000000000000000000000000c1")
	bob   = common.HexToAddress("0x00000000000000000000000000000000000000c2")
	carol = common.HexToAddress("0x00000000000000000000000000000000000000c3")
	dave  = common.HexToAddress("0x00000000000000000000000000000000000000c4")
	erin  = common.HexToAddress("0x00000000000000000000000000000000000000c5")
)

const day = 24 * time.Hour

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func quietOptions(clock *testClock) []Option {
	return []Option{
		WithClock(clock.Now),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithPublisher(events.Multi{}),
	}
}

func newTestEngine(t *testing.T) (*Engine, *memory.Store, *testClock) {
	t.Helper()
	store := memory.New()
	clock := newTestClock()
	e, err := New(Config{Admin: admin}, store, quietOptions(clock)...)
	require.NoError(t, err)
	return e, store, clock
}

func ether(s string) *uint256.Int {
	return units.MustEther(s)
}

func defaultParams() BusinessParams {
	return BusinessParams{
		Name:           "Lagos Bakery",
		Description:    "Neighbourhood bakery expanding to a second site",
		Category:       "Food & Beverage",
		TokenSupply:    10_000,
		TokenPrice:     ether("0.001"),
		MonthlyRevenue: ether("100"),
		ProfitMargin:   20,
	}
}

// createVerified lists a business for owner and verifies it.
func createVerified(t *testing.T, e *Engine, params BusinessParams) uint64 {
	t.Helper()
	ctx := context.Background()
	ev, err := e.CreateBusiness(ctx, owner, params)
	require.NoError(t, err)
	require.NotNil(t, ev.BusinessID)
	_, err = e.VerifyBusiness(ctx, admin, *ev.BusinessID, true)
	require.NoError(t, err)
	return *ev.BusinessID
}

// buy invests the exact price of tokens.
func buy(t *testing.T, e *Engine, investor common.Address, id uint64, tokens uint64) {
	t.Helper()
	b, err := e.GetBusinessInfo(context.Background(), id)
	require.NoError(t, err)
	cost := new(uint256.Int).Mul(uint256.NewInt(tokens), b.TokenPrice)
	_, err = e.InvestInBusiness(context.Background(), investor, id, tokens, cost)
	require.NoError(t, err)
}
