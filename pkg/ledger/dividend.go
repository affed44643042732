package ledger

import (
	"context"
	"strconv"
	"time"

	"github.com/chris/polyfunds-ledger/pkg/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// DistributeDividends credits amount to the holders of a business pro rata
// to their tokens over the full token supply. The funds are held in the pool
// until claimed; the share of unsold tokens stays in the pool unallocated.
// Owner only.
func (e *Engine) DistributeDividends(ctx context.Context, caller common.Address, businessID uint64, amount *uint256.Int) (*models.Event, error) {
	return e.execute(ctx, models.Command{
		Type:       models.CommandDistributeDividends,
		Caller:     caller.Hex(),
		BusinessID: businessID,
		Amount:     amountString(amount),
	})
}

func (e *Engine) planDistributeDividends(caller common.Address, businessID uint64, amount *uint256.Int, now time.Time) (*plan, error) {
	b, ok := e.state.business(businessID)
	if !ok {
		return nil, ErrBusinessNotFound
	}
	if caller != b.Owner {
		return nil, ErrNotBusinessOwner
	}
	if amount.IsZero() {
		return nil, ErrMustSendEthForDividends
	}
	pool, overflow := new(uint256.Int).AddOverflow(e.state.pool, amount)
	if overflow {
		return nil, ErrInvalidAmount
	}
	paid, overflow := new(uint256.Int).AddOverflow(b.TotalDividendsPaid, amount)
	if overflow {
		return nil, ErrInvalidAmount
	}

	supply := uint256.NewInt(b.TokenSupply)
	holders := e.state.holders[businessID]
	credited := make([]*models.Investment, 0, len(holders))
	allocated := new(uint256.Int)
	for _, holder := range holders {
		inv, _ := e.state.investment(businessID, holder)
		share, _ := mulDiv(amount, uint256.NewInt(inv.TokenAmount), supply)
		next := inv.Clone()
		next.ClaimableDividends = new(uint256.Int).Add(next.ClaimableDividends, share)
		credited = append(credited, next)
		allocated.Add(allocated, share)
	}

	distribution := models.DividendDistribution{
		BusinessID:  businessID,
		Amount:      amount.Clone(),
		TokenSupply: b.TokenSupply,
		Timestamp:   now,
	}

	addr := caller.Hex()
	return &plan{
		event: models.Event{
			Type:       models.EventDividendDistributed,
			BusinessID: businessRef(businessID),
			Account:    addr,
			Data: map[string]string{
				"amount":    amount.Dec(),
				"allocated": allocated.Dec(),
				"holders":   strconv.Itoa(len(holders)),
			},
		},
		entries: []models.LedgerEntry{
			debit(addr, amount, "Dividend distribution for business "+strconv.FormatUint(businessID, 10)),
			credit(models.PoolAccount, amount, "Dividend distribution for business "+strconv.FormatUint(businessID, 10)),
		},
		apply: func() {
			for _, inv := range credited {
				e.state.putInvestment(inv)
			}
			b.TotalDividendsPaid = paid
			e.state.pool = pool
			e.state.distributions[businessID] = append(e.state.distributions[businessID], distribution)
		},
	}, nil
}

// ClaimDividends pays out the claimable dividends of holder in one business.
func (e *Engine) ClaimDividends(ctx context.Context, holder common.Address, businessID uint64) (*models.Event, error) {
	return e.execute(ctx, models.Command{
		Type:       models.CommandClaimDividends,
		Caller:     holder.Hex(),
		BusinessID: businessID,
	})
}

func (e *Engine) planClaimDividends(holder common.Address, businessID uint64) (*plan, error) {
	if _, ok := e.state.business(businessID); !ok {
		return nil, ErrBusinessNotFound
	}
	inv, ok := e.state.investment(businessID, holder)
	if !ok || inv.ClaimableDividends.IsZero() {
		return nil, ErrNoDividendsToClaim
	}
	amount := inv.ClaimableDividends.Clone()
	if amount.Gt(e.state.pool) {
		return nil, ErrInsufficientPoolFunds
	}

	next := inv.Clone()
	next.ClaimableDividends = new(uint256.Int)
	next.TotalDividendsClaimed = new(uint256.Int).Add(next.TotalDividendsClaimed, amount)
	pool := new(uint256.Int).Sub(e.state.pool, amount)

	addr := holder.Hex()
	return &plan{
		event: models.Event{
			Type:       models.EventDividendsClaimed,
			BusinessID: businessRef(businessID),
			Account:    addr,
			Data:       map[string]string{"amount": amount.Dec()},
		},
		entries: []models.LedgerEntry{
			debit(models.PoolAccount, amount, "Dividend claim"),
			credit(addr, amount, "Dividend claim"),
		},
		apply: func() {
			e.state.putInvestment(next)
			e.state.pool = pool
		},
	}, nil
}

// ClaimableDividends returns the unclaimed dividends of holder in a business.
func (e *Engine) ClaimableDividends(ctx context.Context, holder common.Address, businessID uint64) (*uint256.Int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if _, ok := e.state.business(businessID); !ok {
		return nil, ErrBusinessNotFound
	}
	if inv, ok := e.state.investment(businessID, holder); ok {
		return inv.ClaimableDividends.Clone(), nil
	}
	return new(uint256.Int), nil
}

// DividendHistory returns the distributions of a business in order.
func (e *Engine) DividendHistory(ctx context.Context, businessID uint64) ([]models.DividendDistribution, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if _, ok := e.state.business(businessID); !ok {
		return nil, ErrBusinessNotFound
	}
	return append([]models.DividendDistribution{}, e.state.distributions[businessID]...), nil
}

// CalculatePotentialDividend projects the yearly dividend of tokenAmount
// tokens from the current metrics, assuming 70% of profit goes to investors.
// Every step truncates, in this order: monthly profit, annual profit,
// investor share, per-token share, result.
func (e *Engine) CalculatePotentialDividend(ctx context.Context, businessID uint64, tokenAmount uint64) (*uint256.Int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	b, ok := e.state.business(businessID)
	if !ok {
		return nil, ErrBusinessNotFound
	}
	return potentialDividend(b.MonthlyRevenue, b.ProfitMargin, b.TokenSupply, tokenAmount)
}

func potentialDividend(monthlyRevenue *uint256.Int, profitMargin, tokenSupply, tokenAmount uint64) (*uint256.Int, error) {
	if monthlyRevenue.IsZero() || profitMargin == 0 || tokenSupply == 0 {
		return new(uint256.Int), nil
	}
	hundred := uint256.NewInt(100)
	monthlyProfit, o1 := mulDiv(monthlyRevenue, uint256.NewInt(profitMargin), hundred)
	annualProfit, o2 := new(uint256.Int).MulOverflow(monthlyProfit, uint256.NewInt(12))
	investorShare, o3 := mulDiv(annualProfit, uint256.NewInt(InvestorSharePercent), hundred)
	perToken := new(uint256.Int).Div(investorShare, uint256.NewInt(tokenSupply))
	result, o4 := new(uint256.Int).MulOverflow(perToken, uint256.NewInt(tokenAmount))
	if o1 || o2 || o3 || o4 {
		return nil, ErrInvalidAmount
	}
	return result, nil
}
