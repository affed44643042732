package ledger

import (
	"context"
	"fmt"

	"github.com/chris/polyfunds-ledger/pkg/models"
	"github.com/holiman/uint256"
)

// PlatformStats derives the platform rollups from the current records.
func (e *Engine) PlatformStats(ctx context.Context) (*models.PlatformStats, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	stats := &models.PlatformStats{
		TotalBusinessesCount:        uint64(len(e.state.businesses)),
		TotalInvestmentVolumeAmount: new(uint256.Int),
		TotalDividendsPaidAmount:    new(uint256.Int),
		ContractBalance:             e.state.pool.Clone(),
		TotalSavingsAmount:          new(uint256.Int),
	}
	for _, b := range e.state.businesses {
		stats.TotalInvestmentVolumeAmount.Add(stats.TotalInvestmentVolumeAmount, b.TotalRaised)
		stats.TotalDividendsPaidAmount.Add(stats.TotalDividendsPaidAmount, b.TotalDividendsPaid)
	}
	for _, acct := range e.state.savings {
		stats.TotalSavingsAmount.Add(stats.TotalSavingsAmount, acct.Principal)
	}
	stats.TotalInvestors = uint64(len(e.state.portfolios))
	return stats, nil
}

// CheckInvariants verifies the ledger's structural invariants and returns a
// description of every violation found.
func (e *Engine) CheckInvariants(ctx context.Context) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var violations []string
	claimable := new(uint256.Int)
	for _, b := range e.state.businesses {
		if b.AvailableTokens > b.TokenSupply {
			violations = append(violations, fmt.Sprintf("business %d: available tokens %d exceed supply %d", b.ID, b.AvailableTokens, b.TokenSupply))
		}
		held := uint64(0)
		for _, inv := range e.state.investments[b.ID] {
			held += inv.TokenAmount
			if inv.TokenAmount > maxHolding(b.TokenSupply) {
				violations = append(violations, fmt.Sprintf("business %d: investor %s holds %d tokens over the cap", b.ID, inv.Investor.Hex(), inv.TokenAmount))
			}
			claimable.Add(claimable, inv.ClaimableDividends)
		}
		if held != b.SoldTokens() {
			violations = append(violations, fmt.Sprintf("business %d: holdings %d do not match sold tokens %d", b.ID, held, b.SoldTokens()))
		}
	}
	for addr, acct := range e.state.savings {
		if acct.Active != !acct.Principal.IsZero() {
			violations = append(violations, fmt.Sprintf("savings %s: active=%t with principal %s", addr.Hex(), acct.Active, acct.Principal.Dec()))
		}
	}
	if claimable.Gt(e.state.pool) {
		violations = append(violations, fmt.Sprintf("pool %s does not cover claimable dividends %s", e.state.pool.Dec(), claimable.Dec()))
	}
	return violations
}
