package mapping

import (
	"fmt"

	"github.com/chris/polyfunds-ledger/pkg/api"
	"github.com/chris/polyfunds-ledger/pkg/ledger"
	"github.com/chris/polyfunds-ledger/pkg/models"
	"github.com/chris/polyfunds-ledger/pkg/units"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// wei renders an amount as a decimal wei string; nil is zero.
func wei(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}

// ToDomainAddress parses a hex account address.
func ToDomainAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", ledger.ErrInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}

// ToDomainAmount parses a wei amount. An empty string is zero.
func ToDomainAmount(s string) (*uint256.Int, error) {
	if s == "" {
		return new(uint256.Int), nil
	}
	return units.ParseWei(s)
}

// ToDomainBusinessParams converts a listing request to engine parameters.
func ToDomainBusinessParams(nb *api.NewBusiness) (ledger.BusinessParams, error) {
	price, err := ToDomainAmount(nb.TokenPrice)
	if err != nil {
		return ledger.BusinessParams{}, fmt.Errorf("token_price: %w", err)
	}
	revenue, err := ToDomainAmount(nb.MonthlyRevenue)
	if err != nil {
		return ledger.BusinessParams{}, fmt.Errorf("monthly_revenue: %w", err)
	}
	return ledger.BusinessParams{
		Name:           nb.Name,
		Description:    nb.Description,
		Category:       nb.Category,
		TokenSupply:    nb.TokenSupply,
		TokenPrice:     price,
		MonthlyRevenue: revenue,
		ProfitMargin:   nb.ProfitMargin,
	}, nil
}

// ToApiEvent converts a domain Event to an API Event.
func ToApiEvent(ev *models.Event) *api.Event {
	return &api.Event{
		Id:         ev.ID,
		Seq:        ev.Seq,
		Type:       string(ev.Type),
		BusinessId: ev.BusinessID,
		Account:    ev.Account,
		Data:       ev.Data,
		Timestamp:  ev.Timestamp,
	}
}

// ToApiSavingsBalance combines an account's position and its balance view.
func ToApiSavingsBalance(account common.Address, sa *models.SavingsAccount, b *models.Balance) *api.SavingsBalance {
	out := &api.SavingsBalance{
		Account:      account.Hex(),
		Principal:    wei(b.Principal),
		AccruedYield: wei(b.AccruedYield),
		Total:        wei(b.Total),
	}
	if sa != nil {
		out.Active = sa.Active
		if !sa.DepositTimestamp.IsZero() {
			ts := sa.DepositTimestamp
			out.DepositTimestamp = &ts
		}
	}
	return out
}

// ToApiBusiness converts a domain Business to an API Business.
func ToApiBusiness(b *models.Business) *api.Business {
	return &api.Business{
		Id:                 b.ID,
		Name:               b.Name,
		Description:        b.Description,
		Category:           b.Category,
		Owner:              b.Owner.Hex(),
		TokenSupply:        b.TokenSupply,
		TokenPrice:         wei(b.TokenPrice),
		TokenPriceEth:      units.FormatEther(b.TokenPrice),
		MonthlyRevenue:     wei(b.MonthlyRevenue),
		ProfitMargin:       b.ProfitMargin,
		AvailableTokens:    b.AvailableTokens,
		TotalRaised:        wei(b.TotalRaised),
		TotalDividendsPaid: wei(b.TotalDividendsPaid),
		Verified:           b.Verified,
		Active:             b.Active,
		CreatedAt:          b.CreatedAt,
	}
}

// ToApiInvestment converts a domain Investment to an API Investment.
func ToApiInvestment(inv *models.Investment) *api.Investment {
	return &api.Investment{
		BusinessId:            inv.BusinessID,
		Investor:              inv.Investor.Hex(),
		TokenAmount:           inv.TokenAmount,
		InvestedAmount:        wei(inv.InvestedAmount),
		ClaimableDividends:    wei(inv.ClaimableDividends),
		TotalDividendsClaimed: wei(inv.TotalDividendsClaimed),
		FirstInvestedAt:       inv.FirstInvestedAt,
	}
}

// ToApiDividendDistribution converts a domain DividendDistribution to its API form.
func ToApiDividendDistribution(d *models.DividendDistribution) *api.DividendDistribution {
	return &api.DividendDistribution{
		BusinessId:  d.BusinessID,
		Amount:      wei(d.Amount),
		TokenSupply: d.TokenSupply,
		Timestamp:   d.Timestamp,
	}
}

// ToApiPlatformStats converts domain PlatformStats to API PlatformStats.
func ToApiPlatformStats(s *models.PlatformStats, violations []string) *api.PlatformStats {
	return &api.PlatformStats{
		TotalBusinesses:       s.TotalBusinessesCount,
		TotalInvestmentVolume: wei(s.TotalInvestmentVolumeAmount),
		TotalDividendsPaid:    wei(s.TotalDividendsPaidAmount),
		ContractBalance:       wei(s.ContractBalance),
		TotalSavings:          wei(s.TotalSavingsAmount),
		TotalInvestors:        s.TotalInvestors,
		InvariantViolations:   violations,
	}
}

// ToApiLedgerEntry converts a domain LedgerEntry to an API LedgerEntry.
func ToApiLedgerEntry(entry *models.LedgerEntry) *api.LedgerEntry {
	out := &api.LedgerEntry{
		EntryId:     &entry.EntryID,
		Seq:         entry.Seq,
		AccountId:   entry.AccountID,
		Description: entry.Description,
		Status:      string(entry.Status),
		Timestamp:   entry.Timestamp,
	}
	if entry.Debit != "" {
		out.Debit = &entry.Debit
	}
	if entry.Credit != "" {
		out.Credit = &entry.Credit
	}
	return out
}

// ToApiWallet converts a domain Wallet model to an API Wallet model.
func ToApiWallet(wallet *models.Wallet) *api.Wallet {
	return &api.Wallet{
		Address:   wallet.Address,
		Received:  wallet.Received,
		Frozen:    wallet.Frozen,
		Version:   wallet.Version,
		UpdatedAt: wallet.UpdatedAt,
	}
}
