package models

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// SavingsAccount is the savings position of one depositor.
type SavingsAccount struct {
	Account          common.Address `json:"account"`
	Principal        *uint256.Int   `json:"principal"`
	PendingYield     *uint256.Int   `json:"pending_yield"`
	DepositTimestamp time.Time      `json:"deposit_timestamp"`
	Active           bool           `json:"active"`
}

// Clone returns a deep copy.
func (s *SavingsAccount) Clone() *SavingsAccount {
	c := *s
	c.Principal = s.Principal.Clone()
	c.PendingYield = s.PendingYield.Clone()
	return &c
}

// Balance is the read view of a savings account at a point in time.
type Balance struct {
	Principal    *uint256.Int `json:"principal"`
	AccruedYield *uint256.Int `json:"accrued_yield"`
	Total        *uint256.Int `json:"total"`
}

// Business is a tokenized business listed on the platform.
type Business struct {
	ID                 uint64         `json:"id"`
	Name               string         `json:"name"`
	Description        string         `json:"description"`
	Category           string         `json:"category"`
	Owner              common.Address `json:"owner"`
	TokenSupply        uint64         `json:"token_supply"`
	TokenPrice         *uint256.Int   `json:"token_price"`
	MonthlyRevenue     *uint256.Int   `json:"monthly_revenue"`
	ProfitMargin       uint64         `json:"profit_margin"`
	AvailableTokens    uint64         `json:"available_tokens"`
	TotalRaised        *uint256.Int   `json:"total_raised"`
	TotalDividendsPaid *uint256.Int   `json:"total_dividends_paid"`
	Verified           bool           `json:"verified"`
	Active             bool           `json:"active"`
	CreatedAt          time.Time      `json:"created_at"`
}

// Clone returns a deep copy.
func (b *Business) Clone() *Business {
	c := *b
	c.TokenPrice = b.TokenPrice.Clone()
	c.MonthlyRevenue = b.MonthlyRevenue.Clone()
	c.TotalRaised = b.TotalRaised.Clone()
	c.TotalDividendsPaid = b.TotalDividendsPaid.Clone()
	return &c
}

// SoldTokens is the number of tokens held by investors.
func (b *Business) SoldTokens() uint64 {
	return b.TokenSupply - b.AvailableTokens
}

// Investment is the cumulative holding of one investor in one business.
type Investment struct {
	BusinessID            uint64         `json:"business_id"`
	Investor              common.Address `json:"investor"`
	TokenAmount           uint64         `json:"token_amount"`
	InvestedAmount        *uint256.Int   `json:"invested_amount"`
	ClaimableDividends    *uint256.Int   `json:"claimable_dividends"`
	TotalDividendsClaimed *uint256.Int   `json:"total_dividends_claimed"`
	FirstInvestedAt       time.Time      `json:"first_invested_at"`
}

// Clone returns a deep copy.
func (i *Investment) Clone() *Investment {
	c := *i
	c.InvestedAmount = i.InvestedAmount.Clone()
	c.ClaimableDividends = i.ClaimableDividends.Clone()
	c.TotalDividendsClaimed = i.TotalDividendsClaimed.Clone()
	return &c
}

// DividendDistribution records one dividend payment by a business owner.
type DividendDistribution struct {
	BusinessID  uint64       `json:"business_id"`
	Amount      *uint256.Int `json:"amount"`
	TokenSupply uint64       `json:"token_supply"`
	Timestamp   time.Time    `json:"timestamp"`
}

// PlatformStats are platform-wide rollups, always derived from records.
type PlatformStats struct {
	TotalBusinessesCount        uint64       `json:"total_businesses_count"`
	TotalInvestmentVolumeAmount *uint256.Int `json:"total_investment_volume_amount"`
	TotalDividendsPaidAmount    *uint256.Int `json:"total_dividends_paid_amount"`
	ContractBalance             *uint256.Int `json:"contract_balance"`
	TotalSavingsAmount          *uint256.Int `json:"total_savings_amount"`
	TotalInvestors              uint64       `json:"total_investors"`
}
