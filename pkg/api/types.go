// Package api defines the HTTP contract of the ledger service: request and
// response bodies, the server interface and its chi routing.
//
// Amounts are always base-10 wei strings so that values above 2^53 survive
// JSON clients.
package api

import "time"

// Error is the body of every non-2xx response.
type Error struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// AmountRequest carries a wei amount for deposits, withdrawals, pool funding
// and dividend distributions.
type AmountRequest struct {
	Amount string `json:"amount"`
}

// NewBusiness is the body of a business listing request.
type NewBusiness struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	TokenSupply    uint64 `json:"token_supply"`
	TokenPrice     string `json:"token_price"`
	MonthlyRevenue string `json:"monthly_revenue"`
	ProfitMargin   uint64 `json:"profit_margin"`
}

// BusinessMetrics is the body of a metrics update.
type BusinessMetrics struct {
	MonthlyRevenue string `json:"monthly_revenue"`
	ProfitMargin   uint64 `json:"profit_margin"`
}

// InvestmentRequest buys tokenAmount tokens for exactly payment wei.
type InvestmentRequest struct {
	TokenAmount uint64 `json:"token_amount"`
	Payment     string `json:"payment"`
}

// VerificationRequest sets the verified flag of a business.
type VerificationRequest struct {
	Verified bool `json:"verified"`
}

// FeeRecipientRequest replaces the platform fee recipient.
type FeeRecipientRequest struct {
	Recipient string `json:"recipient"`
}

// FrozenRequest blocks or unblocks payouts to a wallet.
type FrozenRequest struct {
	Frozen bool `json:"frozen"`
}

// Event is a committed ledger event.
type Event struct {
	Id         string            `json:"id"`
	Seq        uint64            `json:"seq"`
	Type       string            `json:"type"`
	BusinessId *uint64           `json:"business_id,omitempty"`
	Account    string            `json:"account,omitempty"`
	Data       map[string]string `json:"data,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// SavingsBalance is the savings position of an account.
type SavingsBalance struct {
	Account          string     `json:"account"`
	Principal        string     `json:"principal"`
	AccruedYield     string     `json:"accrued_yield"`
	Total            string     `json:"total"`
	Active           bool       `json:"active"`
	DepositTimestamp *time.Time `json:"deposit_timestamp,omitempty"`
}

// Business is a listed business.
type Business struct {
	Id                 uint64    `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	Category           string    `json:"category"`
	Owner              string    `json:"owner"`
	TokenSupply        uint64    `json:"token_supply"`
	TokenPrice         string    `json:"token_price"`
	TokenPriceEth      string    `json:"token_price_eth"`
	MonthlyRevenue     string    `json:"monthly_revenue"`
	ProfitMargin       uint64    `json:"profit_margin"`
	AvailableTokens    uint64    `json:"available_tokens"`
	TotalRaised        string    `json:"total_raised"`
	TotalDividendsPaid string    `json:"total_dividends_paid"`
	Verified           bool      `json:"verified"`
	Active             bool      `json:"active"`
	CreatedAt          time.Time `json:"created_at"`
}

// Investment is the holding of one investor in one business.
type Investment struct {
	BusinessId            uint64    `json:"business_id"`
	Investor              string    `json:"investor"`
	TokenAmount           uint64    `json:"token_amount"`
	InvestedAmount        string    `json:"invested_amount"`
	ClaimableDividends    string    `json:"claimable_dividends"`
	TotalDividendsClaimed string    `json:"total_dividends_claimed"`
	FirstInvestedAt       time.Time `json:"first_invested_at"`
}

// DividendDistribution is one dividend payment by a business owner.
type DividendDistribution struct {
	BusinessId  uint64    `json:"business_id"`
	Amount      string    `json:"amount"`
	TokenSupply uint64    `json:"token_supply"`
	Timestamp   time.Time `json:"timestamp"`
}

// PotentialDividend is a monthly dividend projection.
type PotentialDividend struct {
	BusinessId  uint64 `json:"business_id"`
	TokenAmount uint64 `json:"token_amount"`
	Amount      string `json:"amount"`
}

// OwnerBusinesses lists the businesses created by an owner.
type OwnerBusinesses struct {
	Owner       string   `json:"owner"`
	BusinessIds []uint64 `json:"business_ids"`
}

// PlatformStats are platform-wide rollups.
type PlatformStats struct {
	TotalBusinesses       uint64   `json:"total_businesses"`
	TotalInvestmentVolume string   `json:"total_investment_volume"`
	TotalDividendsPaid    string   `json:"total_dividends_paid"`
	ContractBalance       string   `json:"contract_balance"`
	TotalSavings          string   `json:"total_savings"`
	TotalInvestors        uint64   `json:"total_investors"`
	InvariantViolations   []string `json:"invariant_violations,omitempty"`
}

// LedgerEntry is one double-entry ledger line.
type LedgerEntry struct {
	EntryId     *string   `json:"entry_id,omitempty"`
	Seq         uint64    `json:"seq"`
	AccountId   string    `json:"account_id"`
	Debit       *string   `json:"debit,omitempty"`
	Credit      *string   `json:"credit,omitempty"`
	Description string    `json:"description"`
	Status      string    `json:"status,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Wallet is the payout wallet of an address.
type Wallet struct {
	Address   string    `json:"address"`
	Received  string    `json:"received"`
	Frozen    bool      `json:"frozen"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListLedgerEntriesParams defines parameters for ListLedgerEntries.
type ListLedgerEntriesParams struct {
	Limit   *int32  `form:"limit,omitempty" json:"limit,omitempty"`
	Account *string `form:"account,omitempty" json:"account,omitempty"`
}

// ListEventsParams defines parameters for ListEvents.
type ListEventsParams struct {
	BusinessId *uint64 `form:"business_id,omitempty" json:"business_id,omitempty"`
	Account    *string `form:"account,omitempty" json:"account,omitempty"`
	AfterSeq   *uint64 `form:"after_seq,omitempty" json:"after_seq,omitempty"`
	Limit      *int    `form:"limit,omitempty" json:"limit,omitempty"`
}

// CalculatePotentialDividendParams defines parameters for CalculatePotentialDividend.
type CalculatePotentialDividendParams struct {
	TokenAmount uint64 `form:"token_amount" json:"token_amount"`
}
