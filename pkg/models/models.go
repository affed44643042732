package models

import (
	"time"
)

// CommandType identifies a state-changing ledger operation.
type CommandType string

const (
	CommandDeposit               CommandType = "DEPOSIT"
	CommandWithdraw              CommandType = "WITHDRAW"
	CommandClaimYield            CommandType = "CLAIM_YIELD"
	CommandFundPool              CommandType = "FUND_POOL"
	CommandEmergencyWithdraw     CommandType = "EMERGENCY_WITHDRAW"
	CommandCreateBusiness        CommandType = "CREATE_BUSINESS"
	CommandVerifyBusiness        CommandType = "VERIFY_BUSINESS"
	CommandDeactivateBusiness    CommandType = "DEACTIVATE_BUSINESS"
	CommandUpdateBusinessMetrics CommandType = "UPDATE_BUSINESS_METRICS"
	CommandInvest                CommandType = "INVEST"
	CommandSetFeeRecipient       CommandType = "SET_FEE_RECIPIENT"
	CommandDistributeDividends   CommandType = "DISTRIBUTE_DIVIDENDS"
	CommandClaimDividends        CommandType = "CLAIM_DIVIDENDS"
)

// Command is the journaled form of a ledger operation.
// Amounts are decimal wei strings and addresses are hex strings so the record
// can be stored and replayed without loss.
type Command struct {
	Type           CommandType `json:"type" dynamodbav:"type"`
	Caller         string      `json:"caller" dynamodbav:"caller"`
	BusinessID     uint64      `json:"business_id,omitempty" dynamodbav:"business_id,omitempty"`
	Amount         string      `json:"amount,omitempty" dynamodbav:"amount,omitempty"`
	TokenAmount    uint64      `json:"token_amount,omitempty" dynamodbav:"token_amount,omitempty"`
	Verified       bool        `json:"verified,omitempty" dynamodbav:"verified,omitempty"`
	Recipient      string      `json:"recipient,omitempty" dynamodbav:"recipient,omitempty"`
	Name           string      `json:"name,omitempty" dynamodbav:"name,omitempty"`
	Description    string      `json:"description,omitempty" dynamodbav:"description,omitempty"`
	Category       string      `json:"category,omitempty" dynamodbav:"category,omitempty"`
	TokenSupply    uint64      `json:"token_supply,omitempty" dynamodbav:"token_supply,omitempty"`
	TokenPrice     string      `json:"token_price,omitempty" dynamodbav:"token_price,omitempty"`
	MonthlyRevenue string      `json:"monthly_revenue,omitempty" dynamodbav:"monthly_revenue,omitempty"`
	ProfitMargin   uint64      `json:"profit_margin,omitempty" dynamodbav:"profit_margin,omitempty"`
}

// EventType names a domain event emitted by a committed command.
type EventType string

const (
	EventDeposited            EventType = "Deposited"
	EventWithdrawn            EventType = "Withdrawn"
	EventYieldClaimed         EventType = "YieldClaimed"
	EventPoolFunded           EventType = "PoolFunded"
	EventEmergencyWithdrawal  EventType = "EmergencyWithdrawal"
	EventBusinessCreated      EventType = "BusinessCreated"
	EventBusinessVerified     EventType = "BusinessVerified"
	EventBusinessDeactivated  EventType = "BusinessDeactivated"
	EventBusinessUpdated      EventType = "BusinessUpdated"
	EventInvestmentMade       EventType = "InvestmentMade"
	EventFeeRecipientUpdated  EventType = "FeeRecipientUpdated"
	EventDividendDistributed  EventType = "DividendDistributed"
	EventDividendsClaimed     EventType = "DividendsClaimed"
)

// Event is an entry in the append-only event log.
type Event struct {
	ID         string            `json:"id" dynamodbav:"id"`
	Seq        uint64            `json:"seq" dynamodbav:"seq"`
	Type       EventType         `json:"type" dynamodbav:"type"`
	BusinessID *uint64           `json:"business_id,omitempty" dynamodbav:"business_id,omitempty"`
	Account    string            `json:"account,omitempty" dynamodbav:"account,omitempty"`
	Data       map[string]string `json:"data,omitempty" dynamodbav:"data,omitempty"`
	Timestamp  time.Time         `json:"timestamp" dynamodbav:"timestamp"`
}

// PayoutStatus tracks delivery of a credit to an external account.
type PayoutStatus string

const (
	PENDING PayoutStatus = "PENDING"
	SETTLED PayoutStatus = "SETTLED"
)

// PoolAccount is the ledger account of the shared contract pool.
const PoolAccount = "POOL"

// LedgerEntry represents a single entry in the double-entry ledger.
type LedgerEntry struct {
	EntryID     string       `json:"entry_id" dynamodbav:"entry_id"`
	Seq         uint64       `json:"seq" dynamodbav:"seq"`
	AccountID   string       `json:"account_id" dynamodbav:"account_id"`
	Debit       string       `json:"debit,omitempty" dynamodbav:"debit,omitempty"`
	Credit      string       `json:"credit,omitempty" dynamodbav:"credit,omitempty"`
	Description string       `json:"description" dynamodbav:"description"`
	Status      PayoutStatus `json:"status,omitempty" dynamodbav:"status,omitempty"`
	Timestamp   time.Time    `json:"timestamp" dynamodbav:"timestamp"`
	GSI1PK      string       `json:"-" dynamodbav:"gsi1pk"`
}

// IsPayout reports whether the entry credits an external account.
func (e LedgerEntry) IsPayout() bool {
	return e.Credit != "" && e.AccountID != PoolAccount
}

// JournalEntry is one committed command with everything it produced.
type JournalEntry struct {
	Seq       uint64        `json:"seq" dynamodbav:"seq"`
	Command   Command       `json:"command" dynamodbav:"command"`
	Event     Event         `json:"event" dynamodbav:"event"`
	Entries   []LedgerEntry `json:"entries,omitempty" dynamodbav:"entries,omitempty"`
	Timestamp time.Time     `json:"timestamp" dynamodbav:"timestamp"`
	GSI1PK    string        `json:"-" dynamodbav:"gsi1pk"`
}

// Wallet is the payout wallet of an external account: the running total of
// credits delivered to it by the ledger.
type Wallet struct {
	Address   string    `json:"address"`
	Received  string    `json:"received"`
	Frozen    bool      `json:"frozen"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}
