package ledger

import (
	"context"

	"github.com/chris/polyfunds-ledger/pkg/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// SavingsLedger is the savings and pool surface of the engine.
type SavingsLedger interface {
	Deposit(ctx context.Context, account common.Address, amount *uint256.Int) (*models.Event, error)
	Withdraw(ctx context.Context, account common.Address, amount *uint256.Int) (*models.Event, error)
	ClaimYield(ctx context.Context, account common.Address) (*models.Event, error)
	FundPool(ctx context.Context, funder common.Address, amount *uint256.Int) (*models.Event, error)
	EmergencyWithdraw(ctx context.Context, caller common.Address) (*models.Event, error)
	GetBalance(ctx context.Context, account common.Address) (*models.Balance, error)
	SavingsAccount(ctx context.Context, account common.Address) (*models.SavingsAccount, error)
}

// BusinessRegistry is the business listing surface of the engine.
type BusinessRegistry interface {
	CreateBusiness(ctx context.Context, owner common.Address, params BusinessParams) (*models.Event, error)
	VerifyBusiness(ctx context.Context, caller common.Address, businessID uint64, verified bool) (*models.Event, error)
	DeactivateBusiness(ctx context.Context, caller common.Address, businessID uint64) (*models.Event, error)
	UpdateBusinessMetrics(ctx context.Context, caller common.Address, businessID uint64, monthlyRevenue *uint256.Int, profitMargin uint64) (*models.Event, error)
	GetBusinessInfo(ctx context.Context, businessID uint64) (*models.Business, error)
	ListBusinesses(ctx context.Context) ([]*models.Business, error)
	GetOwnerBusinesses(ctx context.Context, owner common.Address) ([]uint64, error)
}

// InvestmentEngine is the token sale surface of the engine.
type InvestmentEngine interface {
	InvestInBusiness(ctx context.Context, investor common.Address, businessID uint64, tokenAmount uint64, payment *uint256.Int) (*models.Event, error)
	SetFeeRecipient(ctx context.Context, caller common.Address, recipient common.Address) (*models.Event, error)
	FeeRecipient(ctx context.Context) common.Address
	GetUserBusinessTokens(ctx context.Context, investor common.Address, businessID uint64) (uint64, error)
	GetUserInvestments(ctx context.Context, investor common.Address) ([]*models.Investment, error)
}

// DividendEngine is the dividend surface of the engine.
type DividendEngine interface {
	DistributeDividends(ctx context.Context, caller common.Address, businessID uint64, amount *uint256.Int) (*models.Event, error)
	ClaimDividends(ctx context.Context, holder common.Address, businessID uint64) (*models.Event, error)
	ClaimableDividends(ctx context.Context, holder common.Address, businessID uint64) (*uint256.Int, error)
	DividendHistory(ctx context.Context, businessID uint64) ([]models.DividendDistribution, error)
	CalculatePotentialDividend(ctx context.Context, businessID uint64, tokenAmount uint64) (*uint256.Int, error)
}

// StatsReader is the read-only rollup surface of the engine.
type StatsReader interface {
	PlatformStats(ctx context.Context) (*models.PlatformStats, error)
	CheckInvariants(ctx context.Context) []string
}

// EventReader exposes the polling event log.
type EventReader interface {
	Events(ctx context.Context, filter EventFilter) ([]models.Event, error)
}

// Service is everything the engine offers.
type Service interface {
	SavingsLedger
	BusinessRegistry
	InvestmentEngine
	DividendEngine
	StatsReader
	EventReader
}

// Make sure we conform to the interface
var _ Service = (*Engine)(nil)
