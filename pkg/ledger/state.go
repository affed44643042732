package ledger

import (
	"github.com/chris/polyfunds-ledger/pkg/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// state is everything the engine knows. It is only touched under the engine lock.
type state struct {
	pool         *uint256.Int
	feeRecipient common.Address

	savings map[common.Address]*models.SavingsAccount

	businesses      []*models.Business
	ownerBusinesses map[common.Address][]uint64

	investments map[uint64]map[common.Address]*models.Investment
	// holders lists investors of a business in order of first purchase.
	holders map[uint64][]common.Address
	// portfolios lists business ids of an investor in order of first purchase.
	portfolios map[common.Address][]uint64

	distributions map[uint64][]models.DividendDistribution

	events []models.Event
}

func newState(feeRecipient common.Address) *state {
	return &state{
		pool:            new(uint256.Int),
		feeRecipient:    feeRecipient,
		savings:         make(map[common.Address]*models.SavingsAccount),
		ownerBusinesses: make(map[common.Address][]uint64),
		investments:     make(map[uint64]map[common.Address]*models.Investment),
		holders:         make(map[uint64][]common.Address),
		portfolios:      make(map[common.Address][]uint64),
		distributions:   make(map[uint64][]models.DividendDistribution),
	}
}

func (s *state) business(id uint64) (*models.Business, bool) {
	if id >= uint64(len(s.businesses)) {
		return nil, false
	}
	return s.businesses[id], true
}

func (s *state) investment(businessID uint64, investor common.Address) (*models.Investment, bool) {
	inv, ok := s.investments[businessID][investor]
	return inv, ok
}

// putInvestment stores an investment, recording first-purchase order for new holders.
func (s *state) putInvestment(inv *models.Investment) {
	byInvestor, ok := s.investments[inv.BusinessID]
	if !ok {
		byInvestor = make(map[common.Address]*models.Investment)
		s.investments[inv.BusinessID] = byInvestor
	}
	if _, exists := byInvestor[inv.Investor]; !exists {
		s.holders[inv.BusinessID] = append(s.holders[inv.BusinessID], inv.Investor)
		s.portfolios[inv.Investor] = append(s.portfolios[inv.Investor], inv.BusinessID)
	}
	byInvestor[inv.Investor] = inv
}
