package ledger

import (
	"context"
	"strconv"
	"time"

	"github.com/chris/polyfunds-ledger/pkg/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// BusinessParams are the owner-supplied fields of a new business.
type BusinessParams struct {
	Name           string
	Description    string
	Category       string
	TokenSupply    uint64
	TokenPrice     *uint256.Int
	MonthlyRevenue *uint256.Int
	ProfitMargin   uint64
}

func businessParamsFromCommand(cmd models.Command) BusinessParams {
	return BusinessParams{
		Name:           cmd.Name,
		Description:    cmd.Description,
		Category:       cmd.Category,
		TokenSupply:    cmd.TokenSupply,
		TokenPrice:     parseAmount(cmd.TokenPrice),
		MonthlyRevenue: parseAmount(cmd.MonthlyRevenue),
		ProfitMargin:   cmd.ProfitMargin,
	}
}

// CreateBusiness lists a new business owned by owner. The returned event
// carries the assigned business id.
func (e *Engine) CreateBusiness(ctx context.Context, owner common.Address, params BusinessParams) (*models.Event, error) {
	return e.execute(ctx, models.Command{
		Type:           models.CommandCreateBusiness,
		Caller:         owner.Hex(),
		Name:           params.Name,
		Description:    params.Description,
		Category:       params.Category,
		TokenSupply:    params.TokenSupply,
		TokenPrice:     amountString(params.TokenPrice),
		MonthlyRevenue: amountString(params.MonthlyRevenue),
		ProfitMargin:   params.ProfitMargin,
	})
}

func (e *Engine) planCreateBusiness(owner common.Address, params BusinessParams, now time.Time) (*plan, error) {
	switch {
	case params.Name == "":
		return nil, ErrBusinessNameRequired
	case params.Description == "":
		return nil, ErrDescriptionRequired
	case params.Category == "":
		return nil, ErrCategoryRequired
	case params.TokenSupply < MinTokenSupply || params.TokenSupply > MaxTokenSupply:
		return nil, ErrInvalidTokenSupply
	case params.TokenPrice.Lt(e.minTokenPrice) && !e.replaying:
		return nil, ErrTokenPriceTooLow
	case params.ProfitMargin > 100:
		return nil, ErrInvalidProfitMargin
	}

	id := uint64(len(e.state.businesses))
	b := &models.Business{
		ID:                 id,
		Name:               params.Name,
		Description:        params.Description,
		Category:           params.Category,
		Owner:              owner,
		TokenSupply:        params.TokenSupply,
		TokenPrice:         params.TokenPrice.Clone(),
		MonthlyRevenue:     params.MonthlyRevenue.Clone(),
		ProfitMargin:       params.ProfitMargin,
		AvailableTokens:    params.TokenSupply,
		TotalRaised:        new(uint256.Int),
		TotalDividendsPaid: new(uint256.Int),
		Active:             true,
		CreatedAt:          now,
	}

	return &plan{
		event: models.Event{
			Type:       models.EventBusinessCreated,
			BusinessID: businessRef(id),
			Account:    owner.Hex(),
			Data: map[string]string{
				"name":         b.Name,
				"category":     b.Category,
				"token_supply": strconv.FormatUint(b.TokenSupply, 10),
				"token_price":  b.TokenPrice.Dec(),
			},
		},
		apply: func() {
			e.state.businesses = append(e.state.businesses, b)
			e.state.ownerBusinesses[owner] = append(e.state.ownerBusinesses[owner], id)
		},
	}, nil
}

// VerifyBusiness sets the verified flag of a business. Admin only.
func (e *Engine) VerifyBusiness(ctx context.Context, caller common.Address, businessID uint64, verified bool) (*models.Event, error) {
	return e.execute(ctx, models.Command{
		Type:       models.CommandVerifyBusiness,
		Caller:     caller.Hex(),
		BusinessID: businessID,
		Verified:   verified,
	})
}

func (e *Engine) planVerifyBusiness(caller common.Address, businessID uint64, verified bool) (*plan, error) {
	if !e.isAdmin(caller) {
		return nil, ErrUnauthorized
	}
	b, ok := e.state.business(businessID)
	if !ok {
		return nil, ErrBusinessNotFound
	}

	return &plan{
		event: models.Event{
			Type:       models.EventBusinessVerified,
			BusinessID: businessRef(businessID),
			Account:    caller.Hex(),
			Data:       map[string]string{"verified": strconv.FormatBool(verified)},
		},
		apply: func() { b.Verified = verified },
	}, nil
}

// DeactivateBusiness blocks new investment in a business. Holdings and
// pending dividends are unaffected. Admin only.
func (e *Engine) DeactivateBusiness(ctx context.Context, caller common.Address, businessID uint64) (*models.Event, error) {
	return e.execute(ctx, models.Command{
		Type:       models.CommandDeactivateBusiness,
		Caller:     caller.Hex(),
		BusinessID: businessID,
	})
}

func (e *Engine) planDeactivateBusiness(caller common.Address, businessID uint64) (*plan, error) {
	if !e.isAdmin(caller) {
		return nil, ErrUnauthorized
	}
	b, ok := e.state.business(businessID)
	if !ok {
		return nil, ErrBusinessNotFound
	}

	return &plan{
		event: models.Event{
			Type:       models.EventBusinessDeactivated,
			BusinessID: businessRef(businessID),
			Account:    caller.Hex(),
		},
		apply: func() { b.Active = false },
	}, nil
}

// UpdateBusinessMetrics replaces the reported revenue and margin. Owner only.
func (e *Engine) UpdateBusinessMetrics(ctx context.Context, caller common.Address, businessID uint64, monthlyRevenue *uint256.Int, profitMargin uint64) (*models.Event, error) {
	return e.execute(ctx, models.Command{
		Type:           models.CommandUpdateBusinessMetrics,
		Caller:         caller.Hex(),
		BusinessID:     businessID,
		MonthlyRevenue: amountString(monthlyRevenue),
		ProfitMargin:   profitMargin,
	})
}

func (e *Engine) planUpdateBusinessMetrics(caller common.Address, businessID uint64, monthlyRevenue *uint256.Int, profitMargin uint64) (*plan, error) {
	b, ok := e.state.business(businessID)
	if !ok {
		return nil, ErrBusinessNotFound
	}
	if caller != b.Owner {
		return nil, ErrNotBusinessOwner
	}
	if profitMargin > 100 {
		return nil, ErrInvalidProfitMargin
	}

	revenue := monthlyRevenue.Clone()
	return &plan{
		event: models.Event{
			Type:       models.EventBusinessUpdated,
			BusinessID: businessRef(businessID),
			Account:    caller.Hex(),
			Data: map[string]string{
				"monthly_revenue": revenue.Dec(),
				"profit_margin":   strconv.FormatUint(profitMargin, 10),
			},
		},
		apply: func() {
			b.MonthlyRevenue = revenue
			b.ProfitMargin = profitMargin
		},
	}, nil
}

// GetBusinessInfo returns a copy of a business. Deactivated businesses are still returned.
func (e *Engine) GetBusinessInfo(ctx context.Context, businessID uint64) (*models.Business, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	b, ok := e.state.business(businessID)
	if !ok {
		return nil, ErrBusinessNotFound
	}
	return b.Clone(), nil
}

// ListBusinesses returns copies of all businesses in id order.
func (e *Engine) ListBusinesses(ctx context.Context) ([]*models.Business, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]*models.Business, 0, len(e.state.businesses))
	for _, b := range e.state.businesses {
		out = append(out, b.Clone())
	}
	return out, nil
}

// GetOwnerBusinesses returns the ids of the businesses created by owner, in creation order.
func (e *Engine) GetOwnerBusinesses(ctx context.Context, owner common.Address) ([]uint64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ids := e.state.ownerBusinesses[owner]
	return append(make([]uint64, 0, len(ids)), ids...), nil
}
