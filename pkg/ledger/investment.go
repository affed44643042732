package ledger

import (
	"context"
	"strconv"
	"time"

	"github.com/chris/polyfunds-ledger/pkg/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// maxHolding is the cumulative token cap of one investor in a business.
func maxHolding(tokenSupply uint64) uint64 {
	return tokenSupply * MaxInvestmentPercentage / 100
}

// splitPayment returns the platform fee and the owner share of a payment.
// The integer division remainder stays with the owner.
func splitPayment(paid *uint256.Int) (fee, owner *uint256.Int) {
	fee, _ = mulDiv(paid, uint256.NewInt(PlatformFeePercent), uint256.NewInt(100))
	owner = new(uint256.Int).Sub(paid, fee)
	return fee, owner
}

// InvestInBusiness buys tokenAmount tokens of a business for exactly
// tokenAmount*tokenPrice. The payment is split between the business owner and
// the fee recipient in the same commit.
func (e *Engine) InvestInBusiness(ctx context.Context, investor common.Address, businessID uint64, tokenAmount uint64, payment *uint256.Int) (*models.Event, error) {
	return e.execute(ctx, models.Command{
		Type:        models.CommandInvest,
		Caller:      investor.Hex(),
		BusinessID:  businessID,
		TokenAmount: tokenAmount,
		Amount:      amountString(payment),
	})
}

func (e *Engine) planInvest(investor common.Address, businessID uint64, tokenAmount uint64, payment *uint256.Int, now time.Time) (*plan, error) {
	b, ok := e.state.business(businessID)
	if !ok {
		return nil, ErrBusinessNotFound
	}
	if !b.Verified {
		return nil, ErrBusinessNotVerified
	}
	if !b.Active {
		return nil, ErrBusinessNotActive
	}
	if tokenAmount == 0 {
		return nil, ErrInvalidAmount
	}
	cost, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(tokenAmount), b.TokenPrice)
	if overflow || !cost.Eq(payment) {
		return nil, ErrIncorrectPaymentAmount
	}
	if tokenAmount > b.AvailableTokens {
		return nil, ErrInsufficientTokens
	}

	held := uint64(0)
	existing, hasInvestment := e.state.investment(businessID, investor)
	if hasInvestment {
		held = existing.TokenAmount
	}
	if held+tokenAmount > maxHolding(b.TokenSupply) {
		return nil, ErrExceedsMaximumInvestmentLimit
	}

	var inv *models.Investment
	if hasInvestment {
		inv = existing.Clone()
	} else {
		inv = &models.Investment{
			BusinessID:            businessID,
			Investor:              investor,
			InvestedAmount:        new(uint256.Int),
			ClaimableDividends:    new(uint256.Int),
			TotalDividendsClaimed: new(uint256.Int),
			FirstInvestedAt:       now,
		}
	}
	inv.TokenAmount += tokenAmount
	inv.InvestedAmount = new(uint256.Int).Add(inv.InvestedAmount, payment)
	raised := new(uint256.Int).Add(b.TotalRaised, payment)

	fee, ownerShare := splitPayment(payment)
	feeRecipient := e.state.feeRecipient
	addr := investor.Hex()

	entries := []models.LedgerEntry{debit(addr, payment, "Investment in business "+strconv.FormatUint(businessID, 10))}
	if !ownerShare.IsZero() {
		entries = append(entries, credit(b.Owner.Hex(), ownerShare, "Investment proceeds"))
	}
	if !fee.IsZero() {
		entries = append(entries, credit(feeRecipient.Hex(), fee, "Platform fee"))
	}

	return &plan{
		event: models.Event{
			Type:       models.EventInvestmentMade,
			BusinessID: businessRef(businessID),
			Account:    addr,
			Data: map[string]string{
				"token_amount":  strconv.FormatUint(tokenAmount, 10),
				"paid_amount":   payment.Dec(),
				"owner_amount":  ownerShare.Dec(),
				"fee_amount":    fee.Dec(),
				"fee_recipient": feeRecipient.Hex(),
			},
		},
		entries: entries,
		apply: func() {
			b.AvailableTokens -= tokenAmount
			b.TotalRaised = raised
			e.state.putInvestment(inv)
		},
	}, nil
}

// SetFeeRecipient changes where platform fees are paid. Admin only.
func (e *Engine) SetFeeRecipient(ctx context.Context, caller common.Address, recipient common.Address) (*models.Event, error) {
	return e.execute(ctx, models.Command{
		Type:      models.CommandSetFeeRecipient,
		Caller:    caller.Hex(),
		Recipient: recipient.Hex(),
	})
}

func (e *Engine) planSetFeeRecipient(caller common.Address, recipient common.Address) (*plan, error) {
	if !e.isAdmin(caller) {
		return nil, ErrUnauthorized
	}
	if recipient == (common.Address{}) {
		return nil, ErrInvalidAddress
	}

	return &plan{
		event: models.Event{
			Type:    models.EventFeeRecipientUpdated,
			Account: caller.Hex(),
			Data: map[string]string{
				"previous":  e.state.feeRecipient.Hex(),
				"recipient": recipient.Hex(),
			},
		},
		apply: func() { e.state.feeRecipient = recipient },
	}, nil
}

// FeeRecipient returns the current platform fee recipient.
func (e *Engine) FeeRecipient(ctx context.Context) common.Address {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.feeRecipient
}

// SeedFeeRecipient journals an initial fee recipient on behalf of the admin
// when the journal is still empty. Once any command is committed the recorded
// recipient wins and recipient is ignored. It reports whether a change was committed.
func (e *Engine) SeedFeeRecipient(ctx context.Context, recipient common.Address) (bool, error) {
	if recipient == (common.Address{}) || e.Seq() != 0 || recipient == e.FeeRecipient(ctx) {
		return false, nil
	}
	if _, err := e.SetFeeRecipient(ctx, e.admin, recipient); err != nil {
		return false, err
	}
	return true, nil
}

// GetUserBusinessTokens returns the tokens investor holds in a business.
func (e *Engine) GetUserBusinessTokens(ctx context.Context, investor common.Address, businessID uint64) (uint64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if _, ok := e.state.business(businessID); !ok {
		return 0, ErrBusinessNotFound
	}
	if inv, ok := e.state.investment(businessID, investor); ok {
		return inv.TokenAmount, nil
	}
	return 0, nil
}

// GetUserInvestments returns the holdings of investor in order of first purchase.
func (e *Engine) GetUserInvestments(ctx context.Context, investor common.Address) ([]*models.Investment, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ids := e.state.portfolios[investor]
	out := make([]*models.Investment, 0, len(ids))
	for _, id := range ids {
		if inv, ok := e.state.investment(id, investor); ok {
			out = append(out, inv.Clone())
		}
	}
	return out, nil
}
