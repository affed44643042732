package ledger

import (
	"context"
	"time"

	"github.com/chris/polyfunds-ledger/pkg/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var yieldDenominator = uint256.NewInt(10_000 * SecondsPerYear)

// accruedYield is the unpaid yield of an account at now: the owed bucket
// plus linear accrual on principal since the anchor.
func accruedYield(acct *models.SavingsAccount, now time.Time) *uint256.Int {
	elapsed := now.Sub(acct.DepositTimestamp)
	if elapsed <= 0 || acct.Principal.IsZero() {
		return acct.PendingYield.Clone()
	}
	rate := uint256.NewInt(YieldRateBps * uint64(elapsed/time.Second))
	running, overflow := mulDiv(acct.Principal, rate, yieldDenominator)
	if overflow {
		running = new(uint256.Int).SetAllOne()
	}
	total, overflow := new(uint256.Int).AddOverflow(acct.PendingYield, running)
	if overflow {
		return new(uint256.Int).SetAllOne()
	}
	return total
}

func (e *Engine) savingsAccount(account common.Address) *models.SavingsAccount {
	if acct, ok := e.state.savings[account]; ok {
		return acct.Clone()
	}
	return &models.SavingsAccount{
		Account:      account,
		Principal:    new(uint256.Int),
		PendingYield: new(uint256.Int),
	}
}

// Deposit adds amount to the principal of account.
func (e *Engine) Deposit(ctx context.Context, account common.Address, amount *uint256.Int) (*models.Event, error) {
	return e.execute(ctx, models.Command{
		Type:   models.CommandDeposit,
		Caller: account.Hex(),
		Amount: amountString(amount),
	})
}

func (e *Engine) planDeposit(account common.Address, amount *uint256.Int, now time.Time) (*plan, error) {
	if amount.IsZero() {
		return nil, ErrInvalidAmount
	}
	principal, overflow := new(uint256.Int).AddOverflow(e.savingsAccountPrincipal(account), amount)
	if overflow {
		return nil, ErrInvalidAmount
	}
	pool, overflow := new(uint256.Int).AddOverflow(e.state.pool, amount)
	if overflow {
		return nil, ErrInvalidAmount
	}

	next := e.savingsAccount(account)
	next.PendingYield = accruedYield(next, now)
	next.Principal = principal
	next.DepositTimestamp = now
	next.Active = true

	addr := account.Hex()
	return &plan{
		event: models.Event{
			Type:    models.EventDeposited,
			Account: addr,
			Data:    map[string]string{"amount": amount.Dec(), "principal": principal.Dec()},
		},
		entries: []models.LedgerEntry{
			debit(addr, amount, "Savings deposit"),
			credit(models.PoolAccount, amount, "Savings deposit"),
		},
		apply: func() {
			e.state.savings[account] = next
			e.state.pool = pool
		},
	}, nil
}

func (e *Engine) savingsAccountPrincipal(account common.Address) *uint256.Int {
	if acct, ok := e.state.savings[account]; ok {
		return acct.Principal
	}
	return new(uint256.Int)
}

// Withdraw pays out amount from the savings of account, yield first.
// A zero amount withdraws everything.
func (e *Engine) Withdraw(ctx context.Context, account common.Address, amount *uint256.Int) (*models.Event, error) {
	return e.execute(ctx, models.Command{
		Type:   models.CommandWithdraw,
		Caller: account.Hex(),
		Amount: amountString(amount),
	})
}

func (e *Engine) planWithdraw(account common.Address, amount *uint256.Int, now time.Time) (*plan, error) {
	next := e.savingsAccount(account)
	yield := accruedYield(next, now)
	total, overflow := new(uint256.Int).AddOverflow(next.Principal, yield)
	if overflow {
		total.SetAllOne()
	}

	if amount.IsZero() {
		amount = total
	}
	if amount.IsZero() || amount.Gt(total) {
		return nil, ErrInsufficientBalance
	}
	if amount.Gt(e.state.pool) {
		return nil, ErrInsufficientPoolFunds
	}

	yieldPortion := amount.Clone()
	if yieldPortion.Gt(yield) {
		yieldPortion = yield.Clone()
	}
	principalPortion := new(uint256.Int).Sub(amount, yieldPortion)

	next.PendingYield = new(uint256.Int).Sub(yield, yieldPortion)
	next.Principal = new(uint256.Int).Sub(next.Principal, principalPortion)
	next.DepositTimestamp = now
	next.Active = !next.Principal.IsZero()
	pool := new(uint256.Int).Sub(e.state.pool, amount)

	addr := account.Hex()
	return &plan{
		event: models.Event{
			Type:    models.EventWithdrawn,
			Account: addr,
			Data: map[string]string{
				"amount":    amount.Dec(),
				"yield":     yieldPortion.Dec(),
				"principal": principalPortion.Dec(),
			},
		},
		entries: []models.LedgerEntry{
			debit(models.PoolAccount, amount, "Savings withdrawal"),
			credit(addr, amount, "Savings withdrawal"),
		},
		apply: func() {
			e.state.savings[account] = next
			e.state.pool = pool
		},
	}, nil
}

// ClaimYield pays out the accrued yield of account and leaves principal untouched.
func (e *Engine) ClaimYield(ctx context.Context, account common.Address) (*models.Event, error) {
	return e.execute(ctx, models.Command{
		Type:   models.CommandClaimYield,
		Caller: account.Hex(),
	})
}

func (e *Engine) planClaimYield(account common.Address, now time.Time) (*plan, error) {
	next := e.savingsAccount(account)
	yield := accruedYield(next, now)
	if yield.IsZero() {
		return nil, ErrNoYieldAvailable
	}
	if yield.Gt(e.state.pool) {
		return nil, ErrInsufficientPoolFunds
	}

	next.PendingYield = new(uint256.Int)
	next.DepositTimestamp = now
	pool := new(uint256.Int).Sub(e.state.pool, yield)

	addr := account.Hex()
	return &plan{
		event: models.Event{
			Type:    models.EventYieldClaimed,
			Account: addr,
			Data:    map[string]string{"amount": yield.Dec()},
		},
		entries: []models.LedgerEntry{
			debit(models.PoolAccount, yield, "Yield claim"),
			credit(addr, yield, "Yield claim"),
		},
		apply: func() {
			e.state.savings[account] = next
			e.state.pool = pool
		},
	}, nil
}

// FundPool adds external funds to the shared pool that backs yield and payouts.
func (e *Engine) FundPool(ctx context.Context, funder common.Address, amount *uint256.Int) (*models.Event, error) {
	return e.execute(ctx, models.Command{
		Type:   models.CommandFundPool,
		Caller: funder.Hex(),
		Amount: amountString(amount),
	})
}

func (e *Engine) planFundPool(funder common.Address, amount *uint256.Int) (*plan, error) {
	if amount.IsZero() {
		return nil, ErrInvalidAmount
	}
	pool, overflow := new(uint256.Int).AddOverflow(e.state.pool, amount)
	if overflow {
		return nil, ErrInvalidAmount
	}

	addr := funder.Hex()
	return &plan{
		event: models.Event{
			Type:    models.EventPoolFunded,
			Account: addr,
			Data:    map[string]string{"amount": amount.Dec()},
		},
		entries: []models.LedgerEntry{
			debit(addr, amount, "Pool funding"),
			credit(models.PoolAccount, amount, "Pool funding"),
		},
		apply: func() { e.state.pool = pool },
	}, nil
}

// EmergencyWithdraw drains the whole pool to the admin.
func (e *Engine) EmergencyWithdraw(ctx context.Context, caller common.Address) (*models.Event, error) {
	return e.execute(ctx, models.Command{
		Type:   models.CommandEmergencyWithdraw,
		Caller: caller.Hex(),
	})
}

func (e *Engine) planEmergencyWithdraw(caller common.Address) (*plan, error) {
	if !e.isAdmin(caller) {
		return nil, ErrUnauthorized
	}
	if e.state.pool.IsZero() {
		return nil, ErrInsufficientPoolFunds
	}

	amount := e.state.pool.Clone()
	addr := caller.Hex()
	return &plan{
		event: models.Event{
			Type:    models.EventEmergencyWithdrawal,
			Account: addr,
			Data:    map[string]string{"amount": amount.Dec()},
		},
		entries: []models.LedgerEntry{
			debit(models.PoolAccount, amount, "Emergency withdrawal"),
			credit(addr, amount, "Emergency withdrawal"),
		},
		apply: func() { e.state.pool = new(uint256.Int) },
	}, nil
}

// GetBalance returns principal, accrued yield and their sum for account at the current time.
func (e *Engine) GetBalance(ctx context.Context, account common.Address) (*models.Balance, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	acct := e.savingsAccount(account)
	yield := accruedYield(acct, e.now().UTC())
	total, overflow := new(uint256.Int).AddOverflow(acct.Principal, yield)
	if overflow {
		total.SetAllOne()
	}
	return &models.Balance{
		Principal:    acct.Principal,
		AccruedYield: yield,
		Total:        total,
	}, nil
}

// SavingsAccount returns a copy of the stored savings record of account.
func (e *Engine) SavingsAccount(ctx context.Context, account common.Address) (*models.SavingsAccount, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.savingsAccount(account), nil
}
