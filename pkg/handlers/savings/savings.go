package savings

import (
	"net/http"

	"github.com/chris/polyfunds-ledger/pkg/api"
	"github.com/chris/polyfunds-ledger/pkg/handlers/respond"
	"github.com/chris/polyfunds-ledger/pkg/ledger"
	"github.com/chris/polyfunds-ledger/pkg/mapping"
	"github.com/chris/polyfunds-ledger/pkg/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// SavingsHandler holds the dependencies for savings and pool handlers.
type SavingsHandler struct {
	Ledger ledger.SavingsLedger
}

// NewSavingsHandler creates a new SavingsHandler.
func NewSavingsHandler(l ledger.SavingsLedger) *SavingsHandler {
	return &SavingsHandler{Ledger: l}
}

type amountOp func(caller common.Address, amount *uint256.Int) (*models.Event, error)

// commitAmount decodes an AmountRequest and runs op for the caller.
func (h *SavingsHandler) commitAmount(w http.ResponseWriter, r *http.Request, op amountOp) {
	caller, ok := respond.Caller(w, r)
	if !ok {
		return
	}
	var req api.AmountRequest
	if !respond.Decode(w, r, &req) {
		return
	}
	amount, err := mapping.ToDomainAmount(req.Amount)
	if err != nil {
		respond.BadRequest(w, err)
		return
	}

	ev, err := op(caller, amount)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiEvent(ev))
}

// Deposit credits the caller's savings with the request amount.
func (h *SavingsHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.commitAmount(w, r, func(caller common.Address, amount *uint256.Int) (*models.Event, error) {
		return h.Ledger.Deposit(r.Context(), caller, amount)
	})
}

// Withdraw pays out savings. An amount of zero or no amount withdraws everything.
func (h *SavingsHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.commitAmount(w, r, func(caller common.Address, amount *uint256.Int) (*models.Event, error) {
		return h.Ledger.Withdraw(r.Context(), caller, amount)
	})
}

// FundPool adds the request amount to the shared pool.
func (h *SavingsHandler) FundPool(w http.ResponseWriter, r *http.Request) {
	h.commitAmount(w, r, func(caller common.Address, amount *uint256.Int) (*models.Event, error) {
		return h.Ledger.FundPool(r.Context(), caller, amount)
	})
}

// ClaimYield pays the caller's accrued yield.
func (h *SavingsHandler) ClaimYield(w http.ResponseWriter, r *http.Request) {
	caller, ok := respond.Caller(w, r)
	if !ok {
		return
	}
	ev, err := h.Ledger.ClaimYield(r.Context(), caller)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiEvent(ev))
}

// GetSavingsBalance returns the savings position of an address.
func (h *SavingsHandler) GetSavingsBalance(w http.ResponseWriter, r *http.Request, address string) {
	account, err := mapping.ToDomainAddress(address)
	if err != nil {
		respond.BadRequest(w, err)
		return
	}

	balance, err := h.Ledger.GetBalance(r.Context(), account)
	if err != nil {
		respond.Error(w, err)
		return
	}
	sa, err := h.Ledger.SavingsAccount(r.Context(), account)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiSavingsBalance(account, sa, balance))
}
