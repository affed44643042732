package admin

import (
	"fmt"
	"net/http"

	"github.com/chris/polyfunds-ledger/pkg/api"
	"github.com/chris/polyfunds-ledger/pkg/handlers/respond"
	"github.com/chris/polyfunds-ledger/pkg/ledger"
	"github.com/chris/polyfunds-ledger/pkg/mapping"
	"github.com/chris/polyfunds-ledger/pkg/storage"
	"github.com/ethereum/go-ethereum/common"
)

// Ledger is the part of the engine the admin handlers use.
type Ledger interface {
	ledger.SavingsLedger
	ledger.BusinessRegistry
	ledger.InvestmentEngine
}

// AdminHandler holds the dependencies for platform administration handlers.
// Authorization of ledger operations is enforced by the engine; wallet
// freezing is outside the ledger and is checked here against Admin.
type AdminHandler struct {
	Ledger  Ledger
	Wallets storage.WalletStore
	Admin   common.Address
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(l Ledger, wallets storage.WalletStore, admin common.Address) *AdminHandler {
	return &AdminHandler{Ledger: l, Wallets: wallets, Admin: admin}
}

// VerifyBusiness sets the verified flag of a business.
func (h *AdminHandler) VerifyBusiness(w http.ResponseWriter, r *http.Request, businessId uint64) {
	caller, ok := respond.Caller(w, r)
	if !ok {
		return
	}
	req := api.VerificationRequest{Verified: true}
	if r.ContentLength != 0 && !respond.Decode(w, r, &req) {
		return
	}

	ev, err := h.Ledger.VerifyBusiness(r.Context(), caller, businessId, req.Verified)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiEvent(ev))
}

// DeactivateBusiness stops new investments in a business.
func (h *AdminHandler) DeactivateBusiness(w http.ResponseWriter, r *http.Request, businessId uint64) {
	caller, ok := respond.Caller(w, r)
	if !ok {
		return
	}
	ev, err := h.Ledger.DeactivateBusiness(r.Context(), caller, businessId)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiEvent(ev))
}

// SetFeeRecipient replaces the platform fee recipient.
func (h *AdminHandler) SetFeeRecipient(w http.ResponseWriter, r *http.Request) {
	caller, ok := respond.Caller(w, r)
	if !ok {
		return
	}
	var req api.FeeRecipientRequest
	if !respond.Decode(w, r, &req) {
		return
	}
	recipient, err := mapping.ToDomainAddress(req.Recipient)
	if err != nil {
		respond.BadRequest(w, err)
		return
	}

	ev, err := h.Ledger.SetFeeRecipient(r.Context(), caller, recipient)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiEvent(ev))
}

// EmergencyWithdraw drains the pool to the admin.
func (h *AdminHandler) EmergencyWithdraw(w http.ResponseWriter, r *http.Request) {
	caller, ok := respond.Caller(w, r)
	if !ok {
		return
	}
	ev, err := h.Ledger.EmergencyWithdraw(r.Context(), caller)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiEvent(ev))
}

// SetWalletFrozen blocks or unblocks payouts to an address.
func (h *AdminHandler) SetWalletFrozen(w http.ResponseWriter, r *http.Request, address string) {
	caller, ok := respond.Caller(w, r)
	if !ok {
		return
	}
	if caller != h.Admin {
		respond.Error(w, fmt.Errorf("freeze wallet: %w", ledger.ErrUnauthorized))
		return
	}
	addr, err := mapping.ToDomainAddress(address)
	if err != nil {
		respond.BadRequest(w, err)
		return
	}
	var req api.FrozenRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if err := h.Wallets.SetWalletFrozen(r.Context(), addr.Hex(), req.Frozen); err != nil {
		respond.Error(w, err)
		return
	}
	wallet, err := h.Wallets.GetWallet(r.Context(), addr.Hex())
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiWallet(wallet))
}
