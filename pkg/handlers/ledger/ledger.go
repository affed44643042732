package ledger

import (
	"net/http"

	"github.com/chris/polyfunds-ledger/pkg/api"
	"github.com/chris/polyfunds-ledger/pkg/handlers/respond"
	engine "github.com/chris/polyfunds-ledger/pkg/ledger"
	"github.com/chris/polyfunds-ledger/pkg/mapping"
	"github.com/chris/polyfunds-ledger/pkg/models"
	"github.com/chris/polyfunds-ledger/pkg/storage"
)

const (
	defaultLimit = 20
	maxLimit     = 500
)

// Reader is the read-only part of the engine the ledger handlers use.
type Reader interface {
	engine.StatsReader
	engine.EventReader
}

// LedgerHandler holds the dependencies for ledger-related handlers.
type LedgerHandler struct {
	Ledger Reader
	Store  storage.ApiStore
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(l Reader, store storage.ApiStore) *LedgerHandler {
	return &LedgerHandler{Ledger: l, Store: store}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// GetPlatformStats returns the platform rollups and any invariant violations.
func (h *LedgerHandler) GetPlatformStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Ledger.PlatformStats(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiPlatformStats(stats, h.Ledger.CheckInvariants(r.Context())))
}

// ListEvents polls the event log.
func (h *LedgerHandler) ListEvents(w http.ResponseWriter, r *http.Request, params api.ListEventsParams) {
	filter := engine.EventFilter{BusinessID: params.BusinessId, Limit: defaultLimit}
	if params.AfterSeq != nil {
		filter.AfterSeq = *params.AfterSeq
	}
	if params.Limit != nil {
		filter.Limit = clampLimit(*params.Limit)
	}
	if params.Account != nil {
		account, err := mapping.ToDomainAddress(*params.Account)
		if err != nil {
			respond.BadRequest(w, err)
			return
		}
		filter.Account = &account
	}

	domainEvents, err := h.Ledger.Events(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	apiEvents := make([]*api.Event, len(domainEvents))
	for i := range domainEvents {
		apiEvents[i] = mapping.ToApiEvent(&domainEvents[i])
	}
	respond.JSON(w, http.StatusOK, apiEvents)
}

// ListLedgerEntries returns the most recent ledger entries, optionally for one account.
func (h *LedgerHandler) ListLedgerEntries(w http.ResponseWriter, r *http.Request, params api.ListLedgerEntriesParams) {
	limit := int32(defaultLimit)
	if params.Limit != nil {
		limit = int32(clampLimit(int(*params.Limit)))
	}

	var (
		domainEntries []models.LedgerEntry
		err           error
	)
	if params.Account != nil {
		account := *params.Account
		if account != models.PoolAccount {
			addr, addrErr := mapping.ToDomainAddress(account)
			if addrErr != nil {
				respond.BadRequest(w, addrErr)
				return
			}
			account = addr.Hex()
		}
		domainEntries, err = h.Store.ListLedgerEntriesByAccount(r.Context(), account, limit)
	} else {
		domainEntries, err = h.Store.ListLedgerEntries(r.Context(), limit)
	}
	if err != nil {
		respond.Error(w, err)
		return
	}

	apiEntries := make([]*api.LedgerEntry, len(domainEntries))
	for i := range domainEntries {
		apiEntries[i] = mapping.ToApiLedgerEntry(&domainEntries[i])
	}
	respond.JSON(w, http.StatusOK, apiEntries)
}

// GetWallet returns the payout wallet of an address.
func (h *LedgerHandler) GetWallet(w http.ResponseWriter, r *http.Request, address string) {
	addr, err := mapping.ToDomainAddress(address)
	if err != nil {
		respond.BadRequest(w, err)
		return
	}
	wallet, err := h.Store.GetWallet(r.Context(), addr.Hex())
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiWallet(wallet))
}
