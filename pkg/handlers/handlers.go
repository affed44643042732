package handlers

import (
	"github.com/chris/polyfunds-ledger/pkg/api"
	"github.com/chris/polyfunds-ledger/pkg/handlers/admin"
	"github.com/chris/polyfunds-ledger/pkg/handlers/businesses"
	ledgerhandlers "github.com/chris/polyfunds-ledger/pkg/handlers/ledger"
	"github.com/chris/polyfunds-ledger/pkg/handlers/savings"
	"github.com/chris/polyfunds-ledger/pkg/ledger"
	"github.com/chris/polyfunds-ledger/pkg/storage"
	"github.com/ethereum/go-ethereum/common"
)

// ApiHandler implements api.ServerInterface by composing the per-resource handlers.
type ApiHandler struct {
	*savings.SavingsHandler
	*businesses.BusinessesHandler
	*ledgerhandlers.LedgerHandler
	*admin.AdminHandler
}

// NewApiHandler wires every resource handler to the engine and the store.
func NewApiHandler(svc ledger.Service, store storage.ApiStore, adminAddr common.Address) *ApiHandler {
	return &ApiHandler{
		SavingsHandler:    savings.NewSavingsHandler(svc),
		BusinessesHandler: businesses.NewBusinessesHandler(svc),
		LedgerHandler:     ledgerhandlers.NewLedgerHandler(svc, store),
		AdminHandler:      admin.NewAdminHandler(svc, store, adminAddr),
	}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)
