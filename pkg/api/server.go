package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Deposit savings
	// (POST /savings/deposits)
	Deposit(w http.ResponseWriter, r *http.Request)
	// Withdraw savings
	// (POST /savings/withdrawals)
	Withdraw(w http.ResponseWriter, r *http.Request)
	// Claim accrued yield
	// (POST /savings/yield-claims)
	ClaimYield(w http.ResponseWriter, r *http.Request)
	// Savings balance of an account
	// (GET /savings/{address})
	GetSavingsBalance(w http.ResponseWriter, r *http.Request, address string)
	// Fund the shared pool
	// (POST /pool/funding)
	FundPool(w http.ResponseWriter, r *http.Request)

	// List businesses
	// (GET /businesses)
	ListBusinesses(w http.ResponseWriter, r *http.Request)
	// Create a business
	// (POST /businesses)
	CreateBusiness(w http.ResponseWriter, r *http.Request)
	// Get a business
	// (GET /businesses/{businessId})
	GetBusiness(w http.ResponseWriter, r *http.Request, businessId uint64)
	// Update revenue and margin
	// (PUT /businesses/{businessId}/metrics)
	UpdateBusinessMetrics(w http.ResponseWriter, r *http.Request, businessId uint64)
	// Buy business tokens
	// (POST /businesses/{businessId}/investments)
	InvestInBusiness(w http.ResponseWriter, r *http.Request, businessId uint64)
	// Dividend history
	// (GET /businesses/{businessId}/dividends)
	ListDividends(w http.ResponseWriter, r *http.Request, businessId uint64)
	// Distribute dividends to holders
	// (POST /businesses/{businessId}/dividends)
	DistributeDividends(w http.ResponseWriter, r *http.Request, businessId uint64)
	// Claim dividends
	// (POST /businesses/{businessId}/dividend-claims)
	ClaimDividends(w http.ResponseWriter, r *http.Request, businessId uint64)
	// Project the monthly dividend of a holding
	// (GET /businesses/{businessId}/potential-dividend)
	CalculatePotentialDividend(w http.ResponseWriter, r *http.Request, businessId uint64, params CalculatePotentialDividendParams)
	// Businesses created by an owner
	// (GET /owners/{address}/businesses)
	GetOwnerBusinesses(w http.ResponseWriter, r *http.Request, address string)
	// Holdings of an investor
	// (GET /investors/{address}/investments)
	GetUserInvestments(w http.ResponseWriter, r *http.Request, address string)

	// Platform statistics
	// (GET /stats)
	GetPlatformStats(w http.ResponseWriter, r *http.Request)
	// Poll the event log
	// (GET /events)
	ListEvents(w http.ResponseWriter, r *http.Request, params ListEventsParams)
	// Ledger entries
	// (GET /ledger)
	ListLedgerEntries(w http.ResponseWriter, r *http.Request, params ListLedgerEntriesParams)
	// Payout wallet
	// (GET /wallets/{address})
	GetWallet(w http.ResponseWriter, r *http.Request, address string)

	// Verify or unverify a business
	// (POST /admin/businesses/{businessId}/verification)
	VerifyBusiness(w http.ResponseWriter, r *http.Request, businessId uint64)
	// Deactivate a business
	// (POST /admin/businesses/{businessId}/deactivation)
	DeactivateBusiness(w http.ResponseWriter, r *http.Request, businessId uint64)
	// Replace the fee recipient
	// (PUT /admin/fee-recipient)
	SetFeeRecipient(w http.ResponseWriter, r *http.Request)
	// Drain the pool to the admin
	// (POST /admin/pool/emergency-withdrawal)
	EmergencyWithdraw(w http.ResponseWriter, r *http.Request)
	// Freeze or unfreeze a payout wallet
	// (PUT /admin/wallets/{address}/frozen)
	SetWalletFrozen(w http.ResponseWriter, r *http.Request, address string)
}

// MiddlewareFunc wraps a single operation handler.
type MiddlewareFunc func(http.Handler) http.Handler

// ServerInterfaceWrapper converts path and query parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, fn func(w http.ResponseWriter, r *http.Request)) {
	var handler http.Handler = http.HandlerFunc(fn)
	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}
	handler.ServeHTTP(w, r)
}

func (siw *ServerInterfaceWrapper) pathAddress(w http.ResponseWriter, r *http.Request) (string, bool) {
	var address string
	err := runtime.BindStyledParameterWithOptions("simple", "address", chi.URLParam(r, "address"), &address, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "address", Err: err})
		return "", false
	}
	return address, true
}

func (siw *ServerInterfaceWrapper) pathBusinessID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	var businessId uint64
	err := runtime.BindStyledParameterWithOptions("simple", "businessId", chi.URLParam(r, "businessId"), &businessId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "businessId", Err: err})
		return 0, false
	}
	return businessId, true
}

// withAddress adapts an operation taking an address path parameter.
func (siw *ServerInterfaceWrapper) withAddress(op func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address, ok := siw.pathAddress(w, r)
		if !ok {
			return
		}
		siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { op(w, r, address) })
	}
}

// withBusinessID adapts an operation taking a businessId path parameter.
func (siw *ServerInterfaceWrapper) withBusinessID(op func(http.ResponseWriter, *http.Request, uint64)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessId, ok := siw.pathBusinessID(w, r)
		if !ok {
			return
		}
		siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) { op(w, r, businessId) })
	}
}

func (siw *ServerInterfaceWrapper) plain(op func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siw.serve(w, r, op)
	}
}

// CalculatePotentialDividend operation middleware
func (siw *ServerInterfaceWrapper) CalculatePotentialDividend(w http.ResponseWriter, r *http.Request) {
	businessId, ok := siw.pathBusinessID(w, r)
	if !ok {
		return
	}

	var params CalculatePotentialDividendParams

	if paramValue := r.URL.Query().Get("token_amount"); paramValue == "" {
		siw.ErrorHandlerFunc(w, r, &RequiredParamError{ParamName: "token_amount"})
		return
	}
	if err := runtime.BindQueryParameter("form", true, true, "token_amount", r.URL.Query(), &params.TokenAmount); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "token_amount", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.CalculatePotentialDividend(w, r, businessId, params)
	})
}

// ListEvents operation middleware
func (siw *ServerInterfaceWrapper) ListEvents(w http.ResponseWriter, r *http.Request) {
	var params ListEventsParams

	if err := runtime.BindQueryParameter("form", true, false, "business_id", r.URL.Query(), &params.BusinessId); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "business_id", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "account", r.URL.Query(), &params.Account); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "account", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "after_seq", r.URL.Query(), &params.AfterSeq); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "after_seq", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &params.Limit); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListEvents(w, r, params)
	})
}

// ListLedgerEntries operation middleware
func (siw *ServerInterfaceWrapper) ListLedgerEntries(w http.ResponseWriter, r *http.Request) {
	var params ListLedgerEntriesParams

	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &params.Limit); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "account", r.URL.Query(), &params.Account); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "account", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListLedgerEntries(w, r, params)
	})
}

// RequiredParamError is returned when a required parameter is missing.
type RequiredParamError struct {
	ParamName string
}

func (e *RequiredParamError) Error() string {
	return fmt.Sprintf("Query argument %s is required, but not found", e.ParamName)
}

// InvalidParamFormatError is returned when a parameter cannot be bound.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// Handler creates http.Handler with routing matching the HTTP contract.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

// HandlerFromMux creates http.Handler with routing matching the HTTP contract, based on the provided mux.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{
		BaseRouter: r,
	})
}

// HandlerWithOptions creates http.Handler with additional options.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/savings/deposits", wrapper.plain(si.Deposit))
		r.Post(options.BaseURL+"/savings/withdrawals", wrapper.plain(si.Withdraw))
		r.Post(options.BaseURL+"/savings/yield-claims", wrapper.plain(si.ClaimYield))
		r.Get(options.BaseURL+"/savings/{address}", wrapper.withAddress(si.GetSavingsBalance))
		r.Post(options.BaseURL+"/pool/funding", wrapper.plain(si.FundPool))
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/businesses", wrapper.plain(si.ListBusinesses))
		r.Post(options.BaseURL+"/businesses", wrapper.plain(si.CreateBusiness))
		r.Get(options.BaseURL+"/businesses/{businessId}", wrapper.withBusinessID(si.GetBusiness))
		r.Put(options.BaseURL+"/businesses/{businessId}/metrics", wrapper.withBusinessID(si.UpdateBusinessMetrics))
		r.Post(options.BaseURL+"/businesses/{businessId}/investments", wrapper.withBusinessID(si.InvestInBusiness))
		r.Get(options.BaseURL+"/businesses/{businessId}/dividends", wrapper.withBusinessID(si.ListDividends))
		r.Post(options.BaseURL+"/businesses/{businessId}/dividends", wrapper.withBusinessID(si.DistributeDividends))
		r.Post(options.BaseURL+"/businesses/{businessId}/dividend-claims", wrapper.withBusinessID(si.ClaimDividends))
		r.Get(options.BaseURL+"/businesses/{businessId}/potential-dividend", wrapper.CalculatePotentialDividend)
		r.Get(options.BaseURL+"/owners/{address}/businesses", wrapper.withAddress(si.GetOwnerBusinesses))
		r.Get(options.BaseURL+"/investors/{address}/investments", wrapper.withAddress(si.GetUserInvestments))
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/stats", wrapper.plain(si.GetPlatformStats))
		r.Get(options.BaseURL+"/events", wrapper.ListEvents)
		r.Get(options.BaseURL+"/ledger", wrapper.ListLedgerEntries)
		r.Get(options.BaseURL+"/wallets/{address}", wrapper.withAddress(si.GetWallet))
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/admin/businesses/{businessId}/verification", wrapper.withBusinessID(si.VerifyBusiness))
		r.Post(options.BaseURL+"/admin/businesses/{businessId}/deactivation", wrapper.withBusinessID(si.DeactivateBusiness))
		r.Put(options.BaseURL+"/admin/fee-recipient", wrapper.plain(si.SetFeeRecipient))
		r.Post(options.BaseURL+"/admin/pool/emergency-withdrawal", wrapper.plain(si.EmergencyWithdraw))
		r.Put(options.BaseURL+"/admin/wallets/{address}/frozen", wrapper.withAddress(si.SetWalletFrozen))
	})

	return r
}
