package businesses

import (
	"net/http"

	"github.com/chris/polyfunds-ledger/pkg/api"
	"github.com/chris/polyfunds-ledger/pkg/handlers/respond"
	"github.com/chris/polyfunds-ledger/pkg/ledger"
	"github.com/chris/polyfunds-ledger/pkg/mapping"
)

// Ledger is the part of the engine the business handlers use.
type Ledger interface {
	ledger.BusinessRegistry
	ledger.InvestmentEngine
	ledger.DividendEngine
}

// BusinessesHandler holds the dependencies for business, investment and dividend handlers.
type BusinessesHandler struct {
	Ledger Ledger
}

// NewBusinessesHandler creates a new BusinessesHandler.
func NewBusinessesHandler(l Ledger) *BusinessesHandler {
	return &BusinessesHandler{Ledger: l}
}

// ListBusinesses returns every listed business in id order.
func (h *BusinessesHandler) ListBusinesses(w http.ResponseWriter, r *http.Request) {
	domainBusinesses, err := h.Ledger.ListBusinesses(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	apiBusinesses := make([]*api.Business, len(domainBusinesses))
	for i, b := range domainBusinesses {
		apiBusinesses[i] = mapping.ToApiBusiness(b)
	}
	respond.JSON(w, http.StatusOK, apiBusinesses)
}

// CreateBusiness lists a new business owned by the caller.
func (h *BusinessesHandler) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	caller, ok := respond.Caller(w, r)
	if !ok {
		return
	}
	var newBusiness api.NewBusiness
	if !respond.Decode(w, r, &newBusiness) {
		return
	}
	params, err := mapping.ToDomainBusinessParams(&newBusiness)
	if err != nil {
		respond.BadRequest(w, err)
		return
	}

	ev, err := h.Ledger.CreateBusiness(r.Context(), caller, params)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, mapping.ToApiEvent(ev))
}

// GetBusiness returns one business.
func (h *BusinessesHandler) GetBusiness(w http.ResponseWriter, r *http.Request, businessId uint64) {
	b, err := h.Ledger.GetBusinessInfo(r.Context(), businessId)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiBusiness(b))
}

// UpdateBusinessMetrics replaces revenue and margin of a business owned by the caller.
func (h *BusinessesHandler) UpdateBusinessMetrics(w http.ResponseWriter, r *http.Request, businessId uint64) {
	caller, ok := respond.Caller(w, r)
	if !ok {
		return
	}
	var metrics api.BusinessMetrics
	if !respond.Decode(w, r, &metrics) {
		return
	}
	revenue, err := mapping.ToDomainAmount(metrics.MonthlyRevenue)
	if err != nil {
		respond.BadRequest(w, err)
		return
	}

	ev, err := h.Ledger.UpdateBusinessMetrics(r.Context(), caller, businessId, revenue, metrics.ProfitMargin)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiEvent(ev))
}

// InvestInBusiness buys tokens for the caller.
func (h *BusinessesHandler) InvestInBusiness(w http.ResponseWriter, r *http.Request, businessId uint64) {
	caller, ok := respond.Caller(w, r)
	if !ok {
		return
	}
	var req api.InvestmentRequest
	if !respond.Decode(w, r, &req) {
		return
	}
	payment, err := mapping.ToDomainAmount(req.Payment)
	if err != nil {
		respond.BadRequest(w, err)
		return
	}

	ev, err := h.Ledger.InvestInBusiness(r.Context(), caller, businessId, req.TokenAmount, payment)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, mapping.ToApiEvent(ev))
}

// ListDividends returns the dividend history of a business.
func (h *BusinessesHandler) ListDividends(w http.ResponseWriter, r *http.Request, businessId uint64) {
	history, err := h.Ledger.DividendHistory(r.Context(), businessId)
	if err != nil {
		respond.Error(w, err)
		return
	}

	out := make([]*api.DividendDistribution, len(history))
	for i := range history {
		out[i] = mapping.ToApiDividendDistribution(&history[i])
	}
	respond.JSON(w, http.StatusOK, out)
}

// DistributeDividends allocates the request amount across current holders.
func (h *BusinessesHandler) DistributeDividends(w http.ResponseWriter, r *http.Request, businessId uint64) {
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

	ev, err := h.Ledger.DistributeDividends(r.Context(), caller, businessId, amount)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiEvent(ev))
}

// ClaimDividends pays the caller's claimable dividends of a business.
func (h *BusinessesHandler) ClaimDividends(w http.ResponseWriter, r *http.Request, businessId uint64) {
	caller, ok := respond.Caller(w, r)
	if !ok {
		return
	}
	ev, err := h.Ledger.ClaimDividends(r.Context(), caller, businessId)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiEvent(ev))
}

// CalculatePotentialDividend projects the yearly dividend of a holding.
func (h *BusinessesHandler) CalculatePotentialDividend(w http.ResponseWriter, r *http.Request, businessId uint64, params api.CalculatePotentialDividendParams) {
	amount, err := h.Ledger.CalculatePotentialDividend(r.Context(), businessId, params.TokenAmount)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, &api.PotentialDividend{
		BusinessId:  businessId,
		TokenAmount: params.TokenAmount,
		Amount:      amount.Dec(),
	})
}

// GetOwnerBusinesses lists the ids of businesses created by an owner.
func (h *BusinessesHandler) GetOwnerBusinesses(w http.ResponseWriter, r *http.Request, address string) {
	owner, err := mapping.ToDomainAddress(address)
	if err != nil {
		respond.BadRequest(w, err)
		return
	}
	ids, err := h.Ledger.GetOwnerBusinesses(r.Context(), owner)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, &api.OwnerBusinesses{Owner: owner.Hex(), BusinessIds: ids})
}

// GetUserInvestments lists the holdings of an investor.
func (h *BusinessesHandler) GetUserInvestments(w http.ResponseWriter, r *http.Request, address string) {
	investor, err := mapping.ToDomainAddress(address)
	if err != nil {
		respond.BadRequest(w, err)
		return
	}
	investments, err := h.Ledger.GetUserInvestments(r.Context(), investor)
	if err != nil {
		respond.Error(w, err)
		return
	}

	out := make([]*api.Investment, len(investments))
	for i, inv := range investments {
		out[i] = mapping.ToApiInvestment(inv)
	}
	respond.JSON(w, http.StatusOK, out)
}
