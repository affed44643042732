package savings_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chris/polyfunds-ledger/pkg/api"
	"github.com/chris/polyfunds-ledger/pkg/handlers/savings"
	"github.com/chris/polyfunds-ledger/pkg/ledger"
	"github.com/chris/polyfunds-ledger/pkg/ledger/mocks"
	"github.com/chris/polyfunds-ledger/pkg/middleware"
	"github.com/chris/polyfunds-ledger/pkg/models"
	"github.com/chris/polyfunds-ledger/pkg/units"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var alice = common.HexToAddress("0xc1")

func authed(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	return req.WithContext(middleware.WithCaller(req.Context(), alice))
}

func TestDeposit(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockLedger := new(mocks.Service)
		ev := &models.Event{ID: "evt-1", Seq: 1, Type: models.EventDeposited, Account: alice.Hex(), Timestamp: time.Now()}
		mockLedger.On("Deposit", mock.Anything, alice, units.MustEther("1")).Return(ev, nil)

		h := savings.NewSavingsHandler(mockLedger)
		rr := httptest.NewRecorder()
		h.Deposit(rr, authed(http.MethodPost, "/savings/deposits", `{"amount":"1000000000000000000"}`))

		assert.Equal(t, http.StatusOK, rr.Code)
		var returned api.Event
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &returned))
		assert.Equal(t, "Deposited", returned.Type)
		mockLedger.AssertExpectations(t)
	})

	t.Run("Invalid Amount", func(t *testing.T) {
		mockLedger := new(mocks.Service)
		mockLedger.On("Deposit", mock.Anything, alice, new(uint256.Int)).Return(nil, ledger.ErrInvalidAmount)

		h := savings.NewSavingsHandler(mockLedger)
		rr := httptest.NewRecorder()
		h.Deposit(rr, authed(http.MethodPost, "/savings/deposits", `{"amount":"0"}`))

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(t, rr.Body.String(), "InvalidAmount")
	})

	t.Run("Malformed Amount", func(t *testing.T) {
		mockLedger := new(mocks.Service)
		h := savings.NewSavingsHandler(mockLedger)
		rr := httptest.NewRecorder()
		h.Deposit(rr, authed(http.MethodPost, "/savings/deposits", `{"amount":"1.5"}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockLedger.AssertNotCalled(t, "Deposit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		h := savings.NewSavingsHandler(new(mocks.Service))
		rr := httptest.NewRecorder()
		h.Deposit(rr, httptest.NewRequest(http.MethodPost, "/savings/deposits", strings.NewReader(`{"amount":"1"}`)))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestWithdrawPoolShortfall(t *testing.T) {
	mockLedger := new(mocks.Service)
	mockLedger.On("Withdraw", mock.Anything, alice, new(uint256.Int)).Return(nil, ledger.ErrInsufficientPoolFunds)

	h := savings.NewSavingsHandler(mockLedger)
	rr := httptest.NewRecorder()
	h.Withdraw(rr, authed(http.MethodPost, "/savings/withdrawals", `{}`))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
	mockLedger.AssertExpectations(t)
}

func TestClaimYield(t *testing.T) {
	mockLedger := new(mocks.Service)
	mockLedger.On("ClaimYield", mock.Anything, alice).Return(nil, ledger.ErrNoYieldAvailable)

	h := savings.NewSavingsHandler(mockLedger)
	rr := httptest.NewRecorder()
	h.ClaimYield(rr, authed(http.MethodPost, "/savings/yield-claims", ""))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "NoYieldAvailable")
}

func TestGetSavingsBalance(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockLedger := new(mocks.Service)
		deposited := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		mockLedger.On("GetBalance", mock.Anything, alice).Return(&models.Balance{
			Principal:    units.MustEther("1"),
			AccruedYield: units.MustEther("0.05"),
			Total:        units.MustEther("1.05"),
		}, nil)
		mockLedger.On("SavingsAccount", mock.Anything, alice).Return(&models.SavingsAccount{
			Account:          alice,
			Principal:        units.MustEther("1"),
			PendingYield:     new(uint256.Int),
			DepositTimestamp: deposited,
			Active:           true,
		}, nil)

		h := savings.NewSavingsHandler(mockLedger)
		rr := httptest.NewRecorder()
		h.GetSavingsBalance(rr, httptest.NewRequest(http.MethodGet, "/savings/"+alice.Hex(), nil), alice.Hex())

		assert.Equal(t, http.StatusOK, rr.Code)
		var returned api.SavingsBalance
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &returned))
		assert.Equal(t, "1050000000000000000", returned.Total)
		assert.True(t, returned.Active)
		require.NotNil(t, returned.DepositTimestamp)
		assert.True(t, deposited.Equal(*returned.DepositTimestamp))
	})

	t.Run("Bad Address", func(t *testing.T) {
		h := savings.NewSavingsHandler(new(mocks.Service))
		rr := httptest.NewRecorder()
		h.GetSavingsBalance(rr, httptest.NewRequest(http.MethodGet, "/savings/nope", nil), "nope")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
