// Package respond writes JSON responses and maps ledger failures to HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/chris/polyfunds-ledger/pkg/api"
	"github.com/chris/polyfunds-ledger/pkg/ledger"
	"github.com/chris/polyfunds-ledger/pkg/middleware"
	"github.com/chris/polyfunds-ledger/pkg/storage"
	"github.com/ethereum/go-ethereum/common"
)

// RetryAfterSeconds is advertised when the pool cannot cover a payout.
const RetryAfterSeconds = "30"

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func problem(w http.ResponseWriter, status int, kind, message string) {
	JSON(w, status, api.Error{Error: kind, Message: message})
}

// BadRequest reports malformed input.
func BadRequest(w http.ResponseWriter, err error) {
	problem(w, http.StatusBadRequest, "BadRequest", err.Error())
}

// Decode reads a JSON body into dst, answering 400 on failure.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		BadRequest(w, fmt.Errorf("Invalid request body: %v", err))
		return false
	}
	return true
}

// Caller returns the authenticated caller, answering 401 when there is none.
func Caller(w http.ResponseWriter, r *http.Request) (common.Address, bool) {
	caller, err := middleware.CallerFromContext(r.Context())
	if err != nil {
		problem(w, http.StatusUnauthorized, "Unauthenticated", err.Error())
		return common.Address{}, false
	}
	return caller, true
}

// Error maps err to a status code and writes it.
func Error(w http.ResponseWriter, err error) {
	kind := ledger.Kind(err)
	switch {
	case ledger.IsAuthorization(err):
		problem(w, http.StatusForbidden, kind, err.Error())
	case errors.Is(err, ledger.ErrBusinessNotFound):
		problem(w, http.StatusNotFound, kind, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		problem(w, http.StatusNotFound, "NotFound", err.Error())
	case errors.Is(err, ledger.ErrInsufficientPoolFunds):
		w.Header().Set("Retry-After", RetryAfterSeconds)
		problem(w, http.StatusServiceUnavailable, kind, err.Error())
	case errors.Is(err, ledger.ErrPaymentFailed):
		problem(w, http.StatusBadGateway, kind, err.Error())
	case ledger.IsValidation(err):
		problem(w, http.StatusUnprocessableEntity, kind, err.Error())
	case errors.Is(err, storage.ErrSequenceConflict):
		problem(w, http.StatusConflict, "Conflict", err.Error())
	default:
		slog.Error("request failed", "error", err)
		problem(w, http.StatusInternalServerError, "Internal", err.Error())
	}
}
