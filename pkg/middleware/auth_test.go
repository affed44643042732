package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func callerEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, err := CallerFromContext(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(caller.Hex()))
	})
}

func TestAuthenticator(t *testing.T) {
	alice := common.HexToAddress("0xc1")
	h := NewAuthenticator(testSecret)(callerEcho())

	t.Run("Success", func(t *testing.T) {
		token, err := IssueToken(alice, testSecret, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/savings/deposits", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, alice.Hex(), rr.Body.String())
	})

	t.Run("Missing Header On Mutation", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/savings/deposits", nil)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Anonymous Read", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/stats", nil)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		token, err := IssueToken(alice, []byte("other"), time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/savings/deposits", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Expired", func(t *testing.T) {
		token, err := IssueToken(alice, testSecret, -time.Minute)
		require.NoError(t, err)

		_, err = ParseCaller(token, testSecret)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("Subject Not An Address", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString(testSecret)
		require.NoError(t, err)

		_, err = ParseCaller(token, testSecret)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not an address")
	})

	t.Run("No Expiry", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: alice.Hex()}).SignedString(testSecret)
		require.NoError(t, err)

		_, err = ParseCaller(token, testSecret)
		assert.Error(t, err)
	})
}
