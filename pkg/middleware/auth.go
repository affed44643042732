package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt/v5"
)

type callerContextKey struct{}

// ErrNoCaller is returned when a request carries no authenticated caller.
var ErrNoCaller = errors.New("no authenticated caller")

// WithCaller returns a copy of ctx carrying the caller address.
func WithCaller(ctx context.Context, caller common.Address) context.Context {
	return context.WithValue(ctx, callerContextKey{}, caller)
}

// CallerFromContext returns the authenticated caller of a request.
func CallerFromContext(ctx context.Context) (common.Address, error) {
	caller, ok := ctx.Value(callerContextKey{}).(common.Address)
	if !ok {
		return common.Address{}, ErrNoCaller
	}
	return caller, nil
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthenticated", "message": message})
}

// ParseCaller validates an HS256 token and returns its subject as an address.
func ParseCaller(tokenString string, secret []byte) (common.Address, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid subject: %w", err)
	}
	if !common.IsHexAddress(sub) {
		return common.Address{}, fmt.Errorf("subject %q is not an address", sub)
	}
	return common.HexToAddress(sub), nil
}

// IssueToken signs an HS256 token for caller. Used by local tooling and tests.
func IssueToken(caller common.Address, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   caller.Hex(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// NewAuthenticator creates a middleware that requires a bearer JWT whose
// subject is the caller's hex address. Safe methods pass through
// unauthenticated; a valid token on them still sets the caller.
func NewAuthenticator(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			safe := r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				if safe {
					next.ServeHTTP(w, r)
					return
				}
				unauthorized(w, "Authorization header required")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				unauthorized(w, "Invalid Authorization header format")
				return
			}

			caller, err := ParseCaller(tokenString, secret)
			if err != nil {
				unauthorized(w, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}
