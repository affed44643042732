package ledger

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	t.Run("Kind Of Wrapped Error", func(t *testing.T) {
		err := fmt.Errorf("business 7: %w", ErrBusinessNotFound)
		assert.Equal(t, "BusinessNotFound", Kind(err))
	})

	t.Run("Kind Of Foreign Error", func(t *testing.T) {
		assert.Equal(t, "", Kind(errors.New("boom")))
		assert.Equal(t, "", Kind(nil))
	})

	t.Run("Authorization", func(t *testing.T) {
		assert.True(t, IsAuthorization(ErrUnauthorized))
		assert.True(t, IsAuthorization(fmt.Errorf("x: %w", ErrNotBusinessOwner)))
		assert.False(t, IsValidation(ErrUnauthorized))
	})

	t.Run("Validation", func(t *testing.T) {
		assert.True(t, IsValidation(fmt.Errorf("x: %w", ErrExceedsMaximumInvestmentLimit)))
		assert.True(t, IsValidation(ErrInsufficientBalance))
		assert.False(t, IsValidation(ErrInsufficientPoolFunds))
		assert.False(t, IsValidation(ErrBusinessNotFound))
		assert.False(t, IsValidation(ErrPaymentFailed))
	})
}
