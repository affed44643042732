package units

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEther(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		v, err := ParseEther("0.001")
		require.NoError(t, err)
		assert.Equal(t, "1000000000000000", v.Dec())

		v, err = ParseEther("16.8")
		require.NoError(t, err)
		assert.Equal(t, "16800000000000000000", v.Dec())
	})

	t.Run("Negative", func(t *testing.T) {
		_, err := ParseEther("-1")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("Too Many Decimals", func(t *testing.T) {
		_, err := ParseEther("0.0000000000000000001")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := ParseEther("ten")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestParseWei(t *testing.T) {
	v, err := ParseWei("1000")
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(1000), v)

	_, err = ParseWei("1.5")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestFormatEther(t *testing.T) {
	assert.Equal(t, "0.05", FormatEther(MustEther("0.05")))
	assert.Equal(t, "25", FormatEther(MustEther("25")))
	assert.Equal(t, "0", FormatEther(nil))
}
