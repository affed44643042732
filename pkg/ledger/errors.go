package ledger

import "errors"

// Savings failures.
var (
	ErrInvalidAmount         = errors.New("InvalidAmount")
	ErrInsufficientBalance   = errors.New("InsufficientBalance")
	ErrInsufficientPoolFunds = errors.New("InsufficientPoolFunds")
	ErrNoYieldAvailable      = errors.New("NoYieldAvailable")
)

// Registry failures.
var (
	ErrBusinessNameRequired = errors.New("BusinessNameRequired")
	ErrDescriptionRequired  = errors.New("DescriptionRequired")
	ErrCategoryRequired     = errors.New("CategoryRequired")
	ErrInvalidTokenSupply   = errors.New("InvalidTokenSupply")
	ErrTokenPriceTooLow     = errors.New("TokenPriceTooLow")
	ErrInvalidProfitMargin  = errors.New("InvalidProfitMargin")
	ErrBusinessNotFound     = errors.New("BusinessNotFound")
	ErrNotBusinessOwner     = errors.New("NotBusinessOwner")
)

// ErrUnauthorized is returned when a non-admin calls an admin operation.
var ErrUnauthorized = errors.New("Unauthorized")

// Investment failures.
var (
	ErrBusinessNotVerified           = errors.New("BusinessNotVerified")
	ErrBusinessNotActive             = errors.New("BusinessNotActive")
	ErrIncorrectPaymentAmount        = errors.New("IncorrectPaymentAmount")
	ErrInsufficientTokens            = errors.New("InsufficientTokens")
	ErrExceedsMaximumInvestmentLimit = errors.New("ExceedsMaximumInvestmentLimit")
	ErrInvalidAddress                = errors.New("InvalidAddress")
)

// Dividend failures.
var (
	ErrMustSendEthForDividends = errors.New("MustSendEthForDividends")
	ErrNoDividendsToClaim      = errors.New("NoDividendsToClaim")
)

// ErrPaymentFailed is returned when the payout rail rejects a credit. The ledger is left unchanged.
var ErrPaymentFailed = errors.New("PaymentFailed")

var validationErrors = []error{
	ErrInvalidAmount,
	ErrInsufficientBalance,
	ErrNoYieldAvailable,
	ErrBusinessNameRequired,
	ErrDescriptionRequired,
	ErrCategoryRequired,
	ErrInvalidTokenSupply,
	ErrTokenPriceTooLow,
	ErrInvalidProfitMargin,
	ErrBusinessNotVerified,
	ErrBusinessNotActive,
	ErrIncorrectPaymentAmount,
	ErrInsufficientTokens,
	ErrExceedsMaximumInvestmentLimit,
	ErrInvalidAddress,
	ErrMustSendEthForDividends,
	ErrNoDividendsToClaim,
}

// IsValidation reports whether err is a non-retryable input rejection.
// BusinessNotFound and InsufficientPoolFunds are reported separately.
func IsValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsAuthorization reports whether err is a caller permission failure.
func IsAuthorization(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotBusinessOwner)
}

var allErrors = append([]error{
	ErrInsufficientPoolFunds,
	ErrBusinessNotFound,
	ErrNotBusinessOwner,
	ErrUnauthorized,
	ErrPaymentFailed,
}, validationErrors...)

// Kind returns the name of the ledger failure wrapped by err, or "" if err is
// not a ledger failure.
func Kind(err error) string {
	for _, target := range allErrors {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return ""
}
