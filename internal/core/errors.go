package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Provider errors
	ErrProviderFailed  = &Error{Code: "PROVIDER_FAILED", Message: "provider fetch failed"}
	ErrProviderTimeout = &Error{Code: "PROVIDER_TIMEOUT", Message: "provider timed out"}
	ErrNoCredential    = &Error{Code: "NO_CREDENTIAL", Message: "provider credential missing"}

	// Aggregate errors
	ErrNoExchangeRate       = &Error{Code: "NO_EXCHANGE_RATE", Message: "no exchange rate available"}
	ErrBenchmarkUnavailable = &Error{Code: "BENCHMARK_UNAVAILABLE", Message: "international benchmark unavailable"}
	ErrAllMarketsFailed     = &Error{Code: "ALL_MARKETS_FAILED", Message: "all markets unavailable"}
	ErrPremiumUnavailable   = &Error{Code: "PREMIUM_UNAVAILABLE", Message: "premium undefined for given inputs"}

	// Data-quality errors
	ErrUnconvertible   = &Error{Code: "UNCONVERTIBLE", Message: "quote has no usable price shape"}
	ErrUnknownCurrency = &Error{Code: "UNKNOWN_CURRENCY", Message: "currency not in rate table"}

	// Series errors
	ErrEmptySeries      = &Error{Code: "EMPTY_SERIES", Message: "historical series has no points"}
	ErrDuplicateDate    = &Error{Code: "DUPLICATE_DATE", Message: "duplicate date in series"}
	ErrInsufficientData = &Error{Code: "INSUFFICIENT_DATA", Message: "insufficient data for analysis"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}

	// Storage errors
	ErrStorageFailed = &Error{Code: "STORAGE_FAILED", Message: "artifact storage failed"}
)
