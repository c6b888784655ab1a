package capital

import "errors"

// Business rule violations. Operations that return one of them also return
// their receiver unchanged.
var (
	// ErrInvalidReference is returned when an operation names an unknown asset or sub-item.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrForbidden is returned for operations not allowed on cash.
	ErrForbidden = errors.New("operation not allowed")
	// ErrNotInitialized is returned when the initial capital has not been set yet.
	ErrNotInitialized = errors.New("portfolio not initialized")
	// ErrAlreadyInitialized is returned when setting the initial capital twice.
	ErrAlreadyInitialized = errors.New("portfolio already initialized")
	// ErrInvalidAmount is returned for amounts or percentages out of their range.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidName is returned for empty sub-item names.
	ErrInvalidName = errors.New("invalid name")
	// ErrInsufficientFunds is returned when an operation would make a value negative.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrMalformedImport is returned when an imported document misses required fields.
	ErrMalformedImport = errors.New("malformed document")
)
