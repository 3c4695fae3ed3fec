package decimal

import "errors"

// Sentinel errors for the decimal package operations.
var (
	// ErrIndeterminate is returned when an operation produces a classically
	// indeterminate form (+∞ + −∞, 0·±∞) and the active IndeterminatePolicy
	// is PolicyFail (the default).
	ErrIndeterminate = errors.New("decimal: indeterminate form")

	// ErrDivideByZero is returned by Div when the divisor is an exact zero.
	ErrDivideByZero = errors.New("decimal: division by zero")

	// ErrNegativeExponent is returned by Pow when the exponent is negative.
	ErrNegativeExponent = errors.New("decimal: negative exponent")

	// ErrExponentTooLarge is returned by Pow when the exponent exceeds the
	// documented safety bound of 999_999_999 (spec §4.1).
	ErrExponentTooLarge = errors.New("decimal: exponent too large")

	// ErrInfiniteMantissa is returned when code attempts to read the decimal
	// mantissa of an infinite value.
	ErrInfiniteMantissa = errors.New("decimal: value is infinite, no mantissa")
)
