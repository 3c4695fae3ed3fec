package term

import "errors"

// Sentinel errors for the term package.
var (
	// ErrNegativeExponent indicates a Monomial was constructed with a
	// negative exponent, which spec.md §3 forbids.
	ErrNegativeExponent = errors.New("term: monomial exponent must be non-negative")

	// ErrEmptyVariableName indicates a Variable was constructed with an
	// empty name.
	ErrEmptyVariableName = errors.New("term: variable name must not be empty")
)
