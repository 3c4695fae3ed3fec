package exmono

import "errors"

// Sentinel errors for the exmono package.
var (
	// ErrVariableNotBound indicates Evaluate was called without a binding
	// for one of the exmonomial's atomic-term variables.
	ErrVariableNotBound = errors.New("exmono: variable not bound in evaluation context")
)
