package expoly

import "errors"

// Sentinel errors for the expoly package.
var (
	// ErrVariableNotBound indicates Evaluate was called without a full
	// binding for the polynomial's free variables.
	ErrVariableNotBound = errors.New("expoly: variable not bound in evaluation context")

	// ErrUnparseable indicates Parse could not lex/parse the input string
	// against the grammar of spec.md §6 item 5.
	ErrUnparseable = errors.New("expoly: malformed expolynomial text")

	// ErrEmptyLimitSet indicates Limit was called with no variables to
	// push to infinity.
	ErrEmptyLimitSet = errors.New("expoly: limit requires at least one variable")
)
