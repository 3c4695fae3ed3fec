package reward

import (
	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/petri"
)

// Expression is a minimal arithmetic-expression interface over place token
// counts and optional elapsed time (spec.md §6 item 4). The engine only
// needs to evaluate an expression and discover the variables it reads; it
// never parses expression text itself.
type Expression interface {
	// Evaluate computes the expression's value at the given elapsed time
	// and marking.
	Evaluate(time decimal.ExactDecimal, m petri.Marking) (float64, error)

	// Variables lists the place names (and "t" for time) this expression
	// reads, for dependency analysis by callers.
	Variables() []string
}

// MarkingCondition is a predicate over a marking, used as an enumeration
// stop criterion (spec.md §6 item 1's `stopOn: MarkingCondition`) or as a
// reward indicator function.
type MarkingCondition func(m petri.Marking) bool

// AlwaysFalse is the trivial MarkingCondition that never stops enumeration
// (spec.md §6 item 1's `stopOn: ... | AlwaysFalse`).
func AlwaysFalse() MarkingCondition {
	return func(petri.Marking) bool { return false }
}

// ExpressionFunc adapts a plain function to the Expression interface for
// callers that don't need a custom Variables() implementation.
type ExpressionFunc struct {
	Eval func(time decimal.ExactDecimal, m petri.Marking) (float64, error)
	Vars []string
}

// Evaluate implements Expression.
func (f ExpressionFunc) Evaluate(time decimal.ExactDecimal, m petri.Marking) (float64, error) {
	return f.Eval(time, m)
}

// Variables implements Expression.
func (f ExpressionFunc) Variables() []string { return f.Vars }
