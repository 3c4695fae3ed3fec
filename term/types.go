package term

import "math"

// Variable is a named symbol used as the dimension of a DBM zone and as the
// free variable of monomial/exponential atomic terms.
type Variable string

const (
	// Ground is the reserved Variable name denoting the zero time
	// reference (spec.md §3: "T*").
	Ground Variable = "T*"

	// Age is the reserved Variable name denoting elapsed time for
	// transient analysis (spec.md §3: "AGE").
	Age Variable = "AGE"
)

// IsReserved reports whether v is one of the reserved Variable names.
func (v Variable) IsReserved() bool { return v == Ground || v == Age }

// NewVariable constructs a Variable, rejecting the empty name.
func NewVariable(name string) (Variable, error) {
	if name == "" {
		return "", ErrEmptyVariableName
	}

	return Variable(name), nil
}

// Monomial is the atomic term v^α, α a non-negative integer exponent.
// Monomial{} (zero value) with Exponent 0 evaluates to 1 for any v and is
// dropped during exmonomial normalization (spec.md §3).
type Monomial struct {
	V        Variable
	Exponent int
}

// NewMonomial constructs a Monomial, rejecting a negative exponent.
func NewMonomial(v Variable, exponent int) (Monomial, error) {
	if exponent < 0 {
		return Monomial{}, ErrNegativeExponent
	}

	return Monomial{V: v, Exponent: exponent}, nil
}

// Evaluate returns x^α for the given value of v (x must already correspond
// to m.V; the caller supplies the bound value).
func (m Monomial) Evaluate(x float64) float64 {
	if m.Exponent == 0 {
		return 1
	}
	result := 1.0
	for i := 0; i < m.Exponent; i++ {
		result *= x
	}

	return result
}

// Exponential is the atomic term e^(−λ·v), λ a real rate. Exponential{} with
// Rate 0 evaluates to 1 for any v and is dropped during exmonomial
// normalization (spec.md §3).
type Exponential struct {
	V    Variable
	Rate float64
}

// NewExponential constructs an Exponential term.
func NewExponential(v Variable, rate float64) Exponential {
	return Exponential{V: v, Rate: rate}
}

// Evaluate returns e^(−λ·x) for the given value of v.
func (e Exponential) Evaluate(x float64) float64 {
	if e.Rate == 0 {
		return 1
	}

	return math.Exp(-e.Rate * x)
}
