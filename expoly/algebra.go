package expoly

import (
	"errors"

	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/exmono"
	"github.com/katalvlaran/stpn/term"
)

// Add returns a+b (commutative, associative — spec.md §8 property 4).
func Add(a, b Expolynomial) Expolynomial {
	all := make([]exmono.Exmonomial, 0, len(a.Terms)+len(b.Terms))
	all = append(all, a.Terms...)
	all = append(all, b.Terms...)

	return mergeLikeTerms(all)
}

// Sub returns a−b.
func Sub(a, b Expolynomial) Expolynomial {
	return Add(a, Scale(b, decimal.NewFromInt(-1)))
}

// Scale returns c*a for a scalar ExactDecimal c.
func Scale(a Expolynomial, c decimal.ExactDecimal) Expolynomial {
	out := make([]exmono.Exmonomial, 0, len(a.Terms))
	for _, t := range a.Terms {
		v, err := decimal.Mul(t.Const, c)
		if err != nil {
			continue
		}
		out = append(out, t.WithConst(v))
	}

	return mergeLikeTerms(out)
}

// DivScalar returns a/c for a nonzero scalar ExactDecimal c.
func DivScalar(a Expolynomial, c decimal.ExactDecimal) (Expolynomial, error) {
	out := make([]exmono.Exmonomial, 0, len(a.Terms))
	for _, t := range a.Terms {
		v, err := decimal.Div(t.Const, c)
		if err != nil {
			return Expolynomial{}, err
		}
		out = append(out, t.WithConst(v))
	}

	return mergeLikeTerms(out), nil
}

// Multiply returns a*b: distributes every term of a against every term of b
// (spec.md §8 property 4, ring distributivity/associativity).
func Multiply(a, b Expolynomial) (Expolynomial, error) {
	out := make([]exmono.Exmonomial, 0, len(a.Terms)*len(b.Terms))
	for _, ta := range a.Terms {
		for _, tb := range b.Terms {
			m, err := exmono.Multiply(ta, tb)
			if err != nil {
				return Expolynomial{}, err
			}
			out = append(out, m)
		}
	}

	return mergeLikeTerms(out), nil
}

// Evaluate computes e's value at a full binding of its free variables.
// Returns ErrVariableNotBound if any required variable is missing.
func (e Expolynomial) Evaluate(bindings map[term.Variable]float64) (float64, error) {
	total := 0.0
	for _, t := range e.Terms {
		v, err := t.Evaluate(bindings)
		if errors.Is(err, exmono.ErrVariableNotBound) {
			return 0, ErrVariableNotBound
		}
		if err != nil {
			return 0, err
		}
		total += v
	}

	return total, nil
}
