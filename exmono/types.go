package exmono

import (
	"sort"

	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/term"
)

// Exmonomial is a constant multiplier times a normalized bag of atomic
// terms: at most one Monomial and one Exponential per Variable (spec.md
// §3). Construct via New, which normalizes and drops zero-exponent
// monomials and zero-rate exponentials.
type Exmonomial struct {
	Const        decimal.ExactDecimal
	monomials    map[term.Variable]int
	exponentials map[term.Variable]float64
}

// New builds a normalized Exmonomial from a constant, a set of monomial
// exponents, and a set of exponential rates. Exponent-0 / rate-0 entries
// are dropped, matching spec.md §3's normalized-form rule.
func New(c decimal.ExactDecimal, monos map[term.Variable]int, exps map[term.Variable]float64) Exmonomial {
	e := Exmonomial{
		Const:        c,
		monomials:    make(map[term.Variable]int, len(monos)),
		exponentials: make(map[term.Variable]float64, len(exps)),
	}
	for v, a := range monos {
		if a != 0 {
			e.monomials[v] = a
		}
	}
	for v, lambda := range exps {
		if lambda != 0 {
			e.exponentials[v] = lambda
		}
	}

	return e
}

// Constant returns an Exmonomial with no atomic terms, i.e. a pure
// constant value.
func Constant(c decimal.ExactDecimal) Exmonomial {
	return New(c, nil, nil)
}

// MonomialExponent returns the exponent of v's monomial atom (0 if absent).
func (e Exmonomial) MonomialExponent(v term.Variable) int { return e.monomials[v] }

// ExponentialRate returns the rate of v's exponential atom (0 if absent).
func (e Exmonomial) ExponentialRate(v term.Variable) float64 { return e.exponentials[v] }

// Variables returns the sorted set of variables appearing in any atomic
// term of e (monomial or exponential).
func (e Exmonomial) Variables() []term.Variable {
	set := make(map[term.Variable]struct{}, len(e.monomials)+len(e.exponentials))
	for v := range e.monomials {
		set[v] = struct{}{}
	}
	for v := range e.exponentials {
		set[v] = struct{}{}
	}
	out := make([]term.Variable, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// TotalMonomialDegree returns the sum of monomial exponents restricted to
// the given variable subset (used by Expolynomial.Limit's score 2).
func (e Exmonomial) TotalMonomialDegree(vars []term.Variable) int {
	total := 0
	for _, v := range vars {
		total += e.monomials[v]
	}

	return total
}

// TotalExponentialRate returns the sum of exponential rates restricted to
// the given variable subset (used by Expolynomial.Limit's score 1).
func (e Exmonomial) TotalExponentialRate(vars []term.Variable) float64 {
	total := 0.0
	for _, v := range vars {
		total += e.exponentials[v]
	}

	return total
}

// SameAtoms reports whether e and o share exactly the same set of atomic
// terms (same monomial exponents and exponential rates per variable) —
// the "equal form" predicate of spec.md §3, used by Expolynomial addition
// to merge like terms.
func (e Exmonomial) SameAtoms(o Exmonomial) bool {
	if len(e.monomials) != len(o.monomials) || len(e.exponentials) != len(o.exponentials) {
		return false
	}
	for v, a := range e.monomials {
		if o.monomials[v] != a {
			return false
		}
	}
	for v, lambda := range e.exponentials {
		if o.exponentials[v] != lambda {
			return false
		}
	}

	return true
}

// WithConst returns a copy of e with the constant replaced.
func (e Exmonomial) WithConst(c decimal.ExactDecimal) Exmonomial {
	e.Const = c

	return e
}

// CloneMonomials returns a copy of the internal monomial-exponent map, for
// callers (e.g. Expolynomial.Shift) that need to rebuild a modified atom
// set.
func (e Exmonomial) CloneMonomials() map[term.Variable]int {
	out := make(map[term.Variable]int, len(e.monomials))
	for v, a := range e.monomials {
		out[v] = a
	}

	return out
}

// CloneExponentials returns a copy of the internal exponential-rate map.
func (e Exmonomial) CloneExponentials() map[term.Variable]float64 {
	out := make(map[term.Variable]float64, len(e.exponentials))
	for v, lambda := range e.exponentials {
		out[v] = lambda
	}

	return out
}
