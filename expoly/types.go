package expoly

import (
	"sort"

	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/exmono"
	"github.com/katalvlaran/stpn/term"
)

// Expolynomial is an ordered sum of exmono.Exmonomial terms. The zero value
// is the empty sum (evaluates to 0 everywhere).
type Expolynomial struct {
	Terms []exmono.Exmonomial
}

// New builds an Expolynomial from the given terms, merging terms that share
// the same atomic-term set (spec.md §3 "equal form").
func New(terms ...exmono.Exmonomial) Expolynomial {
	return mergeLikeTerms(terms)
}

// Zero returns the empty Expolynomial.
func Zero() Expolynomial { return Expolynomial{} }

// ConstantValue builds a pure-constant Expolynomial.
func ConstantValue(c decimal.ExactDecimal) Expolynomial {
	if c.IsZero() {
		return Zero()
	}

	return Expolynomial{Terms: []exmono.Exmonomial{exmono.Constant(c)}}
}

// Variables returns the sorted set of variables appearing anywhere in e.
func (e Expolynomial) Variables() []term.Variable {
	set := make(map[term.Variable]struct{})
	for _, t := range e.Terms {
		for _, v := range t.Variables() {
			set[v] = struct{}{}
		}
	}
	out := make([]term.Variable, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// mergeLikeTerms sums the constants of exmonomials sharing the same atomic
// set, dropping any that cancel to zero, and returns a fresh Expolynomial.
func mergeLikeTerms(terms []exmono.Exmonomial) Expolynomial {
	merged := make([]exmono.Exmonomial, 0, len(terms))
	for _, t := range terms {
		found := false
		for i, m := range merged {
			if m.SameAtoms(t) {
				sum, err := decimal.Add(m.Const, t.Const)
				if err == nil {
					merged[i] = m.WithConst(sum)
				}
				found = true

				break
			}
		}
		if !found {
			merged = append(merged, t)
		}
	}

	out := make([]exmono.Exmonomial, 0, len(merged))
	for _, m := range merged {
		if !m.Const.IsZero() {
			out = append(out, m)
		}
	}

	return Expolynomial{Terms: out}
}
