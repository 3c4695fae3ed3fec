package exmono

import (
	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/term"
)

// Multiply returns e*o: constants multiply, monomial exponents add per
// shared variable, exponential rates add per shared variable.
func Multiply(e, o Exmonomial) (Exmonomial, error) {
	c, err := decimal.Mul(e.Const, o.Const)
	if err != nil {
		return Exmonomial{}, err
	}

	monos := e.CloneMonomials()
	for v, a := range o.monomials {
		monos[v] += a
	}
	exps := e.CloneExponentials()
	for v, lambda := range o.exponentials {
		exps[v] += lambda
	}

	return New(c, monos, exps), nil
}

// Evaluate computes the exmonomial's value given a binding for every
// variable it references. Returns ErrVariableNotBound if a referenced
// variable is missing from bindings.
func (e Exmonomial) Evaluate(bindings map[term.Variable]float64) (float64, error) {
	for _, v := range e.Variables() {
		if _, ok := bindings[v]; !ok {
			return 0, ErrVariableNotBound
		}
	}

	result := e.Const.Float64()
	for v, a := range e.monomials {
		m := term.Monomial{V: v, Exponent: a}
		result *= m.Evaluate(bindings[v])
	}
	for v, lambda := range e.exponentials {
		ex := term.Exponential{V: v, Rate: lambda}
		result *= ex.Evaluate(bindings[v])
	}

	return result, nil
}
