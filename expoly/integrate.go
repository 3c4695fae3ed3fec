package expoly

import (
	"math"

	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/exmono"
	"github.com/katalvlaran/stpn/term"
)

// IntegratePrimitive returns a symbolic primitive F such that dF/dv = e
// (spec.md §4.2). When an exmonomial contains both a monomial v^α and an
// exponential e^(−λv), the standard reduction is applied term-by-term:
//
//	∫ v^α e^(−λv) dv = −e^(−λv) Σ_{k=0..α} (α! / (k! λ^(α+1−k))) v^k
//
// When λ=0 (no exponential atom in v), the plain power rule
// ∫ v^α dv = v^(α+1)/(α+1) is used instead.
func (e Expolynomial) IntegratePrimitive(v term.Variable) Expolynomial {
	out := make([]exmono.Exmonomial, 0, len(e.Terms))
	for _, t := range e.Terms {
		out = append(out, integrateTerm(t, v)...)
	}

	return mergeLikeTerms(out)
}

func integrateTerm(t exmono.Exmonomial, v term.Variable) []exmono.Exmonomial {
	alpha := t.MonomialExponent(v)
	lambda := t.ExponentialRate(v)

	if lambda == 0 {
		monos := t.CloneMonomials()
		monos[v] = alpha + 1
		c, err := decimal.Div(t.Const, decimal.NewFromInt(int64(alpha+1)))
		if err != nil {
			c = t.Const
		}

		return []exmono.Exmonomial{exmono.New(c, monos, t.CloneExponentials())}
	}

	results := make([]exmono.Exmonomial, 0, alpha+1)
	fact := factorial(alpha)
	for k := 0; k <= alpha; k++ {
		coeffF := -fact / (factorial(k) * math.Pow(lambda, float64(alpha+1-k)))
		c, err := decimal.Mul(t.Const, decimal.NewFromFloat(coeffF))
		if err != nil {
			continue
		}
		monos := t.CloneMonomials()
		monos[v] = k
		exps := t.CloneExponentials()
		exps[v] = lambda
		results = append(results, exmono.New(c, monos, exps))
	}

	return results
}

func factorial(n int) float64 {
	result := 1.0
	for i := 2; i <= n; i++ {
		result *= float64(i)
	}

	return result
}

// DefiniteIntegral returns ∫ e dv over [lo, hi], where lo/hi are themselves
// substitutions of the form sign*offsetVar + constOffset (offsetVar may be
// the zero Variable "" to denote a pure constant bound). This generalizes
// spec.md §4.2's integrate(v,a,b) to symbolic bounds expressed in other
// zone variables, which is what state-class succession needs (spec.md
// §4.3 step 3 integrates the firing zone's upper bound, itself another
// enabled transition's variable).
func (e Expolynomial) DefiniteIntegral(v term.Variable, lo, hi Bound) (Expolynomial, error) {
	primitive := e.IntegratePrimitive(v)

	atHi, err := primitive.EvaluateAt(v, hi)
	if err != nil {
		return Expolynomial{}, err
	}
	atLo, err := primitive.EvaluateAt(v, lo)
	if err != nil {
		return Expolynomial{}, err
	}

	return Sub(atHi, atLo), nil
}
