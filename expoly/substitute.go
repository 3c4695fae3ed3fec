package expoly

import (
	"math"

	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/exmono"
	"github.com/katalvlaran/stpn/term"
)

// Bound describes a one-variable substitution target sign*OffsetVar+Const,
// used by EvaluateAt/DefiniteIntegral. OffsetVar == "" denotes a pure
// numeric bound equal to Const (Sign is then irrelevant). This is the
// "evaluate(base, ±, offset, const)" primitive of spec.md §4.2.
type Bound struct {
	Sign      int8 // +1 or -1
	OffsetVar term.Variable
	Const     decimal.ExactDecimal
}

// ConstBound builds a pure-numeric Bound.
func ConstBound(c decimal.ExactDecimal) Bound { return Bound{Sign: 1, Const: c} }

// VarBound builds a Bound of the form sign*offsetVar + c.
func VarBound(sign int8, offsetVar term.Variable, c decimal.ExactDecimal) Bound {
	return Bound{Sign: sign, OffsetVar: offsetVar, Const: c}
}

// Shift replaces x by x+y throughout e (spec.md §4.2's "shift(x,y)"),
// expanding (x+y)^α binomially and splitting e^(−λ(x+y)) into
// e^(−λx)·e^(−λy).
func (e Expolynomial) Shift(x, y term.Variable) (Expolynomial, error) {
	out := make([]exmono.Exmonomial, 0, len(e.Terms))
	for _, t := range e.Terms {
		alpha, lambda := t.MonomialExponent(x), t.ExponentialRate(x)
		for k := 0; k <= alpha; k++ {
			c, err := decimal.Mul(t.Const, decimal.NewFromFloat(binomial(alpha, k)))
			if err != nil {
				return Expolynomial{}, err
			}
			monos, exps := t.CloneMonomials(), t.CloneExponentials()
			monos[x], monos[y], exps[y] = alpha-k, monos[y]+k, exps[y]+lambda
			out = append(out, exmono.New(c, monos, exps))
		}
	}

	return mergeLikeTerms(out), nil
}

// EvaluateAt substitutes variable v by the given Bound throughout e, using
// binomial expansion for the monomial part and the exponential product
// rule e^(−λ(s·w+c)) = e^(−λsw)·e^(−λc) for the exponential part.
func (e Expolynomial) EvaluateAt(v term.Variable, b Bound) (Expolynomial, error) {
	out := make([]exmono.Exmonomial, 0, len(e.Terms))
	for _, t := range e.Terms {
		expanded, err := substituteTerm(t, v, b)
		if err != nil {
			return Expolynomial{}, err
		}
		out = append(out, expanded...)
	}

	return mergeLikeTerms(out), nil
}

func substituteTerm(t exmono.Exmonomial, v term.Variable, b Bound) ([]exmono.Exmonomial, error) {
	alpha := t.MonomialExponent(v)
	lambda := t.ExponentialRate(v)
	baseMonos := t.CloneMonomials()
	baseExps := t.CloneExponentials()
	delete(baseMonos, v)
	delete(baseExps, v)

	// Pure numeric bound: v := Const, a scalar substitution.
	if b.OffsetVar == "" {
		scalar := 1.0
		if alpha > 0 {
			scalar *= math.Pow(b.Const.Float64(), float64(alpha))
		}
		if lambda != 0 {
			scalar *= math.Exp(-lambda * b.Const.Float64())
		}
		c, err := decimal.Mul(t.Const, decimal.NewFromFloat(scalar))
		if err != nil {
			return nil, err
		}

		return []exmono.Exmonomial{exmono.New(c, baseMonos, baseExps)}, nil
	}

	w := b.OffsetVar
	// Exponential part contributes a pure scalar e^(−λc) and shifts the
	// rate onto w as λ·sign.
	scalarExp := 1.0
	if lambda != 0 {
		scalarExp = math.Exp(-lambda * b.Const.Float64())
	}

	// Monomial part: binomial expansion of (sign*w + c)^alpha.
	results := make([]exmono.Exmonomial, 0, alpha+1)
	for k := 0; k <= alpha; k++ {
		coeff := binomial(alpha, k) * math.Pow(float64(b.Sign), float64(k)) * math.Pow(b.Const.Float64(), float64(alpha-k)) * scalarExp
		c, err := decimal.Mul(t.Const, decimal.NewFromFloat(coeff))
		if err != nil {
			return nil, err
		}
		monos := cloneIntMap(baseMonos)
		if k > 0 {
			monos[w] += k
		}
		exps := cloneFloatMap(baseExps)
		if lambda != 0 {
			exps[w] += lambda * float64(b.Sign)
		}
		results = append(results, exmono.New(c, monos, exps))
	}
	if alpha == 0 {
		// no monomial term; single result carries the exponential-only shift
		return results, nil
	}

	return results, nil
}

func binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	result := 1.0
	for i := 0; i < k; i++ {
		result *= float64(n-i) / float64(i+1)
	}

	return result
}

func cloneIntMap(m map[term.Variable]int) map[term.Variable]int {
	out := make(map[term.Variable]int, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}

func cloneFloatMap(m map[term.Variable]float64) map[term.Variable]float64 {
	out := make(map[term.Variable]float64, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}
