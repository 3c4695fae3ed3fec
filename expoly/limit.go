package expoly

import (
	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/exmono"
	"github.com/katalvlaran/stpn/term"
)

// Limit drives the variables named in directions to ±∞ (decimal.PosInf or
// decimal.NegInf per variable) and returns the resulting Expolynomial over
// the remaining free variables, per spec.md §4.2's two-score selection:
//
//	Score 1 = Σ rate(v) for v→+∞  −  Σ rate(v) for v→−∞.
//	Score 2 = total monomial degree on the variables in directions.
//
// Terms with the minimum (score1, score2) pair survive; all others vanish.
// A sign flip is applied to a surviving term's constant for every
// odd-degree monomial on a variable driven to −∞ (spec.md §4.2).
func (e Expolynomial) Limit(directions map[term.Variable]decimal.Sign) (Expolynomial, error) {
	if len(directions) == 0 {
		return Expolynomial{}, ErrEmptyLimitSet
	}
	vars := make([]term.Variable, 0, len(directions))
	for v := range directions {
		vars = append(vars, v)
	}

	if len(e.Terms) == 0 {
		return Zero(), nil
	}

	type scored struct {
		term       exmono.Exmonomial
		score1     float64
		score2     int
		hasScore   bool
		flippedSgn bool
	}

	scoredTerms := make([]scored, 0, len(e.Terms))
	for _, t := range e.Terms {
		s1 := 0.0
		for v, dir := range directions {
			rate := t.ExponentialRate(v)
			if dir == decimal.PosInf {
				s1 += rate
			} else {
				s1 -= rate
			}
		}
		s2 := t.TotalMonomialDegree(vars)
		scoredTerms = append(scoredTerms, scored{term: t, score1: s1, score2: s2, hasScore: true})
	}

	best1 := scoredTerms[0].score1
	for _, s := range scoredTerms[1:] {
		if s.score1 < best1 {
			best1 = s.score1
		}
	}

	best2 := -1
	for _, s := range scoredTerms {
		if s.score1 == best1 {
			if best2 == -1 || s.score2 < best2 {
				best2 = s.score2
			}
		}
	}

	out := make([]exmono.Exmonomial, 0, len(scoredTerms))
	for _, s := range scoredTerms {
		if s.score1 != best1 || s.score2 != best2 {
			continue
		}
		surviving := dropVariables(s.term, vars)
		flips := 1
		for v, dir := range directions {
			if dir == decimal.NegInf && s.term.MonomialExponent(v)%2 == 1 {
				flips *= -1
			}
		}
		c, err := decimal.Mul(surviving.Const, decimal.NewFromInt(int64(flips)))
		if err != nil {
			return Expolynomial{}, err
		}
		out = append(out, surviving.WithConst(c))
	}

	return mergeLikeTerms(out), nil
}

// dropVariables removes the given variables from an exmonomial's atom set,
// leaving the constant and remaining atoms untouched.
func dropVariables(t exmono.Exmonomial, vars []term.Variable) exmono.Exmonomial {
	monos := t.CloneMonomials()
	exps := t.CloneExponentials()
	for _, v := range vars {
		delete(monos, v)
		delete(exps, v)
	}

	return exmono.New(t.Const, monos, exps)
}
