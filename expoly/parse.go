package expoly

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/stpn/decimal"
	"github.com/katalvlaran/stpn/exmono"
	"github.com/katalvlaran/stpn/term"
)

// String renders e using the single-variable textual grammar of spec.md §6
// item 5:
//
//	expolynomial := exmonomial ('+' exmonomial)*
//	exmonomial   := term ('*' term)*
//	term         := <decimal> | 'x' | 'x^' <int> | 'Exp[' <decimal> 'x]'
//
// v names the single variable rendered as the literal token "x".
func (e Expolynomial) String(v term.Variable) string {
	if len(e.Terms) == 0 {
		return "0"
	}
	parts := make([]string, 0, len(e.Terms))
	for _, t := range e.Terms {
		parts = append(parts, renderExmonomial(t, v))
	}

	return strings.Join(parts, " + ")
}

func renderExmonomial(t exmono.Exmonomial, v term.Variable) string {
	factors := make([]string, 0, 3)
	if !decimal.Equal(t.Const, decimal.NewFromInt(1)) || (t.MonomialExponent(v) == 0 && t.ExponentialRate(v) == 0) {
		factors = append(factors, t.Const.String())
	}
	if a := t.MonomialExponent(v); a == 1 {
		factors = append(factors, "x")
	} else if a > 1 {
		factors = append(factors, fmt.Sprintf("x^%d", a))
	}
	if lambda := t.ExponentialRate(v); lambda != 0 {
		factors = append(factors, fmt.Sprintf("Exp[%sx]", formatFloat(lambda)))
	}
	if len(factors) == 0 {
		factors = append(factors, "0")
	}

	return strings.Join(factors, "*")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Parse parses the textual grammar of spec.md §6 item 5 into an
// Expolynomial over the single variable v (rendered/parsed as "x").
// Returns ErrUnparseable on malformed input.
func Parse(s string, v term.Variable) (Expolynomial, error) {
	terms := make([]exmono.Exmonomial, 0)
	for _, part := range strings.Split(s, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			return Expolynomial{}, ErrUnparseable
		}
		ex, err := parseExmonomial(part, v)
		if err != nil {
			return Expolynomial{}, err
		}
		terms = append(terms, ex)
	}

	return mergeLikeTerms(terms), nil
}

func parseExmonomial(s string, v term.Variable) (exmono.Exmonomial, error) {
	acc := exmono.Constant(decimal.NewFromInt(1))
	for _, factor := range strings.Split(s, "*") {
		factor = strings.TrimSpace(factor)
		next, err := parseTerm(factor, v)
		if err != nil {
			return exmono.Exmonomial{}, err
		}
		acc, err = exmono.Multiply(acc, next)
		if err != nil {
			return exmono.Exmonomial{}, err
		}
	}

	return acc, nil
}

func parseTerm(s string, v term.Variable) (exmono.Exmonomial, error) {
	switch {
	case s == "x":
		return exmono.New(decimal.NewFromInt(1), map[term.Variable]int{v: 1}, nil), nil
	case strings.HasPrefix(s, "x^"):
		n, err := strconv.Atoi(strings.TrimPrefix(s, "x^"))
		if err != nil || n < 0 {
			return exmono.Exmonomial{}, fmt.Errorf("%w: %q", ErrUnparseable, s)
		}

		return exmono.New(decimal.NewFromInt(1), map[term.Variable]int{v: n}, nil), nil
	case strings.HasPrefix(s, "Exp[") && strings.HasSuffix(s, "x]"):
		inner := strings.TrimSuffix(strings.TrimPrefix(s, "Exp["), "x]")
		rate, err := strconv.ParseFloat(inner, 64)
		if err != nil {
			return exmono.Exmonomial{}, fmt.Errorf("%w: %q", ErrUnparseable, s)
		}

		return exmono.New(decimal.NewFromInt(1), nil, map[term.Variable]float64{v: rate}), nil
	default:
		d, err := decimal.NewFromString(s)
		if err != nil {
			return exmono.Exmonomial{}, fmt.Errorf("%w: %q", ErrUnparseable, s)
		}

		return exmono.Constant(d), nil
	}
}
