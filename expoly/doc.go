// Package expoly implements Expolynomial, an ordered sum of exmono.Exmonomial
// terms used as a multivariate density piece (spec.md §3/§4.2).
//
// Supported operations: addition, subtraction, multiplication, scalar
// division, substitution, variable shift (binomial expansion), definite and
// indefinite integration in one variable, point evaluation, a limit
// operation driving a subset of variables to ±∞, and a textual grammar
// round-trip (spec.md §6 item 5).
//
// Correctness invariants (spec.md §4.2):
//
//	For any substitution σ, Integrate(v)(x=σ) − Integrate(v)(x=σ') equals
//	the definite integral between σ and σ'. Shift followed by
//	Evaluate(y:=0) is the identity.
package expoly
