// Package exmono implements Exmonomial: a constant ExactDecimal multiplier
// times an unordered bag of atomic monomial/exponential terms (one of each
// kind per variable, normalized form), per spec.md §3.
package exmono
