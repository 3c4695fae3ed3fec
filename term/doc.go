// Package term defines the atomic building blocks of expolynomial algebra:
// named Variable symbols and the two atomic term kinds that may be raised
// against them — Monomial (v^α) and Exponential (e^(−λv)).
//
// A reserved Variable name, Ground, denotes the zero time reference ("T*"
// in spec.md); another, Age, denotes elapsed time for transient analysis.
package term
