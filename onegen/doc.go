// Package onegen implements spec.md §4.6's One-general-transition (OneGen)
// path: the fast-path analysis available when at most one non-EXP
// transition is enabled in any state reachable between two regenerations.
// Under that restriction, the tree between regenerations reduces to a CTMC
// subordinated to the single general transition's firing-time PDF, plus a
// single absorbing "fired" outcome, avoiding the general-purpose
// regenerative-tree walk of package kernel.
//
// Grounded on package ctmc's sparse one-step iteration (itself modeled on
// matrix/ops/floyd_warshal.go's in-place relax loop shape) and package
// foxglynn for Poisson truncation; the IntervalScanner follows spec.md §9's
// "explicit iterator with a peek cursor" design note rather than generator
// machinery.
package onegen
