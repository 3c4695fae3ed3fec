// Package foxglynn computes bounded-error truncations of the Poisson
// distribution used by the ctmc/onegen uniformization solvers (spec.md
// §4.7). Given a rate λ>0 and a target error ε, Compute returns the
// smallest index window [left, right] and the (unnormalized) weights
// within it such that summing weights[i]/totalWeight over the window
// approximates Pois(λ) within ε after tail truncation.
//
// Grounded on the defensive-numerics register of
// other_examples/97364d04_gonum-gonum__lapack-gonum-dhgeqz.go.go (a LAPACK
// eigenvalue routine): explicit underflow/overflow guards, documented
// safety margins, and a recurrence computed outward from a stable anchor
// rather than from either tail. No pack dependency exposes this specific
// truncation-with-bounded-error algorithm, so it is implemented directly
// against the standard library (see DESIGN.md).
package foxglynn
