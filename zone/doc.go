// Package zone implements DBMZone: a Difference-Bound Matrix zone of
// pairwise upper-bound constraints x_i − x_j ≤ c[i][j] over a fixed set of
// Variables plus the reserved Ground variable (spec.md §3).
//
// Normalize applies Floyd–Warshall over the (+, min) semiring on
// decimal.ExactDecimal, skipping k∈{i,j} to avoid propagating a negative
// diagonal into unrelated pairs (spec.md §4, generalizing
// matrix/ops/floyd_warshal.go from the teacher repository from float64 to
// ExactDecimal). Diagonal entries read +∞ after normalization per spec.md
// §3's documented convention.
package zone
