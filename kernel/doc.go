// Package kernel implements spec.md §4.5: regenerative-tree expansion
// between regeneration points, local/global kernel discretization on a
// two-grid Ticks schedule, and the trapezoidal Markov Renewal convolution
// `P = L + dG * P`.
//
// Grounded on matrix/ops/floyd_warshal.go's iterative relax-and-memoize
// loop shape, generalized here from an all-pairs shortest-path relaxation
// to the Markov Renewal recurrence's running sum over earlier kernel
// samples; the per-node tree walk reuses stateclass.Successor /
// stateclass.SuccessorImmediate directly rather than enum.Enumerate,
// since a regenerative tree's stopping rule ("stop at every regeneration
// reached below the root, not just the root itself") needs per-node depth
// information enum.Policy does not expose — see DESIGN.md.
package kernel
