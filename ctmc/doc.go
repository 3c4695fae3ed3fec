// Package ctmc implements the discrete/continuous Markov-chain layer of
// spec.md §3/§4.8: DTMC<S> (a directed weighted graph plus initial
// distribution), CTMCState<M> (a logic state with an exit rate), iterative
// two-pass BSCC decomposition, and the two LU-based solves spec.md needs —
// embedded-chain stationary distribution (§4.5) and transient→BSCC
// absorption probabilities (§4.8).
//
// Grounded on matrix/ops/floyd_warshal.go's in-place relax-loop shape for
// the two-pass DFS, and core/types.go's arena-of-ids pattern for the
// state/edge layout; the two dense solves use gonum.org/v1/gonum/mat's
// partial-pivoting LU rather than the teacher's own no-pivot
// matrix/ops/lu.go, since embedded chains built from enumerated state
// classes can be near-singular (see DESIGN.md).
package ctmc
