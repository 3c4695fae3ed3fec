// Package enum implements the enumeration engine: frontier-driven
// expansion of a stochastic state-class graph, with a pluggable
// FIFO/greedy-by-reaching-probability policy, a cooperative cancellation
// monitor, and configurable stop criteria with error-bounded truncation
// accounting for the greedy policy.
package enum
