package analysis

import "errors"

var (
	// ErrNotRegeneration indicates the initial marking's constructed State
	// is not itself a regeneration (spec.md §3 "Regeneration" requires the
	// analysis root to be one); this can only happen if an IMM transition
	// is enabled at the initial marking (a vanishing initial class), which
	// callers must resolve externally before analysis (e.g. by choosing an
	// initial marking past the immediate race).
	ErrNotRegeneration = errors.New("analysis: initial state is not a regeneration")

	// ErrInvalidTimeBound indicates a non-positive TimeBound or TimeStep.
	ErrInvalidTimeBound = errors.New("analysis: time bound and step must be positive")

	// ErrMultipleGeneralTransitions indicates the OneGen fast path was
	// requested but more than one non-EXP transition is reachable as
	// enabled simultaneously (spec.md §4.6, §7 Structural).
	ErrMultipleGeneralTransitions = errors.New("analysis: more than one general transition enabled, OneGen path not applicable")

	// ErrNoInitialState indicates Analyze was called without an initial
	// marking.
	ErrNoInitialState = errors.New("analysis: no initial marking supplied")

	// ErrUnknownState indicates a row/column state key was not found while
	// reading back a solution (ComputeAggregateSolution, ComputeRewards).
	ErrUnknownState = errors.New("analysis: unknown state key")
)
