package petri

import "errors"

var (
	// ErrNoStochasticFeature indicates a transition lacks a StochasticTransitionFeature.
	ErrNoStochasticFeature = errors.New("petri: transition has no stochastic feature")

	// ErrNonUnitClockRate indicates a non-EXP transition carries a clock
	// rate other than 1 in a path that forbids marking-dependent speedup.
	ErrNonUnitClockRate = errors.New("petri: non-EXP transition has clockRate != 1")

	// ErrUnknownTransition indicates a TransitionID not recognized by the net.
	ErrUnknownTransition = errors.New("petri: unknown transition")
)
